package events

const (
	StreamName   = "CLARITY_EVENTS"
	StreamMaxAge = "720h" // 30 days
)

func SubjectDecisionCreated(decisionID string) string {
	return "clarity.decision." + decisionID + ".created"
}
func SubjectDecisionScored(decisionID string) string {
	return "clarity.decision." + decisionID + ".scored"
}
func SubjectReportExported(decisionID string) string {
	return "clarity.report." + decisionID + ".exported"
}
