package events

import "time"

type DecisionCreatedEvent struct {
	DecisionID string `json:"decision_id"`
	Title      string `json:"title"`
	Criteria   int    `json:"criteria_count"`
	Options    int    `json:"options_count"`
	RiskFactor int    `json:"risk_factor"`
}

type DecisionScoredEvent struct {
	DecisionID string    `json:"decision_id"`
	Winner     string    `json:"winner,omitempty"`
	TopScore   float64   `json:"top_score"`
	RiskFactor int       `json:"risk_factor"`
	ScoredAt   time.Time `json:"scored_at"`
}

type ReportExportedEvent struct {
	DecisionID string `json:"decision_id"`
	Title      string `json:"title"`
	Artifact   string `json:"artifact"`
}
