package scoring

// Criterion is one weighted decision factor. Weight is relative importance
// on a 1–10 scale; the API boundary enforces the range, the engine does not.
type Criterion struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Weight int    `json:"weight"`
}

// Option is a candidate choice. Scores maps criterion ID to a raw 0–10
// score; the map is sparse and a missing entry counts as 0.
type Option struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Scores     map[string]int `json:"scores"`
	IsHighRisk bool           `json:"is_high_risk"`
}

// Result is an Option plus its clarity index: the normalized, risk-adjusted
// 0–100 score, rounded to one decimal place.
type Result struct {
	Option
	FinalScore float64 `json:"final_score"`
}

// ScoreFor returns the option's raw score for a criterion, 0 if absent.
func (o Option) ScoreFor(criterionID string) int {
	return o.Scores[criterionID]
}

// TotalWeight sums all criterion weights. It is identical across options
// for a given scoring pass.
func TotalWeight(criteria []Criterion) int {
	total := 0
	for _, c := range criteria {
		total += c.Weight
	}
	return total
}
