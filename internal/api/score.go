package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/clarityworks/clarity/internal/narrative"
	"github.com/clarityworks/clarity/internal/scoring"
)

// ScoreHandler exposes the scoring engine statelessly: nothing is stored,
// the response carries the ranked results and rationale for the submitted
// snapshot.
type ScoreHandler struct {
	defaultRiskFactor int
}

func NewScoreHandler(defaultRiskFactor int) *ScoreHandler {
	return &ScoreHandler{defaultRiskFactor: defaultRiskFactor}
}

type ScoreRequest struct {
	Criteria   []scoring.Criterion `json:"criteria"`
	Options    []scoring.Option    `json:"options"`
	RiskFactor *int                `json:"risk_factor,omitempty"`
}

type ScoreResponse struct {
	Results    []scoring.Result `json:"results"`
	Narrative  string           `json:"narrative"`
	RiskFactor int              `json:"risk_factor"`
}

// Score handles POST /api/v1/score
func (h *ScoreHandler) Score(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	riskFactor := h.defaultRiskFactor
	if req.RiskFactor != nil {
		riskFactor = *req.RiskFactor
	}

	if err := validateSnapshot(req.Criteria, req.Options, riskFactor); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	results := scoring.Score(req.Options, req.Criteria, riskFactor)
	writeJSON(w, http.StatusOK, ScoreResponse{
		Results:    results,
		Narrative:  explainResults(req.Criteria, results),
		RiskFactor: riskFactor,
	})
}

func explainResults(criteria []scoring.Criterion, results []scoring.Result) string {
	var winner *scoring.Result
	if len(results) > 0 {
		winner = &results[0]
	}
	return narrative.Explain(winner, criteria, results)
}

// validateSnapshot enforces the input ranges the scoring engine itself does
// not check: weight 1–10, scores 0–10, risk factor 0–30. The engine stays a
// total function; this is the boundary.
func validateSnapshot(criteria []scoring.Criterion, options []scoring.Option, riskFactor int) error {
	if riskFactor < 0 || riskFactor > scoring.MaxRiskFactor {
		return fmt.Errorf("risk_factor %d out of range [0,%d]", riskFactor, scoring.MaxRiskFactor)
	}
	for _, c := range criteria {
		if c.ID == "" || c.Name == "" {
			return fmt.Errorf("criterion requires id and name")
		}
		if c.Weight < 1 || c.Weight > 10 {
			return fmt.Errorf("criterion %q weight %d out of range [1,10]", c.Name, c.Weight)
		}
	}
	for _, o := range options {
		if o.ID == "" || o.Name == "" {
			return fmt.Errorf("option requires id and name")
		}
		for cid, s := range o.Scores {
			if s < 0 || s > 10 {
				return fmt.Errorf("option %q score %d for criterion %q out of range [0,10]", o.Name, s, cid)
			}
		}
	}
	return nil
}
