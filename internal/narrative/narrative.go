// Package narrative turns scoring output into a short deterministic
// rationale. The text is assembled from fixed templates and computed
// values; there is no model or randomness behind it.
package narrative

import (
	"fmt"

	"github.com/clarityworks/clarity/internal/scoring"
)

// InsufficientData is returned whenever there is not enough ranking signal
// to justify a recommendation.
const InsufficientData = "Add at least two options and score them against your criteria to generate a recommendation."

// Explain derives the rationale for the top-ranked result. winner is the
// first element of results as ranked by the scorer; results must be in the
// scorer's order so that results[1] is the runner-up.
func Explain(winner *scoring.Result, criteria []scoring.Criterion, results []scoring.Result) string {
	if winner == nil || winner.FinalScore == 0 || len(results) < 2 {
		return InsufficientData
	}

	runnerUp := results[1]
	margin := winner.FinalScore - runnerUp.FinalScore

	strength := PrimaryStrength(winner.Option, criteria)
	strengthName := "overall balance"
	if strength != nil {
		strengthName = strength.Name
	}

	base := fmt.Sprintf("%s leads by %.1f points over %s, driven primarily by its strength in %s.",
		winner.Name, margin, runnerUp.Name, strengthName)

	return base + " " + riskClause(winner, runnerUp, margin)
}

// PrimaryStrength returns the criterion contributing the largest weighted
// score to the option. Ties resolve to the first maximal criterion in input
// order. Returns nil when there are no criteria.
func PrimaryStrength(opt scoring.Option, criteria []scoring.Criterion) *scoring.Criterion {
	var best *scoring.Criterion
	bestWeighted := -1
	for i := range criteria {
		weighted := opt.ScoreFor(criteria[i].ID) * criteria[i].Weight
		if weighted > bestWeighted {
			best = &criteria[i]
			bestWeighted = weighted
		}
	}
	return best
}

// riskClause picks one of three closing sentences. When winner and runner-up
// are both high-risk the risk profiles cancel out and the neutral clause
// applies, same as when neither is flagged.
func riskClause(winner *scoring.Result, runnerUp scoring.Result, margin float64) string {
	switch {
	case winner.IsHighRisk && !runnerUp.IsHighRisk:
		return fmt.Sprintf("Note that %s is flagged high-risk: its %.1f-point lead already absorbs the risk penalty, but proceed with caution.",
			winner.Name, margin)
	case runnerUp.IsHighRisk && !winner.IsHighRisk:
		return fmt.Sprintf("%s also carries a stronger risk profile than %s, which is flagged high-risk.",
			winner.Name, runnerUp.Name)
	default:
		return "This is a balanced, low-risk recommendation."
	}
}
