package scoring

import (
	"math"
	"sort"
)

// MaxRiskFactor bounds the global high-risk penalty percentage.
const MaxRiskFactor = 30

// Score computes the clarity index for every option and returns the results
// ranked descending. riskFactor is a 0–30 percentage penalty applied only to
// options flagged high-risk.
//
// The function is total: degenerate input (no criteria, zero total weight,
// missing score entries) degrades to zero scores rather than an error.
// Inputs are never mutated; each call returns freshly built results.
func Score(options []Option, criteria []Criterion, riskFactor int) []Result {
	totalWeight := TotalWeight(criteria)

	results := make([]Result, 0, len(options))
	for _, opt := range options {
		results = append(results, Result{
			Option:     opt,
			FinalScore: finalScore(opt, criteria, totalWeight, riskFactor),
		})
	}

	// Stable: equal scores keep their input order, which callers read as a
	// tie-break signal.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].FinalScore > results[j].FinalScore
	})
	return results
}

func finalScore(opt Option, criteria []Criterion, totalWeight, riskFactor int) float64 {
	if totalWeight == 0 {
		return 0
	}

	totalWeightedScore := 0
	for _, c := range criteria {
		totalWeightedScore += opt.ScoreFor(c.ID) * c.Weight
	}

	// Normalize against the maximum achievable weighted sum (every
	// criterion scored 10) to land on a 0–100 scale.
	baseScore := float64(totalWeightedScore) / float64(totalWeight*10) * 100

	penalty := 0.0
	if opt.IsHighRisk {
		penalty = baseScore * float64(riskFactor) / 100
	}

	return round1(math.Max(0, baseScore-penalty))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
