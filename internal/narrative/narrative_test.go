package narrative

import (
	"strings"
	"testing"

	"github.com/clarityworks/clarity/internal/scoring"
)

func result(name string, score float64, highRisk bool) scoring.Result {
	return scoring.Result{
		Option:     scoring.Option{ID: name, Name: name, IsHighRisk: highRisk},
		FinalScore: score,
	}
}

func TestExplainInsufficientData(t *testing.T) {
	criteria := []scoring.Criterion{{ID: "1", Name: "Impact", Weight: 8}}
	winner := result("A", 80.0, false)

	tests := []struct {
		name    string
		winner  *scoring.Result
		results []scoring.Result
	}{
		{"nil winner", nil, []scoring.Result{result("A", 80, false), result("B", 50, false)}},
		{"zero-score winner", func() *scoring.Result { r := result("A", 0, false); return &r }(),
			[]scoring.Result{result("A", 0, false), result("B", 0, false)}},
		{"single result", &winner, []scoring.Result{winner}},
		{"no results", &winner, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Explain(tt.winner, criteria, tt.results)
			if got != InsufficientData {
				t.Errorf("expected insufficient-data message, got %q", got)
			}
		})
	}
}

func TestExplainMarginAndStrength(t *testing.T) {
	criteria := []scoring.Criterion{
		{ID: "1", Name: "Impact", Weight: 8},
		{ID: "2", Name: "Cost", Weight: 5},
	}
	winner := scoring.Result{
		Option:     scoring.Option{ID: "101", Name: "Build", Scores: map[string]int{"1": 9, "2": 4}},
		FinalScore: 70.8,
	}
	results := []scoring.Result{winner, result("Buy", 55.3, false)}

	got := Explain(&winner, criteria, results)

	if !strings.Contains(got, "Build leads by 15.5 points over Buy") {
		t.Errorf("expected margin 15.5 in narrative, got %q", got)
	}
	// 9*8=72 beats 4*5=20, so Impact is the primary strength.
	if !strings.Contains(got, "Impact") {
		t.Errorf("expected primary strength Impact, got %q", got)
	}
	if !strings.Contains(got, "balanced, low-risk") {
		t.Errorf("expected neutral risk clause, got %q", got)
	}
}

func TestExplainRiskClauses(t *testing.T) {
	criteria := []scoring.Criterion{{ID: "1", Name: "Impact", Weight: 8}}

	t.Run("winner high-risk", func(t *testing.T) {
		winner := result("A", 80, true)
		got := Explain(&winner, criteria, []scoring.Result{winner, result("B", 50, false)})
		if !strings.Contains(got, "flagged high-risk") || !strings.Contains(got, "caution") {
			t.Errorf("expected cautionary clause, got %q", got)
		}
	})

	t.Run("runner-up high-risk", func(t *testing.T) {
		winner := result("A", 80, false)
		got := Explain(&winner, criteria, []scoring.Result{winner, result("B", 50, true)})
		if !strings.Contains(got, "stronger risk profile") {
			t.Errorf("expected risk-profile clause, got %q", got)
		}
	})

	t.Run("both high-risk", func(t *testing.T) {
		// Both flagged cancels out: neutral clause, not the caution one.
		winner := result("A", 80, true)
		got := Explain(&winner, criteria, []scoring.Result{winner, result("B", 50, true)})
		if !strings.Contains(got, "balanced, low-risk") {
			t.Errorf("expected neutral clause when both are high-risk, got %q", got)
		}
		if strings.Contains(got, "caution") {
			t.Errorf("cautionary clause must not fire when both are high-risk, got %q", got)
		}
	})

	t.Run("neither high-risk", func(t *testing.T) {
		winner := result("A", 80, false)
		got := Explain(&winner, criteria, []scoring.Result{winner, result("B", 50, false)})
		if !strings.Contains(got, "balanced, low-risk") {
			t.Errorf("expected neutral clause, got %q", got)
		}
	})
}

func TestPrimaryStrengthFirstMaximal(t *testing.T) {
	criteria := []scoring.Criterion{
		{ID: "1", Name: "Impact", Weight: 4},
		{ID: "2", Name: "Cost", Weight: 8},
		{ID: "3", Name: "Speed", Weight: 4},
	}
	// 8*4=32, 4*8=32, 8*4=32: all tied, first wins.
	opt := scoring.Option{ID: "101", Name: "A", Scores: map[string]int{"1": 8, "2": 4, "3": 8}}

	got := PrimaryStrength(opt, criteria)
	if got == nil || got.Name != "Impact" {
		t.Errorf("expected first maximal criterion Impact, got %v", got)
	}
}

func TestPrimaryStrengthNoCriteria(t *testing.T) {
	if got := PrimaryStrength(scoring.Option{}, nil); got != nil {
		t.Errorf("expected nil for empty criteria, got %v", got)
	}
}
