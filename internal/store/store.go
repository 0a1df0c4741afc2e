package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/clarityworks/clarity/internal/scoring"
)

// Decision is a persisted snapshot of everything the scoring engine needs:
// the criteria list, the options list, and the global risk factor. The
// latest scoring pass (results + narrative) is stored alongside it; there
// is no history, a re-score replaces the previous one.
type Decision struct {
	ID         uuid.UUID           `json:"decision_id"`
	Title      string              `json:"title"`
	Criteria   []scoring.Criterion `json:"criteria"`
	Options    []scoring.Option    `json:"options"`
	RiskFactor int                 `json:"risk_factor"`

	// Latest scoring pass, nil/empty until scored.
	Results   []scoring.Result `json:"results,omitempty"`
	Narrative string           `json:"narrative,omitempty"`
	ScoredAt  *time.Time       `json:"scored_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DecisionFilter narrows ListDecisions.
type DecisionFilter struct {
	Title  string
	Limit  int
	Offset int
}

// DecisionStats summarizes the stored decisions for the admin surface.
type DecisionStats struct {
	TotalDecisions int        `json:"total_decisions"`
	TotalScored    int        `json:"total_scored"`
	LastScoredAt   *time.Time `json:"last_scored_at,omitempty"`
}

// Store is the persistence boundary for decision snapshots.
type Store interface {
	CreateDecision(ctx context.Context, d *Decision) error
	GetDecision(ctx context.Context, id uuid.UUID) (*Decision, error)
	ListDecisions(ctx context.Context, filter DecisionFilter) ([]*Decision, error)
	UpdateDecision(ctx context.Context, d *Decision) error
	DeleteDecision(ctx context.Context, id uuid.UUID) error

	// SaveResults records the latest scoring pass for a decision.
	SaveResults(ctx context.Context, id uuid.UUID, results []scoring.Result, narrative string) error

	GetStats(ctx context.Context) (*DecisionStats, error)

	Close() error
}
