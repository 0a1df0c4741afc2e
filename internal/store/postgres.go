package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clarityworks/clarity/internal/scoring"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

const decisionColumns = `decision_id, title, criteria, options, risk_factor,
	results, narrative, scored_at,
	created_at, updated_at`

func (s *PostgresStore) CreateDecision(ctx context.Context, d *Decision) error {
	criteriaJSON, _ := json.Marshal(d.Criteria)
	optionsJSON, _ := json.Marshal(d.Options)

	return s.pool.QueryRow(ctx, `
		INSERT INTO clarity_decisions (title, criteria, options, risk_factor)
		VALUES ($1, $2, $3, $4)
		RETURNING decision_id, created_at, updated_at`,
		d.Title, criteriaJSON, optionsJSON, d.RiskFactor,
	).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
}

func (s *PostgresStore) GetDecision(ctx context.Context, id uuid.UUID) (*Decision, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+decisionColumns+`
		FROM clarity_decisions WHERE decision_id = $1`, id)

	d, err := scanDecision(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (s *PostgresStore) ListDecisions(ctx context.Context, filter DecisionFilter) ([]*Decision, error) {
	query := `SELECT ` + decisionColumns + ` FROM clarity_decisions`
	args := []interface{}{}

	if filter.Title != "" {
		query += ` WHERE title ILIKE '%' || $1 || '%'`
		args = append(args, filter.Title)
	}
	query += ` ORDER BY updated_at DESC`
	if filter.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, filter.Limit)
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(` OFFSET %d`, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var decisions []*Decision
	for rows.Next() {
		d, err := scanDecision(rows)
		if err != nil {
			return nil, err
		}
		decisions = append(decisions, d)
	}
	return decisions, rows.Err()
}

func (s *PostgresStore) UpdateDecision(ctx context.Context, d *Decision) error {
	criteriaJSON, _ := json.Marshal(d.Criteria)
	optionsJSON, _ := json.Marshal(d.Options)

	// Replacing the snapshot invalidates the previous scoring pass.
	tag, err := s.pool.Exec(ctx, `
		UPDATE clarity_decisions
		SET title = $2, criteria = $3, options = $4, risk_factor = $5,
			results = NULL, narrative = '', scored_at = NULL,
			updated_at = now()
		WHERE decision_id = $1`,
		d.ID, d.Title, criteriaJSON, optionsJSON, d.RiskFactor)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (s *PostgresStore) DeleteDecision(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM clarity_decisions WHERE decision_id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (s *PostgresStore) SaveResults(ctx context.Context, id uuid.UUID, results []scoring.Result, narrative string) error {
	resultsJSON, _ := json.Marshal(results)

	tag, err := s.pool.Exec(ctx, `
		UPDATE clarity_decisions
		SET results = $2, narrative = $3, scored_at = now(), updated_at = now()
		WHERE decision_id = $1`,
		id, resultsJSON, narrative)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (s *PostgresStore) GetStats(ctx context.Context) (*DecisionStats, error) {
	stats := &DecisionStats{}
	err := s.pool.QueryRow(ctx, `
		SELECT count(*),
			count(*) FILTER (WHERE scored_at IS NOT NULL),
			max(scored_at)
		FROM clarity_decisions`,
	).Scan(&stats.TotalDecisions, &stats.TotalScored, &stats.LastScoredAt)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func scanDecision(row pgx.Row) (*Decision, error) {
	d := &Decision{}
	var criteriaJSON, optionsJSON, resultsJSON []byte

	err := row.Scan(
		&d.ID, &d.Title, &criteriaJSON, &optionsJSON, &d.RiskFactor,
		&resultsJSON, &d.Narrative, &d.ScoredAt,
		&d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(criteriaJSON) > 0 {
		if err := json.Unmarshal(criteriaJSON, &d.Criteria); err != nil {
			return nil, fmt.Errorf("decode criteria: %w", err)
		}
	}
	if len(optionsJSON) > 0 {
		if err := json.Unmarshal(optionsJSON, &d.Options); err != nil {
			return nil, fmt.Errorf("decode options: %w", err)
		}
	}
	if len(resultsJSON) > 0 {
		if err := json.Unmarshal(resultsJSON, &d.Results); err != nil {
			return nil, fmt.Errorf("decode results: %w", err)
		}
	}
	return d, nil
}
