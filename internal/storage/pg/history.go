package pg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ErrNoRuns is returned when no stored run matches a baseline lookup.
var ErrNoRuns = errors.New("no stored runs")

// RunRecord is one persisted evaluation run for a (suite, target) pair.
type RunRecord struct {
	ID         uuid.UUID
	SuiteName  string
	TargetName string
	CreatedAt  time.Time
	PassCount  int
	FailCount  int
	SkipCount  int
	ErrorCount int
	MeanScores map[string]float64
}

// HistoryStore keeps evaluation runs so later runs can compare against
// a baseline.
type HistoryStore struct {
	pool *ConnectionPool
}

func NewHistoryStore(pool *ConnectionPool) *HistoryStore {
	return &HistoryStore{pool: pool}
}

const historySchema = `
CREATE TABLE IF NOT EXISTS eval_runs (
	id UUID PRIMARY KEY,
	suite_name TEXT NOT NULL,
	target_name TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	pass_count INT NOT NULL,
	fail_count INT NOT NULL,
	skip_count INT NOT NULL,
	error_count INT NOT NULL,
	mean_scores JSONB NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_eval_runs_lookup
	ON eval_runs (suite_name, target_name, created_at DESC);
`

func (s *HistoryStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.GetConn().Exec(ctx, historySchema); err != nil {
		return fmt.Errorf("migrate eval_runs: %w", err)
	}
	return nil
}

func (s *HistoryStore) SaveRun(ctx context.Context, rec *RunRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	scores, err := json.Marshal(rec.MeanScores)
	if err != nil {
		return fmt.Errorf("marshal mean scores: %w", err)
	}

	_, err = s.pool.GetConn().Exec(ctx, `
		INSERT INTO eval_runs
			(id, suite_name, target_name, created_at, pass_count, fail_count, skip_count, error_count, mean_scores)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		rec.ID, rec.SuiteName, rec.TargetName, rec.CreatedAt,
		rec.PassCount, rec.FailCount, rec.SkipCount, rec.ErrorCount, scores,
	)
	if err != nil {
		return fmt.Errorf("insert eval run: %w", err)
	}
	return nil
}

// LatestRun returns the most recent run for a suite/target pair.
func (s *HistoryStore) LatestRun(ctx context.Context, suiteName, targetName string) (*RunRecord, error) {
	row := s.pool.GetConn().QueryRow(ctx, `
		SELECT id, suite_name, target_name, created_at, pass_count, fail_count, skip_count, error_count, mean_scores
		FROM eval_runs
		WHERE suite_name = $1 AND target_name = $2
		ORDER BY created_at DESC
		LIMIT 1`,
		suiteName, targetName,
	)

	var rec RunRecord
	var scores []byte
	err := row.Scan(&rec.ID, &rec.SuiteName, &rec.TargetName, &rec.CreatedAt,
		&rec.PassCount, &rec.FailCount, &rec.SkipCount, &rec.ErrorCount, &scores)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoRuns
	}
	if err != nil {
		return nil, fmt.Errorf("query latest run: %w", err)
	}

	if err := json.Unmarshal(scores, &rec.MeanScores); err != nil {
		return nil, fmt.Errorf("unmarshal mean scores: %w", err)
	}
	return &rec, nil
}

// Baseline collects the latest mean scores per target for a suite,
// shaped for report.CompareToBaseline. Targets with no stored runs are
// simply absent.
func (s *HistoryStore) Baseline(ctx context.Context, suiteName string, targetNames []string) (map[string]map[string]float64, error) {
	baseline := make(map[string]map[string]float64, len(targetNames))
	for _, name := range targetNames {
		rec, err := s.LatestRun(ctx, suiteName, name)
		if errors.Is(err, ErrNoRuns) {
			continue
		}
		if err != nil {
			return nil, err
		}
		baseline[name] = rec.MeanScores
	}
	return baseline, nil
}
