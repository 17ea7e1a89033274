package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/codelog/internal/db"
	"github.com/alexanderramin/codelog/internal/domain"
)

const (
	factorDifficulty = "difficulty"
	factorStatus     = "status"
)

// SQLiteScoringConfigRepo stores the scoring config as one row per factor.
type SQLiteScoringConfigRepo struct {
	db db.DBTX
}

func NewSQLiteScoringConfigRepo(conn db.DBTX) *SQLiteScoringConfigRepo {
	return &SQLiteScoringConfigRepo{db: conn}
}

// Get reads the whole config. It is never cached: callers see admin edits on
// the next call.
func (r *SQLiteScoringConfigRepo) Get(ctx context.Context) (domain.ScoringConfig, error) {
	cfg := domain.ScoringConfig{
		DifficultyWeights: map[string]float64{},
		StatusMultipliers: map[string]float64{},
	}

	rows, err := r.db.QueryContext(ctx, `SELECT kind, key, value FROM scoring_factors`)
	if err != nil {
		return domain.ScoringConfig{}, fmt.Errorf("loading scoring config: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var kind, key string
		var value float64
		if err := rows.Scan(&kind, &key, &value); err != nil {
			return domain.ScoringConfig{}, fmt.Errorf("scanning scoring factor: %w", err)
		}
		switch kind {
		case factorDifficulty:
			cfg.DifficultyWeights[key] = value
		case factorStatus:
			cfg.StatusMultipliers[key] = value
		}
	}
	if err := rows.Err(); err != nil {
		return domain.ScoringConfig{}, fmt.Errorf("iterating scoring factors: %w", err)
	}
	return cfg, nil
}

func (r *SQLiteScoringConfigRepo) SetDifficultyWeight(ctx context.Context, difficulty string, weight float64) error {
	return r.set(ctx, factorDifficulty, difficulty, weight)
}

func (r *SQLiteScoringConfigRepo) SetStatusMultiplier(ctx context.Context, status string, multiplier float64) error {
	return r.set(ctx, factorStatus, status, multiplier)
}

func (r *SQLiteScoringConfigRepo) set(ctx context.Context, kind, key string, value float64) error {
	query := `INSERT INTO scoring_factors (kind, key, value) VALUES (?, ?, ?)
		ON CONFLICT(kind, key) DO UPDATE SET value = excluded.value`
	if _, err := r.db.ExecContext(ctx, query, kind, key, value); err != nil {
		return fmt.Errorf("setting %s factor %q: %w", kind, key, err)
	}
	return nil
}
