package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"riddle-rush/internal/domain"

	"github.com/rs/zerolog"
)

type StatisticsRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewStatisticsRepository(sqlDB *sql.DB, logger zerolog.Logger) *StatisticsRepository {
	return &StatisticsRepository{
		db:     sqlDB,
		logger: logger,
	}
}

// Get returns the single statistics row, or nil when none exists yet.
func (r *StatisticsRepository) Get(ctx context.Context) (*domain.GameStatistics, error) {
	var payload string
	err := r.db.QueryRowContext(ctx,
		`SELECT payload FROM statistics WHERE key = ?`, currentKey).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var stats domain.GameStatistics
	if err := json.Unmarshal([]byte(payload), &stats); err != nil {
		return nil, fmt.Errorf("failed to unmarshal statistics: %w", err)
	}
	return &stats, nil
}

func (r *StatisticsRepository) Save(ctx context.Context, stats *domain.GameStatistics) error {
	payload, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to marshal statistics: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO statistics (key, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		currentKey, string(payload), time.Now())
	return err
}
