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

type SettingsRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewSettingsRepository(sqlDB *sql.DB, logger zerolog.Logger) *SettingsRepository {
	return &SettingsRepository{
		db:     sqlDB,
		logger: logger,
	}
}

// Get returns the persisted settings row, or nil when none exists yet.
func (r *SettingsRepository) Get(ctx context.Context) (*domain.GameSettings, error) {
	var payload string
	err := r.db.QueryRowContext(ctx,
		`SELECT payload FROM settings WHERE key = ?`, currentKey).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var settings domain.GameSettings
	if err := json.Unmarshal([]byte(payload), &settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	return &settings, nil
}

func (r *SettingsRepository) Save(ctx context.Context, settings *domain.GameSettings) error {
	payload, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO settings (key, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		currentKey, string(payload), time.Now())
	return err
}
