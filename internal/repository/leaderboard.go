package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"riddle-rush/internal/domain"

	"github.com/rs/zerolog"
)

type LeaderboardRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewLeaderboardRepository(sqlDB *sql.DB, logger zerolog.Logger) *LeaderboardRepository {
	return &LeaderboardRepository{
		db:     sqlDB,
		logger: logger,
	}
}

// Save upserts the entry keyed by its session ID.
func (r *LeaderboardRepository) Save(ctx context.Context, entry *domain.LeaderboardEntry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal leaderboard entry: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO leaderboard (session_id, score, timestamp, payload) VALUES (?, ?, ?, ?)
		ON CONFLICT (session_id) DO UPDATE SET
			score = excluded.score, timestamp = excluded.timestamp, payload = excluded.payload`,
		entry.SessionID, entry.Score, entry.Timestamp, string(payload))
	return err
}

// Top returns up to limit entries, highest score first.
func (r *LeaderboardRepository) Top(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT payload FROM leaderboard ORDER BY score DESC, timestamp DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.LeaderboardEntry
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var entry domain.LeaderboardEntry
		if err := json.Unmarshal([]byte(payload), &entry); err != nil {
			r.logger.Warn().Err(err).Msg("skipping corrupt leaderboard entry")
			continue
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
