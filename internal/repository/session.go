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

// currentKey is the fixed key of the single "current session" row.
const currentKey = "current"

type SessionRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewSessionRepository(sqlDB *sql.DB, logger zerolog.Logger) *SessionRepository {
	return &SessionRepository{
		db:     sqlDB,
		logger: logger,
	}
}

// SaveGameSession stores the session as the current session and, when it has
// an ID, also under its own ID. The by-ID write is non-critical; a failure
// there is logged and the save still succeeds. Unlike the other write paths
// the error here propagates so the caller can surface a failed save.
func (r *SessionRepository) SaveGameSession(ctx context.Context, session *domain.GameSession) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO game_session (key, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		currentKey, string(payload), now)
	if err != nil {
		return fmt.Errorf("failed to save current session: %w", err)
	}

	if session.ID != "" {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO game_sessions_by_id (id, payload, updated_at) VALUES (?, ?, ?)
			ON CONFLICT (id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
			session.ID, string(payload), now)
		if err != nil {
			r.logger.Warn().Err(err).Str("session_id", session.ID).Msg("failed to save session by ID (non-critical)")
		}
	}

	return tx.Commit()
}

func (r *SessionRepository) GetGameSession(ctx context.Context) (*domain.GameSession, error) {
	return r.scanSession(r.db.QueryRowContext(ctx,
		`SELECT payload FROM game_session WHERE key = ?`, currentKey))
}

func (r *SessionRepository) GetGameSessionByID(ctx context.Context, sessionID string) (*domain.GameSession, error) {
	return r.scanSession(r.db.QueryRowContext(ctx,
		`SELECT payload FROM game_sessions_by_id WHERE id = ?`, sessionID))
}

func (r *SessionRepository) scanSession(row *sql.Row) (*domain.GameSession, error) {
	var payload string
	if err := row.Scan(&payload); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	var session domain.GameSession
	if err := json.Unmarshal([]byte(payload), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

func (r *SessionRepository) ClearGameSession(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM game_session WHERE key = ?`, currentKey)
	return err
}

// SaveGameHistory upserts every given session into the history store.
func (r *SessionRepository) SaveGameHistory(ctx context.Context, history []domain.GameSession) error {
	if len(history) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for i := range history {
		session := &history[i]
		payload, err := json.Marshal(session)
		if err != nil {
			return fmt.Errorf("failed to marshal session %s: %w", session.ID, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO game_history (id, start_time, payload) VALUES (?, ?, ?)
			ON CONFLICT (id) DO UPDATE SET start_time = excluded.start_time, payload = excluded.payload`,
			session.ID, session.StartTime, string(payload))
		if err != nil {
			return fmt.Errorf("failed to save history entry %s: %w", session.ID, err)
		}
	}

	return tx.Commit()
}

// GetGameHistory returns up to limit sessions, newest first.
func (r *SessionRepository) GetGameHistory(ctx context.Context, limit int) ([]domain.GameSession, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT payload FROM game_history ORDER BY start_time DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []domain.GameSession
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var session domain.GameSession
		if err := json.Unmarshal([]byte(payload), &session); err != nil {
			r.logger.Warn().Err(err).Msg("skipping corrupt history entry")
			continue
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

func (r *SessionRepository) ClearGameHistory(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM game_history`)
	return err
}
