package stats

import (
	"context"
	"fmt"
	"time"

	"riddle-rush/internal/constants"
	"riddle-rush/internal/domain"

	"github.com/rs/zerolog"
)

// StatisticsStore persists the single cumulative counters row.
type StatisticsStore interface {
	Get(ctx context.Context) (*domain.GameStatistics, error)
	Save(ctx context.Context, stats *domain.GameStatistics) error
}

// LeaderboardStore appends qualifying session results.
type LeaderboardStore interface {
	Save(ctx context.Context, entry *domain.LeaderboardEntry) error
	Top(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
}

// Aggregator folds completed single-player sessions into the cumulative
// statistics row and the persisted leaderboard. Multi-player sessions are
// out of its scope and skipped entirely.
type Aggregator struct {
	stats       StatisticsStore
	leaderboard LeaderboardStore
	logger      zerolog.Logger
}

func NewAggregator(stats StatisticsStore, leaderboard LeaderboardStore, logger zerolog.Logger) *Aggregator {
	return &Aggregator{
		stats:       stats,
		leaderboard: leaderboard,
		logger:      logger,
	}
}

// Update consumes a finished session. Incomplete (no end time) and
// multi-player sessions are skipped without error. The win streak counts
// consecutive sessions with at least one correct attempt; a session with
// none resets it. A session scoring at least the leaderboard minimum also
// earns a leaderboard entry.
func (a *Aggregator) Update(ctx context.Context, session *domain.GameSession) (*domain.GameStatistics, error) {
	if session == nil || session.EndTime == 0 {
		return nil, nil
	}
	if session.IsMultiplayer() {
		return nil, nil
	}

	stats, err := a.GetOrInit(ctx)
	if err != nil {
		return nil, err
	}

	duration := session.EndTime - session.StartTime
	correctAttempts := 0
	for _, attempt := range session.Attempts {
		if attempt.Found {
			correctAttempts++
		}
	}
	totalAttempts := len(session.Attempts)

	stats.TotalGames++
	stats.TotalAttempts += totalAttempts
	stats.CorrectAttempts += correctAttempts
	stats.TotalScore += session.Score
	stats.TotalPlayTime += duration
	stats.LastPlayed = session.EndTime

	if session.Category != nil {
		if stats.CategoriesPlayed == nil {
			stats.CategoriesPlayed = make(map[string]int)
		}
		stats.CategoriesPlayed[session.Category.Key]++
	}

	if session.Score > stats.BestScore {
		stats.BestScore = session.Score
	}
	stats.AverageScore = roundDiv(stats.TotalScore, stats.TotalGames)

	if correctAttempts > 0 {
		stats.StreakCurrent++
		if stats.StreakCurrent > stats.StreakBest {
			stats.StreakBest = stats.StreakCurrent
		}
	} else {
		stats.StreakCurrent = 0
	}

	if err := a.stats.Save(ctx, stats); err != nil {
		return nil, fmt.Errorf("failed to save statistics: %w", err)
	}

	if session.Score >= constants.MinLeaderboardScore {
		entry := &domain.LeaderboardEntry{
			SessionID:       session.ID,
			Score:           session.Score,
			Attempts:        totalAttempts,
			CorrectAttempts: correctAttempts,
			Timestamp:       session.EndTime,
			Duration:        duration,
		}
		if session.Category != nil {
			entry.Category = session.Category.Name
			entry.CategoryKey = session.Category.Key
		}
		if err := a.leaderboard.Save(ctx, entry); err != nil {
			a.logger.Warn().Err(err).Str("session_id", session.ID).Msg("failed to save leaderboard entry")
		}
	}

	a.logger.Debug().
		Str("session_id", session.ID).
		Int("total_games", stats.TotalGames).
		Int("streak", stats.StreakCurrent).
		Msg("statistics updated")
	return stats, nil
}

// GetOrInit returns the stored statistics, creating the initial row when
// none exists yet. A read failure degrades to a fresh zero row so the game
// keeps running without storage.
func (a *Aggregator) GetOrInit(ctx context.Context) (*domain.GameStatistics, error) {
	stats, err := a.stats.Get(ctx)
	if err != nil {
		a.logger.Warn().Err(err).Msg("failed to load statistics, starting fresh")
		stats = nil
	}
	if stats == nil {
		stats = a.initial()
		if err := a.stats.Save(ctx, stats); err != nil {
			a.logger.Warn().Err(err).Msg("failed to save initial statistics")
		}
	}
	return stats, nil
}

// Reset replaces the counters with a fresh zero row.
func (a *Aggregator) Reset(ctx context.Context) (*domain.GameStatistics, error) {
	stats := a.initial()
	if err := a.stats.Save(ctx, stats); err != nil {
		return nil, fmt.Errorf("failed to reset statistics: %w", err)
	}
	return stats, nil
}

// Leaderboard returns the persisted top entries, highest score first.
func (a *Aggregator) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = constants.LeaderboardQueryLimit
	}
	entries, err := a.leaderboard.Top(ctx, limit)
	if err != nil {
		a.logger.Warn().Err(err).Msg("failed to load leaderboard")
		return nil, nil
	}
	return entries, nil
}

func (a *Aggregator) initial() *domain.GameStatistics {
	return &domain.GameStatistics{
		CategoriesPlayed: make(map[string]int),
		LastPlayed:       time.Now().UnixMilli(),
	}
}

// roundDiv is integer division rounded half up, matching how the client
// displayed the average.
func roundDiv(total, count int) int {
	if count == 0 {
		return 0
	}
	return (total + count/2) / count
}
