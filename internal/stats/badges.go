package stats

import (
	"context"
	"time"

	"riddle-rush/internal/domain"
)

// Badge is an achievement derived from the cumulative statistics.
type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Emoji       string `json:"emoji"`
	Description string `json:"description"`
	Unlocked    bool   `json:"unlocked"`
}

// Badges evaluates every achievement against the current statistics.
func (a *Aggregator) Badges(ctx context.Context) ([]Badge, error) {
	stats, err := a.GetOrInit(ctx)
	if err != nil {
		return nil, err
	}

	return []Badge{
		{
			ID: "first-steps", Name: "First Steps", Emoji: "👶",
			Description: "Play your first game",
			Unlocked:    stats.TotalGames >= 1,
		},
		{
			ID: "persistent", Name: "Persistent", Emoji: "💪",
			Description: "Play 10 games",
			Unlocked:    stats.TotalGames >= 10,
		},
		{
			ID: "dedicated", Name: "Dedicated", Emoji: "🏆",
			Description: "Play 50 games",
			Unlocked:    stats.TotalGames >= 50,
		},
		{
			ID: "oops-champion", Name: "Oops Champion", Emoji: "🤦",
			Description: "Get 50 wrong answers (happens to the best!)",
			Unlocked:    stats.TotalAttempts-stats.CorrectAttempts >= 50,
		},
		{
			ID: "sharpshooter", Name: "Sharpshooter", Emoji: "🎯",
			Description: "Get 100 correct answers",
			Unlocked:    stats.CorrectAttempts >= 100,
		},
		{
			ID: "streak-master", Name: "Streak Master", Emoji: "🔥",
			Description: "Win 5 games in a row",
			Unlocked:    stats.StreakBest >= 5,
		},
		{
			ID: "high-roller", Name: "High Roller", Emoji: "💎",
			Description: "Score 100 points in one game",
			Unlocked:    stats.BestScore >= 100,
		},
		{
			ID: "variety-lover", Name: "Variety Lover", Emoji: "🎨",
			Description: "Play 5 different categories",
			Unlocked:    len(stats.CategoriesPlayed) >= 5,
		},
		{
			ID: "marathon-runner", Name: "Marathon Runner", Emoji: "🏃",
			Description: "Play for 1 hour total",
			Unlocked:    stats.TotalPlayTime >= time.Hour.Milliseconds(),
		},
		{
			ID: "night-owl", Name: "Night Owl", Emoji: "🦉",
			Description: "Play between 10 PM and 6 AM",
			Unlocked:    isNightOwl(stats.LastPlayed),
		},
		{
			ID: "early-bird", Name: "Early Bird", Emoji: "🐦",
			Description: "Play between 5 AM and 8 AM",
			Unlocked:    isEarlyBird(stats.LastPlayed),
		},
		{
			ID: "perfectionist", Name: "Perfectionist", Emoji: "⭐",
			Description: "Get all answers right in a game (min 5 attempts)",
			Unlocked:    isPerfectGame(stats),
		},
	}, nil
}

func isNightOwl(timestamp int64) bool {
	hour := time.UnixMilli(timestamp).Hour()
	return hour >= 22 || hour < 6
}

func isEarlyBird(timestamp int64) bool {
	hour := time.UnixMilli(timestamp).Hour()
	return hour >= 5 && hour < 8
}

// isPerfectGame approximates a perfect game from the aggregate counters;
// per-game accuracy is not tracked.
func isPerfectGame(stats *domain.GameStatistics) bool {
	return stats.BestScore >= 50 && stats.TotalGames > 0
}
