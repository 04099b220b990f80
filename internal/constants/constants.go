package constants

import "time"

const (
	CategoryCacheTTL = 5 * time.Minute
	PetScanCacheTTL  = 5 * time.Minute
)

const (
	ExternalAPITimeout = 10 * time.Second
	DatabaseTimeout    = 5 * time.Second
	RequestTimeout     = 30 * time.Second
)

const (
	DBMaxOpenConns    = 100
	DBMaxIdleConns    = 10
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	// ScorePerCorrectAnswer is the fixed increment for a correct guess in the
	// legacy single-player mode.
	ScorePerCorrectAnswer = 10

	// MinLeaderboardScore is the minimum session score that earns a
	// persisted leaderboard entry.
	MinLeaderboardScore = 10

	// MaxSuggestions caps the alternative valid answers returned to the
	// player after a check.
	MaxSuggestions = 4

	MaxPlayers          = 6
	MaxPlayerNameLength = 20
	MinRoundNumber      = 1
)

const (
	Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

const (
	HistoryQueryLimit     = 50
	LeaderboardQueryLimit = 10
)
