package domain

// SessionStatus tracks the lifecycle of a game session. Both completed and
// abandoned are terminal; a new session must be created afterwards.
type SessionStatus string

const (
	StatusActive    SessionStatus = "active"
	StatusCompleted SessionStatus = "completed"
	StatusAbandoned SessionStatus = "abandoned"
)

// SearchProvider selects the answer source for a category.
type SearchProvider string

const (
	ProviderOffline   SearchProvider = "offline"
	ProviderPetScan   SearchProvider = "petscan"
	ProviderWikipedia SearchProvider = "wikipedia"
)

// Category is one playable challenge category. SearchWord is the key used for
// external or offline answer lookup; Letter is only set once the category is
// bound to a round.
type Category struct {
	ID             int            `json:"id"`
	Name           string         `json:"name"`
	SearchWord     string         `json:"searchWord"`
	Key            string         `json:"key"`
	SearchProvider SearchProvider `json:"searchProvider"`
	AdditionalData []string       `json:"additionalData,omitempty"`
	Letter         string         `json:"letter,omitempty"`
}

// Player is one participant of a multi-player session. Round-scoped fields
// (CurrentRoundScore, CurrentRoundAnswer, HasSubmitted) are reset at round
// start; TotalScore accumulates across rounds.
type Player struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	TotalScore         int    `json:"totalScore"`
	CurrentRoundScore  int    `json:"currentRoundScore"`
	CurrentRoundAnswer string `json:"currentRoundAnswer,omitempty"`
	HasSubmitted       bool   `json:"hasSubmitted"`
	Avatar             string `json:"avatar,omitempty"`
}

// PlayerRoundResult is one player's line in a round snapshot.
type PlayerRoundResult struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	Answer     string `json:"answer,omitempty"`
	Score      int    `json:"score"`
}

// RoundResult is an immutable snapshot taken when a round completes.
type RoundResult struct {
	ID        string              `json:"id"`
	Round     int                 `json:"round"`
	Category  string              `json:"category"`
	Letter    string              `json:"letter"`
	Timestamp int64               `json:"timestamp"`
	Results   []PlayerRoundResult `json:"results"`
}

// GameAttempt is a single guess in a legacy single-player session.
type GameAttempt struct {
	Term      string `json:"term"`
	Found     bool   `json:"found"`
	Timestamp int64  `json:"timestamp"`
}

// GameSession is the single active game. Multi-player sessions use Players,
// CurrentRound and RoundHistory; legacy single-player sessions leave Players
// empty and use Score/Attempts instead. Timestamps are unix milliseconds, the
// format the browser client stores and displays.
type GameSession struct {
	ID           string        `json:"id"`
	GameName     string        `json:"gameName,omitempty"`
	UserID       string        `json:"userId,omitempty"`
	Players      []Player      `json:"players,omitempty"`
	CurrentRound int           `json:"currentRound"`
	Category     *Category     `json:"category,omitempty"`
	Letter       string        `json:"letter,omitempty"`
	StartTime    int64         `json:"startTime"`
	EndTime      int64         `json:"endTime,omitempty"`
	Status       SessionStatus `json:"status"`
	RoundHistory []RoundResult `json:"roundHistory,omitempty"`

	// Legacy single-player fields.
	Score    int           `json:"score"`
	Attempts []GameAttempt `json:"attempts,omitempty"`
}

// IsMultiplayer reports whether the session runs the round/turn state machine.
func (s *GameSession) IsMultiplayer() bool {
	return len(s.Players) > 0
}

// LeaderboardPlayer is one row of the derived in-game leaderboard.
type LeaderboardPlayer struct {
	Player
	Rank     int  `json:"rank"`
	IsWinner bool `json:"isWinner"`
}

// GameStatistics is the single row of cumulative single-player counters.
type GameStatistics struct {
	TotalGames       int            `json:"totalGames"`
	TotalAttempts    int            `json:"totalAttempts"`
	CorrectAttempts  int            `json:"correctAttempts"`
	TotalScore       int            `json:"totalScore"`
	TotalPlayTime    int64          `json:"totalPlayTime"`
	CategoriesPlayed map[string]int `json:"categoriesPlayed"`
	LastPlayed       int64          `json:"lastPlayed"`
	BestScore        int            `json:"bestScore"`
	AverageScore     int            `json:"averageScore"`
	StreakCurrent    int            `json:"streakCurrent"`
	StreakBest       int            `json:"streakBest"`
}

// LeaderboardEntry is one persisted row per completed single-player session
// that met the minimum score threshold. Append-only.
type LeaderboardEntry struct {
	SessionID       string `json:"sessionId"`
	Score           int    `json:"score"`
	Category        string `json:"category"`
	CategoryKey     string `json:"categoryKey"`
	Attempts        int    `json:"attempts"`
	CorrectAttempts int    `json:"correctAttempts"`
	Timestamp       int64  `json:"timestamp"`
	Duration        int64  `json:"duration"`
}

// GameSettings are persisted user preferences, independent of game state.
type GameSettings struct {
	MaxPlayersPerGame         int    `json:"maxPlayersPerGame"`
	ShowLeaderboardAfterRound bool   `json:"showLeaderboardAfterRound"`
	LeaderboardEnabled        bool   `json:"leaderboardEnabled"`
	DebugMode                 bool   `json:"debugMode"`
	SoundEnabled              bool   `json:"soundEnabled"`
	SoundVolume               int    `json:"soundVolume"`
	MusicEnabled              bool   `json:"musicEnabled"`
	MusicVolume               int    `json:"musicVolume"`
	OfflineMode               bool   `json:"offlineMode"`
	Language                  string `json:"language"`
	FortuneWheelEnabled       bool   `json:"fortuneWheelEnabled"`
}

// DefaultSettings mirrors the defaults the game ships with.
func DefaultSettings() GameSettings {
	return GameSettings{
		MaxPlayersPerGame:         4,
		ShowLeaderboardAfterRound: true,
		LeaderboardEnabled:        true,
		SoundEnabled:              true,
		SoundVolume:               75,
		MusicEnabled:              true,
		MusicVolume:               75,
		Language:                  "de",
	}
}

// CheckAnswerResult is the answer-checking service's verdict: whether the
// submitted term is a valid answer, plus a few alternative valid answers for
// player feedback.
type CheckAnswerResult struct {
	Found bool     `json:"found"`
	Other []string `json:"other"`
}
