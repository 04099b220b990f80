package game

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"

	"riddle-rush/internal/constants"
	"riddle-rush/internal/domain"
)

// randomLetter picks one lowercase letter of the game alphabet.
func randomLetter() string {
	return strings.ToLower(string(constants.Alphabet[rand.IntN(len(constants.Alphabet))]))
}

// ValidatePlayerName checks a candidate name against the players already in
// the session: non-empty after trimming, bounded length, unique ignoring
// case.
func ValidatePlayerName(name string, existing []domain.Player) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("player name cannot be empty")
	}
	if len(name) > constants.MaxPlayerNameLength {
		return fmt.Errorf("player name must be %d characters or less", constants.MaxPlayerNameLength)
	}
	for _, p := range existing {
		if strings.EqualFold(p.Name, trimmed) {
			return fmt.Errorf("player name already exists: %s", trimmed)
		}
	}
	return nil
}

// currentTurnPlayer returns the first player in list order who has not
// submitted yet, or nil when the round is fully collected.
func currentTurnPlayer(players []domain.Player) *domain.Player {
	for i := range players {
		if !players[i].HasSubmitted {
			return &players[i]
		}
	}
	return nil
}

// allSubmitted reports whether every player has taken their turn. Vacuously
// false for an empty player list.
func allSubmitted(players []domain.Player) bool {
	if len(players) == 0 {
		return false
	}
	for _, p := range players {
		if !p.HasSubmitted {
			return false
		}
	}
	return true
}

// rankPlayers sorts players by total score descending. The sort is stable:
// ties keep their prior relative order since no secondary key is defined.
// Rank is the 1-based position; IsWinner marks only the top entry of a
// completed game whose score is above zero, so an all-zero game never
// declares a winner.
func rankPlayers(players []domain.Player, status domain.SessionStatus) []domain.LeaderboardPlayer {
	sorted := make([]domain.Player, len(players))
	copy(sorted, players)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TotalScore > sorted[j].TotalScore
	})

	board := make([]domain.LeaderboardPlayer, len(sorted))
	for i, p := range sorted {
		board[i] = domain.LeaderboardPlayer{
			Player:   p,
			Rank:     i + 1,
			IsWinner: i == 0 && status == domain.StatusCompleted && p.TotalScore > 0,
		}
	}
	return board
}

// Duration returns the elapsed session time in milliseconds; a zero end
// means the session is still running and nowMillis is used instead.
func Duration(startTime, endTime, nowMillis int64) int64 {
	end := endTime
	if end == 0 {
		end = nowMillis
	}
	if end < startTime {
		return 0
	}
	return end - startTime
}

// FormatDuration renders a millisecond duration as "3m 20s" or "45s".
func FormatDuration(milliseconds int64) string {
	seconds := milliseconds / 1000
	minutes := seconds / 60
	remaining := seconds % 60

	if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, remaining)
	}
	return fmt.Sprintf("%ds", seconds)
}
