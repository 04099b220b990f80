package game

import (
	"riddle-rush/internal/domain"
)

// The getters compute derived views on demand from the current session.
// They return copies; mutating a returned value never touches store state.

func (s *Store) HasActiveSession() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil
}

// CurrentSession returns a snapshot of the active session, or nil.
func (s *Store) CurrentSession() *domain.GameSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	snapshot := *s.current
	snapshot.Players = append([]domain.Player(nil), s.current.Players...)
	snapshot.RoundHistory = append([]domain.RoundResult(nil), s.current.RoundHistory...)
	snapshot.Attempts = append([]domain.GameAttempt(nil), s.current.Attempts...)
	return &snapshot
}

// Players returns a copy of the session's player list, nil without a session.
func (s *Store) Players() []domain.Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	return append([]domain.Player(nil), s.current.Players...)
}

// CurrentPlayerTurn returns the first player in list order who has not
// submitted, or nil once the round is fully collected (or without a session).
func (s *Store) CurrentPlayerTurn() *domain.Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	if p := currentTurnPlayer(s.current.Players); p != nil {
		player := *p
		return &player
	}
	return nil
}

func (s *Store) AllPlayersSubmitted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return false
	}
	return allSubmitted(s.current.Players)
}

// Leaderboard ranks the session's players by total score descending.
func (s *Store) Leaderboard() []domain.LeaderboardPlayer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	return rankPlayers(s.current.Players, s.current.Status)
}

func (s *Store) IsGameCompleted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil && s.current.Status == domain.StatusCompleted
}

// GameStatus returns the session status, empty without a session.
func (s *Store) GameStatus() domain.SessionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return ""
	}
	return s.current.Status
}

func (s *Store) CurrentRound() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return 0
	}
	return s.current.CurrentRound
}

// RoundHistory returns a copy of the completed-round snapshots.
func (s *Store) RoundHistory() []domain.RoundResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	return append([]domain.RoundResult(nil), s.current.RoundHistory...)
}

// CurrentScore is the legacy single-player score, zero without a session.
func (s *Store) CurrentScore() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return 0
	}
	return s.current.Score
}

// CurrentAttempts returns the legacy single-player attempts.
func (s *Store) CurrentAttempts() []domain.GameAttempt {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	return append([]domain.GameAttempt(nil), s.current.Attempts...)
}

func (s *Store) CurrentCategory() *domain.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil || s.current.Category == nil {
		return nil
	}
	category := *s.current.Category
	return &category
}

func (s *Store) CurrentLetter() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return ""
	}
	return s.current.Letter
}

// History returns the in-memory session history, newest last.
func (s *Store) History() []domain.GameSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.GameSession(nil), s.history...)
}
