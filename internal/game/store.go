package game

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"riddle-rush/internal/constants"
	"riddle-rush/internal/domain"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// SessionStore is the persistence surface the game store writes through.
type SessionStore interface {
	SaveGameSession(ctx context.Context, session *domain.GameSession) error
	GetGameSession(ctx context.Context) (*domain.GameSession, error)
	ClearGameSession(ctx context.Context) error
	SaveGameHistory(ctx context.Context, history []domain.GameSession) error
	GetGameHistory(ctx context.Context, limit int) ([]domain.GameSession, error)
}

// StatisticsUpdater consumes a finished session.
type StatisticsUpdater interface {
	Update(ctx context.Context, session *domain.GameSession) (*domain.GameStatistics, error)
}

// CategoryPicker supplies random categories for new games and rounds.
type CategoryPicker interface {
	RandomCategory() (*domain.Category, error)
}

// Store owns the single mutable game session and runs the round/turn state
// machine. It is an explicit injected object rather than a process global so
// tests and embedders can run independent instances.
//
// Every action follows the same shape: guard, mutate in memory, persist.
// A missing session or player makes the action a silent no-op, observable
// only through unchanged state; callers that need to distinguish check the
// getters first. Persistence failures never roll back the in-memory
// mutation: the game stays playable offline, and only a failed current-
// session save is reported so the UI can warn the user.
type Store struct {
	sessions SessionStore
	stats    StatisticsUpdater
	catalog  CategoryPicker
	logger   zerolog.Logger

	now func() time.Time

	mu      sync.Mutex
	current *domain.GameSession
	history []domain.GameSession
}

func NewStore(sessions SessionStore, stats StatisticsUpdater, catalog CategoryPicker, logger zerolog.Logger) *Store {
	return &Store{
		sessions: sessions,
		stats:    stats,
		catalog:  catalog,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *Store) nowMillis() int64 {
	return s.now().UnixMilli()
}

// LoadFromDB restores the current session and recent history. Infrastructure
// failures are absorbed; a fresh store is a valid starting point.
func (s *Store) LoadFromDB(ctx context.Context) {
	var (
		session *domain.GameSession
		history []domain.GameSession
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		loaded, err := s.sessions.GetGameSession(ctx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("failed to load current session")
			return nil
		}
		session = loaded
		return nil
	})
	g.Go(func() error {
		loaded, err := s.sessions.GetGameHistory(ctx, constants.HistoryQueryLimit)
		if err != nil {
			s.logger.Warn().Err(err).Msg("failed to load game history")
			return nil
		}
		history = loaded
		return nil
	})
	_ = g.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	if session != nil {
		s.current = session
	}
	if history != nil {
		s.history = history
	}
}

// persist writes the current session. The save error propagates; it is the
// one persistence failure the player must hear about.
func (s *Store) persist(ctx context.Context) error {
	if s.current == nil {
		return nil
	}
	if err := s.sessions.SaveGameSession(ctx, s.current); err != nil {
		s.logger.Error().Err(err).Str("session_id", s.current.ID).Msg("failed to save game session")
		return fmt.Errorf("failed to save game session: %w", err)
	}
	return nil
}

// StartNewGame begins a legacy single-player session with a random category
// and letter.
func (s *Store) StartNewGame(ctx context.Context) (*domain.GameSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	category, err := s.catalog.RandomCategory()
	if err != nil {
		return nil, fmt.Errorf("unable to start game without categories: %w", err)
	}

	letter := randomLetter()
	bound := *category
	bound.Letter = letter

	session := &domain.GameSession{
		ID:        uuid.NewString(),
		UserID:    "default-user",
		Category:  &bound,
		Letter:    letter,
		StartTime: s.nowMillis(),
		Status:    domain.StatusActive,
		Attempts:  []domain.GameAttempt{},
	}

	s.current = session
	if err := s.persist(ctx); err != nil {
		return nil, err
	}

	s.logger.Info().Str("session_id", session.ID).Str("category", bound.Name).Str("letter", letter).Msg("new game started")
	return session, nil
}

// ResumeOrStartNewGame returns the active session if one exists, otherwise
// starts a new single-player game.
func (s *Store) ResumeOrStartNewGame(ctx context.Context) (*domain.GameSession, error) {
	s.mu.Lock()
	if s.current != nil {
		session := s.current
		s.mu.Unlock()
		return session, nil
	}
	s.mu.Unlock()
	return s.StartNewGame(ctx)
}

// SubmitAttempt records a guess in the legacy single-player session and
// adds the fixed increment for a correct one.
func (s *Store) SubmitAttempt(ctx context.Context, term string, found bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil
	}

	s.current.Attempts = append(s.current.Attempts, domain.GameAttempt{
		Term:      term,
		Found:     found,
		Timestamp: s.nowMillis(),
	})
	if found {
		s.current.Score += constants.ScorePerCorrectAnswer
	}

	return s.persist(ctx)
}

// EndGame finalizes the legacy single-player session: stamps the end time,
// pushes it to history, feeds the statistics aggregator and clears the
// current session. History and statistics writes are best effort.
func (s *Store) EndGame(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil
	}

	s.current.EndTime = s.nowMillis()
	finished := *s.current
	s.history = append(s.history, finished)

	if err := s.persist(ctx); err != nil {
		return err
	}

	if err := s.sessions.SaveGameHistory(ctx, []domain.GameSession{finished}); err != nil {
		s.logger.Warn().Err(err).Str("session_id", finished.ID).Msg("failed to save game history")
	}
	if _, err := s.stats.Update(ctx, &finished); err != nil {
		s.logger.Warn().Err(err).Str("session_id", finished.ID).Msg("failed to update statistics")
	}
	if err := s.sessions.ClearGameSession(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("failed to clear stored session")
	}

	s.current = nil
	s.logger.Info().Str("session_id", finished.ID).Int("score", finished.Score).Msg("game ended")
	return nil
}

// SetupPlayers starts a multi-player session. Names are validated against
// each other; customLetter, when given, binds the first round's letter
// instead of a random one.
func (s *Store) SetupPlayers(ctx context.Context, playerNames []string, gameName, customLetter string) (*domain.GameSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(playerNames) == 0 {
		return nil, fmt.Errorf("at least one player is required")
	}
	if len(playerNames) > constants.MaxPlayers {
		return nil, fmt.Errorf("at most %d players are allowed", constants.MaxPlayers)
	}

	players := make([]domain.Player, 0, len(playerNames))
	for _, name := range playerNames {
		if err := ValidatePlayerName(name, players); err != nil {
			return nil, err
		}
		players = append(players, domain.Player{
			ID:   uuid.NewString(),
			Name: strings.TrimSpace(name),
		})
	}

	category, err := s.catalog.RandomCategory()
	if err != nil {
		return nil, fmt.Errorf("unable to start game without categories: %w", err)
	}

	letter := customLetter
	if letter == "" {
		letter = randomLetter()
	}
	bound := *category
	bound.Letter = letter

	session := &domain.GameSession{
		ID:           uuid.NewString(),
		GameName:     gameName,
		Players:      players,
		CurrentRound: constants.MinRoundNumber,
		Category:     &bound,
		Letter:       letter,
		StartTime:    s.nowMillis(),
		Status:       domain.StatusActive,
		RoundHistory: []domain.RoundResult{},
	}

	s.current = session
	if err := s.persist(ctx); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("session_id", session.ID).
		Int("players", len(players)).
		Str("category", bound.Name).
		Str("letter", letter).
		Msg("multiplayer game started")
	return session, nil
}

// SubmitPlayerAnswer records a player's answer for the current round and
// marks their turn as taken. Unknown session or player is a silent no-op.
func (s *Store) SubmitPlayerAnswer(ctx context.Context, playerID, answer string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	player := s.findPlayer(playerID)
	if player == nil {
		return nil
	}

	player.CurrentRoundAnswer = answer
	player.HasSubmitted = true

	return s.persist(ctx)
}

// AssignPlayerScore sets the player's round score and adds the points to
// their running total. The round score is overwritten, not incremented,
// while the total always accumulates; assigning twice in one round therefore
// counts the points twice in the total. That mirrors the shipped behavior
// and is kept until product settles the intended semantics.
func (s *Store) AssignPlayerScore(ctx context.Context, playerID string, points int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	player := s.findPlayer(playerID)
	if player == nil {
		return nil
	}

	player.CurrentRoundScore = points
	player.TotalScore += points

	return s.persist(ctx)
}

// UpdatePlayerAvatar stores a player's avatar image reference.
func (s *Store) UpdatePlayerAvatar(ctx context.Context, playerID, avatar string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	player := s.findPlayer(playerID)
	if player == nil {
		return nil
	}

	player.Avatar = avatar
	return s.persist(ctx)
}

// CompleteRound appends an immutable snapshot of every player's answer and
// score for the current round. Player round state is NOT reset here; that
// happens when the next round starts, so the results stay visible.
func (s *Store) CompleteRound(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil || !s.current.IsMultiplayer() {
		return nil
	}

	id, err := gonanoid.New()
	if err != nil {
		return fmt.Errorf("failed to generate round id: %w", err)
	}

	categoryName := ""
	if s.current.Category != nil {
		categoryName = s.current.Category.Name
	}

	result := domain.RoundResult{
		ID:        id,
		Round:     s.current.CurrentRound,
		Category:  categoryName,
		Letter:    s.current.Letter,
		Timestamp: s.nowMillis(),
		Results:   make([]domain.PlayerRoundResult, 0, len(s.current.Players)),
	}
	for _, p := range s.current.Players {
		result.Results = append(result.Results, domain.PlayerRoundResult{
			PlayerID:   p.ID,
			PlayerName: p.Name,
			Answer:     p.CurrentRoundAnswer,
			Score:      p.CurrentRoundScore,
		})
	}

	s.current.RoundHistory = append(s.current.RoundHistory, result)

	s.logger.Info().
		Str("session_id", s.current.ID).
		Int("round", result.Round).
		Msg("round completed")
	return s.persist(ctx)
}

// StartNextRound advances to the next round: round-scoped player state is
// reset, totals are kept, and a fresh category and letter are bound. Either
// may be supplied by the caller; nil or empty means pick at random.
func (s *Store) StartNextRound(ctx context.Context, category *domain.Category, letter string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil || !s.current.IsMultiplayer() {
		return nil
	}

	if category == nil {
		picked, err := s.catalog.RandomCategory()
		if err != nil {
			return fmt.Errorf("unable to start round without categories: %w", err)
		}
		category = picked
	}
	if letter == "" {
		letter = randomLetter()
	}

	s.current.CurrentRound++
	for i := range s.current.Players {
		s.current.Players[i].HasSubmitted = false
		s.current.Players[i].CurrentRoundAnswer = ""
		s.current.Players[i].CurrentRoundScore = 0
	}

	bound := *category
	bound.Letter = letter
	s.current.Category = &bound
	s.current.Letter = letter

	s.logger.Info().
		Str("session_id", s.current.ID).
		Int("round", s.current.CurrentRound).
		Str("category", bound.Name).
		Str("letter", letter).
		Msg("next round started")
	return s.persist(ctx)
}

// CompleteGame marks the session completed and keeps it around so the final
// leaderboard can still be read. Completed is terminal.
func (s *Store) CompleteGame(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil
	}

	s.current.Status = domain.StatusCompleted
	s.current.EndTime = s.nowMillis()

	if err := s.persist(ctx); err != nil {
		return err
	}

	s.logger.Info().Str("session_id", s.current.ID).Msg("game completed")
	return nil
}

// AbandonGame marks the session abandoned and clears it. Abandoned is
// terminal; the by-ID record keeps the final state.
func (s *Store) AbandonGame(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil
	}

	s.current.Status = domain.StatusAbandoned
	s.current.EndTime = s.nowMillis()

	if err := s.persist(ctx); err != nil {
		return err
	}
	if err := s.sessions.ClearGameSession(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("failed to clear stored session")
	}

	s.logger.Info().Str("session_id", s.current.ID).Msg("game abandoned")
	s.current = nil
	return nil
}

// ClearSession drops the in-memory session without touching storage.
func (s *Store) ClearSession() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}

// findPlayer returns a pointer into the current session's player slice, or
// nil when the session or player does not exist. Callers hold s.mu.
func (s *Store) findPlayer(playerID string) *domain.Player {
	if s.current == nil {
		return nil
	}
	for i := range s.current.Players {
		if s.current.Players[i].ID == playerID {
			return &s.current.Players[i]
		}
	}
	return nil
}
