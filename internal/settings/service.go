package settings

import (
	"context"
	"fmt"
	"sync"

	"riddle-rush/internal/domain"

	"github.com/rs/zerolog"
)

// Store persists the single settings row.
type Store interface {
	Get(ctx context.Context) (*domain.GameSettings, error)
	Save(ctx context.Context, settings *domain.GameSettings) error
}

// OfflineModeSetter is notified when the offline-mode preference changes,
// so answer checking can switch providers without a restart.
type OfflineModeSetter interface {
	SetOfflineMode(enabled bool)
}

// Service holds the persisted user preferences. Reads fall back to defaults
// when storage is unavailable; the game never blocks on settings.
type Service struct {
	store   Store
	checker OfflineModeSetter
	logger  zerolog.Logger

	mu      sync.Mutex
	current domain.GameSettings
	loaded  bool
}

func NewService(store Store, checker OfflineModeSetter, logger zerolog.Logger) *Service {
	return &Service{
		store:   store,
		checker: checker,
		logger:  logger,
		current: domain.DefaultSettings(),
	}
}

// Load reads the persisted settings, merging them over the defaults. Called
// once at startup; later calls return the cached copy.
func (s *Service) Load(ctx context.Context) domain.GameSettings {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return s.current
	}

	stored, err := s.store.Get(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to load settings, using defaults")
	} else if stored != nil {
		s.current = *stored
	}
	s.loaded = true

	if s.checker != nil {
		s.checker.SetOfflineMode(s.current.OfflineMode)
	}
	return s.current
}

// Get returns the current settings.
func (s *Service) Get() domain.GameSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Update applies fn to the settings and persists the result.
func (s *Service) Update(ctx context.Context, fn func(*domain.GameSettings)) (domain.GameSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(&s.current)

	if s.checker != nil {
		s.checker.SetOfflineMode(s.current.OfflineMode)
	}

	if err := s.store.Save(ctx, &s.current); err != nil {
		s.logger.Warn().Err(err).Msg("failed to save settings")
		return s.current, fmt.Errorf("failed to save settings: %w", err)
	}
	return s.current, nil
}

func (s *Service) ToggleSound(ctx context.Context) (domain.GameSettings, error) {
	return s.Update(ctx, func(gs *domain.GameSettings) { gs.SoundEnabled = !gs.SoundEnabled })
}

func (s *Service) ToggleLeaderboard(ctx context.Context) (domain.GameSettings, error) {
	return s.Update(ctx, func(gs *domain.GameSettings) { gs.LeaderboardEnabled = !gs.LeaderboardEnabled })
}

func (s *Service) ToggleDebugMode(ctx context.Context) (domain.GameSettings, error) {
	return s.Update(ctx, func(gs *domain.GameSettings) { gs.DebugMode = !gs.DebugMode })
}

func (s *Service) ToggleFortuneWheel(ctx context.Context) (domain.GameSettings, error) {
	return s.Update(ctx, func(gs *domain.GameSettings) { gs.FortuneWheelEnabled = !gs.FortuneWheelEnabled })
}

func (s *Service) SetOfflineMode(ctx context.Context, enabled bool) (domain.GameSettings, error) {
	return s.Update(ctx, func(gs *domain.GameSettings) { gs.OfflineMode = enabled })
}

func (s *Service) SetLanguage(ctx context.Context, lang string) (domain.GameSettings, error) {
	return s.Update(ctx, func(gs *domain.GameSettings) { gs.Language = lang })
}

// ResetToDefaults restores and persists the shipped defaults.
func (s *Service) ResetToDefaults(ctx context.Context) (domain.GameSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = domain.DefaultSettings()
	if s.checker != nil {
		s.checker.SetOfflineMode(s.current.OfflineMode)
	}
	if err := s.store.Save(ctx, &s.current); err != nil {
		s.logger.Warn().Err(err).Msg("failed to save settings")
		return s.current, fmt.Errorf("failed to save settings: %w", err)
	}
	return s.current, nil
}

// ShouldShowLeaderboard reports whether the post-round leaderboard view is
// enabled.
func (s *Service) ShouldShowLeaderboard() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.LeaderboardEnabled && s.current.ShowLeaderboardAfterRound
}
