package fx

import (
	"riddle-rush/internal/answers"
	"riddle-rush/internal/api"
	"riddle-rush/internal/catalog"
	"riddle-rush/internal/config"
	"riddle-rush/internal/database"
	"riddle-rush/internal/game"
	"riddle-rush/internal/logger"
	"riddle-rush/internal/repository"
	"riddle-rush/internal/server"
	"riddle-rush/internal/settings"
	"riddle-rush/internal/stats"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func ProvideChecker(cat *catalog.Catalog, petscan *api.PetScanClient, cfg *config.Config, log zerolog.Logger) *answers.Checker {
	return answers.NewChecker(cat, petscan, cfg.OfflineMode, log)
}

func ProvideAggregator(statsRepo *repository.StatisticsRepository, lbRepo *repository.LeaderboardRepository, log zerolog.Logger) *stats.Aggregator {
	return stats.NewAggregator(statsRepo, lbRepo, log)
}

func ProvideGameStore(sessions *repository.SessionRepository, aggregator *stats.Aggregator, cat *catalog.Catalog, log zerolog.Logger) *game.Store {
	return game.NewStore(sessions, aggregator, cat, log)
}

func ProvideSettings(repo *repository.SettingsRepository, checker *answers.Checker, log zerolog.Logger) *settings.Service {
	return settings.NewService(repo, checker, log)
}

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	// repos
	fx.Provide(repository.NewSessionRepository),
	fx.Provide(repository.NewStatisticsRepository),
	fx.Provide(repository.NewLeaderboardRepository),
	fx.Provide(repository.NewSettingsRepository),
	// data + api client
	fx.Provide(catalog.New),
	fx.Provide(api.NewPetScanClient),
	// svc
	fx.Provide(ProvideChecker),
	fx.Provide(ProvideAggregator),
	fx.Provide(ProvideGameStore),
	fx.Provide(ProvideSettings),
	// server
	fx.Provide(server.NewGameServer),
)
