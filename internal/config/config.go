package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	DBPath         string
	ServerPort     string
	LogLevel       string
	DataDir        string
	OfflineMode    bool
	PetScanBaseURL string
	PetScanLang    string
	CacheTTL       time.Duration
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		DBPath:         getEnv("DB_PATH", "riddlerush.db"),
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		DataDir:        getEnv("DATA_DIR", ""),
		OfflineMode:    getEnv("OFFLINE_MODE", "false") == "true",
		PetScanBaseURL: getEnv("PETSCAN_BASE_URL", "https://petscan.wmflabs.org/"),
		PetScanLang:    getEnv("PETSCAN_LANGUAGE", "de"),
		CacheTTL:       5 * time.Minute,
	}

	logger.Info().
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Str("data_dir", cfg.DataDir).
		Bool("offline_mode", cfg.OfflineMode).
		Dur("cache_ttl", cfg.CacheTTL).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var Module = fx.Provide(Load)
