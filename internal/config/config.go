package config

import (
	"fmt"
	"os"
	"strconv"

	"protocol-tracker/internal/constants"
	"protocol-tracker/internal/roster"
	"protocol-tracker/internal/stats"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	DBPath      string
	ServerPort  string
	LogLevel    string
	SeasonsFile string

	MinGamesPair   int
	MinGamesTrio   int
	MinGamesMatrix int

	Archive ArchiveConfig
}

// ArchiveConfig points at an S3-compatible bucket. Archiving is disabled when
// Bucket is empty.
type ArchiveConfig struct {
	Endpoint        string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	Region          string
}

func (a ArchiveConfig) Enabled() bool {
	return a.Bucket != ""
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		DBPath:      getEnv("DB_PATH", "protocol-tracker.db"),
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		SeasonsFile: getEnv("SEASONS_FILE", ""),
		Archive: ArchiveConfig{
			Endpoint:        getEnv("ARCHIVE_ENDPOINT", ""),
			Bucket:          getEnv("ARCHIVE_BUCKET", ""),
			AccessKeyID:     getEnv("ARCHIVE_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("ARCHIVE_SECRET_ACCESS_KEY", ""),
			Region:          getEnv("ARCHIVE_REGION", "auto"),
		},
	}

	var err error
	if cfg.MinGamesPair, err = getEnvInt("MIN_GAMES_PAIR", constants.DefaultMinGamesPair); err != nil {
		return nil, err
	}
	if cfg.MinGamesTrio, err = getEnvInt("MIN_GAMES_TRIO", constants.DefaultMinGamesTrio); err != nil {
		return nil, err
	}
	if cfg.MinGamesMatrix, err = getEnvInt("MIN_GAMES_MATRIX", constants.DefaultMinGamesMatrix); err != nil {
		return nil, err
	}

	if cfg.Archive.Enabled() && (cfg.Archive.AccessKeyID == "" || cfg.Archive.SecretAccessKey == "") {
		return nil, fmt.Errorf("ARCHIVE_ACCESS_KEY_ID and ARCHIVE_SECRET_ACCESS_KEY are required when ARCHIVE_BUCKET is set")
	}

	logger.Info().
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Str("seasons_file", cfg.SeasonsFile).
		Int("min_games_pair", cfg.MinGamesPair).
		Int("min_games_trio", cfg.MinGamesTrio).
		Int("min_games_matrix", cfg.MinGamesMatrix).
		Bool("archive_enabled", cfg.Archive.Enabled()).
		Msg("configuration loaded")

	return cfg, nil
}

func (c *Config) Thresholds() stats.Thresholds {
	return stats.Thresholds{
		MinPair:   c.MinGamesPair,
		MinTrio:   c.MinGamesTrio,
		MinMatrix: c.MinGamesMatrix,
	}
}

func ProvideThresholds(cfg *Config) stats.Thresholds {
	return cfg.Thresholds()
}

func ProvideCatalog(cfg *Config, logger zerolog.Logger) (*roster.Catalog, error) {
	catalog, err := roster.LoadCatalog(cfg.SeasonsFile)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int("seasons", len(catalog.All())).
		Str("default", catalog.Default().Name).
		Msg("season catalog loaded")

	return catalog, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer, got %q", key, v)
	}
	return n, nil
}

var Module = fx.Provide(Load, ProvideThresholds, ProvideCatalog)
