package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/dmitrijs2005/moviekeeper/internal/flagx"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// EnvConfig is a DTO read by cleanenv. Unset variables stay zero and do not
// override earlier sources.
type EnvConfig struct {
	CatalogBaseURL        string        `env:"MOVIEKEEPER_CATALOG_URL"`
	ImageBaseURL          string        `env:"MOVIEKEEPER_IMAGE_URL"`
	APIKey                string        `env:"MOVIEKEEPER_API_KEY,TMDB_API_KEY"`
	Language              string        `env:"MOVIEKEEPER_LANGUAGE"`
	StoreBackend          string        `env:"MOVIEKEEPER_STORE"`
	DatabasePath          string        `env:"MOVIEKEEPER_DB_PATH"`
	RedisURL              string        `env:"MOVIEKEEPER_REDIS_URL"`
	ListFreshness         time.Duration `env:"MOVIEKEEPER_LIST_FRESHNESS"`
	DetailMemoryCacheSize int           `env:"MOVIEKEEPER_DETAIL_CACHE_SIZE"`
	RateLimit             float64       `env:"MOVIEKEEPER_RATE_LIMIT"`
	RateBurst             int           `env:"MOVIEKEEPER_RATE_BURST"`
	RetryAttempts         uint          `env:"MOVIEKEEPER_RETRY_ATTEMPTS"`
	MetricsAddr           string        `env:"MOVIEKEEPER_METRICS_ADDR"`
	LogLevel              string        `env:"MOVIEKEEPER_LOG_LEVEL"`
}

// parseEnv loads the dotenv file named by -e/-env (or ./.env when present)
// into the process environment, then overlays cfg with MOVIEKEEPER_*
// variables. Variables already set in the environment win over the file.
func parseEnv(cfg *Config) {
	_, envFile := flagx.ConfigFiles(os.Args[1:])
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			panic(err)
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	var ec EnvConfig
	if err := cleanenv.ReadEnv(&ec); err != nil {
		panic(err)
	}
	ec.apply(cfg)
}

func (ec *EnvConfig) apply(cfg *Config) {
	setString(&cfg.CatalogBaseURL, ec.CatalogBaseURL)
	setString(&cfg.ImageBaseURL, ec.ImageBaseURL)
	setString(&cfg.APIKey, ec.APIKey)
	setString(&cfg.Language, ec.Language)
	setString(&cfg.StoreBackend, ec.StoreBackend)
	setString(&cfg.DatabasePath, ec.DatabasePath)
	setString(&cfg.RedisURL, ec.RedisURL)
	setString(&cfg.MetricsAddr, ec.MetricsAddr)
	setString(&cfg.LogLevel, ec.LogLevel)

	if ec.ListFreshness != 0 {
		cfg.ListFreshness = ec.ListFreshness
	}
	if ec.DetailMemoryCacheSize != 0 {
		cfg.DetailMemoryCacheSize = ec.DetailMemoryCacheSize
	}
	if ec.RateLimit != 0 {
		cfg.RateLimit = ec.RateLimit
	}
	if ec.RateBurst != 0 {
		cfg.RateBurst = ec.RateBurst
	}
	if ec.RetryAttempts != 0 {
		cfg.RetryAttempts = ec.RetryAttempts
	}
}
