package config

import (
	"fmt"
	"net/url"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/moviekeeper/internal/client/kvstore"
	"github.com/dmitrijs2005/moviekeeper/internal/filex"
)

// Config holds runtime settings for the movie client.
//
// RateLimit is in requests per second. RetryAttempts counts the first try,
// so 1 disables retries. An empty MetricsAddr disables the /metrics listener.
type Config struct {
	CatalogBaseURL string
	ImageBaseURL   string
	APIKey         string
	Language       string

	StoreBackend string
	DatabasePath string
	RedisURL     string

	ListFreshness         time.Duration
	DetailMemoryCacheSize int

	RateLimit     float64
	RateBurst     int
	RetryAttempts uint

	MetricsAddr string
	LogLevel    string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.CatalogBaseURL = "https://api.themoviedb.org/3"
	c.ImageBaseURL = "https://image.tmdb.org/t/p/w500"
	c.APIKey = ""
	c.Language = "es-MX"
	c.StoreBackend = kvstore.BackendSQLite
	c.DatabasePath = filepath.Join(filex.DefaultDataDir(), "moviekeeper.db")
	c.RedisURL = "redis://127.0.0.1:6379/0"
	c.ListFreshness = time.Hour
	c.DetailMemoryCacheSize = 128
	c.RateLimit = 40
	c.RateBurst = 20
	c.RetryAttempts = 1
	c.MetricsAddr = ""
	c.LogLevel = "info"
}

// Validate reports the first setting that cannot work.
func (c *Config) Validate() error {
	u, err := url.Parse(c.CatalogBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("catalog base url %q is not an absolute URL", c.CatalogBaseURL)
	}
	switch c.StoreBackend {
	case kvstore.BackendSQLite:
		if c.DatabasePath == "" {
			return fmt.Errorf("database path is required for the sqlite store")
		}
	case kvstore.BackendRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("redis url is required for the redis store")
		}
	case kvstore.BackendMemory:
	default:
		return fmt.Errorf("unknown store backend %q", c.StoreBackend)
	}
	if c.ListFreshness <= 0 {
		return fmt.Errorf("list freshness must be positive, got %s", c.ListFreshness)
	}
	if c.RetryAttempts == 0 {
		return fmt.Errorf("retry attempts must be at least 1")
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
