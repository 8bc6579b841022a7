package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/moviekeeper/internal/flagx"
	"github.com/dmitrijs2005/moviekeeper/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations
// may be strings like "45m" or integer nanoseconds.
type JsonConfig struct {
	CatalogBaseURL        string         `json:"catalog_base_url"`
	ImageBaseURL          string         `json:"image_base_url"`
	APIKey                string         `json:"api_key"`
	Language              string         `json:"language"`
	StoreBackend          string         `json:"store_backend"`
	DatabasePath          string         `json:"database_path"`
	RedisURL              string         `json:"redis_url"`
	ListFreshness         timex.Duration `json:"list_freshness"`
	DetailMemoryCacheSize *int           `json:"detail_memory_cache_size"`
	RateLimit             *float64       `json:"rate_limit"`
	RateBurst             *int           `json:"rate_burst"`
	RetryAttempts         *uint          `json:"retry_attempts"`
	MetricsAddr           string         `json:"metrics_addr"`
	LogLevel              string         `json:"log_level"`
}

// parseJson overlays cfg with the JSON file named by -c/-config. Keys missing
// from the file leave cfg untouched. Read or decode errors panic.
func parseJson(cfg *Config) {
	jsonConfigFile, _ := flagx.ConfigFiles(os.Args[1:])
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	jc.apply(cfg)
}

func (jc *JsonConfig) apply(cfg *Config) {
	setString(&cfg.CatalogBaseURL, jc.CatalogBaseURL)
	setString(&cfg.ImageBaseURL, jc.ImageBaseURL)
	setString(&cfg.APIKey, jc.APIKey)
	setString(&cfg.Language, jc.Language)
	setString(&cfg.StoreBackend, jc.StoreBackend)
	setString(&cfg.DatabasePath, jc.DatabasePath)
	setString(&cfg.RedisURL, jc.RedisURL)
	setString(&cfg.MetricsAddr, jc.MetricsAddr)
	setString(&cfg.LogLevel, jc.LogLevel)

	if jc.ListFreshness.Duration != 0 {
		cfg.ListFreshness = jc.ListFreshness.Duration
	}
	if jc.DetailMemoryCacheSize != nil {
		cfg.DetailMemoryCacheSize = *jc.DetailMemoryCacheSize
	}
	if jc.RateLimit != nil {
		cfg.RateLimit = *jc.RateLimit
	}
	if jc.RateBurst != nil {
		cfg.RateBurst = *jc.RateBurst
	}
	if jc.RetryAttempts != nil {
		cfg.RetryAttempts = *jc.RetryAttempts
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
