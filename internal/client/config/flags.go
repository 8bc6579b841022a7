package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/moviekeeper/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-u string     catalog base URL
//	-k string     catalog API key
//	-l string     response language, e.g. es-MX
//	-s string     store backend: sqlite, redis or memory
//	-d string     SQLite database path
//	-r string     Redis URL
//	-f duration   list freshness window, e.g. 1h
//	-m string     address for the /metrics listener
//	-v string     log level
//
// Only these flags are read from os.Args; see flagx.FilterArgs.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-u", "-k", "-l", "-s", "-d", "-r", "-f", "-m", "-v"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.CatalogBaseURL, "u", cfg.CatalogBaseURL, "catalog base URL")
	fs.StringVar(&cfg.APIKey, "k", cfg.APIKey, "catalog API key")
	fs.StringVar(&cfg.Language, "l", cfg.Language, "response language")
	fs.StringVar(&cfg.StoreBackend, "s", cfg.StoreBackend, "store backend (sqlite|redis|memory)")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "SQLite database path")
	fs.StringVar(&cfg.RedisURL, "r", cfg.RedisURL, "Redis URL")
	fs.DurationVar(&cfg.ListFreshness, "f", cfg.ListFreshness, "movie list freshness window")
	fs.StringVar(&cfg.MetricsAddr, "m", cfg.MetricsAddr, "metrics listen address (empty disables)")
	fs.StringVar(&cfg.LogLevel, "v", cfg.LogLevel, "log level (debug|info|warn|error)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
