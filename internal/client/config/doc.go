// Package config loads runtime configuration for the movie client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Environment: an optional dotenv file (-e/-env, else ./.env) is loaded
//     first, then MOVIEKEEPER_* variables are read with cleanenv.
//  4. Command-line flags, which override everything else.
//
// # JSON schema
//
//	{
//	  "catalog_base_url": "https://api.themoviedb.org/3",
//	  "api_key": "…",
//	  "language": "es-MX",
//	  "store_backend": "sqlite",
//	  "database_path": "/home/me/.config/moviekeeper/moviekeeper.db",
//	  "list_freshness": "1h",
//	  "retry_attempts": 3
//	}
//
// Values that cannot work together are reported by (*Config).Validate.
package config
