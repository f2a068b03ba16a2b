// Coursefinder - Course Catalog Filtering and Similar Course Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursefinder

/*
Package config provides configuration loading and validation for Coursefinder.

# Configuration Sources

Configuration is loaded with Koanf v2 in three layers, later layers winning:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML file: $CONFIG_PATH, then config.yaml, config.yml,
    /etc/coursefinder/config.yaml and /etc/coursefinder/config.yml
 3. Environment variables

Only the environment variables listed below are read.

# Environment Variables

Catalog:
  - CATALOG_PATH: CSV, Parquet, JSON or JSON Lines catalog file
  - CATALOG_FORMAT: csv, parquet, json, jsonl or postgres (default: by extension)
  - POSTGRES_DSN: Load the catalog from PostgreSQL instead of a file
  - POSTGRES_TABLE: Catalog table (default: courses)
  - POSTGRES_ORDER_BY: Column that orders rows into catalog indices (required with POSTGRES_DSN)
  - CATALOG_STRICT_REFERENCES: Refuse dangling similar indices at load (default: false)
  - DUCKDB_THREADS: DuckDB worker threads for file reads (default: 0, DuckDB decides)

Similar courses:
  - SIMILAR_DEFAULT_LIMIT: Similar courses shown by default (default: 10)
  - SIMILAR_MAX_LIMIT: Largest accepted limit (default: 20)
  - SIMILAR_HYDRATE_DEFAULT: Include names and descriptions by default (default: false)

Sessions:
  - SESSION_STORE: memory or badger (default: memory)
  - SESSION_STORE_PATH: BadgerDB directory, required for badger
  - SESSION_TTL: Idle session lifetime (default: 24h)
  - SESSION_MAX: Memory store capacity (default: 10000)
  - SESSION_CLEANUP_INTERVAL: Expired session sweep interval (default: 5m)

Server:
  - HTTP_HOST: Bind address (default: 0.0.0.0)
  - HTTP_PORT: Listen port (default: 8501)
  - HTTP_TIMEOUT: Read/write timeout (default: 30s)
  - HTTP_SHUTDOWN_TIMEOUT: Graceful shutdown timeout (default: 10s)

Security:
  - CORS_ORIGINS: Comma-separated allowed origins (default: *)
  - RATE_LIMIT_REQUESTS: Requests per window per client (default: 100)
  - RATE_LIMIT_WINDOW: Rate limit window (default: 1m)
  - DISABLE_RATE_LIMIT: Turn rate limiting off (default: false)

Logging:
  - LOG_LEVEL: trace, debug, info, warn or error (default: info)
  - LOG_FORMAT: json or console (default: json)
  - LOG_CALLER: Include caller file and line (default: false)

# Usage

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	src, err := cfg.CatalogSource()
	engine, err := recommend.NewEngine(cfg.EngineConfig(), handle, logger)

Validation runs inside Load; a returned Config is always valid.
*/
package config
