// Coursefinder - Course Catalog Filtering and Similar Course Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursefinder

package config

import (
	"fmt"
	"time"

	"github.com/tomtom215/coursefinder/internal/catalog"
	"github.com/tomtom215/coursefinder/internal/logging"
	"github.com/tomtom215/coursefinder/internal/recommend"
	"github.com/tomtom215/coursefinder/internal/session"
)

// Config holds all application configuration
type Config struct {
	Catalog  CatalogConfig  `koanf:"catalog"`
	Similar  SimilarConfig  `koanf:"similar"`
	Session  SessionConfig  `koanf:"session"`
	Server   ServerConfig   `koanf:"server"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// CatalogConfig selects where the course catalog is loaded from.
type CatalogConfig struct {
	// Path is the catalog file (CSV, Parquet, JSON or JSON Lines).
	Path string `koanf:"path"`

	// Format overrides detection by file extension: csv, parquet, json,
	// jsonl or postgres. Empty means auto.
	Format string `koanf:"format"`

	// PostgresDSN enables loading from a PostgreSQL table.
	PostgresDSN string `koanf:"postgres_dsn"`

	// PostgresTable is the table to read (optionally schema-qualified).
	// Default: courses
	PostgresTable string `koanf:"postgres_table"`

	// PostgresOrderBy is the column giving each row its catalog index.
	PostgresOrderBy string `koanf:"postgres_order_by"`

	// StrictReferences refuses to start when a similar course index points
	// outside the catalog.
	StrictReferences bool `koanf:"strict_references"`

	// DuckDBThreads limits DuckDB threads for CSV/Parquet reads (0 = default).
	DuckDBThreads int `koanf:"duckdb_threads"`
}

// SimilarConfig holds similar-course display limits.
type SimilarConfig struct {
	DefaultLimit   int  `koanf:"default_limit"`
	MaxLimit       int  `koanf:"max_limit"`
	HydrateDefault bool `koanf:"hydrate_default"`
}

// SessionConfig selects the session store and its lifetime.
type SessionConfig struct {
	// Store is memory or badger.
	Store string `koanf:"store"`

	// Path is the BadgerDB directory when Store is badger.
	Path string `koanf:"path"`

	// TTL is how long an idle session lives.
	TTL time.Duration `koanf:"ttl"`

	// MaxSessions bounds the memory store.
	MaxSessions int `koanf:"max_sessions"`

	// CleanupInterval is how often expired sessions are purged.
	CleanupInterval time.Duration `koanf:"cleanup_interval"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// SecurityConfig holds CORS and rate limiting settings
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// CatalogSource converts the catalog section into a load source.
func (c *Config) CatalogSource() (catalog.Source, error) {
	format, err := catalog.ParseFormat(c.Catalog.Format)
	if err != nil {
		return catalog.Source{}, fmt.Errorf("catalog.format: %w", err)
	}
	return catalog.Source{
		Path:             c.Catalog.Path,
		Format:           format,
		PostgresDSN:      c.Catalog.PostgresDSN,
		PostgresTable:    c.Catalog.PostgresTable,
		PostgresOrderBy:  c.Catalog.PostgresOrderBy,
		StrictReferences: c.Catalog.StrictReferences,
		DuckDBThreads:    c.Catalog.DuckDBThreads,
	}, nil
}

// EngineConfig converts the similar section into engine limits.
func (c *Config) EngineConfig() *recommend.Config {
	return &recommend.Config{
		DefaultLimit: c.Similar.DefaultLimit,
		MaxLimit:     c.Similar.MaxLimit,
	}
}

// SessionStoreType returns the parsed session backend.
func (c *Config) SessionStoreType() (session.StoreType, error) {
	return session.ParseStoreType(c.Session.Store)
}

// LogConfig converts the logging section for logging.Init.
func (c *Config) LogConfig() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = c.Logging.Level
	cfg.Format = c.Logging.Format
	cfg.Caller = c.Logging.Caller
	return cfg
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
