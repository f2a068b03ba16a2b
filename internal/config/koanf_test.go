// Coursefinder - Course Catalog Filtering and Similar Course Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursefinder

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/coursefinder/internal/catalog"
	"github.com/tomtom215/coursefinder/internal/session"
)

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()

	if cfg.Catalog.PostgresTable != "courses" {
		t.Errorf("Catalog.PostgresTable = %q, want courses", cfg.Catalog.PostgresTable)
	}
	if cfg.Similar.DefaultLimit != 10 {
		t.Errorf("Similar.DefaultLimit = %d, want 10", cfg.Similar.DefaultLimit)
	}
	if cfg.Similar.MaxLimit != 20 {
		t.Errorf("Similar.MaxLimit = %d, want 20", cfg.Similar.MaxLimit)
	}
	if cfg.Session.Store != "memory" {
		t.Errorf("Session.Store = %q, want memory", cfg.Session.Store)
	}
	if cfg.Session.TTL != 24*time.Hour {
		t.Errorf("Session.TTL = %v, want 24h", cfg.Session.TTL)
	}
	if cfg.Session.CleanupInterval != 5*time.Minute {
		t.Errorf("Session.CleanupInterval = %v, want 5m", cfg.Session.CleanupInterval)
	}
	if cfg.Server.Port != 8501 {
		t.Errorf("Server.Port = %d, want 8501", cfg.Server.Port)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want 0.0.0.0", cfg.Server.Host)
	}
	if len(cfg.Security.CORSOrigins) != 1 || cfg.Security.CORSOrigins[0] != "*" {
		t.Errorf("Security.CORSOrigins = %v, want [*]", cfg.Security.CORSOrigins)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
}

// TestEnvTransformFunc verifies environment variable name transformations
func TestEnvTransformFunc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"CATALOG_PATH", "catalog.path"},
		{"CATALOG_FORMAT", "catalog.format"},
		{"POSTGRES_DSN", "catalog.postgres_dsn"},
		{"DUCKDB_THREADS", "catalog.duckdb_threads"},
		{"SIMILAR_DEFAULT_LIMIT", "similar.default_limit"},
		{"SIMILAR_MAX_LIMIT", "similar.max_limit"},
		{"SESSION_STORE", "session.store"},
		{"SESSION_STORE_PATH", "session.path"},
		{"SESSION_MAX", "session.max_sessions"},
		{"HTTP_PORT", "server.port"},
		{"HTTP_SHUTDOWN_TIMEOUT", "server.shutdown_timeout"},
		{"CORS_ORIGINS", "security.cors_origins"},
		{"RATE_LIMIT_REQUESTS", "security.rate_limit_reqs"},
		{"DISABLE_RATE_LIMIT", "security.rate_limit_disabled"},
		{"LOG_LEVEL", "logging.level"},
		{"log_format", "logging.format"},

		// Unmapped variables are ignored
		{"PATH", ""},
		{"HOME", ""},
		{"CATALOG", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := envTransformFunc(tt.input); got != tt.expected {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

// TestFindConfigFile tests config file discovery through CONFIG_PATH
func TestFindConfigFile(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("CONFIG_PATH env var takes precedence", func(t *testing.T) {
		customPath := filepath.Join(tmpDir, "custom.yaml")
		if err := os.WriteFile(customPath, []byte("similar:\n  max_limit: 5\n"), 0o600); err != nil {
			t.Fatalf("Failed to create config file: %v", err)
		}
		t.Setenv(ConfigPathEnvVar, customPath)

		if got := findConfigFile(); got != customPath {
			t.Errorf("findConfigFile() = %q, want %q", got, customPath)
		}
	})

	t.Run("CONFIG_PATH env var with non-existent file", func(t *testing.T) {
		t.Setenv(ConfigPathEnvVar, filepath.Join(tmpDir, "missing.yaml"))

		if got := findConfigFile(); got != "" {
			t.Errorf("findConfigFile() = %q, want empty string", got)
		}
	})
}

// TestLoadWithKoanfEnvVars tests loading configuration from environment variables
func TestLoadWithKoanfEnvVars(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "none.yaml"))
	t.Setenv("CATALOG_PATH", "/data/courses.csv")
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SIMILAR_DEFAULT_LIMIT", "5")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("DISABLE_RATE_LIMIT", "true")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Catalog.Path != "/data/courses.csv" {
		t.Errorf("Catalog.Path = %q, want /data/courses.csv", cfg.Catalog.Path)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Similar.DefaultLimit != 5 {
		t.Errorf("Similar.DefaultLimit = %d, want 5", cfg.Similar.DefaultLimit)
	}
	if cfg.Session.TTL != 2*time.Hour {
		t.Errorf("Session.TTL = %v, want 2h", cfg.Session.TTL)
	}
	if len(cfg.Security.CORSOrigins) != 2 || cfg.Security.CORSOrigins[1] != "https://b.example" {
		t.Errorf("Security.CORSOrigins = %v, want [https://a.example https://b.example]", cfg.Security.CORSOrigins)
	}
	if !cfg.Security.RateLimitDisabled {
		t.Error("Security.RateLimitDisabled = false, want true")
	}

	// Defaults survive for unset values
	if cfg.Similar.MaxLimit != 20 {
		t.Errorf("Similar.MaxLimit = %d, want 20 (default)", cfg.Similar.MaxLimit)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want 0.0.0.0 (default)", cfg.Server.Host)
	}
}

// TestLoadWithKoanfConfigFile tests loading configuration from a YAML file
func TestLoadWithKoanfConfigFile(t *testing.T) {
	configContent := `
catalog:
  path: /srv/catalog.parquet
  strict_references: true
similar:
  default_limit: 3
  max_limit: 8
  hydrate_default: true
session:
  store: badger
  path: /var/lib/coursefinder/sessions
  ttl: 1h
server:
  port: 8080
security:
  cors_origins:
    - https://courses.example.edu
logging:
  format: console
`
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte(configContent), 0o600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, configPath)

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Catalog.Path != "/srv/catalog.parquet" {
		t.Errorf("Catalog.Path = %q, want /srv/catalog.parquet", cfg.Catalog.Path)
	}
	if !cfg.Catalog.StrictReferences {
		t.Error("Catalog.StrictReferences = false, want true")
	}
	if cfg.Similar.DefaultLimit != 3 || cfg.Similar.MaxLimit != 8 {
		t.Errorf("Similar limits = %d/%d, want 3/8", cfg.Similar.DefaultLimit, cfg.Similar.MaxLimit)
	}
	if !cfg.Similar.HydrateDefault {
		t.Error("Similar.HydrateDefault = false, want true")
	}
	if cfg.Session.Store != "badger" {
		t.Errorf("Session.Store = %q, want badger", cfg.Session.Store)
	}
	if cfg.Session.TTL != time.Hour {
		t.Errorf("Session.TTL = %v, want 1h", cfg.Session.TTL)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if len(cfg.Security.CORSOrigins) != 1 || cfg.Security.CORSOrigins[0] != "https://courses.example.edu" {
		t.Errorf("Security.CORSOrigins = %v, want [https://courses.example.edu]", cfg.Security.CORSOrigins)
	}
	if cfg.Logging.Format != "console" {
		t.Errorf("Logging.Format = %q, want console", cfg.Logging.Format)
	}

	storeType, err := cfg.SessionStoreType()
	if err != nil || storeType != session.StoreBadger {
		t.Errorf("SessionStoreType() = %v, %v, want badger", storeType, err)
	}
}

// TestLoadWithKoanfEnvOverridesFile tests that env vars beat the config file
func TestLoadWithKoanfEnvOverridesFile(t *testing.T) {
	configContent := `
catalog:
  path: /srv/file.csv
server:
  port: 8080
`
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte(configContent), 0o600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, configPath)
	t.Setenv("HTTP_PORT", "9999")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 9999 {
		t.Errorf("Server.Port = %d, want 9999 (env override)", cfg.Server.Port)
	}
	if cfg.Catalog.Path != "/srv/file.csv" {
		t.Errorf("Catalog.Path = %q, want /srv/file.csv (from file)", cfg.Catalog.Path)
	}
}

// TestLoadWithKoanfValidation tests that validation runs after loading
func TestLoadWithKoanfValidation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "missing catalog",
			env:     map[string]string{},
			wantErr: "CATALOG_PATH or POSTGRES_DSN",
		},
		{
			name:    "invalid port",
			env:     map[string]string{"CATALOG_PATH": "c.csv", "HTTP_PORT": "70000"},
			wantErr: "HTTP_PORT",
		},
		{
			name:    "badger without path",
			env:     map[string]string{"CATALOG_PATH": "c.csv", "SESSION_STORE": "badger"},
			wantErr: "SESSION_STORE_PATH",
		},
		{
			name:    "default above max",
			env:     map[string]string{"CATALOG_PATH": "c.csv", "SIMILAR_DEFAULT_LIMIT": "50"},
			wantErr: "SIMILAR_DEFAULT_LIMIT",
		},
		{
			name:    "bad log level",
			env:     map[string]string{"CATALOG_PATH": "c.csv", "LOG_LEVEL": "verbose"},
			wantErr: "LOG_LEVEL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "none.yaml"))
			t.Setenv("CATALOG_PATH", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := LoadWithKoanf()
			if err == nil {
				t.Fatal("LoadWithKoanf() error = nil, want validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("LoadWithKoanf() error = %v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}

// --- Test: Validate ---

func validConfig() *Config {
	cfg := defaultConfig()
	cfg.Catalog.Path = "courses.csv"
	return cfg
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults with path", mutate: func(*Config) {}},
		{
			name:   "postgres source",
			mutate: func(c *Config) {
				c.Catalog.Path = ""
				c.Catalog.PostgresDSN = "postgres://localhost/db"
				c.Catalog.PostgresOrderBy = "row_index"
			},
		},
		{
			name:    "postgres without order column",
			mutate:  func(c *Config) { c.Catalog.Path = ""; c.Catalog.PostgresDSN = "postgres://localhost/db" },
			wantErr: "POSTGRES_ORDER_BY",
		},
		{
			name:    "postgres format without dsn",
			mutate:  func(c *Config) { c.Catalog.Format = "postgres" },
			wantErr: "POSTGRES_DSN",
		},
		{
			name:    "postgres empty table",
			mutate:  func(c *Config) { c.Catalog.PostgresDSN = "postgres://localhost/db"; c.Catalog.PostgresTable = "" },
			wantErr: "POSTGRES_TABLE",
		},
		{
			name:    "unknown format",
			mutate:  func(c *Config) { c.Catalog.Format = "xlsx" },
			wantErr: "CATALOG_FORMAT",
		},
		{
			name:    "negative threads",
			mutate:  func(c *Config) { c.Catalog.DuckDBThreads = -1 },
			wantErr: "DUCKDB_THREADS",
		},
		{
			name:    "zero max limit",
			mutate:  func(c *Config) { c.Similar.MaxLimit = 0 },
			wantErr: "SIMILAR_MAX_LIMIT",
		},
		{
			name:    "zero default limit",
			mutate:  func(c *Config) { c.Similar.DefaultLimit = 0 },
			wantErr: "SIMILAR_DEFAULT_LIMIT",
		},
		{
			name:    "unknown store",
			mutate:  func(c *Config) { c.Session.Store = "redis" },
			wantErr: "SESSION_STORE",
		},
		{
			name:    "zero ttl",
			mutate:  func(c *Config) { c.Session.TTL = 0 },
			wantErr: "SESSION_TTL",
		},
		{
			name:    "zero max sessions",
			mutate:  func(c *Config) { c.Session.MaxSessions = 0 },
			wantErr: "SESSION_MAX",
		},
		{
			name:    "zero cleanup interval",
			mutate:  func(c *Config) { c.Session.CleanupInterval = 0 },
			wantErr: "SESSION_CLEANUP_INTERVAL",
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.Server.Timeout = 0 },
			wantErr: "HTTP_TIMEOUT",
		},
		{
			name:    "no cors origins",
			mutate:  func(c *Config) { c.Security.CORSOrigins = nil },
			wantErr: "CORS_ORIGINS",
		},
		{
			name:    "rate limit window too short",
			mutate:  func(c *Config) { c.Security.RateLimitWindow = time.Millisecond },
			wantErr: "RATE_LIMIT_WINDOW",
		},
		{
			name: "rate limit disabled skips bounds",
			mutate: func(c *Config) {
				c.Security.RateLimitDisabled = true
				c.Security.RateLimitReqs = 0
			},
		},
		{
			name:    "bad log format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "LOG_FORMAT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}

// --- Test: Conversions ---

func TestCatalogSource(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Catalog.Format = "CSV"
	cfg.Catalog.StrictReferences = true
	cfg.Catalog.DuckDBThreads = 2

	src, err := cfg.CatalogSource()
	if err != nil {
		t.Fatalf("CatalogSource() error = %v", err)
	}
	if src.Path != "courses.csv" || src.Format != catalog.FormatCSV {
		t.Errorf("CatalogSource() = %+v, want courses.csv as csv", src)
	}
	if !src.StrictReferences || src.DuckDBThreads != 2 {
		t.Errorf("CatalogSource() = %+v, want strict references and 2 threads", src)
	}
}

func TestEngineConfig(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Similar.DefaultLimit = 4
	cfg.Similar.MaxLimit = 12

	ec := cfg.EngineConfig()
	if ec.DefaultLimit != 4 || ec.MaxLimit != 12 {
		t.Errorf("EngineConfig() = %+v, want 4/12", ec)
	}
	if err := ec.Validate(); err != nil {
		t.Errorf("EngineConfig().Validate() error = %v", err)
	}
}

func TestLogConfigAndAddr(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Logging.Level = "debug"
	cfg.Logging.Caller = true
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 9090

	lc := cfg.LogConfig()
	if lc.Level != "debug" || lc.Format != "json" || !lc.Caller {
		t.Errorf("LogConfig() = %+v, want debug/json/caller", lc)
	}
	if got := cfg.Addr(); got != "127.0.0.1:9090" {
		t.Errorf("Addr() = %q, want 127.0.0.1:9090", got)
	}
}

func TestHasWildcardCORS(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	if !cfg.HasWildcardCORS() {
		t.Error("HasWildcardCORS() = false for default origins, want true")
	}
	cfg.Security.CORSOrigins = []string{"https://courses.example.edu"}
	if cfg.HasWildcardCORS() {
		t.Error("HasWildcardCORS() = true for explicit origins, want false")
	}
}
