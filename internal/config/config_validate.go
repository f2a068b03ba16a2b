// Coursefinder - Course Catalog Filtering and Similar Course Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursefinder

package config

import (
	"fmt"
	"time"

	"github.com/tomtom215/coursefinder/internal/catalog"
	"github.com/tomtom215/coursefinder/internal/session"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateCatalog(); err != nil {
		return err
	}

	if err := c.validateSimilar(); err != nil {
		return err
	}

	if err := c.validateSession(); err != nil {
		return err
	}

	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validateCatalog validates the catalog source
func (c *Config) validateCatalog() error {
	format, err := catalog.ParseFormat(c.Catalog.Format)
	if err != nil {
		return fmt.Errorf("CATALOG_FORMAT is invalid: %w", err)
	}

	if format == catalog.FormatPostgres || (format == catalog.FormatAuto && c.Catalog.PostgresDSN != "") {
		return c.validatePostgresSource()
	}

	if c.Catalog.Path == "" {
		return fmt.Errorf("CATALOG_PATH or POSTGRES_DSN is required")
	}
	if c.Catalog.DuckDBThreads < 0 {
		return fmt.Errorf("DUCKDB_THREADS must be >= 0")
	}
	return nil
}

// validatePostgresSource validates the PostgreSQL catalog settings
func (c *Config) validatePostgresSource() error {
	if c.Catalog.PostgresDSN == "" {
		return fmt.Errorf("POSTGRES_DSN is required when CATALOG_FORMAT=postgres")
	}
	if c.Catalog.PostgresTable == "" {
		return fmt.Errorf("POSTGRES_TABLE must not be empty")
	}
	if c.Catalog.PostgresOrderBy == "" {
		return fmt.Errorf("POSTGRES_ORDER_BY is required when loading from PostgreSQL")
	}
	return nil
}

// Similar limit bounds
const maxSimilarLimit = 1000

// validateSimilar validates similar-course limits
func (c *Config) validateSimilar() error {
	if c.Similar.MaxLimit < 1 || c.Similar.MaxLimit > maxSimilarLimit {
		return fmt.Errorf("SIMILAR_MAX_LIMIT must be between 1 and %d", maxSimilarLimit)
	}
	if c.Similar.DefaultLimit < 1 || c.Similar.DefaultLimit > c.Similar.MaxLimit {
		return fmt.Errorf("SIMILAR_DEFAULT_LIMIT must be between 1 and SIMILAR_MAX_LIMIT (%d)", c.Similar.MaxLimit)
	}
	return nil
}

// validateSession validates the session store
func (c *Config) validateSession() error {
	storeType, err := session.ParseStoreType(c.Session.Store)
	if err != nil {
		return fmt.Errorf("SESSION_STORE is invalid: %w", err)
	}
	if storeType == session.StoreBadger && c.Session.Path == "" {
		return fmt.Errorf("SESSION_STORE_PATH is required when SESSION_STORE=badger")
	}

	if c.Session.TTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.Session.MaxSessions < 1 {
		return fmt.Errorf("SESSION_MAX must be at least 1")
	}
	if c.Session.CleanupInterval <= 0 {
		return fmt.Errorf("SESSION_CLEANUP_INTERVAL must be positive")
	}
	return nil
}

// validateServer validates server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("HTTP_SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

// Rate limit constants
const (
	minRateLimitRequests = 1           // Minimum 1 request allowed
	maxRateLimitRequests = 100000      // Maximum 100K requests per window
	minRateLimitWindow   = time.Second // Minimum 1 second window
	maxRateLimitWindow   = time.Hour   // Maximum 1 hour window
)

// validateSecurity validates CORS and rate limiting
func (c *Config) validateSecurity() error {
	if len(c.Security.CORSOrigins) == 0 {
		return fmt.Errorf("CORS_ORIGINS must list at least one origin")
	}
	return c.validateRateLimits()
}

// validateRateLimits validates rate limiting configuration bounds.
func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}

	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// HasWildcardCORS reports whether any origin is allowed
func (c *Config) HasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
