// Coursefinder - Course Catalog Filtering and Similar Course Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursefinder

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/coursefinder/internal/catalog"
	"github.com/tomtom215/coursefinder/internal/logging"
	"github.com/tomtom215/coursefinder/internal/metrics"
)

// TableProvider supplies the loaded catalog. *catalog.Handle implements it.
type TableProvider interface {
	Table(ctx context.Context) (*catalog.Table, error)
}

// Engine serves similar-course lookups against the process catalog.
type Engine struct {
	config *Config
	tables TableProvider
	logger zerolog.Logger

	requestCount    atomic.Int64
	emptyCount      atomic.Int64
	indexErrorCount atomic.Int64
	errorCount      atomic.Int64
}

// NewEngine creates an engine. A nil cfg uses DefaultConfig.
func NewEngine(cfg *Config, tables TableProvider, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if tables == nil {
		return nil, errors.New("table provider is required")
	}

	return &Engine{
		config: cfg.Clone(),
		tables: tables,
		logger: logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// Similar resolves the similar courses of req.Index.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Similar(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	e.requestCount.Add(1)

	if err := ctx.Err(); err != nil {
		e.errorCount.Add(1)
		return nil, err
	}

	req, limit, err := e.prepareRequest(ctx, req)
	if err != nil {
		e.fail(req, "invalid_limit", start, err)
		return nil, err
	}
	logger := e.requestLogger(req, limit)

	table, err := e.tables.Table(ctx)
	if err != nil {
		e.fail(req, "unavailable", start, err)
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	resp := &Response{Index: req.Index}
	if req.Hydrate {
		resp.Courses, err = ResolveHydrated(table, req.Index, limit)
		if err == nil {
			resp.IDs = make([]int, len(resp.Courses))
			for i := range resp.Courses {
				resp.IDs[i] = resp.Courses[i].Index
			}
		}
	} else {
		resp.IDs, err = Resolve(table, req.Index, limit)
	}
	if err != nil {
		var idxErr *IndexError
		if errors.As(err, &idxErr) {
			e.indexErrorCount.Add(1)
			if idxErr.Stale() {
				logger.Error().Err(err).Msg("stale similar course reference")
			}
		}
		e.fail(req, "index_error", start, err)
		return nil, err
	}

	outcome := "ok"
	if len(resp.IDs) == 0 {
		outcome = "empty"
		e.emptyCount.Add(1)
	}
	elapsed := time.Since(start)
	metrics.RecordSimilarQuery(outcome, len(resp.IDs), elapsed)

	resp.Metadata = ResponseMetadata{
		RequestID: req.RequestID,
		Limit:     limit,
		Hydrated:  req.Hydrate,
		LatencyMS: elapsed.Milliseconds(),
		Timestamp: time.Now(),
	}

	logger.Debug().
		Int("results", len(resp.IDs)).
		Dur("took", elapsed).
		Msg("similar courses resolved")

	return resp, nil
}

// prepareRequest fills the request ID and returns the effective limit: the
// default for a nil Limit, clamped to MaxLimit otherwise.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) prepareRequest(ctx context.Context, req Request) (Request, int, error) {
	if req.RequestID == "" {
		req.RequestID = logging.RequestIDFromContext(ctx)
	}
	if req.RequestID == "" {
		req.RequestID = logging.GenerateRequestID()
	}

	if req.Limit == nil {
		return req, e.config.DefaultLimit, nil
	}
	limit := *req.Limit
	switch {
	case limit < 0:
		return req, 0, fmt.Errorf("%w: %d", ErrInvalidLimit, limit)
	case limit > e.config.MaxLimit:
		limit = e.config.MaxLimit
	}
	return req, limit, nil
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) requestLogger(req Request, limit int) zerolog.Logger {
	return e.logger.With().
		Str("request_id", req.RequestID).
		Int("index", req.Index).
		Int("limit", limit).
		Bool("hydrate", req.Hydrate).
		Logger()
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) fail(req Request, outcome string, start time.Time, err error) {
	e.errorCount.Add(1)
	metrics.RecordSimilarQuery(outcome, 0, time.Since(start))
	e.logger.Debug().
		Err(err).
		Str("request_id", req.RequestID).
		Int("index", req.Index).
		Str("outcome", outcome).
		Msg("similar course lookup failed")
}

// GetMetrics returns the current engine counters.
func (e *Engine) GetMetrics() Metrics {
	return Metrics{
		RequestCount:    e.requestCount.Load(),
		EmptyCount:      e.emptyCount.Load(),
		IndexErrorCount: e.indexErrorCount.Load(),
		ErrorCount:      e.errorCount.Load(),
	}
}

// GetConfig returns a copy of the current configuration.
func (e *Engine) GetConfig() *Config {
	return e.config.Clone()
}
