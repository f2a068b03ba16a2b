// Coursefinder - Course Catalog Filtering and Similar Course Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursefinder

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// SessionSweeper removes expired sessions. session.Store implements it.
type SessionSweeper interface {
	CleanupExpired(ctx context.Context) (int, error)
}

// sweepTimeout bounds a single sweep so a stuck store cannot hold the loop.
const sweepTimeout = time.Minute

// SessionCleanupService periodically sweeps expired sessions.
type SessionCleanupService struct {
	sweeper  SessionSweeper
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewSessionCleanupService creates a cleanup service. A non-positive
// interval falls back to 5m.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewSessionCleanupService(sweeper SessionSweeper, interval time.Duration, logger zerolog.Logger) *SessionCleanupService {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &SessionCleanupService{
		sweeper:  sweeper,
		interval: interval,
		logger:   logger.With().Str("service", "session-cleanup").Logger(),
		name:     "session-cleanup",
	}
}

// Serve implements suture.Service. Sweep failures are logged and retried on
// the next tick; they never stop the service.
func (s *SessionCleanupService) Serve(ctx context.Context) error {
	s.logger.Info().Dur("interval", s.interval).Msg("session cleanup starting")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("session cleanup shutting down")
			return ctx.Err()

		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

// sweep runs one cleanup pass and returns the number of removed sessions.
func (s *SessionCleanupService) sweep(ctx context.Context) int {
	sweepCtx, cancel := context.WithTimeout(ctx, sweepTimeout)
	defer cancel()

	start := time.Now()
	n, err := s.sweeper.CleanupExpired(sweepCtx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("session cleanup failed")
		return 0
	}
	if n > 0 {
		s.logger.Debug().
			Int("removed", n).
			Dur("took", time.Since(start)).
			Msg("expired sessions removed")
	}
	return n
}

// String implements fmt.Stringer for suture's logs.
func (s *SessionCleanupService) String() string {
	return s.name
}
