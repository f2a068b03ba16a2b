// Coursefinder - Course Catalog Filtering and Similar Course Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursefinder

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/coursefinder/internal/session"
)

type countingSweeper struct {
	calls   atomic.Int32
	removed int
	err     error
}

func (c *countingSweeper) CleanupExpired(_ context.Context) (int, error) {
	c.calls.Add(1)
	return c.removed, c.err
}

// --- Test: SessionCleanupService ---

func TestSessionCleanupService_String(t *testing.T) {
	t.Parallel()

	svc := NewSessionCleanupService(&countingSweeper{}, time.Minute, zerolog.Nop())
	if got := svc.String(); got != "session-cleanup" {
		t.Errorf("String() = %q, want %q", got, "session-cleanup")
	}
}

func TestSessionCleanupService_DefaultInterval(t *testing.T) {
	t.Parallel()

	svc := NewSessionCleanupService(&countingSweeper{}, 0, zerolog.Nop())
	if svc.interval != 5*time.Minute {
		t.Errorf("interval = %v, want 5m", svc.interval)
	}
}

func TestSessionCleanupService_Sweep(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		sweeper *countingSweeper
		want    int
	}{
		{"removes", &countingSweeper{removed: 3}, 3},
		{"nothing expired", &countingSweeper{}, 0},
		{"store error", &countingSweeper{removed: 2, err: errors.New("disk full")}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := NewSessionCleanupService(tt.sweeper, time.Minute, zerolog.Nop())
			if got := svc.sweep(context.Background()); got != tt.want {
				t.Errorf("sweep() = %d, want %d", got, tt.want)
			}
			if got := tt.sweeper.calls.Load(); got != 1 {
				t.Errorf("CleanupExpired calls = %d, want 1", got)
			}
		})
	}
}

func TestSessionCleanupService_TicksUntilCanceled(t *testing.T) {
	t.Parallel()

	sweeper := &countingSweeper{err: errors.New("transient")}
	svc := NewSessionCleanupService(sweeper, 10*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for sweeper.calls.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() error = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve() did not return after cancel")
	}
	if got := sweeper.calls.Load(); got < 2 {
		t.Errorf("CleanupExpired calls = %d, want at least 2", got)
	}
}

func TestSessionCleanupService_MemoryStore(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore(10)
	var _ SessionSweeper = store

	svc := NewSessionCleanupService(store, time.Minute, zerolog.Nop())
	if got := svc.sweep(context.Background()); got != 0 {
		t.Errorf("sweep() on empty store = %d, want 0", got)
	}
}
