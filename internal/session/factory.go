// Coursefinder - Course Catalog Filtering and Similar Course Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursefinder

package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/coursefinder/internal/metrics"
)

// StoreType selects the session storage backend.
type StoreType string

const (
	// StoreMemory keeps sessions in process memory (default, not persistent).
	StoreMemory StoreType = "memory"

	// StoreBadger persists sessions in BadgerDB.
	StoreBadger StoreType = "badger"
)

// ParseStoreType resolves a configured backend name. Empty means memory.
func ParseStoreType(s string) (StoreType, error) {
	switch StoreType(strings.ToLower(strings.TrimSpace(s))) {
	case "", StoreMemory:
		return StoreMemory, nil
	case StoreBadger:
		return StoreBadger, nil
	default:
		return "", fmt.Errorf("unknown session store %q (want memory or badger)", s)
	}
}

// Factory opens the configured backend and owns its resources.
type Factory struct {
	storeType   StoreType
	maxSessions int
	db          *badger.DB
}

// NewFactory creates a factory. For StoreBadger it opens a BadgerDB at path.
func NewFactory(storeType StoreType, path string, maxSessions int) (*Factory, error) {
	f := &Factory{storeType: storeType, maxSessions: maxSessions}

	switch storeType {
	case StoreMemory, "":
		f.storeType = StoreMemory
	case StoreBadger:
		if path == "" {
			return nil, fmt.Errorf("badger session store requires a path")
		}
		opts := badger.DefaultOptions(path)
		opts.Logger = nil

		db, err := badger.Open(opts)
		if err != nil {
			return nil, fmt.Errorf("open badger db for sessions: %w", err)
		}
		f.db = db
	default:
		return nil, fmt.Errorf("unknown session store %q", storeType)
	}

	return f, nil
}

// CreateStore returns the configured store, instrumented with metrics.
func (f *Factory) CreateStore() Store {
	if f.db != nil {
		return Instrument(NewBadgerStore(f.db), string(StoreBadger))
	}
	return Instrument(NewMemoryStore(f.maxSessions), string(StoreMemory))
}

// Type returns the backend in use.
func (f *Factory) Type() StoreType {
	return f.storeType
}

// Close closes the underlying BadgerDB if one was opened.
func (f *Factory) Close() error {
	if f.db != nil {
		return f.db.Close()
	}
	return nil
}

// instrumentedStore records Prometheus metrics around every store call.
type instrumentedStore struct {
	Store
	name string
}

// Instrument wraps store so every call is counted under the given backend
// name and the active-session gauge follows Count and CleanupExpired.
func Instrument(store Store, name string) Store {
	return &instrumentedStore{Store: store, name: name}
}

func (s *instrumentedStore) Create(ctx context.Context, sess *Session) error {
	err := s.Store.Create(ctx, sess)
	metrics.RecordSessionOperation(s.name, "create", err)
	if err == nil {
		metrics.SessionsActive.Inc()
	}
	return err
}

func (s *instrumentedStore) Get(ctx context.Context, id string) (*Session, error) {
	sess, err := s.Store.Get(ctx, id)
	metrics.RecordSessionOperation(s.name, "get", err)
	return sess, err
}

func (s *instrumentedStore) Update(ctx context.Context, sess *Session) error {
	err := s.Store.Update(ctx, sess)
	metrics.RecordSessionOperation(s.name, "update", err)
	return err
}

func (s *instrumentedStore) Delete(ctx context.Context, id string) error {
	err := s.Store.Delete(ctx, id)
	metrics.RecordSessionOperation(s.name, "delete", err)
	s.refreshGauge(ctx)
	return err
}

func (s *instrumentedStore) CleanupExpired(ctx context.Context) (int, error) {
	n, err := s.Store.CleanupExpired(ctx)
	metrics.RecordSessionOperation(s.name, "cleanup", err)
	if n > 0 {
		metrics.SessionsExpired.Add(float64(n))
	}
	s.refreshGauge(ctx)
	return n, err
}

func (s *instrumentedStore) Count(ctx context.Context) (int, error) {
	n, err := s.Store.Count(ctx)
	metrics.RecordSessionOperation(s.name, "count", err)
	if err == nil {
		metrics.SessionsActive.Set(float64(n))
	}
	return n, err
}

func (s *instrumentedStore) refreshGauge(ctx context.Context) {
	if n, err := s.Store.Count(ctx); err == nil {
		metrics.SessionsActive.Set(float64(n))
	}
}
