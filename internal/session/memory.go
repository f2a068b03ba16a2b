// Coursefinder - Course Catalog Filtering and Similar Course Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursefinder

package session

import (
	"context"
	"sync"
	"time"

	"github.com/tomtom215/coursefinder/internal/cache"
)

// MemoryStore keeps sessions in a bounded LRU. When full, the least
// recently used session is evicted. Expired sessions read as not found.
type MemoryStore struct {
	mu       sync.Mutex // orders Update against Delete
	sessions *cache.LRU[*Session]
}

// NewMemoryStore creates a store holding at most maxSessions sessions.
func NewMemoryStore(maxSessions int) *MemoryStore {
	// Every entry carries its own expiry, so the default TTL is never used.
	return &MemoryStore{sessions: cache.NewLRU[*Session](maxSessions, time.Hour)}
}

// Create stores a new session.
func (m *MemoryStore) Create(_ context.Context, s *Session) error {
	m.sessions.AddWithExpiry(s.ID, s.Clone(), s.ExpiresAt)
	return nil
}

// Get retrieves a session by ID.
func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	s, ok := m.sessions.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s.Clone(), nil
}

// Update replaces an existing session.
func (m *MemoryStore) Update(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.sessions.Contains(s.ID) {
		return ErrSessionNotFound
	}
	m.sessions.AddWithExpiry(s.ID, s.Clone(), s.ExpiresAt)
	return nil
}

// Delete removes a session.
func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions.Remove(id)
	return nil
}

// CleanupExpired removes expired sessions.
func (m *MemoryStore) CleanupExpired(_ context.Context) (int, error) {
	return m.sessions.CleanupExpired(), nil
}

// Count returns the number of stored sessions, expired ones included until
// the next cleanup.
func (m *MemoryStore) Count(_ context.Context) (int, error) {
	return m.sessions.Len(), nil
}
