// Coursefinder - Course Catalog Filtering and Similar Course Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursefinder

package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/coursefinder/internal/filter"
)

var (
	// ErrSessionNotFound is returned when a session is not in the store.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionExpired is returned when a stored session has expired.
	ErrSessionExpired = errors.New("session expired")
)

// Session is one user's browsing state: filter selections, the course
// picked from the filtered list and display preferences for similar courses.
type Session struct {
	// ID is the opaque session identifier.
	ID string `json:"id"`

	// Filters holds the selection per dimension.
	Filters filter.State `json:"filters"`

	// CourseID is the grouped course picked from the filtered list, if any.
	CourseID *int `json:"course_id,omitempty"`

	// Limit is the number of similar courses to show.
	Limit int `json:"limit"`

	// Hydrate shows names and descriptions instead of bare indices.
	Hydrate bool `json:"hydrate"`

	CreatedAt      time.Time `json:"created_at"`
	ExpiresAt      time.Time `json:"expires_at"`
	LastAccessedAt time.Time `json:"last_accessed_at"`
}

// New creates a session with no selections that expires ttl from now.
func New(ttl time.Duration, limit int, hydrate bool) *Session {
	now := time.Now()
	return &Session{
		ID:             uuid.NewString(),
		Limit:          limit,
		Hydrate:        hydrate,
		CreatedAt:      now,
		ExpiresAt:      now.Add(ttl),
		LastAccessedAt: now,
	}
}

// IsExpired reports whether the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Touch records an access and slides the expiry ttl into the future.
func (s *Session) Touch(ttl time.Duration) {
	now := time.Now()
	s.LastAccessedAt = now
	s.ExpiresAt = now.Add(ttl)
}

// SelectCourse sets the picked course. A nil id clears it.
func (s *Session) SelectCourse(id *int) {
	if id == nil {
		s.CourseID = nil
		return
	}
	v := *id
	s.CourseID = &v
}

// Clone returns a deep copy.
func (s *Session) Clone() *Session {
	c := *s
	c.Filters = s.Filters.Clone()
	c.SelectCourse(s.CourseID)
	return &c
}

// Store persists sessions. Implementations are safe for concurrent use and
// never hand out pointers to their own copies.
type Store interface {
	// Create stores a new session.
	Create(ctx context.Context, s *Session) error

	// Get retrieves a session by ID.
	// Returns ErrSessionNotFound if not found and ErrSessionExpired if the
	// session exists but has expired.
	Get(ctx context.Context, id string) (*Session, error)

	// Update replaces an existing session.
	// Returns ErrSessionNotFound if it does not exist.
	Update(ctx context.Context, s *Session) error

	// Delete removes a session. Deleting a missing session is not an error.
	Delete(ctx context.Context, id string) error

	// CleanupExpired removes expired sessions and returns how many.
	CleanupExpired(ctx context.Context) (int, error)

	// Count returns the number of stored sessions.
	Count(ctx context.Context) (int, error)
}
