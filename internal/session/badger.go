// Coursefinder - Course Catalog Filtering and Similar Course Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursefinder

package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/coursefinder/internal/logging"
)

const sessionKeyPrefix = "session:"

// expiryGrace keeps an expired session readable for a while so Get can
// report ErrSessionExpired and CleanupExpired can count it. After that
// Badger drops the entry on its own, even if no sweep runs.
const expiryGrace = time.Hour

// BadgerStore persists sessions in BadgerDB so they survive restarts.
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore creates a store on an open database. The caller owns db.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

func sessionKey(id string) []byte {
	return []byte(sessionKeyPrefix + id)
}

// sessionEntry builds the stored entry with a TTL tied to the session's
// expiry.
func sessionEntry(s *Session, data []byte) *badger.Entry {
	e := badger.NewEntry(sessionKey(s.ID), data)
	if s.ExpiresAt.IsZero() {
		return e
	}
	return e.WithTTL(time.Until(s.ExpiresAt.Add(expiryGrace)))
}

// Create stores a new session.
func (b *BadgerStore) Create(_ context.Context, s *Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	return b.db.Update(func(txn *badger.Txn) error {
		if err := txn.SetEntry(sessionEntry(s, data)); err != nil {
			return fmt.Errorf("set session: %w", err)
		}
		return nil
	})
}

// Get retrieves a session by ID.
func (b *BadgerStore) Get(_ context.Context, id string) (*Session, error) {
	var s Session

	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(sessionKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrSessionNotFound
		}
		if err != nil {
			return fmt.Errorf("get session: %w", err)
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &s)
		})
	})
	if err != nil {
		return nil, err
	}

	if s.IsExpired() {
		return nil, ErrSessionExpired
	}
	return &s, nil
}

// Update replaces an existing, unexpired session.
func (b *BadgerStore) Update(_ context.Context, s *Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	return b.db.Update(func(txn *badger.Txn) error {
		key := sessionKey(s.ID)
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrSessionNotFound
		}
		if err != nil {
			return fmt.Errorf("get session: %w", err)
		}

		var stored Session
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &stored)
		}); err != nil {
			return fmt.Errorf("unmarshal session: %w", err)
		}
		if stored.IsExpired() {
			return ErrSessionNotFound
		}

		return txn.SetEntry(sessionEntry(s, data))
	})
}

// Delete removes a session.
func (b *BadgerStore) Delete(_ context.Context, id string) error {
	return b.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete(sessionKey(id)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("delete session: %w", err)
		}
		return nil
	})
}

// CleanupExpired removes all expired sessions. Values that no longer decode
// are removed too.
func (b *BadgerStore) CleanupExpired(ctx context.Context) (int, error) {
	var expired [][]byte

	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(sessionKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			item := it.Item()

			var s Session
			err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &s)
			})
			if err != nil {
				logging.Warn().Err(err).Str("key", string(item.Key())).Msg("Dropping undecodable session")
				expired = append(expired, item.KeyCopy(nil))
				continue
			}
			if s.IsExpired() {
				expired = append(expired, item.KeyCopy(nil))
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("scan sessions: %w", err)
	}
	if len(expired) == 0 {
		return 0, nil
	}

	wb := b.db.NewWriteBatch()
	defer wb.Cancel()
	for _, key := range expired {
		if err := wb.Delete(key); err != nil {
			return 0, fmt.Errorf("delete expired session: %w", err)
		}
	}
	if err := wb.Flush(); err != nil {
		return 0, fmt.Errorf("flush session cleanup: %w", err)
	}
	return len(expired), nil
}

// Count returns the number of stored sessions.
func (b *BadgerStore) Count(_ context.Context) (int, error) {
	count := 0

	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(sessionKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	})

	return count, err
}
