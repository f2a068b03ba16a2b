// Coursefinder - Course Catalog Filtering and Similar Course Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursefinder

package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/coursefinder/internal/filter"
	"github.com/tomtom215/coursefinder/internal/metrics"
)

func intPtr(v int) *int { return &v }

// newBadgerTestStore opens a BadgerDB-backed store in a temp directory.
func newBadgerTestStore(t *testing.T) Store {
	t.Helper()
	f, err := NewFactory(StoreBadger, t.TempDir(), 0)
	if err != nil {
		t.Fatalf("NewFactory(badger) error: %v", err)
	}
	t.Cleanup(func() { _ = f.Close() })
	return NewBadgerStore(f.db)
}

// storeSuites runs every contract test against both backends.
func storeSuites(t *testing.T) map[string]func(t *testing.T) Store {
	t.Helper()
	return map[string]func(t *testing.T) Store{
		"memory": func(*testing.T) Store { return NewMemoryStore(100) },
		"badger": newBadgerTestStore,
	}
}

// --- Test: Session ---

func TestNew(t *testing.T) {
	t.Parallel()

	s := New(time.Hour, 10, true)
	if s.ID == "" {
		t.Error("ID is empty")
	}
	if s.Limit != 10 || !s.Hydrate {
		t.Errorf("Limit, Hydrate = %d, %v; want 10, true", s.Limit, s.Hydrate)
	}
	if s.IsExpired() {
		t.Error("new session is expired")
	}
	if s.CourseID != nil || len(s.Filters.Selections) != 0 {
		t.Errorf("new session has state: %+v", s)
	}
	if other := New(time.Hour, 10, false); other.ID == s.ID {
		t.Error("two sessions share an ID")
	}
}

func TestSession_Touch(t *testing.T) {
	t.Parallel()

	s := New(time.Millisecond, 10, false)
	s.ExpiresAt = time.Now().Add(-time.Minute)
	if !s.IsExpired() {
		t.Fatal("session should be expired")
	}
	s.Touch(time.Hour)
	if s.IsExpired() {
		t.Error("Touch did not extend expiry")
	}
}

func TestSession_CloneIsDeep(t *testing.T) {
	t.Parallel()

	s := New(time.Hour, 10, false)
	filter.Select(&s.Filters, filter.College, "A")
	s.SelectCourse(intPtr(3))

	c := s.Clone()
	filter.Select(&c.Filters, filter.College, "B")
	*c.CourseID = 9

	if s.Filters.Selected(filter.College) != "A" {
		t.Error("clone shares filter state")
	}
	if *s.CourseID != 3 {
		t.Error("clone shares course id")
	}
}

// --- Test: Store contract ---

func TestStore_CRUD(t *testing.T) {
	t.Parallel()

	for name, open := range storeSuites(t) {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			store := open(t)

			s := New(time.Hour, 7, true)
			filter.Select(&s.Filters, filter.Campus, "Main")
			s.SelectCourse(intPtr(2))

			if err := store.Create(ctx, s); err != nil {
				t.Fatalf("Create() error = %v", err)
			}

			got, err := store.Get(ctx, s.ID)
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if got.Limit != 7 || !got.Hydrate || got.Filters.Selected(filter.Campus) != "Main" {
				t.Errorf("Get() = %+v, want stored fields", got)
			}
			if got.CourseID == nil || *got.CourseID != 2 {
				t.Errorf("CourseID = %v, want 2", got.CourseID)
			}

			filter.Select(&got.Filters, filter.Campus, filter.Unset)
			got.SelectCourse(nil)
			if err := store.Update(ctx, got); err != nil {
				t.Fatalf("Update() error = %v", err)
			}
			again, err := store.Get(ctx, s.ID)
			if err != nil {
				t.Fatalf("Get() after update error = %v", err)
			}
			if again.Filters.IsSet(filter.Campus) || again.CourseID != nil {
				t.Errorf("update not persisted: %+v", again)
			}

			if n, err := store.Count(ctx); err != nil || n != 1 {
				t.Errorf("Count() = %d, %v; want 1", n, err)
			}

			if err := store.Delete(ctx, s.ID); err != nil {
				t.Fatalf("Delete() error = %v", err)
			}
			if _, err := store.Get(ctx, s.ID); !errors.Is(err, ErrSessionNotFound) {
				t.Errorf("Get() after delete error = %v, want ErrSessionNotFound", err)
			}
			if err := store.Delete(ctx, s.ID); err != nil {
				t.Errorf("second Delete() error = %v, want nil", err)
			}
		})
	}
}

func TestStore_UpdateMissing(t *testing.T) {
	t.Parallel()

	for name, open := range storeSuites(t) {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			err := open(t).Update(context.Background(), New(time.Hour, 10, false))
			if !errors.Is(err, ErrSessionNotFound) {
				t.Errorf("Update(missing) error = %v, want ErrSessionNotFound", err)
			}
		})
	}
}

func TestStore_ReturnsCopies(t *testing.T) {
	t.Parallel()

	for name, open := range storeSuites(t) {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			store := open(t)

			s := New(time.Hour, 10, false)
			if err := store.Create(ctx, s); err != nil {
				t.Fatal(err)
			}
			filter.Select(&s.Filters, filter.College, "mutated after create")

			got, err := store.Get(ctx, s.ID)
			if err != nil {
				t.Fatal(err)
			}
			if got.Filters.IsSet(filter.College) {
				t.Error("store shares state with the caller's session")
			}
		})
	}
}

func TestStore_Expiry(t *testing.T) {
	t.Parallel()

	for name, open := range storeSuites(t) {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			store := open(t)

			live := New(time.Hour, 10, false)
			dead := New(time.Hour, 10, false)
			dead.ExpiresAt = time.Now().Add(-time.Second)

			for _, s := range []*Session{live, dead} {
				if err := store.Create(ctx, s); err != nil {
					t.Fatal(err)
				}
			}

			_, err := store.Get(ctx, dead.ID)
			if !errors.Is(err, ErrSessionExpired) && !errors.Is(err, ErrSessionNotFound) {
				t.Errorf("Get(expired) error = %v, want ErrSessionExpired or ErrSessionNotFound", err)
			}
			if err := store.Update(ctx, dead); !errors.Is(err, ErrSessionNotFound) {
				t.Errorf("Update(expired) error = %v, want ErrSessionNotFound", err)
			}

			if _, err := store.CleanupExpired(ctx); err != nil {
				t.Fatalf("CleanupExpired() error = %v", err)
			}
			if n, _ := store.Count(ctx); n != 1 {
				t.Errorf("Count() after cleanup = %d, want 1", n)
			}
			if _, err := store.Get(ctx, live.ID); err != nil {
				t.Errorf("Get(live) error = %v", err)
			}
		})
	}
}

func TestBadgerStore_CleanupCountsRemoved(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newBadgerTestStore(t)

	for i := 0; i < 3; i++ {
		s := New(time.Hour, 10, false)
		s.ExpiresAt = time.Now().Add(-time.Minute)
		if err := store.Create(ctx, s); err != nil {
			t.Fatal(err)
		}
	}
	if err := store.Create(ctx, New(time.Hour, 10, false)); err != nil {
		t.Fatal(err)
	}

	n, err := store.CleanupExpired(ctx)
	if err != nil {
		t.Fatalf("CleanupExpired() error = %v", err)
	}
	if n != 3 {
		t.Errorf("CleanupExpired() = %d, want 3", n)
	}
}

// entryExpiry returns the Badger expiry (unix seconds) of a stored session.
func entryExpiry(t *testing.T, store *BadgerStore, id string) uint64 {
	t.Helper()
	var expires uint64
	err := store.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(sessionKey(id))
		if err != nil {
			return err
		}
		expires = item.ExpiresAt()
		return nil
	})
	if err != nil {
		t.Fatalf("read entry %s: %v", id, err)
	}
	return expires
}

func TestBadgerStore_EntriesCarryTTL(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, ok := newBadgerTestStore(t).(*BadgerStore)
	if !ok {
		t.Fatal("newBadgerTestStore() is not a *BadgerStore")
	}

	s := New(time.Hour, 10, false)
	if err := store.Create(ctx, s); err != nil {
		t.Fatal(err)
	}
	want := s.ExpiresAt.Add(expiryGrace).Unix()
	if got := int64(entryExpiry(t, store, s.ID)); got < want-1 || got > want+1 {
		t.Errorf("entry ExpiresAt = %d, want %d", got, want)
	}

	s.ExpiresAt = s.ExpiresAt.Add(2 * time.Hour)
	if err := store.Update(ctx, s); err != nil {
		t.Fatal(err)
	}
	want = s.ExpiresAt.Add(expiryGrace).Unix()
	if got := int64(entryExpiry(t, store, s.ID)); got < want-1 || got > want+1 {
		t.Errorf("entry ExpiresAt after Update = %d, want %d", got, want)
	}
}

func TestBadgerStore_StaleEntryIsDropped(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newBadgerTestStore(t)

	s := New(time.Hour, 10, false)
	s.ExpiresAt = time.Now().Add(-2 * expiryGrace)
	if err := store.Create(ctx, s); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Get(ctx, s.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Get(stale) error = %v, want ErrSessionNotFound", err)
	}
	if n, _ := store.Count(ctx); n != 0 {
		t.Errorf("Count() = %d, want 0", n)
	}
}

func TestBadgerStore_SurvivesReopen(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()

	f, err := NewFactory(StoreBadger, dir, 0)
	if err != nil {
		t.Fatal(err)
	}
	s := New(time.Hour, 4, true)
	filter.Select(&s.Filters, filter.Department, "MATH")
	if err := f.CreateStore().Create(ctx, s); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	f2, err := NewFactory(StoreBadger, dir, 0)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = f2.Close() }()

	got, err := f2.CreateStore().Get(ctx, s.ID)
	if err != nil {
		t.Fatalf("Get() after reopen error = %v", err)
	}
	if got.Filters.Selected(filter.Department) != "MATH" || got.Limit != 4 {
		t.Errorf("reopened session = %+v", got)
	}
}

func TestMemoryStore_EvictsLeastRecentlyUsed(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemoryStore(2)

	first := New(time.Hour, 10, false)
	second := New(time.Hour, 10, false)
	third := New(time.Hour, 10, false)

	_ = store.Create(ctx, first)
	_ = store.Create(ctx, second)
	if _, err := store.Get(ctx, first.ID); err != nil {
		t.Fatal(err)
	}
	_ = store.Create(ctx, third)

	if _, err := store.Get(ctx, second.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Get(second) error = %v, want eviction", err)
	}
	if _, err := store.Get(ctx, first.ID); err != nil {
		t.Errorf("Get(first) error = %v, recently used session evicted", err)
	}
}

func TestMemoryStore_ConcurrentUpdates(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemoryStore(100)
	s := New(time.Hour, 10, false)
	if err := store.Create(ctx, s); err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c := s.Clone()
			c.Limit = i + 1
			if err := store.Update(ctx, c); err != nil {
				t.Errorf("Update() error = %v", err)
			}
			if _, err := store.Get(ctx, s.ID); err != nil {
				t.Errorf("Get() error = %v", err)
			}
		}(i)
	}
	wg.Wait()
}

// --- Test: factory ---

func TestParseStoreType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    StoreType
		wantErr bool
	}{
		{"", StoreMemory, false},
		{"memory", StoreMemory, false},
		{" Badger ", StoreBadger, false},
		{"redis", "", true},
	}
	for _, tt := range tests {
		got, err := ParseStoreType(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseStoreType(%q) = %q, %v; want %q, err %v", tt.in, got, err, tt.want, tt.wantErr)
		}
	}
}

func TestNewFactory(t *testing.T) {
	t.Parallel()

	mem, err := NewFactory(StoreMemory, "", 10)
	if err != nil {
		t.Fatalf("NewFactory(memory) error = %v", err)
	}
	if mem.Type() != StoreMemory || mem.db != nil {
		t.Errorf("memory factory = %+v", mem)
	}
	if err := mem.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}

	if _, err := NewFactory(StoreBadger, "", 0); err == nil {
		t.Error("NewFactory(badger, no path) error = nil, want error")
	}
	if _, err := NewFactory("sqlite", "", 0); err == nil {
		t.Error("NewFactory(unknown) error = nil, want error")
	}
}

// --- Test: instrumentation ---

// failingStore fails every call.
type failingStore struct{ err error }

func (f failingStore) Create(context.Context, *Session) error { return f.err }
func (f failingStore) Get(context.Context, string) (*Session, error) { return nil, f.err }
func (f failingStore) Update(context.Context, *Session) error { return f.err }
func (f failingStore) Delete(context.Context, string) error { return f.err }
func (f failingStore) CleanupExpired(context.Context) (int, error) { return 0, f.err }
func (f failingStore) Count(context.Context) (int, error) { return 0, f.err }

func TestInstrument_RecordsOperations(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	name := fmt.Sprintf("test-%d", time.Now().UnixNano())
	store := Instrument(NewMemoryStore(10), name)

	s := New(time.Hour, 10, false)
	if err := store.Create(ctx, s); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Get(ctx, s.ID); err != nil {
		t.Fatal(err)
	}
	_, _ = store.Get(ctx, "missing")

	if got := testutil.ToFloat64(metrics.SessionOperations.WithLabelValues(name, "create", "ok")); got != 1 {
		t.Errorf("create ok = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.SessionOperations.WithLabelValues(name, "get", "ok")); got != 1 {
		t.Errorf("get ok = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.SessionOperations.WithLabelValues(name, "get", "error")); got != 1 {
		t.Errorf("get error = %v, want 1", got)
	}

	failing := Instrument(failingStore{err: errors.New("down")}, name+"-failing")
	if err := failing.Update(ctx, s); err == nil {
		t.Error("Update() error = nil, want passthrough")
	}
	if got := testutil.ToFloat64(metrics.SessionOperations.WithLabelValues(name+"-failing", "update", "error")); got != 1 {
		t.Errorf("update error = %v, want 1", got)
	}
}
