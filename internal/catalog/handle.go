// Coursefinder - Course Catalog Filtering and Similar Course Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursefinder

package catalog

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tomtom215/coursefinder/internal/metrics"
)

// LoadFunc reads a catalog. Load is the production implementation.
type LoadFunc func(ctx context.Context, src Source) (*Table, error)

// Handle is the process-wide catalog: loaded at most once, read-only after.
// It is created at startup and passed to everything that needs the table.
type Handle struct {
	src  Source
	load LoadFunc

	once     sync.Once
	done     atomic.Bool
	table    *Table
	err      error
	loadedAt time.Time
	took     time.Duration
}

// NewHandle returns a handle that loads src on first use.
func NewHandle(src Source) *Handle { //nolint:gocritic // hugeParam: copied once at startup
	return NewHandleWithLoader(src, Load)
}

// NewHandleWithLoader returns a handle using a custom loader.
func NewHandleWithLoader(src Source, load LoadFunc) *Handle { //nolint:gocritic // hugeParam: copied once at startup
	return &Handle{src: src, load: load}
}

// Table loads the catalog on the first call and returns the same table, or
// the same error, on every call after. Concurrent first calls block until the
// single load completes.
func (h *Handle) Table(ctx context.Context) (*Table, error) {
	h.once.Do(func() {
		start := time.Now()
		h.table, h.err = h.load(ctx, h.src)
		h.took = time.Since(start)
		h.loadedAt = time.Now()

		defer h.done.Store(true)

		metrics.CatalogLoadDuration.Observe(h.took.Seconds())
		if h.err != nil {
			metrics.CatalogLoadErrors.Inc()
			return
		}
		metrics.CatalogRows.Set(float64(h.table.Len()))
	})
	return h.table, h.err
}

// Loaded reports whether a load has succeeded. It never triggers a load.
func (h *Handle) Loaded() bool {
	return h.done.Load() && h.err == nil
}

// Info describes the completed load.
type Info struct {
	Source   string        `json:"source"`
	Rows     int           `json:"rows"`
	LoadedAt time.Time     `json:"loaded_at"`
	Took     time.Duration `json:"took_ns"`
}

// Info returns load details; ok is false until a load has succeeded.
func (h *Handle) Info() (info Info, ok bool) {
	if !h.Loaded() {
		return Info{}, false
	}
	return Info{
		Source:   h.src.String(),
		Rows:     h.table.Len(),
		LoadedAt: h.loadedAt,
		Took:     h.took,
	}, true
}
