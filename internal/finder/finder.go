// Coursefinder - Course Catalog Filtering and Similar Course Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursefinder

package finder

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/coursefinder/internal/cache"
	"github.com/tomtom215/coursefinder/internal/catalog"
	"github.com/tomtom215/coursefinder/internal/courseview"
	"github.com/tomtom215/coursefinder/internal/filter"
	"github.com/tomtom215/coursefinder/internal/metrics"
	"github.com/tomtom215/coursefinder/internal/recommend"
	"github.com/tomtom215/coursefinder/internal/session"
)

var (
	// ErrCourseNotFound is returned for a grouped course ID outside the view.
	ErrCourseNotFound = errors.New("course not found")

	// ErrCourseFilteredOut is returned when picking a course the current
	// filters exclude.
	ErrCourseFilteredOut = errors.New("course excluded by current filters")

	// ErrInvalidPreference is returned for an out-of-range limit preference.
	ErrInvalidPreference = errors.New("invalid preference")
)

// Config holds session defaults and cache sizing.
type Config struct {
	// SessionTTL is how long an idle session lives. Default: 24h.
	SessionTTL time.Duration

	// HydrateDefault is the initial "display names and descriptions" choice.
	HydrateDefault bool

	// OptionCacheSize bounds the number of cached option lists. Default: 1024.
	OptionCacheSize int
}

// DefaultConfig returns the finder defaults.
func DefaultConfig() Config {
	return Config{
		SessionTTL:      24 * time.Hour,
		OptionCacheSize: 1024,
	}
}

// Finder is the presentation facade: it joins the shared catalog, the
// grouped course view, the cascading filters and the similarity engine,
// and applies user actions to stored sessions.
type Finder struct {
	tables   recommend.TableProvider
	engine   *recommend.Engine
	sessions session.Store
	cfg      Config
	logger   zerolog.Logger

	mu   sync.Mutex
	snap *snapshot

	options *cache.LRU[[]filter.DimensionOptions]
	locks   sessionLocks
}

// snapshot is the catalog and its grouped view, built once per process.
type snapshot struct {
	table *catalog.Table
	view  []courseview.GroupedCourse
}

// New creates a Finder. Zero Config fields take their defaults.
func New(tables recommend.TableProvider, engine *recommend.Engine, sessions session.Store, cfg Config, logger zerolog.Logger) (*Finder, error) { //nolint:gocritic // hugeParam: copied once at startup
	if tables == nil || engine == nil || sessions == nil {
		return nil, errors.New("finder requires a catalog, an engine and a session store")
	}
	def := DefaultConfig()
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = def.SessionTTL
	}
	if cfg.OptionCacheSize <= 0 {
		cfg.OptionCacheSize = def.OptionCacheSize
	}

	return &Finder{
		tables:   tables,
		engine:   engine,
		sessions: sessions,
		cfg:      cfg,
		logger:   logger.With().Str("component", "finder").Logger(),
		// The view never changes after load, so entries only leave by LRU.
		options: cache.NewLRU[[]filter.DimensionOptions](cfg.OptionCacheSize, 24*time.Hour),
		locks:   sessionLocks{held: make(map[string]*lockEntry)},
	}, nil
}

// snapshot returns the grouped view, loading the catalog on first use.
// Load failures are not cached here; the catalog handle decides.
func (f *Finder) snapshot(ctx context.Context) (*snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.snap != nil {
		return f.snap, nil
	}

	table, err := f.tables.Table(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	start := time.Now()
	view := courseview.Group(table)
	metrics.CatalogCourses.Set(float64(len(view)))
	f.logger.Info().
		Int("rows", table.Len()).
		Int("courses", len(view)).
		Dur("took", time.Since(start)).
		Msg("Course view built")

	f.snap = &snapshot{table: table, view: view}
	return f.snap, nil
}

// Stats summarizes the loaded catalog.
type Stats struct {
	Rows    int `json:"rows"`
	Courses int `json:"courses"`
}

// Stats returns row and grouped course counts.
func (f *Finder) Stats(ctx context.Context) (Stats, error) {
	snap, err := f.snapshot(ctx)
	if err != nil {
		return Stats{}, err
	}
	return Stats{Rows: snap.table.Len(), Courses: len(snap.view)}, nil
}

// Options returns the legal options of every dimension under state.
func (f *Finder) Options(ctx context.Context, state filter.State) ([]filter.DimensionOptions, error) { //nolint:gocritic // hugeParam: State is a single map header
	snap, err := f.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return f.optionsFor(snap, state), nil
}

//nolint:gocritic // hugeParam: State is a single map header
func (f *Finder) optionsFor(snap *snapshot, state filter.State) []filter.DimensionOptions {
	key := stateKey(state)
	if cached, ok := f.options.Get(key); ok {
		return cloneOptions(cached)
	}
	opts := filter.AllOptions(snap.view, state)
	f.options.Add(key, opts)
	return cloneOptions(opts)
}

// stateKey is a canonical cache key for a filter state.
//
//nolint:gocritic // hugeParam: State is a single map header
func stateKey(state filter.State) string {
	var b strings.Builder
	for _, d := range filter.Dimensions {
		b.WriteString(string(d))
		b.WriteByte('=')
		b.WriteString(state.Selections[d])
		b.WriteByte(0x1f)
	}
	return b.String()
}

func cloneOptions(in []filter.DimensionOptions) []filter.DimensionOptions {
	out := make([]filter.DimensionOptions, len(in))
	for i, o := range in {
		o.Options = append([]string(nil), o.Options...)
		out[i] = o
	}
	return out
}

// Courses returns the grouped courses matching state, in catalog order.
func (f *Finder) Courses(ctx context.Context, state filter.State) ([]CourseSummary, error) { //nolint:gocritic // hugeParam: State is a single map header
	snap, err := f.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return summarize(filter.Apply(snap.view, state)), nil
}

// Course returns one grouped course by ID.
func (f *Finder) Course(ctx context.Context, id int) (courseview.GroupedCourse, error) {
	snap, err := f.snapshot(ctx)
	if err != nil {
		return courseview.GroupedCourse{}, err
	}
	g, ok := courseview.Find(snap.view, id)
	if !ok {
		return courseview.GroupedCourse{}, fmt.Errorf("%w: %d", ErrCourseNotFound, id)
	}
	return g, nil
}

// Similar resolves the similar courses of a catalog row.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (f *Finder) Similar(ctx context.Context, req recommend.Request) (*recommend.Response, error) {
	return f.engine.Similar(ctx, req)
}

// CourseSummary is a grouped course as listed in the course picker.
type CourseSummary struct {
	ID           int    `json:"id"`
	Title        string `json:"title"`
	Term         string `json:"term"`
	College      string `json:"college"`
	Campus       string `json:"campus"`
	Department   string `json:"department"`
	ScheduleType string `json:"schedule_type"`
	Sections     int    `json:"sections"`
}

func summarize(courses []courseview.GroupedCourse) []CourseSummary {
	out := make([]CourseSummary, len(courses))
	for i := range courses {
		g := &courses[i]
		out[i] = CourseSummary{
			ID:           g.ID,
			Title:        g.Title,
			Term:         g.Term,
			College:      g.College,
			Campus:       g.Campus,
			Department:   g.Department,
			ScheduleType: g.ScheduleType,
			Sections:     len(g.Indices),
		}
	}
	return out
}

// sessionLocks serializes mutations of a single session.
type sessionLocks struct {
	mu   sync.Mutex
	held map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// lock acquires the lock for id and returns its release function.
func (l *sessionLocks) lock(id string) func() {
	l.mu.Lock()
	e, ok := l.held[id]
	if !ok {
		e = &lockEntry{}
		l.held[id] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.held, id)
		}
		l.mu.Unlock()
	}
}
