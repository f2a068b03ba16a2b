// Coursefinder - Course Catalog Filtering and Similar Course Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursefinder

package finder

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/coursefinder/internal/courseview"
	"github.com/tomtom215/coursefinder/internal/filter"
	"github.com/tomtom215/coursefinder/internal/logging"
	"github.com/tomtom215/coursefinder/internal/metrics"
	"github.com/tomtom215/coursefinder/internal/recommend"
	"github.com/tomtom215/coursefinder/internal/session"
)

// View is everything a client needs to render one session.
type View struct {
	SessionID  string                      `json:"session_id"`
	Selections map[filter.Dimension]string `json:"selections"`
	Options    []filter.DimensionOptions   `json:"options"`
	Courses    []CourseSummary             `json:"courses"`

	// Selected is the picked course, or the first listed course when none
	// was picked (AutoSelected). Nil when the filtered list is empty.
	Selected     *courseview.GroupedCourse `json:"selected,omitempty"`
	AutoSelected bool                      `json:"auto_selected"`

	// Similar is resolved for Selected using the session preferences.
	Similar *recommend.Response `json:"similar,omitempty"`

	Limit     int       `json:"limit"`
	Hydrate   bool      `json:"hydrate"`
	ExpiresAt time.Time `json:"expires_at"`

	// Reset lists the dimensions the last change cleared.
	Reset []filter.Dimension `json:"reset,omitempty"`

	// CourseCleared is set when the last change dropped the picked course.
	CourseCleared bool `json:"course_cleared,omitempty"`
}

// change is the side effect of one mutation, reported back in the View.
type change struct {
	reset         []filter.Dimension
	courseCleared bool
}

// mutation edits a session in place against the loaded view.
type mutation func(s *session.Session, snap *snapshot) (change, error)

// CreateSession starts a session with no selections.
func (f *Finder) CreateSession(ctx context.Context) (*View, error) {
	snap, err := f.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	s := session.New(f.cfg.SessionTTL, f.engine.GetConfig().DefaultLimit, f.cfg.HydrateDefault)
	if err := f.sessions.Create(ctx, s); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	logging.Ctx(logging.ContextWithSessionID(ctx, s.ID)).Debug().Msg("Session created")
	return f.buildView(ctx, snap, s, change{})
}

// View returns the current view of a session and extends its expiry.
func (f *Finder) View(ctx context.Context, id string) (*View, error) {
	return f.mutate(ctx, id, func(*session.Session, *snapshot) (change, error) {
		return change{}, nil
	})
}

// SetFilter selects value on dimension d, or clears it when value is
// filter.Unset. Older selections the new one conflicts with are cleared,
// and so is a picked course the filters now exclude.
func (f *Finder) SetFilter(ctx context.Context, id string, d filter.Dimension, value string) (*View, error) {
	return f.mutate(ctx, id, func(s *session.Session, snap *snapshot) (change, error) {
		filter.Select(&s.Filters, d, value)
		metrics.RecordFilterSelection(string(d), value != filter.Unset)

		var c change
		c.reset = filter.Reconcile(snap.view, &s.Filters, d)
		for _, r := range c.reset {
			metrics.RecordFilterReset(string(r))
		}
		if len(c.reset) > 0 {
			logging.Ctx(ctx).Debug().
				Str("dimension", string(d)).
				Interface("reset", c.reset).
				Msg("Selections reset")
		}

		if s.CourseID != nil && !courseListed(snap.view, s.Filters, *s.CourseID) {
			s.SelectCourse(nil)
			c.courseCleared = true
		}
		return c, nil
	})
}

// ClearFilter clears dimension d.
func (f *Finder) ClearFilter(ctx context.Context, id string, d filter.Dimension) (*View, error) {
	return f.SetFilter(ctx, id, d, filter.Unset)
}

// SelectCourse picks a grouped course from the filtered list. A nil
// courseID returns to the default (first listed) course.
func (f *Finder) SelectCourse(ctx context.Context, id string, courseID *int) (*View, error) {
	return f.mutate(ctx, id, func(s *session.Session, snap *snapshot) (change, error) {
		if courseID == nil {
			s.SelectCourse(nil)
			return change{}, nil
		}
		if _, ok := courseview.Find(snap.view, *courseID); !ok {
			return change{}, fmt.Errorf("%w: %d", ErrCourseNotFound, *courseID)
		}
		if !courseListed(snap.view, s.Filters, *courseID) {
			return change{}, fmt.Errorf("%w: %d", ErrCourseFilteredOut, *courseID)
		}
		s.SelectCourse(courseID)
		return change{}, nil
	})
}

// SetPreferences updates the similar-course limit and hydration choice.
// Nil arguments keep the current value. limit must be within
// [1, MaxLimit].
func (f *Finder) SetPreferences(ctx context.Context, id string, limit *int, hydrate *bool) (*View, error) {
	maxLimit := f.engine.GetConfig().MaxLimit
	if limit != nil && (*limit < 1 || *limit > maxLimit) {
		return nil, fmt.Errorf("%w: limit %d outside [1, %d]", ErrInvalidPreference, *limit, maxLimit)
	}

	return f.mutate(ctx, id, func(s *session.Session, _ *snapshot) (change, error) {
		if limit != nil {
			s.Limit = *limit
		}
		if hydrate != nil {
			s.Hydrate = *hydrate
		}
		return change{}, nil
	})
}

// DeleteSession removes a session.
func (f *Finder) DeleteSession(ctx context.Context, id string) error {
	unlock := f.locks.lock(id)
	defer unlock()

	if err := f.sessions.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// mutate loads a session, applies fn, refreshes expiry and stores it. Calls
// for the same session are serialized.
func (f *Finder) mutate(ctx context.Context, id string, fn mutation) (*View, error) {
	snap, err := f.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	unlock := f.locks.lock(id)
	defer unlock()

	ctx = logging.ContextWithSessionID(ctx, id)
	s, err := f.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	// Stored state may predate a dimension change; a no-op otherwise.
	filter.Reconcile(snap.view, &s.Filters)
	if s.CourseID != nil && !courseListed(snap.view, s.Filters, *s.CourseID) {
		s.SelectCourse(nil)
	}

	c, err := fn(s, snap)
	if err != nil {
		return nil, err
	}

	s.Touch(f.cfg.SessionTTL)
	if err := f.sessions.Update(ctx, s); err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}

	return f.buildView(ctx, snap, s, c)
}

// buildView derives options, the course list, the selected course and its
// similar courses from a session.
func (f *Finder) buildView(ctx context.Context, snap *snapshot, s *session.Session, c change) (*View, error) {
	courses := filter.Apply(snap.view, s.Filters)

	v := &View{
		SessionID:     s.ID,
		Selections:    s.Filters.Clone().Selections,
		Options:       f.optionsFor(snap, s.Filters),
		Courses:       summarize(courses),
		Limit:         s.Limit,
		Hydrate:       s.Hydrate,
		ExpiresAt:     s.ExpiresAt,
		Reset:         c.reset,
		CourseCleared: c.courseCleared,
	}
	if v.Selections == nil {
		v.Selections = map[filter.Dimension]string{}
	}

	selected := pickCourse(courses, s.CourseID)
	if selected == nil {
		return v, nil
	}
	v.Selected = selected
	v.AutoSelected = s.CourseID == nil

	resp, err := f.engine.Similar(ctx, recommend.Request{
		Index:     selected.FirstIndex(),
		Limit:     recommend.Limit(s.Limit),
		Hydrate:   s.Hydrate,
		RequestID: logging.RequestIDFromContext(ctx),
	})
	if err != nil {
		return nil, fmt.Errorf("similar courses for %q: %w", selected.Title, err)
	}
	v.Similar = resp
	return v, nil
}

// pickCourse returns the course with ID id from courses, or the first course
// when id is nil.
func pickCourse(courses []courseview.GroupedCourse, id *int) *courseview.GroupedCourse {
	if len(courses) == 0 {
		return nil
	}
	if id == nil {
		g := courses[0].Clone()
		return &g
	}
	for i := range courses {
		if courses[i].ID == *id {
			g := courses[i].Clone()
			return &g
		}
	}
	return nil
}

// courseListed reports whether grouped course id survives the filters.
//
//nolint:gocritic // hugeParam: State is a single map header
func courseListed(view []courseview.GroupedCourse, state filter.State, id int) bool {
	for _, g := range filter.Apply(view, state) {
		if g.ID == id {
			return true
		}
	}
	return false
}
