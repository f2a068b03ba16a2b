// Coursefinder - Course Catalog Filtering and Similar Course Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursefinder

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/coursefinder/internal/filter"
	"github.com/tomtom215/coursefinder/internal/finder"
	"github.com/tomtom215/coursefinder/internal/logging"
)

// CreateSession handles POST /api/v1/sessions.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	view, err := h.finder.CreateSession(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/v1/sessions/"+view.SessionID)
	NewResponseWriter(w, r).Created(view)
}

// GetSession handles GET /api/v1/sessions/{sessionID}.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	h.respondView(w, r)(h.finder.View(r.Context(), id))
}

// DeleteSession handles DELETE /api/v1/sessions/{sessionID}. Deleting an
// unknown session succeeds.
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	if err := h.finder.DeleteSession(r.Context(), id); err != nil {
		writeDomainError(w, r, err)
		return
	}
	NewResponseWriter(w, r).NoContent()
}

// SetFilter handles PUT /api/v1/sessions/{sessionID}/filters/{dimension}.
// Selections the new value conflicts with are cleared and listed in the
// view's reset field.
func (h *Handler) SetFilter(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	d, ok := dimension(w, r)
	if !ok {
		return
	}

	var body SetFilterBody
	if !decodeAndValidate(w, r, &body) {
		return
	}

	view, err := h.finder.SetFilter(r.Context(), id, d, *body.Value)
	if err == nil && len(view.Reset) > 0 {
		logging.Ctx(r.Context()).Debug().
			Str("dimension", string(d)).
			Interface("reset", view.Reset).
			Msg("Filter change reset selections")
	}
	h.respondView(w, r)(view, err)
}

// ClearFilter handles DELETE /api/v1/sessions/{sessionID}/filters/{dimension}.
func (h *Handler) ClearFilter(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	d, ok := dimension(w, r)
	if !ok {
		return
	}
	h.respondView(w, r)(h.finder.ClearFilter(r.Context(), id, d))
}

// SelectCourse handles PUT /api/v1/sessions/{sessionID}/course.
func (h *Handler) SelectCourse(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	var body SelectCourseBody
	if !decodeAndValidate(w, r, &body) {
		return
	}
	h.respondView(w, r)(h.finder.SelectCourse(r.Context(), id, body.CourseID))
}

// SetPreferences handles PUT /api/v1/sessions/{sessionID}/preferences.
func (h *Handler) SetPreferences(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	var body PreferencesBody
	if !decodeAndValidate(w, r, &body) {
		return
	}
	h.respondView(w, r)(h.finder.SetPreferences(r.Context(), id, body.Limit, body.Hydrate))
}

// respondView writes a session view or maps its error.
func (h *Handler) respondView(w http.ResponseWriter, r *http.Request) func(*finder.View, error) {
	return func(view *finder.View, err error) {
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		WriteSuccess(w, r, view)
	}
}

// sessionID validates the sessionID URL parameter.
func sessionID(w http.ResponseWriter, r *http.Request) (string, bool) {
	p := SessionPath{SessionID: chi.URLParam(r, "sessionID")}
	if !validateRequest(w, r, &p) {
		return "", false
	}
	return p.SessionID, true
}

// dimension validates and resolves the dimension URL parameter.
func dimension(w http.ResponseWriter, r *http.Request) (filter.Dimension, bool) {
	p := DimensionPath{Dimension: chi.URLParam(r, "dimension")}
	if !validateRequest(w, r, &p) {
		return "", false
	}
	// Validated above; ParseDimension cannot fail here.
	d, _ := filter.ParseDimension(p.Dimension)
	return d, true
}
