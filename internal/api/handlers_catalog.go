// Coursefinder - Course Catalog Filtering and Similar Course Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursefinder

package api

import (
	"net/http"

	"github.com/tomtom215/coursefinder/internal/catalog"
	"github.com/tomtom215/coursefinder/internal/finder"
	"github.com/tomtom215/coursefinder/internal/logging"
	"github.com/tomtom215/coursefinder/internal/recommend"
)

// CatalogResponse describes the loaded catalog.
type CatalogResponse struct {
	finder.Stats
	Load *catalog.Info `json:"load,omitempty"`
}

// Catalog handles GET /api/v1/catalog.
func (h *Handler) Catalog(w http.ResponseWriter, r *http.Request) {
	stats, err := h.finder.Stats(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	resp := CatalogResponse{Stats: stats}
	if h.catalog != nil {
		if info, ok := h.catalog.Info(); ok {
			resp.Load = &info
		}
	}
	WriteSuccess(w, r, resp)
}

// Options handles GET /api/v1/options. The query is taken as-is, never
// reset: when a combination matches nothing, the dimensions it constrains
// offer only the unset sentinel. Every list starts with filter.Unset.
func (h *Handler) Options(w http.ResponseWriter, r *http.Request) {
	q := filterQuery(r)
	if !validateRequest(w, r, &q) {
		return
	}

	opts, err := h.finder.Options(r.Context(), q.State())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	NewResponseWriter(w, r).List(opts, len(opts))
}

// Courses handles GET /api/v1/courses.
func (h *Handler) Courses(w http.ResponseWriter, r *http.Request) {
	q := filterQuery(r)
	if !validateRequest(w, r, &q) {
		return
	}

	courses, err := h.finder.Courses(r.Context(), q.State())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	NewResponseWriter(w, r).List(courses, len(courses))
}

// Course handles GET /api/v1/courses/{courseID}.
func (h *Handler) Course(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "courseID")
	if err != nil {
		NewResponseWriter(w, r).BadRequest(sanitizeLogValue(err.Error()))
		return
	}

	course, err := h.finder.Course(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	WriteSuccess(w, r, course)
}

// Similar handles GET /api/v1/sections/{index}/similar.
func (h *Handler) Similar(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	index, err := pathInt(r, "index")
	if err != nil {
		rw.BadRequest(sanitizeLogValue(err.Error()))
		return
	}
	limit, err := queryOptionalInt(r, "limit")
	if err != nil {
		rw.BadRequest(sanitizeLogValue(err.Error()))
		return
	}
	hydrate, err := queryBool(r, "hydrate", false)
	if err != nil {
		rw.BadRequest(sanitizeLogValue(err.Error()))
		return
	}

	req := SimilarRequest{Index: index, Limit: limit, Hydrate: hydrate}
	if !validateRequest(w, r, &req) {
		return
	}

	resp, err := h.finder.Similar(r.Context(), recommend.Request{
		Index:     req.Index,
		Limit:     req.Limit,
		Hydrate:   req.Hydrate,
		RequestID: logging.RequestIDFromContext(r.Context()),
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	rw.Success(resp)
}
