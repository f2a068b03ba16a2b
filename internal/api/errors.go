// Coursefinder - Course Catalog Filtering and Similar Course Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursefinder

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/coursefinder/internal/catalog"
	"github.com/tomtom215/coursefinder/internal/finder"
	"github.com/tomtom215/coursefinder/internal/logging"
	"github.com/tomtom215/coursefinder/internal/recommend"
	"github.com/tomtom215/coursefinder/internal/session"
)

// writeDomainError maps an error returned by the finder to an API error.
// Unclassified errors are logged and reported as 500 without detail.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	rw := NewResponseWriter(w, r)
	logger := logging.Ctx(r.Context())

	var idxErr *recommend.IndexError
	switch {
	case errors.As(err, &idxErr) && idxErr.Stale():
		logger.Error().
			Int("index", idxErr.Index).
			Int("referrer", idxErr.Referrer).
			Msg("Similar course reference outside catalog")
		rw.ErrorWithDetails(http.StatusInternalServerError, ErrCodeCorruptIndex,
			"Similar course data references a missing section",
			map[string]int{"index": idxErr.Index, "referrer": idxErr.Referrer})

	case errors.As(err, &idxErr):
		rw.ErrorWithDetails(http.StatusNotFound, ErrCodeNotFound, "Section not found",
			map[string]int{"index": idxErr.Index, "rows": idxErr.Len})

	case errors.Is(err, recommend.ErrInvalidLimit), errors.Is(err, finder.ErrInvalidPreference):
		rw.BadRequest(sanitizeLogValue(err.Error()))

	case errors.Is(err, session.ErrSessionNotFound), errors.Is(err, session.ErrSessionExpired):
		rw.NotFound("Session not found")

	case errors.Is(err, finder.ErrCourseNotFound):
		rw.NotFound("Course not found")

	case errors.Is(err, finder.ErrCourseFilteredOut):
		rw.Conflict("Course is excluded by the current filters")

	case errors.Is(err, catalog.ErrLoad):
		logger.Error().Err(err).Msg("Catalog unavailable")
		rw.ServiceUnavailable("No course data available")

	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		rw.ServiceUnavailable("Request cancelled")

	default:
		logger.Error().Str("error", sanitizeLogValue(err.Error())).Msg("API error")
		rw.InternalError("An internal error occurred")
	}
}
