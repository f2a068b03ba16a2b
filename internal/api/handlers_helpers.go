// Coursefinder - Course Catalog Filtering and Similar Course Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursefinder

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/coursefinder/internal/filter"
	"github.com/tomtom215/coursefinder/internal/validation"
)

// maxBodyBytes bounds request bodies; every body is a small JSON object.
const maxBodyBytes = 64 << 10

var errEmptyBody = errors.New("request body is required")

// sanitizeLogValue removes control characters from strings to prevent log injection attacks.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&result, "\\x%02x", r)
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// decodeJSON decodes a single JSON object from the request body into v.
// Unknown fields are rejected.
func decodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errEmptyBody
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

// decodeAndValidate decodes the body into v and validates it, writing the
// error response itself. It reports whether the handler should continue.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := decodeJSON(r, v); err != nil {
		NewResponseWriter(w, r).BadRequest(sanitizeLogValue(err.Error()))
		return false
	}
	return validateRequest(w, r, v)
}

// validateRequest validates v with go-playground/validator, writing a 400
// on failure. It reports whether the handler should continue.
func validateRequest(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if verr := validation.ValidateStruct(v); verr != nil {
		NewResponseWriter(w, r).ValidationError(verr)
		return false
	}
	return true
}

// filterQuery reads the ad-hoc filter state from the query string.
func filterQuery(r *http.Request) FilterQuery {
	q := r.URL.Query()
	return FilterQuery{
		College:      q.Get(string(filter.College)),
		Campus:       q.Get(string(filter.Campus)),
		Department:   q.Get(string(filter.Department)),
		ScheduleType: q.Get(string(filter.ScheduleType)),
	}
}

// State converts the query to a filter state; empty values stay unset.
func (q *FilterQuery) State() filter.State {
	var state filter.State
	values := map[filter.Dimension]string{
		filter.College:      q.College,
		filter.Campus:       q.Campus,
		filter.Department:   q.Department,
		filter.ScheduleType: q.ScheduleType,
	}
	for _, d := range filter.Dimensions {
		filter.Select(&state, d, values[d])
	}
	return state
}

// pathInt parses a URL parameter as a base-10 integer.
func pathInt(r *http.Request, key string) (int, error) {
	raw := chi.URLParam(r, key)
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, raw)
	}
	return n, nil
}

// queryOptionalInt parses an optional integer query parameter. A missing or
// empty parameter yields nil, so callers can tell it apart from an explicit 0.
func queryOptionalInt(r *http.Request, key string) (*int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer, got %q", key, raw)
	}
	return &n, nil
}

// queryBool parses an optional boolean query parameter.
func queryBool(r *http.Request, key string, defaultValue bool) (bool, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be true or false, got %q", key, raw)
	}
	return b, nil
}
