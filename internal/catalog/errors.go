// Coursefinder - Course Catalog Filtering and Similar Course Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursefinder

package catalog

import "errors"

// ErrLoad matches every *LoadError via errors.Is.
var ErrLoad = errors.New("catalog load failed")

// LoadError reports a catalog that is missing, unreadable or malformed.
// It is fatal: without a catalog there is no data to serve.
type LoadError struct {
	Source string
	Reason string
	Cause  error
}

func newLoadError(source, reason string, cause error) *LoadError {
	return &LoadError{Source: source, Reason: reason, Cause: cause}
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	msg := "catalog " + e.Source + ": " + e.Reason
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is ErrLoad.
func (e *LoadError) Is(target error) bool {
	return target == ErrLoad
}
