// Coursefinder - Course Catalog Filtering and Similar Course Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursefinder

/*
Package middleware provides chi-compatible HTTP middleware for the API.

Key Components:

  - RequestID: X-Request-ID propagation into the logging context
  - PrometheusMetrics: request count, duration and in-flight gauge, labeled
    by route pattern
  - Compression: gzip for clients that accept it

All three have the func(http.Handler) http.Handler shape and are installed
with chi's r.Use:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)
	r.Use(middleware.Compression)

PrometheusMetrics reads the chi route pattern after the handler returns, so
it must be installed on a chi router (directly or in a sub-router), not
around it.
*/
package middleware
