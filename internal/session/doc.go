// Coursefinder - Course Catalog Filtering and Similar Course Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursefinder

// Package session stores per-user browsing state.
//
// A Session owns one filter.State plus the picked course and similar-course
// preferences. Sessions are independent of each other; the catalog they
// filter is shared and read-only.
//
// Two backends implement Store:
//
//   - MemoryStore: bounded LRU with per-session expiry (default)
//   - BadgerStore: BadgerDB persistence across restarts
//
// Factory opens the configured backend and wraps it with Prometheus
// instrumentation.
package session
