// Coursefinder - Course Catalog Filtering and Similar Course Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursefinder

// Package filter implements cascading filters over the grouped course view.
//
// Four dimensions are filtered, always evaluated in the order of Dimensions:
// College, Campus, Department and Schedule Type. The options offered for a
// dimension depend on every other dimension's selection but never on its own,
// so a user can always switch to any value still reachable.
//
// Options are a pure function of the whole State. After every Select the
// caller calls Reconcile, pinning the changed dimension, which clears any
// older selection that no longer fits, and re-derives options for all
// dimensions:
//
//	filter.Select(&state, filter.College, "Engineering")
//	reset := filter.Reconcile(view, &state, filter.College)
//	courses := filter.Apply(view, state)
//
// Dimensions come from a closed set. Passing any other value to this package
// panics; ParseDimension is the checked entry point for external input.
package filter
