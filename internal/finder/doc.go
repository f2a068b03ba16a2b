// Coursefinder - Course Catalog Filtering and Similar Course Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursefinder

// Package finder is the facade the HTTP API and CLI talk to.
//
// It owns the grouped course view built from the shared catalog and applies
// user actions to stored sessions: selecting filter values, picking a course
// and changing similar-course preferences. Every action returns a View with
// the recomputed options, the filtered course list, the selected course and
// its similar courses.
//
// Stateless queries (Options, Courses, Course, Similar) take an explicit
// filter.State or catalog index and touch no session.
package finder
