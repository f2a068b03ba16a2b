// Coursefinder - Course Catalog Filtering and Similar Course Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursefinder

// Package services provides suture.Service wrappers for Coursefinder's
// long-running components: the HTTP server and the expired-session sweep.
package services
