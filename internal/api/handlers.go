// Coursefinder - Course Catalog Filtering and Similar Course Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursefinder

package api

import (
	"time"

	"github.com/tomtom215/coursefinder/internal/catalog"
	"github.com/tomtom215/coursefinder/internal/finder"
)

// CatalogStatus reports on the catalog load without triggering one.
// *catalog.Handle implements it.
type CatalogStatus interface {
	Loaded() bool
	Info() (catalog.Info, bool)
}

// Handler serves the course finder over HTTP.
//
// File organization:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_helpers.go: shared request helpers
//   - handlers_health.go: liveness and readiness probes
//   - handlers_catalog.go: stateless catalog queries
//   - handlers_sessions.go: session actions
type Handler struct {
	finder    *finder.Finder
	catalog   CatalogStatus
	startTime time.Time
}

// NewHandler creates a handler over f. status may be nil, in which case
// readiness is derived from the finder alone.
func NewHandler(f *finder.Finder, status CatalogStatus) *Handler {
	return &Handler{
		finder:    f,
		catalog:   status,
		startTime: time.Now(),
	}
}
