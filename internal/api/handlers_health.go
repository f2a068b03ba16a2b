// Coursefinder - Course Catalog Filtering and Similar Course Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursefinder

package api

import (
	"net/http"
	"time"
)

// HealthLive handles liveness probe requests (Kubernetes-style).
// Returns 200 OK while the process is alive, regardless of the catalog.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles readiness probe requests (Kubernetes-style).
// Returns 200 OK once the catalog is loaded, 503 before.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	ready := h.catalogReady(r)

	data := map[string]interface{}{
		"catalog_loaded": ready,
		"ready_to_serve": ready,
		"uptime":         time.Since(h.startTime).Seconds(),
	}

	rw := NewResponseWriter(w, r)
	if !ready {
		rw.ErrorWithDetails(http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Catalog not loaded", data)
		return
	}
	rw.Success(data)
}

// catalogReady reports readiness without forcing a catalog load when a
// status source is available.
func (h *Handler) catalogReady(r *http.Request) bool {
	if h.catalog != nil {
		return h.catalog.Loaded()
	}
	_, err := h.finder.Stats(r.Context())
	return err == nil
}
