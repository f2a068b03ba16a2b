// Coursefinder - Course Catalog Filtering and Similar Course Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursefinder

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus Metrics Integration for Production Observability
// This package provides instrumentation for:
// - API endpoint latency and throughput
// - Catalog load time and size
// - Similar course queries
// - Filter resets
// - Session store activity

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5}, // In-memory queries
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Catalog Metrics
	CatalogRows = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_rows",
			Help: "Number of section rows in the loaded catalog",
		},
	)

	CatalogCourses = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_grouped_courses",
			Help: "Number of distinct grouped courses in the loaded catalog",
		},
	)

	CatalogLoadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_load_duration_seconds",
			Help:    "Duration of catalog loads in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	CatalogLoadErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_load_errors_total",
			Help: "Total number of failed catalog loads",
		},
	)

	// Similar Course Metrics
	SimilarQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "similar_course_queries_total",
			Help: "Total number of similar course queries by outcome",
		},
		[]string{"outcome"}, // "ok", "empty", "index_error", "invalid_limit"
	)

	SimilarQueryDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "similar_course_query_duration_seconds",
			Help:    "Duration of similar course queries in seconds",
			Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
		},
	)

	SimilarResultSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "similar_course_result_size",
			Help:    "Number of similar courses returned per query",
			Buckets: []float64{0, 1, 2, 5, 10, 15, 20},
		},
	)

	// Filter Metrics
	FilterSelections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "filter_selections_total",
			Help: "Total number of filter selections by dimension",
		},
		[]string{"dimension", "action"}, // action: "set", "unset"
	)

	FilterResets = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "filter_resets_total",
			Help: "Total number of selections reset because they became illegal",
		},
		[]string{"dimension"},
	)

	// Session Metrics
	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sessions_active",
			Help: "Current number of stored sessions",
		},
	)

	SessionOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "session_operations_total",
			Help: "Total number of session store operations",
		},
		[]string{"store", "operation", "result"},
	)

	SessionsExpired = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sessions_expired_total",
			Help: "Total number of sessions removed by cleanup",
		},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordSimilarQuery records a resolver call. outcome is one of
// "ok", "empty", "index_error", "invalid_limit" or "unavailable".
func RecordSimilarQuery(outcome string, results int, duration time.Duration) {
	SimilarQueriesTotal.WithLabelValues(outcome).Inc()
	SimilarQueryDuration.Observe(duration.Seconds())
	if outcome == "ok" || outcome == "empty" {
		SimilarResultSize.Observe(float64(results))
	}
}

// RecordFilterSelection records a dimension being set or cleared.
func RecordFilterSelection(dimension string, set bool) {
	action := "unset"
	if set {
		action = "set"
	}
	FilterSelections.WithLabelValues(dimension, action).Inc()
}

// RecordFilterReset records a selection reset during reconciliation.
func RecordFilterReset(dimension string) {
	FilterResets.WithLabelValues(dimension).Inc()
}

// RecordSessionOperation records a session store call.
func RecordSessionOperation(store, operation string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	SessionOperations.WithLabelValues(store, operation, result).Inc()
}
