// Coursefinder - Course Catalog Filtering and Similar Course Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursefinder

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered on the default registry through promauto when the
package is initialized.

# Metrics Endpoint

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8080/metrics

# Available Metrics

HTTP Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: Requests in flight (gauge)
  - api_rate_limit_hits_total: Rate limit rejections (counter)

Catalog Metrics:
  - catalog_rows, catalog_grouped_courses (gauges)
  - catalog_load_duration_seconds (histogram)
  - catalog_load_errors_total (counter)

Query Metrics:
  - similar_course_queries_total: Resolver calls by outcome (counter)
  - similar_course_query_duration_seconds (histogram)
  - similar_course_result_size (histogram)
  - filter_selections_total, filter_resets_total (counters)

Session Metrics:
  - sessions_active (gauge)
  - session_operations_total: Labels store, operation, result (counter)
  - sessions_expired_total (counter)

# Usage

	start := time.Now()
	ids, err := recommend.Resolve(table, index, limit)
	metrics.RecordSimilarQuery("ok", len(ids), time.Since(start))

# Thread Safety

All metric operations are safe for concurrent use.
*/
package metrics
