// Coursefinder - Course Catalog Filtering and Similar Course Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursefinder

/*
Package api provides the HTTP presentation layer for Coursefinder.

It serves the course finder as a JSON API on a Chi router. Every response
uses the same envelope:

	{
	  "success": true,
	  "data": { ... },
	  "error": {"code": "NOT_FOUND", "message": "...", "request_id": "..."},
	  "meta": {"request_id": "...", "timestamp": "...", "duration_ms": 1}
	}

# Endpoints

Stateless queries:

	GET  /api/v1/health/live
	GET  /api/v1/health/ready
	GET  /api/v1/catalog
	GET  /api/v1/options?college=&campus=&department=&schedule_type=
	GET  /api/v1/courses?college=&campus=&department=&schedule_type=
	GET  /api/v1/courses/{courseID}
	GET  /api/v1/sections/{index}/similar?limit=&hydrate=

Sessions hold a filter state, a picked course and display preferences:

	POST   /api/v1/sessions
	GET    /api/v1/sessions/{sessionID}
	DELETE /api/v1/sessions/{sessionID}
	PUT    /api/v1/sessions/{sessionID}/filters/{dimension}   {"value": "..."}
	DELETE /api/v1/sessions/{sessionID}/filters/{dimension}
	PUT    /api/v1/sessions/{sessionID}/course                {"course_id": 3}
	PUT    /api/v1/sessions/{sessionID}/preferences           {"limit": 5, "hydrate": true}

Prometheus metrics are served at /metrics.

# Errors

Domain errors map to status codes in one place (writeDomainError):

  - unknown course, section index or session: 404
  - a similar-course reference outside the catalog: 500 CORRUPT_SIMILARITY_INDEX
  - catalog not loadable: 503
  - invalid parameters: 400 VALIDATION_FAILED or BAD_REQUEST
  - picking a course the filters exclude: 409 CONFLICT

A filter change that invalidates older selections is not an error; the
cleared dimensions are listed in the session view's "reset" field.
*/
package api
