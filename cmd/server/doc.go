// Coursefinder - Course Catalog Filtering and Similar Course Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursefinder

/*
Package main is the entry point for the Coursefinder server.

Coursefinder loads a course catalog (one row per course section, each row
carrying the row indices of similar sections), presents it as a cascade of
filters over college, campus, department and schedule type, and answers
"similar courses" queries for the selected course.

# Application Architecture

	RootSupervisor ("coursefinder")
	├── SessionSupervisor ("session-layer")
	│   └── Session cleanup (expired session sweep)
	└── APISupervisor ("api-layer")
	    └── HTTP Server (chi router)

Component initialization order:

 1. Configuration: Koanf v2 with defaults, config file and environment
 2. Logging: zerolog, JSON or console
 3. Catalog: loaded once from CSV, Parquet, JSON, JSON Lines or PostgreSQL
 4. Similarity engine and session store (memory or BadgerDB)
 5. Finder facade, HTTP router and server
 6. Supervisor tree

A catalog that cannot be loaded stops the process with "no data available"
before any traffic is accepted.

# Configuration

Configuration is loaded via Koanf v2 with layered sources (highest priority wins):
  - Environment variables (CATALOG_PATH, SESSION_STORE, HTTP_PORT, ...)
  - Config file (config.yaml, or CONFIG_PATH)
  - Built-in defaults

# Example Usage

	export CATALOG_PATH=./data/courses.csv
	./coursefinder

PostgreSQL catalog with persistent sessions:

	export POSTGRES_DSN=postgres://user:pass@db:5432/catalog
	export POSTGRES_TABLE=course_sections
	export POSTGRES_ORDER_BY=row_index
	export SESSION_STORE=badger
	export SESSION_STORE_PATH=/data/sessions
	./coursefinder

# Signal Handling

SIGINT and SIGTERM cancel the root context; the HTTP server drains
in-flight requests within server.shutdown_timeout and the session store is
closed on exit.
*/
package main
