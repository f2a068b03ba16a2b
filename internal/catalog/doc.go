// Coursefinder - Course Catalog Filtering and Similar Course Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursefinder

// Package catalog loads and holds the immutable course table.
//
// A catalog is one row per scheduled section. Every row carries a stable,
// zero-based identity index equal to its position in the loaded table and an
// ordered list of similar course indices computed upstream. The index is the
// only stable cross-reference key: titles repeat across sections.
//
// # Sources
//
// Tables can be loaded from:
//   - CSV and Parquet files, read through an in-process DuckDB connection
//   - JSON arrays and newline-delimited JSON
//   - a PostgreSQL table, read through pgx
//
// Header names are matched ignoring case, spaces, underscores and hyphens, so
// "Course Title", "course_title" and "title" all bind to the title column.
//
// # Usage
//
//	h := catalog.NewHandle(catalog.Source{Path: "courses.parquet"})
//	table, err := h.Table(ctx)
//	if err != nil {
//	    // *catalog.LoadError: no data available
//	}
//	rec, ok := table.At(42)
//
// A loaded Table exposes no mutation. Callers receive copies, so the table can
// be shared by any number of goroutines.
package catalog
