// Coursefinder - Course Catalog Filtering and Similar Course Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursefinder

// Package recommend resolves precomputed similar course lists.
//
// Similarity is computed offline and shipped with the catalog: every section
// row carries an ordered list of catalog indices, most similar first. This
// package never scores or re-sorts anything. It looks the list up, truncates
// it to the requested limit and optionally hydrates each index into the
// referenced section's display fields.
//
// # Resolver
//
// Resolve and ResolveHydrated are pure functions over a loaded table:
//
//	ids, err := recommend.Resolve(table, 42, 5)
//	courses, err := recommend.ResolveHydrated(table, 42, 5)
//
// An index outside the table yields an *IndexError. When hydrating, an id
// in the list that addresses no row is also an *IndexError, with Referrer
// set to the queried row; both match ErrIndex under errors.Is.
//
// # Engine
//
// Engine wraps the resolver for the API and CLI. It applies the configured
// default and maximum limit, tags each call with a request ID, logs through
// zerolog and records Prometheus metrics.
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), handle, logger)
//	resp, err := engine.Similar(ctx, recommend.Request{Index: 42, Hydrate: true})
//
// # Thread Safety
//
// Both the resolver and Engine are safe for concurrent use. The table is
// read-only after load and every result is a fresh slice.
package recommend
