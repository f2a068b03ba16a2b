// Coursefinder - Course Catalog Filtering and Similar Course Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursefinder

//go:build integration

// Package testinfra provides container-backed test infrastructure for
// integration tests, built on testcontainers-go.
//
// # PostgreSQL Container
//
// PostgresContainer runs a real PostgreSQL server for the catalog's
// Postgres reader:
//
//	func TestLoad_Postgres(t *testing.T) {
//	    testinfra.SkipIfNoDocker(t)
//	    ctx := context.Background()
//	    pg, err := testinfra.NewPostgresContainer(ctx,
//	        testinfra.WithInitSQL(createTable, insertRows),
//	    )
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    defer testinfra.CleanupContainer(ctx, t, pg.Container)
//
//	    table, err := catalog.Load(ctx, catalog.Source{PostgresDSN: pg.DSN})
//	    // ...
//	}
//
// # CI Considerations
//
// Every file carries the integration build tag:
//
//	go test -tags integration ./...
//
// Tests are skipped when Docker is unavailable. The first run pulls the
// postgres image.
package testinfra
