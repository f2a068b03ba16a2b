// Coursefinder - Course Catalog Filtering and Similar Course Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursefinder

package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/tomtom215/coursefinder/internal/logging"
)

// DefaultPostgresTable is read when Source.PostgresTable is empty.
const DefaultPostgresTable = "courses"

// readPostgres reads every row of the configured table through pgx.
func readPostgres(ctx context.Context, src *Source) (*rowSet, error) {
	if src.PostgresDSN == "" {
		return nil, errors.New("postgres DSN not configured")
	}

	query, err := postgresQuery(src)
	if err != nil {
		return nil, err
	}

	conn, err := pgx.Connect(ctx, src.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	defer func() {
		if err := conn.Close(context.Background()); err != nil {
			logging.Debug().Err(err).Msg("Failed to close postgres connection")
		}
	}()

	rows, err := conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query catalog table: %w", err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	set := &rowSet{headers: make([]string, len(fields))}
	for i, fd := range fields {
		set.headers[i] = fd.Name
	}

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("scan row %d: %w", len(set.rows), err)
		}
		set.rows = append(set.rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return set, nil
}

// postgresQuery builds the catalog SELECT with sanitized identifiers.
// A table name may be schema-qualified ("public.courses"). The order column
// is required: without it row positions, and so catalog indices, are not
// stable between loads.
func postgresQuery(src *Source) (string, error) {
	if src.PostgresOrderBy == "" {
		return "", errors.New("postgres order column is required")
	}
	table := src.PostgresTable
	if table == "" {
		table = DefaultPostgresTable
	}
	parts := strings.Split(table, ".")
	for _, p := range parts {
		if p == "" {
			return "", fmt.Errorf("invalid postgres table name %q", table)
		}
	}

	return "SELECT * FROM " + pgx.Identifier(parts).Sanitize() +
		" ORDER BY " + pgx.Identifier{src.PostgresOrderBy}.Sanitize(), nil
}
