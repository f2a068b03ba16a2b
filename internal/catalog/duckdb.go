// Coursefinder - Course Catalog Filtering and Similar Course Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursefinder

package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/coursefinder/internal/logging"
)

// readDuckDB scans a file through a DuckDB table function. tableFunc is a
// format string with a single %s for the quoted file path.
func readDuckDB(ctx context.Context, src *Source, tableFunc string) (*rowSet, error) {
	conn, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb: %w", err)
	}
	defer closeQuietly(conn)

	if src.DuckDBThreads > 0 {
		if _, err := conn.ExecContext(ctx, fmt.Sprintf("SET threads = %d", src.DuckDBThreads)); err != nil {
			return nil, fmt.Errorf("failed to set duckdb threads: %w", err)
		}
	}

	query := "SELECT * FROM " + fmt.Sprintf(tableFunc, quoteLiteral(src.Path))
	rows, err := conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", src.Path, err)
	}
	defer closeQuietly(rows)

	return scanRows(rows)
}

// scanRows drains rows into a rowSet using dynamic scan targets.
func scanRows(rows *sql.Rows) (*rowSet, error) {
	headers, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}

	set := &rowSet{headers: headers}
	for rows.Next() {
		values := make([]any, len(headers))
		targets := make([]any, len(headers))
		for i := range values {
			targets[i] = &values[i]
		}
		if err := rows.Scan(targets...); err != nil {
			return nil, fmt.Errorf("scan row %d: %w", len(set.rows), err)
		}
		set.rows = append(set.rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return set, nil
}

// quoteLiteral renders s as a SQL string literal.
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// closeQuietly closes a resource, logging any error.
func closeQuietly(closer io.Closer) {
	if err := closer.Close(); err != nil {
		logging.Debug().Err(err).Msg("Failed to close catalog reader")
	}
}
