// Coursefinder - Course Catalog Filtering and Similar Course Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursefinder

package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tomtom215/coursefinder/internal/logging"
)

// Format identifies a catalog encoding.
type Format string

const (
	FormatAuto     Format = ""
	FormatCSV      Format = "csv"
	FormatParquet  Format = "parquet"
	FormatJSON     Format = "json"
	FormatJSONL    Format = "jsonl"
	FormatPostgres Format = "postgres"
)

// ParseFormat validates a configured format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatAuto, FormatCSV, FormatParquet, FormatJSON, FormatJSONL, FormatPostgres:
		return f, nil
	case "ndjson":
		return FormatJSONL, nil
	case "auto":
		return FormatAuto, nil
	default:
		return "", fmt.Errorf("unknown catalog format %q", s)
	}
}

// Source describes where a catalog is read from.
type Source struct {
	// Path is a file path for file formats.
	Path string

	// Format selects the reader. FormatAuto infers it from the Path extension,
	// or selects Postgres when PostgresDSN is set.
	Format Format

	// PostgresDSN, PostgresTable and PostgresOrderBy configure FormatPostgres.
	// Rows are read in PostgresOrderBy order, which must match the row
	// positions the similarity index was computed against.
	PostgresDSN     string
	PostgresTable   string
	PostgresOrderBy string

	// StrictReferences fails the load when a similar course index does not
	// address a row. Otherwise dangling references are logged and left to
	// fail at query time.
	StrictReferences bool

	// DuckDBThreads limits DuckDB worker threads for CSV/Parquet reads. Zero
	// keeps the DuckDB default.
	DuckDBThreads int
}

// String names the source for logs and errors. DSNs are not included.
func (s *Source) String() string {
	if s.resolveFormat() == FormatPostgres {
		return "postgres table " + s.PostgresTable
	}
	return s.Path
}

func (s *Source) resolveFormat() Format {
	if s.Format != FormatAuto {
		return s.Format
	}
	if s.PostgresDSN != "" {
		return FormatPostgres
	}
	switch strings.ToLower(filepath.Ext(s.Path)) {
	case ".csv", ".tsv":
		return FormatCSV
	case ".parquet", ".pq":
		return FormatParquet
	case ".json":
		return FormatJSON
	case ".jsonl", ".ndjson":
		return FormatJSONL
	}
	return FormatAuto
}

// rowSet is the column-oriented result every reader produces.
type rowSet struct {
	headers []string
	rows    [][]any
}

// Load reads the catalog described by src and returns an immutable table.
// Every failure is a *LoadError.
func Load(ctx context.Context, src Source) (*Table, error) { //nolint:gocritic // hugeParam: Source is read once
	name := src.String()
	format := src.resolveFormat()

	if format != FormatPostgres {
		if src.Path == "" {
			return nil, newLoadError(name, "no catalog path configured", nil)
		}
		info, err := os.Stat(src.Path)
		if err != nil {
			return nil, newLoadError(name, "catalog file unavailable", err)
		}
		if info.IsDir() {
			return nil, newLoadError(name, "catalog path is a directory", nil)
		}
	}

	var (
		set *rowSet
		err error
	)
	switch format {
	case FormatCSV:
		set, err = readDuckDB(ctx, &src, "read_csv_auto(%s, header = true, all_varchar = true)")
	case FormatParquet:
		set, err = readDuckDB(ctx, &src, "read_parquet(%s)")
	case FormatJSON:
		set, err = readJSONArray(src.Path)
	case FormatJSONL:
		set, err = readJSONLines(src.Path)
	case FormatPostgres:
		set, err = readPostgres(ctx, &src)
	default:
		return nil, newLoadError(name, "cannot infer catalog format", nil)
	}
	if err != nil {
		return nil, newLoadError(name, "read failed", err)
	}

	table, err := buildTable(set)
	if err != nil {
		return nil, newLoadError(name, "malformed catalog", err)
	}

	if err := checkReferences(table, src.StrictReferences); err != nil {
		return nil, newLoadError(name, "dangling similar course references", err)
	}

	logging.Info().
		Str("source", name).
		Str("format", string(format)).
		Int("rows", table.Len()).
		Msg("Catalog loaded")
	return table, nil
}

// buildTable binds headers and converts every row.
func buildTable(set *rowSet) (*Table, error) {
	binding, err := bindColumns(set.headers)
	if err != nil {
		return nil, err
	}
	records := make([]CourseRecord, 0, len(set.rows))
	for i, row := range set.rows {
		rec, err := binding.buildRecord(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		records = append(records, rec)
	}
	return NewTable(records), nil
}

func checkReferences(table *Table, strict bool) error {
	dangling := table.danglingReferences()
	if len(dangling) == 0 {
		return nil
	}

	rows := make([]int, 0, len(dangling))
	total := 0
	for row, ids := range dangling {
		rows = append(rows, row)
		total += len(ids)
	}
	sort.Ints(rows)

	if strict {
		first := rows[0]
		return fmt.Errorf("%d references in %d rows (row %d references %v)", total, len(rows), first, dangling[first])
	}
	logging.Warn().
		Int("references", total).
		Int("rows", len(rows)).
		Int("first_row", rows[0]).
		Msg("Catalog contains similar course references outside the table")
	return nil
}
