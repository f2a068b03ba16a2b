// Coursefinder - Course Catalog Filtering and Similar Course Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursefinder

package catalog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/goccy/go-json"
)

// readJSONArray reads a file holding one JSON array of row objects.
func readJSONArray(path string) (*rowSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer closeQuietly(f)

	dec := json.NewDecoder(bufio.NewReader(f))
	dec.UseNumber()

	var objects []map[string]any
	if err := dec.Decode(&objects); err != nil {
		return nil, fmt.Errorf("decode json array: %w", err)
	}
	return objectsToRows(objects), nil
}

// readJSONLines reads newline-delimited JSON, one row object per line.
func readJSONLines(path string) (*rowSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer closeQuietly(f)

	dec := json.NewDecoder(bufio.NewReader(f))
	dec.UseNumber()

	var objects []map[string]any
	for {
		var obj map[string]any
		err := dec.Decode(&obj)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode json line %d: %w", len(objects)+1, err)
		}
		objects = append(objects, obj)
	}
	return objectsToRows(objects), nil
}

// objectsToRows flattens row objects into a rowSet. Headers are the union of
// keys, ordered by first object and then by name; absent keys become nil
// cells.
func objectsToRows(objects []map[string]any) *rowSet {
	set := &rowSet{rows: make([][]any, 0, len(objects))}
	positions := make(map[string]int)

	for _, obj := range objects {
		keys := make([]string, 0, len(obj))
		for key := range obj {
			if _, ok := positions[key]; !ok {
				keys = append(keys, key)
			}
		}
		sort.Strings(keys)
		for _, key := range keys {
			positions[key] = len(set.headers)
			set.headers = append(set.headers, key)
		}
	}

	for _, obj := range objects {
		row := make([]any, len(set.headers))
		for key, value := range obj {
			row[positions[key]] = value
		}
		set.rows = append(set.rows, row)
	}
	return set
}
