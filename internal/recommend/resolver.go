// Coursefinder - Course Catalog Filtering and Similar Course Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursefinder

package recommend

import (
	"errors"
	"fmt"

	"github.com/tomtom215/coursefinder/internal/catalog"
)

var (
	// ErrIndex is matched by every *IndexError.
	ErrIndex = errors.New("course index out of range")

	// ErrInvalidLimit is returned for a negative limit.
	ErrInvalidLimit = errors.New("invalid limit")
)

// IndexError reports a catalog index that addresses no row.
type IndexError struct {
	// Index is the offending index.
	Index int

	// Len is the table length at the time of the lookup.
	Len int

	// Referrer is the row whose similar list contains Index, or -1 when
	// Index was the queried row itself.
	Referrer int
}

func (e *IndexError) Error() string {
	if e.Stale() {
		return fmt.Sprintf("row %d references similar course %d outside catalog of %d rows", e.Referrer, e.Index, e.Len)
	}
	return fmt.Sprintf("course index %d outside catalog of %d rows", e.Index, e.Len)
}

// Is matches ErrIndex.
func (e *IndexError) Is(target error) bool {
	return target == ErrIndex
}

// Stale reports whether the error comes from a dangling similarity
// reference rather than from the query itself.
func (e *IndexError) Stale() bool {
	return e.Referrer >= 0
}

// Resolve returns the first limit similar course indices of the row at
// index, in precomputed order. limit == 0 yields an empty slice. The result
// never shares storage with the table.
func Resolve(table *catalog.Table, index, limit int) ([]int, error) {
	if limit < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, limit)
	}
	ids, ok := table.SimilarIDs(index, limit)
	if !ok {
		return nil, &IndexError{Index: index, Len: table.Len(), Referrer: -1}
	}
	return ids, nil
}

// ResolveHydrated is Resolve followed by a lookup of every returned index.
// A returned index that addresses no row fails the whole call with an
// *IndexError naming index as the referrer.
func ResolveHydrated(table *catalog.Table, index, limit int) ([]SimilarCourse, error) {
	ids, err := Resolve(table, index, limit)
	if err != nil {
		return nil, err
	}

	courses := make([]SimilarCourse, 0, len(ids))
	for _, id := range ids {
		rec, ok := table.At(id)
		if !ok {
			return nil, &IndexError{Index: id, Len: table.Len(), Referrer: index}
		}
		courses = append(courses, similarFromRecord(&rec))
	}
	return courses, nil
}
