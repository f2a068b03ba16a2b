// Coursefinder - Course Catalog Filtering and Similar Course Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursefinder

package catalog

import "slices"

// CourseRecord is one scheduled section of a course.
type CourseRecord struct {
	Index            int    `json:"index"`
	Title            string `json:"title"`
	Description      string `json:"description"`
	College          string `json:"college"`
	Campus           string `json:"campus"`
	Department       string `json:"department"`
	ScheduleType     string `json:"schedule_type"`
	Term             string `json:"term"`
	CRN              string `json:"crn"`
	Section          string `json:"section"`
	PrimaryFaculty   string `json:"primary_faculty"`
	SimilarCourseIDs []int  `json:"similar_course_ids"`
}

// clone returns a deep copy of the record.
func (r CourseRecord) clone() CourseRecord { //nolint:gocritic // hugeParam: value copy is the point
	r.SimilarCourseIDs = slices.Clone(r.SimilarCourseIDs)
	return r
}

// Table is an immutable, ordered sequence of course records.
// Record i always has Index i.
type Table struct {
	records []CourseRecord
}

// NewTable builds a table from records, assigning each its row position as
// identity index. The input slice is copied.
func NewTable(records []CourseRecord) *Table {
	t := &Table{records: make([]CourseRecord, len(records))}
	for i := range records {
		rec := records[i].clone()
		rec.Index = i
		t.records[i] = rec
	}
	return t
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.records)
}

// Contains reports whether index addresses a row of the table.
func (t *Table) Contains(index int) bool {
	return index >= 0 && index < t.Len()
}

// At returns a copy of the record at index.
func (t *Table) At(index int) (CourseRecord, bool) {
	if !t.Contains(index) {
		return CourseRecord{}, false
	}
	return t.records[index].clone(), true
}

// SimilarIDs returns a copy of the first limit similar course indices of the
// record at index. A negative limit returns the full list.
func (t *Table) SimilarIDs(index, limit int) ([]int, bool) {
	if !t.Contains(index) {
		return nil, false
	}
	ids := t.records[index].SimilarCourseIDs
	if limit >= 0 && limit < len(ids) {
		ids = ids[:limit]
	}
	out := make([]int, len(ids))
	copy(out, ids)
	return out, true
}

// Each calls fn with a copy of every record in table order until fn returns false.
func (t *Table) Each(fn func(CourseRecord) bool) {
	for i := 0; i < t.Len(); i++ {
		if !fn(t.records[i].clone()) {
			return
		}
	}
}

// danglingReferences returns, per referring row, the similar course indices
// that do not address a row of the table.
func (t *Table) danglingReferences() map[int][]int {
	dangling := make(map[int][]int)
	for i := range t.records {
		for _, id := range t.records[i].SimilarCourseIDs {
			if !t.Contains(id) {
				dangling[i] = append(dangling[i], id)
			}
		}
	}
	return dangling
}
