// Coursefinder - Course Catalog Filtering and Similar Course Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursefinder

// Package courseview groups per-section catalog rows into distinct courses.
//
// Sections that share the identity tuple (Title, Term, College, Campus,
// Department, Description, ScheduleType) collapse into one GroupedCourse whose
// remaining fields are collected, in first-seen order, into per-field
// sequences. The grouped view drives filter enumeration and the course detail
// panel. Similarity lookups never use it: similar course indices address
// catalog rows.
package courseview

import (
	"slices"

	"github.com/tomtom215/coursefinder/internal/catalog"
)

// Key is the identity tuple of a grouped course.
type Key struct {
	Title        string `json:"title"`
	Term         string `json:"term"`
	College      string `json:"college"`
	Campus       string `json:"campus"`
	Department   string `json:"department"`
	Description  string `json:"description"`
	ScheduleType string `json:"schedule_type"`
}

// KeyOf returns the identity tuple of a catalog row.
func KeyOf(r *catalog.CourseRecord) Key {
	return Key{
		Title:        r.Title,
		Term:         r.Term,
		College:      r.College,
		Campus:       r.Campus,
		Department:   r.Department,
		Description:  r.Description,
		ScheduleType: r.ScheduleType,
	}
}

// GroupedCourse is one distinct course with its sections aggregated.
// Aggregated slices hold one entry per member row, in table order.
type GroupedCourse struct {
	// ID is the position of this course in the grouped view.
	ID int `json:"id"`
	Key

	CRNs             []string `json:"crns"`
	Sections         []string `json:"sections"`
	PrimaryFaculty   []string `json:"primary_faculty"`
	Indices          []int    `json:"indices"`
	SimilarCourseIDs [][]int  `json:"similar_course_ids"`
}

// FirstIndex returns the catalog index of the first section of the course.
// It is the index resolved when the course is selected.
func (g *GroupedCourse) FirstIndex() int {
	return g.Indices[0]
}

// Clone returns a deep copy.
func (g *GroupedCourse) Clone() GroupedCourse {
	c := *g
	c.CRNs = slices.Clone(g.CRNs)
	c.Sections = slices.Clone(g.Sections)
	c.PrimaryFaculty = slices.Clone(g.PrimaryFaculty)
	c.Indices = slices.Clone(g.Indices)
	c.SimilarCourseIDs = make([][]int, len(g.SimilarCourseIDs))
	for i, ids := range g.SimilarCourseIDs {
		c.SimilarCourseIDs[i] = slices.Clone(ids)
	}
	return c
}

// Group partitions table rows by identity tuple. Courses are emitted in the
// order their tuple first appears. An empty table yields an empty view.
func Group(table *catalog.Table) []GroupedCourse {
	view := make([]GroupedCourse, 0)
	positions := make(map[Key]int)

	table.Each(func(r catalog.CourseRecord) bool {
		key := KeyOf(&r)
		pos, seen := positions[key]
		if !seen {
			pos = len(view)
			positions[key] = pos
			view = append(view, GroupedCourse{ID: pos, Key: key})
		}

		g := &view[pos]
		g.CRNs = append(g.CRNs, r.CRN)
		g.Sections = append(g.Sections, r.Section)
		g.PrimaryFaculty = append(g.PrimaryFaculty, r.PrimaryFaculty)
		g.Indices = append(g.Indices, r.Index)
		g.SimilarCourseIDs = append(g.SimilarCourseIDs, r.SimilarCourseIDs)
		return true
	})
	return view
}

// Find returns the grouped course with the given ID.
func Find(view []GroupedCourse, id int) (GroupedCourse, bool) {
	if id < 0 || id >= len(view) {
		return GroupedCourse{}, false
	}
	return view[id].Clone(), true
}

// SectionCount returns the total number of rows aggregated in view.
func SectionCount(view []GroupedCourse) int {
	n := 0
	for i := range view {
		n += len(view[i].Indices)
	}
	return n
}
