// Coursefinder - Course Catalog Filtering and Similar Course Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursefinder

package filter

import (
	"fmt"
	"strings"

	"github.com/tomtom215/coursefinder/internal/courseview"
)

// Dimension is a categorical attribute the catalog can be narrowed by.
type Dimension string

const (
	College      Dimension = "college"
	Campus       Dimension = "campus"
	Department   Dimension = "department"
	ScheduleType Dimension = "schedule_type"
)

// Dimensions is the fixed evaluation order of every filter dimension.
var Dimensions = [...]Dimension{College, Campus, Department, ScheduleType}

// Label returns the display name of the dimension.
func (d Dimension) Label() string {
	switch d {
	case College:
		return "College"
	case Campus:
		return "Campus"
	case Department:
		return "Department"
	case ScheduleType:
		return "Schedule Type"
	default:
		return string(d)
	}
}

// Valid reports whether d is one of Dimensions.
func (d Dimension) Valid() bool {
	switch d {
	case College, Campus, Department, ScheduleType:
		return true
	}
	return false
}

// ParseDimension resolves external input ("college", "Schedule Type",
// "schedule-type") to a Dimension.
func ParseDimension(s string) (Dimension, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer(" ", "_", "-", "_").Replace(norm)
	if d := Dimension(norm); d.Valid() {
		return d, nil
	}
	return "", fmt.Errorf("unknown filter dimension %q", s)
}

// valueOf returns the value of dimension d for course g.
// An unknown dimension is a programming error and panics.
func valueOf(g *courseview.GroupedCourse, d Dimension) string {
	switch d {
	case College:
		return g.College
	case Campus:
		return g.Campus
	case Department:
		return g.Department
	case ScheduleType:
		return g.ScheduleType
	default:
		panic(fmt.Sprintf("filter: unknown dimension %q", string(d)))
	}
}

// mustValid panics when d is not a known dimension.
func mustValid(d Dimension) {
	if !d.Valid() {
		panic(fmt.Sprintf("filter: unknown dimension %q", string(d)))
	}
}
