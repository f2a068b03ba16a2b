// Coursefinder - Course Catalog Filtering and Similar Course Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursefinder

package recommend

import (
	"time"

	"github.com/tomtom215/coursefinder/internal/catalog"
)

// SimilarCourse is a hydrated similar course: the display fields of the
// section row a similarity index points at.
type SimilarCourse struct {
	Index          int    `json:"index"`
	Title          string `json:"title"`
	CRN            string `json:"crn"`
	Section        string `json:"section"`
	College        string `json:"college"`
	Campus         string `json:"campus"`
	Department     string `json:"department"`
	ScheduleType   string `json:"schedule_type"`
	Term           string `json:"term"`
	PrimaryFaculty string `json:"primary_faculty"`
	Description    string `json:"description"`
}

func similarFromRecord(r *catalog.CourseRecord) SimilarCourse {
	return SimilarCourse{
		Index:          r.Index,
		Title:          r.Title,
		CRN:            r.CRN,
		Section:        r.Section,
		College:        r.College,
		Campus:         r.Campus,
		Department:     r.Department,
		ScheduleType:   r.ScheduleType,
		Term:           r.Term,
		PrimaryFaculty: r.PrimaryFaculty,
		Description:    r.Description,
	}
}

// Request is a similar-course lookup.
type Request struct {
	// Index is the catalog row whose similar list is resolved.
	Index int `json:"index"`

	// Limit caps the number of results. Nil means Config.DefaultLimit, zero
	// yields an empty list and values above Config.MaxLimit are clamped.
	Limit *int `json:"limit,omitempty"`

	// Hydrate returns full course records instead of bare indices.
	Hydrate bool `json:"hydrate"`

	// RequestID is used for tracing. Generated when empty.
	RequestID string `json:"request_id,omitempty"`
}

// Limit returns a pointer for Request.Limit.
func Limit(n int) *int {
	return &n
}

// Response is the result of a similar-course lookup.
type Response struct {
	// Index echoes the queried catalog row.
	Index int `json:"index"`

	// IDs are the similar course indices in precomputed order.
	IDs []int `json:"similar_course_ids"`

	// Courses is populated only for hydrated requests, parallel to IDs.
	Courses []SimilarCourse `json:"courses,omitempty"`

	Metadata ResponseMetadata `json:"metadata"`
}

// ResponseMetadata describes how a response was produced.
type ResponseMetadata struct {
	RequestID string    `json:"request_id"`
	Limit     int       `json:"limit"`
	Hydrated  bool      `json:"hydrated"`
	LatencyMS int64     `json:"latency_ms"`
	Timestamp time.Time `json:"timestamp"`
}

// Metrics contains engine counters for observability.
type Metrics struct {
	// RequestCount is the total number of lookups.
	RequestCount int64 `json:"request_count"`

	// EmptyCount is the number of lookups that returned no courses.
	EmptyCount int64 `json:"empty_count"`

	// IndexErrorCount counts out-of-range queries and stale references.
	IndexErrorCount int64 `json:"index_error_count"`

	// ErrorCount is the total number of failed lookups.
	ErrorCount int64 `json:"error_count"`
}
