// Coursefinder - Course Catalog Filtering and Similar Course Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursefinder

package api

// Request structs validated with go-playground/validator before they reach
// the finder. Field names in error messages come from the query or json tag.

// FilterQuery is the ad-hoc filter state of /options and /courses.
// Empty fields are unset dimensions.
type FilterQuery struct {
	College      string `query:"college" validate:"omitempty,max=256"`
	Campus       string `query:"campus" validate:"omitempty,max=256"`
	Department   string `query:"department" validate:"omitempty,max=256"`
	ScheduleType string `query:"schedule_type" validate:"omitempty,max=256"`
}

// SimilarRequest holds the query parameters of /sections/{index}/similar.
// A missing Limit selects the configured default and 0 yields no results;
// values above the maximum are clamped by the engine.
type SimilarRequest struct {
	Index   int  `query:"index"`
	Limit   *int `query:"limit" validate:"omitempty,min=0"`
	Hydrate bool `query:"hydrate"`
}

// SessionPath identifies a session from the URL.
type SessionPath struct {
	SessionID string `query:"session_id" validate:"required,session_id"`
}

// DimensionPath identifies a filter dimension from the URL.
type DimensionPath struct {
	Dimension string `query:"dimension" validate:"required,dimension"`
}

// SetFilterBody is the body of PUT .../filters/{dimension}. An empty value
// clears the dimension.
type SetFilterBody struct {
	Value *string `json:"value" validate:"required,max=256"`
}

// SelectCourseBody is the body of PUT .../course. A null course_id returns
// to the default (first listed) course.
type SelectCourseBody struct {
	CourseID *int `json:"course_id" validate:"omitempty,min=0"`
}

// PreferencesBody is the body of PUT .../preferences. Omitted fields keep
// their current value.
type PreferencesBody struct {
	Limit   *int  `json:"limit" validate:"omitempty,min=1"`
	Hydrate *bool `json:"hydrate"`
}
