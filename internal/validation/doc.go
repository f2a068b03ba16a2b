// Coursefinder - Course Catalog Filtering and Similar Course Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursefinder

// Package validation provides request validation using go-playground/validator v10.
//
// A single validator instance is built once and shared. Fields are reported
// by their `query` or `json` tag name so error messages name the parameter
// the client actually sent.
//
// Custom tags:
//   - dimension: a filter dimension name in any spelling filter.ParseDimension accepts
//   - session_id: a canonical UUID string
//
// Example:
//
//	type similarQuery struct {
//	    Limit int `query:"limit" validate:"gte=0,lte=20"`
//	}
//
//	if verr := validation.ValidateStruct(&q); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    // apiErr.Code == validation.ErrorCode
//	}
package validation
