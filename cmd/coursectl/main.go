// Coursefinder - Course Catalog Filtering and Similar Course Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursefinder

// Command coursectl queries a course catalog file from the command line:
// filter options, filtered courses, similar courses and catalog stats.
//
//	coursectl --catalog courses.csv options --college "Arts"
//	coursectl --catalog courses.csv similar 42 --limit 5 --hydrate
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
