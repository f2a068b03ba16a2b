// Coursefinder - Course Catalog Filtering and Similar Course Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursefinder

/*
Package cache provides a thread-safe, generic LRU cache with expiry.

It backs the in-memory session store, where capacity bounds memory use and
per-entry expiry implements the session TTL, and the finder's option cache.

# Usage Example

	sessions := cache.NewLRU[*Session](10000, 24*time.Hour)
	sessions.AddWithExpiry(s.ID, s, s.ExpiresAt)

	if s, ok := sessions.Get(id); ok {
	    // use s
	}

	removed := sessions.CleanupExpired()

# Thread Safety

All methods are safe for concurrent use. Values are stored as given: callers
that mutate stored values must copy them first.
*/
package cache
