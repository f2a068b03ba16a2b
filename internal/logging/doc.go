// Coursefinder - Course Catalog Filtering and Similar Course Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursefinder

// Package logging provides centralized zerolog-based structured logging.
//
// # Quick Start
//
//	import "github.com/tomtom215/coursefinder/internal/logging"
//
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	logging.Info().Int("rows", n).Msg("Catalog loaded")
//	logging.Error().Err(err).Msg("Session store unavailable")
//
//	// Request-scoped fields (request_id, session_id)
//	logging.Ctx(ctx).Debug().Str("dimension", "college").Msg("Filter set")
//
// # Configuration
//
// Environment Variables (mapped by internal/config):
//
//	LOG_LEVEL   - trace, debug, info, warn, error (default: info)
//	LOG_FORMAT  - json, console (default: json)
//	LOG_CALLER  - include caller file:line (default: false)
//
// # Suture Integration
//
// The supervisor tree logs through sutureslog, which takes an *slog.Logger.
// NewSlogLogger returns one backed by the global zerolog logger so that
// supervisor events share the same output and format.
//
// # Best Practices
//
// Always terminate log chains with .Msg() or .Send():
//
//	logging.Info().Str("key", "value").Msg("message")  // Correct
//	logging.Info().Str("key", "value")                 // WRONG - log not emitted
package logging
