// Coursefinder - Course Catalog Filtering and Similar Course Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursefinder

/*
Package supervisor runs the long-lived Coursefinder services under a
suture v4 supervisor tree.

	coursefinder (root)
	├── session-layer
	│   └── session-cleanup
	└── api-layer
	    └── http-server

Services implement suture.Service (Serve(ctx) error plus String for log
identification). A service that returns an error is restarted with
suture's failure backoff; returning after ctx is canceled ends it.

Supervisor events are logged through sutureslog, which takes a
*slog.Logger. The server passes logging.NewSlogLogger so events land in
the same zerolog output as everything else.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
	    ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	tree.AddSessionService(services.NewSessionCleanupService(store, cfg.Session.CleanupInterval, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logger))
	err = tree.Serve(ctx)

See the services subpackage for the service wrappers.
*/
package supervisor
