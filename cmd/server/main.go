// Coursefinder - Course Catalog Filtering and Similar Course Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursefinder

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/coursefinder/internal/api"
	"github.com/tomtom215/coursefinder/internal/catalog"
	"github.com/tomtom215/coursefinder/internal/config"
	"github.com/tomtom215/coursefinder/internal/finder"
	"github.com/tomtom215/coursefinder/internal/logging"
	"github.com/tomtom215/coursefinder/internal/recommend"
	"github.com/tomtom215/coursefinder/internal/session"
	"github.com/tomtom215/coursefinder/internal/supervisor"
	"github.com/tomtom215/coursefinder/internal/supervisor/services"
)

// catalogLoadTimeout bounds the eager load at startup.
const catalogLoadTimeout = 2 * time.Minute

func main() {
	os.Exit(run())
}

// run wires the server and blocks until shutdown. It returns the exit code
// so deferred cleanup runs before os.Exit.
//
//nolint:gocyclo // sequential setup steps
func run() int {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Error().Err(err).Msg("Failed to load configuration")
		return 1
	}
	logging.Init(cfg.LogConfig())

	logging.Info().Msg("Starting Coursefinder with supervisor tree")

	src, err := cfg.CatalogSource()
	if err != nil {
		logging.Error().Err(err).Msg("Invalid catalog configuration")
		return 1
	}
	logging.Info().
		Str("catalog", src.String()).
		Str("session_store", cfg.Session.Store).
		Str("addr", cfg.Addr()).
		Msg("Configuration loaded")
	if cfg.HasWildcardCORS() {
		logging.Warn().Msg("CORS allows any origin")
	}

	// The catalog is loaded once, eagerly, so a missing or malformed file
	// stops the process before it accepts traffic.
	handle := catalog.NewHandle(src)
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), catalogLoadTimeout)
	table, err := handle.Table(loadCtx)
	cancelLoad()
	if err != nil {
		if errors.Is(err, catalog.ErrLoad) {
			logging.Error().Err(err).Msg("no data available")
		} else {
			logging.Error().Err(err).Msg("Failed to load catalog")
		}
		return 1
	}
	logging.Info().Int("rows", table.Len()).Msg("Catalog loaded")

	engine, err := recommend.NewEngine(cfg.EngineConfig(), handle, logging.WithComponent("recommend"))
	if err != nil {
		logging.Error().Err(err).Msg("Failed to create similarity engine")
		return 1
	}

	storeType, err := cfg.SessionStoreType()
	if err != nil {
		logging.Error().Err(err).Msg("Invalid session store")
		return 1
	}
	factory, err := session.NewFactory(storeType, cfg.Session.Path, cfg.Session.MaxSessions)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to open session store")
		return 1
	}
	defer func() {
		if err := factory.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing session store")
		}
	}()
	store := factory.CreateStore()
	logging.Info().Str("store", string(factory.Type())).Msg("Session store ready")

	f, err := finder.New(handle, engine, store, finder.Config{
		SessionTTL:     cfg.Session.TTL,
		HydrateDefault: cfg.Similar.HydrateDefault,
	}, logging.Logger())
	if err != nil {
		logging.Error().Err(err).Msg("Failed to create finder")
		return 1
	}

	router := api.NewRouter(
		api.NewHandler(f, handle),
		api.NewChiMiddlewareConfig(
			cfg.Security.CORSOrigins,
			cfg.Security.RateLimitReqs,
			cfg.Security.RateLimitWindow,
			cfg.Security.RateLimitDisabled,
		),
	)

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Error().Err(err).Msg("Failed to create supervisor tree")
		return 1
	}

	tree.AddSessionService(services.NewSessionCleanupService(store, cfg.Session.CleanupInterval, logging.Logger()))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logging.Logger()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	// The channel carries exactly one result from the root supervisor.
	var serveErr error
	select {
	case <-ctx.Done():
		logging.Info().Msg("Received shutdown signal, waiting for supervisor to finish...")
		serveErr = <-errCh
	case serveErr = <-errCh:
	}
	if serveErr != nil && !errors.Is(serveErr, context.Canceled) {
		logging.Error().Err(serveErr).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
	return 0
}
