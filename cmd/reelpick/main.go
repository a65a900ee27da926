// Reelpick - Telegram Movie Recommendation Bot
// Copyright 2026 Reelpick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

// Command reelpick runs the movie recommendation bot: a Telegram gateway,
// the TMDB catalog client behind a circuit breaker, the JSON-persisted
// movie store and recommendation ledger, and the admin HTTP server, all
// under a suture supervision tree.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/reelpick/reelpick/internal/api"
	"github.com/reelpick/reelpick/internal/bot"
	"github.com/reelpick/reelpick/internal/config"
	"github.com/reelpick/reelpick/internal/logging"
	"github.com/reelpick/reelpick/internal/recommend"
	"github.com/reelpick/reelpick/internal/store"
	"github.com/reelpick/reelpick/internal/supervisor"
	"github.com/reelpick/reelpick/internal/supervisor/services"
	"github.com/reelpick/reelpick/internal/tmdb"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Config errors are reported through the default logger; the
		// configured one is not available yet.
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	logger := logging.Logger()

	logging.Info().
		Str("movies_path", cfg.Store.MoviesPath).
		Str("ledger_path", cfg.Store.LedgerPath).
		Str("language", cfg.TMDB.Language).
		Msg("Starting Reelpick")

	// Durable state
	movies := store.NewMovieStore(cfg.Store.MoviesPath, logger)
	if err := movies.Load(); err != nil {
		logging.Fatal().Err(err).Msg("Failed to load movie store")
	}
	ledger := store.NewLedger(cfg.Store.LedgerPath, logger)
	if err := ledger.Load(); err != nil {
		logging.Fatal().Err(err).Msg("Failed to load recommendation ledger")
	}
	logging.Info().Int("movies", movies.Len()).Msg("Movie store loaded")
	logging.Info().Int("recommendations", ledger.Len()).Msg("Recommendation ledger loaded")

	// Catalog client behind a circuit breaker
	catalog := tmdb.NewCircuitBreakerClient(tmdb.NewClient(&cfg.TMDB, logger))

	picker := recommend.NewPicker(&cfg.Recommend, movies, ledger, catalog, logger)

	gateway, err := bot.NewGateway(&cfg.Telegram, cfg.TMDB.ImageBaseURL, cfg.Recommend.BatchSize, picker, catalog, logger)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to connect to Telegram")
	}

	// Supervision tree
	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddTransportService(gateway)

	if cfg.Server.Enabled {
		router := api.NewRouter(&cfg.Server, movies, ledger, gateway, logger)
		server := &http.Server{
			Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler:           router.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}
		tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
		logging.Info().Str("addr", server.Addr).Msg("Admin HTTP server enabled")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree")
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
		os.Exit(1)
	}

	logging.Info().Msg("Application stopped gracefully")
}
