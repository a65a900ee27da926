// Reelpick - Telegram Movie Recommendation Bot
// Copyright 2026 Reelpick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/reelpick/reelpick/internal/config"
)

// Collection reports the size of a persisted collection.
type Collection interface {
	Len() int
}

// GenreCache reports how many catalog genres are loaded.
type GenreCache interface {
	GenreCount() int
}

// Router serves the admin HTTP endpoints.
type Router struct {
	cfg    *config.ServerConfig
	movies Collection
	ledger Collection
	genres GenreCache
	logger zerolog.Logger
}

// NewRouter creates the admin router over the given collections.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRouter(cfg *config.ServerConfig, movies, ledger Collection, genres GenreCache, logger zerolog.Logger) *Router {
	return &Router{
		cfg:    cfg,
		movies: movies,
		ledger: ledger,
		genres: genres,
		logger: logger.With().Str("component", "api").Logger(),
	}
}

// Handler builds the chi handler tree.
func (rt *Router) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(rt.cfg.Timeout))

	r.Get("/healthz", rt.handleHealthz)
	r.Get("/readyz", rt.handleReadyz)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/stats", rt.handleStats)
	})

	return r
}
