// Reelpick - Telegram Movie Recommendation Bot
// Copyright 2026 Reelpick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Catalog client metrics
	CatalogRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tmdb_requests_total",
			Help: "Total number of TMDB API requests",
		},
		[]string{"endpoint", "status"}, // endpoint: "genres", "discover", "detail"; status: "success", "failure"
	)

	CatalogRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tmdb_request_duration_seconds",
			Help:    "TMDB API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	CatalogPagesFetched = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tmdb_pages_fetched_total",
			Help: "Total number of discovery pages fetched during replenishment",
		},
	)

	// Circuit breaker metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through the circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	// Recommendation metrics
	RecommendationsServed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendations_served_total",
			Help: "Total number of movies recommended to users",
		},
	)

	RecommendationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_requests_total",
			Help: "Total number of recommendation requests",
		},
		[]string{"outcome"}, // "served", "empty", "error"
	)

	ReplenishmentPages = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "replenishment_pages_per_request",
			Help:    "Catalog pages fetched per recommendation request",
			Buckets: []float64{0, 1, 2, 3, 4, 5},
		},
	)

	// Persisted collection sizes
	StoredMovies = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "stored_movies",
			Help: "Current number of movies in the local store",
		},
	)

	LedgerEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ledger_entries",
			Help: "Current number of recommendation ledger entries",
		},
	)

	PersistFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "persist_failures_total",
			Help: "Total number of failed writes to the persisted collections",
		},
		[]string{"collection"}, // "movies", "ledger"
	)

	// Bot gateway metrics
	BotUpdatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_updates_total",
			Help: "Total number of Telegram updates processed",
		},
		[]string{"kind"}, // "genre_selection", "menu", "ignored"
	)

	BotSendFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bot_send_failures_total",
			Help: "Total number of failed Telegram sends",
		},
	)
)
