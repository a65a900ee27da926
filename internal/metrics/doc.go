// Reelpick - Telegram Movie Recommendation Bot
// Copyright 2026 Reelpick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

// Package metrics provides Prometheus instrumentation for Reelpick:
// catalog client traffic, circuit breaker state, recommendation outcomes
// and the sizes of the persisted collections. Metrics are exposed on the
// admin HTTP server at /metrics.
package metrics
