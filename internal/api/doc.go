// Reelpick - Telegram Movie Recommendation Bot
// Copyright 2026 Reelpick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

// Package api serves the admin HTTP surface: liveness and readiness
// probes, Prometheus metrics, and a small stats endpoint reporting the
// sizes of the persisted collections.
//
// This surface is operational only; recommendations flow exclusively
// through the Telegram gateway.
package api
