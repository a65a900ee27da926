// Reelpick - Telegram Movie Recommendation Bot
// Copyright 2026 Reelpick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

// Package tmdb implements the TMDB (The Movie Database) catalog client.
//
// The client exposes the two read operations the bot needs: the genre list
// and quality-filtered movie discovery by genre. Discovery merges the
// summary listing with a per-movie detail lookup (for runtime), fetched
// concurrently; a page is all-or-nothing - if any detail lookup fails the
// whole page fails and nothing from it is returned.
//
// A client-side rate limiter keeps request bursts under TMDB's cap, and
// CircuitBreakerClient wraps the client so a flapping upstream is cut off
// instead of hammered.
package tmdb
