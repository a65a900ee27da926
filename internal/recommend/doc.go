// Reelpick - Telegram Movie Recommendation Bot
// Copyright 2026 Reelpick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

// Package recommend implements the recommendation picker: given a genre
// and a user, it selects a small random batch of stored movies the user
// has not been shown before, topping up the local pool from the catalog
// when it runs low.
//
// Replenishment is dual-threshold: it starts when the eligible pool drops
// below the low-water mark and stops at the high-water mark, an exhausted
// catalog, or the page cap, whichever comes first. Fetched pages are saved
// to the store even when the overall request later fails, so catalog work
// is never thrown away.
//
// Picks are recorded in the ledger before they are returned, and the whole
// pick path is serialized, so two concurrent requests can never hand the
// same movie to the same user.
package recommend
