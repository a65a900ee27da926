// Reelpick - Telegram Movie Recommendation Bot
// Copyright 2026 Reelpick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

// Package models defines the core data types shared across Reelpick:
// the TMDB genre taxonomy, catalog movie records, the locally persisted
// SavedMovie form, and recommendation ledger entries.
//
// The JSON field names mirror the TMDB API wire format so that catalog
// responses and the on-disk collections round-trip without translation.
package models
