// Reelpick - Telegram Movie Recommendation Bot
// Copyright 2026 Reelpick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

// Package bot implements the Telegram gateway: a long-polling update loop
// that turns chat messages into recommendation requests.
//
// The conversation model is deliberately tiny. Any message that is not an
// exact genre name re-presents the genre keyboard; an exact genre name
// triggers a recommendation batch, delivered as one poster photo with a
// Markdown caption per movie. There is no other state.
//
// The genre list is fetched from the catalog lazily on the first update
// and cached for the life of the process.
package bot
