// Reelpick - Telegram Movie Recommendation Bot
// Copyright 2026 Reelpick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

// Package supervisor builds the suture supervision tree that keeps the
// long-running pieces of the bot alive: the Telegram gateway and the
// admin HTTP server run under separate child supervisors, so a crashing
// transport cannot take the operational surface down with it.
package supervisor
