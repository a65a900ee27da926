// Reelpick - Telegram Movie Recommendation Bot
// Copyright 2026 Reelpick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

// Package services wraps components that do not natively speak suture's
// context-aware Serve pattern so they can run under the supervision tree.
package services
