// Reelpick - Telegram Movie Recommendation Bot
// Copyright 2026 Reelpick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

// Package logging provides the zerolog-based global logger for Reelpick.
//
// Initialize once from main with the loaded configuration:
//
//	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
//
// then log anywhere via the package-level helpers:
//
//	logging.Info().Int("count", n).Msg("movies loaded")
//	logging.Err(err).Str("path", path).Msg("persist failed")
//
// The package also ships an slog.Handler adapter so libraries that speak
// log/slog (the suture supervision tree via sutureslog) emit through the
// same zerolog backend.
package logging
