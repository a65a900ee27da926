// Reelpick - Telegram Movie Recommendation Bot
// Copyright 2026 Reelpick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

// Package config loads and validates Reelpick configuration.
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins):
//
//  1. Built-in defaults
//  2. Optional YAML config file (config.yaml, or CONFIG_PATH)
//  3. Environment variables
//
// The two required secrets are supplied via environment:
//
//	TELEGRAM_BOT_TOKEN  Telegram bot credential from @BotFather
//	TMDB_API_KEY        TMDB API key
//
// Everything else has a sensible default. See Config for the full set of
// environment variable mappings.
package config
