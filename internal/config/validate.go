// Reelpick - Telegram Movie Recommendation Bot
// Copyright 2026 Reelpick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the configuration for missing secrets, malformed URLs
// and inconsistent thresholds. Struct tags cover the per-field rules;
// cross-field checks that tags cannot express live here.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return fmt.Errorf("invalid configuration: %w", friendlyError(verrs))
		}
		return err
	}

	// The replenishment loop must be able to overshoot the low-water mark,
	// otherwise a single page of non-matching results wedges every request
	// at max pages.
	if c.Recommend.HighWater < c.Recommend.LowWater {
		return fmt.Errorf("recommend.high_water (%d) must be >= recommend.low_water (%d)",
			c.Recommend.HighWater, c.Recommend.LowWater)
	}

	if c.Store.MoviesPath == c.Store.LedgerPath {
		return fmt.Errorf("store.movies_path and store.ledger_path must differ (both %q)", c.Store.MoviesPath)
	}

	return nil
}

// friendlyError converts validator's field errors into messages that name
// the offending environment variable rather than the Go struct path.
func friendlyError(verrs validator.ValidationErrors) error {
	for _, fe := range verrs {
		switch fe.Namespace() {
		case "Config.Telegram.BotToken":
			return errors.New("TELEGRAM_BOT_TOKEN is required")
		case "Config.TMDB.APIKey":
			return errors.New("TMDB_API_KEY is required")
		default:
			return fmt.Errorf("%s failed %q validation", fe.Namespace(), fe.Tag())
		}
	}
	return errors.New("unknown validation failure")
}
