// Reelpick - Telegram Movie Recommendation Bot
// Copyright 2026 Reelpick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

package config

import "time"

// Config holds all application configuration loaded from environment
// variables and an optional config file.
//
// Thread safety: Config is immutable after Load() and safe for concurrent
// read access from multiple goroutines.
type Config struct {
	Telegram  TelegramConfig  `koanf:"telegram"`
	TMDB      TMDBConfig      `koanf:"tmdb"`
	Store     StoreConfig     `koanf:"store"`
	Recommend RecommendConfig `koanf:"recommend"`
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// TelegramConfig holds the chat transport settings.
//
// Environment Variables:
//   - TELEGRAM_BOT_TOKEN: bot credential from @BotFather (required)
//   - TELEGRAM_POLL_TIMEOUT: long-poll timeout for GetUpdates (default: 30s)
//   - TELEGRAM_DEBUG: enable verbose Bot API logging (default: false)
type TelegramConfig struct {
	BotToken    string        `koanf:"bot_token" validate:"required"`
	PollTimeout time.Duration `koanf:"poll_timeout" validate:"gt=0"`
	Debug       bool          `koanf:"debug"`
}

// TMDBConfig holds the catalog service settings.
//
// Environment Variables:
//   - TMDB_API_KEY: TMDB API key (required)
//   - TMDB_BASE_URL: API base URL (default: https://api.themoviedb.org/3)
//   - TMDB_IMAGE_BASE_URL: poster URL prefix (default: https://image.tmdb.org/t/p/w500)
//   - TMDB_LANGUAGE: locale for titles and overviews (default: en-US)
//   - TMDB_MIN_VOTE_COUNT: discovery vote_count.gte filter (default: 500)
//   - TMDB_TIMEOUT: per-request HTTP timeout (default: 30s)
//   - TMDB_RATE_LIMIT / TMDB_RATE_BURST: client-side request budget
//     (default: 4 req/s, burst 8 - stays under TMDB's ~50 req/s cap)
type TMDBConfig struct {
	APIKey       string        `koanf:"api_key" validate:"required"`
	BaseURL      string        `koanf:"base_url" validate:"required,url"`
	ImageBaseURL string        `koanf:"image_base_url" validate:"required,url"`
	Language     string        `koanf:"language" validate:"required"`
	MinVoteCount int           `koanf:"min_vote_count" validate:"gte=0"`
	Timeout      time.Duration `koanf:"timeout" validate:"gt=0"`
	RateLimit    float64       `koanf:"rate_limit" validate:"gt=0"`
	RateBurst    int           `koanf:"rate_burst" validate:"gt=0"`
}

// StoreConfig holds the on-disk persistence paths. Both collections are
// JSON files rewritten wholesale on every mutating operation.
//
// Environment Variables:
//   - STORE_MOVIES_PATH: movie store file (default: data/movies.json)
//   - STORE_LEDGER_PATH: recommendation ledger file (default: data/recommended.json)
type StoreConfig struct {
	MoviesPath string `koanf:"movies_path" validate:"required"`
	LedgerPath string `koanf:"ledger_path" validate:"required"`
}

// RecommendConfig holds the recommendation pool thresholds.
//
// The dual-threshold replenishment (low water 5 / high water 10 / max 5
// pages) bounds both per-request latency and catalog API usage.
//
// Environment Variables:
//   - RECOMMEND_BATCH_SIZE: movies per recommendation (default: 3)
//   - RECOMMEND_LOW_WATER: replenish below this many eligible (default: 5)
//   - RECOMMEND_HIGH_WATER: stop replenishing at this many (default: 10)
//   - RECOMMEND_MAX_PAGES: catalog page fetch cap per request (default: 5)
type RecommendConfig struct {
	BatchSize int `koanf:"batch_size" validate:"gt=0"`
	LowWater  int `koanf:"low_water" validate:"gt=0"`
	HighWater int `koanf:"high_water" validate:"gtefield=LowWater"`
	MaxPages  int `koanf:"max_pages" validate:"gt=0"`
}

// ServerConfig holds the admin HTTP server settings (health, readiness,
// Prometheus metrics, stats).
//
// Environment Variables:
//   - HTTP_ENABLED: serve the admin API (default: true)
//   - HTTP_HOST / HTTP_PORT: listen address (default: 0.0.0.0:8464)
//   - HTTP_TIMEOUT: request timeout (default: 30s)
type ServerConfig struct {
	Enabled bool          `koanf:"enabled"`
	Host    string        `koanf:"host" validate:"required"`
	Port    int           `koanf:"port" validate:"gt=0,lte=65535"`
	Timeout time.Duration `koanf:"timeout" validate:"gt=0"`
}

// LoggingConfig holds log output settings.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: include caller file:line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by config file and environment variables.
func defaultConfig() *Config {
	return &Config{
		Telegram: TelegramConfig{
			BotToken:    "",
			PollTimeout: 30 * time.Second,
			Debug:       false,
		},
		TMDB: TMDBConfig{
			APIKey:       "",
			BaseURL:      "https://api.themoviedb.org/3",
			ImageBaseURL: "https://image.tmdb.org/t/p/w500",
			Language:     "en-US",
			MinVoteCount: 500,
			Timeout:      30 * time.Second,
			RateLimit:    4,
			RateBurst:    8,
		},
		Store: StoreConfig{
			MoviesPath: "data/movies.json",
			LedgerPath: "data/recommended.json",
		},
		Recommend: RecommendConfig{
			BatchSize: 3,
			LowWater:  5,
			HighWater: 10,
			MaxPages:  5,
		},
		Server: ServerConfig{
			Enabled: true,
			Host:    "0.0.0.0",
			Port:    8464,
			Timeout: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}
