// Reelpick - Telegram Movie Recommendation Bot
// Copyright 2026 Reelpick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// --- Test: envTransformFunc ---

func TestEnvTransformFunc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key  string
		want string
	}{
		{"TELEGRAM_BOT_TOKEN", "telegram.bot_token"},
		{"TELEGRAM_POLL_TIMEOUT", "telegram.poll_timeout"},
		{"TMDB_API_KEY", "tmdb.api_key"},
		{"TMDB_MIN_VOTE_COUNT", "tmdb.min_vote_count"},
		{"TMDB_IMAGE_BASE_URL", "tmdb.image_base_url"},
		{"STORE_MOVIES_PATH", "store.movies_path"},
		{"RECOMMEND_HIGH_WATER", "recommend.high_water"},
		{"HTTP_PORT", "server.port"},
		{"LOG_LEVEL", "logging.level"},
		{"PATH", ""},
		{"HOME", ""},
		{"GOPATH", ""},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Parallel()
			if got := envTransformFunc(tt.key); got != tt.want {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

// --- Test: Load layering ---

func TestLoadEnvOverridesDefaults(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TMDB_API_KEY", "k")
	t.Setenv("RECOMMEND_BATCH_SIZE", "5")
	t.Setenv("TMDB_LANGUAGE", "pt-BR")
	t.Setenv("HTTP_PORT", "9000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Telegram.BotToken != "123:abc" {
		t.Errorf("BotToken = %q", cfg.Telegram.BotToken)
	}
	if cfg.Recommend.BatchSize != 5 {
		t.Errorf("BatchSize = %d, want 5", cfg.Recommend.BatchSize)
	}
	if cfg.TMDB.Language != "pt-BR" {
		t.Errorf("Language = %q, want pt-BR", cfg.TMDB.Language)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Port = %d, want 9000", cfg.Server.Port)
	}
	// Untouched defaults survive
	if cfg.Recommend.MaxPages != 5 {
		t.Errorf("MaxPages = %d, want default 5", cfg.Recommend.MaxPages)
	}
}

func TestLoadConfigFileLayer(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
telegram:
  bot_token: "file-token"
  poll_timeout: 10s
tmdb:
  api_key: "file-key"
recommend:
  low_water: 4
  high_water: 8
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	// Env beats file for the token
	t.Setenv("TELEGRAM_BOT_TOKEN", "env-token")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Telegram.BotToken != "env-token" {
		t.Errorf("BotToken = %q, want env-token (env > file)", cfg.Telegram.BotToken)
	}
	if cfg.TMDB.APIKey != "file-key" {
		t.Errorf("APIKey = %q, want file-key", cfg.TMDB.APIKey)
	}
	if cfg.Telegram.PollTimeout != 10*time.Second {
		t.Errorf("PollTimeout = %v, want 10s", cfg.Telegram.PollTimeout)
	}
	if cfg.Recommend.LowWater != 4 || cfg.Recommend.HighWater != 8 {
		t.Errorf("water marks = %d/%d, want 4/8", cfg.Recommend.LowWater, cfg.Recommend.HighWater)
	}
}

func TestLoadMissingSecretsFails(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("TMDB_API_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatal("Load() = nil error, want validation failure without secrets")
	}
}
