// Reelpick - Telegram Movie Recommendation Bot
// Copyright 2026 Reelpick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/reelpick/config.yaml",
	"/etc/reelpick/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// Load loads configuration using Koanf v2 with layered sources:
//
//  1. Defaults: built-in sensible defaults
//  2. Config file: optional YAML file (if one exists)
//  3. Environment variables: override any setting
//
// The result is validated before being returned; a missing bot token or
// TMDB API key is a load error.
func Load() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: optional config file
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment variables (highest priority)
	// TELEGRAM_BOT_TOKEN -> telegram.bot_token, HTTP_PORT -> server.port, ...
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file, checking the CONFIG_PATH
// environment variable first and then the default paths.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// envPrefixes maps environment variable prefixes to config sections.
// Variables outside these prefixes are ignored so that unrelated
// environment noise never leaks into the configuration.
var envPrefixes = map[string]string{
	"TELEGRAM_":  "telegram.",
	"TMDB_":      "tmdb.",
	"STORE_":     "store.",
	"RECOMMEND_": "recommend.",
	"HTTP_":      "server.",
	"LOG_":       "logging.",
}

// envTransformFunc transforms environment variable names to koanf config
// paths.
//
// Examples:
//   - TELEGRAM_BOT_TOKEN -> telegram.bot_token
//   - TMDB_MIN_VOTE_COUNT -> tmdb.min_vote_count
//   - HTTP_PORT -> server.port
//   - LOG_LEVEL -> logging.level
func envTransformFunc(key string) string {
	for prefix, section := range envPrefixes {
		if strings.HasPrefix(key, prefix) {
			rest := strings.ToLower(strings.TrimPrefix(key, prefix))
			if rest == "" {
				return ""
			}
			return section + rest
		}
	}
	return "" // Not a Reelpick variable; skip.
}
