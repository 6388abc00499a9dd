// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading for polichat.
//
// Configuration is resolved in order of precedence:
//   - Environment variables (POLICHAT_*, plus a .env file if present)
//   - ~/.polichat/config.toml
//   - Built-in defaults
//
// All backend endpoints and listen addresses are injected here at startup.
// Credentials are never embedded in source; anything secret must arrive
// through the environment.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete polichat configuration.
type Config struct {
	// Backend is the remote policy-assistant service.
	Backend BackendConfig `toml:"backend"`

	// Proxy configures the passthrough HTTP server (`polichat serve`).
	Proxy ProxyConfig `toml:"proxy"`

	// UI configures the terminal client.
	UI UIConfig `toml:"ui"`
}

// BackendConfig contains the backend origin settings.
type BackendConfig struct {
	// URL is the backend base URL, e.g. "http://127.0.0.1:8000".
	URL string `toml:"url"`
	// TimeoutSecs is the per-request timeout for backend calls.
	TimeoutSecs int `toml:"timeout_secs"`
}

// ProxyConfig contains settings for the passthrough proxy server.
type ProxyConfig struct {
	// ListenAddr is the address the proxy binds to, e.g. ":8787".
	ListenAddr string `toml:"listen_addr"`
	// AllowedOrigin is the CORS origin allowed to call the proxy.
	AllowedOrigin string `toml:"allowed_origin"`
	// RateLimitRPS is the sustained requests-per-second budget per proxy.
	RateLimitRPS float64 `toml:"rate_limit_rps"`
	// RateLimitBurst is the burst size for the rate limiter.
	RateLimitBurst int `toml:"rate_limit_burst"`
}

// UIConfig contains terminal client settings.
type UIConfig struct {
	// TypewriterIntervalMs is the per-character reveal delay for the newest
	// assistant message. 0 disables the effect.
	TypewriterIntervalMs int `toml:"typewriter_interval_ms"`
	// HistoryWidth is the width of the chat history panel in columns.
	HistoryWidth int `toml:"history_width"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Backend: BackendConfig{
			URL:         "http://127.0.0.1:8000",
			TimeoutSecs: 60,
		},
		Proxy: ProxyConfig{
			ListenAddr:     ":8787",
			AllowedOrigin:  "*",
			RateLimitRPS:   20,
			RateLimitBurst: 40,
		},
		UI: UIConfig{
			TypewriterIntervalMs: 10,
			HistoryWidth:         28,
		},
	}
}

// Timeout returns the backend request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	if c.Backend.TimeoutSecs <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.Backend.TimeoutSecs) * time.Second
}

// TypewriterInterval returns the per-character reveal delay.
func (c *Config) TypewriterInterval() time.Duration {
	return time.Duration(c.UI.TypewriterIntervalMs) * time.Millisecond
}

// =============================================================================
// LOADING
// =============================================================================

// configPath returns the path to the user config file.
func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".polichat", "config.toml"), nil
}

// Load reads configuration from file and environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if path, err := configPath(); err == nil {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnv overlays environment variables onto the config.
func (c *Config) applyEnv() {
	// BACKEND_URL is accepted as a fallback for parity with deployments of
	// the original web frontend.
	if v := envFirst("POLICHAT_BACKEND_URL", "BACKEND_URL"); v != "" {
		c.Backend.URL = v
	}
	if v := os.Getenv("POLICHAT_BACKEND_TIMEOUT_SECS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			c.Backend.TimeoutSecs = secs
		}
	}
	if v := os.Getenv("POLICHAT_LISTEN_ADDR"); v != "" {
		c.Proxy.ListenAddr = v
	}
	if v := os.Getenv("POLICHAT_ALLOWED_ORIGIN"); v != "" {
		c.Proxy.AllowedOrigin = v
	}
	if v := os.Getenv("POLICHAT_TYPEWRITER_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms >= 0 {
			c.UI.TypewriterIntervalMs = ms
		}
	}
}

// envFirst returns the first non-empty value among the given variables.
func envFirst(keys ...string) string {
	for _, key := range keys {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Backend.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid backend url %q", c.Backend.URL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("backend url %q: scheme must be http or https", c.Backend.URL)
	}
	if !strings.Contains(c.Proxy.ListenAddr, ":") {
		return fmt.Errorf("invalid proxy listen address %q", c.Proxy.ListenAddr)
	}
	if c.Proxy.RateLimitRPS <= 0 {
		c.Proxy.RateLimitRPS = DefaultConfig().Proxy.RateLimitRPS
	}
	if c.Proxy.RateLimitBurst <= 0 {
		c.Proxy.RateLimitBurst = DefaultConfig().Proxy.RateLimitBurst
	}
	if c.UI.HistoryWidth < 16 {
		c.UI.HistoryWidth = DefaultConfig().UI.HistoryWidth
	}
	return nil
}
