// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Backend.URL != "http://127.0.0.1:8000" {
		t.Errorf("Backend.URL = %q", cfg.Backend.URL)
	}
	if cfg.Proxy.ListenAddr != ":8787" {
		t.Errorf("Proxy.ListenAddr = %q", cfg.Proxy.ListenAddr)
	}
	if cfg.Timeout() != 60*time.Second {
		t.Errorf("Timeout() = %v", cfg.Timeout())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() on defaults: %v", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("POLICHAT_BACKEND_URL", "https://assistant.example.com")
	t.Setenv("POLICHAT_LISTEN_ADDR", ":9090")
	t.Setenv("POLICHAT_TYPEWRITER_MS", "25")

	cfg := DefaultConfig()
	cfg.applyEnv()

	if cfg.Backend.URL != "https://assistant.example.com" {
		t.Errorf("Backend.URL = %q", cfg.Backend.URL)
	}
	if cfg.Proxy.ListenAddr != ":9090" {
		t.Errorf("Proxy.ListenAddr = %q", cfg.Proxy.ListenAddr)
	}
	if cfg.UI.TypewriterIntervalMs != 25 {
		t.Errorf("TypewriterIntervalMs = %d", cfg.UI.TypewriterIntervalMs)
	}
}

func TestBackendURLFallbackVar(t *testing.T) {
	t.Setenv("BACKEND_URL", "http://fallback:8000")

	cfg := DefaultConfig()
	cfg.applyEnv()

	if cfg.Backend.URL != "http://fallback:8000" {
		t.Errorf("Backend.URL = %q, want BACKEND_URL fallback applied", cfg.Backend.URL)
	}
}

func TestValidateRejectsBadURLs(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"empty", ""},
		{"no scheme", "127.0.0.1:8000"},
		{"bad scheme", "ftp://example.com"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Backend.URL = tc.url
			if err := cfg.Validate(); err == nil {
				t.Errorf("Validate() accepted %q", tc.url)
			}
		})
	}
}

func TestValidateClampsLimits(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Proxy.RateLimitRPS = -1
	cfg.Proxy.RateLimitBurst = 0
	cfg.UI.HistoryWidth = 2

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate(): %v", err)
	}
	if cfg.Proxy.RateLimitRPS <= 0 || cfg.Proxy.RateLimitBurst <= 0 {
		t.Errorf("rate limits not clamped: %v / %d", cfg.Proxy.RateLimitRPS, cfg.Proxy.RateLimitBurst)
	}
	if cfg.UI.HistoryWidth < 16 {
		t.Errorf("HistoryWidth = %d, want clamped", cfg.UI.HistoryWidth)
	}
}
