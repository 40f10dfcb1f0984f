package config

import (
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{
			RateLimitRPS:   20,
			RateLimitBurst: 40,
		},
		Cabinet: CabinetConfig{
			LowStockThreshold:   3,
			ExpiryWarningDays:   30,
			FuzzyMatchThreshold: 80,
			StoreTimeout:        5 * time.Second,
			HistoryLimit:        50,
			StatsWindowDays:     30,
		},
		Log: LogConfig{Level: "info", Format: "json"},
	}
}

func TestValidate_OK(t *testing.T) {
	t.Parallel()

	if err := validConfig().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_Rejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		mut  func(*Config)
	}{
		{"zero low stock threshold", func(c *Config) { c.Cabinet.LowStockThreshold = 0 }},
		{"negative expiry window", func(c *Config) { c.Cabinet.ExpiryWarningDays = -1 }},
		{"fuzzy threshold above 100", func(c *Config) { c.Cabinet.FuzzyMatchThreshold = 150 }},
		{"zero store timeout", func(c *Config) { c.Cabinet.StoreTimeout = 0 }},
		{"zero history limit", func(c *Config) { c.Cabinet.HistoryLimit = 0 }},
		{"zero rate limit", func(c *Config) { c.Server.RateLimitRPS = 0 }},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tt.mut(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error, got nil")
			}
		})
	}
}

func TestValidate_ParsesAdminIDs(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Cabinet.AdminUserIDsRaw = "alice, bob ,,charlie"

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Cabinet.AdminUserIDs) != 3 {
		t.Fatalf("expected 3 admin IDs, got %v", cfg.Cabinet.AdminUserIDs)
	}
	if !cfg.Cabinet.IsAdmin("bob") {
		t.Error("expected bob to be admin")
	}
	if cfg.Cabinet.IsAdmin("mallory") {
		t.Error("mallory must not be admin")
	}
}

func TestParseAdminIDs_Empty(t *testing.T) {
	t.Parallel()

	if ids := ParseAdminIDs(""); ids != nil {
		t.Fatalf("expected nil for empty input, got %v", ids)
	}
}
