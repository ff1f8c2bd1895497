package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"BB_FINANCE_API_KEY", "BB_FINANCE_BASE_URL", "BB_FINANCE_CHART_URL",
		"REQUEST_TIMEOUT", "REQUESTS_PER_SEC", "DEFAULT_INTERVAL",
		"WATCHLIST", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Request.TimeoutSec != 15 {
		t.Errorf("timeout = %d, want 15", cfg.Request.TimeoutSec)
	}
	if cfg.Analysis.TrendFlatEpsilon != 0.001 {
		t.Errorf("flat epsilon = %v, want 0.001", cfg.Analysis.TrendFlatEpsilon)
	}
	if cfg.Analysis.LevelWindow != 3 {
		t.Errorf("level window = %d, want 3", cfg.Analysis.LevelWindow)
	}
	if cfg.Analysis.DefaultInterval != "m1" {
		t.Errorf("default interval = %q, want m1", cfg.Analysis.DefaultInterval)
	}
	if len(cfg.Watchlist) != 4 || cfg.Watchlist[0] != "aapl:us" {
		t.Errorf("watchlist = %v, want default popular symbols", cfg.Watchlist)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("log level = %q, want info", cfg.LogLevel)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("BB_FINANCE_API_KEY", "test-key")
	t.Setenv("WATCHLIST", "nvda:us, amd:us")
	t.Setenv("DEFAULT_INTERVAL", "y1")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.API.Key != "test-key" {
		t.Errorf("api key = %q, want test-key", cfg.API.Key)
	}
	want := []string{"nvda:us", "amd:us"}
	if len(cfg.Watchlist) != 2 || cfg.Watchlist[0] != want[0] || cfg.Watchlist[1] != want[1] {
		t.Errorf("watchlist = %v, want %v", cfg.Watchlist, want)
	}
	if cfg.DefaultInterval().String() != "y1" {
		t.Errorf("default interval = %v, want y1", cfg.DefaultInterval())
	}
}

func TestLoad_YamlFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
api:
  key: yaml-key
analysis:
  level_window: 5
  trend_reference_slope: 0.02
watchlist:
  - spy:us
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.API.Key != "yaml-key" {
		t.Errorf("api key = %q, want yaml-key", cfg.API.Key)
	}
	if cfg.Analysis.LevelWindow != 5 {
		t.Errorf("level window = %d, want 5", cfg.Analysis.LevelWindow)
	}
	if cfg.Analysis.TrendReferenceSlope != 0.02 {
		t.Errorf("reference slope = %v, want 0.02", cfg.Analysis.TrendReferenceSlope)
	}
	if len(cfg.Watchlist) != 1 || cfg.Watchlist[0] != "spy:us" {
		t.Errorf("watchlist = %v, want [spy:us]", cfg.Watchlist)
	}
}

func TestValidate(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error without api key")
	}

	cfg.API.Key = "k"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}

	cfg.Analysis.DefaultInterval = "5min"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for invalid interval")
	}
}
