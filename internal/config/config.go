package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/Alias1177/marketlens/models"
)

// Config holds all application configuration.
type Config struct {
	API struct {
		Key      string `yaml:"key"`
		QuoteURL string `yaml:"quote_url"`
		ChartURL string `yaml:"chart_url"`
	} `yaml:"api"`
	Request struct {
		TimeoutSec     int `yaml:"timeout_sec"`
		RequestsPerSec int `yaml:"requests_per_sec"`
	} `yaml:"request"`
	Analysis struct {
		TrendFlatEpsilon    float64 `yaml:"trend_flat_epsilon"`
		TrendReferenceSlope float64 `yaml:"trend_reference_slope"`
		LevelWindow         int     `yaml:"level_window"`
		LevelTolerancePct   float64 `yaml:"level_cluster_tolerance"`
		DefaultInterval     string  `yaml:"default_interval"`
	} `yaml:"analysis"`
	Watchlist []string `yaml:"watchlist"`
	LogLevel  string   `yaml:"log_level"`
}

// Load reads config from an optional YAML file, then applies environment
// variable overrides. A .env file in the working directory is honored.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg(".env file not found, relying on actual environment variables")
	}

	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if len(data) > 0 {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	// Environment variable overrides
	if v := os.Getenv("BB_FINANCE_API_KEY"); v != "" {
		cfg.API.Key = v
	}
	if v := os.Getenv("BB_FINANCE_BASE_URL"); v != "" {
		cfg.API.QuoteURL = v
	}
	if v := os.Getenv("BB_FINANCE_CHART_URL"); v != "" {
		cfg.API.ChartURL = v
	}
	if v := os.Getenv("REQUEST_TIMEOUT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Request.TimeoutSec = n
		}
	}
	if v := os.Getenv("REQUESTS_PER_SEC"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Request.RequestsPerSec = n
		}
	}
	if v := os.Getenv("DEFAULT_INTERVAL"); v != "" {
		cfg.Analysis.DefaultInterval = v
	}
	if v := os.Getenv("WATCHLIST"); v != "" {
		cfg.Watchlist = splitList(v)
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	// Defaults
	if cfg.Request.TimeoutSec == 0 {
		cfg.Request.TimeoutSec = 15
	}
	if cfg.Request.RequestsPerSec == 0 {
		cfg.Request.RequestsPerSec = 5
	}
	if cfg.Analysis.TrendFlatEpsilon == 0 {
		cfg.Analysis.TrendFlatEpsilon = 0.001
	}
	if cfg.Analysis.TrendReferenceSlope == 0 {
		cfg.Analysis.TrendReferenceSlope = 0.01
	}
	if cfg.Analysis.LevelWindow == 0 {
		cfg.Analysis.LevelWindow = 3
	}
	if cfg.Analysis.LevelTolerancePct == 0 {
		cfg.Analysis.LevelTolerancePct = 0.5
	}
	if cfg.Analysis.DefaultInterval == "" {
		cfg.Analysis.DefaultInterval = models.IntervalM1.String()
	}
	if len(cfg.Watchlist) == 0 {
		cfg.Watchlist = []string{"aapl:us", "tsla:us", "msft:us", "googl:us"}
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	return cfg, nil
}

// Validate checks that all required fields are set and consistent.
func (c *Config) Validate() error {
	if c.API.Key == "" {
		return fmt.Errorf("api.key is required (BB_FINANCE_API_KEY)")
	}
	if _, err := models.ParseInterval(c.Analysis.DefaultInterval); err != nil {
		return fmt.Errorf("analysis.default_interval: %w", err)
	}
	if c.Analysis.LevelWindow < 1 {
		return fmt.Errorf("analysis.level_window must be >= 1")
	}
	if c.Analysis.TrendReferenceSlope <= 0 {
		return fmt.Errorf("analysis.trend_reference_slope must be positive")
	}
	if c.Analysis.LevelTolerancePct <= 0 {
		return fmt.Errorf("analysis.level_cluster_tolerance must be positive")
	}
	return nil
}

// DefaultInterval returns the validated default interval.
func (c *Config) DefaultInterval() models.Interval {
	iv, err := models.ParseInterval(c.Analysis.DefaultInterval)
	if err != nil {
		return models.IntervalM1
	}
	return iv
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
