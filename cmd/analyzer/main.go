package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/marketlens/internal/api/bbfinance"
	"github.com/Alias1177/marketlens/internal/config"
	"github.com/Alias1177/marketlens/internal/engine"
	"github.com/Alias1177/marketlens/internal/render"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config failed")
	}

	lvl, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(lvl)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	client := bbfinance.NewClient(bbfinance.ClientOptions{
		APIKey:         cfg.API.Key,
		QuoteURL:       cfg.API.QuoteURL,
		ChartURL:       cfg.API.ChartURL,
		RequestTimeout: time.Duration(cfg.Request.TimeoutSec) * time.Second,
		RequestsPerSec: cfg.Request.RequestsPerSec,
	})

	eng := engine.New(client, client, engine.Options{
		TrendFlatEpsilon:    cfg.Analysis.TrendFlatEpsilon,
		TrendReferenceSlope: cfg.Analysis.TrendReferenceSlope,
		LevelWindow:         cfg.Analysis.LevelWindow,
		LevelTolerancePct:   cfg.Analysis.LevelTolerancePct,
		DefaultInterval:     cfg.DefaultInterval(),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	summary, err := eng.Summarize(ctx, cfg.Watchlist)
	if err != nil {
		log.Fatal().Err(err).Msg("summarize failed")
	}
	fmt.Println(render.FormatSummary(summary))

	comparison, err := eng.Compare(ctx, cfg.Watchlist, cfg.DefaultInterval())
	if err != nil {
		log.Error().Err(err).Msg("comparison failed")
		return
	}
	fmt.Println(render.FormatComparison(comparison))
}
