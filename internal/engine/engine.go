package engine

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/Alias1177/marketlens/internal/analysis/technical"
	"github.com/Alias1177/marketlens/models"
)

// Options holds the analysis thresholds for an Engine.
type Options struct {
	// TrendFlatEpsilon is the normalized per-sample slope below which a
	// trend classifies as flat.
	TrendFlatEpsilon float64
	// TrendReferenceSlope is the normalized slope at which trend strength
	// saturates at 1.
	TrendReferenceSlope float64
	// LevelWindow is the number of samples on each side of a swing point.
	LevelWindow int
	// LevelTolerancePct is the clustering tolerance for levels, as a
	// percentage of the mean series price.
	LevelTolerancePct float64
	// DefaultInterval is the lookback used by Summarize.
	DefaultInterval models.Interval
}

func (o *Options) applyDefaults() {
	if o.TrendFlatEpsilon == 0 {
		o.TrendFlatEpsilon = 0.001
	}
	if o.TrendReferenceSlope == 0 {
		o.TrendReferenceSlope = 0.01
	}
	if o.LevelWindow == 0 {
		o.LevelWindow = 3
	}
	if o.LevelTolerancePct == 0 {
		o.LevelTolerancePct = 0.5
	}
	if o.DefaultInterval == "" {
		o.DefaultInterval = models.IntervalM1
	}
}

// Engine derives analysis records from price series supplied by a loader.
// It holds no shared mutable state across calls; every request recomputes
// from a fresh fetch.
type Engine struct {
	loader models.SeriesLoader
	quotes models.QuoteLoader
	opts   Options
	logger zerolog.Logger
}

// New creates an Engine around the given loaders. quotes may be nil when the
// caller never requests compact quotes.
func New(loader models.SeriesLoader, quotes models.QuoteLoader, opts Options) *Engine {
	opts.applyDefaults()
	return &Engine{
		loader: loader,
		quotes: quotes,
		opts:   opts,
		logger: log.With().Str("component", "engine").Logger(),
	}
}

// GetTrend fetches one series and returns its full analysis record. The
// series must be long enough to classify a trend.
func (e *Engine) GetTrend(ctx context.Context, symbol string, interval models.Interval) (*models.AnalysisRecord, error) {
	return e.analyzeSymbol(ctx, symbol, interval, true)
}

// GetVolatility fetches one series and returns its full analysis record.
// Unlike GetTrend it tolerates a single-sample series: volatility of one
// point is degenerate, not an error, so the record carries zeroed metrics
// flagged low-confidence and a flat placeholder trend.
func (e *Engine) GetVolatility(ctx context.Context, symbol string, interval models.Interval) (*models.AnalysisRecord, error) {
	return e.analyzeSymbol(ctx, symbol, interval, false)
}

// GetQuote returns the compact real-time snapshot for a symbol.
func (e *Engine) GetQuote(ctx context.Context, symbol string) (*models.Quote, error) {
	if e.quotes == nil {
		return nil, fmt.Errorf("quote loader not configured")
	}
	return e.quotes.GetQuote(ctx, symbol)
}

func (e *Engine) analyzeSymbol(ctx context.Context, symbol string, interval models.Interval, requireTrend bool) (*models.AnalysisRecord, error) {
	series, err := e.loader.GetPriceSeries(ctx, symbol, interval)
	if err != nil {
		return nil, err
	}
	if len(series) == 0 {
		return nil, models.ErrInsufficientData
	}

	trend, err := technical.ClassifyTrend(series, e.opts.TrendFlatEpsilon, e.opts.TrendReferenceSlope)
	if err != nil {
		if requireTrend {
			return nil, err
		}
		trend = models.Trend{Direction: models.TrendFlat}
	}

	volatility := technical.AnalyzeVolatility(series)

	levels, err := technical.ExtractLevels(series, e.opts.LevelWindow, e.opts.LevelTolerancePct)
	if err != nil {
		return nil, err
	}

	e.logger.Debug().
		Str("symbol", symbol).
		Str("interval", interval.String()).
		Int("samples", len(series)).
		Str("trend", string(trend.Direction)).
		Msg("analyzed symbol")

	return &models.AnalysisRecord{
		Symbol:      symbol,
		Interval:    interval,
		Trend:       trend,
		Volatility:  volatility,
		Levels:      levels,
		LastPrice:   series.Last(),
		SampleCount: len(series),
	}, nil
}

// Compare aligns multiple symbols over a common interval and ranks them by
// percentage return, best first. Symbols whose series cannot be fetched are
// excluded from the ranking and reported as unavailable; the call fails with
// ErrEmptyComparisonSet only when no ranked symbol remains. Ranking is
// deterministic: ties break by symbol name.
func (e *Engine) Compare(ctx context.Context, symbols []string, interval models.Interval) (*models.ComparisonResult, error) {
	if len(symbols) == 0 {
		return nil, models.ErrEmptyComparisonSet
	}

	allSeries := e.fetchAll(ctx, symbols, interval)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	result := &models.ComparisonResult{Interval: interval}
	for i, symbol := range symbols {
		fetched := allSeries[i]
		if fetched.err != nil || len(fetched.series) == 0 || fetched.series.First() == 0 {
			if fetched.err != nil {
				e.logger.Warn().Err(fetched.err).Str("symbol", symbol).Msg("symbol unavailable for comparison")
			}
			result.Unavailable = append(result.Unavailable, symbol)
			continue
		}
		first, last := fetched.series.First(), fetched.series.Last()
		result.Ranked = append(result.Ranked, models.RankedReturn{
			Symbol:    symbol,
			ReturnPct: (last - first) / first * 100,
		})
	}

	if len(result.Ranked) == 0 {
		return nil, models.ErrEmptyComparisonSet
	}

	sort.SliceStable(result.Ranked, func(i, j int) bool {
		a, b := result.Ranked[i], result.Ranked[j]
		if a.ReturnPct != b.ReturnPct {
			return a.ReturnPct > b.ReturnPct
		}
		return a.Symbol < b.Symbol
	})

	return result, nil
}

// Summarize analyzes every watch-list symbol at the default interval and
// aggregates the results into one report. A failure on one symbol never
// aborts the summary: the failed symbol gets an error entry and the rest
// proceed. Entry order follows the watch-list.
func (e *Engine) Summarize(ctx context.Context, symbols []string) (*models.MarketSummary, error) {
	summary := &models.MarketSummary{Entries: make([]models.SummaryEntry, len(symbols))}

	g := new(errgroup.Group)
	for i, symbol := range symbols {
		g.Go(func() error {
			record, err := e.analyzeSymbol(ctx, symbol, e.opts.DefaultInterval, true)
			if err != nil {
				e.logger.Warn().Err(err).Str("symbol", symbol).Msg("summary entry failed")
				summary.Entries[i] = models.SummaryEntry{Symbol: symbol, Err: err.Error()}
				return nil
			}
			summary.Entries[i] = models.SummaryEntry{
				Symbol: symbol,
				Price:  record.LastPrice,
				Record: record,
			}
			return nil
		})
	}
	g.Wait()

	return summary, nil
}

type fetchResult struct {
	series models.PriceSeries
	err    error
}

// fetchAll issues one fetch per symbol concurrently and waits for all of them
// to complete or fail. Results are indexed by the input symbol order.
func (e *Engine) fetchAll(ctx context.Context, symbols []string, interval models.Interval) []fetchResult {
	results := make([]fetchResult, len(symbols))

	g := new(errgroup.Group)
	for i, symbol := range symbols {
		g.Go(func() error {
			series, err := e.loader.GetPriceSeries(ctx, symbol, interval)
			results[i] = fetchResult{series: series, err: err}
			return nil
		})
	}
	g.Wait()

	return results
}
