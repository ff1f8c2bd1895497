package models

import (
	"time"
)

// TrendDirection labels the direction of price movement over a series.
type TrendDirection string

const (
	TrendUp   TrendDirection = "up"
	TrendDown TrendDirection = "down"
	TrendFlat TrendDirection = "flat"
)

// Sample is a single observation in a price series.
type Sample struct {
	Time   time.Time `json:"time"`
	Price  float64   `json:"price"`
	Volume int64     `json:"volume,omitempty"`
}

// PriceSeries is a time-ordered sequence of samples for one symbol and one
// interval. The loader guarantees ascending timestamps with no duplicates.
type PriceSeries []Sample

// Prices returns the price column of the series.
func (s PriceSeries) Prices() []float64 {
	prices := make([]float64, len(s))
	for i, sample := range s {
		prices[i] = sample.Price
	}
	return prices
}

// First returns the price of the oldest sample.
func (s PriceSeries) First() float64 {
	return s[0].Price
}

// Last returns the price of the most recent sample.
func (s PriceSeries) Last() float64 {
	return s[len(s)-1].Price
}

// MeanPrice returns the arithmetic mean of all prices, or 0 for an empty series.
func (s PriceSeries) MeanPrice() float64 {
	if len(s) == 0 {
		return 0
	}
	var sum float64
	for _, sample := range s {
		sum += sample.Price
	}
	return sum / float64(len(s))
}

// Trend describes direction and normalized magnitude of price movement.
type Trend struct {
	Direction TrendDirection `json:"direction"`
	Strength  float64        `json:"strength"` // 0-1
}

// Volatility holds dispersion metrics for a series. LowConfidence marks a
// degenerate result computed from fewer than two samples.
type Volatility struct {
	StdDev        float64 `json:"stddev"`
	RangePct      float64 `json:"range_pct"`
	LowConfidence bool    `json:"low_confidence,omitempty"`
}

// Levels holds clustered support and resistance price bands, both ascending.
type Levels struct {
	Support    []float64 `json:"support"`
	Resistance []float64 `json:"resistance"`
}

// AnalysisRecord is the full derived snapshot for one symbol and interval.
type AnalysisRecord struct {
	Symbol      string     `json:"symbol"`
	Interval    Interval   `json:"interval"`
	Trend       Trend      `json:"trend"`
	Volatility  Volatility `json:"volatility"`
	Levels      Levels     `json:"levels"`
	LastPrice   float64    `json:"last_price"`
	SampleCount int        `json:"data_points"`
}

// RankedReturn is one symbol's normalized performance in a comparison.
type RankedReturn struct {
	Symbol    string  `json:"symbol"`
	ReturnPct float64 `json:"return_pct"`
}

// ComparisonResult ranks symbols by return over a common interval, best first.
// Ties are broken by symbol name so the ordering is deterministic. Symbols
// whose series could not be fetched are listed in Unavailable.
type ComparisonResult struct {
	Interval    Interval       `json:"interval"`
	Ranked      []RankedReturn `json:"ranked"`
	Unavailable []string       `json:"unavailable,omitempty"`
}

// SummaryEntry is one watch-list symbol's slot in a market summary. Either
// Record is set, or Err carries the per-symbol failure.
type SummaryEntry struct {
	Symbol string          `json:"symbol"`
	Price  float64         `json:"price,omitempty"`
	Record *AnalysisRecord `json:"record,omitempty"`
	Err    string          `json:"error,omitempty"`
}

// MarketSummary aggregates per-symbol analysis across a watch-list. Entry
// order follows the caller-supplied symbol order.
type MarketSummary struct {
	Entries []SummaryEntry `json:"entries"`
}

// Quote is the compact real-time snapshot for one symbol.
type Quote struct {
	Symbol    string  `json:"symbol"`
	Name      string  `json:"name"`
	Last      float64 `json:"last"`
	Currency  string  `json:"currency"`
	NetChange float64 `json:"net_change"`
	PctChange float64 `json:"pct_change"`
	DayHigh   float64 `json:"day_high"`
	DayLow    float64 `json:"day_low"`
	YearHigh  float64 `json:"year_high"`
	YearLow   float64 `json:"year_low"`
	Volume    int64   `json:"volume"`
	Exchange  string  `json:"exchange"`
}
