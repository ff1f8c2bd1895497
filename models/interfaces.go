package models

import "context"

// SeriesLoader fetches a price series for one symbol and interval.
type SeriesLoader interface {
	GetPriceSeries(ctx context.Context, symbol string, interval Interval) (PriceSeries, error)
}

// QuoteLoader fetches the compact real-time quote for one symbol.
type QuoteLoader interface {
	GetQuote(ctx context.Context, symbol string) (*Quote, error)
}
