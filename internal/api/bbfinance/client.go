package bbfinance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	platformhttp "github.com/Alias1177/marketlens/internal/platform/http"
	"github.com/Alias1177/marketlens/models"
)

const (
	defaultQuoteURL = "https://bb-finance.p.rapidapi.com/market/get-compact"
	defaultChartURL = "https://bb-finance.p.rapidapi.com/market/get-price-chart"
	rapidAPIHost    = "bb-finance.p.rapidapi.com"
)

// Client is the BB Finance API client. It implements models.SeriesLoader and
// models.QuoteLoader.
type Client struct {
	apiKey     string
	quoteURL   string
	chartURL   string
	httpClient *platformhttp.Client
	logger     zerolog.Logger
}

// ClientOptions holds options for creating a new BB Finance client.
type ClientOptions struct {
	APIKey          string
	QuoteURL        string
	ChartURL        string
	RequestTimeout  time.Duration
	RequestsPerSec  int
	MaxRetryTimeout time.Duration
}

// NewClient creates a new BB Finance API client.
func NewClient(options ClientOptions) *Client {
	if options.QuoteURL == "" {
		options.QuoteURL = defaultQuoteURL
	}
	if options.ChartURL == "" {
		options.ChartURL = defaultChartURL
	}

	httpOpts := platformhttp.ClientOptions{
		Timeout:         options.RequestTimeout,
		RequestsPerSec:  options.RequestsPerSec,
		MaxRetryTimeout: options.MaxRetryTimeout,
	}

	return &Client{
		apiKey:     options.APIKey,
		quoteURL:   options.QuoteURL,
		chartURL:   options.ChartURL,
		httpClient: platformhttp.NewClient(httpOpts),
		logger:     log.With().Str("component", "bbfinance_client").Logger(),
	}
}

// chartResponse mirrors the get-price-chart payload. The result is keyed by
// the upstream's canonical symbol id; only the first entry matters.
type chartResponse struct {
	Result map[string]chartPayload `json:"result"`
}

type chartPayload struct {
	Ticks []chartTick `json:"ticks"`
}

type chartTick struct {
	Time   int64   `json:"time"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume,omitempty"`
}

// quoteResponse mirrors the get-compact payload.
type quoteResponse struct {
	Result map[string]quotePayload `json:"result"`
}

type quotePayload struct {
	Name      string  `json:"name"`
	Last      float64 `json:"last"`
	Currency  string  `json:"currency"`
	NetChange float64 `json:"netChange"`
	PctChange float64 `json:"pctChange"`
	DayHigh   float64 `json:"dayHigh"`
	DayLow    float64 `json:"dayLow"`
	YearHigh  float64 `json:"yearHigh"`
	YearLow   float64 `json:"yearLow"`
	Volume    int64   `json:"volume"`
	Exchange  string  `json:"exchange"`
}

// GetPriceSeries fetches the price chart for a symbol and interval and
// validates it into a typed series: ascending timestamps, no duplicates,
// finite positive prices. The analytics engine never sees untyped data.
func (c *Client) GetPriceSeries(ctx context.Context, symbol string, interval models.Interval) (models.PriceSeries, error) {
	params := url.Values{}
	params.Set("id", strings.ToLower(symbol))
	params.Set("interval", interval.String())

	body, err := c.get(ctx, c.chartURL, params)
	if err != nil {
		return nil, err
	}

	var data chartResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("%w: parsing chart response: %v", models.ErrUpstreamUnavailable, err)
	}

	payload, ok := firstEntry(data.Result)
	if !ok || len(payload.Ticks) == 0 {
		c.logger.Warn().Str("symbol", symbol).Str("interval", interval.String()).Msg("no chart data in response")
		return nil, fmt.Errorf("%w: %s", models.ErrNotFound, symbol)
	}

	series, err := buildSeries(payload.Ticks)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", models.ErrUpstreamUnavailable, symbol, err)
	}

	c.logger.Debug().Str("symbol", symbol).Str("interval", interval.String()).Int("samples", len(series)).Msg("fetched price series")
	return series, nil
}

// GetQuote fetches the compact real-time snapshot for a symbol.
func (c *Client) GetQuote(ctx context.Context, symbol string) (*models.Quote, error) {
	params := url.Values{}
	params.Set("id", strings.ToLower(symbol))

	body, err := c.get(ctx, c.quoteURL, params)
	if err != nil {
		return nil, err
	}

	var data quoteResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("%w: parsing quote response: %v", models.ErrUpstreamUnavailable, err)
	}

	payload, ok := firstEntry(data.Result)
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrNotFound, symbol)
	}

	return &models.Quote{
		Symbol:    symbol,
		Name:      payload.Name,
		Last:      payload.Last,
		Currency:  payload.Currency,
		NetChange: payload.NetChange,
		PctChange: payload.PctChange,
		DayHigh:   payload.DayHigh,
		DayLow:    payload.DayLow,
		YearHigh:  payload.YearHigh,
		YearLow:   payload.YearLow,
		Volume:    payload.Volume,
		Exchange:  payload.Exchange,
	}, nil
}

func (c *Client) get(ctx context.Context, baseURL string, params url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("x-rapidapi-host", rapidAPIHost)
	req.Header.Set("x-rapidapi-key", c.apiKey)

	resp, err := c.httpClient.DoRequest(ctx, req)
	if err != nil {
		var statusErr *platformhttp.HTTPStatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %v", models.ErrNotFound, err)
		}
		c.logger.Error().Err(err).Str("url", baseURL).Msg("BB Finance request failed")
		return nil, fmt.Errorf("%w: %v", models.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response body: %v", models.ErrUpstreamUnavailable, err)
	}
	return body, nil
}

// buildSeries converts raw ticks to a validated price series.
func buildSeries(ticks []chartTick) (models.PriceSeries, error) {
	sorted := append([]chartTick(nil), ticks...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Time < sorted[j].Time
	})

	series := make(models.PriceSeries, 0, len(sorted))
	for i, tick := range sorted {
		if i > 0 && tick.Time == sorted[i-1].Time {
			return nil, fmt.Errorf("duplicate timestamp %d", tick.Time)
		}
		if math.IsNaN(tick.Close) || math.IsInf(tick.Close, 0) || tick.Close <= 0 {
			return nil, fmt.Errorf("invalid price %v at timestamp %d", tick.Close, tick.Time)
		}
		if tick.Volume < 0 {
			return nil, fmt.Errorf("negative volume %d at timestamp %d", tick.Volume, tick.Time)
		}
		series = append(series, models.Sample{
			Time:   time.Unix(tick.Time, 0).UTC(),
			Price:  tick.Close,
			Volume: tick.Volume,
		})
	}
	return series, nil
}

// firstEntry returns an arbitrary entry of the result map. The upstream keys
// the result by its own symbol id, and there is only ever one entry.
func firstEntry[T any](m map[string]T) (T, bool) {
	for _, v := range m {
		return v, true
	}
	var zero T
	return zero, false
}
