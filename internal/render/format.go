// Package render turns analysis values into plain-text reports for the
// tool-calling caller. All functions are pure; no I/O happens here.
package render

import (
	"fmt"
	"strings"

	"github.com/Alias1177/marketlens/models"
)

const rule = "──────────────────────────────────────────────"

// FormatQuote renders a compact quote snapshot.
func FormatQuote(q *models.Quote) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)\n%s\n", q.Name, strings.ToUpper(q.Symbol), rule)
	fmt.Fprintf(&b, "Price:    %s %.2f\n", q.Currency, q.Last)
	fmt.Fprintf(&b, "Change:   %+.2f (%+.2f%%)\n", q.NetChange, q.PctChange)
	fmt.Fprintf(&b, "Exchange: %s\n", q.Exchange)
	fmt.Fprintf(&b, "Day:      %.2f - %.2f\n", q.DayLow, q.DayHigh)
	fmt.Fprintf(&b, "52-Week:  %.2f - %.2f\n", q.YearLow, q.YearHigh)
	fmt.Fprintf(&b, "Volume:   %d\n", q.Volume)
	return b.String()
}

// FormatAnalysis renders one symbol's analysis record.
func FormatAnalysis(r *models.AnalysisRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s - %s Analysis\n%s\n", strings.ToUpper(r.Symbol), r.Interval.DisplayName(), rule)
	fmt.Fprintf(&b, "Trend:      %s (strength %.2f)\n", r.Trend.Direction, r.Trend.Strength)

	confidence := ""
	if r.Volatility.LowConfidence {
		confidence = " [low confidence]"
	}
	fmt.Fprintf(&b, "Volatility: stddev %.2f, range %.2f%%%s\n", r.Volatility.StdDev, r.Volatility.RangePct, confidence)
	fmt.Fprintf(&b, "Current:    %.2f\n", r.LastPrice)
	fmt.Fprintf(&b, "Support:    %s\n", formatLevels(r.Levels.Support))
	fmt.Fprintf(&b, "Resistance: %s\n", formatLevels(r.Levels.Resistance))
	fmt.Fprintf(&b, "Samples:    %d\n", r.SampleCount)
	return b.String()
}

// FormatComparison renders a ranked multi-symbol comparison.
func FormatComparison(c *models.ComparisonResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Performance Comparison - %s\n%s\n", c.Interval.DisplayName(), rule)
	for i, r := range c.Ranked {
		fmt.Fprintf(&b, "%d. %-12s %+.2f%%\n", i+1, strings.ToUpper(r.Symbol), r.ReturnPct)
	}
	if len(c.Unavailable) > 0 {
		fmt.Fprintf(&b, "Unavailable: %s\n", strings.Join(c.Unavailable, ", "))
	}
	return b.String()
}

// FormatSummary renders a watch-list summary split into gainers, decliners,
// flat movers, and failed symbols.
func FormatSummary(s *models.MarketSummary) string {
	var gainers, decliners, flat, failed []string

	for _, e := range s.Entries {
		if e.Err != "" {
			failed = append(failed, fmt.Sprintf("  %-12s %s", strings.ToUpper(e.Symbol), e.Err))
			continue
		}
		line := fmt.Sprintf("  %-12s %.2f (trend %s, strength %.2f)",
			strings.ToUpper(e.Symbol), e.Price, e.Record.Trend.Direction, e.Record.Trend.Strength)
		switch e.Record.Trend.Direction {
		case models.TrendUp:
			gainers = append(gainers, line)
		case models.TrendDown:
			decliners = append(decliners, line)
		default:
			flat = append(flat, line)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Market Summary\n%s\n", rule)
	writeSection(&b, "Gainers:", gainers)
	writeSection(&b, "Decliners:", decliners)
	writeSection(&b, "Flat:", flat)
	writeSection(&b, "Errors:", failed)
	return b.String()
}

func writeSection(b *strings.Builder, title string, lines []string) {
	if len(lines) == 0 {
		return
	}
	fmt.Fprintln(b, title)
	for _, line := range lines {
		fmt.Fprintln(b, line)
	}
}

func formatLevels(levels []float64) string {
	if len(levels) == 0 {
		return "none"
	}
	parts := make([]string, len(levels))
	for i, l := range levels {
		parts[i] = fmt.Sprintf("%.2f", l)
	}
	return strings.Join(parts, ", ")
}
