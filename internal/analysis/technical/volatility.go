package technical

import (
	"math"

	"github.com/Alias1177/marketlens/models"
)

// AnalyzeVolatility computes dispersion metrics over a series: the population
// standard deviation of prices and the high-low range as a percentage of the
// mean price.
//
// A series shorter than two samples has no meaningful dispersion. That is a
// degenerate case rather than an error, so the result carries zeros with the
// LowConfidence flag set.
func AnalyzeVolatility(series models.PriceSeries) models.Volatility {
	if len(series) < 2 {
		return models.Volatility{LowConfidence: true}
	}

	prices := series.Prices()
	mean := series.MeanPrice()

	var variance float64
	lowest, highest := prices[0], prices[0]
	for _, p := range prices {
		variance += (p - mean) * (p - mean)
		if p < lowest {
			lowest = p
		}
		if p > highest {
			highest = p
		}
	}
	variance /= float64(len(prices))

	rangePct := 0.0
	if mean != 0 {
		rangePct = (highest - lowest) / mean * 100
	}

	return models.Volatility{
		StdDev:   math.Sqrt(variance),
		RangePct: rangePct,
	}
}
