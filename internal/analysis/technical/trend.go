package technical

import (
	"math"

	"github.com/Alias1177/marketlens/models"
)

// ClassifyTrend derives a directional label and strength from a price series.
// It fits an ordinary least squares line of price against sample index and
// normalizes the slope by the mean price, so the result is scale-free: a value
// of 0.001 means the price drifts 0.1% of its mean per sample.
//
// Slopes with magnitude below flatEpsilon classify as flat. Strength is the
// normalized slope capped at referenceSlope, mapped into [0,1].
func ClassifyTrend(series models.PriceSeries, flatEpsilon, referenceSlope float64) (models.Trend, error) {
	if len(series) < 2 {
		return models.Trend{}, models.ErrInsufficientData
	}

	prices := series.Prices()
	n := float64(len(prices))

	meanX := (n - 1) / 2
	var meanY float64
	for _, p := range prices {
		meanY += p
	}
	meanY /= n

	var num, den float64
	for i, p := range prices {
		dx := float64(i) - meanX
		num += dx * (p - meanY)
		den += dx * dx
	}
	slope := num / den

	normSlope := 0.0
	if meanY != 0 {
		normSlope = slope / meanY
	}

	strength := math.Min(1, math.Abs(normSlope)/referenceSlope)

	direction := models.TrendFlat
	switch {
	case math.Abs(normSlope) < flatEpsilon:
		direction = models.TrendFlat
	case normSlope > 0:
		direction = models.TrendUp
	default:
		direction = models.TrendDown
	}

	return models.Trend{Direction: direction, Strength: strength}, nil
}
