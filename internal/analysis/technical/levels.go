package technical

import (
	"sort"

	"github.com/Alias1177/marketlens/models"
)

// ExtractLevels identifies support and resistance price bands from local
// extrema. A sample is a swing high (resistance candidate) when no price in
// the surrounding window exceeds it, and a swing low (support candidate) when
// no price in the window is below it. The scan requires the full window on
// both sides, so the first and last window samples never qualify.
//
// Candidates within tolerancePct percent of the mean series price merge into
// one level whose value is the cluster mean. Support levels sit strictly below
// the latest price, resistance strictly above; a monotonic series yields an
// empty set on one or both sides, which is a valid result.
func ExtractLevels(series models.PriceSeries, window int, tolerancePct float64) (models.Levels, error) {
	if len(series) == 0 {
		return models.Levels{}, models.ErrInsufficientData
	}
	if window < 1 {
		window = 1
	}

	prices := series.Prices()

	var highs, lows []float64
	for i := window; i < len(prices)-window; i++ {
		isHigh, isLow := true, true
		for j := i - window; j <= i+window; j++ {
			if j == i {
				continue
			}
			if prices[j] > prices[i] {
				isHigh = false
			}
			if prices[j] < prices[i] {
				isLow = false
			}
			if !isHigh && !isLow {
				break
			}
		}
		if isHigh {
			highs = append(highs, prices[i])
		}
		if isLow {
			lows = append(lows, prices[i])
		}
	}

	tolerance := series.MeanPrice() * tolerancePct / 100
	latest := series.Last()

	levels := models.Levels{}
	for _, level := range clusterLevels(lows, tolerance) {
		if level < latest {
			levels.Support = append(levels.Support, level)
		}
	}
	for _, level := range clusterLevels(highs, tolerance) {
		if level > latest {
			levels.Resistance = append(levels.Resistance, level)
		}
	}

	return levels, nil
}

// clusterLevels merges candidate prices that sit within tolerance of each
// other into single levels, returning the cluster means in ascending order.
func clusterLevels(candidates []float64, tolerance float64) []float64 {
	if len(candidates) == 0 {
		return nil
	}

	sorted := append([]float64(nil), candidates...)
	sort.Float64s(sorted)

	var levels []float64
	clusterSum := sorted[0]
	clusterSize := 1
	clusterStart := sorted[0]

	for _, p := range sorted[1:] {
		if p-clusterStart <= tolerance {
			clusterSum += p
			clusterSize++
			continue
		}
		levels = append(levels, clusterSum/float64(clusterSize))
		clusterSum = p
		clusterSize = 1
		clusterStart = p
	}
	levels = append(levels, clusterSum/float64(clusterSize))

	return levels
}
