package technical

import (
	"errors"
	"math"
	"testing"

	"github.com/Alias1177/marketlens/models"
)

func TestExtractLevels_SwingPointsAndClustering(t *testing.T) {
	// Swing lows at 95 and 94.5 (inside 1% clustering tolerance, merge to
	// 94.75), swing highs at 105 and 100 (too far apart to merge).
	series := generateSeries(100, 95, 100, 105, 100, 94.5, 100, 96)

	levels, err := ExtractLevels(series, 1, 1.0)
	if err != nil {
		t.Fatalf("ExtractLevels() error = %v", err)
	}

	wantSupport := []float64{94.75}
	wantResistance := []float64{100, 105}

	assertLevels(t, "support", levels.Support, wantSupport)
	assertLevels(t, "resistance", levels.Resistance, wantResistance)
}

func TestExtractLevels_MonotonicSeriesHasNoLevels(t *testing.T) {
	tests := []struct {
		name   string
		series models.PriceSeries
	}{
		{"strictly increasing", generateSeries(100, 101, 102, 103, 104, 105, 106)},
		{"strictly decreasing", generateSeries(106, 105, 104, 103, 102, 101, 100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			levels, err := ExtractLevels(tt.series, 2, 0.5)
			if err != nil {
				t.Fatalf("ExtractLevels() error = %v", err)
			}
			if len(levels.Support) != 0 || len(levels.Resistance) != 0 {
				t.Errorf("monotonic series produced levels: %+v", levels)
			}
		})
	}
}

func TestExtractLevels_SidesRespectLatestPrice(t *testing.T) {
	// A long oscillating series with drift; whatever levels come out, no
	// support may sit at or above the latest price and no resistance at or
	// below it.
	prices := make([]float64, 0, 60)
	for i := 0; i < 60; i++ {
		p := 100 + 5*math.Sin(float64(i)/3) + float64(i)*0.05
		prices = append(prices, p)
	}
	series := generateSeries(prices...)

	levels, err := ExtractLevels(series, 3, 0.5)
	if err != nil {
		t.Fatalf("ExtractLevels() error = %v", err)
	}

	latest := series.Last()
	for _, s := range levels.Support {
		if s >= latest {
			t.Errorf("support level %v >= latest price %v", s, latest)
		}
	}
	for _, r := range levels.Resistance {
		if r <= latest {
			t.Errorf("resistance level %v <= latest price %v", r, latest)
		}
	}
	if !sortedAscending(levels.Support) || !sortedAscending(levels.Resistance) {
		t.Errorf("levels not ascending: %+v", levels)
	}
}

func TestExtractLevels_EmptySeries(t *testing.T) {
	_, err := ExtractLevels(nil, 3, 0.5)
	if !errors.Is(err, models.ErrInsufficientData) {
		t.Errorf("ExtractLevels(empty) error = %v, want ErrInsufficientData", err)
	}
}

func assertLevels(t *testing.T, side string, got, want []float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s = %v, want %v", side, got, want)
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("%s[%d] = %v, want %v", side, i, got[i], want[i])
		}
	}
}

func sortedAscending(levels []float64) bool {
	for i := 1; i < len(levels); i++ {
		if levels[i] < levels[i-1] {
			return false
		}
	}
	return true
}
