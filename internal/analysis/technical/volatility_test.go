package technical

import (
	"math"
	"testing"

	"github.com/Alias1177/marketlens/models"
)

func TestAnalyzeVolatility(t *testing.T) {
	tests := []struct {
		name         string
		series       models.PriceSeries
		wantStdDev   float64
		wantRangePct float64
		wantLowConf  bool
	}{
		{
			name:        "empty series is degenerate",
			series:      nil,
			wantLowConf: true,
		},
		{
			name:        "single sample is degenerate",
			series:      generateSeries(100),
			wantLowConf: true,
		},
		{
			name:         "constant series has zero dispersion",
			series:       generateSeries(100, 100, 100, 100),
			wantStdDev:   0,
			wantRangePct: 0,
		},
		{
			name:         "known dispersion",
			series:       generateSeries(1, 2, 3, 4, 5),
			wantStdDev:   math.Sqrt(2),
			wantRangePct: 4.0 / 3.0 * 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vol := AnalyzeVolatility(tt.series)
			if vol.LowConfidence != tt.wantLowConf {
				t.Errorf("LowConfidence = %v, want %v", vol.LowConfidence, tt.wantLowConf)
			}
			if math.Abs(vol.StdDev-tt.wantStdDev) > 1e-9 {
				t.Errorf("StdDev = %v, want %v", vol.StdDev, tt.wantStdDev)
			}
			if math.Abs(vol.RangePct-tt.wantRangePct) > 1e-9 {
				t.Errorf("RangePct = %v, want %v", vol.RangePct, tt.wantRangePct)
			}
			if vol.RangePct < 0 || vol.StdDev < 0 {
				t.Errorf("negative dispersion metrics: %+v", vol)
			}
		})
	}
}

func TestAnalyzeVolatility_RangeZeroOnlyWhenConstant(t *testing.T) {
	varied := AnalyzeVolatility(generateSeries(100, 100.5, 100, 100))
	if varied.RangePct <= 0 {
		t.Errorf("RangePct = %v for varied series, want > 0", varied.RangePct)
	}
}
