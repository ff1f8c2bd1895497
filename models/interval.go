package models

import "fmt"

// Interval is a named lookback window over which a price series is requested.
type Interval string

const (
	IntervalD1  Interval = "d1"
	IntervalD3  Interval = "d3"
	IntervalYTD Interval = "ytd"
	IntervalM1  Interval = "m1"
	IntervalM3  Interval = "m3"
	IntervalM6  Interval = "m6"
	IntervalY1  Interval = "y1"
	IntervalY5  Interval = "y5"
)

var intervalNames = map[Interval]string{
	IntervalD1:  "1 Day",
	IntervalD3:  "3 Days",
	IntervalYTD: "Year-to-Date",
	IntervalM1:  "1 Month",
	IntervalM3:  "3 Months",
	IntervalM6:  "6 Months",
	IntervalY1:  "1 Year",
	IntervalY5:  "5 Years",
}

// Intervals lists all supported intervals, shortest lookback first.
func Intervals() []Interval {
	return []Interval{
		IntervalD1, IntervalD3, IntervalYTD,
		IntervalM1, IntervalM3, IntervalM6,
		IntervalY1, IntervalY5,
	}
}

// ParseInterval validates a raw interval string.
func ParseInterval(raw string) (Interval, error) {
	iv := Interval(raw)
	if _, ok := intervalNames[iv]; !ok {
		return "", fmt.Errorf("invalid interval %q", raw)
	}
	return iv, nil
}

func (i Interval) String() string { return string(i) }

// DisplayName returns a human-readable name for the interval.
func (i Interval) DisplayName() string {
	if name, ok := intervalNames[i]; ok {
		return name
	}
	return string(i)
}
