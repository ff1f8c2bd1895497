package models

import "errors"

var (
	// ErrInsufficientData means the series is too short for the requested
	// computation.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrEmptyComparisonSet means no valid symbols remained to compare.
	ErrEmptyComparisonSet = errors.New("empty comparison set")

	// ErrNotFound means the upstream API does not know the symbol.
	ErrNotFound = errors.New("symbol not found")

	// ErrUpstreamUnavailable means the upstream API call failed.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)
