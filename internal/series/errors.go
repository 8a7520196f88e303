// Package series implements the chart-series core: date-scoped strike
// selection, fetch planning, candle/quote alignment with moving-ATM linear
// interpolation, and session-bounded smoothing. Every function is a pure
// transformation over immutable input; nothing here performs I/O.
package series

import "errors"

// Sentinel errors. All are terminal for the current chart request; retry
// policy for upstream fetch failures belongs to the collector.
var (
	// ErrEmptyInput means no candles were supplied.
	ErrEmptyInput = errors.New("series: no candles supplied")
	// ErrNoStrikes means the option chain has no listed strikes.
	ErrNoStrikes = errors.New("series: option chain has no listed strikes")
	// ErrNoData means alignment produced no usable IV anywhere. Callers
	// surface this to the user as "no data available".
	ErrNoData = errors.New("series: no usable IV in aligned series")
	// ErrDegenerateRange means a date's trading range collapsed in a way the
	// selector could not bracket.
	ErrDegenerateRange = errors.New("series: degenerate trading range")
)
