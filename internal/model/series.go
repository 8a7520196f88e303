package model

import "time"

// StrikeRequirement lists the strikes whose IV is needed to interpolate one
// trading date's price range. Strikes are sorted ascending.
type StrikeRequirement struct {
	Date    TradingDate
	Strikes []float64
}

// PlanEntry is one deduplicated (date, strike) fetch.
type PlanEntry struct {
	Date   TradingDate
	Strike float64
}

// PlanMetrics reports the fetch reduction achieved by date-scoped strike
// selection versus the naive full cross-product. Informational only.
type PlanMetrics struct {
	NaiveCount  int
	ActualCount int
}

// Savings returns 1 - actual/naive, the fraction of fetches avoided.
func (m PlanMetrics) Savings() float64 {
	if m.NaiveCount == 0 {
		return 0
	}
	return 1 - float64(m.ActualCount)/float64(m.NaiveCount)
}

// StrikeQuote is one IV observation for a strike. A contract can exist in a
// bucket without a usable quote; that absence is HasIV=false, never a zero IV.
type StrikeQuote struct {
	Strike float64
	Time   time.Time
	IV     float64
	HasIV  bool
}

// AlignedPoint pairs a candle with the IV interpolated at its close price.
// HasIV is false when no bracketing quotes existed for the candle's bucket.
type AlignedPoint struct {
	Candle Candle
	IV     float64
	HasIV  bool
}
