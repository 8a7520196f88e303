package series

import (
	"sort"
	"time"

	"IVSentinel/internal/model"
)

// DefaultBreadth is the number of strikes selected around each range bound
// when the caller does not supply a breadth. It is a tunable, not a derived
// value: the right setting depends on the underlying's strike spacing.
const DefaultBreadth = 3

// SelectStrikes computes, per trading date present in candles, the minimal
// set of strikes whose IV is needed to interpolate that date's price range
// [min(Low), max(High)]. For each bound it picks the breadth closest strikes
// from the sorted universe; the two sets are unioned and deduplicated, which
// collapses naturally when the range is narrow.
//
// Strikes are always drawn from universe, never invented. If one side of a
// bound has fewer than breadth strikes, whatever exists is selected.
func SelectStrikes(candles []model.Candle, universe []float64, breadth int, loc *time.Location) ([]model.StrikeRequirement, error) {
	if len(candles) == 0 {
		return nil, ErrEmptyInput
	}
	if len(universe) == 0 {
		return nil, ErrNoStrikes
	}
	if breadth <= 0 {
		breadth = DefaultBreadth
	}

	sorted := make([]float64, len(universe))
	copy(sorted, universe)
	sort.Float64s(sorted)

	dates, groups := GroupByDate(candles, loc)

	reqs := make([]model.StrikeRequirement, 0, len(dates))
	for _, date := range dates {
		group := groups[date]
		low, high := dayRange(group)

		picked := make(map[float64]struct{})
		for _, s := range nearestStrikes(low, sorted, breadth) {
			picked[s] = struct{}{}
		}
		for _, s := range nearestStrikes(high, sorted, breadth) {
			picked[s] = struct{}{}
		}

		strikes := make([]float64, 0, len(picked))
		for s := range picked {
			strikes = append(strikes, s)
		}
		sort.Float64s(strikes)
		reqs = append(reqs, model.StrikeRequirement{Date: date, Strikes: strikes})
	}
	return reqs, nil
}

// dayRange returns the [min(Low), max(High)] trading range of one date's candles.
func dayRange(candles []model.Candle) (low, high float64) {
	low, high = candles[0].Low, candles[0].High
	for _, c := range candles[1:] {
		if c.Low < low {
			low = c.Low
		}
		if c.High > high {
			high = c.High
		}
	}
	return low, high
}

// nearestStrikes returns up to n strikes from the sorted slice, nearest to
// target first by the bracketing pair, then widening outward by absolute
// distance with ties going to the lower strike. The result is sorted.
func nearestStrikes(target float64, sorted []float64, n int) []float64 {
	if n > len(sorted) {
		n = len(sorted)
	}
	// hi is the first strike > target, lo the last strike <= target.
	hi := sort.SearchFloat64s(sorted, target)
	if hi < len(sorted) && sorted[hi] == target {
		hi++
	}
	lo := hi - 1

	out := make([]float64, 0, n)
	for len(out) < n {
		switch {
		case lo >= 0 && hi < len(sorted):
			if target-sorted[lo] <= sorted[hi]-target {
				out = append(out, sorted[lo])
				lo--
			} else {
				out = append(out, sorted[hi])
				hi++
			}
		case lo >= 0:
			out = append(out, sorted[lo])
			lo--
		default:
			out = append(out, sorted[hi])
			hi++
		}
	}
	sort.Float64s(out)
	return out
}
