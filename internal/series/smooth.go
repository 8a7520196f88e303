package series

import (
	"time"

	"IVSentinel/internal/model"
)

// Smooth applies a trailing rolling average over the given time window to the
// IV values of an aligned series. The window never reaches across a trading
// date boundary, so the first buckets after an overnight gap are not dragged
// toward the previous session's level.
//
// Points with absent IV contribute nothing to any average and stay absent;
// absence propagates, it is never treated as zero. Timestamps, order, and
// length are unchanged.
func Smooth(points []model.AlignedPoint, window time.Duration, loc *time.Location) []model.AlignedPoint {
	return smooth(points, loc, func(i, j int) bool {
		return points[i].Candle.Time.Sub(points[j].Candle.Time) < window
	})
}

// SmoothCount is Smooth with a count window: each point averages over itself
// and the n-1 preceding buckets of the same trading date. Used in historic
// mode, where a duration window is meaningless across 4-hour buckets.
func SmoothCount(points []model.AlignedPoint, n int, loc *time.Location) []model.AlignedPoint {
	if n <= 0 {
		n = 1
	}
	return smooth(points, loc, func(i, j int) bool {
		return i-j < n
	})
}

// smooth runs the trailing average with the given window predicate, which
// reports whether point j is inside point i's window. Session bounding is
// applied here so both window kinds share it.
func smooth(points []model.AlignedPoint, loc *time.Location, inWindow func(i, j int) bool) []model.AlignedPoint {
	out := make([]model.AlignedPoint, len(points))
	for i, p := range points {
		out[i] = p
		if !p.HasIV {
			continue
		}
		date := DateOf(p.Candle.Time, loc)
		sum, count := 0.0, 0
		for j := i; j >= 0 && inWindow(i, j); j-- {
			if DateOf(points[j].Candle.Time, loc) != date {
				break
			}
			if !points[j].HasIV {
				continue
			}
			sum += points[j].IV
			count++
		}
		// count >= 1: the point itself is in its own window.
		out[i].IV = sum / float64(count)
	}
	return out
}
