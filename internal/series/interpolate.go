package series

import (
	"sort"

	"IVSentinel/internal/model"
)

// InterpolateIV returns the IV at spot, linearly interpolated between the
// bracketing strikes of the usable quotes. Quotes without IV are discarded
// first. With no usable quotes the result is absent (ok=false). With a single
// usable quote, or a spot outside the quoted strike range, the nearest
// strike's IV is returned unchanged — extrapolation is nearest-neighbor,
// never slope extension.
//
// A spot that exactly equals a usable strike returns that strike's IV with no
// interpolation arithmetic, so exact matches carry no floating-point drift.
func InterpolateIV(spot float64, quotes []model.StrikeQuote) (iv float64, ok bool) {
	usable := make([]model.StrikeQuote, 0, len(quotes))
	for _, q := range quotes {
		if q.HasIV {
			usable = append(usable, q)
		}
	}
	if len(usable) == 0 {
		return 0, false
	}
	sort.Slice(usable, func(i, j int) bool { return usable[i].Strike < usable[j].Strike })

	if spot <= usable[0].Strike {
		return usable[0].IV, true
	}
	if spot >= usable[len(usable)-1].Strike {
		return usable[len(usable)-1].IV, true
	}

	// lower = largest usable strike <= spot, upper = smallest >= spot.
	upperIdx := sort.Search(len(usable), func(i int) bool { return usable[i].Strike >= spot })
	upper := usable[upperIdx]
	if upper.Strike == spot {
		return upper.IV, true
	}
	lower := usable[upperIdx-1]
	if upper.Strike == lower.Strike {
		// Degenerate bracket; guards divide-by-zero.
		return lower.IV, true
	}

	weight := (spot - lower.Strike) / (upper.Strike - lower.Strike)
	return lower.IV + weight*(upper.IV-lower.IV), true
}
