package series

import (
	"time"

	"IVSentinel/internal/model"
)

// Mode selects how candles and quotes are bucketed for alignment.
type Mode int

const (
	// Intraday aligns 1-minute candles to quotes sharing the exact timestamp.
	Intraday Mode = iota
	// Historic aligns 4-hour candles to end-of-day quotes sharing the
	// trading date.
	Historic
)

func (m Mode) String() string {
	if m == Historic {
		return "historic"
	}
	return "intraday"
}

// Bucket is the alignment key matching a price sample to its IV quotes: the
// candle's exact timestamp in intraday mode, the exchange-local midnight of
// its trading date in historic mode. Stored as Unix seconds so it is a
// well-behaved map key.
type Bucket int64

// BucketOf returns the bucket containing t under mode m.
func (m Mode) BucketOf(t time.Time, loc *time.Location) Bucket {
	if m == Historic {
		return Bucket(DateOf(t, loc).Time(loc).Unix())
	}
	return Bucket(t.Unix())
}

// BucketQuotes groups quotes by their bucket under mode m.
func BucketQuotes(quotes []model.StrikeQuote, m Mode, loc *time.Location) map[Bucket][]model.StrikeQuote {
	out := make(map[Bucket][]model.StrikeQuote)
	for _, q := range quotes {
		b := m.BucketOf(q.Time, loc)
		out[b] = append(out[b], q)
	}
	return out
}

// Align merges a candle series with bucketed per-strike quotes into one
// time-ordered series of aligned points, interpolating IV at each candle's
// close. Candle order and count are preserved exactly: no candle is dropped,
// even when its bucket has no usable quotes.
//
// Returns ErrEmptyInput when candles is empty, and ErrNoData when not a
// single point received a usable IV — the request produced nothing chartable.
func Align(candles []model.Candle, byBucket map[Bucket][]model.StrikeQuote, m Mode, loc *time.Location) ([]model.AlignedPoint, error) {
	if len(candles) == 0 {
		return nil, ErrEmptyInput
	}

	points := make([]model.AlignedPoint, len(candles))
	usable := 0
	for i, c := range candles {
		p := model.AlignedPoint{Candle: c}
		if quotes := byBucket[m.BucketOf(c.Time, loc)]; len(quotes) > 0 {
			if iv, ok := InterpolateIV(c.Close, quotes); ok {
				p.IV = iv
				p.HasIV = true
				usable++
			}
		}
		points[i] = p
	}

	if usable == 0 {
		return nil, ErrNoData
	}
	return points, nil
}
