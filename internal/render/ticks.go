package render

import (
	"time"

	"gonum.org/v1/plot"

	"IVSentinel/internal/series"
)

// indexTicker labels integer X positions with the candle timestamps they
// stand for: clock time intraday, calendar date in historic mode.
type indexTicker struct {
	times []time.Time
	mode  series.Mode
}

func (t indexTicker) Ticks(min, max float64) []plot.Tick {
	n := len(t.times)
	if n == 0 {
		return nil
	}
	const want = 6
	step := n / want
	if step < 1 {
		step = 1
	}
	layout := "15:04"
	if t.mode == series.Historic {
		layout = "Jan 02"
	}

	var ticks []plot.Tick
	for i := 0; i < n; i += step {
		v := float64(i)
		if v < min || v > max {
			continue
		}
		ticks = append(ticks, plot.Tick{Value: v, Label: t.times[i].Format(layout)})
	}
	return ticks
}
