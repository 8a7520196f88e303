package render

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"IVSentinel/internal/model"
)

var (
	upColor   = color.RGBA{R: 38, G: 166, B: 91, A: 255}
	downColor = color.RGBA{R: 214, G: 69, B: 65, A: 255}
)

// candlesticks draws OHLC candles at integer X positions. Indexing by
// position instead of timestamp keeps overnight and weekend gaps out of the
// chart.
type candlesticks struct {
	candles []model.Candle
	width   vg.Length // body width
}

func newCandlesticks(candles []model.Candle) *candlesticks {
	return &candlesticks{candles: candles, width: vg.Points(3)}
}

func (c *candlesticks) Plot(ca draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&ca)
	half := c.width / 2

	for i, k := range c.candles {
		x := trX(float64(i))
		fill := upColor
		if k.Close < k.Open {
			fill = downColor
		}
		wick := draw.LineStyle{Color: fill, Width: vg.Points(0.5)}
		ca.StrokeLine2(wick, x, trY(k.Low), x, trY(k.High))

		yLo := trY(math.Min(k.Open, k.Close))
		yHi := trY(math.Max(k.Open, k.Close))
		if yHi-yLo < vg.Points(0.5) {
			// Doji: keep the body visible.
			yHi = yLo + vg.Points(0.5)
		}
		ca.FillPolygon(fill, []vg.Point{
			{X: x - half, Y: yLo},
			{X: x + half, Y: yLo},
			{X: x + half, Y: yHi},
			{X: x - half, Y: yHi},
		})
	}
}

func (c *candlesticks) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, xmax = -1, float64(len(c.candles))
	ymin, ymax = math.Inf(1), math.Inf(-1)
	for _, k := range c.candles {
		ymin = math.Min(ymin, k.Low)
		ymax = math.Max(ymax, k.High)
	}
	if pad := (ymax - ymin) * 0.05; pad > 0 {
		ymin -= pad
		ymax += pad
	}
	return xmin, xmax, ymin, ymax
}

// vline draws a dashed vertical marker across the panel at index x.
type vline struct {
	x float64
}

func (v vline) Plot(ca draw.Canvas, plt *plot.Plot) {
	trX, _ := plt.Transforms(&ca)
	sty := draw.LineStyle{
		Color:  color.RGBA{R: 120, G: 120, B: 120, A: 255},
		Width:  vg.Points(1),
		Dashes: []vg.Length{vg.Points(4), vg.Points(3)},
	}
	x := trX(v.x)
	ca.StrokeLine2(sty, x, ca.Min.Y, x, ca.Max.Y)
}
