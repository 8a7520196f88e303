// Package render turns a generated chart result into a PNG: price candles on
// the top panel, smoothed IV on the bottom, sharing an index-based time axis.
package render

import (
	"bytes"
	"fmt"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"IVSentinel/internal/chart"
	"IVSentinel/internal/model"
	"IVSentinel/internal/series"
)

const (
	chartWidth  = 9 * vg.Inch
	chartHeight = 6 * vg.Inch
)

// Chart renders a result as a PNG image.
func Chart(res *chart.Result) ([]byte, error) {
	if len(res.Points) == 0 {
		return nil, fmt.Errorf("render %s: %w", res.Symbol, series.ErrEmptyInput)
	}

	times := make([]time.Time, len(res.Points))
	for i, p := range res.Points {
		times[i] = p.Candle.Time
	}
	ticker := indexTicker{times: times, mode: res.Mode}

	price := plot.New()
	price.Title.Text = fmt.Sprintf("%s %ss exp %s", res.Symbol, res.OptionType, res.Expiration)
	price.Y.Label.Text = "Price"
	price.X.Tick.Marker = ticker
	price.Add(plotter.NewGrid())

	price.Add(newCandlesticks(candlesOf(res)))
	for _, x := range earningsIndexes(res, times) {
		price.Add(vline{x: x})
	}

	iv := plot.New()
	iv.Y.Label.Text = "IV %"
	iv.X.Tick.Marker = ticker
	iv.Add(plotter.NewGrid())

	line, err := ivLine(res)
	if err != nil {
		return nil, err
	}
	iv.Add(line)
	for _, x := range earningsIndexes(res, times) {
		iv.Add(vline{x: x})
	}

	// Pin both panels to the same X range so the columns line up.
	iv.X.Min, iv.X.Max = -1, float64(len(res.Points))
	price.X.Min, price.X.Max = iv.X.Min, iv.X.Max

	return composite(price, iv)
}

// ErrorCard renders a plain card carrying an error message, so failures still
// produce an attachable image.
func ErrorCard(msg string) ([]byte, error) {
	p := plot.New()
	p.Title.Text = msg
	p.HideAxes()
	return composite(p)
}

// composite stacks the plots vertically into one PNG.
func composite(plots ...*plot.Plot) ([]byte, error) {
	rows := make([][]*plot.Plot, len(plots))
	for i, p := range plots {
		rows[i] = []*plot.Plot{p}
	}

	img := vgimg.New(chartWidth, chartHeight)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: len(plots),
		Cols: 1,
		PadY: vg.Millimeter,
	}
	canvases := plot.Align(rows, tiles, dc)
	for i, p := range plots {
		p.Draw(canvases[i][0])
	}

	var buf bytes.Buffer
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encode chart png: %w", err)
	}
	return buf.Bytes(), nil
}

// ivLine builds the smoothed IV line, in percent, skipping absent points.
func ivLine(res *chart.Result) (*plotter.Line, error) {
	var xys plotter.XYs
	for i, p := range res.Points {
		if !p.HasIV {
			continue
		}
		xys = append(xys, plotter.XY{X: float64(i), Y: p.IV * 100})
	}
	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, fmt.Errorf("iv line: %w", err)
	}
	line.Width = vg.Points(1.5)
	return line, nil
}

func candlesOf(res *chart.Result) []model.Candle {
	out := make([]model.Candle, len(res.Points))
	for i, p := range res.Points {
		out[i] = p.Candle
	}
	return out
}

// earningsIndexes maps earnings dates onto the first candle index of that
// trading date, dropping dates with no candle.
func earningsIndexes(res *chart.Result, times []time.Time) []float64 {
	if len(res.Earnings) == 0 {
		return nil
	}
	want := make(map[model.TradingDate]bool, len(res.Earnings))
	for _, d := range res.Earnings {
		want[d] = true
	}
	var xs []float64
	seen := make(map[model.TradingDate]bool)
	for i, t := range times {
		d := series.DateOf(t, t.Location())
		if want[d] && !seen[d] {
			seen[d] = true
			xs = append(xs, float64(i))
		}
	}
	return xs
}
