package render

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"IVSentinel/internal/chart"
	"IVSentinel/internal/model"
	"IVSentinel/internal/series"
)

var ny, _ = time.LoadLocation("America/New_York")

func sampleResult(n int) *chart.Result {
	start := time.Date(2025, 10, 6, 9, 30, 0, 0, ny)
	points := make([]model.AlignedPoint, n)
	for i := range points {
		price := 150 + float64(i%5)
		points[i] = model.AlignedPoint{
			Candle: model.Candle{
				Time:  start.Add(time.Duration(i) * time.Minute),
				Open:  price,
				High:  price + 1,
				Low:   price - 1,
				Close: price + 0.5,
			},
			IV:    0.4 + 0.01*float64(i%3),
			HasIV: i%7 != 0, // a few absent points
		}
	}
	return &chart.Result{
		Symbol:     "AAPL",
		OptionType: model.Call,
		Days:       1,
		Expiration: model.TradingDate{Year: 2025, Month: time.October, Day: 17},
		Mode:       series.Intraday,
		Points:     points,
		Earnings:   []model.TradingDate{{Year: 2025, Month: time.October, Day: 6}},
	}
}

func TestChartProducesPNG(t *testing.T) {
	data, err := Chart(sampleResult(60))
	if err != nil {
		t.Fatalf("Chart: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a valid PNG: %v", err)
	}
	if img.Bounds().Dx() == 0 || img.Bounds().Dy() == 0 {
		t.Error("decoded image is empty")
	}
}

func TestChartEmptyResult(t *testing.T) {
	res := sampleResult(0)
	res.Points = nil
	if _, err := Chart(res); err == nil {
		t.Error("expected error for empty result")
	}
}

func TestErrorCard(t *testing.T) {
	data, err := ErrorCard("no data for XYZ")
	if err != nil {
		t.Fatalf("ErrorCard: %v", err)
	}
	if _, err := png.Decode(bytes.NewReader(data)); err != nil {
		t.Fatalf("error card is not a valid PNG: %v", err)
	}
}

func TestIndexTickerLayouts(t *testing.T) {
	start := time.Date(2025, 10, 6, 9, 30, 0, 0, ny)
	times := []time.Time{start, start.Add(time.Minute), start.Add(2 * time.Minute)}

	intraday := indexTicker{times: times, mode: series.Intraday}
	ticks := intraday.Ticks(-1, 3)
	if len(ticks) == 0 {
		t.Fatal("no intraday ticks")
	}
	if ticks[0].Label != "09:30" {
		t.Errorf("intraday label = %q, want 09:30", ticks[0].Label)
	}

	historic := indexTicker{times: times, mode: series.Historic}
	ticks = historic.Ticks(-1, 3)
	if ticks[0].Label != "Oct 06" {
		t.Errorf("historic label = %q, want Oct 06", ticks[0].Label)
	}
}
