package series

import (
	"errors"
	"testing"
	"time"

	"IVSentinel/internal/model"
)

var ny = func() *time.Location {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		panic(err)
	}
	return loc
}()

func dayCandles(day time.Time, lows, highs []float64) []model.Candle {
	candles := make([]model.Candle, len(lows))
	for i := range lows {
		candles[i] = model.Candle{
			Time:  day.Add(time.Duration(i) * time.Minute),
			Open:  lows[i],
			High:  highs[i],
			Low:   lows[i],
			Close: (lows[i] + highs[i]) / 2,
		}
	}
	return candles
}

func TestSelectStrikes_TwoDayFetchReduction(t *testing.T) {
	universe := []float64{350, 360, 370, 380, 390, 400, 410}

	day1 := time.Date(2025, 10, 20, 9, 30, 0, 0, ny)
	day2 := time.Date(2025, 10, 21, 9, 30, 0, 0, ny)
	candles := append(
		dayCandles(day1, []float64{370, 372}, []float64{378, 380}),
		dayCandles(day2, []float64{390, 392}, []float64{398, 400})...,
	)

	reqs, err := SelectStrikes(candles, universe, 3, ny)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reqs) != 2 {
		t.Fatalf("expected 2 requirements, got %d", len(reqs))
	}

	for _, req := range reqs {
		for _, s := range req.Strikes {
			if s == 350 {
				t.Errorf("strike 350 must not appear in any requirement (date %s)", req.Date)
			}
		}
	}

	day1Strikes := reqs[0].Strikes
	for _, want := range []float64{360, 370, 380} {
		if !containsStrike(day1Strikes, want) {
			t.Errorf("day 1 missing strike %.0f, got %v", want, day1Strikes)
		}
	}
	for _, forbidden := range []float64{400, 410} {
		if containsStrike(day1Strikes, forbidden) {
			t.Errorf("day 1 must not include strike %.0f, got %v", forbidden, day1Strikes)
		}
	}

	day2Strikes := reqs[1].Strikes
	for _, want := range []float64{390, 400} {
		if !containsStrike(day2Strikes, want) {
			t.Errorf("day 2 missing strike %.0f, got %v", want, day2Strikes)
		}
	}
	for _, forbidden := range []float64{350, 360} {
		if containsStrike(day2Strikes, forbidden) {
			t.Errorf("day 2 must not include strike %.0f, got %v", forbidden, day2Strikes)
		}
	}
}

func TestSelectStrikes_EveryDateRepresented(t *testing.T) {
	universe := []float64{100, 105, 110}
	candles := []model.Candle{
		{Time: time.Date(2025, 10, 20, 10, 0, 0, 0, ny), Low: 104, High: 106, Close: 105},
		{Time: time.Date(2025, 10, 22, 10, 0, 0, 0, ny), Low: 104, High: 106, Close: 105},
	}
	reqs, err := SelectStrikes(candles, universe, 3, ny)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reqs) != 2 {
		t.Fatalf("a date with at least one candle must not be omitted: got %d requirements", len(reqs))
	}
}

func TestSelectStrikes_SpotBelowAllStrikes(t *testing.T) {
	universe := []float64{400, 410, 420}
	candles := dayCandles(time.Date(2025, 10, 20, 9, 30, 0, 0, ny), []float64{350}, []float64{355})

	reqs, err := SelectStrikes(candles, universe, 3, ny)
	if err != nil {
		t.Fatalf("fewer strikes on one side must not error: %v", err)
	}
	got := reqs[0].Strikes
	if len(got) != 3 {
		t.Fatalf("expected all 3 available strikes, got %v", got)
	}
}

func TestSelectStrikes_WholeRangeBreadth(t *testing.T) {
	universe := []float64{100, 110, 120, 130}
	candles := dayCandles(time.Date(2025, 10, 20, 9, 30, 0, 0, ny), []float64{112}, []float64{118})

	reqs, err := SelectStrikes(candles, universe, len(universe), ny)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reqs[0].Strikes) != len(universe) {
		t.Errorf("breadth=len(universe) should select the whole chain, got %v", reqs[0].Strikes)
	}
}

func TestSelectStrikes_Errors(t *testing.T) {
	if _, err := SelectStrikes(nil, []float64{100}, 3, ny); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
	candles := dayCandles(time.Date(2025, 10, 20, 9, 30, 0, 0, ny), []float64{100}, []float64{101})
	if _, err := SelectStrikes(candles, nil, 3, ny); !errors.Is(err, ErrNoStrikes) {
		t.Errorf("expected ErrNoStrikes, got %v", err)
	}
}

func containsStrike(strikes []float64, want float64) bool {
	for _, s := range strikes {
		if s == want {
			return true
		}
	}
	return false
}
