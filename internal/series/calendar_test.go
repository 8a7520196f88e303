package series

import (
	"testing"
	"time"

	"IVSentinel/internal/model"
)

func TestDateOf_ExchangeLocal(t *testing.T) {
	// 2025-10-21 01:30 UTC is still the evening of 10-20 in New York.
	utc := time.Date(2025, 10, 21, 1, 30, 0, 0, time.UTC)
	got := DateOf(utc, ny)
	want := model.TradingDate{Year: 2025, Month: time.October, Day: 20}
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestGroupByDate_PreservesOrder(t *testing.T) {
	day1 := time.Date(2025, 10, 20, 9, 30, 0, 0, ny)
	day2 := time.Date(2025, 10, 21, 9, 30, 0, 0, ny)
	candles := []model.Candle{
		{Time: day1, Close: 100},
		{Time: day1.Add(time.Minute), Close: 101},
		{Time: day2, Close: 102},
	}
	dates, groups := GroupByDate(candles, ny)
	if len(dates) != 2 {
		t.Fatalf("expected 2 dates, got %d", len(dates))
	}
	if !dates[0].Before(dates[1]) {
		t.Error("dates must come back in trading order")
	}
	if len(groups[dates[0]]) != 2 || len(groups[dates[1]]) != 1 {
		t.Errorf("unexpected group sizes: %d, %d", len(groups[dates[0]]), len(groups[dates[1]]))
	}
}

func TestLookbackDates(t *testing.T) {
	// Friday 2025-10-24.
	now := time.Date(2025, 10, 24, 12, 0, 0, 0, ny)
	dates := LookbackDates(now, 3, ny)
	if len(dates) != 3 {
		t.Fatalf("expected 3 dates, got %d", len(dates))
	}
	for _, d := range dates {
		if wd := d.Time(ny).Weekday(); wd == time.Saturday || wd == time.Sunday {
			t.Errorf("weekend date %s in lookback", d)
		}
	}
	last := dates[len(dates)-1]
	if last.Day != 24 {
		t.Errorf("lookback must end at now's date, got %s", last)
	}
	for i := 1; i < len(dates); i++ {
		if !dates[i-1].Before(dates[i]) {
			t.Error("dates must be ascending")
		}
	}
}
