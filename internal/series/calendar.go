package series

import (
	"time"

	"IVSentinel/internal/model"
)

// DateOf returns the exchange-local trading date containing t.
func DateOf(t time.Time, loc *time.Location) model.TradingDate {
	return model.NewTradingDate(t.In(loc))
}

// GroupByDate splits candles into per-trading-date groups. The returned date
// slice preserves first-appearance order of the (time-ordered) input, so the
// groups come back in trading order. Candles are not copied or mutated.
func GroupByDate(candles []model.Candle, loc *time.Location) ([]model.TradingDate, map[model.TradingDate][]model.Candle) {
	dates := make([]model.TradingDate, 0)
	groups := make(map[model.TradingDate][]model.Candle)
	for _, c := range candles {
		d := DateOf(c.Time, loc)
		if _, seen := groups[d]; !seen {
			dates = append(dates, d)
		}
		groups[d] = append(groups[d], c)
	}
	return dates, groups
}

// LookbackDates returns up to days candidate trading dates ending at now,
// oldest first. Weekends are skipped; holidays are not, since the calendar
// treats every date present in fetched data as a trading date and this list
// only bounds what gets requested.
func LookbackDates(now time.Time, days int, loc *time.Location) []model.TradingDate {
	dates := make([]model.TradingDate, 0, days)
	cur := now.In(loc)
	// Walk back with a weekend buffer, same as the lookback the fetcher uses.
	for i := 0; len(dates) < days && i < days*2+5; i++ {
		d := cur.AddDate(0, 0, -i)
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		dates = append(dates, model.NewTradingDate(d))
	}
	// Reverse into ascending order.
	for i, j := 0, len(dates)-1; i < j; i, j = i+1, j-1 {
		dates[i], dates[j] = dates[j], dates[i]
	}
	return dates
}
