package bot

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"IVSentinel/internal/chart"
	"IVSentinel/internal/model"
	"IVSentinel/internal/series"
)

func TestResultContent(t *testing.T) {
	res := &chart.Result{
		Symbol:     "AAPL",
		OptionType: model.Call,
		Days:       1,
		Expiration: model.TradingDate{Year: 2025, Month: time.October, Day: 17},
		Mode:       series.Intraday,
		Metrics:    model.PlanMetrics{NaiveCount: 12, ActualCount: 6},
		Earnings: []model.TradingDate{
			{Year: 2025, Month: time.October, Day: 30},
		},
	}

	got := ResultContent(res)
	for _, want := range []string{
		"**AAPL** calls exp 2025-10-17",
		"6 of 12 naive (50% saved)",
		"Earnings in range: 2025-10-30",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("content missing %q:\n%s", want, got)
		}
	}
}

func TestResultContentExpirationNote(t *testing.T) {
	res := &chart.Result{
		Symbol:         "AAPL",
		OptionType:     model.Put,
		Days:           30,
		Expiration:     model.TradingDate{Year: 2025, Month: time.October, Day: 17},
		ExpirationNote: "closest to requested 2025-10-16",
		Mode:           series.Historic,
	}
	got := ResultContent(res)
	if !strings.Contains(got, "(closest to requested 2025-10-16)") {
		t.Errorf("content missing note:\n%s", got)
	}
	if !strings.Contains(got, "historic") {
		t.Errorf("content missing mode:\n%s", got)
	}
}

func TestErrorContent(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{series.ErrEmptyInput, "No price data"},
		{fmt.Errorf("chain: %w", series.ErrNoStrikes), "No matching option contracts"},
		{series.ErrNoData, "No IV data"},
		{fmt.Errorf("boom"), "boom"},
	}
	for _, c := range cases {
		got := ErrorContent("AAPL", c.err)
		if !strings.Contains(got, c.want) {
			t.Errorf("ErrorContent(%v) = %q, want substring %q", c.err, got, c.want)
		}
	}
}
