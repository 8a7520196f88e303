package bot

import (
	"testing"
	"time"

	"IVSentinel/internal/model"
)

var ny, _ = time.LoadLocation("America/New_York")

func TestParseExpirationLayouts(t *testing.T) {
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, ny)
	want := model.TradingDate{Year: 2025, Month: time.October, Day: 17}

	for _, input := range []string{
		"2025-10-17",
		"10/17/2025",
		"10/17/25",
		"Oct 17 2025",
		"Oct 17",
		"10/17",
		" 2025-10-17 ",
	} {
		got, err := ParseExpiration(input, now, ny)
		if err != nil {
			t.Errorf("ParseExpiration(%q): %v", input, err)
			continue
		}
		if got != want {
			t.Errorf("ParseExpiration(%q) = %s, want %s", input, got, want)
		}
	}
}

func TestParseExpirationYearRollover(t *testing.T) {
	// A year-less date already behind us means next year.
	now := time.Date(2025, 11, 1, 12, 0, 0, 0, ny)
	got, err := ParseExpiration("10/17", now, ny)
	if err != nil {
		t.Fatalf("ParseExpiration: %v", err)
	}
	if got.Year != 2026 {
		t.Errorf("year = %d, want 2026", got.Year)
	}
}

func TestParseExpirationInvalid(t *testing.T) {
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, ny)
	for _, input := range []string{"", "not a date", "17-10-2025"} {
		if _, err := ParseExpiration(input, now, ny); err == nil {
			t.Errorf("ParseExpiration(%q): expected error", input)
		}
	}
}
