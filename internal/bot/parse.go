package bot

import (
	"fmt"
	"strings"
	"time"

	"IVSentinel/internal/model"
)

// expirationLayouts are tried in order. Year-less layouts get the year
// inferred: this year, or next if the date already passed.
var expirationLayouts = []struct {
	layout  string
	hasYear bool
}{
	{"2006-01-02", true},
	{"01/02/2006", true},
	{"01/02/06", true},
	{"Jan 2 2006", true},
	{"Jan 2", false},
	{"01/02", false},
	{"1/2", false},
}

// ParseExpiration parses a user-entered expiration date.
func ParseExpiration(s string, now time.Time, loc *time.Location) (model.TradingDate, error) {
	s = strings.TrimSpace(s)
	for _, l := range expirationLayouts {
		t, err := time.ParseInLocation(l.layout, s, loc)
		if err != nil {
			continue
		}
		d := model.NewTradingDate(t)
		if !l.hasYear {
			today := model.NewTradingDate(now.In(loc))
			d.Year = today.Year
			if d.Before(today) {
				d.Year++
			}
		}
		return d, nil
	}
	return model.TradingDate{}, fmt.Errorf("unrecognized expiration date %q", s)
}
