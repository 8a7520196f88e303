package bot

import (
	"errors"
	"fmt"
	"strings"

	"IVSentinel/internal/chart"
	"IVSentinel/internal/series"
)

// ResultContent builds the message text posted above a chart image.
func ResultContent(res *chart.Result) string {
	var b strings.Builder

	exp := res.Expiration.String()
	if res.ExpirationNote != "" {
		exp = fmt.Sprintf("%s (%s)", exp, res.ExpirationNote)
	}
	fmt.Fprintf(&b, "**%s** %ss exp %s · %dd · %s\n",
		res.Symbol, res.OptionType, exp, res.Days, res.Mode)

	m := res.Metrics
	fmt.Fprintf(&b, "IV fetches: %d of %d naive (%.0f%% saved)",
		m.ActualCount, m.NaiveCount, m.Savings()*100)

	if len(res.Earnings) > 0 {
		dates := make([]string, len(res.Earnings))
		for i, d := range res.Earnings {
			dates[i] = d.String()
		}
		fmt.Fprintf(&b, "\nEarnings in range: %s", strings.Join(dates, ", "))
	}
	return b.String()
}

// ErrorContent translates pipeline errors into a user-facing reply.
func ErrorContent(symbol string, err error) string {
	switch {
	case errors.Is(err, series.ErrEmptyInput):
		return fmt.Sprintf("No price data found for **%s**.", symbol)
	case errors.Is(err, series.ErrNoStrikes):
		return fmt.Sprintf("No matching option contracts found for **%s**.", symbol)
	case errors.Is(err, series.ErrNoData):
		return fmt.Sprintf("No IV data available for **%s** on that expiration.", symbol)
	default:
		return fmt.Sprintf("Chart for **%s** failed: %v", symbol, err)
	}
}
