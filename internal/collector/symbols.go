package collector

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"IVSentinel/internal/model"
)

// Contract holds the components of an OCC-style option symbol, e.g.
// AAPL251017C00150000: ticker, YYMMDD expiration, C/P, strike x1000.
type Contract struct {
	Symbol     string
	Underlying string
	Expiration model.TradingDate
	Type       model.OptionType
	Strike     float64
}

// ParseOptionSymbol splits an OCC-style option symbol into its components,
// working backwards from the end: 8 strike digits, 1 type char, 6 date digits.
func ParseOptionSymbol(symbol string) (Contract, error) {
	if len(symbol) < 16 {
		return Contract{}, fmt.Errorf("invalid option symbol %q", symbol)
	}
	strikeStr := symbol[len(symbol)-8:]
	typeChar := symbol[len(symbol)-9]
	dateStr := symbol[len(symbol)-15 : len(symbol)-9]
	ticker := symbol[:len(symbol)-15]

	strikeInt, err := strconv.Atoi(strikeStr)
	if err != nil {
		return Contract{}, fmt.Errorf("invalid strike in %q: %w", symbol, err)
	}

	var typ model.OptionType
	switch typeChar {
	case 'C':
		typ = model.Call
	case 'P':
		typ = model.Put
	default:
		return Contract{}, fmt.Errorf("invalid option type %q in %q", typeChar, symbol)
	}

	year, err1 := strconv.Atoi(dateStr[0:2])
	month, err2 := strconv.Atoi(dateStr[2:4])
	day, err3 := strconv.Atoi(dateStr[4:6])
	if err1 != nil || err2 != nil || err3 != nil || month < 1 || month > 12 || day < 1 || day > 31 {
		return Contract{}, fmt.Errorf("invalid expiration in %q", symbol)
	}

	return Contract{
		Symbol:     symbol,
		Underlying: ticker,
		Expiration: model.TradingDate{Year: 2000 + year, Month: time.Month(month), Day: day},
		Type:       typ,
		Strike:     float64(strikeInt) / 1000.0,
	}, nil
}

// FilterChain narrows a raw contract list to one expiration and type and
// returns a strike-to-symbol map. Unparsable symbols are skipped.
func FilterChain(contracts []string, expiration model.TradingDate, typ model.OptionType) map[float64]string {
	strikeMap := make(map[float64]string)
	for _, raw := range contracts {
		c, err := ParseOptionSymbol(raw)
		if err != nil {
			continue
		}
		if c.Expiration == expiration && c.Type == typ {
			strikeMap[c.Strike] = c.Symbol
		}
	}
	return strikeMap
}

// StrikeUniverse returns the sorted strikes of a filtered chain.
func StrikeUniverse(strikeMap map[float64]string) []float64 {
	strikes := make([]float64, 0, len(strikeMap))
	for s := range strikeMap {
		strikes = append(strikes, s)
	}
	sort.Float64s(strikes)
	return strikes
}

// Expirations returns the sorted distinct expiration dates present in a raw
// contract list for the given option type.
func Expirations(contracts []string, typ model.OptionType) []model.TradingDate {
	seen := make(map[model.TradingDate]struct{})
	for _, raw := range contracts {
		c, err := ParseOptionSymbol(raw)
		if err != nil || c.Type != typ {
			continue
		}
		seen[c.Expiration] = struct{}{}
	}
	out := make([]model.TradingDate, 0, len(seen))
	for d := range seen {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}
