package model

import (
	"fmt"
	"time"
)

// Candle represents a single OHLC bar for the underlying.
type Candle struct {
	Time       time.Time
	Open       float64
	High       float64
	Low        float64
	Close      float64
	Volume     float64
	MarketTime string // "r" for regular session, as reported by the data source
}

// CandleSize is the sampling interval of a candle series.
type CandleSize string

const (
	CandleOneMinute CandleSize = "1m" // intraday mode
	CandleFourHour  CandleSize = "4h" // historic mode
)

// OptionType is the side of an option contract.
type OptionType string

const (
	Call OptionType = "call"
	Put  OptionType = "put"
)

// Opposite returns the other option type.
func (o OptionType) Opposite() OptionType {
	if o == Call {
		return Put
	}
	return Call
}

// TradingDate is a calendar date in the exchange's local timezone, used as a
// grouping key. Any date that appears in fetched data counts as a trading
// date; no external holiday calendar is consulted.
type TradingDate struct {
	Year  int
	Month time.Month
	Day   int
}

// NewTradingDate truncates t to its calendar date in t's own location.
func NewTradingDate(t time.Time) TradingDate {
	y, m, d := t.Date()
	return TradingDate{Year: y, Month: m, Day: d}
}

// ParseTradingDate parses a YYYY-MM-DD string.
func ParseTradingDate(s string) (TradingDate, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return TradingDate{}, fmt.Errorf("parse trading date %q: %w", s, err)
	}
	return NewTradingDate(t), nil
}

// String formats the date as YYYY-MM-DD.
func (d TradingDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Time returns midnight of the date in the given location.
func (d TradingDate) Time(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// Before reports whether d is earlier than o.
func (d TradingDate) Before(o TradingDate) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

// IsZero reports whether d is the zero date.
func (d TradingDate) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}
