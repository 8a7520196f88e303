package collector

import "IVSentinel/internal/model"

// Fetcher defines the interface for fetching market and option data.
type Fetcher interface {
	// FetchCandles returns OHLC candles for the underlying covering the last
	// daysBack trading days at the given granularity.
	FetchCandles(symbol string, size model.CandleSize, daysBack int) ([]model.Candle, error)
	// FetchOptionChain returns all listed option contract symbols for the
	// underlying, across expirations and types.
	FetchOptionChain(symbol string) ([]string, error)
	// FetchIntradayIV returns 1-minute IV quotes for one contract on one
	// date. Returning fewer records than the day has minutes (or none at
	// all) is a valid outcome, not an error.
	FetchIntradayIV(contractID string, date model.TradingDate) ([]model.StrikeQuote, error)
	// FetchHistoricIV returns end-of-day IV quotes for one contract across
	// all dates the source has.
	FetchHistoricIV(contractID string) ([]model.StrikeQuote, error)
	// FetchEarnings returns reported and upcoming earnings dates.
	FetchEarnings(symbol string) ([]model.TradingDate, error)
	Name() string
}
