package collector

import (
	"fmt"

	"IVSentinel/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Candles  []model.Candle
	Chain    []string
	Intraday map[string][]model.StrikeQuote // keyed by contractID|date
	Historic map[string][]model.StrikeQuote // keyed by contractID
	Earnings []model.TradingDate
	Err      error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchCandles(_ string, _ model.CandleSize, _ int) ([]model.Candle, error) {
	return m.Candles, m.Err
}

func (m *MockFetcher) FetchOptionChain(_ string) ([]string, error) {
	return m.Chain, m.Err
}

func (m *MockFetcher) FetchIntradayIV(contractID string, date model.TradingDate) ([]model.StrikeQuote, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Intraday[IntradayKey(contractID, date)], nil
}

func (m *MockFetcher) FetchHistoricIV(contractID string) ([]model.StrikeQuote, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Historic[contractID], nil
}

func (m *MockFetcher) FetchEarnings(_ string) ([]model.TradingDate, error) {
	return m.Earnings, m.Err
}

// IntradayKey builds the map key used by MockFetcher.Intraday.
func IntradayKey(contractID string, date model.TradingDate) string {
	return fmt.Sprintf("%s|%s", contractID, date)
}
