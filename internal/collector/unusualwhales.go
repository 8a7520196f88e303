package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"IVSentinel/internal/model"
)

// UWFetcher implements Fetcher using the Unusual Whales REST API.
type UWFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
	Limiter RateLimiter
}

// NewUWFetcher creates a fetcher with optional proxy support. The limiter is
// injected so request pacing policy stays outside this package's callers.
func NewUWFetcher(baseURL, apiKey, proxyURL string, limiter RateLimiter) *UWFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if limiter == nil {
		limiter = NopLimiter{}
	}
	return &UWFetcher{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		Limiter: limiter,
	}
}

func (f *UWFetcher) Name() string { return "unusualwhales" }

// uwCandle is the candle shape from the OHLC endpoint. Numeric fields arrive
// inconsistently as numbers or strings, so they are decoded loosely.
type uwCandle struct {
	StartTime  string      `json:"start_time"`
	Timestamp  string      `json:"timestamp"`
	Open       interface{} `json:"open"`
	High       interface{} `json:"high"`
	Low        interface{} `json:"low"`
	Close      interface{} `json:"close"`
	Volume     interface{} `json:"volume"`
	MarketTime string      `json:"market_time"`
}

func (f *UWFetcher) FetchCandles(symbol string, size model.CandleSize, daysBack int) ([]model.Candle, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -(daysBack + 3)) // weekend buffer
	endpoint := fmt.Sprintf("%s/api/stock/%s/ohlc/%s?start_date=%s&end_date=%s",
		f.BaseURL, symbol, size, start.Format("2006-01-02"), end.Format("2006-01-02"))

	var payload struct {
		Data []uwCandle `json:"data"`
	}
	if err := f.get(endpoint, &payload); err != nil {
		return nil, fmt.Errorf("fetch candles: %w", err)
	}

	cutoff := end.AddDate(0, 0, -daysBack)
	candles := make([]model.Candle, 0, len(payload.Data))
	for _, c := range payload.Data {
		ts, err := parseTimestamp(c.StartTime, c.Timestamp)
		if err != nil {
			continue
		}
		if ts.Before(cutoff) {
			continue
		}
		candles = append(candles, model.Candle{
			Time:       ts,
			Open:       toFloat(c.Open),
			High:       toFloat(c.High),
			Low:        toFloat(c.Low),
			Close:      toFloat(c.Close),
			Volume:     toFloat(c.Volume),
			MarketTime: c.MarketTime,
		})
	}
	sort.Slice(candles, func(i, j int) bool { return candles[i].Time.Before(candles[j].Time) })
	log.Printf("[INFO] fetched %d %s candles for %s (last %d days)", len(candles), size, symbol, daysBack)
	return candles, nil
}

func (f *UWFetcher) FetchOptionChain(symbol string) ([]string, error) {
	endpoint := fmt.Sprintf("%s/api/stock/%s/option-chains", f.BaseURL, symbol)
	var payload struct {
		Data []string `json:"data"`
	}
	if err := f.get(endpoint, &payload); err != nil {
		return nil, fmt.Errorf("fetch option chain: %w", err)
	}
	log.Printf("[INFO] fetched %d option contracts for %s", len(payload.Data), symbol)
	return payload.Data, nil
}

// uwQuote is one intraday or historic IV record. Some payloads carry iv,
// others only iv_high/iv_low; historic rows use implied_volatility and a
// plain date instead of a timestamp.
type uwQuote struct {
	StartTime         string      `json:"start_time"`
	Timestamp         string      `json:"timestamp"`
	Date              string      `json:"date"`
	IV                interface{} `json:"iv"`
	IVHigh            interface{} `json:"iv_high"`
	IVLow             interface{} `json:"iv_low"`
	ImpliedVolatility interface{} `json:"implied_volatility"`
}

func (f *UWFetcher) FetchIntradayIV(contractID string, date model.TradingDate) ([]model.StrikeQuote, error) {
	contract, err := ParseOptionSymbol(contractID)
	if err != nil {
		return nil, err
	}
	endpoint := fmt.Sprintf("%s/api/option-contract/%s/intraday?date=%s", f.BaseURL, contractID, date)
	var payload struct {
		Data []uwQuote `json:"data"`
	}
	if err := f.get(endpoint, &payload); err != nil {
		return nil, fmt.Errorf("fetch intraday IV: %w", err)
	}

	quotes := make([]model.StrikeQuote, 0, len(payload.Data))
	for _, q := range payload.Data {
		ts, err := parseTimestamp(q.StartTime, q.Timestamp)
		if err != nil {
			continue
		}
		iv, ok := firstFloat(q.IV, q.IVHigh, q.IVLow)
		quotes = append(quotes, model.StrikeQuote{
			Strike: contract.Strike,
			Time:   ts,
			IV:     iv,
			HasIV:  ok,
		})
	}
	return quotes, nil
}

func (f *UWFetcher) FetchHistoricIV(contractID string) ([]model.StrikeQuote, error) {
	contract, err := ParseOptionSymbol(contractID)
	if err != nil {
		return nil, err
	}
	endpoint := fmt.Sprintf("%s/api/option-contract/%s/historic", f.BaseURL, contractID)
	var payload struct {
		Data []uwQuote `json:"data"`
	}
	if err := f.get(endpoint, &payload); err != nil {
		return nil, fmt.Errorf("fetch historic IV: %w", err)
	}

	quotes := make([]model.StrikeQuote, 0, len(payload.Data))
	for _, q := range payload.Data {
		d, err := model.ParseTradingDate(q.Date)
		if err != nil {
			continue
		}
		iv, ok := firstFloat(q.ImpliedVolatility)
		quotes = append(quotes, model.StrikeQuote{
			Strike: contract.Strike,
			Time:   d.Time(time.UTC),
			IV:     iv,
			HasIV:  ok,
		})
	}
	return quotes, nil
}

func (f *UWFetcher) FetchEarnings(symbol string) ([]model.TradingDate, error) {
	endpoint := fmt.Sprintf("%s/api/earnings/%s", f.BaseURL, symbol)
	var payload struct {
		Data []struct {
			ReportDate string `json:"report_date"`
		} `json:"data"`
	}
	if err := f.get(endpoint, &payload); err != nil {
		return nil, fmt.Errorf("fetch earnings: %w", err)
	}
	dates := make([]model.TradingDate, 0, len(payload.Data))
	for _, e := range payload.Data {
		if d, err := model.ParseTradingDate(e.ReportDate); err == nil {
			dates = append(dates, d)
		}
	}
	return dates, nil
}

// get performs a rate-limited authenticated GET and decodes the JSON body.
func (f *UWFetcher) get(endpoint string, out interface{}) error {
	f.Limiter.Wait()

	req, err := http.NewRequest("GET", endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+f.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := f.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API status %d: %s", resp.StatusCode, string(body))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// parseTimestamp parses the first non-empty RFC3339 timestamp.
func parseTimestamp(candidates ...string) (time.Time, error) {
	for _, s := range candidates {
		if s == "" {
			continue
		}
		if ts, err := time.Parse(time.RFC3339, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("no parsable timestamp in %v", candidates)
}

// firstFloat returns the first candidate that converts to a float.
func firstFloat(candidates ...interface{}) (float64, bool) {
	for _, v := range candidates {
		if v == nil {
			continue
		}
		switch n := v.(type) {
		case float64:
			return n, true
		case string:
			if parsed, err := strconv.ParseFloat(n, 64); err == nil {
				return parsed, true
			}
		case json.Number:
			if parsed, err := n.Float64(); err == nil {
				return parsed, true
			}
		}
	}
	return 0, false
}

// toFloat converts loosely-typed JSON numbers, defaulting to 0.
func toFloat(v interface{}) float64 {
	f, _ := firstFloat(v)
	return f
}
