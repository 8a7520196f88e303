// Package chart orchestrates one chart-generation request: plan the minimal
// IV fetches for the price series, resolve the plan through the collector,
// and hand the aligned, smoothed series to the renderer.
package chart

import (
	"fmt"
	"log"
	"time"

	"IVSentinel/internal/collector"
	"IVSentinel/internal/model"
	"IVSentinel/internal/series"
)

// HistoricThresholdDays is the lookback beyond which the pipeline switches
// from 1-minute candles with intraday IV to 4-hour candles with end-of-day
// IV, to keep request counts and point density sane.
const HistoricThresholdDays = 7

// Request describes one chart to generate.
type Request struct {
	Symbol     string
	Expiration model.TradingDate
	OptionType model.OptionType
	Days       int
}

// Result is the renderable output of a request.
type Result struct {
	Symbol         string
	OptionType     model.OptionType
	Days           int
	Expiration     model.TradingDate // resolved to the nearest listed expiration
	ExpirationNote string            // non-empty when resolution moved the date
	Mode           series.Mode
	Points         []model.AlignedPoint
	Metrics        model.PlanMetrics
	Earnings       []model.TradingDate // earnings dates inside the charted range
}

// Generator runs the chart pipeline against a fetcher.
type Generator struct {
	Fetcher       collector.Fetcher
	Loc           *time.Location
	Breadth       int           // strikes per range bound
	SmoothWindow  time.Duration // intraday trailing window
	SmoothBuckets int           // historic trailing bucket count
}

// NewGenerator creates a Generator with the given tunables.
func NewGenerator(fetcher collector.Fetcher, loc *time.Location, breadth int, smoothWindow time.Duration, smoothBuckets int) *Generator {
	if breadth <= 0 {
		breadth = series.DefaultBreadth
	}
	if smoothWindow <= 0 {
		smoothWindow = 15 * time.Minute
	}
	if smoothBuckets <= 0 {
		smoothBuckets = 3
	}
	return &Generator{
		Fetcher:       fetcher,
		Loc:           loc,
		Breadth:       breadth,
		SmoothWindow:  smoothWindow,
		SmoothBuckets: smoothBuckets,
	}
}

// Generate runs the full pipeline for one request. Core errors
// (series.ErrEmptyInput, series.ErrNoStrikes, series.ErrNoData) pass through
// wrapped, so callers can translate them into a "no data" reply.
func (g *Generator) Generate(req Request) (*Result, error) {
	mode := series.Intraday
	size := model.CandleOneMinute
	if req.Days > HistoricThresholdDays {
		mode = series.Historic
		size = model.CandleFourHour
	}
	log.Printf("[INFO] generating %s %s chart: exp %s, %d days, %s mode",
		req.Symbol, req.OptionType, req.Expiration, req.Days, mode)

	candles, err := g.Fetcher.FetchCandles(req.Symbol, size, req.Days)
	if err != nil {
		return nil, fmt.Errorf("price data for %s: %w", req.Symbol, err)
	}
	if len(candles) == 0 {
		return nil, fmt.Errorf("no price data for %s: %w", req.Symbol, series.ErrEmptyInput)
	}

	chain, err := g.Fetcher.FetchOptionChain(req.Symbol)
	if err != nil {
		return nil, fmt.Errorf("option chain for %s: %w", req.Symbol, err)
	}

	resolved, note, err := resolveExpiration(chain, req.OptionType, req.Expiration, g.Loc)
	if err != nil {
		return nil, err
	}

	strikeMap := collector.FilterChain(chain, resolved, req.OptionType)
	universe := collector.StrikeUniverse(strikeMap)
	if len(universe) == 0 {
		return nil, fmt.Errorf("no %s contracts for expiration %s: %w", req.OptionType, resolved, series.ErrNoStrikes)
	}

	reqs, err := series.SelectStrikes(candles, universe, g.Breadth, g.Loc)
	if err != nil {
		return nil, err
	}
	entries, metrics := series.BuildPlan(reqs)
	log.Printf("[INFO] fetch plan: %d of %d naive (date,strike) pairs, %.1f%% saved",
		metrics.ActualCount, metrics.NaiveCount, metrics.Savings()*100)

	quotes := g.resolvePlan(entries, strikeMap, mode)
	byBucket := series.BucketQuotes(quotes, mode, g.Loc)

	points, err := series.Align(candles, byBucket, mode, g.Loc)
	if err != nil {
		return nil, err
	}
	if mode == series.Historic {
		points = series.SmoothCount(points, g.SmoothBuckets, g.Loc)
	} else {
		points = series.Smooth(points, g.SmoothWindow, g.Loc)
	}

	return &Result{
		Symbol:         req.Symbol,
		OptionType:     req.OptionType,
		Days:           req.Days,
		Expiration:     resolved,
		ExpirationNote: note,
		Mode:           mode,
		Points:         points,
		Metrics:        metrics,
		Earnings:       g.earningsInRange(req.Symbol, candles),
	}, nil
}

// resolvePlan fetches quotes for every plan entry. Individual fetch failures
// degrade to absent quotes; they are logged, never fatal.
func (g *Generator) resolvePlan(entries []model.PlanEntry, strikeMap map[float64]string, mode series.Mode) []model.StrikeQuote {
	var quotes []model.StrikeQuote
	if mode == series.Historic {
		// The historic endpoint returns all dates at once: one fetch per
		// distinct strike.
		for _, strike := range series.PlanStrikes(entries) {
			qs, err := g.Fetcher.FetchHistoricIV(strikeMap[strike])
			if err != nil {
				log.Printf("[WARN] historic IV for strike %.2f: %v", strike, err)
				continue
			}
			quotes = append(quotes, qs...)
		}
		return quotes
	}
	for _, e := range entries {
		qs, err := g.Fetcher.FetchIntradayIV(strikeMap[e.Strike], e.Date)
		if err != nil {
			log.Printf("[WARN] intraday IV for strike %.2f on %s: %v", e.Strike, e.Date, err)
			continue
		}
		quotes = append(quotes, qs...)
	}
	return quotes
}

// earningsInRange returns earnings dates that fall within the candle range.
// Best-effort: a failed earnings fetch never fails the chart.
func (g *Generator) earningsInRange(symbol string, candles []model.Candle) []model.TradingDate {
	all, err := g.Fetcher.FetchEarnings(symbol)
	if err != nil {
		log.Printf("[WARN] earnings for %s: %v", symbol, err)
		return nil
	}
	first := series.DateOf(candles[0].Time, g.Loc)
	last := series.DateOf(candles[len(candles)-1].Time, g.Loc)
	var inRange []model.TradingDate
	for _, d := range all {
		if !d.Before(first) && !last.Before(d) {
			inRange = append(inRange, d)
		}
	}
	return inRange
}

// resolveExpiration snaps the requested expiration to the nearest listed one
// for the option type, attaching a human-readable note when it moved.
func resolveExpiration(chain []string, typ model.OptionType, requested model.TradingDate, loc *time.Location) (model.TradingDate, string, error) {
	expirations := collector.Expirations(chain, typ)
	if len(expirations) == 0 {
		return model.TradingDate{}, "", fmt.Errorf("no listed %s expirations: %w", typ, series.ErrNoStrikes)
	}

	target := requested.Time(loc)
	best := expirations[0]
	bestDiff := absDays(expirations[0].Time(loc).Sub(target))
	for _, e := range expirations[1:] {
		if diff := absDays(e.Time(loc).Sub(target)); diff < bestDiff {
			best, bestDiff = e, diff
		}
	}

	note := ""
	if best != requested {
		note = fmt.Sprintf("closest to requested %s", requested)
		log.Printf("[INFO] expiration %s not listed, using nearest %s", requested, best)
	}
	return best, note, nil
}

// AdjacentExpiration returns the listed expiration one step before (step=-1)
// or after (step=+1) current. Used by the chart's prev/next buttons.
func (g *Generator) AdjacentExpiration(symbol string, typ model.OptionType, current model.TradingDate, step int) (model.TradingDate, error) {
	chain, err := g.Fetcher.FetchOptionChain(symbol)
	if err != nil {
		return model.TradingDate{}, fmt.Errorf("option chain for %s: %w", symbol, err)
	}
	expirations := collector.Expirations(chain, typ)
	if len(expirations) == 0 {
		return model.TradingDate{}, fmt.Errorf("no listed %s expirations: %w", typ, series.ErrNoStrikes)
	}

	idx := 0
	for i, e := range expirations {
		if e == current {
			idx = i
			break
		}
		if e.Before(current) {
			idx = i
		}
	}
	next := idx + step
	if next < 0 || next >= len(expirations) {
		return model.TradingDate{}, fmt.Errorf("no expiration %s of %s", directionWord(step), current)
	}
	return expirations[next], nil
}

func directionWord(step int) string {
	if step < 0 {
		return "before"
	}
	return "after"
}

func absDays(d time.Duration) float64 {
	days := d.Hours() / 24
	if days < 0 {
		return -days
	}
	return days
}
