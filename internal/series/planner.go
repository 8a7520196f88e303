package series

import (
	"sort"

	"IVSentinel/internal/model"
)

// BuildPlan flattens strike requirements into a deduplicated (date, strike)
// fetch plan. A strike relevant on multiple dates is fetched once per date,
// not once globally, because IV is date-specific.
//
// The returned metrics compare the plan against the naive full cross-product
// of all distinct strikes and all distinct dates. They are informational
// only, and pure: the same requirements always produce the same metrics.
func BuildPlan(reqs []model.StrikeRequirement) ([]model.PlanEntry, model.PlanMetrics) {
	seen := make(map[model.PlanEntry]struct{})
	allStrikes := make(map[float64]struct{})
	allDates := make(map[model.TradingDate]struct{})

	entries := make([]model.PlanEntry, 0)
	for _, req := range reqs {
		allDates[req.Date] = struct{}{}
		for _, strike := range req.Strikes {
			allStrikes[strike] = struct{}{}
			e := model.PlanEntry{Date: req.Date, Strike: strike}
			if _, dup := seen[e]; dup {
				continue
			}
			seen[e] = struct{}{}
			entries = append(entries, e)
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Date != entries[j].Date {
			return entries[i].Date.Before(entries[j].Date)
		}
		return entries[i].Strike < entries[j].Strike
	})

	metrics := model.PlanMetrics{
		NaiveCount:  len(allStrikes) * len(allDates),
		ActualCount: len(entries),
	}
	return entries, metrics
}

// PlanStrikes returns the distinct strikes of a plan, sorted ascending. The
// historic IV endpoint returns all dates in one call, so historic mode
// fetches per strike rather than per (date, strike).
func PlanStrikes(entries []model.PlanEntry) []float64 {
	set := make(map[float64]struct{})
	for _, e := range entries {
		set[e.Strike] = struct{}{}
	}
	strikes := make([]float64, 0, len(set))
	for s := range set {
		strikes = append(strikes, s)
	}
	sort.Float64s(strikes)
	return strikes
}
