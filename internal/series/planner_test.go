package series

import (
	"reflect"
	"testing"

	"IVSentinel/internal/model"
)

func d(day int) model.TradingDate {
	return model.TradingDate{Year: 2025, Month: 10, Day: day}
}

func TestBuildPlan_Dedup(t *testing.T) {
	reqs := []model.StrikeRequirement{
		{Date: d(20), Strikes: []float64{360, 370, 380}},
		{Date: d(20), Strikes: []float64{370, 380}}, // duplicate pairs
		{Date: d(21), Strikes: []float64{390, 400}},
	}
	entries, metrics := BuildPlan(reqs)

	if len(entries) != 5 {
		t.Fatalf("expected 5 deduplicated entries, got %d", len(entries))
	}
	// 5 distinct strikes x 2 distinct dates
	if metrics.NaiveCount != 10 {
		t.Errorf("expected naive count 10, got %d", metrics.NaiveCount)
	}
	if metrics.ActualCount != 5 {
		t.Errorf("expected actual count 5, got %d", metrics.ActualCount)
	}
	if got := metrics.Savings(); got != 0.5 {
		t.Errorf("expected savings 0.5, got %v", got)
	}
	if metrics.ActualCount > metrics.NaiveCount {
		t.Error("plan must never exceed the naive cross-product")
	}
}

func TestBuildPlan_NaiveEqualsActualOnlyWhenFullCross(t *testing.T) {
	full := []model.StrikeRequirement{
		{Date: d(20), Strikes: []float64{100, 110}},
		{Date: d(21), Strikes: []float64{100, 110}},
	}
	_, metrics := BuildPlan(full)
	if metrics.ActualCount != metrics.NaiveCount {
		t.Errorf("every date needs every strike: actual %d should equal naive %d", metrics.ActualCount, metrics.NaiveCount)
	}

	partial := []model.StrikeRequirement{
		{Date: d(20), Strikes: []float64{100}},
		{Date: d(21), Strikes: []float64{100, 110}},
	}
	_, metrics = BuildPlan(partial)
	if metrics.ActualCount >= metrics.NaiveCount {
		t.Errorf("partial requirements must beat the naive count: actual %d, naive %d", metrics.ActualCount, metrics.NaiveCount)
	}
}

func TestBuildPlan_Reproducible(t *testing.T) {
	reqs := []model.StrikeRequirement{
		{Date: d(20), Strikes: []float64{360, 370}},
		{Date: d(21), Strikes: []float64{370, 380}},
	}
	e1, m1 := BuildPlan(reqs)
	e2, m2 := BuildPlan(reqs)
	if !reflect.DeepEqual(e1, e2) || m1 != m2 {
		t.Error("BuildPlan must be a pure function of its input")
	}
}

func TestPlanStrikes(t *testing.T) {
	entries := []model.PlanEntry{
		{Date: d(20), Strike: 380},
		{Date: d(21), Strike: 370},
		{Date: d(21), Strike: 380},
	}
	got := PlanStrikes(entries)
	want := []float64{370, 380}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}
