package store

import (
	"testing"

	"github.com/google/uuid"

	"github.com/linczyc-MLX/N4S-VisualMatrix/internal/budget"
)

func TestBenchmarkSetConversion(t *testing.T) {
	id := uuid.New()
	b := &Benchmark{
		ID:       id,
		Name:     "Coastal Baseline",
		Currency: "USD",
		Bands: []budget.BenchmarkBand{
			{CategoryID: budget.CategoryShell, Band: budget.BandMedium, UnitCost: 500},
		},
		TargetRanges: []budget.TargetRange{
			{CategoryID: budget.CategoryShell, MinPct: 0.2, MaxPct: 0.3},
		},
	}

	set := b.Set()
	if set.ID != id.String() {
		t.Errorf("expected id %s, got %s", id, set.ID)
	}
	if set.Name != "Coastal Baseline" || set.Currency != "USD" {
		t.Errorf("metadata not carried over: %+v", set)
	}
	if len(set.Bands) != 1 || len(set.TargetRanges) != 1 {
		t.Errorf("bands/ranges not carried over")
	}
	if v, ok := set.UnitCost(budget.CategoryShell, budget.BandMedium); !ok || v != 500 {
		t.Errorf("unit cost lookup on converted set: got %v, %v", v, ok)
	}
}

func TestScenarioDefaults(t *testing.T) {
	sc := Scenario{}
	if sc.Result != nil {
		t.Error("expected nil result snapshot by default")
	}
	if sc.Selections != nil {
		t.Error("expected nil selections by default")
	}
}
