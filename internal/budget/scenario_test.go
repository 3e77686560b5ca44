package budget

import (
	"errors"
	"math"
	"testing"
)

func allMediumSelections() []Selection {
	var sels []Selection
	for _, c := range Categories() {
		sels = append(sels, Selection{CategoryID: c.ID, Band: BandMedium})
	}
	return sels
}

func TestComputeScenarioResultConcrete(t *testing.T) {
	// Mediums sum to 1950; with area 10,000 the total is 19,500,000.
	b := benchmarkWithMediums([]float64{50, 250, 500, 450, 250, 270, 180})

	res, err := ComputeScenarioResult(ScenarioInput{
		AreaSqft:   10000,
		Benchmark:  b,
		Selections: allMediumSelections(),
	})
	if err != nil {
		t.Fatalf("compute failed: %v", err)
	}

	if res.TotalCost != 19500000 {
		t.Errorf("total cost: got %v, want 19500000", res.TotalCost)
	}
	if math.Abs(res.TotalPsqft-1950) > 1e-9 {
		t.Errorf("total psqft: got %v, want 1950", res.TotalPsqft)
	}
	if res.Currency != "USD" {
		t.Errorf("currency: got %s, want USD", res.Currency)
	}
	if len(res.Categories) != CategoryCount {
		t.Fatalf("expected %d category results, got %d", CategoryCount, len(res.Categories))
	}

	// With all-Medium selections, each pct equals the implied Medium share.
	shares := ImpliedMediumShares(b)
	for i, cr := range res.Categories {
		if cr.CategoryID != Categories()[i].ID {
			t.Errorf("position %d: expected %s, got %s", i, Categories()[i].ID, cr.CategoryID)
		}
		if math.Abs(cr.PctOfTotal-shares[cr.CategoryID]) > 1e-12 {
			t.Errorf("category %s: pct %v != implied share %v", cr.CategoryID, cr.PctOfTotal, shares[cr.CategoryID])
		}
		if cr.RangeStatus != StatusOK {
			t.Errorf("category %s: all-Medium scenario should sit inside derived ranges, got %s", cr.CategoryID, cr.RangeStatus)
		}
	}
}

func TestComputeScenarioResultCostConservation(t *testing.T) {
	b := DefaultBenchmark()
	sels := []Selection{
		{CategoryID: CategorySite, Band: BandLow},
		{CategoryID: CategorySubstructure, Band: BandHigh},
		{CategoryID: CategoryShell, Band: BandMedium},
		{CategoryID: CategoryInteriors, Band: BandHigh, OverridePsqft: float64Ptr(612.5)},
		{CategoryID: CategoryFFE, Band: BandLow},
		{CategoryID: CategoryMEP, Band: BandMedium},
		{CategoryID: CategoryExterior, Band: BandHigh},
	}

	res, err := ComputeScenarioResult(ScenarioInput{AreaSqft: 3200, Benchmark: b, Selections: sels})
	if err != nil {
		t.Fatalf("compute failed: %v", err)
	}

	var costSum, pctSum float64
	for _, cr := range res.Categories {
		costSum += cr.Cost
		pctSum += cr.PctOfTotal
	}
	if costSum != res.TotalCost {
		t.Errorf("category costs sum to %v, total is %v", costSum, res.TotalCost)
	}
	if math.Abs(pctSum-1.0) > 1e-9 {
		t.Errorf("percentages sum to %v, want 1.0", pctSum)
	}
}

func TestComputeScenarioResultAreaIndependentShares(t *testing.T) {
	b := DefaultBenchmark()
	sels := allMediumSelections()

	small, err := ComputeScenarioResult(ScenarioInput{AreaSqft: 1800, Benchmark: b, Selections: sels})
	if err != nil {
		t.Fatalf("compute failed: %v", err)
	}
	large, err := ComputeScenarioResult(ScenarioInput{AreaSqft: 3600, Benchmark: b, Selections: sels})
	if err != nil {
		t.Fatalf("compute failed: %v", err)
	}

	for i := range small.Categories {
		if small.Categories[i].PctOfTotal != large.Categories[i].PctOfTotal {
			t.Errorf("category %s: pct changed with area: %v vs %v",
				small.Categories[i].CategoryID,
				small.Categories[i].PctOfTotal, large.Categories[i].PctOfTotal)
		}
	}
}

func TestComputeScenarioResultOverride(t *testing.T) {
	b := benchmarkWithMediums([]float64{50, 250, 500, 450, 250, 270, 180})
	sels := allMediumSelections()
	sels[2].OverridePsqft = float64Ptr(1000) // shell

	res, err := ComputeScenarioResult(ScenarioInput{AreaSqft: 100, Benchmark: b, Selections: sels})
	if err != nil {
		t.Fatalf("compute failed: %v", err)
	}
	shell := res.Categories[2]
	if shell.UnitCostUsed != 1000 {
		t.Errorf("override not applied: unit cost %v", shell.UnitCostUsed)
	}
	if shell.Cost != 100000 {
		t.Errorf("shell cost: got %v, want 100000", shell.Cost)
	}
}

func TestComputeScenarioResultInvalidArea(t *testing.T) {
	b := DefaultBenchmark()
	sels := allMediumSelections()

	for _, area := range []float64{0, -10, math.NaN(), math.Inf(1)} {
		res, err := ComputeScenarioResult(ScenarioInput{AreaSqft: area, Benchmark: b, Selections: sels})
		if !errors.Is(err, ErrInvalidArea) {
			t.Errorf("area %v: expected ErrInvalidArea, got %v", area, err)
		}
		if res != nil {
			t.Errorf("area %v: expected nil result", area)
		}
	}
}

func TestComputeScenarioResultMissingSelection(t *testing.T) {
	b := DefaultBenchmark()
	sels := allMediumSelections()[:CategoryCount-1] // drop exterior

	_, err := ComputeScenarioResult(ScenarioInput{AreaSqft: 1000, Benchmark: b, Selections: sels})
	if !errors.Is(err, ErrMissingSelection) {
		t.Errorf("expected ErrMissingSelection, got %v", err)
	}
}

func TestComputeScenarioResultMissingBand(t *testing.T) {
	// Medium-only benchmark: selecting High has no band entry.
	b := benchmarkWithMediums([]float64{50, 250, 500, 450, 250, 270, 180})
	sels := allMediumSelections()
	sels[0].Band = BandHigh

	_, err := ComputeScenarioResult(ScenarioInput{AreaSqft: 1000, Benchmark: b, Selections: sels})
	if !errors.Is(err, ErrMissingBand) {
		t.Errorf("expected ErrMissingBand, got %v", err)
	}
}

func TestComputeScenarioResultNonPositiveTotal(t *testing.T) {
	// Every band entry exists but prices to zero: no individual validation
	// rule trips, only the degenerate-total check.
	b := benchmarkWithMediums([]float64{0, 0, 0, 0, 0, 0, 0})

	_, err := ComputeScenarioResult(ScenarioInput{AreaSqft: 1000, Benchmark: b, Selections: allMediumSelections()})
	if !errors.Is(err, ErrNonPositiveTotal) {
		t.Errorf("expected ErrNonPositiveTotal, got %v", err)
	}
}

func TestComputeScenarioResultDeterministic(t *testing.T) {
	b := DefaultBenchmark()
	in := ScenarioInput{AreaSqft: 2750, Benchmark: b, Selections: allMediumSelections()}

	first, err := ComputeScenarioResult(in)
	if err != nil {
		t.Fatalf("compute failed: %v", err)
	}
	second, err := ComputeScenarioResult(in)
	if err != nil {
		t.Fatalf("compute failed: %v", err)
	}

	if first.TotalCost != second.TotalCost || first.TotalPsqft != second.TotalPsqft {
		t.Error("repeated computation produced different totals")
	}
	for i := range first.Categories {
		if first.Categories[i] != second.Categories[i] {
			t.Errorf("category %d differs between runs", i)
		}
	}
}

func TestDefaultBenchmarkComplete(t *testing.T) {
	b := DefaultBenchmark()
	if len(b.Bands) != CategoryCount*3 {
		t.Errorf("expected %d bands, got %d", CategoryCount*3, len(b.Bands))
	}
	for _, c := range Categories() {
		for _, band := range []HeatBand{BandLow, BandMedium, BandHigh} {
			if _, ok := b.UnitCost(c.ID, band); !ok {
				t.Errorf("missing band %s/%s", c.ID, band)
			}
		}
	}
	if len(b.TargetRanges) != CategoryCount {
		t.Errorf("expected %d target ranges, got %d", CategoryCount, len(b.TargetRanges))
	}
}
