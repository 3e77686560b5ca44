package budget

import (
	"errors"
	"fmt"
)

// The four hard-fail conditions of scenario pricing. Anything to do with
// target ranges is repaired instead, never surfaced as an error.
var (
	ErrInvalidArea      = errors.New("area must be a finite positive number")
	ErrMissingSelection = errors.New("missing selection for category")
	ErrMissingBand      = errors.New("missing benchmark band")
	ErrNonPositiveTotal = errors.New("scenario total cost is non-positive")
)

// ScenarioInput bundles everything a scenario computation needs.
type ScenarioInput struct {
	AreaSqft   float64
	Benchmark  *BenchmarkSet
	Selections []Selection
}

// CategoryResult is the computed output for one category.
type CategoryResult struct {
	CategoryID   CategoryID  `json:"category_id"`
	Label        string      `json:"label"`
	Band         HeatBand    `json:"band"`
	UnitCostUsed float64     `json:"unit_cost_used"`
	Cost         float64     `json:"cost"`
	PctOfTotal   float64     `json:"pct_of_total"`
	TargetMinPct float64     `json:"target_min_pct"`
	TargetMaxPct float64     `json:"target_max_pct"`
	RangeStatus  RangeStatus `json:"range_status"`
}

// ScenarioResult is the aggregate priced output. It is a pure function of its
// inputs; any persisted copy is a point-in-time snapshot, never authoritative.
type ScenarioResult struct {
	AreaSqft   float64          `json:"area_sqft"`
	Currency   string           `json:"currency"`
	TotalCost  float64          `json:"total_cost"`
	TotalPsqft float64          `json:"total_psqft"`
	Categories []CategoryResult `json:"categories"`
}

// ComputeScenarioResult prices a scenario: per-category costs, percentage of
// total, and range classification, in fixed category order.
//
// Pricing inputs are validated hard: invalid area, a missing selection, a
// missing (category, band) benchmark entry, or a non-positive total all fail.
// Target ranges are resolved via EnsureCompleteTargetRanges and therefore
// never cause a failure.
func ComputeScenarioResult(in ScenarioInput) (*ScenarioResult, error) {
	if !finite(in.AreaSqft) || in.AreaSqft <= 0 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidArea, in.AreaSqft)
	}

	selected := make(map[CategoryID]Selection, len(in.Selections))
	for _, sel := range in.Selections {
		selected[sel.CategoryID] = sel
	}

	ranges := make(map[CategoryID]TargetRange, CategoryCount)
	for _, tr := range EnsureCompleteTargetRanges(in.Benchmark) {
		ranges[tr.CategoryID] = tr
	}

	cats := Categories()

	type priced struct {
		cat      Category
		band     HeatBand
		unitCost float64
		cost     float64
	}
	costs := make([]priced, 0, len(cats))

	var totalCost float64
	for _, c := range cats {
		sel, ok := selected[c.ID]
		if !ok {
			return nil, fmt.Errorf("%w %s", ErrMissingSelection, c.ID)
		}

		var unitCost float64
		if sel.OverridePsqft != nil {
			// Overrides are used as-is; validating them is the caller's job.
			unitCost = *sel.OverridePsqft
		} else {
			v, ok := in.Benchmark.UnitCost(c.ID, sel.Band)
			if !ok {
				return nil, fmt.Errorf("%w: category %s band %s", ErrMissingBand, c.ID, sel.Band)
			}
			unitCost = v
		}

		cost := in.AreaSqft * unitCost
		costs = append(costs, priced{cat: c, band: sel.Band, unitCost: unitCost, cost: cost})
		totalCost += cost
	}

	if !finite(totalCost) || totalCost <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrNonPositiveTotal, totalCost)
	}

	results := make([]CategoryResult, 0, len(costs))
	for _, p := range costs {
		pct := p.cost / totalCost
		tr := ranges[p.cat.ID]
		lo, hi := NormalizeRange(tr.MinPct, tr.MaxPct)

		results = append(results, CategoryResult{
			CategoryID:   p.cat.ID,
			Label:        p.cat.Label,
			Band:         p.band,
			UnitCostUsed: p.unitCost,
			Cost:         p.cost,
			PctOfTotal:   pct,
			TargetMinPct: lo,
			TargetMaxPct: hi,
			RangeStatus:  Classify(pct, lo, hi),
		})
	}

	return &ScenarioResult{
		AreaSqft:   in.AreaSqft,
		Currency:   in.Benchmark.Currency,
		TotalCost:  totalCost,
		TotalPsqft: totalCost / in.AreaSqft,
		Categories: results,
	}, nil
}
