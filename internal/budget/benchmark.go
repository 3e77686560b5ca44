package budget

// BenchmarkBand is one (category, band) → unit-cost-per-sqft entry.
type BenchmarkBand struct {
	CategoryID CategoryID `json:"category_id"`
	Band       HeatBand   `json:"band"`
	UnitCost   float64    `json:"unit_cost"`
}

// TargetRange is the acceptable percentage-of-total band for a category,
// expressed as decimal fractions (0.25 = 25%).
type TargetRange struct {
	CategoryID CategoryID `json:"category_id"`
	MinPct     float64    `json:"min_pct"`
	MaxPct     float64    `json:"max_pct"`
}

// BenchmarkSet is a named collection of per-category per-band unit costs
// plus target allocation ranges. Long-lived configuration data; mutated only
// through explicit edits or calibration.
type BenchmarkSet struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Currency     string          `json:"currency"`
	Bands        []BenchmarkBand `json:"bands"`
	TargetRanges []TargetRange   `json:"target_ranges"`
}

// UnitCost returns the unit cost for a (category, band) pair and whether the
// benchmark carries an entry for it.
func (b *BenchmarkSet) UnitCost(cat CategoryID, band HeatBand) (float64, bool) {
	for _, bb := range b.Bands {
		if bb.CategoryID == cat && bb.Band == band {
			return bb.UnitCost, true
		}
	}
	return 0, false
}

// Selection is one category's scenario input: a chosen heat band plus an
// optional unit-cost override substituted for the benchmark's value.
type Selection struct {
	CategoryID    CategoryID `json:"category_id"`
	Band          HeatBand   `json:"band"`
	OverridePsqft *float64   `json:"override_psqft,omitempty"`
}

// DefaultBenchmark returns the seed benchmark set used to bootstrap an empty
// library. Unit costs are USD per square foot for early-stage residential work.
func DefaultBenchmark() *BenchmarkSet {
	type triple struct {
		cat              CategoryID
		low, medium, high float64
	}
	costs := []triple{
		{CategorySite, 30, 50, 85},
		{CategorySubstructure, 160, 250, 380},
		{CategoryShell, 330, 500, 760},
		{CategoryInteriors, 280, 450, 700},
		{CategoryFFE, 150, 250, 420},
		{CategoryMEP, 180, 270, 410},
		{CategoryExterior, 110, 180, 290},
	}

	bands := make([]BenchmarkBand, 0, len(costs)*3)
	for _, c := range costs {
		bands = append(bands,
			BenchmarkBand{CategoryID: c.cat, Band: BandLow, UnitCost: c.low},
			BenchmarkBand{CategoryID: c.cat, Band: BandMedium, UnitCost: c.medium},
			BenchmarkBand{CategoryID: c.cat, Band: BandHigh, UnitCost: c.high},
		)
	}

	b := &BenchmarkSet{
		Name:     "N4S Residential Baseline",
		Currency: "USD",
		Bands:    bands,
	}
	b.TargetRanges = DeriveTargetRanges(b, DefaultDeriveOptions())
	return b
}
