package api

import (
	"fmt"

	"github.com/linczyc-MLX/N4S-VisualMatrix/internal/budget"
)

// Location and typology multipliers are a thin scaling heuristic layered on
// top of the benchmark before the pricing engine runs. They never live inside
// the core computation.

var locationFactors = map[string]float64{
	"coastal":  1.25,
	"urban":    1.15,
	"suburban": 1.00,
	"rural":    0.90,
}

var typologyFactors = map[string]float64{
	"single_family": 1.00,
	"townhouse":     0.95,
	"multi_family":  0.92,
	"estate":        1.30,
}

// adjustBenchmark returns a copy of the benchmark with every band unit cost
// scaled by the location and typology factors. Empty keys mean "no scaling";
// unknown keys are caller errors.
func adjustBenchmark(b *budget.BenchmarkSet, location, typology string) (*budget.BenchmarkSet, error) {
	factor := 1.0
	if location != "" {
		f, ok := locationFactors[location]
		if !ok {
			return nil, fmt.Errorf("unknown location %q", location)
		}
		factor *= f
	}
	if typology != "" {
		f, ok := typologyFactors[typology]
		if !ok {
			return nil, fmt.Errorf("unknown typology %q", typology)
		}
		factor *= f
	}
	if factor == 1.0 {
		return b, nil
	}

	scaled := *b
	scaled.Bands = make([]budget.BenchmarkBand, len(b.Bands))
	for i, bb := range b.Bands {
		bb.UnitCost *= factor
		scaled.Bands[i] = bb
	}
	return &scaled, nil
}
