package budget

// DeriveOptions tunes target-range derivation. Zero values are not meaningful;
// use DefaultDeriveOptions and adjust from there.
type DeriveOptions struct {
	// RelativeTolerance scales the half-width with the category's own share,
	// so bigger categories get proportionally wider absolute tolerance.
	RelativeTolerance float64 `json:"relative_tolerance"`
	// MinHalfWidthAbs floors the half-width to avoid zero-width ranges.
	MinHalfWidthAbs float64 `json:"min_half_width_abs"`
	// MaxHalfWidthAbs caps the half-width to avoid near-100% ranges.
	MaxHalfWidthAbs float64 `json:"max_half_width_abs"`
}

// DefaultDeriveOptions returns the standard calibration tolerances.
func DefaultDeriveOptions() DeriveOptions {
	return DeriveOptions{
		RelativeTolerance: 0.20,
		MinHalfWidthAbs:   0.01,
		MaxHalfWidthAbs:   0.06,
	}
}

func (o DeriveOptions) sanitized() DeriveOptions {
	return DeriveOptions{
		RelativeTolerance: clamp(finiteOr(o.RelativeTolerance, 0.20), 0, 2),
		MinHalfWidthAbs:   clamp(finiteOr(o.MinHalfWidthAbs, 0.01), 0, 0.5),
		MaxHalfWidthAbs:   clamp(finiteOr(o.MaxHalfWidthAbs, 0.06), 0, 0.5),
	}
}

// representativeUnitCost resolves the cost anchor for one category: the Medium
// band if present and finite, else the mean of Low and High, else whichever of
// the two exists, else 0.
func representativeUnitCost(b *BenchmarkSet, cat CategoryID) float64 {
	if v, ok := b.UnitCost(cat, BandMedium); ok && finite(v) {
		return v
	}
	low, hasLow := b.UnitCost(cat, BandLow)
	high, hasHigh := b.UnitCost(cat, BandHigh)
	hasLow = hasLow && finite(low)
	hasHigh = hasHigh && finite(high)
	switch {
	case hasLow && hasHigh:
		return (low + high) / 2
	case hasLow:
		return low
	case hasHigh:
		return high
	default:
		return 0
	}
}

// ImpliedMediumShares computes, per category, the fraction of total cost the
// category would represent if everything were priced at its Medium band. Area
// cancels out of the ratio, so the result is area-independent. Shares are
// returned for every category in fixed order and sum to 1.0. A benchmark with
// no usable cost data in any category falls back to equal weights.
func ImpliedMediumShares(b *BenchmarkSet) map[CategoryID]float64 {
	cats := Categories()
	rep := make(map[CategoryID]float64, len(cats))

	var sum float64
	for _, c := range cats {
		v := representativeUnitCost(b, c.ID)
		rep[c.ID] = v
		sum += v
	}

	shares := make(map[CategoryID]float64, len(cats))
	if !finite(sum) || sum <= 0 {
		equal := 1.0 / float64(len(cats))
		for _, c := range cats {
			shares[c.ID] = equal
		}
		return shares
	}

	for _, c := range cats {
		shares[c.ID] = rep[c.ID] / sum
	}
	return shares
}

// NormalizeRange repairs a (min, max) pair: both clamped to [0,1], and if the
// clamped max falls below the clamped min the range collapses to zero width at
// the min. Never returns an invalid range.
func NormalizeRange(minPct, maxPct float64) (float64, float64) {
	lo := clamp(finiteOr(minPct, 0), 0, 1)
	hi := clamp(finiteOr(maxPct, 0), 0, 1)
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

// DeriveTargetRanges computes a default target range for every category,
// centered on its implied Medium share. Half-width is relative to the share
// but floored and capped in absolute terms.
func DeriveTargetRanges(b *BenchmarkSet, opts DeriveOptions) []TargetRange {
	opts = opts.sanitized()
	shares := ImpliedMediumShares(b)

	cats := Categories()
	ranges := make([]TargetRange, 0, len(cats))
	for _, c := range cats {
		center := clamp(shares[c.ID], 0, 1)
		halfRel := center * opts.RelativeTolerance
		half := halfRel
		if opts.MinHalfWidthAbs > half {
			half = opts.MinHalfWidthAbs
		}
		half = clamp(half, 0, opts.MaxHalfWidthAbs)

		lo, hi := NormalizeRange(center-half, center+half)
		ranges = append(ranges, TargetRange{CategoryID: c.ID, MinPct: lo, MaxPct: hi})
	}
	return ranges
}

// EnsureCompleteTargetRanges returns exactly one valid range per category, in
// category order. Configured ranges win where present; missing categories fall
// back to derived defaults. Guardrail configuration is advisory, so malformed
// input is repaired, never rejected.
func EnsureCompleteTargetRanges(b *BenchmarkSet) []TargetRange {
	configured := make(map[CategoryID]TargetRange, len(b.TargetRanges))
	for _, tr := range b.TargetRanges {
		if tr.CategoryID == "" {
			continue
		}
		lo, hi := NormalizeRange(tr.MinPct, tr.MaxPct)
		configured[tr.CategoryID] = TargetRange{CategoryID: tr.CategoryID, MinPct: lo, MaxPct: hi}
	}

	derived := make(map[CategoryID]TargetRange, CategoryCount)
	for _, tr := range DeriveTargetRanges(b, DefaultDeriveOptions()) {
		derived[tr.CategoryID] = tr
	}

	cats := Categories()
	out := make([]TargetRange, 0, len(cats))
	for _, c := range cats {
		if tr, ok := configured[c.ID]; ok {
			out = append(out, tr)
			continue
		}
		if tr, ok := derived[c.ID]; ok {
			out = append(out, tr)
			continue
		}
		// Last-resort safety net: maximally permissive.
		out = append(out, TargetRange{CategoryID: c.ID, MinPct: 0, MaxPct: 1})
	}
	return out
}
