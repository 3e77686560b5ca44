package budget

// RangeStatus classifies a percentage against a target range.
type RangeStatus string

const (
	StatusOK   RangeStatus = "ok"
	StatusLow  RangeStatus = "low"
	StatusHigh RangeStatus = "high"
)

// Classify places pct against a [minPct, maxPct] target range. Both bounds are
// inclusive: values exactly on a bound classify as OK.
func Classify(pct, minPct, maxPct float64) RangeStatus {
	switch {
	case pct < minPct:
		return StatusLow
	case pct > maxPct:
		return StatusHigh
	default:
		return StatusOK
	}
}
