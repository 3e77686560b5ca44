package budget

import "testing"

func TestClassify(t *testing.T) {
	const eps = 1e-12

	tests := []struct {
		name     string
		pct      float64
		min, max float64
		want     RangeStatus
	}{
		{"inside", 0.25, 0.2, 0.3, StatusOK},
		{"below", 0.1, 0.2, 0.3, StatusLow},
		{"above", 0.4, 0.2, 0.3, StatusHigh},
		{"exactly min is ok", 0.2, 0.2, 0.3, StatusOK},
		{"exactly max is ok", 0.3, 0.2, 0.3, StatusOK},
		{"just below min", 0.2 - eps, 0.2, 0.3, StatusLow},
		{"just above max", 0.3 + eps, 0.2, 0.3, StatusHigh},
		{"zero-width range hit", 0.5, 0.5, 0.5, StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.pct, tt.min, tt.max); got != tt.want {
				t.Errorf("Classify(%v, %v, %v) = %s, want %s", tt.pct, tt.min, tt.max, got, tt.want)
			}
		})
	}
}
