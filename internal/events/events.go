package events

import "time"

type BenchmarkChangedEvent struct {
	BenchmarkID string `json:"benchmark_id"`
	Name        string `json:"name"`
	Currency    string `json:"currency,omitempty"`
	ChangedBy   string `json:"changed_by,omitempty"`
}

type BenchmarkCalibratedEvent struct {
	BenchmarkID       string  `json:"benchmark_id"`
	RelativeTolerance float64 `json:"relative_tolerance"`
	MinHalfWidthAbs   float64 `json:"min_half_width_abs"`
	MaxHalfWidthAbs   float64 `json:"max_half_width_abs"`
	RangeCount        int     `json:"range_count"`
}

type ScenarioComputedEvent struct {
	BenchmarkID string    `json:"benchmark_id"`
	AreaSqft    float64   `json:"area_sqft"`
	TotalCost   float64   `json:"total_cost"`
	TotalPsqft  float64   `json:"total_psqft"`
	OutOfRange  int       `json:"out_of_range"`
	Timestamp   time.Time `json:"timestamp"`
}

type ScenarioSavedEvent struct {
	ScenarioID  string `json:"scenario_id"`
	BenchmarkID string `json:"benchmark_id"`
	Name        string `json:"name"`
}
