package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/linczyc-MLX/N4S-VisualMatrix/internal/budget"
)

// Benchmark is the persisted form of a benchmark set.
type Benchmark struct {
	ID           uuid.UUID              `json:"id"`
	Name         string                 `json:"name"`
	Currency     string                 `json:"currency"`
	Bands        []budget.BenchmarkBand `json:"bands"`
	TargetRanges []budget.TargetRange   `json:"target_ranges"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
}

// Set converts the persisted record into the core's benchmark type.
func (b *Benchmark) Set() *budget.BenchmarkSet {
	return &budget.BenchmarkSet{
		ID:           b.ID.String(),
		Name:         b.Name,
		Currency:     b.Currency,
		Bands:        b.Bands,
		TargetRanges: b.TargetRanges,
	}
}

// Scenario is a saved selection set plus a point-in-time result snapshot.
// The snapshot is never authoritative; results are recomputed on demand.
type Scenario struct {
	ID          uuid.UUID              `json:"id"`
	Name        string                 `json:"name"`
	BenchmarkID uuid.UUID              `json:"benchmark_id"`
	AreaSqft    float64                `json:"area_sqft"`
	Selections  []budget.Selection     `json:"selections"`
	Result      *budget.ScenarioResult `json:"result,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

type Store interface {
	CreateBenchmark(ctx context.Context, b *Benchmark) error
	GetBenchmark(ctx context.Context, id uuid.UUID) (*Benchmark, error)
	ListBenchmarks(ctx context.Context) ([]*Benchmark, error)
	UpdateBenchmark(ctx context.Context, b *Benchmark) error
	DeleteBenchmark(ctx context.Context, id uuid.UUID) error
	CountBenchmarks(ctx context.Context) (int, error)

	CreateScenario(ctx context.Context, s *Scenario) error
	GetScenario(ctx context.Context, id uuid.UUID) (*Scenario, error)
	ListScenarios(ctx context.Context) ([]*Scenario, error)
	DeleteScenario(ctx context.Context, id uuid.UUID) error

	GetSetting(ctx context.Context, key string) (json.RawMessage, error)
	SetSetting(ctx context.Context, key string, value json.RawMessage) error

	Close() error
}
