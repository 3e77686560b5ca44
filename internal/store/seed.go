package store

import (
	"context"

	"github.com/linczyc-MLX/N4S-VisualMatrix/internal/budget"
)

// Seed inserts the default benchmark set when the library is empty, so a
// fresh install can price scenarios immediately.
func Seed(ctx context.Context, s Store) (*Benchmark, error) {
	n, err := s.CountBenchmarks(ctx)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, nil
	}

	def := budget.DefaultBenchmark()
	b := &Benchmark{
		Name:         def.Name,
		Currency:     def.Currency,
		Bands:        def.Bands,
		TargetRanges: def.TargetRanges,
	}
	if err := s.CreateBenchmark(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}
