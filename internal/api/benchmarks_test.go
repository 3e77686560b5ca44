package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/linczyc-MLX/N4S-VisualMatrix/internal/budget"
	"github.com/linczyc-MLX/N4S-VisualMatrix/internal/config"
	"github.com/linczyc-MLX/N4S-VisualMatrix/internal/store"
)

// MockEvents implements events.Client for testing
type MockEvents struct {
	mock.Mock
}

func (m *MockEvents) Publish(subject string, data interface{}) error {
	args := m.Called(subject, data)
	return args.Error(0)
}

func (m *MockEvents) Close() {
	m.Called()
}

func TestCreateBenchmark(t *testing.T) {
	ms := newMockStore()
	ev := &MockEvents{}
	ev.On("Publish", mock.Anything, mock.Anything).Return(nil)
	router := NewRouter(ms, ev, config.CalibrationConfig{RelativeTolerance: 0.2, MinHalfWidthAbs: 0.01, MaxHalfWidthAbs: 0.06}, "", discardLogger())

	rec := doJSON(t, router, http.MethodPost, "/api/v1/benchmarks", BenchmarkRequest{
		Name:     "Mountain Baseline",
		Currency: "USD",
		Bands:    budget.DefaultBenchmark().Bands,
	})

	assert.Equal(t, http.StatusCreated, rec.Code)

	var created store.Benchmark
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "Mountain Baseline", created.Name)
	assert.Len(t, created.Bands, budget.CategoryCount*3)
	ev.AssertNumberOfCalls(t, "Publish", 1)
}

func TestCreateBenchmarkValidation(t *testing.T) {
	ms := newMockStore()
	router := testRouter(ms, &mockEvents{}, "")

	t.Run("missing name", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/v1/benchmarks", BenchmarkRequest{
			Bands: budget.DefaultBenchmark().Bands,
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown band", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/v1/benchmarks", BenchmarkRequest{
			Name:  "bad",
			Bands: []budget.BenchmarkBand{{CategoryID: budget.CategorySite, Band: "scorching", UnitCost: 10}},
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCalibrateDerivesAndPersistsRanges(t *testing.T) {
	ms := newMockStore()
	ev := &MockEvents{}
	ev.On("Publish", mock.Anything, mock.Anything).Return(nil)
	b := seedBenchmark(ms)
	b.TargetRanges = nil // wipe configured guardrails
	router := NewRouter(ms, ev, config.CalibrationConfig{RelativeTolerance: 0.2, MinHalfWidthAbs: 0.01, MaxHalfWidthAbs: 0.06}, "", discardLogger())

	rec := doJSON(t, router, http.MethodPost, "/api/v1/benchmarks/"+b.ID.String()+"/calibrate", CalibrateRequest{})
	assert.Equal(t, http.StatusOK, rec.Code)

	var updated store.Benchmark
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Len(t, updated.TargetRanges, budget.CategoryCount)
	for _, tr := range updated.TargetRanges {
		assert.GreaterOrEqual(t, tr.MinPct, 0.0)
		assert.LessOrEqual(t, tr.MaxPct, 1.0)
		assert.LessOrEqual(t, tr.MinPct, tr.MaxPct)
	}

	// Persisted, not just returned.
	stored := ms.benchmarks[b.ID]
	assert.Len(t, stored.TargetRanges, budget.CategoryCount)
	ev.AssertNumberOfCalls(t, "Publish", 1)
}

func TestCalibrateWithToleranceOverride(t *testing.T) {
	ms := newMockStore()
	b := seedBenchmark(ms)
	router := testRouter(ms, &mockEvents{}, "")

	wide := 0.5
	relTol := 0.9
	rec := doJSON(t, router, http.MethodPost, "/api/v1/benchmarks/"+b.ID.String()+"/calibrate", CalibrateRequest{
		RelativeTolerance: &relTol,
		MaxHalfWidthAbs:   &wide,
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	var updated store.Benchmark
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))

	// A 90% relative tolerance with a 0.5 cap must produce wider ranges than
	// the defaults for the dominant category.
	defaults := budget.DeriveTargetRanges(b.Set(), budget.DefaultDeriveOptions())
	for i, tr := range updated.TargetRanges {
		if tr.CategoryID == budget.CategoryShell {
			gotWidth := tr.MaxPct - tr.MinPct
			defWidth := defaults[i].MaxPct - defaults[i].MinPct
			assert.Greater(t, gotWidth, defWidth)
		}
	}
}

func TestBenchmarkNotFound(t *testing.T) {
	router := testRouter(newMockStore(), &mockEvents{}, "")

	rec := doJSON(t, router, http.MethodGet, "/api/v1/benchmarks/6a0f5a94-6c2e-4f3c-9c58-2f4b6f3d9e11", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/benchmarks/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
