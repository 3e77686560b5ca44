package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/linczyc-MLX/N4S-VisualMatrix/internal/budget"
	"github.com/linczyc-MLX/N4S-VisualMatrix/internal/events"
	"github.com/linczyc-MLX/N4S-VisualMatrix/internal/store"
)

type ScenariosHandler struct {
	store  store.Store
	events events.Client
	logger *slog.Logger
}

func NewScenariosHandler(s store.Store, ev events.Client, logger *slog.Logger) *ScenariosHandler {
	return &ScenariosHandler{store: s, events: ev, logger: logger}
}

// ComputeRequest prices a scenario against either a stored benchmark
// (benchmark_id) or an inline one (benchmark). Location and typology apply
// the thin multiplier heuristic before pricing.
type ComputeRequest struct {
	BenchmarkID string               `json:"benchmark_id,omitempty"`
	Benchmark   *budget.BenchmarkSet `json:"benchmark,omitempty"`
	AreaSqft    float64              `json:"area_sqft"`
	Selections  []budget.Selection   `json:"selections"`
	Location    string               `json:"location,omitempty"`
	Typology    string               `json:"typology,omitempty"`
}

// resolveBenchmark loads the stored benchmark or takes the inline one.
func (h *ScenariosHandler) resolveBenchmark(r *http.Request, req *ComputeRequest) (*budget.BenchmarkSet, int, string) {
	if req.BenchmarkID != "" {
		id, err := uuid.Parse(req.BenchmarkID)
		if err != nil {
			return nil, http.StatusBadRequest, "invalid benchmark_id"
		}
		b, err := h.store.GetBenchmark(r.Context(), id)
		if err != nil {
			return nil, http.StatusInternalServerError, err.Error()
		}
		if b == nil {
			return nil, http.StatusNotFound, "benchmark not found"
		}
		return b.Set(), 0, ""
	}
	if req.Benchmark != nil {
		return req.Benchmark, 0, ""
	}
	return nil, http.StatusBadRequest, "benchmark_id or benchmark required"
}

func (h *ScenariosHandler) compute(w http.ResponseWriter, r *http.Request, req *ComputeRequest) *budget.ScenarioResult {
	set, status, msg := h.resolveBenchmark(r, req)
	if set == nil {
		writeJSON(w, status, map[string]string{"error": msg})
		return nil
	}

	set, err := adjustBenchmark(set, req.Location, req.Typology)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return nil
	}

	result, err := budget.ComputeScenarioResult(budget.ScenarioInput{
		AreaSqft:   req.AreaSqft,
		Benchmark:  set,
		Selections: req.Selections,
	})
	if err != nil {
		status, reason := computeErrorStatus(err)
		scenarioComputeErrors.WithLabelValues(reason).Inc()
		writeJSON(w, status, map[string]string{"error": err.Error(), "reason": reason})
		return nil
	}

	scenariosComputed.Inc()
	// Inline benchmarks have no stored id; an empty subject token is not a
	// valid NATS subject.
	benchmarkRef := req.BenchmarkID
	if benchmarkRef == "" {
		benchmarkRef = "inline"
	}
	h.publish(events.SubjectScenarioComputed(benchmarkRef), events.ScenarioComputedEvent{
		BenchmarkID: benchmarkRef,
		AreaSqft:    result.AreaSqft,
		TotalCost:   result.TotalCost,
		TotalPsqft:  result.TotalPsqft,
		OutOfRange:  countOutOfRange(result),
		Timestamp:   time.Now().UTC(),
	})
	return result
}

// computeErrorStatus maps the core's hard failures onto HTTP statuses. Bad
// caller input is 400; corrupt or degenerate benchmark data is 422.
func computeErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, budget.ErrInvalidArea):
		return http.StatusBadRequest, "invalid_area"
	case errors.Is(err, budget.ErrMissingSelection):
		return http.StatusBadRequest, "missing_selection"
	case errors.Is(err, budget.ErrMissingBand):
		return http.StatusUnprocessableEntity, "missing_band"
	case errors.Is(err, budget.ErrNonPositiveTotal):
		return http.StatusUnprocessableEntity, "non_positive_total"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func countOutOfRange(result *budget.ScenarioResult) int {
	n := 0
	for _, cr := range result.Categories {
		if cr.RangeStatus != budget.StatusOK {
			n++
		}
	}
	return n
}

// Compute handles POST /api/v1/scenarios/compute
func (h *ScenariosHandler) Compute(w http.ResponseWriter, r *http.Request) {
	var req ComputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	result := h.compute(w, r, &req)
	if result == nil {
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type SaveScenarioRequest struct {
	Name string `json:"name"`
	ComputeRequest
}

// Save computes a scenario and persists the selections together with a
// point-in-time result snapshot.
// POST /api/v1/scenarios
func (h *ScenariosHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req SaveScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name required"})
		return
	}
	if req.BenchmarkID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "benchmark_id required"})
		return
	}
	benchmarkID, err := uuid.Parse(req.BenchmarkID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid benchmark_id"})
		return
	}

	result := h.compute(w, r, &req.ComputeRequest)
	if result == nil {
		return
	}

	sc := &store.Scenario{
		Name:        req.Name,
		BenchmarkID: benchmarkID,
		AreaSqft:    req.AreaSqft,
		Selections:  req.Selections,
		Result:      result,
	}
	if err := h.store.CreateScenario(r.Context(), sc); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	h.publish(events.SubjectScenarioSaved(sc.ID.String()), events.ScenarioSavedEvent{
		ScenarioID:  sc.ID.String(),
		BenchmarkID: req.BenchmarkID,
		Name:        sc.Name,
	})
	writeJSON(w, http.StatusCreated, sc)
}

func (h *ScenariosHandler) List(w http.ResponseWriter, r *http.Request) {
	scenarios, err := h.store.ListScenarios(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if scenarios == nil {
		scenarios = []*store.Scenario{}
	}
	writeJSON(w, http.StatusOK, scenarios)
}

func (h *ScenariosHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid scenario id"})
		return
	}

	sc, err := h.store.GetScenario(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if sc == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "scenario not found"})
		return
	}
	writeJSON(w, http.StatusOK, sc)
}

func (h *ScenariosHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid scenario id"})
		return
	}

	if err := h.store.DeleteScenario(r.Context(), id); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	h.publish(events.SubjectScenarioDeleted(id.String()), map[string]string{"scenario_id": id.String()})
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *ScenariosHandler) publish(subject string, data interface{}) {
	if h.events == nil {
		return
	}
	if err := h.events.Publish(subject, data); err != nil {
		h.logger.Warn("publish event failed", "subject", subject, "error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
