package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/linczyc-MLX/N4S-VisualMatrix/internal/budget"
	"github.com/linczyc-MLX/N4S-VisualMatrix/internal/config"
	"github.com/linczyc-MLX/N4S-VisualMatrix/internal/events"
	"github.com/linczyc-MLX/N4S-VisualMatrix/internal/store"
)

type BenchmarksHandler struct {
	store  store.Store
	events events.Client
	calib  config.CalibrationConfig
	logger *slog.Logger
}

func NewBenchmarksHandler(s store.Store, ev events.Client, calib config.CalibrationConfig, logger *slog.Logger) *BenchmarksHandler {
	return &BenchmarksHandler{store: s, events: ev, calib: calib, logger: logger}
}

type BenchmarkRequest struct {
	Name         string                 `json:"name"`
	Currency     string                 `json:"currency,omitempty"`
	Bands        []budget.BenchmarkBand `json:"bands"`
	TargetRanges []budget.TargetRange   `json:"target_ranges,omitempty"`
}

func (req *BenchmarkRequest) validate() string {
	if req.Name == "" {
		return "name required"
	}
	for _, bb := range req.Bands {
		if bb.CategoryID == "" {
			return "band missing category_id"
		}
		if !budget.ValidBand(bb.Band) {
			return "unknown band: " + string(bb.Band)
		}
	}
	return ""
}

func (h *BenchmarksHandler) List(w http.ResponseWriter, r *http.Request) {
	benchmarks, err := h.store.ListBenchmarks(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if benchmarks == nil {
		benchmarks = []*store.Benchmark{}
	}
	writeJSON(w, http.StatusOK, benchmarks)
}

func (h *BenchmarksHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid benchmark id"})
		return
	}

	b, err := h.store.GetBenchmark(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if b == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "benchmark not found"})
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *BenchmarksHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req BenchmarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if msg := req.validate(); msg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}
	if req.Currency == "" {
		req.Currency = "USD"
	}

	b := &store.Benchmark{
		Name:         req.Name,
		Currency:     req.Currency,
		Bands:        req.Bands,
		TargetRanges: req.TargetRanges,
	}
	if err := h.store.CreateBenchmark(r.Context(), b); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	h.publish(events.SubjectBenchmarkCreated(b.ID.String()), events.BenchmarkChangedEvent{
		BenchmarkID: b.ID.String(),
		Name:        b.Name,
		Currency:    b.Currency,
	})
	writeJSON(w, http.StatusCreated, b)
}

func (h *BenchmarksHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid benchmark id"})
		return
	}

	var req BenchmarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if msg := req.validate(); msg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}

	b, err := h.store.GetBenchmark(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if b == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "benchmark not found"})
		return
	}

	b.Name = req.Name
	if req.Currency != "" {
		b.Currency = req.Currency
	}
	b.Bands = req.Bands
	b.TargetRanges = req.TargetRanges

	if err := h.store.UpdateBenchmark(r.Context(), b); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	h.publish(events.SubjectBenchmarkUpdated(b.ID.String()), events.BenchmarkChangedEvent{
		BenchmarkID: b.ID.String(),
		Name:        b.Name,
		Currency:    b.Currency,
	})
	writeJSON(w, http.StatusOK, b)
}

func (h *BenchmarksHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid benchmark id"})
		return
	}

	if err := h.store.DeleteBenchmark(r.Context(), id); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	h.publish(events.SubjectBenchmarkDeleted(id.String()), events.BenchmarkChangedEvent{BenchmarkID: id.String()})
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type CalibrateRequest struct {
	RelativeTolerance *float64 `json:"relative_tolerance,omitempty"`
	MinHalfWidthAbs   *float64 `json:"min_half_width_abs,omitempty"`
	MaxHalfWidthAbs   *float64 `json:"max_half_width_abs,omitempty"`
}

// Calibrate derives target ranges from the benchmark's own band costs and
// persists them. Body fields override the configured tolerance defaults.
// POST /api/v1/benchmarks/{id}/calibrate
func (h *BenchmarksHandler) Calibrate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid benchmark id"})
		return
	}

	var req CalibrateRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
	}

	b, err := h.store.GetBenchmark(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if b == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "benchmark not found"})
		return
	}

	opts := budget.DeriveOptions{
		RelativeTolerance: h.calib.RelativeTolerance,
		MinHalfWidthAbs:   h.calib.MinHalfWidthAbs,
		MaxHalfWidthAbs:   h.calib.MaxHalfWidthAbs,
	}
	if req.RelativeTolerance != nil {
		opts.RelativeTolerance = *req.RelativeTolerance
	}
	if req.MinHalfWidthAbs != nil {
		opts.MinHalfWidthAbs = *req.MinHalfWidthAbs
	}
	if req.MaxHalfWidthAbs != nil {
		opts.MaxHalfWidthAbs = *req.MaxHalfWidthAbs
	}

	b.TargetRanges = budget.DeriveTargetRanges(b.Set(), opts)
	if err := h.store.UpdateBenchmark(r.Context(), b); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	calibrationsRun.Inc()
	h.publish(events.SubjectBenchmarkCalibrated(b.ID.String()), events.BenchmarkCalibratedEvent{
		BenchmarkID:       b.ID.String(),
		RelativeTolerance: opts.RelativeTolerance,
		MinHalfWidthAbs:   opts.MinHalfWidthAbs,
		MaxHalfWidthAbs:   opts.MaxHalfWidthAbs,
		RangeCount:        len(b.TargetRanges),
	})
	writeJSON(w, http.StatusOK, b)
}

// Shares returns the implied Medium shares for a benchmark, the statistical
// anchor calibration builds on.
// GET /api/v1/benchmarks/{id}/shares
func (h *BenchmarksHandler) Shares(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid benchmark id"})
		return
	}

	b, err := h.store.GetBenchmark(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if b == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "benchmark not found"})
		return
	}

	shares := budget.ImpliedMediumShares(b.Set())

	type categoryShare struct {
		CategoryID budget.CategoryID `json:"category_id"`
		Label      string            `json:"label"`
		Share      float64           `json:"share"`
	}
	out := make([]categoryShare, 0, budget.CategoryCount)
	for _, c := range budget.Categories() {
		out = append(out, categoryShare{CategoryID: c.ID, Label: c.Label, Share: shares[c.ID]})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"benchmark_id": b.ID,
		"shares":       out,
	})
}

func (h *BenchmarksHandler) publish(subject string, data interface{}) {
	if h.events == nil {
		return
	}
	if err := h.events.Publish(subject, data); err != nil {
		h.logger.Warn("publish event failed", "subject", subject, "error", err)
	}
}
