package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/linczyc-MLX/N4S-VisualMatrix/internal/config"
	"github.com/linczyc-MLX/N4S-VisualMatrix/internal/events"
	"github.com/linczyc-MLX/N4S-VisualMatrix/internal/store"
)

func NewRouter(s store.Store, ev events.Client, calib config.CalibrationConfig, adminToken string, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(RateLimitMiddleware(240))

	benchmarks := NewBenchmarksHandler(s, ev, calib, logger)
	scenarios := NewScenariosHandler(s, ev, logger)
	settings := NewSettingsHandler(s, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/benchmarks", benchmarks.List)
		r.Get("/benchmarks/{id}", benchmarks.Get)
		r.Get("/benchmarks/{id}/shares", benchmarks.Shares)

		r.Post("/scenarios/compute", scenarios.Compute)
		r.Post("/scenarios/compute/export", scenarios.Export)
		r.Post("/scenarios", scenarios.Save)
		r.Get("/scenarios", scenarios.List)
		r.Get("/scenarios/{id}", scenarios.Get)
		r.Delete("/scenarios/{id}", scenarios.Delete)

		r.Get("/settings/{key}", settings.Get)
		r.Put("/settings/{key}", settings.Put)

		// Benchmark library mutations are admin operations.
		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(adminToken))
			r.Post("/benchmarks", benchmarks.Create)
			r.Put("/benchmarks/{id}", benchmarks.Update)
			r.Delete("/benchmarks/{id}", benchmarks.Delete)
			r.Post("/benchmarks/{id}/calibrate", benchmarks.Calibrate)
		})
	})

	return r
}

func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}
