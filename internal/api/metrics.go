package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	scenariosComputed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "vmx",
		Name:      "scenarios_computed_total",
		Help:      "Number of scenario pricing computations served.",
	})

	scenarioComputeErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vmx",
		Name:      "scenario_compute_errors_total",
		Help:      "Scenario computations rejected, by failure class.",
	}, []string{"reason"})

	calibrationsRun = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "vmx",
		Name:      "calibrations_total",
		Help:      "Number of benchmark calibrations performed.",
	})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "vmx",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method"})
)
