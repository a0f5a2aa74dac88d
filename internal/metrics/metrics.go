// Package metrics holds the prometheus counters exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CollectTotal counts collections by the source that produced data:
	// "api", "scrape" or "none".
	CollectTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "persona_collect_total",
		Help: "Reddit activity collections by source.",
	}, []string{"source"})

	// InferenceTotal counts persona records by inference path:
	// "llm", "heuristic" or "empty".
	InferenceTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "persona_inference_total",
		Help: "Persona records produced by inference path.",
	}, []string{"path"})

	// ExportTotal counts download requests by format and outcome.
	ExportTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "persona_export_total",
		Help: "Persona downloads by format and status.",
	}, []string{"format", "status"})
)
