// Package pipeline provides Prometheus metrics for pipeline operations.
package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// estimatesTotal tracks composed estimates
	estimatesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pipeline_estimates_total",
			Help: "Total number of adjusted probabilities composed",
		},
	)

	// estimateDuration tracks composition latency
	estimateDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pipeline_estimate_duration_seconds",
			Help:    "Pipeline composition duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// stageMultiplier observes the multiplier each stage produced
	stageMultiplier = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pipeline_stage_multiplier",
			Help:    "Multiplier produced by each adjustment stage",
			Buckets: []float64{0.88, 0.95, 1.0, 1.02, 1.05, 1.1, 1.2, 1.5},
		},
		[]string{"stage"},
	)

	// pitcherFixesTotal tracks input guard corrections
	pitcherFixesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_pitcher_fixes_total",
			Help: "Total number of opposing-pitcher attribution corrections",
		},
		[]string{"fix"},
	)
)
