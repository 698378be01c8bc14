package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	scansTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fundora_receipt_scans_total",
			Help: "Total number of receipt scans by winning source",
		},
		[]string{"source"},
	)

	fallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fundora_receipt_fallbacks_total",
			Help: "Cloud fallback activations by triggering reason",
		},
		[]string{"reason"},
	)

	stageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fundora_receipt_stage_duration_seconds",
			Help:    "Duration of individual scan stages",
			Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"stage"},
	)
)
