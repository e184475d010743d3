package http

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	evaluationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "housecli_evaluations_total",
		Help: "Evaluation runs served by the API, by approach and outcome.",
	}, []string{"approach", "status"})

	evaluationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "housecli_evaluation_duration_seconds",
		Help:    "Wall time of evaluation runs served by the API.",
		Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
	}, []string{"approach"})
)
