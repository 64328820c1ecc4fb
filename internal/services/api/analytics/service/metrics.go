package service

import (
	"labqc/internal/platform/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type computeMetrics struct {
	computations *prometheus.CounterVec
	duration     *prometheus.HistogramVec
}

// newComputeMetrics registers on reg; a nil reg leaves the collectors unregistered
func newComputeMetrics(reg prometheus.Registerer) *computeMetrics {
	f := promauto.With(reg)
	return &computeMetrics{
		computations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: "analytics",
			Name:      "computations_total",
			Help:      "Analytics computations served, by operation and period",
		}, []string{"op", "period"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: "analytics",
			Name:      "computation_seconds",
			Help:      "Time spent loading cases and computing one analytics view",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
	}
}
