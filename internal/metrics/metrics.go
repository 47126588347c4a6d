package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coinscope_http_requests_total",
			Help: "Total number of HTTP requests handled",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "coinscope_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	ComputeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "coinscope_compute_duration_seconds",
			Help:    "Duration of an analytical computation",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
		},
		[]string{"component"},
	)

	SnapshotRefreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coinscope_snapshot_refresh_total",
			Help: "Snapshot refreshes by outcome",
		},
		[]string{"symbol", "result"},
	)

	StoreQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "coinscope_store_query_duration_seconds",
			Help: "Database query duration",
		},
		[]string{"operation"},
	)
)

// ObserveSince records the time elapsed since start on h for the given label.
func ObserveSince(h *prometheus.HistogramVec, label string, start time.Time) {
	h.WithLabelValues(label).Observe(time.Since(start).Seconds())
}
