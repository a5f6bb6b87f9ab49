// Package metrics provides Prometheus metrics for inkwell.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StoreRequestsTotal counts content store operations by outcome.
	StoreRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "inkwell",
			Name:      "store_requests_total",
			Help:      "Total number of content store operations",
		},
		[]string{"operation", "outcome"},
	)

	// StoreRequestDuration measures content store operation duration.
	StoreRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "inkwell",
			Name:      "store_request_duration_seconds",
			Help:      "Duration of content store operations in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// SalesRecordedTotal counts sales written to the store.
	SalesRecordedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "inkwell",
			Name:      "sales_recorded_total",
			Help:      "Total number of sales recorded",
		},
	)

	// HTTPRequestsTotal counts served HTTP requests.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "inkwell",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "status"},
	)
)

// RecordStore records one content store operation. outcome is "ok" or the
// error kind.
func RecordStore(operation, outcome string, duration float64) {
	StoreRequestsTotal.WithLabelValues(operation, outcome).Inc()
	StoreRequestDuration.WithLabelValues(operation).Observe(duration)
}

// RecordSale records a newly stored sale.
func RecordSale() {
	SalesRecordedTotal.Inc()
}

// RecordHTTP records a served request.
func RecordHTTP(method, status string) {
	HTTPRequestsTotal.WithLabelValues(method, status).Inc()
}
