// Package metrics defines the service's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts handled HTTP requests by method, route pattern
	// and status class.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chipin_http_requests_total",
		Help: "Handled HTTP requests.",
	}, []string{"method", "path", "status"})

	// HTTPDuration observes request latency by route pattern.
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "chipin_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	// BalanceComputations counts ledger runs by scope (trip or group).
	BalanceComputations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chipin_balance_computations_total",
		Help: "Balance aggregation and netting runs.",
	}, []string{"scope"})

	// TransfersSuggested observes how many transfers each netting run
	// emitted.
	TransfersSuggested = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "chipin_transfers_suggested",
		Help:    "Transfers emitted per netting run.",
		Buckets: []float64{0, 1, 2, 3, 5, 8, 13, 21},
	})
)
