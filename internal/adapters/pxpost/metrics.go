package pxpost

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels beyond the classified kinds
const (
	resultInvalidRequest = "invalid_request"
	resultTransportError = "transport_error"
	resultMalformed      = "malformed_response"
)

var (
	gatewayRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pxpost_requests_total",
			Help: "Total number of PXPost exchanges by operation and result",
		},
		[]string{"operation", "result"},
	)

	gatewayRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pxpost_request_duration_seconds",
			Help:    "Duration of the PXPost network round-trip in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"operation"},
	)
)

func recordResult(op Operation, result string) {
	gatewayRequestsTotal.WithLabelValues(op.String(), result).Inc()
}
