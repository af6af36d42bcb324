package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/timeasy-io/timeasy/internal/modules/model"
)

var (
	lifecycleOps = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "timeasy",
		Name:      "lifecycle_operations_total",
		Help:      "Lifecycle operations by resource kind, operation and result.",
	}, []string{"kind", "op", "result"})

	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "timeasy",
		Name:      "http_requests_total",
		Help:      "HTTP requests by route, method and status code.",
	}, []string{"route", "method", "code"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "timeasy",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route and method.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})
)

// ObserveLifecycle counts one lifecycle operation and classifies its outcome.
func ObserveLifecycle(kind, op string, err error) {
	lifecycleOps.WithLabelValues(kind, op, model.ErrorKind(err)).Inc()
}

// ObserveHTTP records a finished request.
func ObserveHTTP(route, method, code string, seconds float64) {
	httpRequests.WithLabelValues(route, method, code).Inc()
	httpDuration.WithLabelValues(route, method).Observe(seconds)
}
