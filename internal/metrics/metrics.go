// Package metrics exposes the proxy's Prometheus instrumentation.
//
// All collectors register on a private registry so the status
// listener serves exactly what the proxy owns, plus the standard Go
// and process collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var registry = newRegistry()

func newRegistry() *prometheus.Registry {
	r := prometheus.NewRegistry()
	r.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// Request latency buckets in milliseconds.
var latencyBuckets = []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000, 30000}

var (
	// RequestsTotal counts served requests by route and outcome.
	RequestsTotal = promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "wsgate_requests_total",
			Help: "Requests served, labeled by route, method and status code.",
		},
		[]string{"route", "method", "status"},
	)

	// RequestDuration tracks request latency per route.
	RequestDuration = promauto.With(registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wsgate_request_duration_ms",
			Help:    "Request latency in milliseconds, labeled by route.",
			Buckets: latencyBuckets,
		},
		[]string{"route"},
	)

	// UpstreamErrors counts failed upstream exchanges by reason.
	UpstreamErrors = promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "wsgate_upstream_errors_total",
			Help: "Upstream exchanges that failed, labeled by reason.",
		},
		[]string{"reason"},
	)
)

// Handler serves the registry in Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
