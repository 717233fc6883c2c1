// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts resolutions and upstream traffic for one process. It
// owns its registry; WriteFile dumps it in the text exposition format
// for node_exporter's textfile collector.
type Metrics struct {
	// Resolutions counts router results by identifier kind and outcome
	// ("ok" or "error").
	Resolutions *prometheus.CounterVec

	// UpstreamRequests counts HTTP requests by host and status code
	// ("0" for transport errors).
	UpstreamRequests *prometheus.CounterVec

	// UpstreamDuration observes request latency in seconds by host.
	UpstreamDuration *prometheus.HistogramVec

	registry *prometheus.Registry
}

// NewMetrics creates and registers all metrics on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		Resolutions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "d2b",
			Name:      "resolutions_total",
			Help:      "Identifier resolutions by kind and outcome.",
		}, []string{"kind", "outcome"}),
		UpstreamRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "d2b",
			Name:      "upstream_requests_total",
			Help:      "HTTP requests to metadata providers by host and status code.",
		}, []string{"host", "code"}),
		UpstreamDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "d2b",
			Name:      "upstream_request_duration_seconds",
			Help:      "Latency of HTTP requests to metadata providers.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"host"}),
		registry: reg,
	}
}

// ObserveRequest records one upstream HTTP exchange.
func (m *Metrics) ObserveRequest(host string, code int, d time.Duration) {
	m.UpstreamRequests.WithLabelValues(host, strconv.Itoa(code)).Inc()
	m.UpstreamDuration.WithLabelValues(host).Observe(d.Seconds())
}

// ObserveResolution records one router result.
func (m *Metrics) ObserveResolution(kind, outcome string) {
	m.Resolutions.WithLabelValues(kind, outcome).Inc()
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// WriteFile writes all metrics to path atomically.
func (m *Metrics) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
