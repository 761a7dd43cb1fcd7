// Prometheus instrumentation for the two endpoints. Metrics are registered on
// an injected registry so tests can construct isolated instances.
package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors exported at /metrics. A nil *Metrics is valid
// and records nothing, which keeps handler tests free of registry setup.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal  *prometheus.CounterVec
	upstreamErrors *prometheus.CounterVec
	renderSeconds  prometheus.Histogram
}

// NewMetrics creates and registers the collectors on the given registry.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		registry: reg,
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nowplaying_requests_total",
				Help: "Total number of HTTP requests served",
			},
			[]string{"endpoint", "status"},
		),
		upstreamErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nowplaying_upstream_errors_total",
				Help: "Total number of failed provider API calls",
			},
			[]string{"service"},
		),
		renderSeconds: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "nowplaying_render_duration_seconds",
				Help:    "Time spent composing preview images",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
	reg.MustRegister(m.requestsTotal, m.upstreamErrors, m.renderSeconds)
	return m
}

// Handler serves the metrics exposition for this instance's registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveRequest(endpoint string, status int) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
}

func (m *Metrics) ObserveUpstreamError(service string) {
	if m == nil {
		return
	}
	m.upstreamErrors.WithLabelValues(service).Inc()
}

func (m *Metrics) ObserveRender(d time.Duration) {
	if m == nil {
		return
	}
	m.renderSeconds.Observe(d.Seconds())
}
