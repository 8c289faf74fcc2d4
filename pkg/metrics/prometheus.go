// Package metrics provides Prometheus metrics for the recap renderer service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Render outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeInvalid  = "invalid"
	OutcomeCanceled = "canceled"
	OutcomeError    = "error"
)

// Manager owns every Prometheus collector of the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	renders        *prometheus.CounterVec
	renderDuration prometheus.Histogram
	assetFetches   *prometheus.CounterVec
	fetchDuration  *prometheus.HistogramVec
	assetCache     *prometheus.CounterVec

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(prometheus.NewRegistry()))
}

// NewManager creates a metrics manager registering its collectors on the configured
// registry (a fresh one unless WithPrometheusRegistry is given).
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "recap",
		subsystem:        "renderer",
		histogramBuckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.renders = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "renders_total",
		Help:      "Recap renders by outcome",
	}, []string{"outcome"})

	m.renderDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "render_duration_seconds",
		Help:      "Wall-clock duration of a full render, fetch phase included",
		Buckets:   m.histogramBuckets,
	})

	m.assetFetches = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "asset_fetch_total",
		Help:      "Remote asset fetches by asset kind and outcome",
	}, []string{"kind", "outcome"})

	m.fetchDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "asset_fetch_duration_seconds",
		Help:      "Duration of single remote asset fetches",
		Buckets:   m.histogramBuckets,
	}, []string{"kind"})

	m.assetCache = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "asset_cache_total",
		Help:      "Decoded bitmap cache lookups by result",
	}, []string{"result"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by endpoint, method and status",
	}, []string{"endpoint", "method", "status"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request duration by endpoint, method and status",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status"})
}

// Registry returns the registry the manager's collectors live in.
func (m *Manager) Registry() *prometheus.Registry { return m.registry }

// Handler serves the exposition format for the manager's registry.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordRender counts one render outcome and its duration.
func (m *Manager) RecordRender(outcome string, seconds float64) {
	m.renders.WithLabelValues(outcome).Inc()
	if outcome == OutcomeOK {
		m.renderDuration.Observe(seconds)
	}
}

// RecordAssetFetch counts one asset fetch.
func (m *Manager) RecordAssetFetch(kind string, ok bool, seconds float64) {
	outcome := "ok"
	if !ok {
		outcome = "unavailable"
	}
	m.assetFetches.WithLabelValues(kind, outcome).Inc()
	m.fetchDuration.WithLabelValues(kind).Observe(seconds)
}

// RecordCacheLookup counts a bitmap cache hit or miss.
func (m *Manager) RecordCacheLookup(hit bool) {
	if hit {
		m.assetCache.WithLabelValues("hit").Inc()
		return
	}
	m.assetCache.WithLabelValues("miss").Inc()
}

// RecordHTTPRequest records one served HTTP request.
func (m *Manager) RecordHTTPRequest(endpoint, method, status string, seconds float64) {
	m.httpRequests.WithLabelValues(endpoint, method, status).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(seconds)
}

// Default returns the process-wide manager.
func Default() *Manager { return globalManager }

// GetRegistry returns the process-wide registry.
func GetRegistry() *prometheus.Registry { return globalManager.registry }
