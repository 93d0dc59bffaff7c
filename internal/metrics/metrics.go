// Package metrics provides Prometheus metrics for the storefront.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for backend reads.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Manager owns the storefront collectors and the registry they live in.
type Manager struct {
	namespace string
	subsystem string
	buckets   []float64
	registry  *prometheus.Registry

	backendRequests  *prometheus.CounterVec
	backendDuration  *prometheus.HistogramVec
	loaderFallbacks  *prometheus.CounterVec
	httpRequests     *prometheus.CounterVec
	httpRequestTimes *prometheus.HistogramVec
}

// Option configures a Manager.
type Option func(*Manager)

// WithNamespace overrides the metric namespace.
func WithNamespace(ns string) Option {
	return func(m *Manager) {
		if ns != "" {
			m.namespace = ns
		}
	}
}

// WithSubsystem overrides the metric subsystem.
func WithSubsystem(s string) Option {
	return func(m *Manager) {
		if s != "" {
			m.subsystem = s
		}
	}
}

// WithBuckets overrides histogram buckets.
func WithBuckets(b []float64) Option {
	return func(m *Manager) {
		if len(b) > 0 {
			m.buckets = b
		}
	}
}

// WithRegistry uses the given registry instead of a fresh one.
func WithRegistry(r *prometheus.Registry) Option {
	return func(m *Manager) {
		if r != nil {
			m.registry = r
		}
	}
}

// NewManager creates a manager with its own registry, so tests can build many.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "casamoreno",
		subsystem: "storefront",
		buckets:   prometheus.DefBuckets,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}

	m.backendRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "backend_requests_total",
		Help:      "Reads issued to the commerce API by outcome.",
	}, []string{"endpoint", "outcome"})
	m.backendDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "backend_request_duration_seconds",
		Help:      "Latency of commerce API reads.",
		Buckets:   m.buckets,
	}, []string{"endpoint"})
	m.loaderFallbacks = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "loader_fallbacks_total",
		Help:      "Page loads that fell back to empty props.",
	}, []string{"page"})
	m.httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Storefront HTTP requests.",
	}, []string{"method", "route", "status"})
	m.httpRequestTimes = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_seconds",
		Help:      "Storefront HTTP request latency.",
		Buckets:   m.buckets,
	}, []string{"method", "route"})

	m.registry.MustRegister(
		m.backendRequests,
		m.backendDuration,
		m.loaderFallbacks,
		m.httpRequests,
		m.httpRequestTimes,
	)
	return m
}

// Registry exposes the underlying registry (tests, custom exporters).
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{DisableCompression: true})
}

// ObserveBackend records one commerce API read.
func (m *Manager) ObserveBackend(endpoint string, d time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	m.backendRequests.WithLabelValues(endpoint, outcome).Inc()
	m.backendDuration.WithLabelValues(endpoint).Observe(d.Seconds())
}

// IncFallback records a page load that rendered fallback props.
func (m *Manager) IncFallback(page string) {
	if m == nil {
		return
	}
	m.loaderFallbacks.WithLabelValues(page).Inc()
}

// ObserveHTTP records one served request.
func (m *Manager) ObserveHTTP(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestTimes.WithLabelValues(method, route).Observe(d.Seconds())
}
