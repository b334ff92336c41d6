package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Authentication outcomes used as the "result" label.
const (
	ResultSuccess      = "success"
	ResultUnauthorized = "unauthorized"
	ResultInvalid      = "invalid_request"
	ResultError        = "error"
)

// Metrics holds the service's Prometheus collectors. A nil *Metrics is valid
// and records nothing, which keeps tests free of registry plumbing.
type Metrics struct {
	registry *prometheus.Registry

	authentications *prometheus.CounterVec
	passwordHashes  *prometheus.HistogramVec
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
}

// New creates the collectors and registers them on a fresh registry together
// with the Go runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		authentications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vgauth_authentications_total",
			Help: "Authentication attempts by result.",
		}, []string{"result"}),
		passwordHashes: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "vgauth_password_operation_seconds",
			Help:    "Time spent hashing or verifying passwords.",
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"operation"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vgauth_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "vgauth_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.authentications,
		m.passwordHashes,
		m.httpRequests,
		m.httpDuration,
	)
	return m
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveAuthentication(result string) {
	if m == nil {
		return
	}
	m.authentications.WithLabelValues(result).Inc()
}

func (m *Metrics) ObservePasswordOperation(operation string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.passwordHashes.WithLabelValues(operation).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveRequest(method, route string, code int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
