package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors of the catalog API.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	// GraphQL operations
	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	errorsTotal       *prometheus.CounterVec

	// Auth
	loginFailures   prometheus.Counter
	rejectedTokens  prometheus.Counter
	loginsThrottled prometheus.Counter

	// HTTP
	httpRequests *prometheus.CounterVec
}

// New creates the metrics on a private registry together with the Go and process collectors
func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.operationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_graphql_operations_total",
			Help: "Total number of executed GraphQL operations",
		},
		[]string{"operation", "status"},
	)
	m.operationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_graphql_operation_duration_seconds",
			Help:    "GraphQL operation execution time",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
	m.errorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_graphql_errors_total",
			Help: "GraphQL errors by extension code",
		},
		[]string{"code"},
	)
	m.loginFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "catalog_auth_login_failures_total",
		Help: "Failed login attempts",
	})
	m.rejectedTokens = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "catalog_auth_rejected_tokens_total",
		Help: "Requests rejected because of an invalid bearer token",
	})
	m.loginsThrottled = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "catalog_auth_logins_throttled_total",
		Help: "Login attempts refused by the failed-login throttle",
	})
	m.httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_http_requests_total",
			Help: "HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	m.registry.MustRegister(
		m.operationsTotal,
		m.operationDuration,
		m.errorsTotal,
		m.loginFailures,
		m.rejectedTokens,
		m.loginsThrottled,
		m.httpRequests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Registry returns the underlying Prometheus registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the exposition format for /metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// ObserveOperation records one executed operation and the codes of its errors.
// operation must come from a bounded set, never from raw client input.
func (m *Metrics) ObserveOperation(operation string, elapsed time.Duration, errorCodes []string) {
	if m == nil {
		return
	}
	if operation == "" {
		operation = "anonymous"
	}

	status := "ok"
	if len(errorCodes) > 0 {
		status = "error"
	}
	m.operationsTotal.WithLabelValues(operation, status).Inc()
	m.operationDuration.WithLabelValues(operation).Observe(elapsed.Seconds())

	for _, code := range errorCodes {
		m.errorsTotal.WithLabelValues(code).Inc()
	}
}

func (m *Metrics) LoginFailed() {
	if m == nil {
		return
	}
	m.loginFailures.Inc()
}

func (m *Metrics) LoginThrottled() {
	if m == nil {
		return
	}
	m.loginsThrottled.Inc()
}

func (m *Metrics) TokenRejected() {
	if m == nil {
		return
	}
	m.rejectedTokens.Inc()
}

func (m *Metrics) ObserveHTTP(method, route string, status int) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}
