// Package metrics exposes the Prometheus collectors used across callyn-backend.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	obserrors "github.com/milestone2github/callyn-backend/internal/observability/errors"
)

// Result constants for metric labels.
const (
	ResultSuccess = "success"
	ResultError   = "error"
	ResultNoop    = "noop"
)

const namespace = "callyn"

// Metrics groups the service's collectors.
type Metrics struct {
	logins           *prometheus.CounterVec
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
	httpInFlight     prometheus.Gauge
	retentionRuns    *prometheus.CounterVec
	retentionDeleted prometheus.Counter
	retentionLastOK  prometheus.Gauge
	rateLimited      *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// New creates the collectors and registers them with reg.
// A nil reg uses a fresh private registry.
func New(reg *prometheus.Registry) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	m := &Metrics{
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "login_attempts_total",
			Help:      "Completed OAuth callbacks by outcome, failing stage and reason.",
		}, []string{"result", "stage", "reason"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latencies in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_in_flight_requests",
			Help:      "In-flight HTTP requests.",
		}),
		retentionRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "retention_runs_total",
			Help:      "Call log retention sweeps by result and error class.",
		}, []string{"result", "error_class"}),
		retentionDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "retention_deleted_call_logs_total",
			Help:      "Call logs removed by retention.",
		}),
		retentionLastOK: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "retention_last_success_timestamp_seconds",
			Help:      "Unix time of the last successful retention sweep.",
		}),
		rateLimited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_requests_total",
			Help:      "Requests rejected by the rate limiter.",
		}, []string{"scope"}),
		gatherer: reg,
	}

	for _, c := range []prometheus.Collector{
		m.logins, m.httpRequests, m.httpDuration, m.httpInFlight,
		m.retentionRuns, m.retentionDeleted, m.retentionLastOK, m.rateLimited,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// LoginOutcome records one finished callback. stage and reason are empty on success.
func (m *Metrics) LoginOutcome(result, stage, reason string) {
	if m == nil {
		return
	}
	m.logins.WithLabelValues(result, stage, reason).Inc()
}

// HTTPStarted increments the in-flight gauge and returns a func that records completion.
func (m *Metrics) HTTPStarted() func(method, route string, status int) {
	if m == nil {
		return func(string, string, int) {}
	}
	m.httpInFlight.Inc()
	start := time.Now()
	return func(method, route string, status int) {
		m.httpInFlight.Dec()
		code := strconv.Itoa(status)
		m.httpRequests.WithLabelValues(method, route, code).Inc()
		m.httpDuration.WithLabelValues(method, route, code).Observe(time.Since(start).Seconds())
	}
}

// RetentionRun records one retention sweep.
func (m *Metrics) RetentionRun(deleted int64, err error) {
	if m == nil {
		return
	}
	result := ResultSuccess
	switch {
	case err != nil:
		result = ResultError
	case deleted == 0:
		result = ResultNoop
	}
	m.retentionRuns.WithLabelValues(result, obserrors.Classify(err)).Inc()
	if deleted > 0 {
		m.retentionDeleted.Add(float64(deleted))
	}
	if err == nil {
		m.retentionLastOK.SetToCurrentTime()
	}
}

// RateLimited counts one rejected request.
func (m *Metrics) RateLimited(scope string) {
	if m == nil {
		return
	}
	m.rateLimited.WithLabelValues(scope).Inc()
}
