// Package metrics exposes application metrics in Prometheus format.
package metrics

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "maintenance_dashboard"

// Metrics bundles prometheus collectors and implements port.MetricsRecorder.
type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal       *prometheus.CounterVec
	RequestDurationSec  *prometheus.HistogramVec
	CacheRequests       *prometheus.CounterVec
	CacheRefreshes      *prometheus.CounterVec
	RecordsSkippedTotal *prometheus.CounterVec
	FleetMachines       *prometheus.GaugeVec
	EventsPublished     *prometheus.CounterVec
	RateLimitDropped    prometheus.Counter
}

// New registers collectors on registry. A nil registry gets a fresh one.
func New(registry *prometheus.Registry) *Metrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	m := &Metrics{
		registry: registry,
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"route", "method", "status"}),
		RequestDurationSec: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		CacheRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshot_cache_requests_total",
			Help:      "Snapshot cache lookups by dataset and result.",
		}, []string{"dataset", "result"}),
		CacheRefreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshot_refresh_total",
			Help:      "Snapshot loads by dataset and outcome.",
		}, []string{"dataset", "outcome"}),
		RecordsSkippedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "source_records_skipped_total",
			Help:      "Source records rejected by validation.",
		}, []string{"dataset"}),
		FleetMachines: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "fleet_machines",
			Help:      "Machines in the latest fleet snapshot by status.",
		}, []string{"status"}),
		EventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "Broker events by subject and outcome.",
		}, []string{"subject", "outcome"}),
		RateLimitDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ratelimit_dropped_total",
			Help:      "Requests rejected by the rate limiter.",
		}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.RequestsTotal,
		m.RequestDurationSec,
		m.CacheRequests,
		m.CacheRefreshes,
		m.RecordsSkippedTotal,
		m.FleetMachines,
		m.EventsPublished,
		m.RateLimitDropped,
	)

	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) CacheHit(dataset string) {
	m.CacheRequests.WithLabelValues(dataset, "hit").Inc()
}

func (m *Metrics) CacheMiss(dataset string) {
	m.CacheRequests.WithLabelValues(dataset, "miss").Inc()
}

func (m *Metrics) CacheRefresh(dataset string, err error) {
	m.CacheRefreshes.WithLabelValues(dataset, outcome(err)).Inc()
}

func (m *Metrics) RecordsSkipped(dataset string, count int) {
	m.RecordsSkippedTotal.WithLabelValues(dataset).Add(float64(count))
}

func (m *Metrics) FleetStatus(counts map[string]int) {
	for status, n := range counts {
		m.FleetMachines.WithLabelValues(status).Set(float64(n))
	}
}

func (m *Metrics) EventPublished(subject string, err error) {
	m.EventsPublished.WithLabelValues(subject, outcome(err)).Inc()
}

// RateLimited counts a rejected request.
func (m *Metrics) RateLimited() {
	m.RateLimitDropped.Inc()
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// Middleware records request count and latency. It must wrap the ServeMux directly
// so the matched pattern is visible after the handler returns.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		startedAt := time.Now()
		wrapped := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		route := r.Pattern
		if route == "" {
			route = "other"
		}
		m.RequestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(wrapped.statusCode)).Inc()
		m.RequestDurationSec.WithLabelValues(route, r.Method).Observe(time.Since(startedAt).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (rw *statusRecorder) WriteHeader(statusCode int) {
	rw.statusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

// Hijack passes websocket upgrades through wrapped ResponseWriter.
func (rw *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := rw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not support hijacking")
	}
	return hijacker.Hijack()
}

func (rw *statusRecorder) Flush() {
	if flusher, ok := rw.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}
