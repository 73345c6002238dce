package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Metrics holds all Prometheus metrics for the portal.
type Metrics struct {
	// Registry owns every portal metric; the /metrics endpoint serves it.
	Registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	upstreamErrors  *prometheus.CounterVec
	cacheHits       *prometheus.CounterVec
	cacheMisses     *prometheus.CounterVec
	sessionEvents   *prometheus.CounterVec
	exportsTotal    *prometheus.CounterVec
	refetchesTotal  *prometheus.CounterVec
}

// NewMetrics registers every portal metric in a fresh private registry.
// Tests build the full stack repeatedly; registering into the global
// registry would panic on the second NewMetrics call.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "portal_request_duration_seconds",
				Help:    "Duration of upstream operations.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		upstreamErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portal_upstream_errors_total",
				Help: "Total errors from the backend API by domain.",
			},
			[]string{"domain"},
		),
		cacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portal_cache_hits_total",
				Help: "Total cache hits.",
			},
			[]string{"cache"},
		),
		cacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portal_cache_misses_total",
				Help: "Total cache misses.",
			},
			[]string{"cache"},
		),
		sessionEvents: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portal_session_events_total",
				Help: "Session lifecycle events (login, logout, expired, bootstrap).",
			},
			[]string{"event"},
		),
		exportsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portal_exports_total",
				Help: "Spreadsheet exports by report and outcome.",
			},
			[]string{"report", "outcome"},
		),
		refetchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portal_collection_refetches_total",
				Help: "Full collection refetches triggered by workflow actions.",
			},
			[]string{"collection"},
		),
	}
}

// RecordRequestDuration records the duration of an upstream operation.
func (m *Metrics) RecordRequestDuration(operation string, d time.Duration) {
	m.requestDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// IncrUpstreamError increments the upstream error counter for a domain.
func (m *Metrics) IncrUpstreamError(domain string) {
	m.upstreamErrors.WithLabelValues(domain).Inc()
}

// IncrCacheHit increments the cache hit counter.
func (m *Metrics) IncrCacheHit(cache string) {
	m.cacheHits.WithLabelValues(cache).Inc()
}

// IncrCacheMiss increments the cache miss counter.
func (m *Metrics) IncrCacheMiss(cache string) {
	m.cacheMisses.WithLabelValues(cache).Inc()
}

// IncrSessionEvent increments the session lifecycle event counter.
func (m *Metrics) IncrSessionEvent(event string) {
	m.sessionEvents.WithLabelValues(event).Inc()
}

// IncrExport counts a spreadsheet export attempt.
func (m *Metrics) IncrExport(report, outcome string) {
	m.exportsTotal.WithLabelValues(report, outcome).Inc()
}

// IncrRefetch counts an action-triggered collection refetch.
func (m *Metrics) IncrRefetch(collection string) {
	m.refetchesTotal.WithLabelValues(collection).Inc()
}

// SessionSnapshot is a point-in-time view of the session counters,
// served by GET /v1/metrics/portal.
type SessionSnapshot struct {
	Logins     int64 `json:"logins"`
	Logouts    int64 `json:"logouts"`
	Expired    int64 `json:"expired"`
	Bootstraps int64 `json:"bootstraps"`
}

// GetSessionSnapshot reads the current session counter values.
func (m *Metrics) GetSessionSnapshot() *SessionSnapshot {
	return &SessionSnapshot{
		Logins:     int64(getCounterValue(m.sessionEvents, "login")),
		Logouts:    int64(getCounterValue(m.sessionEvents, "logout")),
		Expired:    int64(getCounterValue(m.sessionEvents, "expired")),
		Bootstraps: int64(getCounterValue(m.sessionEvents, "bootstrap")),
	}
}

// getCounterValue reads one labeled counter's current value.
func getCounterValue(cv *prometheus.CounterVec, label string) float64 {
	counter := cv.WithLabelValues(label)
	m := &dto.Metric{}
	if err := counter.(prometheus.Metric).Write(m); err != nil {
		return 0
	}
	if m.Counter != nil && m.Counter.Value != nil {
		return *m.Counter.Value
	}
	return 0
}
