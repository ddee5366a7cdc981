package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "petcare"

// Metrics agrupa los collectors del servicio. Un *Metrics nil es válido:
// todos los métodos son no-op, así los services no necesitan chequear.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	hnAllocations prometheus.Counter
	hnConflicts   prometheus.Counter
	hnGaps        prometheus.Counter

	diagnoses       *prometheus.CounterVec
	translations    *prometheus.CounterVec
	recordsSaved    prometheus.Counter
	reports         *prometheus.CounterVec
	lookupScanned   prometheus.Histogram
	lookups         *prometheus.CounterVec
	sessionsActive  prometheus.Gauge
	sessionsExpired prometheus.Counter

	upstreamCalls    *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "http", Name: "requests_total",
			Help: "HTTP requests by route pattern, method and status code.",
		}, []string{"route", "method", "code"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "http", Name: "request_duration_seconds",
			Help:    "HTTP request latency by route pattern.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		hnAllocations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "hn", Name: "allocations_total",
			Help: "HN counters reserved successfully.",
		}),
		hnConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "hn", Name: "conflicts_total",
			Help: "Conditional counter writes lost to a concurrent writer.",
		}),
		hnGaps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "hn", Name: "gaps_total",
			Help: "Reserved HN counters whose pet write failed.",
		}),
		diagnoses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "illness", Name: "diagnoses_total",
			Help: "Diagnosis requests by outcome.",
		}, []string{"outcome"}),
		translations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "illness", Name: "translations_total",
			Help: "Symptom translations by outcome.",
		}, []string{"outcome"}),
		recordsSaved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "illness", Name: "records_saved_total",
			Help: "Illness records persisted.",
		}),
		reports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "report", Name: "generated_total",
			Help: "PDF reports served, by source (rendered or archive).",
		}, []string{"source"}),
		lookupScanned: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "lookup", Name: "owners_scanned",
			Help:    "Owners visited per cross-owner HN lookup.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		}),
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "lookup", Name: "requests_total",
			Help: "Cross-owner lookups by outcome.",
		}, []string{"outcome"}),
		sessionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "illness", Name: "sessions_active",
			Help: "Record-creation sessions held in memory.",
		}),
		sessionsExpired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "illness", Name: "sessions_expired_total",
			Help: "Record-creation sessions purged after their TTL.",
		}),
		upstreamCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "upstream", Name: "requests_total",
			Help: "Calls to external REST APIs by upstream and status code.",
		}, []string{"upstream", "code"}),
		upstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "upstream", Name: "request_duration_seconds",
			Help:    "External REST API latency by upstream.",
			Buckets: prometheus.DefBuckets,
		}, []string{"upstream"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequests, m.HTTPDuration,
		m.hnAllocations, m.hnConflicts, m.hnGaps,
		m.diagnoses, m.translations, m.recordsSaved, m.reports,
		m.lookupScanned, m.lookups,
		m.sessionsActive, m.sessionsExpired,
		m.upstreamCalls, m.upstreamDuration,
	)
	return m
}

// Handler expone /metrics para este registry.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) HNAllocated() {
	if m != nil {
		m.hnAllocations.Inc()
	}
}

func (m *Metrics) HNConflict() {
	if m != nil {
		m.hnConflicts.Inc()
	}
}

func (m *Metrics) HNGap() {
	if m != nil {
		m.hnGaps.Inc()
	}
}

// Diagnosis registra el resultado: ok, invalid, unavailable.
func (m *Metrics) Diagnosis(outcome string) {
	if m != nil {
		m.diagnoses.WithLabelValues(outcome).Inc()
	}
}

// Translation registra el resultado: ok, fallback.
func (m *Metrics) Translation(outcome string) {
	if m != nil {
		m.translations.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) RecordSaved() {
	if m != nil {
		m.recordsSaved.Inc()
	}
}

// Report registra el origen del PDF: rendered, archive.
func (m *Metrics) Report(source string) {
	if m != nil {
		m.reports.WithLabelValues(source).Inc()
	}
}

// Lookup registra cuántos owners se recorrieron y el resultado: found, not_found, error.
func (m *Metrics) Lookup(scanned int, outcome string) {
	if m != nil {
		m.lookupScanned.Observe(float64(scanned))
		m.lookups.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) SessionsActive(n int) {
	if m != nil {
		m.sessionsActive.Set(float64(n))
	}
}

func (m *Metrics) SessionExpired() {
	if m != nil {
		m.sessionsExpired.Inc()
	}
}

// Upstream registra una llamada a una API externa. code es el status HTTP o "error".
func (m *Metrics) Upstream(name, code string, d time.Duration) {
	if m != nil {
		m.upstreamCalls.WithLabelValues(name, code).Inc()
		m.upstreamDuration.WithLabelValues(name).Observe(d.Seconds())
	}
}
