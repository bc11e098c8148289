// Package dnsmetrics exposes the Prometheus counters and histograms the
// resolver and transport layer record against.
package dnsmetrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles the counters/histograms a Resolver and its transports
// record against. The zero value is not usable; construct with New or
// NewUnregistered.
type Metrics struct {
	Queries      *prometheus.CounterVec   // labels: transport, result
	Retries      prometheus.Counter
	SpoofDropped prometheus.Counter
	CacheLookups *prometheus.CounterVec // labels: outcome (hit|miss)
	QueryLatency *prometheus.HistogramVec // labels: transport
	BytesSent    *prometheus.CounterVec   // labels: transport
	BytesRecv    *prometheus.CounterVec   // labels: transport
}

// New builds a Metrics and registers it against reg. Passing nil uses
// prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := newMetrics()
	reg.MustRegister(m.Queries, m.Retries, m.SpoofDropped, m.CacheLookups, m.QueryLatency, m.BytesSent, m.BytesRecv)
	return m
}

// NewUnregistered builds a Metrics without registering it anywhere, for
// tests that construct a Resolver repeatedly and would otherwise trip
// Prometheus's duplicate-registration panic.
func NewUnregistered() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		Queries: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "dnsdig_queries_total", Help: "Total resolver queries by transport and result"},
			[]string{"transport", "result"},
		),
		Retries: prometheus.NewCounter(
			prometheus.CounterOpts{Name: "dnsdig_udp_retries_total", Help: "Total UDP transmit retries"},
		),
		SpoofDropped: prometheus.NewCounter(
			prometheus.CounterOpts{Name: "dnsdig_spoof_dropped_total", Help: "Replies dropped by the spoof guard"},
		),
		CacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "dnsdig_cache_lookups_total", Help: "Cache lookups by outcome"},
			[]string{"outcome"},
		),
		QueryLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{Name: "dnsdig_query_duration_seconds", Help: "Resolve latency by transport", Buckets: prometheus.DefBuckets},
			[]string{"transport"},
		),
		BytesSent: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "dnsdig_bytes_sent_total", Help: "Bytes sent by transport"},
			[]string{"transport"},
		),
		BytesRecv: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "dnsdig_bytes_received_total", Help: "Bytes received by transport"},
			[]string{"transport"},
		),
	}
}

// ObserveQuery records one completed query attempt.
func (m *Metrics) ObserveQuery(transport, result string, d time.Duration) {
	m.Queries.WithLabelValues(transport, result).Inc()
	m.QueryLatency.WithLabelValues(transport).Observe(d.Seconds())
}

// ObserveCache records a cache hit or miss.
func (m *Metrics) ObserveCache(hit bool) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	m.CacheLookups.WithLabelValues(outcome).Inc()
}
