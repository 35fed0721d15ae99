package api

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are the counters exported on /metrics.
type Metrics struct {
	// Requests counts codec requests by operation and outcome.
	Requests *prometheus.CounterVec
	// CacheLookups counts result cache lookups by operation and result.
	CacheLookups *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "geohash",
				Name:      "requests_total",
				Help:      "Total number of encode and decode requests",
			},
			[]string{"op", "outcome"},
		),
		CacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "geohash",
				Name:      "cache_lookups_total",
				Help:      "Total number of result cache lookups",
			},
			[]string{"op", "result"},
		),
	}
	reg.MustRegister(m.Requests, m.CacheLookups)
	return m
}
