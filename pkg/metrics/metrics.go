// Package metrics provides Prometheus metrics for the HackMate API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "hackmate"

// Manager holds all Prometheus collectors for the service.
type Manager struct {
	// Matching metrics
	MatchRequests    prometheus.Counter
	CandidatesScored prometheus.Counter
	ScoringLatency   prometheus.Histogram

	// GitHub enrichment metrics, labeled by outcome:
	// valid, invalid, api_failed, cache_hit
	EnrichmentLookups *prometheus.CounterVec

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
}

// New registers and returns the service metrics.
func New() *Manager {
	return &Manager{
		MatchRequests: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "matching",
			Name:      "requests_total",
			Help:      "Total number of teammate matching requests.",
		}),
		CandidatesScored: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "matching",
			Name:      "candidates_scored_total",
			Help:      "Total number of candidates scored across all requests.",
		}),
		ScoringLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "matching",
			Name:      "scoring_duration_seconds",
			Help:      "Time spent ranking candidates, including enrichment lookups.",
			Buckets:   prometheus.DefBuckets,
		}),
		EnrichmentLookups: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "github",
			Name:      "enrichment_lookups_total",
			Help:      "GitHub enrichment lookups by outcome.",
		}, []string{"outcome"}),
		HTTPRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, path and status.",
		}, []string{"method", "path", "status"}),
	}
}
