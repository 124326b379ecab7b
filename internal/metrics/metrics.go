// Package metrics registers the Prometheus collectors of the analyzer.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for AnalysesTotal.
const (
	OutcomeSuccess     = "success"
	OutcomeInvalidURL  = "invalid_url"
	OutcomeFetchFailed = "fetch_failed"
	OutcomeError       = "error"
)

// Counts analyses by outcome.
var AnalysesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "seotags_analyses_total",
		Help: "Total number of page analyses by outcome",
	},
	[]string{"outcome"},
)

// Distribution of overall page scores.
var ScoreDistribution = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "seotags_score",
	Help:    "Overall meta tag score of analysed pages",
	Buckets: prometheus.LinearBuckets(0, 10, 11),
})

// Fetch metrics
var (
	FetchLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "seotags_fetch_latency_seconds",
		Help:    "Time taken to fetch the analysed page",
		Buckets: prometheus.ExponentialBuckets(0.05, 2, 10), // From 50ms to ~25s
	})

	FetchErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seotags_fetch_errors_total",
			Help: "Total number of failed page fetches by category",
		},
		[]string{"category"},
	)

	TagStatus = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seotags_tag_status_total",
			Help: "Evaluated tags by tag name and status",
		},
		[]string{"tag", "status"},
	)
)
