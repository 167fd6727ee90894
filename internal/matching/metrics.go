package matching

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	matchRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matching_requests_total",
			Help: "Total number of match requests by direction",
		},
		[]string{"direction"},
	)

	blendedScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "matching_blended_scores",
			Help:    "Distribution of blended match scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	candidatePoolSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "matching_candidate_pool_size",
			Help:    "Size of the candidate pool before filtering",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
		[]string{"direction"},
	)

	cacheResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matching_cache_results_total",
			Help: "Match cache lookups by outcome",
		},
		[]string{"direction", "outcome"},
	)
)

func recordMatchRequest(direction string) {
	matchRequestsTotal.WithLabelValues(direction).Inc()
}

func recordBlendedScore(score int) {
	blendedScores.Observe(float64(score))
}

func recordPoolSize(direction string, size int) {
	candidatePoolSize.WithLabelValues(direction).Observe(float64(size))
}

func recordCacheResult(direction, outcome string) {
	cacheResults.WithLabelValues(direction, outcome).Inc()
}
