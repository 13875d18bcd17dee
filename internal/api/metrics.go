package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "matchwise_requests_total",
		Help: "API requests by endpoint and status.",
	}, []string{"endpoint", "status"})

	matchCandidates = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "matchwise_match_candidates",
		Help:    "Recipient pool size per match request.",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500},
	})

	matchTopScore = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "matchwise_match_top_score",
		Help:    "Best overall score per match request.",
		Buckets: prometheus.LinearBuckets(0.3, 0.05, 14),
	})
)
