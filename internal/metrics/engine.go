package metrics

import "github.com/prometheus/client_golang/prometheus"

// Engine Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "folio",
			Name:      "search_requests_total",
			Help:      "Total number of search requests",
		},
		[]string{"type", "sort"},
	)

	SearchResults = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "folio",
			Name:      "search_results",
			Help:      "Number of results matched per search before capping",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100},
		},
	)

	VotesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "folio",
			Name:      "votes_total",
			Help:      "Total vote toggles by target kind and resulting action",
		},
		[]string{"target", "action"},
	)

	VoteResetsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "folio",
			Name:      "vote_resets_total",
			Help:      "Total administrative tally resets",
		},
	)

	SpamDecisionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "folio",
			Name:      "spam_decisions_total",
			Help:      "Classifier decisions by submission path",
		},
		[]string{"path", "decision"},
	)
)

var engineMetricsRegistered bool

// RegisterEngineMetrics registers search, vote and spam metrics. Must be called once from main.
func RegisterEngineMetrics() {
	if engineMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(SearchResults)
	prometheus.MustRegister(VotesTotal)
	prometheus.MustRegister(VoteResetsTotal)
	prometheus.MustRegister(SpamDecisionsTotal)
	engineMetricsRegistered = true
}
