// Package metrics holds the Prometheus collectors of the service. They are
// registered on the default registry and served by the /metrics route.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeOK      = "ok"
	OutcomeNoMatch = "no_match"
	OutcomeError   = "error"
	OutcomeStale   = "stale"

	PosterFound   = "found"
	PosterMissing = "missing"
	PosterError   = "error"
)

var (
	// RecommendationsTotal counts finished recommendation calls by recommender and outcome.
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "popchoice_recommendations_total",
			Help: "Total number of recommendation requests by outcome",
		},
		[]string{"recommender", "outcome"},
	)

	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "popchoice_recommendation_duration_seconds",
			Help:    "Duration of recommendation requests in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"recommender"},
	)

	PosterLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "popchoice_poster_lookups_total",
			Help: "Total number of poster lookups by result",
		},
		[]string{"result"},
	)

	FlowsStartedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "popchoice_flows_started_total",
			Help: "Total number of wizard flows created",
		},
	)

	WebsocketClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "popchoice_websocket_clients",
			Help: "Number of connected websocket clients",
		},
	)
)

func RecordRecommendation(recommender, outcome string, took time.Duration) {
	RecommendationsTotal.WithLabelValues(recommender, outcome).Inc()
	RecommendationDuration.WithLabelValues(recommender).Observe(took.Seconds())
}

func RecordPosterLookup(result string) {
	PosterLookupsTotal.WithLabelValues(result).Inc()
}
