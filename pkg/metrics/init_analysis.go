package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initAnalysisMetrics() {
	r.AnalysesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphstats_analyses_total",
			Help: "Analyses run, by analysis and outcome",
		},
		[]string{"analysis", "status"}, // ok, error
	)

	r.AnalysisDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "graphstats_analysis_duration_seconds",
			Help:    "Analysis duration in seconds",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1.0, 10.0, 60.0},
		},
		[]string{"analysis"},
	)

	r.EigenvectorIterations = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "graphstats_eigenvector_iterations",
			Help:    "Power iterations needed for eigenvector centrality to converge",
			Buckets: prometheus.ExponentialBuckets(1, 2, 11),
		},
	)

	r.CliquesEnumeratedTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "graphstats_cliques_enumerated_total",
			Help: "Cliques produced by full clique enumeration",
		},
	)

	r.GroupMissingMembers = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "graphstats_group_missing_members",
			Help: "Configured group members absent from the graph",
		},
		[]string{"group"},
	)
}
