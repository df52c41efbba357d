package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initGraphMetrics() {
	r.GraphNodesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "graphstats_graph_nodes_total",
			Help: "Number of nodes in the analysed graph",
		},
	)

	r.GraphEdgesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "graphstats_graph_edges_total",
			Help: "Number of edges in the analysed graph",
		},
	)

	r.GraphComponentsTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "graphstats_graph_components_total",
			Help: "Number of connected components in the analysed graph",
		},
	)

	r.GraphTotalWeight = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "graphstats_graph_total_weight",
			Help: "Sum of all edge weights in the analysed graph",
		},
	)

	r.DatasetLoadDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "graphstats_dataset_load_duration_seconds",
			Help:    "Time spent reading and building the graph in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
		},
	)

	r.DatasetRecordsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphstats_dataset_records_total",
			Help: "Dataset rows read, by kind",
		},
		[]string{"kind"}, // node, edge
	)
}
