package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for one analysis session
type Registry struct {
	// Graph Metrics
	GraphNodesTotal      prometheus.Gauge
	GraphEdgesTotal      prometheus.Gauge
	GraphComponentsTotal prometheus.Gauge
	GraphTotalWeight     prometheus.Gauge
	DatasetLoadDuration  prometheus.Histogram
	DatasetRecordsTotal  *prometheus.CounterVec

	// Analysis Metrics
	AnalysesTotal          *prometheus.CounterVec
	AnalysisDuration       *prometheus.HistogramVec
	EigenvectorIterations  prometheus.Histogram
	CliquesEnumeratedTotal prometheus.Counter
	GroupMissingMembers    *prometheus.GaugeVec

	// Runtime Metrics
	RunsTotal prometheus.Counter

	registry *prometheus.Registry
	mu       sync.Mutex
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
	}

	r.initGraphMetrics()
	r.initAnalysisMetrics()
	r.initRuntimeMetrics()

	return r
}
