package metrics

import (
	"fmt"
	"io"
	"time"

	"github.com/prometheus/common/expfmt"
)

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// RecordGraph records the size of a freshly built graph
func (r *Registry) RecordGraph(nodes, edges, components int, totalWeight float64) {
	r.GraphNodesTotal.Set(float64(nodes))
	r.GraphEdgesTotal.Set(float64(edges))
	r.GraphComponentsTotal.Set(float64(components))
	r.GraphTotalWeight.Set(totalWeight)
}

// RecordLoad records a dataset load
func (r *Registry) RecordLoad(nodeRows, edgeRows int, duration time.Duration) {
	r.DatasetRecordsTotal.WithLabelValues("node").Add(float64(nodeRows))
	r.DatasetRecordsTotal.WithLabelValues("edge").Add(float64(edgeRows))
	r.DatasetLoadDuration.Observe(duration.Seconds())
}

// RecordAnalysis records one analysis run
func (r *Registry) RecordAnalysis(analysis string, duration time.Duration, err error) {
	status := StatusOK
	if err != nil {
		status = StatusError
	}
	r.AnalysesTotal.WithLabelValues(analysis, status).Inc()
	r.AnalysisDuration.WithLabelValues(analysis).Observe(duration.Seconds())
}

// RecordEigenvector records how many iterations power iteration needed
func (r *Registry) RecordEigenvector(iterations int) {
	r.EigenvectorIterations.Observe(float64(iterations))
}

// RecordCliques adds to the enumerated clique count
func (r *Registry) RecordCliques(count int) {
	r.CliquesEnumeratedTotal.Add(float64(count))
}

// SetGroupMissing records how many members of a group were not in the graph
func (r *Registry) SetGroupMissing(group string, missing int) {
	r.GroupMissingMembers.WithLabelValues(group).Set(float64(missing))
}

// StartRun counts a new analysis session
func (r *Registry) StartRun() {
	r.RunsTotal.Inc()
}

// WriteText writes every registered metric in the Prometheus text
// exposition format.
func (r *Registry) WriteText(w io.Writer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	families, err := r.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("encode metric %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
