package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initRuntimeMetrics() {
	r.RunsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "graphstats_runs_total",
			Help: "Analysis sessions started",
		},
	)

	r.registry.MustRegister(collectors.NewGoCollector())
}
