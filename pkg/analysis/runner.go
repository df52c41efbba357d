package analysis

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/dd0wney/cluso-graphstats/pkg/config"
	"github.com/dd0wney/cluso-graphstats/pkg/dataset"
	"github.com/dd0wney/cluso-graphstats/pkg/graph"
	"github.com/dd0wney/cluso-graphstats/pkg/logging"
	"github.com/dd0wney/cluso-graphstats/pkg/metrics"
)

// Runner executes the analyses selected by a Config. A Runner may be reused
// for several graphs; each Run gets its own Report and run ID.
type Runner struct {
	cfg     *config.Config
	logger  logging.Logger
	metrics *metrics.Registry
}

// NewRunner creates a runner. A nil logger discards logs and a nil registry
// is replaced by a private one.
func NewRunner(cfg *config.Config, logger logging.Logger, reg *metrics.Registry) *Runner {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if reg == nil {
		reg = metrics.NewRegistry()
	}
	return &Runner{cfg: cfg, logger: logger, metrics: reg}
}

// Metrics returns the registry the runner records into.
func (r *Runner) Metrics() *metrics.Registry {
	return r.metrics
}

// LoadGraph reads the configured dataset and builds the graph.
func (r *Runner) LoadGraph() (*graph.Graph, error) {
	timer := logging.StartTimer(r.logger, "dataset loaded",
		logging.Path(r.cfg.Dataset.Nodes), logging.String("edges_path", r.cfg.Dataset.Edges))

	ds, err := dataset.Load(r.cfg.Dataset.Nodes, r.cfg.Dataset.Edges)
	if err != nil {
		timer.EndError(err)
		return nil, err
	}
	g, err := ds.Build(r.cfg.BuildOptions())
	if err != nil {
		timer.EndError(err)
		return nil, err
	}

	elapsed := timer.End(logging.Int("nodes", g.NodeCount()), logging.Int("edges", g.EdgeCount()))
	r.metrics.RecordLoad(len(ds.Nodes), len(ds.Edges), elapsed)
	return g, nil
}

// task is one independent analysis. It writes only to its own part of the
// report and returns the analysis error, if any.
type task struct {
	analysis string
	target   string
	run      func() error
}

// Run executes every analysis over g. Failed analyses are recorded in the
// report and do not stop the others; only context cancellation makes Run
// return an error.
func (r *Runner) Run(ctx context.Context, g *graph.Graph) (*Report, error) {
	start := time.Now()
	report := &Report{
		RunID:       uuid.New().String(),
		GeneratedAt: start.UTC(),
		TopK:        r.cfg.Analysis.TopK,
	}
	logger := r.logger.With(logging.RunID(report.RunID))

	r.metrics.StartRun()
	r.metrics.RecordGraph(g.NodeCount(), g.EdgeCount(), len(g.ConnectedComponents()), g.TotalWeight())
	logger.Info("analysis started",
		logging.Int("nodes", g.NodeCount()),
		logging.Int("edges", g.EdgeCount()),
		logging.Bool("connected", g.IsConnected()),
		logging.Int("workers", r.cfg.Workers))

	s := &session{cfg: r.cfg, g: g, report: report, logger: logger, metrics: r.metrics}
	tasks := s.tasks()

	var mu sync.Mutex
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(r.cfg.Workers)

	for _, t := range tasks {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}

			fields := []logging.Field{logging.Analysis(t.analysis)}
			if t.target != "" {
				fields = append(fields, logging.String("target", t.target))
			}
			timer := logging.StartTimer(logger, "analysis finished", fields...)

			err := t.run()
			if err != nil {
				r.metrics.RecordAnalysis(t.analysis, timer.EndError(err), err)
				mu.Lock()
				report.Errors = append(report.Errors, AnalysisError{
					Analysis: t.analysis,
					Target:   t.target,
					Message:  err.Error(),
				})
				mu.Unlock()
				return nil
			}
			r.metrics.RecordAnalysis(t.analysis, timer.End(), nil)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		logger.Warn("analysis cancelled", logging.Error(err))
		return nil, fmt.Errorf("run %s: %w", report.RunID, err)
	}

	slices.SortFunc(report.Errors, func(a, b AnalysisError) int {
		return cmp.Or(cmp.Compare(a.Analysis, b.Analysis), cmp.Compare(a.Target, b.Target))
	})
	report.Duration = time.Since(start)

	logger.Info("analysis complete",
		logging.Count(len(tasks)),
		logging.Int("failed", len(report.Errors)),
		logging.Duration("duration", report.Duration))
	return report, nil
}
