package analysis

import (
	"github.com/dd0wney/cluso-graphstats/pkg/algorithms"
	"github.com/dd0wney/cluso-graphstats/pkg/config"
	"github.com/dd0wney/cluso-graphstats/pkg/graph"
	"github.com/dd0wney/cluso-graphstats/pkg/logging"
	"github.com/dd0wney/cluso-graphstats/pkg/metrics"
	"github.com/dd0wney/cluso-graphstats/pkg/ranking"
)

// session binds one graph and one report to the analyses that fill it.
type session struct {
	cfg     *config.Config
	g       *graph.Graph
	report  *Report
	logger  logging.Logger
	metrics *metrics.Registry
}

func (s *session) topK() int {
	return s.cfg.Analysis.TopK
}

// tasks lists every analysis for this session. Slices of the report that
// several tasks write into are sized here so that tasks never append.
func (s *session) tasks() []task {
	tasks := []task{
		{analysis: AnalysisSummary, run: s.summary},
		{analysis: AnalysisTopEdges, run: s.topEdges},
		{analysis: AnalysisDegree, run: s.degree},
		{analysis: AnalysisCloseness, run: s.closeness},
		{analysis: AnalysisBetweenness, run: s.betweenness},
		{analysis: AnalysisEigenvector, run: s.eigenvector},
		{analysis: AnalysisCliques, run: s.cliques},
		{analysis: AnalysisKCore, run: s.kcore},
		{analysis: AnalysisCoreNumbers, run: s.coreNumbers},
		{analysis: AnalysisTriads, run: s.triads},
		{analysis: AnalysisClustering, run: s.clustering},
	}

	s.report.Groups = make([]GroupReport, len(s.cfg.Groups))
	for i, group := range s.cfg.Groups {
		s.report.Groups[i].Name = group.Name
		tasks = append(tasks,
			task{analysis: AnalysisGroupDegree, target: group.Name, run: func() error { return s.groupDegree(i, group) }},
			task{analysis: AnalysisGroupCloseness, target: group.Name, run: func() error { return s.groupCloseness(i, group) }},
			task{analysis: AnalysisGroupBetweenness, target: group.Name, run: func() error { return s.groupBetweenness(i, group) }},
		)
	}

	s.report.EgoNetworks = make([]EgoReport, len(s.cfg.EgoCenters))
	for i, center := range s.cfg.EgoCenters {
		s.report.EgoNetworks[i].Center = center
		tasks = append(tasks, task{analysis: AnalysisEgo, target: string(center), run: func() error { return s.ego(i, center) }})
	}

	return tasks
}

func (s *session) summary() error {
	s.report.Summary = algorithms.Summarize(s.g)
	s.report.Components = s.g.ConnectedComponents()
	if !s.report.Summary.Connected {
		s.logger.Warn("graph is disconnected, eccentricity metrics skipped",
			logging.Analysis(AnalysisSummary), logging.Count(s.report.Summary.Components))
	}
	return nil
}

func (s *session) topEdges() error {
	s.report.TopEdges = ranking.TopEdges(s.g, s.topK())
	return nil
}

func (s *session) degree() error {
	scores, err := algorithms.DegreeCentrality(s.g)
	if err != nil {
		return err
	}
	s.report.Centrality.Degree = ranking.TopScores(s.g, scores, s.topK())
	return nil
}

func (s *session) closeness() error {
	scores, err := algorithms.ClosenessCentrality(s.g)
	if err != nil {
		return err
	}
	s.report.Centrality.Closeness = ranking.TopScores(s.g, scores, s.topK())
	return nil
}

func (s *session) betweenness() error {
	scores, err := algorithms.BetweennessCentrality(s.g)
	if err != nil {
		return err
	}
	s.report.Centrality.Betweenness = ranking.TopScores(s.g, scores, s.topK())
	return nil
}

func (s *session) eigenvector() error {
	result, err := algorithms.EigenvectorCentrality(s.g, s.cfg.EigenvectorOptions())
	if err != nil {
		return err
	}
	s.metrics.RecordEigenvector(result.Iterations)
	s.logger.Debug("eigenvector converged",
		logging.Analysis(AnalysisEigenvector), logging.Int("iterations", result.Iterations))

	s.report.Centrality.Eigenvector = ranking.TopScores(s.g, result.Scores, s.topK())
	s.report.Centrality.EigenvectorIterations = result.Iterations
	return nil
}

func (s *session) groupDegree(i int, group algorithms.Group) error {
	result, err := algorithms.GroupDegreeCentrality(s.g, group)
	if err != nil {
		return err
	}
	// Reported once per group; the other group measures see the same members
	s.metrics.SetGroupMissing(group.Name, len(result.Missing))
	if len(result.Missing) > 0 {
		for _, id := range result.Missing {
			s.logger.Warn("group member not in graph", logging.Group(group.Name), logging.Node(string(id)))
		}
	}
	s.report.Groups[i].Degree = result
	return nil
}

func (s *session) groupCloseness(i int, group algorithms.Group) error {
	result, err := algorithms.GroupClosenessCentrality(s.g, group, s.cfg.UnreachablePolicy())
	if err != nil {
		return err
	}
	if result.Unreachable > 0 {
		s.logger.Warn("nodes cannot reach group, excluded from closeness",
			logging.Group(group.Name), logging.Count(result.Unreachable))
	}
	s.report.Groups[i].Closeness = result
	return nil
}

func (s *session) groupBetweenness(i int, group algorithms.Group) error {
	result, err := algorithms.GroupBetweennessCentrality(s.g, group)
	if err != nil {
		return err
	}
	s.report.Groups[i].Betweenness = result
	return nil
}

func (s *session) cliques() error {
	minSize := s.cfg.Analysis.CliqueMinSize

	top, stats := algorithms.RankCliques(s.g, s.topK(), minSize)
	s.metrics.RecordCliques(stats.Count)

	maximal := algorithms.MaximalCliques(s.g)
	s.report.Cliques = CliqueReport{
		Stats:        stats,
		Top:          top,
		MaximalCount: len(maximal),
		Largest:      ranking.TopK(maximal, s.topK(), func(c algorithms.Clique) int { return len(c) }, nil),
	}
	return nil
}

func (s *session) kcore() error {
	k := s.cfg.Analysis.KCore
	var core *graph.Graph
	var err error
	if k == 0 {
		core, k, err = algorithms.HighestNonemptyKCore(s.g)
	} else {
		core, err = algorithms.KCore(s.g, k)
	}
	if err != nil {
		return err
	}

	edges, total := algorithms.WeightedEdges(core)
	s.report.KCore = &KCoreReport{K: k, Nodes: core.Nodes(), Edges: edges, TotalWeight: total}
	s.logger.Debug("kcore selected", logging.Analysis(AnalysisKCore), logging.K(k),
		logging.Count(core.NodeCount()), logging.Float64("total_weight", total))
	return nil
}

func (s *session) coreNumbers() error {
	s.report.CoreNumbers = ranking.TopCounts(s.g, algorithms.CoreNumbers(s.g), s.topK())
	return nil
}

func (s *session) triads() error {
	triads := algorithms.AllTriads(s.g)
	s.report.Triads = TriadReport{
		Count: len(triads),
		Open:  algorithms.OpenTriads(s.g),
		Top: ranking.TopK(triads, s.topK(),
			func(t algorithms.Triad) float64 { return t.TotalWeight }, nil),
	}
	return nil
}

func (s *session) clustering() error {
	s.report.Clustering = ClusteringReport{
		Triangles: ranking.TopCounts(s.g, algorithms.TriangleCountPerNode(s.g), s.topK()),
		Top:       ranking.TopScores(s.g, algorithms.ClusteringPerNode(s.g), s.topK()),
		Histogram: algorithms.ClusteringHistogram(s.g, s.cfg.Analysis.HistogramBins),
	}
	return nil
}

func (s *session) ego(i int, center graph.NodeID) error {
	ego, err := algorithms.EgoNetwork(s.g, center)
	if err != nil {
		return err
	}
	edges, _ := algorithms.WeightedEdges(ego)
	s.logger.Debug("ego network built", logging.Analysis(AnalysisEgo),
		logging.Node(string(center)), logging.Count(ego.NodeCount()))
	s.report.EgoNetworks[i] = EgoReport{
		Center: center,
		Label:  s.g.Label(center),
		Nodes:  ego.Nodes(),
		Edges:  edges,
	}
	return nil
}

