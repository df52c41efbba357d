package analysis

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-graphstats/pkg/algorithms"
	"github.com/dd0wney/cluso-graphstats/pkg/config"
	"github.com/dd0wney/cluso-graphstats/pkg/graph"
	"github.com/dd0wney/cluso-graphstats/pkg/graph/graphtest"
	"github.com/dd0wney/cluso-graphstats/pkg/logging"
	"github.com/dd0wney/cluso-graphstats/pkg/metrics"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Groups = []algorithms.Group{{Name: "G", Members: []graph.NodeID{"A", "Z"}}}
	cfg.EgoCenters = []graph.NodeID{"A", "X"}
	return cfg
}

func findError(report *Report, analysis, target string) *AnalysisError {
	for i := range report.Errors {
		if report.Errors[i].Analysis == analysis && report.Errors[i].Target == target {
			return &report.Errors[i]
		}
	}
	return nil
}

func TestRun_TwoComponents(t *testing.T) {
	cfg := testConfig(t)
	reg := metrics.NewRegistry()
	var logs bytes.Buffer
	runner := NewRunner(cfg, logging.NewJSONLogger(&logs, logging.DebugLevel), reg)

	report, err := runner.Run(context.Background(), graphtest.TwoComponents())
	require.NoError(t, err)

	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, cfg.Analysis.TopK, report.TopK)

	require.NotNil(t, report.Summary)
	assert.Equal(t, 5, report.Summary.Nodes)
	assert.Equal(t, 4, report.Summary.Edges)
	assert.False(t, report.Summary.Connected)
	assert.Len(t, report.Components, 2)

	// Centrality rankings cover every node
	assert.Len(t, report.Centrality.Degree, 5)
	assert.Len(t, report.Centrality.Closeness, 5)
	assert.Len(t, report.Centrality.Betweenness, 5)
	require.Len(t, report.Centrality.Eigenvector, 5)
	assert.Equal(t, graph.NodeID("A"), report.Centrality.Degree[0].NodeID)
	assert.Positive(t, report.Centrality.EigenvectorIterations)

	// Cliques and cores
	assert.Equal(t, 1, report.Cliques.Stats.Count)
	assert.Equal(t, 3, report.Cliques.Stats.LargestSize)
	assert.Equal(t, 2, report.Cliques.MaximalCount)
	require.NotEmpty(t, report.Cliques.Largest)
	assert.Len(t, report.Cliques.Largest[0], 3)

	require.NotNil(t, report.KCore)
	assert.Equal(t, 2, report.KCore.K)
	assert.Equal(t, []graph.NodeID{"A", "B", "C"}, report.KCore.Nodes)
	assert.Equal(t, 3.0, report.KCore.TotalWeight)

	assert.Equal(t, 1, report.Triads.Count)
	assert.Equal(t, 0, report.Triads.Open)
	assert.Len(t, report.Clustering.Histogram, config.DefaultHistogramBins)
	assert.Len(t, report.TopEdges, 4)

	// Group with a missing member and two unreachable nodes
	require.Len(t, report.Groups, 1)
	group := report.Groups[0]
	require.NotNil(t, group.Degree)
	require.NotNil(t, group.Closeness)
	require.NotNil(t, group.Betweenness)
	assert.Equal(t, []graph.NodeID{"Z"}, group.Degree.Missing)
	assert.Equal(t, 2, group.Closeness.Unreachable)
	assert.InDelta(t, 1.0, group.Closeness.Value, 1e-12)

	// Ego network of A is the triangle, X is unknown
	require.Len(t, report.EgoNetworks, 2)
	assert.ElementsMatch(t, []graph.NodeID{"A", "B", "C"}, report.EgoNetworks[0].Nodes)
	assert.Len(t, report.EgoNetworks[0].Edges, 3)

	require.Len(t, report.Errors, 1)
	egoErr := findError(report, AnalysisEgo, "X")
	require.NotNil(t, egoErr)
	assert.Contains(t, egoErr.Message, "node not found")
	assert.True(t, report.Failed())

	assert.Equal(t, 1.0, testutil.ToFloat64(reg.RunsTotal))
	assert.Equal(t, 5.0, testutil.ToFloat64(reg.GraphNodesTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(reg.AnalysesTotal.WithLabelValues(AnalysisDegree, metrics.StatusOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(reg.AnalysesTotal.WithLabelValues(AnalysisEgo, metrics.StatusError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(reg.GroupMissingMembers.WithLabelValues("G")))

	assert.Contains(t, logs.String(), `"msg":"group member not in graph"`)
	assert.Contains(t, logs.String(), `"node":"Z"`)
	assert.Contains(t, logs.String(), `"connected":false`)
	assert.Contains(t, logs.String(), `"msg":"ego network built"`)
	assert.Contains(t, logs.String(), report.RunID)
}

func TestRun_UnreachableUndefined(t *testing.T) {
	cfg := testConfig(t)
	cfg.Analysis.Unreachable = algorithms.UnreachableUndefined.String()
	cfg.EgoCenters = nil

	report, err := NewRunner(cfg, nil, nil).Run(context.Background(), graphtest.TwoComponents())
	require.NoError(t, err)

	require.Len(t, report.Errors, 1)
	assert.NotNil(t, findError(report, AnalysisGroupCloseness, "G"))
	assert.Nil(t, report.Groups[0].Closeness)
	assert.NotNil(t, report.Groups[0].Degree)
}

func TestRun_SingleNode(t *testing.T) {
	cfg := testConfig(t)
	cfg.Groups = nil
	cfg.EgoCenters = nil
	cfg.Analysis.KCore = 1

	g := graphtest.MustBuild(graphtest.Nodes("solo"), nil)
	report, err := NewRunner(cfg, nil, nil).Run(context.Background(), g)
	require.NoError(t, err)

	assert.NotNil(t, findError(report, AnalysisDegree, ""))
	assert.NotNil(t, findError(report, AnalysisKCore, ""))
	assert.Nil(t, report.KCore)
	// Closeness is defined for a single node
	assert.Len(t, report.Centrality.Closeness, 1)
}

func TestRun_SerialWorkerMatchesParallel(t *testing.T) {
	g := graphtest.Random(7, 25, 0.2)

	serial := testConfig(t)
	serial.Workers = 1
	parallel := testConfig(t)
	parallel.Workers = 8

	a, err := NewRunner(serial, nil, nil).Run(context.Background(), g)
	require.NoError(t, err)
	b, err := NewRunner(parallel, nil, nil).Run(context.Background(), g)
	require.NoError(t, err)

	assert.Equal(t, a.Summary, b.Summary)
	assert.Equal(t, a.Centrality, b.Centrality)
	assert.Equal(t, a.Cliques, b.Cliques)
	assert.Equal(t, a.Triads, b.Triads)
	assert.Equal(t, a.Errors, b.Errors)
	assert.NotEqual(t, a.RunID, b.RunID)
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRunner(testConfig(t), nil, nil).Run(ctx, graphtest.Triangle())
	assert.True(t, errors.Is(err, context.Canceled), "got %v", err)
}

func TestRunner_SampleDataset(t *testing.T) {
	cfg, err := config.Load(filepath.Join("..", "..", "examples", "got-sample", "analysis.yaml"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	runner := NewRunner(cfg, nil, nil)
	g, err := runner.LoadGraph()
	require.NoError(t, err)

	report, err := runner.Run(context.Background(), g)
	require.NoError(t, err)
	assert.Empty(t, report.Errors)

	require.Len(t, report.Groups, 3)
	assert.Equal(t, "Family1", report.Groups[0].Name)
	assert.Empty(t, report.Groups[0].Degree.Missing)

	require.Len(t, report.EgoNetworks, 2)
	assert.Equal(t, "Tyrion Lannister", report.EgoNetworks[0].Label)
	assert.Contains(t, report.EgoNetworks[0].Nodes, graph.NodeID("Jaime"))

	assert.Equal(t, graph.EdgeWeight{U: "Tyrion", V: "Cersei", Weight: 46}, report.TopEdges[0])
	assert.Equal(t, 14.0, testutil.ToFloat64(runner.Metrics().DatasetRecordsTotal.WithLabelValues("node")))
}

func TestRunner_LoadGraphMissingFile(t *testing.T) {
	cfg := testConfig(t)
	cfg.Dataset.Nodes = filepath.Join(t.TempDir(), "nodes.csv")
	cfg.Dataset.Edges = filepath.Join(t.TempDir(), "edges.csv")

	_, err := NewRunner(cfg, nil, nil).LoadGraph()
	assert.Error(t, err)
}
