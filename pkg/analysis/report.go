// Package analysis runs every configured graph analysis over one graph and
// collects the results into a Report.
package analysis

import (
	"time"

	"github.com/dd0wney/cluso-graphstats/pkg/algorithms"
	"github.com/dd0wney/cluso-graphstats/pkg/graph"
	"github.com/dd0wney/cluso-graphstats/pkg/ranking"
)

// Analysis names, used in logs, metrics and Report.Errors
const (
	AnalysisSummary          = "summary"
	AnalysisDegree           = "degree"
	AnalysisCloseness        = "closeness"
	AnalysisBetweenness      = "betweenness"
	AnalysisEigenvector      = "eigenvector"
	AnalysisGroupDegree      = "group_degree"
	AnalysisGroupCloseness   = "group_closeness"
	AnalysisGroupBetweenness = "group_betweenness"
	AnalysisCliques          = "cliques"
	AnalysisKCore            = "kcore"
	AnalysisCoreNumbers      = "core_numbers"
	AnalysisTriads           = "triads"
	AnalysisClustering       = "clustering"
	AnalysisEgo              = "ego"
	AnalysisTopEdges         = "top_edges"
)

// Report is the outcome of one run. Sections whose analysis failed are left
// empty and the failure is listed in Errors.
type Report struct {
	RunID       string        `json:"run_id"`
	GeneratedAt time.Time     `json:"generated_at"`
	Duration    time.Duration `json:"duration_ns"`
	TopK        int           `json:"top_k"`

	Summary    *algorithms.Summary `json:"summary,omitempty"`
	Components [][]graph.NodeID    `json:"components,omitempty"`
	TopEdges   []graph.EdgeWeight  `json:"top_edges,omitempty"`

	Centrality CentralityReport `json:"centrality"`
	Groups     []GroupReport    `json:"groups,omitempty"`

	Cliques     CliqueReport     `json:"cliques"`
	KCore       *KCoreReport     `json:"kcore,omitempty"`
	CoreNumbers []ranking.Entry  `json:"core_numbers,omitempty"`
	Triads      TriadReport      `json:"triads"`
	Clustering  ClusteringReport `json:"clustering"`
	EgoNetworks []EgoReport      `json:"ego_networks,omitempty"`
	Errors      []AnalysisError  `json:"errors,omitempty"`
}

// CentralityReport holds the top-k nodes of each centrality measure.
type CentralityReport struct {
	Degree                []ranking.Entry `json:"degree,omitempty"`
	Closeness             []ranking.Entry `json:"closeness,omitempty"`
	Betweenness           []ranking.Entry `json:"betweenness,omitempty"`
	Eigenvector           []ranking.Entry `json:"eigenvector,omitempty"`
	EigenvectorIterations int             `json:"eigenvector_iterations,omitempty"`
}

// GroupReport holds the three group centralities of one configured group.
// A nil measure failed; see Report.Errors.
type GroupReport struct {
	Name        string                  `json:"name"`
	Degree      *algorithms.GroupResult `json:"degree,omitempty"`
	Closeness   *algorithms.GroupResult `json:"closeness,omitempty"`
	Betweenness *algorithms.GroupResult `json:"betweenness,omitempty"`
}

// CliqueReport summarizes cliques of the configured minimum size and the
// largest maximal cliques.
type CliqueReport struct {
	Stats        algorithms.CliqueStats      `json:"stats"`
	Top          []algorithms.WeightedClique `json:"top,omitempty"`
	MaximalCount int                         `json:"maximal_count"`
	Largest      []algorithms.Clique         `json:"largest_maximal,omitempty"`
}

// KCoreReport describes one k-core and its edges.
type KCoreReport struct {
	K           int                `json:"k"`
	Nodes       []graph.NodeID     `json:"nodes"`
	Edges       []graph.EdgeWeight `json:"edges"`
	TotalWeight float64            `json:"total_weight"`
}

// TriadReport counts closed and open triads and ranks the heaviest.
type TriadReport struct {
	Count int                `json:"count"`
	Open  int                `json:"open"`
	Top   []algorithms.Triad `json:"top,omitempty"`
}

// ClusteringReport ranks nodes by triangles and local clustering.
type ClusteringReport struct {
	Triangles []ranking.Entry           `json:"triangles,omitempty"`
	Top       []ranking.Entry           `json:"top,omitempty"`
	Histogram []algorithms.HistogramBin `json:"histogram,omitempty"`
}

// EgoReport describes the ego network of one configured center.
type EgoReport struct {
	Center graph.NodeID       `json:"center"`
	Label  string             `json:"label"`
	Nodes  []graph.NodeID     `json:"nodes"`
	Edges  []graph.EdgeWeight `json:"edges"`
}

// AnalysisError records one failed analysis.
type AnalysisError struct {
	Analysis string `json:"analysis"`
	Target   string `json:"target,omitempty"` // group name or ego center
	Message  string `json:"message"`
}

// Failed reports whether any analysis failed.
func (r *Report) Failed() bool {
	return len(r.Errors) > 0
}
