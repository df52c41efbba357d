package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/cluso-graphstats/pkg/algorithms"
	"github.com/dd0wney/cluso-graphstats/pkg/analysis"
	"github.com/dd0wney/cluso-graphstats/pkg/graph"
	"github.com/dd0wney/cluso-graphstats/pkg/ranking"
)

const maxColumnWidth = 48

// section is one titled table of the report. The text renderer prints every
// section in turn and the interactive browser shows one per tab.
type section struct {
	Tab     string
	Title   string
	Headers []string
	Rows    []table.Row
	Note    string
}

func (s section) columns() []table.Column {
	columns := make([]table.Column, len(s.Headers))
	for i, h := range s.Headers {
		width := lipgloss.Width(h)
		for _, row := range s.Rows {
			if i < len(row) {
				width = max(width, lipgloss.Width(row[i]))
			}
		}
		columns[i] = table.Column{Title: h, Width: max(1, min(width, maxColumnWidth))}
	}
	return columns
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

func formatWeight(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func joinIDs(ids []graph.NodeID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}
	return strings.Join(parts, ", ")
}

func entryRows(entries []ranking.Entry, format func(float64) string) []table.Row {
	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		rows[i] = table.Row{strconv.Itoa(e.Rank), string(e.NodeID), e.Label, format(e.Score)}
	}
	return rows
}

func edgeRows(edges []graph.EdgeWeight) []table.Row {
	rows := make([]table.Row, len(edges))
	for i, e := range edges {
		rows[i] = table.Row{string(e.U), string(e.V), formatWeight(e.Weight)}
	}
	return rows
}

func groupValue(r *algorithms.GroupResult) string {
	if r == nil {
		return "failed"
	}
	return formatScore(r.Value)
}

// buildSections flattens a report into display tables.
func buildSections(r *analysis.Report) []section {
	var sections []section

	if s := r.Summary; s != nil {
		rows := []table.Row{
			{"Nodes", strconv.Itoa(s.Nodes)},
			{"Edges", strconv.Itoa(s.Edges)},
			{"Components", strconv.Itoa(s.Components)},
			{"Connected", strconv.FormatBool(s.Connected)},
			{"Density", formatScore(s.Density)},
			{"Weighted density", formatScore(s.WeightedDensity)},
			{"Total weight", formatWeight(s.TotalWeight)},
			{"Average clustering", formatScore(s.AverageClustering)},
			{"Transitivity", formatScore(s.Transitivity)},
			{"Triangles", strconv.Itoa(s.Triangles)},
			{"Open triads", strconv.Itoa(s.OpenTriads)},
		}
		if s.Connected {
			rows = append(rows,
				table.Row{"Radius", strconv.Itoa(s.Radius)},
				table.Row{"Diameter", strconv.Itoa(s.Diameter)},
				table.Row{"Periphery", joinIDs(s.Periphery)},
			)
		}
		sections = append(sections, section{Tab: "Summary", Title: "Graph summary", Headers: []string{"Metric", "Value"}, Rows: rows})
	}

	sections = append(sections, section{
		Tab: "Summary", Title: fmt.Sprintf("Top %d edge weights", r.TopK),
		Headers: []string{"Source", "Target", "Weight"}, Rows: edgeRows(r.TopEdges),
	})

	rankHeaders := []string{"Rank", "Node", "Label", "Score"}
	sections = append(sections,
		section{Tab: "Centrality", Title: "Degree centrality", Headers: rankHeaders, Rows: entryRows(r.Centrality.Degree, formatScore)},
		section{Tab: "Centrality", Title: "Closeness centrality", Headers: rankHeaders, Rows: entryRows(r.Centrality.Closeness, formatScore)},
		section{Tab: "Centrality", Title: "Betweenness centrality", Headers: rankHeaders, Rows: entryRows(r.Centrality.Betweenness, formatScore)},
		section{
			Tab: "Centrality", Title: "Eigenvector centrality", Headers: rankHeaders,
			Rows: entryRows(r.Centrality.Eigenvector, formatScore),
			Note: fmt.Sprintf("converged after %d iterations", r.Centrality.EigenvectorIterations),
		},
	)

	if len(r.Groups) > 0 {
		rows := make([]table.Row, len(r.Groups))
		var missing []string
		for i, g := range r.Groups {
			rows[i] = table.Row{g.Name, groupValue(g.Degree), groupValue(g.Closeness), groupValue(g.Betweenness)}
			if g.Degree != nil && len(g.Degree.Missing) > 0 {
				missing = append(missing, fmt.Sprintf("%s: %s not in graph", g.Name, joinIDs(g.Degree.Missing)))
			}
		}
		sections = append(sections, section{
			Tab: "Groups", Title: "Group centralities",
			Headers: []string{"Group", "Degree", "Closeness", "Betweenness"},
			Rows:    rows, Note: strings.Join(missing, "; "),
		})
	}

	cliqueRows := make([]table.Row, len(r.Cliques.Top))
	for i, c := range r.Cliques.Top {
		cliqueRows[i] = table.Row{strconv.Itoa(len(c.Nodes)), formatWeight(c.TotalWeight), joinIDs(c.Nodes)}
	}
	stats := r.Cliques.Stats
	sections = append(sections, section{
		Tab: "Cliques", Title: "Heaviest cliques",
		Headers: []string{"Size", "Weight", "Members"}, Rows: cliqueRows,
		Note: fmt.Sprintf("%d cliques of size >= %d, largest size %d (%d of them), %d maximal cliques",
			stats.Count, stats.MinSize, stats.LargestSize, stats.LargestCount, r.Cliques.MaximalCount),
	})

	triadRows := make([]table.Row, len(r.Triads.Top))
	for i, t := range r.Triads.Top {
		triadRows[i] = table.Row{
			joinIDs(t.Nodes[:]), formatWeight(t.TotalWeight),
			fmt.Sprintf("%s / %s / %s", formatWeight(t.Weights[0]), formatWeight(t.Weights[1]), formatWeight(t.Weights[2])),
		}
	}
	sections = append(sections, section{
		Tab: "Cliques", Title: "Heaviest triads",
		Headers: []string{"Members", "Weight", "Edge weights"}, Rows: triadRows,
		Note: fmt.Sprintf("%d closed triads, %d open triads", r.Triads.Count, r.Triads.Open),
	})

	if k := r.KCore; k != nil {
		sections = append(sections, section{
			Tab: "Structure", Title: fmt.Sprintf("%d-core", k.K),
			Headers: []string{"Source", "Target", "Weight"}, Rows: edgeRows(k.Edges),
			Note: fmt.Sprintf("%d nodes, total weight %s: %s", len(k.Nodes), formatWeight(k.TotalWeight), joinIDs(k.Nodes)),
		})
	}
	sections = append(sections,
		section{Tab: "Structure", Title: "Core numbers", Headers: rankHeaders, Rows: entryRows(r.CoreNumbers, formatCount)},
		section{Tab: "Structure", Title: "Triangles per node", Headers: rankHeaders, Rows: entryRows(r.Clustering.Triangles, formatCount)},
		section{Tab: "Structure", Title: "Local clustering", Headers: rankHeaders, Rows: entryRows(r.Clustering.Top, formatScore)},
		section{Tab: "Structure", Title: "Clustering distribution", Headers: []string{"Range", "Nodes", ""}, Rows: histogramRows(r.Clustering.Histogram)},
	)

	for _, e := range r.EgoNetworks {
		if e.Nodes == nil {
			continue
		}
		sections = append(sections, section{
			Tab: "Ego", Title: fmt.Sprintf("Ego network of %s", e.Label),
			Headers: []string{"Source", "Target", "Weight"}, Rows: edgeRows(e.Edges),
			Note: fmt.Sprintf("%d nodes, %d edges", len(e.Nodes), len(e.Edges)),
		})
	}

	if len(r.Components) > 1 {
		rows := make([]table.Row, len(r.Components))
		for i, c := range r.Components {
			rows[i] = table.Row{strconv.Itoa(i + 1), strconv.Itoa(len(c)), joinIDs(c)}
		}
		sections = append(sections, section{Tab: "Structure", Title: "Connected components", Headers: []string{"#", "Size", "Members"}, Rows: rows})
	}

	if len(r.Errors) > 0 {
		rows := make([]table.Row, len(r.Errors))
		for i, e := range r.Errors {
			rows[i] = table.Row{e.Analysis, e.Target, e.Message}
		}
		sections = append(sections, section{Tab: "Errors", Title: "Failed analyses", Headers: []string{"Analysis", "Target", "Error"}, Rows: rows})
	}

	return sections
}

func formatCount(v float64) string {
	return strconv.Itoa(int(v))
}

func histogramRows(bins []algorithms.HistogramBin) []table.Row {
	rows := make([]table.Row, len(bins))
	for i, b := range bins {
		rows[i] = table.Row{
			fmt.Sprintf("%.2f-%.2f", b.Lower, b.Upper),
			strconv.Itoa(b.Count),
			strings.Repeat("#", min(b.Count, maxColumnWidth)),
		}
	}
	return rows
}
