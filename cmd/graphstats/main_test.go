package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-graphstats/pkg/analysis"
	"github.com/dd0wney/cluso-graphstats/pkg/config"
)

var sampleConfig = filepath.Join("..", "..", "examples", "got-sample", "analysis.yaml")

func TestRun_TextReport(t *testing.T) {
	t.Setenv(config.LogLevelEnv, "")
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{"-config", sampleConfig, "-top", "3"}, &stdout, &stderr)
	require.Equal(t, exitOK, code, stderr.String())

	out := stdout.String()
	for _, want := range []string{
		"Graph summary",
		"Degree centrality",
		"Eigenvector centrality",
		"Group centralities",
		"Family1",
		"Heaviest cliques",
		"Ego network of Tyrion Lannister",
		"Clustering distribution",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "Failed analyses")
}

func TestRun_JSONReport(t *testing.T) {
	t.Setenv(config.LogLevelEnv, "")
	var stdout, stderr bytes.Buffer
	metricsPath := filepath.Join(t.TempDir(), "metrics.prom")

	code := run(context.Background(),
		[]string{"-config", sampleConfig, "-format", "json", "-metrics-out", metricsPath, "-workers", "1"},
		&stdout, &stderr)
	require.Equal(t, exitOK, code, stderr.String())

	var report analysis.Report
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &report))
	assert.Equal(t, 14, report.Summary.Nodes)
	assert.Len(t, report.Groups, 3)

	metrics, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), "graphstats_graph_nodes_total 14")
}

func TestRun_PartialFailure(t *testing.T) {
	t.Setenv(config.LogLevelEnv, "")
	dir := t.TempDir()
	nodes := filepath.Join(dir, "nodes.csv")
	edges := filepath.Join(dir, "edges.csv")
	require.NoError(t, os.WriteFile(nodes, []byte("Id,Label\nsolo,Solo\n"), 0o600))
	require.NoError(t, os.WriteFile(edges, []byte("Source,Target,Weight\n"), 0o600))

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-nodes", nodes, "-edges", edges}, &stdout, &stderr)
	assert.Equal(t, exitPartial, code)
	assert.Contains(t, stdout.String(), "Failed analyses")
}

func TestRun_BadInput(t *testing.T) {
	t.Setenv(config.LogLevelEnv, "")

	tests := []struct {
		name string
		args []string
	}{
		{"no dataset", nil},
		{"unknown format", []string{"-config", sampleConfig, "-format", "xml"}},
		{"stray argument", []string{"-config", sampleConfig, "extra"}},
		{"missing files", []string{"-nodes", "absent.csv", "-edges", "absent.csv"}},
		{"bad log level", []string{"-config", sampleConfig, "-log-level", "loud"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			assert.Equal(t, exitFailure, run(context.Background(), tt.args, &stdout, &stderr))
			assert.Empty(t, stdout.String())
		})
	}
}

func TestRun_LogLevelPrecedence(t *testing.T) {
	t.Setenv(config.LogLevelEnv, "debug")

	var stdout, stderr bytes.Buffer
	require.Equal(t, exitOK, run(context.Background(), []string{"-config", sampleConfig}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), `"level":"DEBUG"`)

	stdout.Reset()
	stderr.Reset()
	require.Equal(t, exitOK, run(context.Background(), []string{"-config", sampleConfig, "-log-level", "error"}, &stdout, &stderr))
	assert.NotContains(t, stderr.String(), `"level":"INFO"`)
	assert.NotContains(t, stderr.String(), `"level":"DEBUG"`)
}

func TestBrowser_Navigation(t *testing.T) {
	t.Setenv(config.LogLevelEnv, "")
	cfg, err := config.Load(sampleConfig)
	require.NoError(t, err)

	runner := analysis.NewRunner(cfg, nil, nil)
	g, err := runner.LoadGraph()
	require.NoError(t, err)
	report, err := runner.Run(context.Background(), g)
	require.NoError(t, err)

	b := newBrowser(report)
	require.NotEmpty(t, b.tabs)
	assert.Equal(t, "Summary", b.tabs[0])
	assert.True(t, strings.Contains(b.View(), "Graph summary"))

	model, _ := b.Update(tea.KeyMsg{Type: tea.KeyTab})
	b = model.(browser)
	assert.Equal(t, 1, b.tab)
	assert.Contains(t, b.View(), "Degree centrality")

	model, _ = b.Update(tea.KeyMsg{Type: tea.KeyRight})
	b = model.(browser)
	assert.Equal(t, 1, b.index)
	assert.Contains(t, b.View(), "Closeness centrality")

	model, _ = b.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	b = model.(browser)
	assert.Equal(t, 0, b.tab)
	assert.Equal(t, 0, b.index)

	_, cmd := b.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestSectionColumns(t *testing.T) {
	s := section{
		Headers: []string{"Node", "Score"},
		Rows:    []table.Row{{"Tyrion", "0.5"}, {strings.Repeat("x", 100), "1"}},
	}
	cols := s.columns()
	require.Len(t, cols, 2)
	assert.Equal(t, maxColumnWidth, cols[0].Width)
	assert.Equal(t, 5, cols[1].Width)
}
