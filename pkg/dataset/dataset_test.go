package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-graphstats/pkg/graph"
)

func TestReadNodes(t *testing.T) {
	input := "\ufeffID, LABEL ,Extra\nTyrion,Tyrion Lannister,x\nJon,,y\n"

	nodes, err := ReadNodes(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []graph.Node{
		{ID: "Tyrion", Label: "Tyrion Lannister"},
		{ID: "Jon", Label: ""},
	}, nodes)
}

func TestReadNodes_NoLabelColumn(t *testing.T) {
	nodes, err := ReadNodes(strings.NewReader("Id\nA\nB\n"))
	require.NoError(t, err)
	assert.Len(t, nodes, 2)
}

func TestReadEdges(t *testing.T) {
	input := "Source,Target,Type,id,weight\nA,B,Undirected,0,5\nB,C,Undirected,1, 2.5\n"

	edges, err := ReadEdges(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []graph.Edge{
		{Source: "A", Target: "B", Weight: 5},
		{Source: "B", Target: "C", Weight: 2.5},
	}, edges)
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name    string
		read    func() error
		wantMsg string
	}{
		{
			name:    "empty nodes file",
			read:    func() error { _, err := ReadNodes(strings.NewReader("")); return err },
			wantMsg: "empty file",
		},
		{
			name:    "missing id column",
			read:    func() error { _, err := ReadNodes(strings.NewReader("Name,Label\nA,a\n")); return err },
			wantMsg: `missing column "id"`,
		},
		{
			name:    "empty id",
			read:    func() error { _, err := ReadNodes(strings.NewReader("Id,Label\nA,a\n,b\n")); return err },
			wantMsg: "line 3",
		},
		{
			name:    "missing weight column",
			read:    func() error { _, err := ReadEdges(strings.NewReader("Source,Target\nA,B\n")); return err },
			wantMsg: `missing column "weight"`,
		},
		{
			name:    "non-numeric weight",
			read:    func() error { _, err := ReadEdges(strings.NewReader("Source,Target,Weight\nA,B,heavy\n")); return err },
			wantMsg: "Weight",
		},
		{
			name:    "zero weight",
			read:    func() error { _, err := ReadEdges(strings.NewReader("Source,Target,Weight\nA,B,0\n")); return err },
			wantMsg: "greater than 0",
		},
		{
			name:    "self loop",
			read:    func() error { _, err := ReadEdges(strings.NewReader("Source,Target,Weight\nA,A,1\n")); return err },
			wantMsg: "must differ",
		},
		{
			name:    "ragged row",
			read:    func() error { _, err := ReadEdges(strings.NewReader("Source,Target,Weight\nA,B\n")); return err },
			wantMsg: "line 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.read()
			require.Error(t, err)
			assert.True(t, errors.Is(err, graph.ErrMalformedInput), "expected ErrMalformedInput, got %v", err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLoad_Sample(t *testing.T) {
	dir := filepath.Join("..", "..", "examples", "got-sample")

	ds, err := Load(filepath.Join(dir, "nodes.csv"), filepath.Join(dir, "edges.csv"))
	require.NoError(t, err)
	assert.Len(t, ds.Nodes, 14)
	assert.Len(t, ds.Edges, 23)

	g, err := ds.Build(graph.DefaultBuildOptions())
	require.NoError(t, err)
	assert.Equal(t, 14, g.NodeCount())
	assert.Equal(t, "Tyrion Lannister", g.Label("Tyrion"))
	assert.True(t, g.IsConnected())
}

func TestLoad_UnknownEndpoint(t *testing.T) {
	dir := t.TempDir()
	nodes := filepath.Join(dir, "nodes.csv")
	edges := filepath.Join(dir, "edges.csv")
	require.NoError(t, os.WriteFile(nodes, []byte("Id,Label\nA,a\n"), 0o600))
	require.NoError(t, os.WriteFile(edges, []byte("Source,Target,Weight\nA,B,1\n"), 0o600))

	ds, err := Load(nodes, edges)
	require.NoError(t, err)

	_, err = ds.Build(graph.DefaultBuildOptions())
	assert.ErrorIs(t, err, graph.ErrMalformedInput)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nodes.csv"), "edges.csv")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
