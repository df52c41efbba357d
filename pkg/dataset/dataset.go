// Package dataset reads node and edge tables from CSV files.
//
// The nodes file needs an Id column and may carry a Label column. The edges
// file needs Source, Target and Weight columns. Column names are matched
// case-insensitively and extra columns are ignored.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dd0wney/cluso-graphstats/pkg/graph"
	"github.com/dd0wney/cluso-graphstats/pkg/validation"
)

// Dataset is the raw content of a nodes file and an edges file.
type Dataset struct {
	Nodes []graph.Node
	Edges []graph.Edge
}

// Load reads both files.
func Load(nodesPath, edgesPath string) (*Dataset, error) {
	nodes, err := readFile(nodesPath, ReadNodes)
	if err != nil {
		return nil, err
	}
	edges, err := readFile(edgesPath, ReadEdges)
	if err != nil {
		return nil, err
	}
	return &Dataset{Nodes: nodes, Edges: edges}, nil
}

func readFile[T any](path string, read func(io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	records, err := read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// Build turns the dataset into a graph.
func (d *Dataset) Build(opts graph.BuildOptions) (*graph.Graph, error) {
	return graph.BuildWithOptions(d.Nodes, d.Edges, opts)
}

// ReadNodes parses a nodes table.
func ReadNodes(r io.Reader) ([]graph.Node, error) {
	t, err := newTable(r, "nodes", "id")
	if err != nil {
		return nil, err
	}

	var nodes []graph.Node
	for {
		row, line, err := t.next()
		if errors.Is(err, io.EOF) {
			return nodes, nil
		}
		if err != nil {
			return nil, err
		}

		rec := validation.NodeRecord{ID: row.get("id"), Label: row.get("label")}
		if err := validation.ValidateNodeRecord(&rec); err != nil {
			return nil, malformed("nodes", line, err)
		}
		nodes = append(nodes, graph.Node{ID: graph.NodeID(rec.ID), Label: rec.Label})
	}
}

// ReadEdges parses an edges table.
func ReadEdges(r io.Reader) ([]graph.Edge, error) {
	t, err := newTable(r, "edges", "source", "target", "weight")
	if err != nil {
		return nil, err
	}

	var edges []graph.Edge
	for {
		row, line, err := t.next()
		if errors.Is(err, io.EOF) {
			return edges, nil
		}
		if err != nil {
			return nil, err
		}

		weight, err := strconv.ParseFloat(row.get("weight"), 64)
		if err != nil {
			return nil, malformed("edges", line, fmt.Errorf("Weight: %w", err))
		}

		rec := validation.EdgeRecord{Source: row.get("source"), Target: row.get("target"), Weight: weight}
		if err := validation.ValidateEdgeRecord(&rec); err != nil {
			return nil, malformed("edges", line, err)
		}
		edges = append(edges, graph.Edge{
			Source: graph.NodeID(rec.Source),
			Target: graph.NodeID(rec.Target),
			Weight: rec.Weight,
		})
	}
}

func malformed(table string, line int, err error) error {
	return graph.NewError("read "+table).Entity("row").
		Context("line %d: %v", line, err).Cause(graph.ErrMalformedInput).Err()
}

// table reads CSV rows and looks columns up by lower-cased header name.
type table struct {
	name    string
	reader  *csv.Reader
	columns map[string]int
}

type row struct {
	fields  []string
	columns map[string]int
}

func (r row) get(column string) string {
	i, ok := r.columns[column]
	if !ok || i >= len(r.fields) {
		return ""
	}
	return strings.TrimSpace(r.fields[i])
}

func newTable(r io.Reader, name string, required ...string) (*table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, graph.NewError("read "+name).Entity("header").
			Context("empty file").Cause(graph.ErrMalformedInput).Err()
	}
	if err != nil {
		return nil, graph.NewError("read "+name).Entity("header").
			Context("%v", err).Cause(graph.ErrMalformedInput).Err()
	}

	columns := make(map[string]int, len(header))
	for i, h := range header {
		// Spreadsheet exports may prefix the first column with a BOM
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := columns[key]; !dup {
			columns[key] = i
		}
	}
	for _, col := range required {
		if _, ok := columns[col]; !ok {
			return nil, graph.NewError("read "+name).Entity("header").
				Context("missing column %q", col).Cause(graph.ErrMalformedInput).Err()
		}
	}

	return &table{name: name, reader: reader, columns: columns}, nil
}

// next returns the next row and its 1-based line number.
func (t *table) next() (row, int, error) {
	fields, err := t.reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return row{}, 0, io.EOF
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			return row{}, 0, malformed(t.name, parseErr.Line, parseErr.Err)
		}
		return row{}, 0, fmt.Errorf("read %s: %w", t.name, err)
	}
	line, _ := t.reader.FieldPos(0)
	return row{fields: fields, columns: t.columns}, line, nil
}
