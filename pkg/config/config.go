// Package config loads and validates the settings of an analysis session.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-graphstats/pkg/algorithms"
	"github.com/dd0wney/cluso-graphstats/pkg/graph"
	"github.com/dd0wney/cluso-graphstats/pkg/validation"
)

// LogLevelEnv names the environment variable that overrides the session
// log level. It is read when the logger is created, not when loading.
const LogLevelEnv = "GRAPHSTATS_LOG_LEVEL"

// Defaults
const (
	DefaultTopK          = 10
	DefaultCliqueMinSize = 3
	DefaultHistogramBins = 10
	DefaultWorkers       = 4
	DefaultLogLevel      = "info"
)

// Config is the full description of one analysis session.
type Config struct {
	Dataset    DatasetConfig      `yaml:"dataset"`
	Analysis   AnalysisConfig     `yaml:"analysis"`
	Groups     []algorithms.Group `yaml:"groups"`
	EgoCenters []graph.NodeID     `yaml:"ego_centers"`
	Workers    int                `yaml:"workers"`
	LogLevel   string             `yaml:"log_level"`
}

// DatasetConfig locates the node and edge files.
type DatasetConfig struct {
	Nodes          string `yaml:"nodes"`
	Edges          string `yaml:"edges"`
	DuplicateEdges string `yaml:"duplicate_edges"` // last-wins or reject
}

// AnalysisConfig tunes individual analyses.
type AnalysisConfig struct {
	TopK          int               `yaml:"top_k"`
	CliqueMinSize int               `yaml:"clique_min_size"`
	HistogramBins int               `yaml:"histogram_bins"`
	Unreachable   string            `yaml:"unreachable"` // exclude or undefined
	KCore         int               `yaml:"kcore"`       // 0 selects the highest non-empty core
	Eigenvector   EigenvectorConfig `yaml:"eigenvector"`
}

type EigenvectorConfig struct {
	MaxIterations int     `yaml:"max_iterations"`
	Tolerance     float64 `yaml:"tolerance"`
	Weighted      bool    `yaml:"weighted"`
}

// Default returns a configuration with every default applied and no dataset.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// Load reads a YAML file. Relative dataset paths are resolved against the
// directory of the file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	cfg.Dataset.Nodes = resolve(dir, cfg.Dataset.Nodes)
	cfg.Dataset.Edges = resolve(dir, cfg.Dataset.Edges)
	return cfg, nil
}

func resolve(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// Parse decodes YAML, rejecting unknown keys, and applies defaults. It does
// not validate; call Validate once dataset paths are final.
func Parse(r io.Reader) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// ApplyDefaults fills zero-valued settings.
func (c *Config) ApplyDefaults() {
	eigen := algorithms.DefaultEigenvectorOptions()

	c.Analysis.TopK = validation.DefaultOrInt(c.Analysis.TopK, DefaultTopK)
	c.Analysis.CliqueMinSize = validation.DefaultOrInt(c.Analysis.CliqueMinSize, DefaultCliqueMinSize)
	c.Analysis.HistogramBins = validation.DefaultOrInt(c.Analysis.HistogramBins, DefaultHistogramBins)
	c.Analysis.Unreachable = validation.DefaultOr(c.Analysis.Unreachable, algorithms.UnreachableExclude.String())
	c.Analysis.Eigenvector.MaxIterations = validation.DefaultOrInt(c.Analysis.Eigenvector.MaxIterations, eigen.MaxIterations)
	c.Analysis.Eigenvector.Tolerance = validation.DefaultOrFloat(c.Analysis.Eigenvector.Tolerance, eigen.Tolerance)
	c.Dataset.DuplicateEdges = validation.DefaultOr(c.Dataset.DuplicateEdges, graph.DuplicateLastWins.String())
	c.Workers = validation.DefaultOrInt(c.Workers, DefaultWorkers)
	c.LogLevel = validation.DefaultOr(c.LogLevel, DefaultLogLevel)
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	cv := validation.NewConfigValidator("dataset")
	cv.Required("nodes", c.Dataset.Nodes).
		Required("edges", c.Dataset.Edges).
		Custom("duplicate_edges", func() error {
			if _, ok := graph.ParseDuplicateEdgePolicy(c.Dataset.DuplicateEdges); !ok {
				return fmt.Errorf("unknown policy %q", c.Dataset.DuplicateEdges)
			}
			return nil
		})

	av := validation.NewConfigValidator("analysis")
	av.Positive("top_k", c.Analysis.TopK).
		MinInt("clique_min_size", c.Analysis.CliqueMinSize, 1).
		RangeInt("histogram_bins", c.Analysis.HistogramBins, 1, 1000).
		MinInt("kcore", c.Analysis.KCore, 0).
		Positive("eigenvector.max_iterations", c.Analysis.Eigenvector.MaxIterations).
		PositiveFloat("eigenvector.tolerance", c.Analysis.Eigenvector.Tolerance).
		Custom("unreachable", func() error {
			if _, ok := algorithms.ParseUnreachablePolicy(c.Analysis.Unreachable); !ok {
				return fmt.Errorf("unknown policy %q", c.Analysis.Unreachable)
			}
			return nil
		})

	sv := validation.NewConfigValidator("session")
	sv.RangeInt("workers", c.Workers, 1, 256).
		OneOf("log_level", strings.ToLower(c.LogLevel), []string{"debug", "info", "warn", "warning", "error"})

	gv := validation.NewConfigValidator("groups")
	names := make(map[string]bool, len(c.Groups))
	for i, group := range c.Groups {
		field := fmt.Sprintf("[%d]", i)
		gv.Required(field+".name", group.Name).
			When(len(group.Members) == 0, func(v *validation.ConfigValidator) {
				v.Custom(field+".members", func() error { return errors.New("group has no members") })
			}).
			When(names[group.Name], func(v *validation.ConfigValidator) {
				v.Custom(field+".name", func() error { return fmt.Errorf("duplicate group %q", group.Name) })
			})
		names[group.Name] = true
	}

	ev := validation.NewConfigValidator("ego_centers")
	for i, center := range c.EgoCenters {
		ev.Required(fmt.Sprintf("[%d]", i), string(center))
	}

	return errors.Join(cv.Validate(), av.Validate(), sv.Validate(), gv.Validate(), ev.Validate())
}

// BuildOptions returns the graph construction options.
func (c *Config) BuildOptions() graph.BuildOptions {
	policy, _ := graph.ParseDuplicateEdgePolicy(c.Dataset.DuplicateEdges)
	return graph.BuildOptions{DuplicateEdges: policy}
}

// UnreachablePolicy returns the group closeness policy.
func (c *Config) UnreachablePolicy() algorithms.UnreachablePolicy {
	policy, _ := algorithms.ParseUnreachablePolicy(c.Analysis.Unreachable)
	return policy
}

// EigenvectorOptions returns the eigenvector centrality options.
func (c *Config) EigenvectorOptions() algorithms.EigenvectorOptions {
	return algorithms.EigenvectorOptions{
		MaxIterations: c.Analysis.Eigenvector.MaxIterations,
		Tolerance:     c.Analysis.Eigenvector.Tolerance,
		Weighted:      c.Analysis.Eigenvector.Weighted,
	}
}
