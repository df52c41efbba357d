// Command graphstats loads a social-network dataset and prints centrality,
// clique, core and triad statistics.
//
// Usage:
//
//	graphstats -config examples/got-sample/analysis.yaml
//	graphstats -nodes nodes.csv -edges edges.csv -top 5 -format json
//
// GRAPHSTATS_LOG_LEVEL overrides the session log level; -log-level overrides
// both.
//
// Exit status is 0 on success, 1 when the session could not run and 2 when
// some analyses failed.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dd0wney/cluso-graphstats/pkg/analysis"
	"github.com/dd0wney/cluso-graphstats/pkg/config"
	"github.com/dd0wney/cluso-graphstats/pkg/logging"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitPartial = 2
)

type options struct {
	configPath string
	nodes      string
	edges      string
	topK       int
	workers    int
	format     string
	tui        bool
	metricsOut string
	logLevel   string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet("graphstats", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "YAML session file")
	fs.StringVar(&opts.nodes, "nodes", "", "nodes CSV (Id,Label)")
	fs.StringVar(&opts.edges, "edges", "", "edges CSV (Source,Target,Weight)")
	fs.IntVar(&opts.topK, "top", 0, "entries per ranking (default 10)")
	fs.IntVar(&opts.workers, "workers", 0, "analyses run concurrently (default 4)")
	fs.StringVar(&opts.format, "format", "text", "output format: text or json")
	fs.BoolVar(&opts.tui, "tui", false, "browse the report interactively")
	fs.StringVar(&opts.metricsOut, "metrics-out", "", "write Prometheus metrics to this file")
	fs.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error (overrides config)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if opts.format != "text" && opts.format != "json" {
		return nil, fmt.Errorf("unknown format %q", opts.format)
	}
	return opts, nil
}

// loadConfig merges the session file, if any, with command line overrides.
func loadConfig(opts *options) (*config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		var err error
		if cfg, err = config.Load(opts.configPath); err != nil {
			return nil, err
		}
	}

	if opts.nodes != "" {
		cfg.Dataset.Nodes = opts.nodes
	}
	if opts.edges != "" {
		cfg.Dataset.Edges = opts.edges
	}
	if opts.topK > 0 {
		cfg.Analysis.TopK = opts.topK
	}
	if opts.workers > 0 {
		cfg.Workers = opts.workers
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintf(stderr, "graphstats: %v\n", err)
		return exitFailure
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(stderr, "graphstats: invalid configuration:\n%v\n", err)
		return exitFailure
	}

	// Precedence: -log-level, then the environment, then the session file
	level := logging.ParseLevel(cfg.LogLevel)
	base := logging.NewFromEnv(stderr, config.LogLevelEnv, level)
	if opts.logLevel != "" {
		base.SetLevel(level)
	}
	logger := base.With(logging.Component("graphstats"))
	runner := analysis.NewRunner(cfg, logger, nil)

	g, err := runner.LoadGraph()
	if err != nil {
		logger.Error("failed to load dataset", logging.Error(err))
		return exitFailure
	}

	report, err := runner.Run(ctx, g)
	if err != nil {
		logger.Error("analysis aborted", logging.Error(err))
		return exitFailure
	}

	switch {
	case opts.tui:
		err = browse(report)
	case opts.format == "json":
		err = renderJSON(stdout, report)
	default:
		err = renderText(stdout, report)
	}
	if err != nil {
		logger.Error("failed to write report", logging.Error(err))
		return exitFailure
	}

	if opts.metricsOut != "" {
		if err := writeMetrics(runner, opts.metricsOut); err != nil {
			logger.Error("failed to write metrics", logging.Path(opts.metricsOut), logging.Error(err))
			return exitFailure
		}
	}

	if report.Failed() {
		return exitPartial
	}
	return exitOK
}

func writeMetrics(runner *analysis.Runner, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := runner.Metrics().WriteText(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
