package main

import (
	"context"
	"time"

	"github.com/dkoosis/packrun/internal/build"
	"github.com/dkoosis/packrun/internal/config"
	"github.com/dkoosis/packrun/internal/dashboard"
)

// BuildCmd is 'packrun build'.
type BuildCmd struct {
	Outputs     []string      `arg:"" optional:"" help:"Outputs to build (default: every configured job)."`
	Root        string        `short:"r" help:"Directory to search for sources (default: working directory)." placeholder:"DIR"`
	Depth       int           `help:"Directory levels searched below the root (default: 3)."`
	Tool        string        `help:"Packaging command (default: pyinstaller)."`
	NoClean     bool          `help:"Keep the tool's intermediate state between builds."`
	Timeout     time.Duration `help:"Time limit per job, e.g. 10m (default: none)."`
	Plain       bool          `help:"Print prefixed lines instead of the interactive dashboard."`
	MetricsFile string        `help:"Write Prometheus metrics to this file after the run." placeholder:"PATH"`
}

// Run builds the selected jobs in order and exits 0 when all succeed, 1 on
// any job failure, and 2 when the tool is unavailable.
func (c *BuildCmd) Run(ctx context.Context, a *app) error {
	cfg, err := a.resolve(config.CliFlags{
		Root:    c.Root,
		Depth:   c.Depth,
		Tool:    c.Tool,
		NoClean: c.NoClean,
		Timeout: c.Timeout,
	})
	if err != nil {
		return err
	}
	jobs, err := cfg.SelectJobs(c.Outputs)
	if err != nil {
		return err
	}

	metricsFile := c.MetricsFile
	if metricsFile == "" {
		metricsFile = cfg.MetricsFile
	}
	var metrics *build.Metrics
	if metricsFile != "" {
		metrics = build.NewMetrics()
	}

	worker := build.NewWorker(a.orchestrator(cfg, build.WithMetrics(metrics)))

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	events, err := worker.Submit(runCtx, jobs, cfg.Root)
	if err != nil {
		return err
	}

	var board *dashboard.Board
	if c.Plain || !a.interactive {
		board = dashboard.RunNonTTY(jobs, events, a.stdout)
	} else {
		theme := &cfg.Theme
		if cfg.NoColor {
			theme = theme.Monochrome()
		}
		board, err = dashboard.RunDashboard(jobs, events, cancel, theme)
		if err != nil {
			a.logger.Warn("dashboard exited with error", "error", err)
		}
	}

	if metrics != nil {
		if err := metrics.WriteTextfile(metricsFile); err != nil {
			a.logger.Error("writing metrics", "path", metricsFile, "error", err)
		} else {
			a.logger.Debug("metrics written", "path", metricsFile)
		}
	}

	if code := board.ExitCode(); code != 0 {
		return exitError{code: code}
	}
	return nil
}

// orchestrator builds an Orchestrator from the resolved settings shared by
// every command that invokes the tool.
func (a *app) orchestrator(cfg *config.ResolvedConfig, extra ...build.Option) *build.Orchestrator {
	opts := []build.Option{
		build.WithDepth(cfg.Depth),
		build.WithLogger(a.logger),
		build.WithUsageNotes(cfg.Jobs, cfg.UsageNotes),
		build.WithMaxLineLength(cfg.MaxLineLength),
	}
	if cfg.WorkDir != "" {
		opts = append(opts, build.WithWorkDir(cfg.WorkDir))
	}
	return build.New(cfg.Tool, append(opts, extra...)...)
}
