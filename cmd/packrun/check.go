package main

import (
	"context"
	"fmt"

	"github.com/dkoosis/packrun/internal/config"
	"github.com/dkoosis/packrun/internal/locate"
)

// CheckCmd is 'packrun check'.
type CheckCmd struct {
	Root  string `short:"r" help:"Directory to search for sources (default: working directory)." placeholder:"DIR"`
	Depth int    `help:"Directory levels searched below the root (default: 3)."`
	Tool  string `help:"Packaging command (default: pyinstaller)."`
}

// Run reports the tool version and where each configured source resolves.
// It exits 2 when the tool is unavailable and 1 when a source is missing.
func (c *CheckCmd) Run(ctx context.Context, a *app) error {
	cfg, err := a.resolve(config.CliFlags{Root: c.Root, Depth: c.Depth, Tool: c.Tool})
	if err != nil {
		return err
	}

	code := 0
	orch := a.orchestrator(cfg)
	if v, err := orch.Preflight(ctx); err != nil {
		fmt.Fprintf(a.stdout, "✗ %v\n", err)
		code = 2
	} else {
		fmt.Fprintf(a.stdout, "✓ %s %s\n", cfg.Tool.Command, v)
	}

	loc := locate.Locator{Root: cfg.Root, Depth: cfg.Depth}
	for _, job := range cfg.Jobs {
		candidates := loc.Candidates(job.Source)
		switch len(candidates) {
		case 0:
			fmt.Fprintf(a.stdout, "✗ %s: %s not found in %s\n", job.Output, job.Source, loc.Scope())
			if code == 0 {
				code = 1
			}
		case 1:
			fmt.Fprintf(a.stdout, "✓ %s: %s\n", job.Output, candidates[0])
		default:
			fmt.Fprintf(a.stdout, "✓ %s: %s (%d matches at this depth)\n", job.Output, candidates[0], len(candidates))
		}
	}

	if code != 0 {
		return exitError{code: code}
	}
	return nil
}
