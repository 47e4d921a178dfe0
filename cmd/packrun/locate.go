package main

import (
	"context"
	"fmt"

	"github.com/dkoosis/packrun/internal/config"
	"github.com/dkoosis/packrun/internal/locate"
)

// LocateCmd is 'packrun locate'.
type LocateCmd struct {
	File  string `arg:"" help:"File name, relative to the root or any directory below it."`
	Root  string `short:"r" help:"Directory to search (default: working directory)." placeholder:"DIR"`
	Depth int    `help:"Directory levels searched below the root (default: 3)."`
	All   bool   `short:"a" help:"Print every match at the shallowest depth."`
}

// Run prints the resolved path, or exits 1 when the file is absent.
func (c *LocateCmd) Run(_ context.Context, a *app) error {
	cfg, err := a.resolve(config.CliFlags{Root: c.Root, Depth: c.Depth})
	if err != nil {
		return err
	}
	loc := locate.Locator{Root: cfg.Root, Depth: cfg.Depth}

	var matches []string
	if c.All {
		matches = loc.Candidates(c.File)
	} else if path, ok := loc.Locate(c.File); ok {
		matches = []string{path}
	}
	if len(matches) == 0 {
		fmt.Fprintf(a.stderr, "%s not found in %s\n", c.File, loc.Scope())
		return exitError{code: 1}
	}
	for _, m := range matches {
		fmt.Fprintln(a.stdout, m)
	}
	return nil
}
