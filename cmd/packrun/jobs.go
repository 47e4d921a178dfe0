package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/dkoosis/packrun/internal/config"
)

// JobsCmd is 'packrun jobs'.
type JobsCmd struct{}

// Run lists the configured jobs in build order.
func (c *JobsCmd) Run(_ context.Context, a *app) error {
	cfg, err := a.resolve(config.CliFlags{})
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "OUTPUT\tSOURCE\tLABEL")
	for _, job := range cfg.Jobs {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", job.Output, job.Source, job.Label)
	}
	return tw.Flush()
}
