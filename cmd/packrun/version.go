package main

import (
	"context"
	"fmt"

	"github.com/dkoosis/packrun/internal/version"
)

// VersionCmd is 'packrun version'.
type VersionCmd struct{}

// Run prints version, commit, and build date.
func (c *VersionCmd) Run(_ context.Context, a *app) error {
	fmt.Fprintln(a.stdout, "packrun "+version.String())
	return nil
}
