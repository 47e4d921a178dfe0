// Package version holds build metadata injected at link time.
package version

import "fmt"

// These variables are populated by the Go linker (LDFLAGS) at build time,
// e.g. -X github.com/dkoosis/packrun/internal/version.Version=v1.2.0.
var (
	Version    = "dev"     // Default value if not built with LDFLAGS
	CommitHash = "unknown" // Default value
	BuildDate  = "unknown" // Default value
)

// String formats the build metadata for display.
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, CommitHash, BuildDate)
}
