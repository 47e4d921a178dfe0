package magetasks

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/magefile/mage/sh"
)

// BuildAll builds the packrun binary with version metadata.
func BuildAll() error {
	PrintH2Header("Build")

	ldflags := fmt.Sprintf("-s -w -X '%[1]s/internal/version.Version=%[2]s' -X '%[1]s/internal/version.CommitHash=%[3]s' -X '%[1]s/internal/version.BuildDate=%[4]s'",
		ModulePath, gitVersion(), gitCommit(), time.Now().UTC().Format(time.RFC3339))

	if err := Run("Go Build", "go", "build", "-ldflags", ldflags, "-o", BinPath, MainPackage); err != nil {
		return err
	}
	PrintSuccess(fmt.Sprintf("Built: %s", BinPath))
	return nil
}

// Clean removes build artifacts and the packaging tool's output directories.
func Clean() error {
	PrintH2Header("Clean")

	for _, dir := range []string{"./bin", "./dist", "./build"} {
		if err := os.RemoveAll(dir); err != nil {
			return err
		}
	}
	PrintSuccess("Cleaned build artifacts")
	return nil
}

func gitVersion() string {
	v, err := sh.Output("git", "describe", "--tags", "--always", "--dirty", "--match=v*")
	if err != nil || v == "" {
		return "dev"
	}
	return strings.TrimSpace(v)
}

func gitCommit() string {
	c, err := sh.Output("git", "rev-parse", "--short", "HEAD")
	if err != nil || c == "" {
		return "unknown"
	}
	return strings.TrimSpace(c)
}
