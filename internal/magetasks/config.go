package magetasks

import (
	"io"
	"os"
	"path/filepath"
)

var (
	// ModulePath is the Go module path.
	ModulePath = "github.com/dkoosis/packrun"

	// MainPackage is the package built into the binary.
	MainPackage = "./cmd/packrun"

	// BinPath is the output path for built binaries.
	BinPath = "./bin/packrun"

	// ProjectRoot is the root directory of the project.
	ProjectRoot string

	// out receives task headers and status lines.
	out io.Writer = os.Stdout
)

// Initialize sets up the magetasks package.
// Call this from the Magefile init() function.
func Initialize() error {
	var err error
	ProjectRoot, err = os.Getwd()
	if err != nil {
		return err
	}
	return os.MkdirAll(filepath.Join(ProjectRoot, filepath.Dir(BinPath)), 0o750)
}
