package magetasks

import (
	"fmt"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"

	"github.com/dkoosis/packrun/internal/build"
)

// PrintH1Header prints a top-level header with decoration.
func PrintH1Header(title string) {
	width := 80
	padding := max((width-len(title))/2, 0)
	fmt.Fprintln(out)
	fmt.Fprintln(out, strings.Repeat("=", width))
	fmt.Fprintf(out, "%s%s\n", strings.Repeat(" ", padding), title)
	fmt.Fprintln(out, strings.Repeat("=", width))
	fmt.Fprintln(out)
}

// PrintH2Header prints a section header.
func PrintH2Header(title string) {
	fmt.Fprintf(out, "\n=== %s ===\n\n", title)
}

// PrintSuccess prints a success message.
func PrintSuccess(msg string) {
	fmt.Fprintf(out, "✅ %s\n", msg)
}

// PrintWarning prints a warning message.
func PrintWarning(msg string) {
	fmt.Fprintf(out, "⚠️  %s\n", msg)
}

// PrintError prints an error message.
func PrintError(msg string) {
	fmt.Fprintf(out, "❌ %s\n", msg)
}

// Run prints a step label and runs cmd with output shown when mage is verbose
// or the command fails.
func Run(label, cmd string, args ...string) error {
	fmt.Fprintf(out, "→ %s\n", label)
	var err error
	if mg.Verbose() {
		err = sh.RunV(cmd, args...)
	} else {
		var output string
		output, err = sh.Output(cmd, args...)
		if err != nil && output != "" {
			fmt.Fprintln(out, output)
		}
	}
	if err != nil {
		PrintError(label + " failed")
	}
	return err
}

// RunOptional is Run for tools that may not be installed. A missing tool is a
// warning with an install hint, not a failure.
func RunOptional(label, install, cmd string, args ...string) error {
	err := Run(label, cmd, args...)
	if err != nil && build.IsCommandNotFound(err) {
		PrintWarning(fmt.Sprintf("%s not found (install: %s)", cmd, install))
		return nil
	}
	return err
}
