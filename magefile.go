//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"

	"github.com/dkoosis/packrun/internal/magetasks"
)

// Default target - build the binary
var Default = Build

func init() {
	if err := magetasks.Initialize(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal: %v\n", err)
		os.Exit(1)
	}
}

// Build builds the packrun binary
func Build() error {
	return magetasks.BuildAll()
}

// Clean removes build artifacts
func Clean() error {
	return magetasks.Clean()
}

// QA runs lint, tests, and build
func QA() error {
	return magetasks.QA()
}

// Lint namespace
type Lint mg.Namespace

// All runs all linters
func (Lint) All() error { return magetasks.LintAll() }

// Fmt checks formatting
func (Lint) Fmt() error { return magetasks.LintFormat() }

// Vet runs go vet
func (Lint) Vet() error { return magetasks.LintVet() }

// Fix runs golangci-lint with auto-fixes
func (Lint) Fix() error { return magetasks.LintGolangciFix() }

// Test namespace
type Test mg.Namespace

// All runs all tests
func (Test) All() error { return magetasks.TestAll() }

// Coverage runs tests with coverage
func (Test) Coverage() error { return magetasks.TestCoverage() }

// Race runs tests with the race detector
func (Test) Race() error { return magetasks.TestRace() }
