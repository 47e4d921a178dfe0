package magetasks

// TestAll runs all tests.
func TestAll() error {
	PrintH2Header("Tests")
	if err := Run("Go Test", "go", "test", "./..."); err != nil {
		return err
	}
	PrintSuccess("All tests passed")
	return nil
}

// TestCoverage runs tests with coverage and prints the per-function report.
func TestCoverage() error {
	PrintH2Header("Test Coverage")
	if err := Run("Go Test", "go", "test", "-coverprofile=coverage.out", "./..."); err != nil {
		return err
	}
	if err := Run("Coverage Report", "go", "tool", "cover", "-func=coverage.out"); err != nil {
		return err
	}
	PrintSuccess("Coverage report generated")
	return nil
}

// TestRace runs tests with race detector.
func TestRace() error {
	PrintH2Header("Race Detector")
	if err := Run("Go Test -race", "go", "test", "-race", "./..."); err != nil {
		return err
	}
	PrintSuccess("No race conditions detected")
	return nil
}

// QA runs linters, tests, and the build, stopping at the first failure.
func QA() error {
	PrintH1Header("packrun Quality Assurance")
	for _, step := range []func() error{LintAll, TestAll, BuildAll} {
		if err := step(); err != nil {
			return err
		}
	}
	PrintSuccess("QA complete!")
	return nil
}
