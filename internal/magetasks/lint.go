package magetasks

import (
	"errors"
)

const golangciInstall = "go install github.com/golangci/golangci-lint/cmd/golangci-lint@latest"

// LintAll runs all linters and reports every failure.
func LintAll() error {
	PrintH2Header("Lint")

	var errs []error
	for _, lint := range []func() error{LintFormat, LintVet, LintStaticcheck, LintGolangci} {
		if err := lint(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	PrintSuccess("All linters passed")
	return nil
}

// LintFormat checks code formatting.
func LintFormat() error {
	return Run("Go Format", "go", "fmt", "./...")
}

// LintVet runs go vet.
func LintVet() error {
	return Run("Go Vet", "go", "vet", "./...")
}

// LintStaticcheck runs staticcheck when installed.
func LintStaticcheck() error {
	return RunOptional("Staticcheck", "go install honnef.co/go/tools/cmd/staticcheck@latest",
		"staticcheck", "./...")
}

// LintGolangci runs golangci-lint when installed.
func LintGolangci() error {
	return RunOptional("Golangci-lint", golangciInstall,
		"golangci-lint", "run", "--timeout=5m", "./...")
}

// LintGolangciFix runs golangci-lint with auto-fixes.
func LintGolangciFix() error {
	return RunOptional("Golangci-lint Fix", golangciInstall,
		"golangci-lint", "run", "--fix", "--timeout=5m", "./...")
}
