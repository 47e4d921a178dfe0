// packrun finds a fixed set of source files under a project tree and packages
// each one into a standalone executable with an external tool (PyInstaller by
// default), one job at a time.
//
// Usage:
//
//	packrun build                    # build every configured job
//	packrun build Overlay --root src # build one output, searching src/
//	packrun locate settings_gui.py   # show where a source resolves
//	packrun check                    # verify the tool and sources without building
//
// Output modes (auto-detected):
//
//	dashboard: interactive terminal UI (default when stdout is a TTY)
//	plain:     prefixed lines for logs and CI (--plain, or when piped)
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"golang.org/x/term"

	"github.com/dkoosis/packrun/internal/config"
	"github.com/dkoosis/packrun/internal/version"
)

// CLI is the root command.
type CLI struct {
	Config  string `short:"c" help:"Path to a config file (default: ./.packrun.yaml, then the XDG config dir)." placeholder:"PATH"`
	Debug   bool   `short:"d" help:"Enable debug output."`
	Quiet   bool   `short:"q" help:"Suppress informational output."`
	NoColor bool   `help:"Disable colors."`

	Build   BuildCmd   `cmd:"" help:"Build all configured jobs, or only the named outputs."`
	Locate  LocateCmd  `cmd:"" help:"Find a file under the search root."`
	Check   CheckCmd   `cmd:"" help:"Check the packaging tool and every configured source without building."`
	Jobs    JobsCmd    `cmd:"" help:"List configured jobs."`
	Version VersionCmd `cmd:"" help:"Show version information."`
}

// app carries process-level state into command Run methods.
type app struct {
	cli         *CLI
	set         map[string]bool // flags given explicitly on the command line
	stdout      io.Writer
	stderr      io.Writer
	interactive bool
	level       *slog.LevelVar
	logger      *slog.Logger
}

// exitError ends the process with a specific code and no further message.
type exitError struct {
	code int
}

func (e exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var cli CLI
	exitCode := -1

	parser, err := kong.New(&cli,
		kong.Name("packrun"),
		kong.Description("Package a fixed set of sources into standalone executables."),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
		kong.Exit(func(code int) {
			if exitCode < 0 {
				exitCode = code
			}
		}),
		kong.BindTo(ctx, (*context.Context)(nil)),
	)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	kctx, err := parser.Parse(args)
	if exitCode >= 0 {
		// --help and friends
		return exitCode
	}
	if err != nil {
		parser.Errorf("%s", err)
		return 2
	}

	level := new(slog.LevelVar)
	switch {
	case cli.Debug:
		level.Set(slog.LevelDebug)
	case cli.Quiet:
		level.Set(slog.LevelWarn)
	}
	a := &app{
		cli:         &cli,
		set:         make(map[string]bool),
		stdout:      stdout,
		stderr:      stderr,
		interactive: isTTYWriter(stdout) && os.Getenv("CI") == "",
		level:       level,
		logger:      slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})),
	}
	for _, p := range kctx.Path {
		if p.Flag != nil {
			a.set[p.Flag.Name] = true
		}
	}
	a.logger.Debug("starting", "version", version.String(), "args", args)

	err = kctx.Run(a)
	var exitErr exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	if err != nil {
		a.logger.Error(err.Error())
		return 1
	}
	return 0
}

// resolve merges command flags with env, config file, and defaults.
func (a *app) resolve(f config.CliFlags) (*config.ResolvedConfig, error) {
	f.ConfigPath = a.cli.Config
	f.RootSet = a.set["root"]
	f.DepthSet = a.set["depth"]
	f.ToolSet = a.set["tool"]
	f.NoCleanSet = a.set["no-clean"]
	f.TimeoutSet = a.set["timeout"]
	f.NoColor, f.NoColorSet = a.cli.NoColor, a.set["no-color"]
	f.Debug, f.DebugSet = a.cli.Debug, a.set["debug"]

	resolved, err := config.ResolveConfig(f)
	if err != nil {
		return nil, err
	}
	if resolved.Debug {
		a.level.Set(slog.LevelDebug)
	}
	a.logger.Debug("config resolved",
		"file", resolved.File,
		"root", resolved.Root, "root_source", resolved.RootSource,
		"depth", resolved.Depth, "depth_source", resolved.DepthSource,
		"tool", resolved.Tool.Command, "tool_source", resolved.ToolSource,
	)
	return resolved, nil
}

// isTTYWriter reports whether w is a terminal.
func isTTYWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
