package build

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/dkoosis/packrun/internal/locate"
)

const rule = "------------------------------------------------------------"

// Orchestrator runs jobs through the packaging tool one at a time.
// It holds no per-run state, so one Orchestrator may serve many runs, but the
// caller must not start two runs that share a work dir concurrently; Worker
// enforces that.
type Orchestrator struct {
	tool          Tool
	depth         int
	workDir       string
	logger        *slog.Logger
	metrics       *Metrics
	canonical     []Job
	usage         []string
	maxLineLength int
	now           func() time.Time
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithDepth sets the source search depth. Negative values select
// locate.DefaultDepth.
func WithDepth(depth int) Option {
	return func(o *Orchestrator) { o.depth = depth }
}

// WithWorkDir sets the directory the tool runs in. Artifacts are expected
// relative to it. Defaults to the process working directory.
func WithWorkDir(dir string) Option {
	return func(o *Orchestrator) { o.workDir = dir }
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetrics records job and run outcomes.
func WithMetrics(m *Metrics) Option {
	return func(o *Orchestrator) { o.metrics = m }
}

// WithUsageNotes emits notes after a run that built exactly the canonical job
// set without failures.
func WithUsageNotes(canonical []Job, notes []string) Option {
	return func(o *Orchestrator) {
		o.canonical = append([]Job(nil), canonical...)
		o.usage = append([]string(nil), notes...)
	}
}

// WithMaxLineLength caps a single line of tool output.
func WithMaxLineLength(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.maxLineLength = n
		}
	}
}

// New constructs an Orchestrator for tool.
func New(tool Tool, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		tool:          tool,
		depth:         locate.DefaultDepth,
		logger:        slog.Default(),
		maxLineLength: defaultMaxLineLength,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.workDir == "" {
		if wd, err := os.Getwd(); err == nil {
			o.workDir = wd
		}
	}
	return o
}

// Tool returns the tool configuration.
func (o *Orchestrator) Tool() Tool {
	return o.tool
}

// Preflight checks that the tool answers a version query and returns the
// first line of its answer.
func (o *Orchestrator) Preflight(ctx context.Context) (string, error) {
	return o.preflight(ctx)
}

// Run executes jobs in order against root and returns the aggregate outcome.
//
// Every event goes to sink synchronously: log lines of job i all precede those
// of job i+1, and one EventDone follows the last line. An empty root searches
// the current working directory. Canceling ctx kills the running tool and marks
// the remaining jobs Canceled.
func (o *Orchestrator) Run(ctx context.Context, jobs []Job, root string, sink Sink) RunOutcome {
	if sink == nil {
		sink = discard
	}
	start := o.now()
	runLine := func(format string, args ...any) {
		sink(Event{Kind: EventLog, Job: RunLevel, Line: fmt.Sprintf(format, args...)})
	}

	version, err := o.preflight(ctx)
	if err != nil {
		o.logger.Warn("packaging tool unavailable", "command", o.tool.Command, "error", err)
		runLine("✗ %s is not available: %v", o.tool.Command, err)
		runLine("Install it (for example: pip install %s) and make sure it is on PATH.", o.tool.Command)
		out := RunOutcome{Kind: ToolUnavailable, Cause: err, Duration: o.now().Sub(start)}
		o.metrics.ObserveRun(out, o.now())
		o.finish(sink, out)
		return out
	}
	o.logger.Debug("packaging tool ready", "command", o.tool.Command, "version", version)
	runLine("Using %s %s", o.tool.Command, version)

	loc := locate.Locator{Root: root, Depth: o.depth}
	outcomes := make([]JobOutcome, 0, len(jobs))
	for i, job := range jobs {
		jobLine := func(line string) {
			sink(Event{Kind: EventLog, Job: i, Line: line})
		}
		var oc JobOutcome
		if err := ctx.Err(); err != nil {
			oc = JobOutcome{Job: job, Kind: Canceled, ExitCode: -1, Err: err}
		} else {
			jobLine(fmt.Sprintf("[%d/%d] Building %s from %s", i+1, len(jobs), job.Name(), job.Source))
			oc = o.runJob(ctx, job, loc, jobLine)
		}
		o.metrics.ObserveJob(oc)
		o.logger.Debug("job finished", "output", job.Output, "outcome", oc.Kind.String(), "duration", oc.Duration)
		outcomes = append(outcomes, oc)
		final := oc
		sink(Event{Kind: EventLog, Job: i, Line: describe(oc, loc, o.tool.Command), Outcome: &final})
	}

	out := aggregate(outcomes)
	out.Duration = o.now().Sub(start)
	o.metrics.ObserveRun(out, o.now())
	o.summarize(out, jobs, runLine)
	o.finish(sink, out)
	return out
}

func (o *Orchestrator) finish(sink Sink, out RunOutcome) {
	sink(Event{Kind: EventDone, Success: out.Kind == AllSucceeded, Message: out.Message(), Run: &out})
}

// runJob resolves, builds, and classifies one job.
func (o *Orchestrator) runJob(ctx context.Context, job Job, loc locate.Locator, emit func(string)) JobOutcome {
	start := o.now()
	oc := JobOutcome{Job: job, ExitCode: -1, ArtifactPath: o.tool.ArtifactPath(o.workDir, job)}

	source, ok := loc.Locate(job.Source)
	if !ok {
		oc.Kind = NotFound
		oc.Err = fmt.Errorf("%w: %s", ErrSourceNotFound, job.Source)
		return finishJob(&oc, start, o.now)
	}
	oc.SourcePath = source
	emit("Found: " + source)

	jobCtx := ctx
	if o.tool.Timeout > 0 {
		var cancel context.CancelFunc
		jobCtx, cancel = context.WithTimeout(ctx, o.tool.Timeout)
		defer cancel()
	}

	// A leftover artifact from an earlier run must not pass the existence check.
	if err := os.Remove(oc.ArtifactPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		o.logger.Debug("could not remove previous artifact", "path", oc.ArtifactPath, "error", err)
	}

	args := o.tool.Args(job, source)
	o.logger.Debug("spawning packaging tool", "command", o.tool.Command, "args", args, "dir", o.workDir)
	code, err := o.invoke(jobCtx, args, emit)
	oc.ExitCode = code

	switch {
	case err == nil:
		info, statErr := os.Stat(oc.ArtifactPath)
		if statErr != nil || info.IsDir() {
			oc.Kind = ArtifactMissing
			oc.Err = fmt.Errorf("%w: %s", ErrArtifactMissing, oc.ArtifactPath)
			break
		}
		oc.Kind = Success
		oc.Size = info.Size()
	case ctx.Err() != nil:
		oc.Kind = Canceled
		oc.Err = ctx.Err()
	case jobCtx.Err() != nil:
		oc.Kind = ToolFailure
		oc.Err = fmt.Errorf("%w after %s: %w", errTimedOut, o.tool.Timeout, nonZeroExit(code))
	case errors.Is(err, ErrNonZeroExit):
		oc.Kind = ToolFailure
		oc.Err = err
	default:
		oc.Kind = SpawnError
		oc.Err = err
		emit(fmt.Sprintf("Error running %s: %v", o.tool.Command, err))
	}
	return finishJob(&oc, start, o.now)
}

func finishJob(oc *JobOutcome, start time.Time, now func() time.Time) JobOutcome {
	oc.Duration = now().Sub(start)
	return *oc
}

// describe renders the terminal log line of a job.
func describe(oc JobOutcome, loc locate.Locator, tool string) string {
	name := oc.Job.Output
	switch oc.Kind {
	case Success:
		return fmt.Sprintf("✓ Built %s: %s (%s)", name, oc.ArtifactPath, humanize.Bytes(uint64(oc.Size)))
	case NotFound:
		return fmt.Sprintf("✗ %s: %s not found in %s", name, oc.Job.Source, loc.Scope())
	case ToolFailure:
		if errors.Is(oc.Err, errTimedOut) {
			return fmt.Sprintf("✗ %s: %s %v", name, tool, oc.Err)
		}
		return fmt.Sprintf("✗ %s: %s exited with code %d", name, tool, oc.ExitCode)
	case ArtifactMissing:
		return fmt.Sprintf("✗ %s: %s reported success but %s does not exist", name, tool, oc.ArtifactPath)
	case SpawnError:
		return fmt.Sprintf("✗ %s: could not run %s: %v", name, tool, oc.Err)
	case Canceled:
		return fmt.Sprintf("✗ %s: skipped, build canceled", name)
	default:
		return fmt.Sprintf("✗ %s: %s", name, oc.Kind)
	}
}

// summarize emits the closing lines of a run.
func (o *Orchestrator) summarize(out RunOutcome, jobs []Job, line func(string, ...any)) {
	line("%s", rule)
	line("Build finished in %s: %d of %d succeeded", out.Duration.Round(time.Millisecond), len(out.Succeeded), len(out.Jobs))
	for _, oc := range out.Jobs {
		if oc.OK() {
			line("  ✓ %s -> %s", oc.Job.Output, oc.ArtifactPath)
		}
	}
	for _, oc := range out.Jobs {
		if !oc.OK() {
			line("  ✗ %s (%s)", oc.Job.Output, oc.Kind)
		}
	}
	line("%s", rule)

	if out.Kind == AllSucceeded && len(o.usage) > 0 && sameJobSet(jobs, o.canonical) {
		for _, note := range o.usage {
			line("%s", note)
		}
	}
}

// sameJobSet reports whether a and b name the same outputs, in any order.
func sameJobSet(a, b []Job) bool {
	if len(a) == 0 || len(a) != len(b) {
		return false
	}
	seen := make(map[string]int, len(a))
	for _, j := range a {
		seen[j.Output]++
	}
	for _, j := range b {
		if seen[j.Output] == 0 {
			return false
		}
		seen[j.Output]--
	}
	return true
}
