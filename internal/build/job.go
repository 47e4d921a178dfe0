package build

import (
	"fmt"
	"strings"
	"time"
)

// Job is one unit of build work. Jobs are never mutated once created.
type Job struct {
	Source string `yaml:"source"` // file name searched for under the root
	Output string `yaml:"output"` // artifact name, without executable suffix
	Label  string `yaml:"label"`  // human-readable description
}

// Name returns the label, falling back to the output name.
func (j Job) Name() string {
	if j.Label != "" {
		return j.Label
	}
	return j.Output
}

// OutcomeKind classifies how a single job ended.
type OutcomeKind int

const (
	// Success means the tool exited 0 and the artifact exists.
	Success OutcomeKind = iota
	// NotFound means the source file could not be located.
	NotFound
	// ToolFailure means the tool exited with a non-zero code.
	ToolFailure
	// ArtifactMissing means the tool exited 0 without producing the artifact.
	ArtifactMissing
	// SpawnError means the tool could not be started or talked to.
	SpawnError
	// Canceled means the run was canceled before or during this job.
	Canceled
)

func (k OutcomeKind) String() string {
	switch k {
	case Success:
		return "success"
	case NotFound:
		return "not found"
	case ToolFailure:
		return "tool failure"
	case ArtifactMissing:
		return "artifact missing"
	case SpawnError:
		return "spawn error"
	case Canceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// JobOutcome is produced exactly once per job in a run.
type JobOutcome struct {
	Job          Job
	Kind         OutcomeKind
	SourcePath   string // resolved source, empty for NotFound
	ArtifactPath string // expected artifact location
	Size         int64  // artifact size in bytes, Success only
	ExitCode     int    // tool exit code, -1 when the tool never exited normally
	Duration     time.Duration
	Err          error // nil for Success
}

// OK reports whether the job succeeded.
func (o JobOutcome) OK() bool {
	return o.Kind == Success
}

// RunKind classifies a whole run.
type RunKind int

const (
	// AllSucceeded means every job produced its artifact.
	AllSucceeded RunKind = iota
	// PartialFailure means at least one job did not succeed.
	PartialFailure
	// ToolUnavailable means the tool could not be invoked and no job ran.
	ToolUnavailable
)

func (k RunKind) String() string {
	switch k {
	case AllSucceeded:
		return "all succeeded"
	case PartialFailure:
		return "partial failure"
	case ToolUnavailable:
		return "tool unavailable"
	default:
		return "unknown"
	}
}

// RunOutcome aggregates every JobOutcome of a run.
type RunOutcome struct {
	Kind      RunKind
	Succeeded []string     // output names of successful jobs, in run order
	Failed    []string     // output names of failed jobs, in run order
	Jobs      []JobOutcome // one per job, in run order; empty for ToolUnavailable
	Duration  time.Duration
	Cause     error // set for ToolUnavailable
}

// aggregate folds job outcomes into a run outcome.
func aggregate(outcomes []JobOutcome) RunOutcome {
	out := RunOutcome{Kind: AllSucceeded, Jobs: outcomes}
	for _, oc := range outcomes {
		if oc.OK() {
			out.Succeeded = append(out.Succeeded, oc.Job.Output)
			continue
		}
		out.Failed = append(out.Failed, oc.Job.Output)
		out.Kind = PartialFailure
	}
	return out
}

// Message is the one-line summary carried by the terminal event.
func (r RunOutcome) Message() string {
	switch r.Kind {
	case ToolUnavailable:
		if r.Cause != nil {
			return r.Cause.Error()
		}
		return ErrToolUnavailable.Error()
	case AllSucceeded:
		if len(r.Succeeded) == 0 {
			return "Nothing to build"
		}
		return fmt.Sprintf("Successfully built %d artifact(s): %s", len(r.Succeeded), strings.Join(r.Succeeded, ", "))
	default:
		return fmt.Sprintf("%d of %d build(s) failed: %s", len(r.Failed), len(r.Jobs), strings.Join(r.Failed, ", "))
	}
}

// Err collapses a failed run into one error value. It returns nil when every
// job succeeded.
func (r RunOutcome) Err() error {
	switch r.Kind {
	case AllSucceeded:
		return nil
	case ToolUnavailable:
		if r.Cause != nil {
			return r.Cause
		}
		return ErrToolUnavailable
	default:
		return aggregatedError{failed: append([]string(nil), r.Failed...)}
	}
}

// aggregatedError collapses multiple job failures into one error value.
type aggregatedError struct {
	failed []string
}

func (a aggregatedError) Error() string {
	return fmt.Sprintf("%d job(s) failed: %s", len(a.failed), strings.Join(a.failed, ", "))
}

// Failed lists the output names of the failed jobs.
func (a aggregatedError) Failed() []string { return append([]string(nil), a.failed...) }
