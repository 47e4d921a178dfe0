// Package dashboard renders build progress, either as an interactive
// terminal UI or as plain prefixed lines.
package dashboard

import (
	"time"

	"github.com/dkoosis/packrun/internal/build"
)

// JobStatus represents display state.
type JobStatus int

const (
	JobPending JobStatus = iota
	JobRunning
	JobSuccess
	JobFailed
	JobCanceled
)

const defaultBufferLines = 5000

// JobView is the display state of one job.
type JobView struct {
	Job        build.Job
	Status     JobStatus
	StartedAt  time.Time
	FinishedAt time.Time
	Outcome    *build.JobOutcome
	output     *tailBuffer
}

// Output returns a copy of the buffered output lines.
func (j *JobView) Output() []string {
	return j.output.lines()
}

// Duration returns elapsed time.
func (j *JobView) Duration() time.Duration {
	if j.StartedAt.IsZero() {
		return 0
	}
	if j.FinishedAt.IsZero() {
		return time.Since(j.StartedAt)
	}
	return j.FinishedAt.Sub(j.StartedAt)
}

// Finished reports whether the job has its outcome.
func (j *JobView) Finished() bool {
	return j.Outcome != nil
}

// Board folds build events into per-job display state.
// It is owned by one goroutine.
type Board struct {
	Jobs    []*JobView
	Done    bool
	Success bool
	Message string
	Result  *build.RunOutcome

	runLines *tailBuffer
	now      func() time.Time
}

// NewBoard creates a board with every job pending.
func NewBoard(jobs []build.Job) *Board {
	b := &Board{runLines: newTailBuffer(defaultBufferLines), now: time.Now}
	for _, job := range jobs {
		b.Jobs = append(b.Jobs, &JobView{Job: job, Status: JobPending, output: newTailBuffer(defaultBufferLines)})
	}
	return b
}

// Apply folds evt into the board. It returns the index of the job the event
// belongs to, or build.RunLevel.
func (b *Board) Apply(evt build.Event) int {
	switch evt.Kind {
	case build.EventDone:
		b.Done = true
		b.Success = evt.Success
		b.Message = evt.Message
		b.Result = evt.Run
		return build.RunLevel
	case build.EventLog:
		if evt.Job < 0 || evt.Job >= len(b.Jobs) {
			b.runLines.add(evt.Line)
			return build.RunLevel
		}
		view := b.Jobs[evt.Job]
		if view.Status == JobPending && evt.Outcome == nil {
			view.Status = JobRunning
			view.StartedAt = b.now()
		}
		view.output.add(evt.Line)
		if evt.Outcome != nil {
			view.Outcome = evt.Outcome
			view.Status = statusFor(evt.Outcome.Kind)
			if !view.StartedAt.IsZero() {
				view.FinishedAt = b.now()
			}
		}
		return evt.Job
	}
	return build.RunLevel
}

// RunLines returns the run-level lines seen so far.
func (b *Board) RunLines() []string {
	return b.runLines.lines()
}

// ExitCode maps the run result to a process exit code: 0 when every job
// succeeded, 2 when the tool was unavailable, 1 otherwise.
func (b *Board) ExitCode() int {
	if b.Result == nil {
		return 1
	}
	switch b.Result.Kind {
	case build.AllSucceeded:
		return 0
	case build.ToolUnavailable:
		return 2
	default:
		return 1
	}
}

func statusFor(kind build.OutcomeKind) JobStatus {
	switch kind {
	case build.Success:
		return JobSuccess
	case build.Canceled:
		return JobCanceled
	default:
		return JobFailed
	}
}
