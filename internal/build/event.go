package build

// EventKind distinguishes the two events a run emits.
type EventKind int

const (
	// EventLog carries one human-readable log line.
	EventLog EventKind = iota
	// EventDone is emitted exactly once, after every log line of the run.
	EventDone
)

// RunLevel is the Job index of log lines that belong to no particular job.
const RunLevel = -1

// Event is what crosses from a run to its controller.
type Event struct {
	Kind EventKind

	// Log events.
	Job     int         // index into the run's jobs, or RunLevel
	Line    string      // one line, without trailing newline
	Outcome *JobOutcome // set on the last line of a job

	// Done event.
	Success bool
	Message string
	Run     *RunOutcome
}

// Sink receives events synchronously, in order.
type Sink func(Event)

func discard(Event) {}
