package dashboard

import (
	"fmt"
	"io"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dkoosis/packrun/internal/build"
)

// RunNonTTY streams events for non-interactive environments until the
// channel closes. Job lines get an "[Output] " prefix; run-level lines print
// as they are. It returns the final board.
func RunNonTTY(jobs []build.Job, events <-chan build.Event, out io.Writer) *Board {
	board := NewBoard(jobs)
	for evt := range events {
		idx := board.Apply(evt)
		if evt.Kind != build.EventLog {
			continue
		}
		if idx == build.RunLevel {
			fmt.Fprintln(out, evt.Line)
			continue
		}
		fmt.Fprintf(out, "[%s] %s\n", jobs[idx].Output, evt.Line)
	}
	renderSummary(out, board)
	return board
}

func renderSummary(out io.Writer, board *Board) {
	title := cases.Title(language.English)

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Summary:")
	for _, view := range board.Jobs {
		status := "-"
		label := "Not Run"
		if view.Outcome != nil {
			label = title.String(view.Outcome.Kind.String())
			status = "✗"
			if view.Outcome.OK() {
				status = "✓"
			}
		}
		duration := view.Duration().Round(10 * time.Millisecond)
		fmt.Fprintf(out, "  %s %s: %s (%s)\n", status, view.Job.Output, label, duration)
	}
	if board.Message != "" {
		fmt.Fprintf(out, "\n%s\n", board.Message)
	}
}
