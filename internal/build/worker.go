package build

import (
	"context"
	"sync/atomic"
)

const defaultEventBuffer = 256

// Worker runs one build at a time on a dedicated goroutine so the controller
// stays responsive. The controller talks to it only through Submit, the
// returned event channel, and the context it passes in.
type Worker struct {
	orch *Orchestrator
	busy atomic.Bool
}

// NewWorker wraps orch.
func NewWorker(orch *Orchestrator) *Worker {
	return &Worker{orch: orch}
}

// Busy reports whether a run is in progress.
func (w *Worker) Busy() bool {
	return w.busy.Load()
}

// Submit starts a run and returns its events. The channel carries log events,
// then exactly one EventDone, and is then closed. The caller must drain it.
// Submit returns ErrRunInProgress while an earlier run is still active.
//
// jobs and root are captured at call time; later changes by the caller do not
// affect the run. Canceling ctx stops the run.
func (w *Worker) Submit(ctx context.Context, jobs []Job, root string) (<-chan Event, error) {
	if !w.busy.CompareAndSwap(false, true) {
		return nil, ErrRunInProgress
	}
	snapshot := append([]Job(nil), jobs...)
	events := make(chan Event, defaultEventBuffer)

	go func() {
		defer close(events)
		w.orch.Run(ctx, snapshot, root, func(evt Event) {
			if evt.Kind == EventDone {
				// Released first: a controller may submit again on receipt.
				w.busy.Store(false)
			}
			events <- evt
		})
	}()

	return events, nil
}
