// Package build drives an external packaging tool over an ordered list of
// jobs.
//
// A run first checks that the tool answers a version query. It then resolves
// each job's source file with package locate, invokes the tool once per job,
// streams the tool's combined output line by line to a caller-supplied sink,
// and classifies the job from the exit code and the presence of the expected
// artifact. Jobs run strictly one after another because the tool writes into a
// shared output directory and keeps shared cache state.
//
// Callers that need a responsive front end use Worker, which runs the
// orchestrator on its own goroutine and delivers events over a channel.
package build
