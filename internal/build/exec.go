package build

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"
)

const (
	defaultMaxLineLength = 1 * 1024 * 1024
	preflightTimeout     = 30 * time.Second
	waitDelay            = 5 * time.Second
)

// preflight asks the tool for its version. Any failure means the tool is
// unavailable.
func (o *Orchestrator) preflight(ctx context.Context) (string, error) {
	if o.tool.Command == "" {
		return "", fmt.Errorf("%w: no command configured", ErrToolUnavailable)
	}

	ctx, cancel := context.WithTimeout(ctx, preflightTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, o.tool.Command, o.tool.VersionArgs...)
	cmd.Dir = o.workDir
	cmd.Env = mergeEnv(os.Environ(), o.tool.Env)
	out, err := cmd.CombinedOutput()
	if err != nil {
		detail := firstLine(string(out))
		if detail != "" {
			return "", fmt.Errorf("%w: %s --version: %w (%s)", ErrToolUnavailable, o.tool.Command, err, detail)
		}
		return "", fmt.Errorf("%w: %s: %w", ErrToolUnavailable, o.tool.Command, err)
	}
	return firstLine(string(out)), nil
}

// invoke runs the tool once and drains its combined stdout and stderr into
// emit until the child closes its end of the pipe. It returns the exit code,
// or -1 with an error when the child never exited normally.
func (o *Orchestrator) invoke(ctx context.Context, args []string, emit func(string)) (int, error) {
	cmd := exec.CommandContext(ctx, o.tool.Command, args...)
	cmd.Dir = o.workDir
	cmd.Env = mergeEnv(os.Environ(), o.tool.Env)
	setProcessGroup(cmd)
	cmd.Cancel = func() error { return killProcessGroup(cmd) }
	cmd.WaitDelay = waitDelay

	reader, writer, err := os.Pipe()
	if err != nil {
		return -1, fmt.Errorf("creating output pipe: %w", err)
	}
	cmd.Stdout = writer
	cmd.Stderr = writer

	if err := cmd.Start(); err != nil {
		_ = writer.Close()
		_ = reader.Close()
		return -1, err
	}
	// The child owns its copy of the write end now; ours must go so the read
	// below sees EOF when the child exits.
	_ = writer.Close()

	// Unblock the read if a helper outlives a killed process group.
	stop := context.AfterFunc(ctx, func() { _ = reader.Close() })
	scanErr := o.drain(reader, emit)
	stop()
	_ = reader.Close()

	waitErr := cmd.Wait()
	if waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			return exitErr.ExitCode(), nonZeroExit(exitErr.ExitCode())
		}
		return -1, waitErr
	}
	if scanErr != nil {
		return 0, fmt.Errorf("reading tool output: %w", scanErr)
	}
	return 0, nil
}

// drain emits r line by line. Lines longer than the configured limit end
// line-splitting; the remainder is discarded so the child never blocks on a
// full pipe.
func (o *Orchestrator) drain(r io.Reader, emit func(string)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), o.maxLineLength)
	for scanner.Scan() {
		emit(strings.TrimRight(scanner.Text(), "\r"))
	}
	err := scanner.Err()
	if errors.Is(err, bufio.ErrTooLong) {
		emit(fmt.Sprintf("[packrun] output line exceeds %d bytes, discarding the rest of the output", o.maxLineLength))
		_, _ = io.Copy(io.Discard, r)
		return nil
	}
	if err != nil && !isIgnorableReadErr(err) {
		return err
	}
	return nil
}

func isIgnorableReadErr(err error) bool {
	return errors.Is(err, io.EOF) ||
		errors.Is(err, os.ErrClosed) ||
		strings.Contains(err.Error(), "file already closed") ||
		strings.Contains(err.Error(), "broken pipe")
}

// IsCommandNotFound reports whether err means the command does not exist.
// It handles exec.ErrNotFound and platform-specific string fallbacks.
func IsCommandNotFound(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, exec.ErrNotFound) {
		return true
	}
	errStr := err.Error()
	if strings.Contains(errStr, "executable file not found") {
		return true
	}
	if runtime.GOOS != "windows" && strings.Contains(errStr, "no such file or directory") {
		return true
	}
	return false
}

func mergeEnv(base []string, extra map[string]string) []string {
	if len(extra) == 0 {
		return base
	}
	env := make([]string, len(base), len(base)+len(extra))
	copy(env, base)
	for k, v := range extra {
		env = append(env, fmt.Sprintf("%s=%s", k, v))
	}
	return env
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
