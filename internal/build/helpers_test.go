package build

import (
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeTool mimics the packaging tool. The content of the source file selects
// the behavior: FAIL exits 3, NOARTIFACT exits 0 without writing anything,
// HANG sleeps until killed, VANISH deletes the tool itself and then carries on.
// Anything else writes dist/<name>.
const fakeTool = `#!/bin/sh
if [ "$1" = "--version" ]; then
  echo "6.3.0"
  exit 0
fi
name=""
src=""
dist="dist"
while [ $# -gt 0 ]; do
  case "$1" in
    --name) name="$2"; shift 2 ;;
    --distpath) dist="$2"; shift 2 ;;
    --*) shift ;;
    *) src="$1"; shift ;;
  esac
done
echo "building $name from $src"
echo "note: writing to stderr" >&2
if grep -q VANISH "$src"; then
  rm -f "$0"
fi
if grep -q HANG "$src"; then
  echo "hanging"
  sleep 30
fi
if grep -q FAIL "$src"; then
  echo "error: cannot package $name" >&2
  exit 3
fi
if grep -q NOARTIFACT "$src"; then
  exit 0
fi
mkdir -p "$dist"
printf 'binary' > "$dist/$name"
echo "done $name"
`

type fixture struct {
	tool    Tool
	root    string // project tree searched for sources
	workDir string // where the tool runs and dist/ lands
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake tool is a POSIX shell script")
	}

	bin := t.TempDir()
	script := filepath.Join(bin, "fakepack")
	require.NoError(t, os.WriteFile(script, []byte(fakeTool), 0o755))

	tool := DefaultTool()
	tool.Command = script
	tool.ExeSuffix = ""

	return fixture{tool: tool, root: t.TempDir(), workDir: t.TempDir()}
}

// source writes a source file at rel (relative to the fixture root).
func (f fixture) source(t *testing.T, rel, content string) {
	t.Helper()
	path := filepath.Join(f.root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content+"\n"), 0o644))
}

func (f fixture) orchestrator(opts ...Option) *Orchestrator {
	return New(f.tool, append([]Option{WithWorkDir(f.workDir)}, opts...)...)
}

// recorder is a Sink that keeps every event.
type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) sink(evt Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
}

func (r *recorder) all() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// jobLines returns the log lines for job i.
func (r *recorder) jobLines(i int) []string {
	var lines []string
	for _, evt := range r.all() {
		if evt.Kind == EventLog && evt.Job == i {
			lines = append(lines, evt.Line)
		}
	}
	return lines
}

func threeJobs() []Job {
	return []Job{
		{Source: "overlay.py", Output: "Overlay", Label: "Overlay application"},
		{Source: "settings.py", Output: "OverlaySettings", Label: "Settings editor"},
		{Source: "magnifier.py", Output: "Magnifier", Label: "Magnifier"},
	}
}
