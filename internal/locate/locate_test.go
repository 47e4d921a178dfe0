package locate

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// touch creates a file (and its parents) under root.
func touch(t *testing.T, root string, parts ...string) string {
	t.Helper()
	path := filepath.Join(append([]string{root}, parts...)...)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("print('hi')\n"), 0o644))
	return path
}

func TestFind_PrefersRoot_When_FileExistsAtDepthZero(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	want := touch(t, root, "app.py")
	touch(t, root, "src", "app.py")

	got, ok := Find(root, "app.py", DefaultDepth)
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestFind_ReturnsShallowestMatch_When_FileExistsAtSeveralDepths(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	touch(t, root, "a", "b", "c", "app.py")
	want := touch(t, root, "z", "y", "app.py")

	got, ok := Find(root, "app.py", DefaultDepth)
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestFind_UsesDefaultDepth_When_DepthNegative(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	want := touch(t, root, "app.py")

	got, ok := Find(root, "app.py", -1)
	require.True(t, ok)
	assert.Equal(t, want, got)

	deep := touch(t, root, "a", "b", "c", "tool.py")
	got, ok = Find(root, "tool.py", -1)
	require.True(t, ok)
	assert.Equal(t, deep, got)

	touch(t, root, "a", "b", "c", "d", "far.py")
	_, ok = Find(root, "far.py", -1)
	assert.False(t, ok)
	assert.Equal(t, []string{want}, Candidates(root, "app.py", -1))
}

func TestFind_ReportsAbsent_When_FileIsDeeperThanDepth(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	touch(t, root, "a", "b", "c", "d", "app.py")

	got, ok := Find(root, "app.py", DefaultDepth)
	assert.False(t, ok)
	assert.Empty(t, got)

	got, ok = Find(root, "app.py", 4)
	assert.True(t, ok)
	assert.Equal(t, filepath.Join(root, "a", "b", "c", "d", "app.py"), got)
}

func TestFind_ReportsAbsent_When_RootDoesNotExist(t *testing.T) {
	t.Parallel()

	_, ok := Find(filepath.Join(t.TempDir(), "missing"), "app.py", DefaultDepth)
	assert.False(t, ok)
}

func TestFind_IgnoresDirectories_When_NameMatchesADirectory(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "app.py"), 0o755))
	want := touch(t, root, "pkg", "app.py")

	got, ok := Find(root, "app.py", DefaultDepth)
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestFind_SkipsHiddenDirectories(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	touch(t, root, ".venv", "app.py")

	_, ok := Find(root, "app.py", DefaultDepth)
	assert.False(t, ok)
}

func TestFind_RejectsNamesOutsideRoot(t *testing.T) {
	t.Parallel()

	parent := t.TempDir()
	root := filepath.Join(parent, "project")
	require.NoError(t, os.MkdirAll(root, 0o755))
	outside := touch(t, parent, "secret.py")

	for _, name := range []string{"../secret.py", outside, ""} {
		_, ok := Find(root, name, DefaultDepth)
		assert.False(t, ok, "name %q", name)
	}
}

func TestFind_UsesWorkingDirectory_When_RootEmpty(t *testing.T) {
	root := t.TempDir()
	want := touch(t, root, "tools", "app.py")
	chdir(t, root)

	got, ok := Find("", "app.py", DefaultDepth)
	require.True(t, ok)

	// macOS temp dirs sit behind a /private symlink.
	wantReal, err := filepath.EvalSymlinks(want)
	require.NoError(t, err)
	gotReal, err := filepath.EvalSymlinks(got)
	require.NoError(t, err)
	assert.Equal(t, wantReal, gotReal)
}

func TestFind_ConfinesSearchToRoot_When_RootGiven(t *testing.T) {
	cwd := t.TempDir()
	touch(t, cwd, "app.py")
	chdir(t, cwd)

	root := t.TempDir()
	_, ok := Find(root, "app.py", DefaultDepth)
	assert.False(t, ok)
}

func TestFind_ContinuesSearch_When_SubdirectoryUnreadable(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits not enforced")
	}
	t.Parallel()

	root := t.TempDir()
	locked := filepath.Join(root, "a-locked")
	require.NoError(t, os.MkdirAll(locked, 0o755))
	touch(t, locked, "inner", "app.py")
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	want := touch(t, root, "b-open", "inner", "app.py")

	got, ok := Find(root, "app.py", DefaultDepth)
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestFind_IsIdempotent_When_FilesystemUnchanged(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	touch(t, root, "x", "app.py")
	touch(t, root, "y", "app.py")

	first, ok1 := Find(root, "app.py", DefaultDepth)
	second, ok2 := Find(root, "app.py", DefaultDepth)
	assert.Equal(t, ok1, ok2)
	assert.Equal(t, first, second)
}

func TestFind_SeesNewFiles_When_FilesystemChangesBetweenCalls(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	_, ok := Find(root, "app.py", DefaultDepth)
	require.False(t, ok)

	want := touch(t, root, "later", "app.py")
	got, ok := Find(root, "app.py", DefaultDepth)
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestCandidates_ReturnsAllMatchesAtShallowestDepth(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	b := touch(t, root, "b", "app.py")
	a := touch(t, root, "a", "app.py")
	touch(t, root, "c", "d", "app.py")

	assert.Equal(t, []string{a, b}, Candidates(root, "app.py", DefaultDepth))
	assert.Nil(t, Candidates(root, "other.py", DefaultDepth))
}

func TestLocator_UsesDefaultDepth_When_DepthNegative(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	want := touch(t, root, "a", "b", "c", "app.py")

	got, ok := Locator{Root: root, Depth: -1}.Locate("app.py")
	require.True(t, ok)
	assert.Equal(t, want, got)

	_, ok = Locator{Root: root, Depth: 0}.Locate("app.py")
	assert.False(t, ok)
}

func TestLocator_Scope_NamesRootAndDepth(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	assert.Equal(t, root+" (depth 2)", Locator{Root: root, Depth: 2}.Scope())
}
