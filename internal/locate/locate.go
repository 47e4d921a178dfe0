// Package locate finds named files below a search root without knowing the
// project layout in advance.
//
// The search is breadth-first by depth: the root itself is depth 0, its
// immediate subdirectories are depth 1, and so on up to a caller-supplied
// limit. A match at a shallower depth always wins over a deeper one. Within a
// single depth the first match is the one whose parent path sorts first, since
// directory listings are read in sorted order; callers must not rely on that
// and should use Candidates when ambiguity matters.
//
// Absence is not an error. Unreadable directories are skipped.
package locate

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// DefaultDepth is the number of directory levels searched below the root.
const DefaultDepth = 3

// Locator binds a search root and depth for repeated lookups.
// A negative Depth selects DefaultDepth; zero checks the root directory only.
type Locator struct {
	Root  string // empty means the current working directory
	Depth int    // negative means DefaultDepth
}

// Locate resolves filename using the locator's root and depth.
func (l Locator) Locate(filename string) (string, bool) {
	return Find(l.Root, filename, l.depth())
}

// Candidates returns every match at the shallowest depth that has one.
func (l Locator) Candidates(filename string) []string {
	return Candidates(l.Root, filename, l.depth())
}

// Scope describes the search for log messages.
func (l Locator) Scope() string {
	root, err := resolveRoot(l.Root)
	if err != nil {
		root = "."
	}
	return root + " (depth " + strconv.Itoa(l.depth()) + ")"
}

func (l Locator) depth() int {
	if l.Depth < 0 {
		return DefaultDepth
	}
	return l.Depth
}

// Find returns the absolute path of the first file named filename under root,
// searching at most depth directory levels below it. A negative depth selects
// DefaultDepth.
//
// An empty root means the current working directory. A non-empty root confines
// the search to that subtree.
func Find(root, filename string, depth int) (string, bool) {
	var found string
	walkLevels(root, filename, depth, func(match string) bool {
		found = match
		return false
	})
	return found, found != ""
}

// Candidates returns all matches for filename at the shallowest depth that has
// any, sorted lexicographically. It returns nil when nothing matches. Depth is
// interpreted as in Find.
func Candidates(root, filename string, depth int) []string {
	var matches []string
	walkLevels(root, filename, depth, func(match string) bool {
		matches = append(matches, match)
		return true
	})
	sort.Strings(matches)
	return matches
}

// walkLevels visits every match at the first depth with a match. visit returns
// false to stop early.
func walkLevels(root, filename string, depth int, visit func(string) bool) {
	if !validName(filename) {
		return
	}
	if depth < 0 {
		depth = DefaultDepth
	}
	base, err := resolveRoot(root)
	if err != nil {
		return
	}

	level := []string{base}
	for d := 0; d <= depth && len(level) > 0; d++ {
		hit := false
		for _, dir := range level {
			candidate := filepath.Join(dir, filename)
			if !isFile(candidate) {
				continue
			}
			hit = true
			if !visit(candidate) {
				return
			}
		}
		if hit || d == depth {
			return
		}
		level = subdirs(level)
	}
}

// subdirs expands one level of the tree. Read errors drop that subtree only.
func subdirs(dirs []string) []string {
	var next []string
	for _, dir := range dirs {
		// ReadDir returns whatever it managed to read alongside an error.
		entries, _ := os.ReadDir(dir)
		for _, entry := range entries {
			name := entry.Name()
			if strings.HasPrefix(name, ".") {
				continue
			}
			path := filepath.Join(dir, name)
			if isDir(entry, path) {
				next = append(next, path)
			}
		}
	}
	return next
}

func isDir(entry fs.DirEntry, path string) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func resolveRoot(root string) (string, error) {
	if root == "" {
		return os.Getwd()
	}
	return filepath.Abs(root)
}

// validName rejects names that would resolve outside the search root.
func validName(filename string) bool {
	if filename == "" {
		return false
	}
	return filepath.IsLocal(filename)
}
