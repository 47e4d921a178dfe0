// Package magetasks provides the build, lint, and test tasks behind the
// packrun Magefile.
package magetasks
