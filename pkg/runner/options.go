// Package runner checks command files concurrently against a pack.
package runner

import (
	"github.com/yaklabco/cmdassist/pkg/linter"
	"github.com/yaklabco/cmdassist/pkg/pack"
)

// Options controls a multi-file check.
type Options struct {
	// Paths are files or directories to check. Defaults to ".".
	Paths []string

	// WorkingDir resolves relative Paths. Defaults to the process directory.
	WorkingDir string

	// Extensions selects files inside directories, lowercase with the
	// leading dot. Files named directly in Paths are always checked.
	Extensions []string

	// ExcludeGlobs skips matching files and directories.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs is the number of workers; 0 or less means runtime.NumCPU().
	Jobs int

	// Pack is the grammar to check against.
	Pack *pack.Pack

	// Lint selects the reported diagnostics.
	Lint linter.Options

	// Fix applies the hints of diagnostics to the files.
	Fix bool

	// DryRun computes fixes and their diff without writing.
	DryRun bool
}

// DefaultExtensions returns the extensions of command files.
func DefaultExtensions() []string {
	return []string{".mcfunction"}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
