package runner

import (
	"github.com/yaklabco/cmdassist/pkg/diag"
	"github.com/yaklabco/cmdassist/pkg/fix"
)

// LineResult holds the diagnostics of one command line. Diagnostic offsets
// are relative to the line.
type LineResult struct {
	// Number is the 1-based line number.
	Number int

	// Offset is the byte offset of the line in the file.
	Offset int

	Text        string
	Diagnostics []*diag.Diagnostic
}

// FileOutcome is the result of checking one file.
type FileOutcome struct {
	Path string

	// Lines lists the command lines that have diagnostics.
	Lines []LineResult

	// Commands is the number of command lines checked.
	Commands int

	// Diff holds the fixes applied or proposed; nil when there were none.
	Diff *fix.Diff

	// Fixed is the number of edits applied.
	Fixed int

	// Written is true when the file was rewritten.
	Written bool

	// Error is set if the file could not be processed.
	Error error
}

// Diagnostics returns the number of diagnostics in the file.
func (o *FileOutcome) Diagnostics() int {
	n := 0
	for _, l := range o.Lines {
		n += len(l.Diagnostics)
	}
	return n
}

// Stats captures aggregate information about a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	FilesErrored    int
	FilesWithIssues int
	FilesModified   int

	Commands int

	DiagnosticsTotal   int
	DiagnosticsFixable int
	DiagnosticsFixed   int
	DiagnosticsByLevel map[diag.Level]int
}

// Errors returns the number of diagnostics that make a command invalid.
func (s Stats) Errors() int {
	n := 0
	for level, count := range s.DiagnosticsByLevel {
		if level.IsError() {
			n += count
		}
	}
	return n
}

// Result is the overall runner result.
type Result struct {
	// Files are ordered by path.
	Files []FileOutcome
	Stats Stats
}

// HasIssues reports whether any diagnostics were found.
func (r *Result) HasIssues() bool {
	return r != nil && r.Stats.DiagnosticsTotal > 0
}

// HasFailures reports whether any file failed or any command is invalid.
func (r *Result) HasFailures() bool {
	return r != nil && (r.Stats.FilesErrored > 0 || r.Stats.Errors() > 0)
}

// NewResult aggregates outcomes that were not produced by Run, such as
// checks of standard input.
func NewResult(outcomes ...FileOutcome) *Result {
	r := newResult(len(outcomes))
	r.Stats.FilesDiscovered = len(outcomes)
	for _, o := range outcomes {
		r.accumulate(o)
	}
	return r
}

func newResult(capacity int) *Result {
	return &Result{
		Files: make([]FileOutcome, 0, capacity),
		Stats: Stats{DiagnosticsByLevel: make(map[diag.Level]int)},
	}
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesProcessed++
	r.Stats.Commands += outcome.Commands
	r.Stats.DiagnosticsFixed += outcome.Fixed
	if outcome.Written {
		r.Stats.FilesModified++
	}

	n := outcome.Diagnostics()
	if n > 0 {
		r.Stats.FilesWithIssues++
	}
	r.Stats.DiagnosticsTotal += n
	for _, l := range outcome.Lines {
		for _, d := range l.Diagnostics {
			r.Stats.DiagnosticsByLevel[d.Level]++
			if d.Hint != "" {
				r.Stats.DiagnosticsFixable++
			}
		}
	}
}
