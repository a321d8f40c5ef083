package analysis

import (
	"time"

	"github.com/yaklabco/cmdassist/pkg/diag"
)

// Report contains pre-computed views of a check run.
// Computed once by Analyze, used by all renderers.
type Report struct {
	// Diagnostics is the flat list for detailed output.
	Diagnostics []DiagnosticEntry `json:"diagnostics,omitempty"`

	// ByFile groups diagnostics by file path.
	ByFile []FileAnalysis `json:"byFile,omitempty"`

	// ByRule groups diagnostics by rule. Parser diagnostics, which carry no
	// rule, are grouped under their level name.
	ByRule []RuleAnalysis `json:"byRule,omitempty"`

	Totals Totals `json:"summary"`

	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

// DiagnosticEntry represents a single diagnostic in the report. Columns are
// 1-based byte columns; EndColumn is exclusive.
type DiagnosticEntry struct {
	FilePath    string     `json:"filePath"`
	Rule        string     `json:"rule"`
	Level       diag.Level `json:"level"`
	Message     string     `json:"message"`
	Line        int        `json:"line"`
	StartColumn int        `json:"startColumn"`
	EndColumn   int        `json:"endColumn"`
	Hint        string     `json:"hint,omitempty"`
}

// Totals contains aggregate statistics for the report.
type Totals struct {
	Files           int `json:"filesChecked"`
	FilesWithIssues int `json:"filesWithIssues"`
	Commands        int `json:"commands"`
	Issues          int `json:"totalIssues"`
	Errors          int `json:"errors"`
	Warnings        int `json:"warnings"`
	Fixable         int `json:"fixable"`
}

// HasIssues returns true if there are any issues.
func (t Totals) HasIssues() bool {
	return t.Issues > 0
}

// HasErrors returns true if any command is invalid.
func (t Totals) HasErrors() bool {
	return t.Errors > 0
}

// FileAnalysis contains aggregated data for a single file.
type FileAnalysis struct {
	Path     string   `json:"path"`
	Commands int      `json:"commands"`
	Issues   int      `json:"issues"`
	Errors   int      `json:"errors"`
	Warnings int      `json:"warnings"`
	Rules    []string `json:"rules,omitempty"`
}

// RuleAnalysis contains aggregated data for a single rule.
type RuleAnalysis struct {
	Rule     string   `json:"rule"`
	Issues   int      `json:"issues"`
	Errors   int      `json:"errors"`
	Warnings int      `json:"warnings"`
	Fixable  bool     `json:"fixable"`
	Files    []string `json:"files,omitempty"`
}
