package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/cmdassist/pkg/diag"
	"github.com/yaklabco/cmdassist/pkg/runner"
)

// jsonVersion is the version of the JSON output schema.
const jsonVersion = "1"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path        string           `json:"path"`
	Commands    int              `json:"commands"`
	Diagnostics []JSONDiagnostic `json:"diagnostics"`
	Fixed       int              `json:"fixed,omitempty"`
	Modified    bool             `json:"modified,omitempty"`
	Error       string           `json:"error,omitempty"`
}

// JSONDiagnostic represents a single diagnostic. Columns are 1-based byte
// columns; EndColumn is exclusive.
type JSONDiagnostic struct {
	Line        int        `json:"line"`
	StartColumn int        `json:"startColumn"`
	EndColumn   int        `json:"endColumn"`
	Level       diag.Level `json:"level"`
	Message     string     `json:"message"`
	Rule        string     `json:"rule,omitempty"`
	Hint        string     `json:"hint,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesChecked    int            `json:"filesChecked"`
	FilesWithIssues int            `json:"filesWithIssues"`
	FilesModified   int            `json:"filesModified"`
	FilesErrored    int            `json:"filesErrored"`
	Commands        int            `json:"commands"`
	TotalIssues     int            `json:"totalIssues"`
	Fixable         int            `json:"fixable"`
	ByLevel         map[string]int `json:"byLevel"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		result = &runner.Result{}
	}

	output := JSONOutput{
		Version: jsonVersion,
		Files:   make([]JSONFileResult, 0, len(result.Files)),
		Summary: JSONSummary{
			FilesChecked:    result.Stats.FilesProcessed,
			FilesWithIssues: result.Stats.FilesWithIssues,
			FilesModified:   result.Stats.FilesModified,
			FilesErrored:    result.Stats.FilesErrored,
			Commands:        result.Stats.Commands,
			TotalIssues:     result.Stats.DiagnosticsTotal,
			Fixable:         result.Stats.DiagnosticsFixable,
			ByLevel:         make(map[string]int, len(result.Stats.DiagnosticsByLevel)),
		},
	}
	for level, n := range result.Stats.DiagnosticsByLevel {
		output.Summary.ByLevel[level.String()] = n
	}

	total := 0
	for _, file := range result.Files {
		fr := JSONFileResult{
			Path:        runner.DisplayPath(r.opts.WorkingDir, file.Path),
			Commands:    file.Commands,
			Diagnostics: make([]JSONDiagnostic, 0, file.Diagnostics()),
			Fixed:       file.Fixed,
			Modified:    file.Written,
		}
		if file.Error != nil {
			fr.Error = file.Error.Error()
		}
		for _, line := range file.Lines {
			for _, d := range line.Diagnostics {
				fr.Diagnostics = append(fr.Diagnostics, JSONDiagnostic{
					Line:        line.Number,
					StartColumn: d.Start + 1,
					EndColumn:   d.End + 1,
					Level:       d.Level,
					Message:     d.Message,
					Rule:        d.Rule,
					Hint:        d.Hint,
				})
				total++
			}
		}
		output.Files = append(output.Files, fr)
	}

	encoder := json.NewEncoder(r.bw)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode json: %w", err)
	}
	return total, nil
}
