package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/cmdassist/pkg/diag"
	"github.com/yaklabco/cmdassist/pkg/runner"
)

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "3 issues (2 id-error, 1 logic) in 2 files, 1 fixable".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.DiagnosticsTotal == 0 {
		msg := s.Success.Render("No issues found") +
			s.Dim.Render(fmt.Sprintf(" (%d %s in %d %s)",
				stats.Commands, plural(stats.Commands, "command", "commands"),
				stats.FilesProcessed, plural(stats.FilesProcessed, "file", "files")))
		if stats.DiagnosticsFixed > 0 {
			msg += ", " + s.fixed(stats)
		}
		return msg + "\n"
	}

	var levels []string
	for level := diag.Incomplete; level <= diag.Warning; level++ {
		if n := stats.DiagnosticsByLevel[level]; n > 0 {
			levels = append(levels, s.LevelStyle(level).Render(fmt.Sprintf("%d %s", n, level)))
		}
	}

	parts := []string{
		fmt.Sprintf("%d %s (%s)", stats.DiagnosticsTotal,
			plural(stats.DiagnosticsTotal, "issue", "issues"), strings.Join(levels, ", ")),
		fmt.Sprintf("in %d %s", stats.FilesWithIssues, plural(stats.FilesWithIssues, "file", "files")),
	}
	if stats.DiagnosticsFixable > 0 {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d fixable", stats.DiagnosticsFixable)))
	}
	if stats.DiagnosticsFixed > 0 {
		parts = append(parts, s.fixed(stats))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d unreadable", stats.FilesErrored)))
	}

	return strings.Join(parts, ", ") + "\n"
}

func (s *Styles) fixed(stats runner.Stats) string {
	return s.Success.Render(fmt.Sprintf("%d fixed in %d %s",
		stats.DiagnosticsFixed, stats.FilesModified, plural(stats.FilesModified, "file", "files")))
}
