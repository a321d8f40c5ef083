package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/cmdassist/pkg/diag"
)

// contextIndent aligns source context under the diagnostic line.
const contextIndent = "        "

// FormatDiagnostic formats a single diagnostic for terminal output.
// location is printed first (for example "path:line"); the column is
// derived from the diagnostic start. When showContext is set the source
// line is printed with the diagnostic range underlined.
func (s *Styles) FormatDiagnostic(location string, d *diag.Diagnostic, showContext bool, sourceLine string) string {
	var builder strings.Builder

	loc := strconv.Itoa(d.Start + 1)
	if location != "" {
		loc = s.FilePath.Render(location) + ":" + loc
	}

	builder.WriteString("  " + loc + "  " + s.LevelStyle(d.Level).Render(d.Level.String()) +
		"  " + s.Message.Render(d.Message))
	if d.Rule != "" {
		builder.WriteString("  " + s.RuleID.Render("("+d.Rule+")"))
	}
	builder.WriteString("\n")

	if showContext && sourceLine != "" {
		builder.WriteString(s.FormatSourceContext(sourceLine, d.Start, d.End))
	}

	if d.Hint != "" {
		builder.WriteString("    " + s.Dim.Render("Did you mean:") + " " +
			s.Suggestion.Render(d.Hint) + "\n")
	}

	return builder.String()
}

// FormatSourceContext formats the source line with [start, end) underlined.
// An empty range gets a single caret.
func (s *Styles) FormatSourceContext(line string, start, end int) string {
	start = max(0, min(start, len(line)))
	end = max(start, min(end, len(line)))
	width := max(1, end-start)

	return contextIndent + s.SourceLine.Render(line) + "\n" +
		contextIndent + strings.Repeat(" ", start) + s.Caret.Render(strings.Repeat("^", width)) + "\n"
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	if issueCount > 0 {
		header += s.Dim.Render(fmt.Sprintf(" (%d %s)", issueCount, plural(issueCount, "issue", "issues")))
	}
	return header
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
