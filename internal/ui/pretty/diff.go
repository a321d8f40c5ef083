package pretty

import (
	"strings"

	"github.com/yaklabco/cmdassist/pkg/fix"
)

// FormatDiff renders a unified diff with added and removed lines colored.
func (s *Styles) FormatDiff(d *fix.Diff) string {
	if !d.HasChanges() {
		return ""
	}
	var builder strings.Builder
	builder.WriteString(s.DiffHeader.Render(strings.TrimSuffix(d.GitHeader(), "\n")) + "\n")
	for _, line := range strings.SplitAfter(d.Unified, "\n") {
		if line == "" {
			continue
		}
		text := strings.TrimSuffix(line, "\n")
		style := s.DiffContext
		switch {
		case strings.HasPrefix(text, "+++"), strings.HasPrefix(text, "---"):
			style = s.DiffHeader
		case strings.HasPrefix(text, "@@"):
			style = s.DiffHunk
		case strings.HasPrefix(text, "+"):
			style = s.DiffAdd
		case strings.HasPrefix(text, "-"):
			style = s.DiffRemove
		}
		builder.WriteString(style.Render(text) + "\n")
	}
	return builder.String()
}
