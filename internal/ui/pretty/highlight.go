package pretty

import (
	"strings"

	"github.com/yaklabco/cmdassist/pkg/highlight"
)

// FormatHighlight renders text with every run styled by its category.
func (s *Styles) FormatHighlight(text string, result *highlight.Result) string {
	var builder strings.Builder
	for _, run := range result.Runs() {
		if run.End > len(text) {
			break
		}
		builder.WriteString(s.Categories[run.Category].Render(text[run.Start:run.End]))
	}
	return builder.String()
}

// FormatLegend lists the categories used in result, each in its own style.
func (s *Styles) FormatLegend(result *highlight.Result) string {
	used := make(map[highlight.Category]bool)
	for _, c := range result.Categories {
		used[c] = true
	}
	var parts []string
	for _, c := range highlight.Categories() {
		if used[c] && c != highlight.Space {
			parts = append(parts, s.Categories[c].Render(c.String()))
		}
	}
	return strings.Join(parts, " ")
}
