package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/cmdassist/pkg/suggest"
)

// SpaceLabel stands in for a space candidate, which would print as nothing.
const SpaceLabel = "␣"

// SuggestionLabel returns the printable text of a candidate.
func SuggestionLabel(sg suggest.Suggestion) string {
	if sg.Text() == " " {
		return SpaceLabel
	}
	return sg.Text()
}

// FormatSuggestions lists candidates with their index, replaced range and
// description, one per line. limit <= 0 lists all of them.
func (s *Styles) FormatSuggestions(sgs []suggest.Suggestion, limit int) string {
	if limit <= 0 || limit > len(sgs) {
		limit = len(sgs)
	}
	width := 0
	for _, sg := range sgs[:limit] {
		width = max(width, len([]rune(SuggestionLabel(sg))))
	}

	var builder strings.Builder
	for i, sg := range sgs[:limit] {
		label := SuggestionLabel(sg)
		pad := strings.Repeat(" ", width-len([]rune(label)))
		fmt.Fprintf(&builder, "%3d  %s%s  %s",
			i,
			s.Suggestion.Render(label), pad,
			s.Dim.Render(fmt.Sprintf("[%d,%d)", sg.Start, sg.End)))
		if desc := sg.Description(); desc != "" {
			builder.WriteString("  " + s.Message.Render(desc))
		}
		builder.WriteString("\n")
	}
	if rest := len(sgs) - limit; rest > 0 {
		builder.WriteString(s.Dim.Render(fmt.Sprintf("     ... %d more", rest)))
		builder.WriteString("\n")
	}
	return builder.String()
}
