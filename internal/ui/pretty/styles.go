// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/yaklabco/cmdassist/pkg/diag"
	"github.com/yaklabco/cmdassist/pkg/highlight"
)

// defaultTermWidth is used when the writer is not a terminal.
const defaultTermWidth = 100

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Level styles
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Diagnostic components
	FilePath   lipgloss.Style
	RuleID     lipgloss.Style
	Message    lipgloss.Style
	Suggestion lipgloss.Style
	SourceLine lipgloss.Style
	Caret      lipgloss.Style

	// Diff styles
	DiffHeader  lipgloss.Style
	DiffHunk    lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffContext lipgloss.Style

	// Summary styles
	Success lipgloss.Style
	Failure lipgloss.Style

	// Categories styles highlighted input by category.
	Categories map[highlight.Category]lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

func fg(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// newColorStyles creates styles with ANSI 256 colors.
func newColorStyles() *Styles {
	return &Styles{
		Error:   fg("9").Bold(true),
		Warning: fg("11").Bold(true),
		Info:    fg("12").Bold(true),

		FilePath:   lipgloss.NewStyle().Bold(true),
		RuleID:     fg("8"),
		Message:    lipgloss.NewStyle(),
		Suggestion: fg("10").Italic(true),
		SourceLine: fg("7"),
		Caret:      fg("9"),

		DiffHeader:  lipgloss.NewStyle().Bold(true),
		DiffHunk:    fg("14"),
		DiffAdd:     fg("10"),
		DiffRemove:  fg("9"),
		DiffContext: fg("8"),

		Success: fg("10").Bold(true),
		Failure: fg("9").Bold(true),

		Categories: map[highlight.Category]lipgloss.Style{
			highlight.Unknown:        fg("9").Underline(true),
			highlight.Boolean:        fg("13"),
			highlight.Float:          fg("14"),
			highlight.Integer:        fg("14"),
			highlight.Symbol:         fg("7"),
			highlight.ID:             fg("11"),
			highlight.TargetSelector: fg("12").Bold(true),
			highlight.Command:        fg("13").Bold(true),
			highlight.Bracket1:       fg("11"),
			highlight.Bracket2:       fg("13"),
			highlight.Bracket3:       fg("12"),
			highlight.String:         fg("10"),
			highlight.Null:           fg("8"),
			highlight.Range:          fg("14"),
			highlight.Literal:        fg("12"),
			highlight.Space:          lipgloss.NewStyle(),
		},

		Dim:  fg("8"),
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

// newNoColorStyles creates styles with no color formatting.
func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	categories := make(map[highlight.Category]lipgloss.Style)
	for _, c := range highlight.Categories() {
		categories[c] = plain
	}
	return &Styles{
		Error:       plain,
		Warning:     plain,
		Info:        plain,
		FilePath:    plain,
		RuleID:      plain,
		Message:     plain,
		Suggestion:  plain,
		SourceLine:  plain,
		Caret:       plain,
		DiffHeader:  plain,
		DiffHunk:    plain,
		DiffAdd:     plain,
		DiffRemove:  plain,
		DiffContext: plain,
		Success:     plain,
		Failure:     plain,
		Categories:  categories,
		Dim:         plain,
		Bold:        plain,
	}
}

// LevelStyle returns the style of a diagnostic level. Logic problems render
// as warnings and advisory diagnostics as info.
func (s *Styles) LevelStyle(level diag.Level) lipgloss.Style {
	switch level {
	case diag.Warning:
		return s.Info
	case diag.Logic:
		return s.Warning
	default:
		return s.Error
	}
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}

// TerminalWidth returns the width of the terminal behind writer, or a
// default when it is not a terminal.
func TerminalWidth(writer io.Writer) int {
	if f, ok := writer.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return defaultTermWidth
}
