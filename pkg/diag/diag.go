// Package diag defines the diagnostics produced while parsing and linting a
// command.
package diag

import (
	"fmt"
	"strings"
)

// Level orders diagnostics from most structural to least. A lower level
// means the input is further from being a valid command.
type Level uint8

// Diagnostic levels, in ascending order.
const (
	// Incomplete means input ended where more was required.
	Incomplete Level = iota

	// TypeError means a token of the wrong kind was found.
	TypeError

	// Excess means tokens remained after a complete command.
	Excess

	// Content means a token had the right kind but an invalid value.
	Content

	// IDError means an identifier was not found in its table.
	IDError

	// Logic means the command is well formed but inconsistent.
	Logic

	// Warning is advisory.
	Warning
)

var levelNames = [...]string{
	Incomplete: "incomplete",
	TypeError:  "type-error",
	Excess:     "excess",
	Content:    "content",
	IDError:    "id-error",
	Logic:      "logic",
	Warning:    "warning",
}

// String returns the level name used in config files and reports.
func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return fmt.Sprintf("level(%d)", l)
}

// IsError reports whether the level makes the command invalid.
func (l Level) IsError() bool {
	return l < Warning
}

// ParseLevel converts a level name into a Level.
func ParseLevel(s string) (Level, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for i, name := range levelNames {
		if name == normalized {
			return Level(i), nil
		}
	}
	return Warning, fmt.Errorf("unknown diagnostic level %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// Diagnostic is one problem found in the input. Start and End are byte
// offsets into the input text.
type Diagnostic struct {
	Level   Level  `json:"level"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
	Message string `json:"message"`

	// Rule names the lint rule that produced the diagnostic; empty for
	// diagnostics produced by the parser.
	Rule string `json:"rule,omitempty"`

	// Hint is an optional correction, such as a similar identifier.
	Hint string `json:"hint,omitempty"`
}

// New returns a diagnostic over [start, end).
func New(level Level, start, end int, message string) *Diagnostic {
	return &Diagnostic{Level: level, Start: start, End: end, Message: message}
}

// Newf is New with a formatted message.
func Newf(level Level, start, end int, format string, args ...any) *Diagnostic {
	return New(level, start, end, fmt.Sprintf(format, args...))
}

// Equal reports whether both diagnostics cover the same range with the same
// message. Level and rule are not compared.
func (d *Diagnostic) Equal(other *Diagnostic) bool {
	if d == nil || other == nil {
		return d == other
	}
	return d.Start == other.Start && d.End == other.End && d.Message == other.Message
}

// WithHint sets Hint and returns d.
func (d *Diagnostic) WithHint(hint string) *Diagnostic {
	d.Hint = hint
	return d
}

// String formats the diagnostic for logs and tests.
func (d *Diagnostic) String() string {
	return fmt.Sprintf("%d-%d %s: %s", d.Start, d.End, d.Level, d.Message)
}

// Dedup returns diags with later duplicates removed, preserving order.
func Dedup(diags []*Diagnostic) []*Diagnostic {
	out := make([]*Diagnostic, 0, len(diags))
	for _, d := range diags {
		duplicate := false
		for _, seen := range out {
			if seen.Equal(d) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			out = append(out, d)
		}
	}
	return out
}

// Filter keeps diagnostics whose level is at most maxLevel.
func Filter(diags []*Diagnostic, maxLevel Level) []*Diagnostic {
	out := diags[:0:0]
	for _, d := range diags {
		if d.Level <= maxLevel {
			out = append(out, d)
		}
	}
	return out
}

// HasErrors reports whether any diagnostic is an error.
func HasErrors(diags []*Diagnostic) bool {
	for _, d := range diags {
		if d.Level.IsError() {
			return true
		}
	}
	return false
}
