package runner

import (
	"strings"

	"github.com/yaklabco/cmdassist/pkg/fix"
	"github.com/yaklabco/cmdassist/pkg/linter"
	"github.com/yaklabco/cmdassist/pkg/pack"
	"github.com/yaklabco/cmdassist/pkg/parser"
)

// CommentPrefix starts a line that is not a command.
const CommentPrefix = "#"

// CheckSource checks every command line of content. Blank lines and lines
// starting with CommentPrefix are skipped. It returns the lines that have
// diagnostics and the number of command lines.
func CheckSource(p *pack.Pack, content string, opts linter.Options) ([]LineResult, int) {
	var lines []LineResult
	commands := 0
	offset := 0
	for i, raw := range strings.SplitAfter(content, "\n") {
		start := offset
		offset += len(raw)

		text := strings.TrimRight(raw, "\r\n")
		trimmed := strings.TrimSpace(text)
		if trimmed == "" || strings.HasPrefix(trimmed, CommentPrefix) {
			continue
		}
		commands++

		diags := linter.Collect(parser.ParseString(p.Graph, text), opts)
		if len(diags) == 0 {
			continue
		}
		lines = append(lines, LineResult{
			Number:      i + 1,
			Offset:      start,
			Text:        text,
			Diagnostics: diags,
		})
	}
	return lines, commands
}

// CheckContent checks content that does not come from a file on disk.
// name is used as the outcome path. Fixes are never applied.
func CheckContent(name, content string, opts Options) FileOutcome {
	outcome := FileOutcome{Path: name}
	if opts.Pack == nil {
		outcome.Error = errNoPack
		return outcome
	}
	outcome.Lines, outcome.Commands = CheckSource(opts.Pack, content, opts.Lint)
	return outcome
}

// FixEdits returns the edits that replace every hinted diagnostic with its
// hint, in file offsets.
func FixEdits(lines []LineResult) []fix.TextEdit {
	var edits []fix.TextEdit
	for _, l := range lines {
		for _, d := range l.Diagnostics {
			if d.Hint == "" {
				continue
			}
			edits = append(edits, fix.TextEdit{
				Start:   l.Offset + d.Start,
				End:     l.Offset + d.End,
				NewText: d.Hint,
			})
		}
	}
	return edits
}

// FixSource applies the non-conflicting fixes of lines to content. It
// returns the new content and the number of edits applied.
func FixSource(content string, lines []LineResult) (string, int, error) {
	accepted, _, err := fix.PrepareEditsFiltered(FixEdits(lines), len(content))
	if err != nil {
		return content, 0, err
	}
	return fix.ApplyEdits(content, accepted), len(accepted), nil
}
