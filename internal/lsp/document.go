package lsp

import (
	"errors"
	"fmt"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/yaklabco/cmdassist/pkg/fix"
	"github.com/yaklabco/cmdassist/pkg/runner"
	"github.com/yaklabco/cmdassist/pkg/session"
)

var errUnknownChange = errors.New("unsupported content change")

// document is an open text document. Each line is one command; the session
// follows the line last asked about.
type document struct {
	uri     protocol.DocumentUri
	version protocol.Integer
	index   *lineIndex
	session *session.Session

	// line is the line the session holds, -1 when none.
	line int
}

func newDocument(uri protocol.DocumentUri, version protocol.Integer, text string, s *session.Session) *document {
	return &document{
		uri:     uri,
		version: version,
		index:   newLineIndex(text),
		session: s,
		line:    -1,
	}
}

func (d *document) text() string {
	return d.index.text
}

// apply applies content changes in order. Ranged changes are edits on the
// text produced by the previous change.
func (d *document) apply(version protocol.Integer, changes []any) error {
	text := d.text()
	for _, change := range changes {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			text = c.Text
		case protocol.TextDocumentContentChangeEvent:
			if c.Range == nil {
				text = c.Text
				continue
			}
			index := newLineIndex(text)
			edited, err := fix.NewEditBuilder().
				ReplaceRange(index.offset(c.Range.Start), index.offset(c.Range.End), c.Text).
				Apply(text)
			if err != nil {
				return fmt.Errorf("applying change: %w", err)
			}
			text = edited
		default:
			return fmt.Errorf("%w: %T", errUnknownChange, change)
		}
	}
	d.version = version
	d.index = newLineIndex(text)
	d.line = -1
	return nil
}

// focus points the session at the line holding pos with the cursor on pos
// and returns the byte offset of that line.
func (d *document) focus(pos protocol.Position) int {
	n := min(int(pos.Line), d.index.lineCount()-1)
	start := d.index.lineStart(n)
	line := d.index.line(n)
	cursor := min(d.index.offset(pos)-start, len(line))

	d.session.OnTextChanged(line, cursor)
	d.line = n
	return start
}

// diagnostics checks every command line of the document.
func (d *document) diagnostics(s *Server) []protocol.Diagnostic {
	lines, _ := runner.CheckSource(s.pack, d.text(), s.lint)

	out := make([]protocol.Diagnostic, 0)
	for _, l := range lines {
		for _, dg := range l.Diagnostics {
			out = append(out, toProtocolDiagnostic(d.index, l.Offset, dg))
		}
	}
	return out
}
