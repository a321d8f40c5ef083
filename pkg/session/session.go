// Package session keeps the text, cursor and parse tree of one edited
// command and derives every view from them on demand.
//
// A Session is not safe for concurrent use. The pack it was created from is
// read-only and may be shared by any number of sessions.
package session

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/cmdassist/internal/logging"
	"github.com/yaklabco/cmdassist/pkg/ast"
	"github.com/yaklabco/cmdassist/pkg/diag"
	"github.com/yaklabco/cmdassist/pkg/fix"
	"github.com/yaklabco/cmdassist/pkg/highlight"
	"github.com/yaklabco/cmdassist/pkg/lexer"
	"github.com/yaklabco/cmdassist/pkg/linter"
	"github.com/yaklabco/cmdassist/pkg/pack"
	"github.com/yaklabco/cmdassist/pkg/parser"
	"github.com/yaklabco/cmdassist/pkg/structure"
	"github.com/yaklabco/cmdassist/pkg/suggest"
)

// Option configures a Session.
type Option func(*Session)

// WithLinterOptions sets the options used by Diagnostics.
func WithLinterOptions(opts linter.Options) Option {
	return func(s *Session) {
		s.lint = opts
	}
}

// WithLogger sets the logger receiving parse timings.
func WithLogger(logger *log.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// Session is one edited command.
type Session struct {
	pack   *pack.Pack
	lint   linter.Options
	logger *log.Logger

	text   string
	cursor int
	input  *lexer.Input
	tree   *ast.Node

	// Views derived from tree, computed on first use.
	diagnostics []*diag.Diagnostic
	diagsDone   bool
	highlight   *highlight.Result
	structure   *string

	// Derived from tree and cursor.
	suggestions []suggest.Suggestion
}

// New returns a session over the empty text.
func New(p *pack.Pack, opts ...Option) *Session {
	s := &Session{
		pack: p,
		lint: linter.DefaultOptions(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.Default()
	}
	s.parse("")
	return s
}

// Pack returns the pack the session parses against.
func (s *Session) Pack() *pack.Pack {
	return s.pack
}

// OnTextChanged replaces the text and moves the cursor. The text is parsed
// again only when it differs from the current one.
func (s *Session) OnTextChanged(text string, cursor int) {
	if text != s.text {
		s.parse(text)
	}
	s.OnCursorChanged(cursor)
}

// OnCursorChanged moves the cursor, clamped to the text. The tree is kept;
// suggestions are recomputed on next access.
func (s *Session) OnCursorChanged(cursor int) {
	cursor = max(0, min(cursor, len(s.text)))
	if cursor != s.cursor {
		s.suggestions = nil
	}
	s.cursor = cursor
}

func (s *Session) parse(text string) {
	start := time.Now()
	s.text = text
	s.input = lexer.Tokenize(text)
	s.tree = parser.Parse(s.pack.Graph, s.input)

	s.diagnostics, s.diagsDone = nil, false
	s.highlight = nil
	s.structure = nil
	s.suggestions = nil

	s.logger.Debug("parsed",
		logging.FieldBytes, len(text),
		logging.FieldTokens, len(s.input.Tokens),
		logging.FieldDuration, time.Since(start))
}

// Text returns the current text.
func (s *Session) Text() string {
	return s.text
}

// Cursor returns the current cursor offset in bytes.
func (s *Session) Cursor() int {
	return s.cursor
}

// Input returns the tokens of the current text.
func (s *Session) Input() *lexer.Input {
	return s.input
}

// Tree returns the parse tree of the current text.
func (s *Session) Tree() *ast.Node {
	return s.tree
}

// Diagnostics returns the diagnostics of the current text.
func (s *Session) Diagnostics() []*diag.Diagnostic {
	if !s.diagsDone {
		s.diagnostics = linter.Collect(s.tree, s.lint)
		s.diagsDone = true
	}
	return s.diagnostics
}

// Highlight returns the category of every byte of the current text.
func (s *Session) Highlight() *highlight.Result {
	if s.highlight == nil {
		s.highlight = highlight.Highlight(s.tree)
	}
	return s.highlight
}

// Structure returns the signature of the commands in the current text.
func (s *Session) Structure() string {
	if s.structure == nil {
		st := structure.Structure(s.pack.Graph, s.tree)
		s.structure = &st
	}
	return *s.structure
}

// ParamHint returns the description of the parameter at the cursor.
func (s *Session) ParamHint() string {
	return structure.ParamHint(s.tree, s.cursor)
}

// Suggestions returns the completion candidates at the cursor.
func (s *Session) Suggestions() []suggest.Suggestion {
	if s.suggestions == nil {
		start := time.Now()
		s.suggestions = suggest.Collect(s.tree, s.cursor)
		s.logger.Debug("collected suggestions",
			logging.FieldCursor, s.cursor,
			logging.FieldSuggestions, len(s.suggestions),
			logging.FieldDuration, time.Since(start))
	}
	return s.suggestions
}

// AcceptSuggestion applies suggestion i and returns the new text and cursor,
// which also become the session state. ok is false when i is out of range.
//
// A space is not inserted after another space or at the start of the text.
// When the replaced range reaches the end of the text and the command then
// stops where a space is expected, a space is appended for candidates that
// ask for one.
func (s *Session) AcceptSuggestion(i int) (text string, cursor int, ok bool) {
	sgs := s.Suggestions()
	if i < 0 || i >= len(sgs) {
		return s.text, s.cursor, false
	}
	sg := sgs[i]

	if sg.Text() == " " && (sg.Start == 0 || s.text[sg.Start-1] == ' ') {
		s.OnCursorChanged(sg.Start)
		return s.text, s.cursor, true
	}

	edits := fix.NewEditBuilder().ReplaceRange(sg.Start, sg.End, sg.Text())
	text, err := edits.Apply(s.text)
	if err != nil {
		// Suggestions are derived from the current text, so their ranges
		// are always valid.
		panic(err)
	}
	cursor = sg.Start + len(sg.Text())
	atEnd := sg.End == len(s.text)

	s.OnTextChanged(text, cursor)
	if atEnd && sg.AddSpace && s.tree.IsAllSpaceError() {
		s.OnTextChanged(text+" ", cursor+1)
	}
	return s.text, s.cursor, true
}
