// Package parser matches a grammar against tokenized input. Parsing is
// total: every input yields a tree, and problems are reported as diagnostics
// attached to its nodes.
package parser

import (
	"fmt"

	"github.com/yaklabco/cmdassist/pkg/ast"
	"github.com/yaklabco/cmdassist/pkg/diag"
	"github.com/yaklabco/cmdassist/pkg/grammar"
	"github.com/yaklabco/cmdassist/pkg/lexer"
)

// Reader is a backtrackable cursor over a token stream. Speculative reads are
// wrapped in Push followed by Pop on success or Restore on failure.
type Reader struct {
	in    *lexer.Input
	index int
	stack []int
}

// NewReader returns a reader positioned at the first token.
func NewReader(in *lexer.Input) *Reader {
	return &Reader{in: in}
}

// Input returns the tokenized input.
func (r *Reader) Input() *lexer.Input {
	return r.in
}

// Index returns the current token index.
func (r *Reader) Index() int {
	return r.index
}

// Ready reports whether tokens remain.
func (r *Reader) Ready() bool {
	return r.index < len(r.in.Tokens)
}

// Peek returns the current token without advancing.
func (r *Reader) Peek() (lexer.Token, bool) {
	if !r.Ready() {
		return lexer.Token{}, false
	}
	return r.in.Tokens[r.index], true
}

// PeekSymbol reports whether the current token is the symbol ch.
func (r *Reader) PeekSymbol(ch byte) bool {
	tok, ok := r.Peek()
	return ok && tok.Kind == lexer.TokSymbol && tok.Text[0] == ch
}

// Read returns the current token and advances past it.
func (r *Reader) Read() (lexer.Token, bool) {
	tok, ok := r.Peek()
	if ok {
		r.index++
	}
	return tok, ok
}

// Next advances by one token, reporting whether there was one.
func (r *Reader) Next() bool {
	if !r.Ready() {
		return false
	}
	r.index++
	return true
}

// SkipSpaces advances past space tokens and returns how many were skipped.
func (r *Reader) SkipSpaces() int {
	n := 0
	for r.Ready() && r.in.Tokens[r.index].Kind == lexer.TokSpace {
		r.index++
		n++
	}
	return n
}

// SkipToLineBreak advances to the next line break token, leaving it unread.
func (r *Reader) SkipToLineBreak() {
	for r.Ready() && r.in.Tokens[r.index].Kind != lexer.TokLineBreak {
		r.index++
	}
}

// AtLineEnd reports whether the input ends here or the next token is a line
// break.
func (r *Reader) AtLineEnd() bool {
	tok, ok := r.Peek()
	return !ok || tok.Kind == lexer.TokLineBreak
}

// Push saves the current index.
func (r *Reader) Push() {
	r.stack = append(r.stack, r.index)
}

// Pop discards the last saved index without moving.
func (r *Reader) Pop() {
	r.stack = r.stack[:len(r.stack)-1]
}

// Restore moves back to the last saved index and discards it.
func (r *Reader) Restore() {
	r.index = r.stack[len(r.stack)-1]
	r.Pop()
}

// Collect pops the last saved index and returns the span from it to the
// current index.
func (r *Reader) Collect() lexer.Span {
	start := r.stack[len(r.stack)-1]
	r.Pop()
	return r.SpanFrom(start)
}

// SpanFrom returns the span from start to the current index.
func (r *Reader) SpanFrom(start int) lexer.Span {
	return lexer.NewSpan(r.in, start, r.index)
}

// Depth returns the number of saved indexes.
func (r *Reader) Depth() int {
	return len(r.stack)
}

// seek moves to index. Alternations use it to settle on the branch that got
// furthest after every branch was restored.
func (r *Reader) seek(index int) {
	r.index = index
}

// Check validates a consumed token. An empty message accepts it.
type Check func(tok lexer.Token) (diag.Level, string)

// missing builds the diagnostic for a token that is absent or of the wrong
// kind at the current index. The span is empty.
func (r *Reader) missing(g *grammar.Node, what string) *ast.Node {
	span := r.SpanFrom(r.index)
	level := diag.TypeError
	msg := "expected " + what
	if r.AtLineEnd() {
		level = diag.Incomplete
		msg = "incomplete command, expected " + what
	}
	return ast.NewError(g, span, diag.New(level, span.StartOffset, span.EndOffset, msg))
}

// ReadSimple skips spaces and consumes one token whose kind is in kinds,
// validating it with check. A token of another kind yields an empty failed
// node; a token failing check yields a failed node spanning it.
func (r *Reader) ReadSimple(g *grammar.Node, what string, check Check, kinds ...lexer.TokenKind) *ast.Node {
	r.SkipSpaces()
	tok, ok := r.Peek()
	if !ok || !kindIn(tok.Kind, kinds) {
		return r.missing(g, what)
	}
	r.Push()
	r.Next()
	node := ast.New(g, r.Collect())
	if check != nil {
		if level, msg := check(tok); msg != "" {
			node.AddError(diag.New(level, node.Span.StartOffset, node.Span.EndOffset, msg))
		}
	}
	return node
}

func kindIn(k lexer.TokenKind, kinds []lexer.TokenKind) bool {
	for _, want := range kinds {
		if k == want {
			return true
		}
	}
	return false
}

// ReadString reads one string token.
func (r *Reader) ReadString(g *grammar.Node, what string, check Check) *ast.Node {
	return r.ReadSimple(g, what, check, lexer.TokString)
}

// ReadStringOrNumber reads one string or number token.
func (r *Reader) ReadStringOrNumber(g *grammar.Node, what string, check Check) *ast.Node {
	return r.ReadSimple(g, what, check, lexer.TokString, lexer.TokNumber)
}

// ReadNumber reads one number token.
func (r *Reader) ReadNumber(g *grammar.Node, what string, check Check) *ast.Node {
	return r.ReadSimple(g, what, check, lexer.TokNumber)
}

// ReadSymbol reads the symbol ch.
func (r *Reader) ReadSymbol(g *grammar.Node, ch byte) *ast.Node {
	r.SkipSpaces()
	if !r.PeekSymbol(ch) {
		return r.missing(g, fmt.Sprintf("%q", ch))
	}
	r.Push()
	r.Next()
	return ast.New(g, r.Collect())
}

// ReadUntilSpace consumes tokens up to the next space or line break. At
// least one token is required.
func (r *Reader) ReadUntilSpace(g *grammar.Node, what string) *ast.Node {
	r.SkipSpaces()
	if r.AtLineEnd() {
		return r.missing(g, what)
	}
	r.Push()
	for {
		tok, ok := r.Peek()
		if !ok || tok.Kind == lexer.TokSpace || tok.Kind == lexer.TokLineBreak {
			break
		}
		r.Next()
	}
	return ast.New(g, r.Collect())
}
