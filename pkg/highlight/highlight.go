// Package highlight assigns a syntax category to every byte of a parsed
// input.
package highlight

import (
	"fmt"

	"github.com/yaklabco/cmdassist/pkg/ast"
	"github.com/yaklabco/cmdassist/pkg/grammar"
	"github.com/yaklabco/cmdassist/pkg/lexer"
)

// Category is the syntax class of one byte.
type Category uint8

// Categories.
const (
	Unknown Category = iota
	Boolean
	Float
	Integer
	Symbol
	ID
	TargetSelector
	Command
	Bracket1
	Bracket2
	Bracket3
	String
	Null
	Range
	Literal
	Space

	categoryCount
)

var categoryNames = [categoryCount]string{
	Unknown:        "unknown",
	Boolean:        "boolean",
	Float:          "float",
	Integer:        "integer",
	Symbol:         "symbol",
	ID:             "id",
	TargetSelector: "target-selector",
	Command:        "command",
	Bracket1:       "bracket1",
	Bracket2:       "bracket2",
	Bracket3:       "bracket3",
	String:         "string",
	Null:           "null",
	Range:          "range",
	Literal:        "literal",
	Space:          "space",
}

// String returns the category name.
func (c Category) String() string {
	if c < categoryCount {
		return categoryNames[c]
	}
	return fmt.Sprintf("category(%d)", c)
}

// IsBracket reports whether c is one of the bracket levels.
func (c Category) IsBracket() bool {
	return c >= Bracket1 && c <= Bracket3
}

// Categories returns every category in declaration order.
func Categories() []Category {
	out := make([]Category, 0, categoryCount)
	for c := Unknown; c < categoryCount; c++ {
		out = append(out, c)
	}
	return out
}

// Result holds one category per input byte.
type Result struct {
	Categories []Category

	// Conflicts counts bytes that were categorized more than once. Brackets
	// are repainted with their nesting level and do not count. A non-zero
	// value points at overlapping nodes in the grammar.
	Conflicts int
}

// At returns the category of the byte at offset, or Unknown out of range.
func (r *Result) At(offset int) Category {
	if offset < 0 || offset >= len(r.Categories) {
		return Unknown
	}
	return r.Categories[offset]
}

// Run is a maximal range [Start, End) of bytes sharing a category.
type Run struct {
	Start    int
	End      int
	Category Category
}

// Runs groups consecutive bytes of the same category.
func (r *Result) Runs() []Run {
	var runs []Run
	for i, c := range r.Categories {
		if n := len(runs); n > 0 && runs[n-1].Category == c && runs[n-1].End == i {
			runs[n-1].End = i + 1
			continue
		}
		runs = append(runs, Run{Start: i, End: i + 1, Category: c})
	}
	return runs
}

// Highlight categorizes the input of root. Only the live tree is painted;
// whitespace is painted Space and bytes no node matched stay Unknown.
func Highlight(root *ast.Node) *Result {
	in := root.Span.Input
	if in == nil {
		return &Result{}
	}
	r := &Result{Categories: make([]Category, len(in.Content))}
	r.node(root)

	for _, tok := range in.Tokens {
		if tok.Kind == lexer.TokSpace || tok.Kind == lexer.TokLineBreak {
			r.fill(tok.Offset, tok.End(), Space, false)
		}
	}
	r.brackets(in)
	return r
}

// paint sets the category of [start, end). Bytes already categorized are
// counted as conflicts and keep their first category.
func (r *Result) paint(start, end int, c Category) {
	for i := start; i < end; i++ {
		if r.Categories[i] != Unknown {
			r.Conflicts++
			continue
		}
		r.Categories[i] = c
	}
}

// fill sets Unknown bytes of [start, end) to c, silently skipping the rest
// unless overwrite is set.
func (r *Result) fill(start, end int, c Category, overwrite bool) {
	for i := start; i < end; i++ {
		if overwrite || r.Categories[i] == Unknown {
			r.Categories[i] = c
		}
	}
}

func (r *Result) span(n *ast.Node, c Category) {
	r.paint(n.Span.StartOffset, n.Span.EndOffset, c)
}

func (r *Result) node(n *ast.Node) {
	if n.Discarded || n.Separator || n.Grammar == nil {
		return
	}

	switch n.Grammar.Kind {
	case grammar.KindCommandName:
		r.span(n, Command)
	case grammar.KindBoolean, grammar.KindJSONBoolean:
		r.span(n, Boolean)
	case grammar.KindInteger, grammar.KindJSONInteger:
		r.span(n, Integer)
	case grammar.KindFloat, grammar.KindJSONFloat, grammar.KindRelativeFloat:
		r.span(n, Float)
	case grammar.KindRange:
		r.span(n, Range)
	case grammar.KindString, grammar.KindJSONString, grammar.KindAny:
		r.span(n, String)
	case grammar.KindText:
		r.span(n, Literal)
	case grammar.KindNormalID, grammar.KindNamespaceID:
		r.span(n, ID)
	case grammar.KindJSONNull:
		r.span(n, Null)
	case grammar.KindSingleSymbol:
		r.span(n, Symbol)
	case grammar.KindIntegerWithUnit:
		for _, tok := range n.Span.Tokens() {
			c := ID
			if tok.Kind == lexer.TokNumber {
				c = Integer
			}
			r.paint(tok.Offset, tok.End(), c)
		}
	case grammar.KindTargetSelector:
		r.selector(n)
	default:
		for _, c := range n.Children {
			r.node(c)
		}
	}
}

// selector paints the "@x" head and player names as one target; argument
// lists are painted like any other node.
func (r *Result) selector(n *ast.Node) {
	for _, c := range n.Children {
		if c.Discarded {
			continue
		}
		if c.ID() == grammar.IDSelectorArgs {
			r.node(c)
			continue
		}
		r.span(c, TargetSelector)
	}
}

var openers = map[byte]byte{']': '[', '}': '{'}

// brackets repaints bracket symbols with their nesting level. Only brackets
// the grammar matched as symbols are counted.
func (r *Result) brackets(in *lexer.Input) {
	depth := 0
	for _, tok := range in.Tokens {
		if tok.Kind != lexer.TokSymbol || r.Categories[tok.Offset] != Symbol {
			continue
		}
		ch := tok.Text[0]
		switch {
		case ch == '[' || ch == '{':
			r.fill(tok.Offset, tok.End(), bracketLevel(depth), true)
			depth++
		case openers[ch] != 0:
			if depth > 0 {
				depth--
			}
			r.fill(tok.Offset, tok.End(), bracketLevel(depth), true)
		}
	}
}

func bracketLevel(depth int) Category {
	return Bracket1 + Category(depth%3)
}
