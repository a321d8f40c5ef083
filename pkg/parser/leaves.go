package parser

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/yaklabco/cmdassist/pkg/ast"
	"github.com/yaklabco/cmdassist/pkg/diag"
	"github.com/yaklabco/cmdassist/pkg/grammar"
	"github.com/yaklabco/cmdassist/pkg/lexer"
	"github.com/yaklabco/cmdassist/pkg/resource"
)

// maxHintDistance is the largest edit distance offered as a correction.
const maxHintDistance = 2

func checkBoolean(tok lexer.Token) (diag.Level, string) {
	if tok.Text == "true" || tok.Text == "false" {
		return 0, ""
	}
	return diag.Content, fmt.Sprintf("%q is not true or false", tok.Text)
}

func checkNull(tok lexer.Token) (diag.Level, string) {
	if tok.Text == "null" {
		return 0, ""
	}
	return diag.Content, fmt.Sprintf("expected null, found %q", tok.Text)
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func checkBounds(g *grammar.Node, v float64, text string) (diag.Level, string) {
	if g.Min != nil && v < *g.Min {
		return diag.Content, fmt.Sprintf("%s is less than the minimum %s", text, formatBound(*g.Min))
	}
	if g.Max != nil && v > *g.Max {
		return diag.Content, fmt.Sprintf("%s is greater than the maximum %s", text, formatBound(*g.Max))
	}
	return 0, ""
}

func checkInteger(g *grammar.Node) Check {
	return func(tok lexer.Token) (diag.Level, string) {
		v, err := strconv.ParseInt(tok.Text, 10, 64)
		if err != nil {
			return diag.Content, fmt.Sprintf("%q is not an integer", tok.Text)
		}
		return checkBounds(g, float64(v), tok.Text)
	}
}

func checkFloat(g *grammar.Node) Check {
	return func(tok lexer.Token) (diag.Level, string) {
		v, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			return diag.Content, fmt.Sprintf("%q is not a number", tok.Text)
		}
		return checkBounds(g, v, tok.Text)
	}
}

func checkString(g *grammar.Node) Check {
	return func(tok lexer.Token) (diag.Level, string) {
		if tok.Text[0] != '"' {
			return 0, ""
		}
		value, closed := Unquote(tok.Text)
		if !closed {
			return diag.Content, "unterminated string"
		}
		if !g.CanContainSpace && strings.Contains(value, " ") {
			return diag.Content, "string cannot contain spaces"
		}
		return 0, ""
	}
}

// Unquote strips the quotes of a quoted token and resolves backslash
// escapes. Unquoted text is returned as is. closed is false for a quoted
// string missing its closing quote.
func Unquote(text string) (value string, closed bool) {
	if text == "" || text[0] != '"' {
		return text, true
	}
	var b strings.Builder
	for i := 1; i < len(text); i++ {
		switch ch := text[i]; ch {
		case '\\':
			if i+1 < len(text) {
				i++
				b.WriteByte(text[i])
			}
		case '"':
			return b.String(), i == len(text)-1
		default:
			b.WriteByte(ch)
		}
	}
	return b.String(), false
}

// Hint returns the candidate most similar to word, or "" when none is close.
// Candidates containing the letters of word in order rank first.
func Hint(word string, candidates []string) string {
	if word == "" {
		return ""
	}
	ranks := fuzzy.RankFindFold(word, candidates)
	if len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target
	}
	best, bestDist := "", maxHintDistance+1
	for _, c := range candidates {
		if d := fuzzy.LevenshteinDistance(word, c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

func (p *parser) commandName(g *grammar.Node) *ast.Node {
	n := p.r.ReadString(g, "command name", nil)
	if n.Failed {
		return n
	}
	name := n.Text()
	if e, ok := g.Table.Find(name); ok {
		n.Data = e
		return n
	}
	d := diag.Newf(diag.IDError, n.Span.StartOffset, n.Span.EndOffset, "unknown command %q", name)
	n.AddError(d.WithHint(Hint(name, g.Table.Names())))
	return n
}

func (p *parser) text(g *grammar.Node) *ast.Node {
	p.r.SkipSpaces()
	if p.r.AtLineEnd() {
		return p.r.missing(g, strconv.Quote(g.Literal))
	}
	tok, _ := p.r.Peek()
	p.r.Push()
	p.r.Next()
	n := ast.New(g, p.r.Collect())
	if tok.Text != g.Literal {
		n.AddError(diag.Newf(diag.IDError, n.Span.StartOffset, n.Span.EndOffset, "expected %q, found %q", g.Literal, tok.Text))
	}
	return n
}

func (p *parser) id(g *grammar.Node) *ast.Node {
	n := p.r.ReadStringOrNumber(g, what(g, "an identifier"), nil)
	if n.Failed {
		return n
	}
	value, closed := Unquote(n.Text())
	if !closed {
		n.AddError(diag.New(diag.Content, n.Span.StartOffset, n.Span.EndOffset, "unterminated string"))
		return n
	}

	var (
		e  resource.Entry
		ok bool
	)
	if g.Kind == grammar.KindNamespaceID {
		e, ok = g.Table.FindNamespaced(value)
	} else {
		e, ok = g.Table.Find(value)
	}
	if ok {
		n.Data = e
		return n
	}
	if g.AllowMissing {
		return n
	}

	lookup := value
	if _, name, hasNS := strings.Cut(value, ":"); hasNS {
		lookup = name
	}
	d := diag.Newf(diag.IDError, n.Span.StartOffset, n.Span.EndOffset, "unknown %s %q", what(g, "identifier"), value)
	n.AddError(d.WithHint(Hint(lookup, g.Table.Names())))
	return n
}

func (p *parser) str(g *grammar.Node) *ast.Node {
	if g.IgnoreLater {
		p.r.SkipSpaces()
		start := p.r.Index()
		p.r.SkipToLineBreak()
		if p.r.Index() == start && !g.AllowMissing {
			return p.r.missing(g, what(g, "a string"))
		}
		return ast.New(g, p.r.SpanFrom(start))
	}
	if g.AllowMissing && p.r.AtLineEnd() {
		return ast.New(g, p.r.SpanFrom(p.r.Index()))
	}
	return p.r.ReadStringOrNumber(g, what(g, "a string"), checkString(g))
}

func (p *parser) integerWithUnit(g *grammar.Node) *ast.Node {
	p.r.SkipSpaces()
	start := p.r.Index()
	num := p.r.ReadNumber(g, what(g, "an integer"), checkInteger(g))
	if num.Failed {
		return num
	}

	tok, ok := p.r.Peek()
	if ok && tok.Kind == lexer.TokString {
		p.r.Next()
		n := ast.New(g, p.r.SpanFrom(start))
		if e, found := g.Table.Find(tok.Text); found {
			n.Data = e
		} else {
			n.AddError(diag.Newf(diag.IDError, tok.Offset, tok.End(), "unknown unit %q", tok.Text))
		}
		return n
	}

	if !g.AllowMissing {
		level := diag.TypeError
		if p.r.AtLineEnd() {
			level = diag.Incomplete
		}
		end := num.Span.EndOffset
		num.AddError(diag.New(level, end, end, "expected a unit"))
	}
	return num
}

func (p *parser) relativeFloat(g *grammar.Node) *ast.Node {
	p.r.SkipSpaces()
	start := p.r.Index()
	relative := p.r.PeekSymbol('~') || p.r.PeekSymbol('^')
	if relative {
		p.r.Next()
	}

	tok, ok := p.r.Peek()
	if ok && tok.Kind == lexer.TokNumber {
		p.r.Next()
		n := ast.New(g, p.r.SpanFrom(start))
		if _, err := strconv.ParseFloat(tok.Text, 64); err != nil {
			n.AddError(diag.Newf(diag.Content, tok.Offset, tok.End(), "%q is not a number", tok.Text))
		}
		return n
	}
	if relative {
		return ast.New(g, p.r.SpanFrom(start))
	}
	return p.r.missing(g, what(g, "a coordinate"))
}

// Range is a parsed integer range. A nil bound is open.
type Range struct {
	Min     *int64
	Max     *int64
	Negated bool
}

// ErrInvalidRange is returned by ParseRange for malformed ranges.
var ErrInvalidRange = errors.New("invalid range")

// ParseRange parses "a", "a..", "..b" or "a..b", optionally prefixed by "!".
func ParseRange(text string) (Range, error) {
	var r Range
	if rest, ok := strings.CutPrefix(text, "!"); ok {
		r.Negated = true
		text = rest
	}
	bound := func(s string) (*int64, error) {
		if s == "" {
			return nil, nil
		}
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an integer", ErrInvalidRange, s)
		}
		return &v, nil
	}

	lo, hi, isRange := strings.Cut(text, "..")
	if !isRange {
		v, err := bound(text)
		if err != nil {
			return r, err
		}
		if v == nil {
			return r, fmt.Errorf("%w: empty range", ErrInvalidRange)
		}
		r.Min, r.Max = v, v
		return r, nil
	}

	var err error
	if r.Min, err = bound(lo); err != nil {
		return r, err
	}
	if r.Max, err = bound(hi); err != nil {
		return r, err
	}
	if r.Min == nil && r.Max == nil {
		return r, fmt.Errorf("%w: both bounds are missing", ErrInvalidRange)
	}
	return r, nil
}

func (p *parser) rangeLeaf(g *grammar.Node) *ast.Node {
	p.r.SkipSpaces()
	start := p.r.Index()
	if p.r.PeekSymbol('!') {
		p.r.Next()
	}

	tok, ok := p.r.Peek()
	if !ok || tok.Kind != lexer.TokNumber {
		if p.r.Index() == start {
			return p.r.missing(g, what(g, "a range"))
		}
		n := ast.New(g, p.r.SpanFrom(start))
		level := diag.TypeError
		if p.r.AtLineEnd() {
			level = diag.Incomplete
		}
		n.AddError(diag.New(level, n.Span.EndOffset, n.Span.EndOffset, "expected a range after !"))
		return n
	}

	p.r.Next()
	n := ast.New(g, p.r.SpanFrom(start))
	if _, err := ParseRange(tok.Text); err != nil {
		n.AddError(diag.New(diag.Content, tok.Offset, tok.End(), err.Error()))
	}
	return n
}
