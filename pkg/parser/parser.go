package parser

import (
	"fmt"

	"github.com/yaklabco/cmdassist/pkg/ast"
	"github.com/yaklabco/cmdassist/pkg/diag"
	"github.com/yaklabco/cmdassist/pkg/grammar"
	"github.com/yaklabco/cmdassist/pkg/lexer"
)

// maxDepth bounds recursion through cyclic grammars that stop consuming
// input.
const maxDepth = 512

type parser struct {
	g     *grammar.Graph
	r     *Reader
	depth int

	multiline bool
}

// Parse matches the command root of g against in. It always returns a tree.
func Parse(g *grammar.Graph, in *lexer.Input) *ast.Node {
	p := &parser{g: g, r: NewReader(in)}
	return p.command(g.Root())
}

// ParseString tokenizes and parses text.
func ParseString(g *grammar.Graph, text string) *ast.Node {
	return Parse(g, lexer.Tokenize(text))
}

func (p *parser) node(id grammar.NodeID) *grammar.Node {
	return p.g.Node(id)
}

func (p *parser) parse(g *grammar.Node) *ast.Node {
	p.depth++
	defer func() { p.depth-- }()

	if p.depth > maxDepth {
		span := p.r.SpanFrom(p.r.Index())
		return ast.NewError(g, span, diag.New(diag.Logic, span.StartOffset, span.EndOffset, "grammar nesting is too deep"))
	}

	switch g.Kind {
	case grammar.KindAnd:
		return p.and(g)
	case grammar.KindOr, grammar.KindJSONElement:
		return p.or(g)
	case grammar.KindOptional:
		return p.optional(g)
	case grammar.KindRepeat:
		return p.repeat(g)
	case grammar.KindWrapped:
		return p.wrapped(g)
	case grammar.KindAny:
		return p.any(g)
	case grammar.KindEntry:
		return p.entry(g)
	case grammar.KindEqualEntry:
		return p.equalEntry(g)
	case grammar.KindList:
		return p.list(g, g.Open, g.Separator, g.Close, p.node(g.Inner))
	case grammar.KindSingleSymbol:
		return p.r.ReadSymbol(g, g.Symbol)
	case grammar.KindLF:
		return p.lf(g)
	case grammar.KindCommand:
		return p.command(g)
	case grammar.KindCommandName:
		return p.commandName(g)
	case grammar.KindPerCommand:
		return p.perCommand(g)
	case grammar.KindBoolean:
		return p.r.ReadString(g, what(g, "true or false"), checkBoolean)
	case grammar.KindInteger:
		return p.r.ReadNumber(g, what(g, "an integer"), checkInteger(g))
	case grammar.KindFloat:
		return p.r.ReadNumber(g, what(g, "a number"), checkFloat(g))
	case grammar.KindIntegerWithUnit:
		return p.integerWithUnit(g)
	case grammar.KindRelativeFloat:
		return p.relativeFloat(g)
	case grammar.KindPosition:
		return p.position(g)
	case grammar.KindRange:
		return p.rangeLeaf(g)
	case grammar.KindString:
		return p.str(g)
	case grammar.KindText:
		return p.text(g)
	case grammar.KindNormalID, grammar.KindNamespaceID:
		return p.id(g)
	case grammar.KindBlock:
		return p.block(g)
	case grammar.KindItem:
		return p.item(g)
	case grammar.KindTargetSelector:
		return p.targetSelector(g)
	case grammar.KindJSON:
		return p.wrap(g)
	case grammar.KindJSONObject:
		return p.jsonObject(g)
	case grammar.KindJSONEntry:
		return p.jsonEntry(g)
	case grammar.KindJSONList:
		return p.list(g, '[', ',', ']', p.node(g.Inner))
	case grammar.KindJSONString:
		return p.jsonString(g)
	case grammar.KindJSONInteger:
		return p.r.ReadNumber(g, what(g, "an integer"), checkInteger(g))
	case grammar.KindJSONFloat:
		return p.r.ReadNumber(g, what(g, "a number"), checkFloat(g))
	case grammar.KindJSONBoolean:
		return p.r.ReadString(g, what(g, "true or false"), checkBoolean)
	case grammar.KindJSONNull:
		return p.r.ReadString(g, "null", checkNull)
	default:
		panic(fmt.Sprintf("parser: unhandled grammar kind %s", g.Kind))
	}
}

// what names the expected value in diagnostics.
func what(g *grammar.Node, fallback string) string {
	if g.ID != "" {
		return g.ID
	}
	return fallback
}

// separator consumes the single space between two members. It reports false
// when no space was found, in which case the member must not be attempted.
// More than one space is an error but the member is still parsed.
func (p *parser) separator() (*ast.Node, bool) {
	start := p.r.Index()
	n := p.r.SkipSpaces()
	span := p.r.SpanFrom(start)
	switch {
	case n == 1:
		return ast.NewSeparator(span, nil), true
	case n > 1:
		return ast.NewSeparator(span, diag.New(diag.TypeError, span.StartOffset, span.EndOffset, "expected a single space")), true
	case p.r.AtLineEnd():
		return ast.NewSeparator(span, diag.New(diag.Incomplete, span.StartOffset, span.EndOffset, "incomplete command, expected a space")), false
	default:
		return ast.NewSeparator(span, diag.New(diag.TypeError, span.StartOffset, span.EndOffset, "expected a space")), false
	}
}

// member parses child as the next sequence member, preceded by a separator
// when sep is set. An optional member that fails is backtracked over and its
// nodes are returned discarded.
func (p *parser) member(child *grammar.Node, sep, optional bool) ([]*ast.Node, bool) {
	p.r.Push()
	var nodes []*ast.Node
	ok := true
	if sep {
		s, cont := p.separator()
		nodes = append(nodes, s)
		ok = cont
	}
	if ok {
		nodes = append(nodes, p.parse(child))
	}
	failed := !ok
	for _, n := range nodes {
		failed = failed || n.Failed
	}
	if failed && optional {
		p.r.Restore()
		discard(nodes)
		return nodes, true
	}
	p.r.Pop()
	return nodes, !failed
}

func discard(nodes []*ast.Node) {
	for _, n := range nodes {
		n.Discarded = true
	}
}

func (p *parser) and(g *grammar.Node) *ast.Node {
	start := p.r.Index()
	var children []*ast.Node
	for _, id := range g.Children {
		child := p.node(id)
		nodes, ok := p.member(child, p.r.Index() > start, child.IsOptional())
		children = append(children, nodes...)
		if !ok {
			break
		}
	}
	return ast.New(g, p.r.SpanFrom(start), children...)
}

// alternatives tries ids in order and keeps the first success. When every
// branch fails, the one that consumed the most tokens wins and ties go to the
// earlier branch. Losing attempts are returned discarded.
func (p *parser) alternatives(ids []grammar.NodeID) ([]*ast.Node, int) {
	attempts := make([]*ast.Node, 0, len(ids))
	chosen, bestEnd := -1, -1
	for i, id := range ids {
		p.r.Push()
		n := p.parse(p.node(id))
		attempts = append(attempts, n)
		if !n.Failed {
			p.r.Pop()
			chosen = i
			break
		}
		if n.Span.End > bestEnd {
			chosen, bestEnd = i, n.Span.End
		}
		p.r.Restore()
	}
	if chosen >= 0 && attempts[chosen].Failed {
		p.r.seek(attempts[chosen].Span.End)
	}
	for i, a := range attempts {
		if i != chosen {
			a.Discarded = true
		}
	}
	return attempts, chosen
}

func (p *parser) or(g *grammar.Node) *ast.Node {
	start := p.r.Index()
	attempts, chosen := p.alternatives(g.Children)
	n := ast.New(g, p.r.SpanFrom(start), attempts...)
	n.Chosen = chosen
	return n
}

func (p *parser) optional(g *grammar.Node) *ast.Node {
	start := p.r.Index()
	p.r.Push()
	inner := p.parse(p.node(g.Inner))
	if inner.Failed {
		p.r.Restore()
		inner.Discarded = true
	} else {
		p.r.Pop()
	}
	return ast.New(g, p.r.SpanFrom(start), inner)
}

func (p *parser) repeat(g *grammar.Node) *ast.Node {
	start := p.r.Index()
	inner := p.node(g.Inner)
	var children []*ast.Node
	for i := 0; ; i++ {
		iterStart := p.r.Index()
		nodes, _ := p.member(inner, i > 0, true)
		children = append(children, nodes...)
		if nodes[len(nodes)-1].Discarded || p.r.Index() == iterStart {
			break
		}
	}
	return ast.New(g, p.r.SpanFrom(start), children...)
}

func (p *parser) wrapped(g *grammar.Node) *ast.Node {
	start := p.r.Index()
	inner := p.parse(p.node(g.Inner))
	children := []*ast.Node{inner}
	chosen := -1
	if !inner.Failed {
		rest, c := p.dispatch(g.Next)
		if c >= 0 {
			chosen = len(children) + c
		}
		children = append(children, rest...)
	}
	n := ast.New(g, p.r.SpanFrom(start), children...)
	n.Chosen = chosen
	return n
}

// dispatch parses a separator followed by one of ids. An LF among ids lets
// the command end here; attempts that then fail without consuming anything
// are kept discarded so completion still sees them.
func (p *parser) dispatch(ids []grammar.NodeID) ([]*ast.Node, int) {
	var others []grammar.NodeID
	canEnd := false
	for _, id := range ids {
		if p.node(id).Kind == grammar.KindLF {
			canEnd = true
		} else {
			others = append(others, id)
		}
	}
	if len(others) == 0 {
		return nil, -1
	}

	p.r.Push()
	sep, cont := p.separator()
	if !cont {
		if canEnd {
			p.r.Restore()
			sep.Discarded = true
		} else {
			p.r.Pop()
		}
		return []*ast.Node{sep}, -1
	}

	attempts, chosen := p.alternatives(others)
	nodes := append([]*ast.Node{sep}, attempts...)
	if canEnd && attempts[chosen].Failed && attempts[chosen].Span.IsEmpty() {
		p.r.Restore()
		discard(nodes)
		return nodes, -1
	}
	p.r.Pop()
	return nodes, chosen + 1
}

func (p *parser) wrap(g *grammar.Node) *ast.Node {
	start := p.r.Index()
	inner := p.parse(p.node(g.Inner))
	return ast.New(g, p.r.SpanFrom(start), inner)
}

func (p *parser) any(g *grammar.Node) *ast.Node {
	start := p.r.Index()
	p.r.SkipToLineBreak()
	return ast.New(g, p.r.SpanFrom(start))
}

func (p *parser) lf(g *grammar.Node) *ast.Node {
	span := p.r.SpanFrom(p.r.Index())
	if p.r.AtLineEnd() {
		return ast.New(g, span)
	}
	return ast.NewError(g, span, diag.New(diag.Excess, span.StartOffset, span.EndOffset, "expected end of command"))
}

func (p *parser) entry(g *grammar.Node) *ast.Node {
	start := p.r.Index()
	key := p.parse(p.node(g.Children[0]))
	children := []*ast.Node{key}
	if !key.Failed {
		sym := p.r.ReadSymbol(grammar.SymbolNode(g.Symbol), g.Symbol)
		children = append(children, sym)
		if !sym.Failed {
			children = append(children, p.parse(p.node(g.Children[1])))
		}
	}
	return ast.New(g, p.r.SpanFrom(start), children...)
}

func (p *parser) equalEntry(g *grammar.Node) *ast.Node {
	p.r.SkipSpaces()
	start := p.r.Index()
	key := p.parse(p.node(g.Children[0]))
	children := []*ast.Node{key}
	if key.Span.IsEmpty() {
		return ast.New(g, p.r.SpanFrom(start), children...)
	}

	name, _ := Unquote(key.Text())
	entry, known := g.Entry(name)

	eq := p.r.ReadSymbol(grammar.SymbolNode('='), '=')
	children = append(children, eq)
	if eq.Failed {
		return ast.New(g, p.r.SpanFrom(start), children...)
	}

	if p.r.PeekSymbol('!') {
		not := p.r.ReadSymbol(grammar.SymbolNode('!'), '!')
		if known && !entry.CanUseNot {
			not.AddError(diag.Newf(diag.Content, not.Span.StartOffset, not.Span.EndOffset, "argument %q cannot be negated", name))
		}
		children = append(children, not)
	}

	valueID := g.Inner
	if known {
		valueID = entry.Value
	}
	if value := p.node(valueID); value != nil {
		children = append(children, p.parse(value))
	}
	return ast.New(g, p.r.SpanFrom(start), children...)
}

// expectSymbols reads whichever of chs comes next. Attempts that did not
// match are kept for completion; when none matches, only the first stays
// live so its diagnostic surfaces.
func (p *parser) expectSymbols(chs ...byte) ([]*ast.Node, byte) {
	attempts := make([]*ast.Node, 0, len(chs))
	for _, ch := range chs {
		p.r.Push()
		n := p.r.ReadSymbol(grammar.SymbolNode(ch), ch)
		if !n.Failed {
			p.r.Pop()
			discard(attempts)
			return append(attempts, n), ch
		}
		p.r.Restore()
		attempts = append(attempts, n)
	}
	discard(attempts[1:])
	p.r.seek(attempts[0].Span.End)
	return attempts, 0
}

// list parses open (inner (sep inner)*)? close, allowing spaces between
// elements.
func (p *parser) list(g *grammar.Node, open, sep, closing byte, inner *grammar.Node) *ast.Node {
	p.r.SkipSpaces()
	start := p.r.Index()
	o := p.r.ReadSymbol(grammar.SymbolNode(open), open)
	children := []*ast.Node{o}
	if o.Failed {
		return ast.New(g, p.r.SpanFrom(start), children...)
	}

	p.r.SkipSpaces()
	if p.r.PeekSymbol(closing) {
		children = append(children, p.r.ReadSymbol(grammar.SymbolNode(closing), closing))
		return ast.New(g, p.r.SpanFrom(start), children...)
	}

	for {
		el := p.parse(inner)
		children = append(children, el)
		if el.Failed {
			break
		}
		nodes, ch := p.expectSymbols(sep, closing)
		children = append(children, nodes...)
		if ch != sep {
			break
		}
	}
	return ast.New(g, p.r.SpanFrom(start), children...)
}
