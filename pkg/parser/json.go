package parser

import (
	"github.com/yaklabco/cmdassist/pkg/ast"
	"github.com/yaklabco/cmdassist/pkg/diag"
	"github.com/yaklabco/cmdassist/pkg/grammar"
	"github.com/yaklabco/cmdassist/pkg/lexer"
)

var (
	jsonKey          = &grammar.Node{Kind: grammar.KindJSONString, ID: "key"}
	jsonUnknownEntry = &grammar.Node{Kind: grammar.KindJSONEntry, ID: "entry"}
)

func checkQuoted(tok lexer.Token) (diag.Level, string) {
	if tok.Text[0] != '"' {
		return diag.TypeError, "expected a quoted string"
	}
	if _, closed := Unquote(tok.Text); !closed {
		return diag.Content, "unterminated string"
	}
	return 0, ""
}

func (p *parser) jsonString(g *grammar.Node) *ast.Node {
	n := p.r.ReadString(g, what(g, "a string"), checkQuoted)
	if n.Failed || g.Table == nil {
		return n
	}
	value, _ := Unquote(n.Text())
	if e, ok := g.Table.Find(value); ok {
		n.Data = e
	} else if !g.AllowMissing {
		d := diag.Newf(diag.IDError, n.Span.StartOffset, n.Span.EndOffset, "unknown %s %q", what(g, "value"), value)
		n.AddError(d.WithHint(Hint(value, g.Table.Names())))
	}
	return n
}

func (p *parser) jsonObject(g *grammar.Node) *ast.Node {
	p.r.SkipSpaces()
	start := p.r.Index()
	open := p.r.ReadSymbol(grammar.SymbolNode('{'), '{')
	children := []*ast.Node{open}
	if open.Failed {
		return ast.New(g, p.r.SpanFrom(start), children...)
	}

	p.r.SkipSpaces()
	if p.r.PeekSymbol('}') {
		children = append(children, p.r.ReadSymbol(grammar.SymbolNode('}'), '}'))
		return ast.New(g, p.r.SpanFrom(start), children...)
	}

	for {
		member := p.jsonMember(g)
		children = append(children, member)
		if member.Failed {
			break
		}
		nodes, ch := p.expectSymbols(',', '}')
		children = append(children, nodes...)
		if ch != ',' {
			break
		}
	}
	return ast.New(g, p.r.SpanFrom(start), children...)
}

// jsonMember parses "key": value inside obj, dispatching on the key.
func (p *parser) jsonMember(obj *grammar.Node) *ast.Node {
	p.r.SkipSpaces()
	start := p.r.Index()
	key := p.jsonString(p.node(obj.Children[0]))
	children := []*ast.Node{key}
	entry := jsonUnknownEntry
	if !key.Failed {
		name, _ := Unquote(key.Text())
		value := p.node(obj.Inner)
		for _, id := range obj.Children[1:] {
			if e := p.node(id); e.Literal == name {
				entry, value = e, p.node(e.Inner)
				break
			}
		}
		colon := p.r.ReadSymbol(grammar.SymbolNode(':'), ':')
		children = append(children, colon)
		if !colon.Failed && value != nil {
			children = append(children, p.parse(value))
		}
	}
	return ast.New(entry, p.r.SpanFrom(start), children...)
}

func (p *parser) jsonEntry(g *grammar.Node) *ast.Node {
	p.r.SkipSpaces()
	start := p.r.Index()
	key := p.r.ReadString(jsonKey, "a key", checkQuoted)
	children := []*ast.Node{key}
	if !key.Failed {
		if name, _ := Unquote(key.Text()); name != g.Literal {
			key.AddError(diag.Newf(diag.IDError, key.Span.StartOffset, key.Span.EndOffset, "expected key %q, found %q", g.Literal, name))
		}
	}
	if !key.Failed {
		colon := p.r.ReadSymbol(grammar.SymbolNode(':'), ':')
		children = append(children, colon)
		if !colon.Failed {
			children = append(children, p.parse(p.node(g.Inner)))
		}
	}
	return ast.New(g, p.r.SpanFrom(start), children...)
}
