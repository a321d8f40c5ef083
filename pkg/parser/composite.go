package parser

import (
	"github.com/yaklabco/cmdassist/pkg/ast"
	"github.com/yaklabco/cmdassist/pkg/diag"
	"github.com/yaklabco/cmdassist/pkg/grammar"
	"github.com/yaklabco/cmdassist/pkg/lexer"
)

// excessMessage reports tokens left over after a complete command.
const excessMessage = "unexpected input after the command"

// command parses every line of the input against the command root.
func (p *parser) command(g *grammar.Node) *ast.Node {
	start := p.r.Index()
	for _, tok := range p.r.Input().Tokens {
		if tok.Kind == lexer.TokLineBreak {
			p.multiline = true
			break
		}
	}
	var children []*ast.Node
	for {
		children = append(children, p.commandLine(g)...)
		if !p.r.Next() {
			break
		}
	}
	return ast.New(g, p.r.SpanFrom(start), children...)
}

// commandLine parses one command and leaves the reader at the line break
// ending it, or at the end of input.
func (p *parser) commandLine(g *grammar.Node) []*ast.Node {
	var parts []*ast.Node
	p.r.SkipSpaces()
	if p.r.AtLineEnd() && p.multiline {
		// Blank lines between commands are kept only for completion.
		name := p.r.missing(p.node(g.Inner), "command name")
		name.Discarded = true
		return []*ast.Node{name}
	}
	if p.r.PeekSymbol('/') {
		parts = append(parts, p.r.ReadSymbol(grammar.SymbolNode('/'), '/'))
	}

	name := p.commandName(p.node(g.Inner))
	parts = append(parts, name)
	failed := name.Failed
	if !failed {
		pc, _ := p.g.PerCommand(name.Data.Normal().Name)
		body := p.perCommand(pc)
		parts = append(parts, body)
		failed = body.Failed
	}

	if failed {
		p.r.SkipToLineBreak()
		return parts
	}

	p.r.SkipSpaces()
	if !p.r.AtLineEnd() {
		start := p.r.Index()
		p.r.SkipToLineBreak()
		span := p.r.SpanFrom(start)
		parts = append(parts, ast.NewError(nil, span, diag.New(diag.Excess, span.StartOffset, span.EndOffset, excessMessage)))
	}
	return parts
}

func (p *parser) perCommand(g *grammar.Node) *ast.Node {
	start := p.r.Index()
	rest, chosen := p.dispatch(g.Children)
	n := ast.New(g, p.r.SpanFrom(start), rest...)
	n.Chosen = chosen
	return n
}

func (p *parser) position(g *grammar.Node) *ast.Node {
	p.r.SkipSpaces()
	start := p.r.Index()
	var children []*ast.Node
	for i, id := range g.Children {
		if i > 0 && !p.r.PeekSymbol('~') && !p.r.PeekSymbol('^') {
			sep, cont := p.separator()
			children = append(children, sep)
			if !cont {
				break
			}
		}
		c := p.parse(p.node(id))
		children = append(children, c)
		if c.Failed {
			break
		}
	}
	return ast.New(g, p.r.SpanFrom(start), children...)
}

func (p *parser) block(g *grammar.Node) *ast.Node {
	p.r.SkipSpaces()
	start := p.r.Index()
	id := p.parse(p.node(g.Children[0]))
	children := []*ast.Node{id}
	if !id.Failed && p.r.PeekSymbol('[') {
		children = append(children, p.parse(p.node(g.Children[1])))
	}
	n := ast.New(g, p.r.SpanFrom(start), children...)
	n.Data = id.Data
	return n
}

func (p *parser) item(g *grammar.Node) *ast.Node {
	p.r.SkipSpaces()
	start := p.r.Index()
	id := p.parse(p.node(g.Children[0]))
	children := []*ast.Node{id}
	if !id.Failed {
		data := p.node(g.Children[2])
		if id.Data != nil {
			if d, ok := g.ItemData[id.Data.Normal().Name]; ok {
				data = p.node(d)
			}
		}
		for _, part := range []*grammar.Node{p.node(g.Children[1]), data} {
			nodes, _ := p.member(part, true, true)
			children = append(children, nodes...)
			if nodes[len(nodes)-1].Discarded {
				break
			}
		}
	}
	n := ast.New(g, p.r.SpanFrom(start), children...)
	n.Data = id.Data
	return n
}

func (p *parser) targetSelector(g *grammar.Node) *ast.Node {
	p.r.SkipSpaces()
	start := p.r.Index()
	var children []*ast.Node
	if p.r.PeekSymbol('@') {
		children = append(children, p.r.ReadSymbol(grammar.SymbolNode('@'), '@'))
		variable := p.node(g.Children[0])
		var v *ast.Node
		if tok, ok := p.r.Peek(); ok && tok.Kind == lexer.TokString {
			v = p.parse(variable)
		} else {
			v = p.r.missing(variable, "a selector variable")
		}
		children = append(children, v)
		if !v.Failed && p.r.PeekSymbol('[') {
			children = append(children, p.parse(p.node(g.Children[1])))
		}
	} else if tok, ok := p.r.Peek(); ok && tok.Kind == lexer.TokNumber {
		children = append(children, p.r.missing(p.node(g.Children[2]), what(g, "a target")))
	} else {
		children = append(children, p.parse(p.node(g.Children[2])))
	}
	return ast.New(g, p.r.SpanFrom(start), children...)
}
