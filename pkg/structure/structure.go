// Package structure renders the signature of the command matched by a parse
// tree, such as "<command-name> <target> [amount]", and the description of
// the parameter under the cursor.
package structure

import (
	"strings"

	"github.com/yaklabco/cmdassist/pkg/ast"
	"github.com/yaklabco/cmdassist/pkg/grammar"
)

// maxGrammarDepth bounds how far unmatched grammar is expanded. Continuations
// may loop back to earlier nodes.
const maxGrammarDepth = 8

// Builder accumulates signature items.
type Builder struct {
	lines [][]string
}

// Param adds a named parameter, bracketed by whether it is required.
func (b *Builder) Param(name string, optional bool) {
	if optional {
		b.add("[" + name + "]")
		return
	}
	b.add("<" + name + ">")
}

// Literal adds fixed text.
func (b *Builder) Literal(text string) {
	b.add(text)
}

// NewLine starts the signature of the next command.
func (b *Builder) NewLine() {
	b.lines = append(b.lines, nil)
}

func (b *Builder) add(item string) {
	if len(b.lines) == 0 {
		b.NewLine()
	}
	last := len(b.lines) - 1
	b.lines[last] = append(b.lines[last], item)
}

// String joins the items with spaces and the lines with line breaks.
func (b *Builder) String() string {
	lines := make([]string, 0, len(b.lines))
	for _, l := range b.lines {
		lines = append(lines, strings.Join(l, " "))
	}
	return strings.Join(lines, "\n")
}

// Structure returns the signature of the commands in root, which was parsed
// with g.
func Structure(g *grammar.Graph, root *ast.Node) string {
	var b Builder
	r := renderer{g: g, b: &b}
	r.root(root)
	return b.String()
}

type renderer struct {
	g     *grammar.Graph
	b     *Builder
	lines int
}

func paramName(g *grammar.Node) string {
	if g.ID != "" {
		return g.ID
	}
	return g.Kind.String()
}

func (r *renderer) root(n *ast.Node) {
	for _, c := range n.Children {
		if c.Discarded || c.Grammar == nil {
			continue
		}
		switch c.Grammar.Kind {
		case grammar.KindCommandName:
			if r.lines > 0 {
				r.b.NewLine()
			}
			r.lines++
			r.b.Param(paramName(c.Grammar), false)
		case grammar.KindPerCommand:
			r.alternation(c, c.Grammar.Children, 0)
		}
	}
}

// alternation renders the chosen branch of n, or the first alternative
// of ids when nothing was chosen. skip is the number of leading children of
// n that are not alternatives. Alternatives including a line end make the
// whole branch optional.
func (r *renderer) alternation(n *ast.Node, ids []grammar.NodeID, skip int) {
	var first *grammar.Node
	canEnd := false
	for _, id := range ids {
		g := r.g.Node(id)
		switch {
		case g == nil:
		case g.Kind == grammar.KindLF:
			canEnd = true
		case first == nil:
			first = g
		}
	}

	if c := n.ChosenChild(); c != nil && n.Chosen >= skip {
		r.node(c, canEnd)
		return
	}
	if first != nil {
		r.grammar(first, canEnd, 0)
	}
}

func (r *renderer) node(n *ast.Node, optional bool) {
	if n.Separator || n.Grammar == nil {
		return
	}
	g := n.Grammar
	switch g.Kind {
	case grammar.KindText:
		r.b.Literal(g.Literal)
	case grammar.KindAnd:
		r.sequence(n, optional)
	case grammar.KindOr, grammar.KindJSONElement:
		if c := n.ChosenChild(); c != nil && (!c.Failed || g.ID == "") {
			r.node(c, optional)
			return
		}
		r.b.Param(paramName(g), optional || g.Optional)
	case grammar.KindOptional:
		if len(n.Children) > 0 && !n.Children[0].Discarded {
			r.node(n.Children[0], true)
			return
		}
		r.grammar(g, true, 0)
	case grammar.KindWrapped:
		if len(n.Children) > 0 {
			r.node(n.Children[0], optional)
		}
		r.alternation(n, g.Next, 1)
	case grammar.KindRepeat:
		r.b.Param(paramName(g)+"...", true)
	case grammar.KindLF, grammar.KindSingleSymbol:
	default:
		r.b.Param(paramName(g), optional || g.Optional)
	}
}

// sequence renders the members of an And node. Members that were backtracked
// over or never reached are rendered from the grammar.
func (r *renderer) sequence(n *ast.Node, optional bool) {
	i := 0
	for _, id := range n.Grammar.Children {
		want := r.g.Node(id)
		var matched *ast.Node
		for ; i < len(n.Children); i++ {
			c := n.Children[i]
			if c.Separator {
				continue
			}
			if c.Grammar == want {
				matched = c
				i++
			}
			break
		}
		switch {
		case want == nil:
		case matched == nil:
			r.grammar(want, optional || want.IsOptional(), 0)
		case matched.Discarded:
			r.grammar(want, true, 0)
		default:
			r.node(matched, optional || want.Optional)
		}
	}
}

// grammar renders g without a match.
func (r *renderer) grammar(g *grammar.Node, optional bool, depth int) {
	if depth > maxGrammarDepth {
		return
	}
	switch g.Kind {
	case grammar.KindText:
		r.b.Literal(g.Literal)
	case grammar.KindAnd:
		for _, id := range g.Children {
			if c := r.g.Node(id); c != nil {
				r.grammar(c, optional || c.IsOptional(), depth+1)
			}
		}
	case grammar.KindOptional:
		if inner := r.g.Node(g.Inner); inner != nil && inner.ID == "" {
			r.grammar(inner, true, depth+1)
			return
		}
		r.b.Param(paramName(g), true)
	case grammar.KindWrapped:
		if inner := r.g.Node(g.Inner); inner != nil {
			r.grammar(inner, optional, depth+1)
		}
		var next *grammar.Node
		canEnd := false
		for _, id := range g.Next {
			c := r.g.Node(id)
			switch {
			case c == nil:
			case c.Kind == grammar.KindLF:
				canEnd = true
			case next == nil:
				next = c
			}
		}
		if next != nil {
			r.grammar(next, optional || canEnd, depth+1)
		}
	case grammar.KindRepeat:
		r.b.Param(paramName(g)+"...", true)
	case grammar.KindLF, grammar.KindSingleSymbol:
	default:
		r.b.Param(paramName(g), optional || g.Optional)
	}
}
