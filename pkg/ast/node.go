// Package ast holds the tree produced by matching a grammar against one
// tokenized input. A tree is rebuilt on every edit and never mutated after the
// parser returns it.
package ast

import (
	"strings"

	"github.com/yaklabco/cmdassist/pkg/diag"
	"github.com/yaklabco/cmdassist/pkg/grammar"
	"github.com/yaklabco/cmdassist/pkg/lexer"
	"github.com/yaklabco/cmdassist/pkg/resource"
)

// Node is the result of matching one grammar node against a span of tokens.
type Node struct {
	// Grammar is the node that was matched or attempted; nil for separators.
	Grammar *grammar.Node

	// Span covers the tokens consumed by the match.
	Span lexer.Span

	// Children are sub-matches in source order, including discarded
	// attempts.
	Children []*Node

	// Errors are the diagnostics attached to this node itself.
	Errors []*diag.Diagnostic

	// Chosen is the index of the winning child of an alternation, or -1.
	Chosen int

	// Failed is set when this node or a live descendant has an error.
	Failed bool

	// Discarded marks speculative attempts that were backtracked over. They
	// are kept so completion can see what the grammar expected there.
	Discarded bool

	// Separator marks the space between two sequence members.
	Separator bool

	// Data is the identifier an id leaf resolved to, if any.
	Data resource.Entry
}

// New returns a node over span. Failed is derived from the live children.
func New(g *grammar.Node, span lexer.Span, children ...*Node) *Node {
	n := &Node{Grammar: g, Span: span, Children: children, Chosen: -1}
	for _, c := range children {
		if !c.Discarded && c.Failed {
			n.Failed = true
			break
		}
	}
	return n
}

// NewError returns a leaf carrying d.
func NewError(g *grammar.Node, span lexer.Span, d *diag.Diagnostic) *Node {
	n := New(g, span)
	n.AddError(d)
	return n
}

// NewSeparator returns a separator node. d may be nil.
func NewSeparator(span lexer.Span, d *diag.Diagnostic) *Node {
	n := &Node{Span: span, Chosen: -1, Separator: true}
	if d != nil {
		n.AddError(d)
	}
	return n
}

// AddError attaches d and marks the node failed when d is an error.
func (n *Node) AddError(d *diag.Diagnostic) {
	n.Errors = append(n.Errors, d)
	if d.Level.IsError() {
		n.Failed = true
	}
}

// Kind returns the grammar kind, or KindInvalid for separators.
func (n *Node) Kind() grammar.Kind {
	if n.Grammar == nil {
		return grammar.KindInvalid
	}
	return n.Grammar.Kind
}

// ID returns the grammar id, or "" for separators.
func (n *Node) ID() string {
	if n.Grammar == nil {
		return ""
	}
	return n.Grammar.ID
}

// Text returns the source text of the span.
func (n *Node) Text() string {
	return n.Span.String()
}

// Live returns the children that were not discarded.
func (n *Node) Live() []*Node {
	out := make([]*Node, 0, len(n.Children))
	for _, c := range n.Children {
		if !c.Discarded {
			out = append(out, c)
		}
	}
	return out
}

// ChosenChild returns the winning alternative, or nil.
func (n *Node) ChosenChild() *Node {
	if n.Chosen < 0 || n.Chosen >= len(n.Children) {
		return nil
	}
	return n.Children[n.Chosen]
}

// Child returns the first live child matched against g.
func (n *Node) Child(g *grammar.Node) *Node {
	for _, c := range n.Children {
		if !c.Discarded && c.Grammar == g {
			return c
		}
	}
	return nil
}

// FirstError returns the first diagnostic of the live tree in pre-order.
func (n *Node) FirstError() *diag.Diagnostic {
	var found *diag.Diagnostic
	//nolint:errcheck,revive // errStopWalk is expected and intentionally ignored
	Walk(n, func(node *Node) error {
		for _, d := range node.Errors {
			if d.Level.IsError() {
				found = d
				return errStopWalk
			}
		}
		return nil
	})
	return found
}

// IsAllSpaceError reports whether the first error of the tree covers only
// spaces, meaning the input stopped where a separating space was expected.
func (n *Node) IsAllSpaceError() bool {
	d := n.FirstError()
	if d == nil || n.Span.Input == nil {
		return false
	}
	text := n.Span.Input.Content[d.Start:d.End]
	return strings.Trim(text, " ") == ""
}

// Diagnostics returns every diagnostic of the live tree in pre-order.
func (n *Node) Diagnostics() []*diag.Diagnostic {
	var out []*diag.Diagnostic
	//nolint:errcheck,revive // Walk only returns nil errors in this usage
	Walk(n, func(node *Node) error {
		out = append(out, node.Errors...)
		return nil
	})
	return out
}
