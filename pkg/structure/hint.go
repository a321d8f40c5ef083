package structure

import (
	"github.com/yaklabco/cmdassist/pkg/ast"
	"github.com/yaklabco/cmdassist/pkg/grammar"
)

// ParamHint returns the description of the innermost parameter at byte offset
// index. Matched nodes win over attempts the parser backtracked over; the
// latter still describe what could be typed next. Composite parameters such
// as positions and selectors are described as a whole.
func ParamHint(root *ast.Node, index int) string {
	var live, discarded hint
	var visit func(n *ast.Node, depth int, dropped bool)
	visit = func(n *ast.Node, depth int, dropped bool) {
		dropped = dropped || n.Discarded
		if g := n.Grammar; g != nil && g.Description != "" && n.Span.ContainsOffset(index) {
			if dropped {
				discarded.offer(g.Description, depth)
			} else {
				live.offer(g.Description, depth)
			}
		}
		if isParameter(n) {
			return
		}
		for _, c := range n.Children {
			visit(c, depth+1, dropped)
		}
	}
	visit(root, 0, false)

	if live.found {
		return live.text
	}
	return discarded.text
}

type hint struct {
	text  string
	depth int
	found bool
}

func (h *hint) offer(text string, depth int) {
	if !h.found || depth > h.depth {
		h.text, h.depth, h.found = text, depth, true
	}
}

func isParameter(n *ast.Node) bool {
	switch n.Kind() {
	case grammar.KindPosition, grammar.KindBlock, grammar.KindItem,
		grammar.KindTargetSelector, grammar.KindIntegerWithUnit:
		return true
	default:
		return false
	}
}
