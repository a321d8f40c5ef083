package grammar

import "github.com/yaklabco/cmdassist/pkg/resource"

// Graph is a built, immutable grammar.
type Graph struct {
	nodes    []Node
	root     NodeID
	named    map[string]NodeID
	commands map[string]NodeID
}

// Node returns the node with the given id, or nil for NoNode and ids out of
// range.
func (g *Graph) Node(id NodeID) *Node {
	if id <= NoNode || int(id) >= len(g.nodes) {
		return nil
	}
	return &g.nodes[id]
}

// Nodes resolves a list of ids.
func (g *Graph) Nodes(ids []NodeID) []*Node {
	out := make([]*Node, 0, len(ids))
	for _, id := range ids {
		out = append(out, g.Node(id))
	}
	return out
}

// Root returns the command root node.
func (g *Graph) Root() *Node {
	return g.Node(g.root)
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes) - 1
}

// Named returns a node registered under name while building.
func (g *Graph) Named(name string) (*Node, bool) {
	id, ok := g.named[name]
	if !ok {
		return nil, false
	}
	return g.Node(id), true
}

// Commands returns the table of every command name.
func (g *Graph) Commands() *resource.Table {
	name := g.Node(g.Root().Inner)
	if name == nil {
		return nil
	}
	return name.Table
}

// PerCommand returns the per-command node that handles name.
func (g *Graph) PerCommand(name string) (*Node, bool) {
	id, ok := g.commands[name]
	if !ok {
		return nil, false
	}
	return g.Node(id), true
}
