// Package grammar models a command grammar as an arena of tagged nodes.
//
// Nodes refer to each other by NodeID, so grammars may be cyclic (a JSON
// element containing JSON elements, a command continuation looping back to an
// earlier parameter). A Graph is immutable once built and may be shared by any
// number of concurrent parses.
package grammar

import "github.com/yaklabco/cmdassist/pkg/resource"

// NodeID indexes a node in a Graph. The zero value means "no node".
type NodeID int32

// NoNode is the absent reference.
const NoNode NodeID = 0

// KeyEntry is one key accepted by an EqualEntry node.
type KeyEntry struct {
	Key         string
	Description string

	// Value parses the right-hand side for this key.
	Value NodeID

	// CanUseNot allows "key=!value".
	CanUseNot bool

	// Repeatable allows the key more than once in one list.
	Repeatable bool
}

// Node is one grammar node. Which fields are meaningful depends on Kind; the
// rest stay zero.
type Node struct {
	Kind Kind

	// ID names the parameter in the structure view ("<target>").
	ID string

	// Description is shown as the parameter hint.
	Description string

	// Optional marks a child whose failure is silent inside a sequence.
	Optional bool

	// Children lists sequence members, alternatives, per-command start
	// nodes, JSON object entries or composite parts, in declared order.
	Children []NodeID

	// Inner is the wrapped, optional, repeated, listed or referenced node.
	// For Command it is the command name leaf; for EqualEntry and JSONObject
	// it parses values of unknown keys. Those two kinds keep their key leaf
	// in Children[0].
	Inner NodeID

	// Next lists the continuations of a Wrapped node.
	Next []NodeID

	// Table holds the identifiers a leaf accepts: command names, ids, blocks,
	// items or units.
	Table *resource.Table

	// Literal is the exact text of a Text node or the key of a JSON entry.
	Literal string

	// Min and Max bound numeric leaves. Nil means unbounded.
	Min *float64
	Max *float64

	// Symbol is the single symbol of SingleSymbol and the key separator of
	// Entry.
	Symbol byte

	// Open, Close and Separator delimit List nodes.
	Open      byte
	Close     byte
	Separator byte

	// Entries are the keys of an EqualEntry node.
	Entries []KeyEntry

	// String flags. AllowMissing also lets id leaves accept unknown ids and
	// IntegerWithUnit omit its unit.
	CanContainSpace bool
	IgnoreLater     bool
	AllowMissing    bool

	// ItemData maps item names to their data value node.
	ItemData map[string]NodeID

	// Ref names the element a JSON node refers to; resolved into Inner by
	// Build.
	Ref string
}

// IsOptional reports whether the node may be absent in a sequence.
func (n *Node) IsOptional() bool {
	return n.Optional || n.Kind == KindOptional
}

// Entry returns the EqualEntry key with the given name.
func (n *Node) Entry(key string) (KeyEntry, bool) {
	for _, e := range n.Entries {
		if e.Key == key {
			return e, true
		}
	}
	return KeyEntry{}, false
}

// Bounded returns a pointer to v, for Min and Max fields.
func Bounded(v float64) *float64 {
	return &v
}

var symbolNodes = func() (nodes [256]Node) {
	for i := range nodes {
		nodes[i] = Node{Kind: KindSingleSymbol, ID: string(rune(i)), Symbol: byte(i)}
	}
	return nodes
}()

// SymbolNode returns the shared node matching the single symbol ch. Parsers
// use it for punctuation inside composite nodes.
func SymbolNode(ch byte) *Node {
	return &symbolNodes[ch]
}
