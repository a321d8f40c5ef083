package grammar

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/yaklabco/cmdassist/pkg/resource"
)

// ErrInvalidGraph is wrapped by every Build error.
var ErrInvalidGraph = errors.New("invalid grammar")

// IDs of nodes the builder creates inside composite leaves.
const (
	IDBlockID         = "block"
	IDBlockStates     = "block-states"
	IDBlockStateKey   = "state-key"
	IDBlockStateValue = "state-value"
	IDItemID          = "item"
	IDItemAmount      = "amount"
	IDItemData        = "data"
	IDSelectorVar     = "selector"
	IDSelectorArgs    = "selector-args"
	IDPlayerName      = "player-name"
)

// Limits of item amounts and data values.
const (
	MaxItemAmount = 32767
	MaxItemData   = 32767
)

// Builder assembles a Graph. Nodes may be added in any order and may refer
// to nodes added later, which is how cycles are written.
type Builder struct {
	nodes []Node
	named map[string]NodeID
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{
		nodes: make([]Node, 1),
		named: make(map[string]NodeID),
	}
}

// Add appends n and returns its id.
func (b *Builder) Add(n Node) NodeID {
	b.nodes = append(b.nodes, n)
	return NodeID(len(b.nodes) - 1)
}

// Node returns a mutable pointer to a node under construction. The pointer is
// invalidated by the next Add.
func (b *Builder) Node(id NodeID) *Node {
	if id <= NoNode || int(id) >= len(b.nodes) {
		return nil
	}
	return &b.nodes[id]
}

// Name registers id under name, for JSON references and Graph.Named.
func (b *Builder) Name(name string, id NodeID) {
	b.named[name] = id
}

// Named returns the id registered under name.
func (b *Builder) Named(name string) (NodeID, bool) {
	id, ok := b.named[name]
	return id, ok
}

// Text adds a literal.
func (b *Builder) Text(literal, description string) NodeID {
	return b.Add(Node{Kind: KindText, ID: literal, Literal: literal, Description: description})
}

// And adds a space separated sequence.
func (b *Builder) And(id string, children ...NodeID) NodeID {
	return b.Add(Node{Kind: KindAnd, ID: id, Children: children})
}

// Or adds an alternation.
func (b *Builder) Or(id string, children ...NodeID) NodeID {
	return b.Add(Node{Kind: KindOr, ID: id, Children: children})
}

// Optional wraps inner so that its absence is not an error.
func (b *Builder) Optional(inner NodeID) NodeID {
	n := Node{Kind: KindOptional, Inner: inner}
	if in := b.Node(inner); in != nil {
		n.ID, n.Description = in.ID, in.Description
	}
	return b.Add(n)
}

// Repeat adds zero or more space separated repetitions of inner.
func (b *Builder) Repeat(id string, inner NodeID) NodeID {
	return b.Add(Node{Kind: KindRepeat, ID: id, Inner: inner})
}

// Wrapped adds inner followed by one of next.
func (b *Builder) Wrapped(inner NodeID, next ...NodeID) NodeID {
	n := Node{Kind: KindWrapped, Inner: inner, Next: next}
	if in := b.Node(inner); in != nil {
		n.ID, n.Description = in.ID, in.Description
	}
	return b.Add(n)
}

// Any adds a node consuming the rest of the line.
func (b *Builder) Any(id, description string) NodeID {
	return b.Add(Node{Kind: KindAny, ID: id, Description: description})
}

// LF adds a line end.
func (b *Builder) LF() NodeID {
	return b.Add(Node{Kind: KindLF})
}

// Symbol adds a single symbol.
func (b *Builder) Symbol(ch byte) NodeID {
	return b.Add(Node{Kind: KindSingleSymbol, ID: string(ch), Symbol: ch})
}

// List adds open (inner (sep inner)*)? close.
func (b *Builder) List(id string, open, sep, closing byte, inner NodeID) NodeID {
	return b.Add(Node{Kind: KindList, ID: id, Open: open, Separator: sep, Close: closing, Inner: inner})
}

// Entry adds key sym value with no spaces.
func (b *Builder) Entry(id string, key NodeID, sym byte, value NodeID) NodeID {
	return b.Add(Node{Kind: KindEntry, ID: id, Children: []NodeID{key, value}, Symbol: sym})
}

// EqualEntry adds key=value with per-key value nodes. fallback parses values
// of unknown keys.
func (b *Builder) EqualEntry(id string, fallback NodeID, entries ...KeyEntry) NodeID {
	keys := make([]resource.Entry, 0, len(entries))
	for _, e := range entries {
		keys = append(keys, resource.NewNormalID(e.Key, e.Description))
	}
	table := resource.NewTable(id, keys...)
	key := b.Add(Node{Kind: KindNormalID, ID: "key", Description: "argument name", Table: table})
	return b.Add(Node{
		Kind:     KindEqualEntry,
		ID:       id,
		Inner:    fallback,
		Children: []NodeID{key},
		Entries:  entries,
		Table:    table,
	})
}

// Boolean adds true/false.
func (b *Builder) Boolean(id, description string) NodeID {
	return b.Add(Node{Kind: KindBoolean, ID: id, Description: description})
}

// Integer adds an unbounded integer.
func (b *Builder) Integer(id, description string) NodeID {
	return b.Add(Node{Kind: KindInteger, ID: id, Description: description})
}

// IntegerIn adds an integer in [lo, hi].
func (b *Builder) IntegerIn(id, description string, lo, hi float64) NodeID {
	return b.Add(Node{Kind: KindInteger, ID: id, Description: description, Min: Bounded(lo), Max: Bounded(hi)})
}

// Float adds an unbounded float.
func (b *Builder) Float(id, description string) NodeID {
	return b.Add(Node{Kind: KindFloat, ID: id, Description: description})
}

// IntegerWithUnit adds a number glued to a unit from units.
func (b *Builder) IntegerWithUnit(id, description string, units *resource.Table, unitOptional bool) NodeID {
	return b.Add(Node{Kind: KindIntegerWithUnit, ID: id, Description: description, Table: units, AllowMissing: unitOptional})
}

// RelativeFloat adds a coordinate that may be prefixed by ~ or ^.
func (b *Builder) RelativeFloat(id, description string) NodeID {
	return b.Add(Node{Kind: KindRelativeFloat, ID: id, Description: description})
}

// Position adds three coordinates.
func (b *Builder) Position(id, description string) NodeID {
	x := b.RelativeFloat("x", "x coordinate")
	y := b.RelativeFloat("y", "y coordinate")
	z := b.RelativeFloat("z", "z coordinate")
	return b.Add(Node{Kind: KindPosition, ID: id, Description: description, Children: []NodeID{x, y, z}})
}

// Range adds an integer range such as 1..5.
func (b *Builder) Range(id, description string) NodeID {
	return b.Add(Node{Kind: KindRange, ID: id, Description: description})
}

// String adds a single-token string.
func (b *Builder) String(id, description string) NodeID {
	return b.Add(Node{Kind: KindString, ID: id, Description: description, CanContainSpace: true})
}

// Message adds a string consuming the rest of the line.
func (b *Builder) Message(id, description string) NodeID {
	return b.Add(Node{Kind: KindString, ID: id, Description: description, IgnoreLater: true})
}

// NormalID adds a lookup in table.
func (b *Builder) NormalID(id, description string, table *resource.Table) NodeID {
	return b.Add(Node{Kind: KindNormalID, ID: id, Description: description, Table: table})
}

// NamespaceID adds a lookup in table accepting a namespace prefix.
func (b *Builder) NamespaceID(id, description string, table *resource.Table) NodeID {
	return b.Add(Node{Kind: KindNamespaceID, ID: id, Description: description, Table: table})
}

// Block adds a block id with an optional state list. States are checked
// against the matched block after parsing.
func (b *Builder) Block(id, description string, blocks *resource.Table) NodeID {
	var keys, values []resource.Entry
	seenKeys, seenValues := map[string]bool{}, map[string]bool{}
	for _, e := range blocks.Entries() {
		block, ok := e.(*resource.BlockID)
		if !ok {
			continue
		}
		for _, s := range block.States {
			if !seenKeys[s.Key] {
				seenKeys[s.Key] = true
				keys = append(keys, resource.NewNormalID(s.Key, s.Description))
			}
			for _, v := range s.Values {
				if !seenValues[v] {
					seenValues[v] = true
					values = append(values, resource.NewNormalID(v, ""))
				}
			}
		}
	}

	blockID := b.NamespaceID(IDBlockID, description, blocks)
	key := b.Add(Node{Kind: KindNormalID, ID: IDBlockStateKey, Description: "block state", Table: resource.NewTable("state-keys", keys...), AllowMissing: true})
	value := b.Or(IDBlockStateValue,
		b.Boolean(IDBlockStateValue, "state value"),
		b.Integer(IDBlockStateValue, "state value"),
		b.Add(Node{Kind: KindNormalID, ID: IDBlockStateValue, Description: "state value", Table: resource.NewTable("state-values", values...), AllowMissing: true}),
	)
	states := b.List(IDBlockStates, '[', ',', ']', b.Entry("state", key, '=', value))
	b.Node(states).Optional = true

	return b.Add(Node{Kind: KindBlock, ID: id, Description: description, Table: blocks, Children: []NodeID{blockID, states}})
}

// Item adds an item id followed by an optional amount and data value.
func (b *Builder) Item(id, description string, items *resource.Table) NodeID {
	itemID := b.NamespaceID(IDItemID, description, items)
	amount := b.IntegerIn(IDItemAmount, "item amount", 1, MaxItemAmount)
	data := b.IntegerIn(IDItemData, "item data value", -1, MaxItemData)
	b.Node(amount).Optional = true
	b.Node(data).Optional = true
	return b.Add(Node{Kind: KindItem, ID: id, Description: description, Table: items, Children: []NodeID{itemID, amount, data}})
}

// SelectorVariables are the accepted "@x" variables.
var SelectorVariables = []*resource.NormalID{
	resource.NewNormalID("a", "all players"),
	resource.NewNormalID("e", "all entities"),
	resource.NewNormalID("p", "nearest player"),
	resource.NewNormalID("r", "random player"),
	resource.NewNormalID("s", "executing entity"),
	resource.NewNormalID("initiator", "player interacting with the NPC"),
}

// TargetSelector adds "@x[args]" or a player name. entities types the
// "type" argument; nil accepts any string.
func (b *Builder) TargetSelector(id, description string, entities *resource.Table) NodeID {
	vars := make([]resource.Entry, 0, len(SelectorVariables))
	for _, v := range SelectorVariables {
		vars = append(vars, v)
	}
	variable := b.NormalID(IDSelectorVar, "selector variable", resource.NewTable("selector-variables", vars...))

	typeValue := b.String("type", "entity type")
	if entities != nil {
		typeValue = b.NamespaceID("type", "entity type", entities)
	}
	score := b.Entry("score", b.String("objective", "scoreboard objective"), '=', b.Range("score-range", "score range"))
	args := b.EqualEntry("selector-arg", b.String("value", "argument value"),
		KeyEntry{Key: "x", Description: "x origin", Value: b.RelativeFloat("x", "x origin")},
		KeyEntry{Key: "y", Description: "y origin", Value: b.RelativeFloat("y", "y origin")},
		KeyEntry{Key: "z", Description: "z origin", Value: b.RelativeFloat("z", "z origin")},
		KeyEntry{Key: "r", Description: "maximum radius", Value: b.Add(Node{Kind: KindFloat, ID: "r", Min: Bounded(0)})},
		KeyEntry{Key: "rm", Description: "minimum radius", Value: b.Add(Node{Kind: KindFloat, ID: "rm", Min: Bounded(0)})},
		KeyEntry{Key: "dx", Description: "x volume", Value: b.Float("dx", "x volume")},
		KeyEntry{Key: "dy", Description: "y volume", Value: b.Float("dy", "y volume")},
		KeyEntry{Key: "dz", Description: "z volume", Value: b.Float("dz", "z volume")},
		KeyEntry{Key: "rx", Description: "maximum x rotation", Value: b.Float("rx", "maximum x rotation")},
		KeyEntry{Key: "rxm", Description: "minimum x rotation", Value: b.Float("rxm", "minimum x rotation")},
		KeyEntry{Key: "ry", Description: "maximum y rotation", Value: b.Float("ry", "maximum y rotation")},
		KeyEntry{Key: "rym", Description: "minimum y rotation", Value: b.Float("rym", "minimum y rotation")},
		KeyEntry{Key: "c", Description: "maximum count", Value: b.Integer("c", "maximum count")},
		KeyEntry{Key: "l", Description: "maximum level", Value: b.Integer("l", "maximum level")},
		KeyEntry{Key: "lm", Description: "minimum level", Value: b.Integer("lm", "minimum level")},
		KeyEntry{Key: "m", Description: "game mode", Value: b.String("m", "game mode"), CanUseNot: true},
		KeyEntry{Key: "name", Description: "entity name", Value: b.String("name", "entity name"), CanUseNot: true},
		KeyEntry{Key: "type", Description: "entity type", Value: typeValue, CanUseNot: true},
		KeyEntry{Key: "family", Description: "entity family", Value: b.String("family", "entity family"), CanUseNot: true, Repeatable: true},
		KeyEntry{Key: "tag", Description: "entity tag", Value: b.String("tag", "entity tag"), CanUseNot: true, Repeatable: true},
		KeyEntry{Key: "scores", Description: "score ranges", Value: b.List("scores", '{', ',', '}', score)},
	)
	argList := b.List(IDSelectorArgs, '[', ',', ']', args)
	b.Node(argList).Optional = true
	player := b.String(IDPlayerName, "player name")

	return b.Add(Node{Kind: KindTargetSelector, ID: id, Description: description, Children: []NodeID{variable, argList, player}})
}

// PerCommand adds the grammar of one command. starts are the alternatives
// following the command name.
func (b *Builder) PerCommand(names []string, description string, starts ...NodeID) NodeID {
	entries := make([]resource.Entry, 0, len(names))
	for _, name := range names {
		entries = append(entries, resource.NewNormalID(name, description))
	}
	id := ""
	if len(names) > 0 {
		id = names[0]
	}
	return b.Add(Node{Kind: KindPerCommand, ID: id, Description: description, Table: resource.NewTable(id, entries...), Children: starts})
}

// Command adds the root dispatching on the command name.
func (b *Builder) Command(nameID string, perCommands ...NodeID) NodeID {
	var names []resource.Entry
	for _, pc := range perCommands {
		if n := b.Node(pc); n != nil {
			names = append(names, n.Table.Entries()...)
		}
	}
	name := b.Add(Node{Kind: KindCommandName, ID: nameID, Description: "command name", Table: resource.NewTable("commands", names...)})
	return b.Add(Node{Kind: KindCommand, ID: "command", Inner: name, Children: perCommands})
}

// JSONRef adds a reference to the JSON element registered under ref.
func (b *Builder) JSONRef(id, description, ref string) NodeID {
	return b.Add(Node{Kind: KindJSON, ID: id, Description: description, Ref: ref})
}

// JSONElement adds an alternation of JSON values.
func (b *Builder) JSONElement(id string, alternatives ...NodeID) NodeID {
	return b.Add(Node{Kind: KindJSONElement, ID: id, Children: alternatives})
}

// JSONObject adds an object whose known keys are entries; fallback parses
// values of other keys and may be NoNode to reject them.
func (b *Builder) JSONObject(id string, fallback NodeID, entries ...NodeID) NodeID {
	keys := make([]resource.Entry, 0, len(entries))
	for _, e := range entries {
		if n := b.Node(e); n != nil {
			keys = append(keys, resource.NewNormalID(n.Literal, n.Description))
		}
	}
	key := b.Add(Node{Kind: KindJSONString, ID: "key", Table: resource.NewTable(id, keys...), AllowMissing: fallback != NoNode})
	return b.Add(Node{Kind: KindJSONObject, ID: id, Inner: fallback, Children: append([]NodeID{key}, entries...)})
}

// JSONEntry adds an object member.
func (b *Builder) JSONEntry(key, description string, value NodeID) NodeID {
	return b.Add(Node{Kind: KindJSONEntry, ID: key, Literal: key, Description: description, Inner: value})
}

// JSONList adds an array of inner.
func (b *Builder) JSONList(id string, inner NodeID) NodeID {
	return b.Add(Node{Kind: KindJSONList, ID: id, Inner: inner})
}

// JSONString adds a string, restricted to table when non-nil.
func (b *Builder) JSONString(id string, table *resource.Table) NodeID {
	return b.Add(Node{Kind: KindJSONString, ID: id, Table: table})
}

// JSONScalar adds one of the JSON scalar kinds.
func (b *Builder) JSONScalar(kind Kind, id string) NodeID {
	return b.Add(Node{Kind: kind, ID: id})
}

// Build validates the nodes, resolves references and derives item data
// nodes. root must be a Command node.
func (b *Builder) Build(root NodeID) (*Graph, error) {
	var errs []error
	fail := func(id NodeID, format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: node %d: %s", ErrInvalidGraph, id, fmt.Sprintf(format, args...)))
	}

	if r := b.Node(root); r == nil || r.Kind != KindCommand {
		fail(root, "root must be a command node")
		return nil, errors.Join(errs...)
	}

	if err := b.buildItemData(); err != nil {
		errs = append(errs, err)
	}

	for i := 1; i < len(b.nodes); i++ {
		id := NodeID(i)
		n := &b.nodes[i]
		if n.Kind == KindInvalid || n.Kind >= kindCount {
			fail(id, "unknown kind %d", n.Kind)
			continue
		}
		if n.Ref != "" {
			target, ok := b.named[n.Ref]
			if !ok {
				fail(id, "unknown reference %q", n.Ref)
			}
			n.Inner = target
		}
		for _, ref := range append(append(append([]NodeID{}, n.Children...), n.Next...), n.Inner) {
			if ref != NoNode && b.Node(ref) == nil {
				fail(id, "%s refers to missing node %d", n.Kind, ref)
			}
		}
		for _, e := range n.Entries {
			if b.Node(e.Value) == nil {
				fail(id, "key %q has no value node", e.Key)
			}
		}
		if n.Kind.UsesTable() && n.Table == nil {
			fail(id, "%s requires a table", n.Kind)
		}
		if n.Min != nil && n.Max != nil && *n.Min > *n.Max {
			fail(id, "min %v exceeds max %v", *n.Min, *n.Max)
		}
		switch n.Kind {
		case KindOptional, KindRepeat, KindWrapped, KindList, KindJSONList, KindJSONEntry, KindJSON:
			if n.Inner == NoNode {
				fail(id, "%s requires an inner node", n.Kind)
			}
		case KindText:
			if n.Literal == "" {
				fail(id, "text requires a literal")
			}
		case KindSingleSymbol:
			if n.Symbol == 0 {
				fail(id, "symbol requires a character")
			}
		}
		if n.Kind == KindList && (n.Open == 0 || n.Close == 0) {
			fail(id, "list requires open and close symbols")
		}
	}

	commands := make(map[string]NodeID)
	for _, pc := range b.nodes[root].Children {
		n := b.Node(pc)
		if n == nil || n.Kind != KindPerCommand {
			fail(pc, "command root children must be per-command nodes")
			continue
		}
		for _, name := range n.Table.Names() {
			if _, dup := commands[name]; dup {
				fail(pc, "duplicate command name %q", name)
			}
			commands[name] = pc
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	named := make(map[string]NodeID, len(b.named))
	for k, v := range b.named {
		named[k] = v
	}
	return &Graph{nodes: b.nodes, root: root, named: named, commands: commands}, nil
}

// buildItemData creates the data value node of every item that declares a
// maximum or per-value descriptions. Items sharing a table share nodes.
func (b *Builder) buildItemData() error {
	var errs []error
	cache := make(map[*resource.Table]map[string]NodeID)

	count := len(b.nodes)
	for i := 1; i < count; i++ {
		if b.nodes[i].Kind != KindItem || b.nodes[i].Table == nil {
			continue
		}
		table := b.nodes[i].Table
		data, ok := cache[table]
		if !ok {
			data = make(map[string]NodeID)
			for _, e := range table.Entries() {
				item, isItem := e.(*resource.ItemID)
				if !isItem || (item.Max == nil && len(item.Descriptions) == 0) {
					continue
				}
				id, err := b.itemDataNode(item)
				if err != nil {
					errs = append(errs, err)
					continue
				}
				data[item.Name] = id
			}
			cache[table] = data
		}
		b.nodes[i].ItemData = data
	}
	return errors.Join(errs...)
}

func (b *Builder) itemDataNode(item *resource.ItemID) (NodeID, error) {
	hi := float64(MaxItemData)
	if item.Max != nil {
		if *item.Max < 0 {
			return NoNode, fmt.Errorf("%w: item %q has negative max data value %d", ErrInvalidGraph, item.Name, *item.Max)
		}
		hi = float64(*item.Max)
	}
	all := b.IntegerIn(IDItemData, "item data value", -1, hi)
	if len(item.Descriptions) == 0 {
		return all, nil
	}
	alternatives := make([]NodeID, 0, len(item.Descriptions)+1)
	for i, desc := range item.Descriptions {
		alternatives = append(alternatives, b.Text(strconv.Itoa(i), desc))
	}
	alternatives = append(alternatives, all)
	return b.Or(IDItemData, alternatives...), nil
}
