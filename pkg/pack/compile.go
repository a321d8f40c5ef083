package pack

import (
	"errors"
	"fmt"

	"github.com/yaklabco/cmdassist/pkg/grammar"
	"github.com/yaklabco/cmdassist/pkg/resource"
)

// compiler turns node specs into builder nodes. Named nodes are compiled on
// first use; a node reached again while it is still being compiled gets a
// placeholder that is overwritten once the node is done.
type compiler struct {
	b      *grammar.Builder
	tables map[string]*resource.Table
	specs  map[string]*NodeSpec

	named    map[string]grammar.NodeID
	building map[string]bool
	patches  []patch
	errs     []error
}

type patch struct {
	placeholder grammar.NodeID
	name        string
}

func newCompiler(tables map[string]*resource.Table, specs map[string]*NodeSpec) *compiler {
	return &compiler{
		b:        grammar.NewBuilder(),
		tables:   tables,
		specs:    specs,
		named:    make(map[string]grammar.NodeID),
		building: make(map[string]bool),
	}
}

func (c *compiler) fail(format string, args ...any) grammar.NodeID {
	c.errs = append(c.errs, fmt.Errorf("%w: %s", ErrInvalidPack, fmt.Sprintf(format, args...)))
	return grammar.NoNode
}

func (c *compiler) compile(f *File) (*grammar.Graph, error) {
	for _, name := range sortedKeys(f.JSON) {
		c.b.Name(name, c.node(f.JSON[name]))
	}
	for _, name := range sortedKeys(c.specs) {
		c.use(name)
	}

	perCommands := make([]grammar.NodeID, 0, len(f.Commands))
	for i, cmd := range f.Commands {
		if len(cmd.Names) == 0 {
			c.fail("command %d has no names", i)
			continue
		}
		perCommands = append(perCommands, c.b.PerCommand(cmd.Names, cmd.Description, c.nodes(cmd.Start)...))
	}

	for _, p := range c.patches {
		*c.b.Node(p.placeholder) = *c.b.Node(c.named[p.name])
	}

	if len(c.errs) > 0 {
		return nil, errors.Join(c.errs...)
	}

	g, err := c.b.Build(c.b.Command("command-name", perCommands...))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPack, err)
	}
	return g, nil
}

// use returns the node compiled from the named spec.
func (c *compiler) use(name string) grammar.NodeID {
	if id, ok := c.named[name]; ok {
		return id
	}
	spec, ok := c.specs[name]
	if !ok {
		return c.fail("unknown node %q", name)
	}
	if c.building[name] {
		ph := c.b.Add(grammar.Node{})
		c.patches = append(c.patches, patch{placeholder: ph, name: name})
		return ph
	}

	c.building[name] = true
	id := c.node(spec)
	c.building[name] = false
	c.named[name] = id
	c.b.Name(name, id)
	return id
}

func (c *compiler) nodes(specs []*NodeSpec) []grammar.NodeID {
	out := make([]grammar.NodeID, 0, len(specs))
	for _, s := range specs {
		out = append(out, c.node(s))
	}
	return out
}

func (c *compiler) table(s *NodeSpec, fallback string) *resource.Table {
	name := s.Table
	if name == "" {
		name = fallback
	}
	if name == "" {
		return nil
	}
	t, ok := c.tables[name]
	if !ok {
		c.fail("node %q: unknown table %q", s.ID, name)
	}
	return t
}

func (c *compiler) symbol(s *NodeSpec, field, value string) byte {
	if len(value) != 1 {
		c.fail("node %q: %s must be a single character, got %q", s.ID, field, value)
		return 0
	}
	return value[0]
}

func (c *compiler) node(s *NodeSpec) grammar.NodeID {
	if s == nil {
		return c.fail("missing node")
	}
	if s.Use != "" {
		id := c.use(s.Use)
		if s.Optional {
			id = c.b.Optional(id)
		}
		return id
	}

	kind, ok := grammar.ParseKind(s.Kind)
	if !ok {
		return c.fail("node %q: unknown kind %q", s.ID, s.Kind)
	}

	id := c.build(kind, s)
	if n := c.b.Node(id); n != nil {
		if n.Description == "" {
			n.Description = s.Description
		}
		n.Optional = n.Optional || s.Optional
	}
	return id
}

func (c *compiler) build(kind grammar.Kind, s *NodeSpec) grammar.NodeID {
	b := c.b
	leaf := grammar.Node{
		Kind:            kind,
		ID:              s.ID,
		Description:     s.Description,
		Literal:         s.Literal,
		Min:             s.Min,
		Max:             s.Max,
		CanContainSpace: s.CanContainSpace,
		IgnoreLater:     s.IgnoreLater,
		AllowMissing:    s.AllowMissing,
	}

	switch kind {
	case grammar.KindAnd:
		return b.And(s.ID, c.nodes(s.Children)...)
	case grammar.KindOr:
		return b.Or(s.ID, c.nodes(s.Children)...)
	case grammar.KindOptional:
		return b.Optional(c.node(s.Inner))
	case grammar.KindRepeat:
		return b.Repeat(s.ID, c.node(s.Inner))
	case grammar.KindWrapped:
		inner := c.node(s.Inner)
		return b.Wrapped(inner, c.nodes(s.Next)...)
	case grammar.KindAny:
		return b.Any(s.ID, s.Description)
	case grammar.KindLF:
		return b.LF()
	case grammar.KindSingleSymbol:
		return b.Symbol(c.symbol(s, "symbol", s.Symbol))
	case grammar.KindList:
		inner := c.node(s.Inner)
		return b.List(s.ID, c.symbol(s, "open", s.Open), c.symbol(s, "separator", s.Separator), c.symbol(s, "close", s.Close), inner)
	case grammar.KindEntry:
		if len(s.Children) != 2 {
			return c.fail("entry %q needs a key and a value child", s.ID)
		}
		key, value := c.node(s.Children[0]), c.node(s.Children[1])
		return b.Entry(s.ID, key, c.symbol(s, "symbol", s.Symbol), value)
	case grammar.KindEqualEntry:
		entries := make([]grammar.KeyEntry, 0, len(s.Entries))
		for _, e := range s.Entries {
			entries = append(entries, grammar.KeyEntry{
				Key:         e.Key,
				Description: e.Description,
				Value:       c.node(e.Value),
				CanUseNot:   e.CanUseNot,
				Repeatable:  e.Repeatable,
			})
		}
		fallback := grammar.NoNode
		if s.Fallback != nil {
			fallback = c.node(s.Fallback)
		}
		return b.EqualEntry(s.ID, fallback, entries...)

	case grammar.KindText:
		if leaf.ID == "" {
			leaf.ID = s.Literal
		}
		return b.Add(leaf)
	case grammar.KindBoolean, grammar.KindInteger, grammar.KindFloat, grammar.KindRelativeFloat,
		grammar.KindRange, grammar.KindString:
		return b.Add(leaf)
	case grammar.KindIntegerWithUnit, grammar.KindNormalID, grammar.KindNamespaceID:
		leaf.Table = c.table(s, "")
		return b.Add(leaf)
	case grammar.KindPosition:
		return b.Position(s.ID, s.Description)
	case grammar.KindBlock:
		t := c.table(s, TableBlocks)
		if t == nil {
			return grammar.NoNode
		}
		return b.Block(s.ID, s.Description, t)
	case grammar.KindItem:
		t := c.table(s, TableItems)
		if t == nil {
			return grammar.NoNode
		}
		return b.Item(s.ID, s.Description, t)
	case grammar.KindTargetSelector:
		entities := c.tables[TableEntities]
		if s.Table != "" {
			entities = c.table(s, "")
		}
		return b.TargetSelector(s.ID, s.Description, entities)

	case grammar.KindJSON:
		return b.JSONRef(s.ID, s.Description, s.Ref)
	case grammar.KindJSONElement:
		return b.JSONElement(s.ID, c.nodes(s.Children)...)
	case grammar.KindJSONObject:
		fallback := grammar.NoNode
		if s.Fallback != nil {
			fallback = c.node(s.Fallback)
		}
		return b.JSONObject(s.ID, fallback, c.nodes(s.Children)...)
	case grammar.KindJSONEntry:
		key := s.Literal
		if key == "" {
			key = s.ID
		}
		return b.JSONEntry(key, s.Description, c.node(s.Inner))
	case grammar.KindJSONList:
		return b.JSONList(s.ID, c.node(s.Inner))
	case grammar.KindJSONString:
		var t *resource.Table
		if s.Table != "" {
			t = c.table(s, "")
		}
		return b.JSONString(s.ID, t)
	case grammar.KindJSONInteger, grammar.KindJSONFloat, grammar.KindJSONBoolean, grammar.KindJSONNull:
		return b.Add(leaf)

	default:
		return c.fail("node %q: kind %s cannot appear in a pack", s.ID, kind)
	}
}
