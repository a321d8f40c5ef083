// Package suggest collects completion candidates at a cursor position from a
// parsed tree, including the attempts the parser backtracked over.
package suggest

import (
	"strings"
	"sync"

	"github.com/yaklabco/cmdassist/pkg/ast"
	"github.com/yaklabco/cmdassist/pkg/grammar"
	"github.com/yaklabco/cmdassist/pkg/parser"
	"github.com/yaklabco/cmdassist/pkg/resource"
)

// Bucket groups suggestions. Buckets are emitted in declaration order.
type Bucket uint8

// Buckets.
const (
	BucketSpace Bucket = iota
	BucketSymbol
	BucketLiteral
	BucketID

	bucketCount
)

var bucketNames = [bucketCount]string{"space", "symbol", "literal", "id"}

// String returns the bucket name.
func (b Bucket) String() string {
	if b < bucketCount {
		return bucketNames[b]
	}
	return "unknown"
}

// Suggestion is one completion candidate replacing the bytes [Start, End) of
// the input.
type Suggestion struct {
	Start int `json:"start"`
	End   int `json:"end"`

	// AddSpace asks the caller to append a space after accepting the
	// candidate when the command then expects one.
	AddSpace bool `json:"addSpace"`

	Bucket  Bucket             `json:"-"`
	Content *resource.NormalID `json:"content"`
}

// Text returns the inserted text.
func (s Suggestion) Text() string {
	return s.Content.Name
}

// Description returns the candidate description.
func (s Suggestion) Description() string {
	return s.Content.Description
}

// Hash identifies the candidate and its replacement range.
func (s Suggestion) Hash() uint64 {
	return s.Content.ContentHash(s.Start, s.End)
}

// Suggestions holds deduplicated candidates by bucket.
type Suggestions struct {
	buckets [bucketCount][]Suggestion
	seen    map[uint64]struct{}
}

// NewSuggestions returns an empty set.
func NewSuggestions() *Suggestions {
	return &Suggestions{seen: make(map[uint64]struct{})}
}

// Add appends s to its bucket unless an equal candidate was added before.
func (s *Suggestions) Add(sg Suggestion) bool {
	h := sg.Hash()
	if _, dup := s.seen[h]; dup {
		return false
	}
	s.seen[h] = struct{}{}
	s.buckets[sg.Bucket] = append(s.buckets[sg.Bucket], sg)
	return true
}

// Bucket returns the candidates of one bucket.
func (s *Suggestions) Bucket(b Bucket) []Suggestion {
	return s.buckets[b]
}

// Len returns the number of candidates.
func (s *Suggestions) Len() int {
	n := 0
	for _, b := range s.buckets {
		n += len(b)
	}
	return n
}

// All returns every candidate, bucket by bucket.
func (s *Suggestions) All() []Suggestion {
	out := make([]Suggestion, 0, s.Len())
	for _, b := range s.buckets {
		out = append(out, b...)
	}
	return out
}

// Collect returns the candidates at byte offset index, in bucket order.
func Collect(root *ast.Node, index int) []Suggestion {
	return Gather(root, index).All()
}

// Gather returns the candidates at byte offset index.
func Gather(root *ast.Node, index int) *Suggestions {
	out := NewSuggestions()
	if root == nil || root.Span.Input == nil {
		return out
	}
	c := &collector{content: root.Span.Input.Content, index: index, out: out}
	c.visit(root, scope{})
	return out
}

var derived sync.Map

// derivedID returns a cached identifier for text that is not a table entry,
// such as a quoted key or a literal.
func derivedID(name, description string) *resource.NormalID {
	key := name + "\x00" + description
	if id, ok := derived.Load(key); ok {
		return id.(*resource.NormalID)
	}
	id, _ := derived.LoadOrStore(key, resource.NewNormalID(name, description))
	return id.(*resource.NormalID)
}

var (
	spaceID   = resource.NewNormalID(" ", "space")
	booleans  = []*resource.NormalID{resource.NewNormalID("true", ""), resource.NewNormalID("false", "")}
	nullID    = []*resource.NormalID{resource.NewNormalID("null", "")}
	relatives = []*resource.NormalID{
		resource.NewNormalID("~", "relative to the executor"),
		resource.NewNormalID("^", "relative to the executor's rotation"),
	}
	selectors = func() []*resource.NormalID {
		out := make([]*resource.NormalID, 0, len(grammar.SelectorVariables))
		for _, v := range grammar.SelectorVariables {
			out = append(out, resource.NewNormalID("@"+v.Name, v.Description))
		}
		return out
	}()
)

// scope carries what enclosing nodes tell about the node being visited.
type scope struct {
	block    *resource.BlockID
	stateKey string
	tight    bool
}

type collector struct {
	content string
	index   int
	out     *Suggestions
}

func (c *collector) visit(n *ast.Node, sc scope) {
	switch n.Kind() {
	case grammar.KindBlock:
		if b, ok := n.Data.(*resource.BlockID); ok {
			sc.block = b
		}
	case grammar.KindEntry:
		if len(n.Children) > 0 {
			sc.stateKey, _ = parser.Unquote(n.Children[0].Text())
		}
		sc.tight = true
	case grammar.KindList, grammar.KindEqualEntry, grammar.KindJSONObject, grammar.KindJSONList:
		sc.tight = true
	}

	if n.Span.ContainsOffset(c.index) {
		c.suggest(n, sc)
	}
	for _, child := range n.Children {
		c.visit(child, sc)
	}
}

func (c *collector) suggest(n *ast.Node, sc scope) {
	start, end := n.Span.StartOffset, n.Span.EndOffset
	missing := n.Failed && n.Span.IsEmpty()

	if n.Separator {
		if missing {
			c.out.Add(Suggestion{Start: start, End: end, Bucket: BucketSpace, Content: spaceID})
		}
		return
	}
	g := n.Grammar
	if g == nil {
		return
	}

	prefix := c.content[start:c.index]
	addSpace := !sc.tight && !g.Kind.IsJSON()

	switch g.Kind {
	case grammar.KindSingleSymbol:
		if missing {
			c.out.Add(Suggestion{Start: start, End: end, Bucket: BucketSymbol, Content: derivedID(string(g.Symbol), "")})
		}
	case grammar.KindRelativeFloat:
		if missing {
			c.offer(BucketSymbol, start, end, prefix, false, relatives)
		}
	case grammar.KindText:
		c.offer(BucketLiteral, start, end, prefix, addSpace, []*resource.NormalID{derivedID(g.Literal, g.Description)})
	case grammar.KindBoolean, grammar.KindJSONBoolean:
		c.offer(BucketLiteral, start, end, prefix, addSpace, booleans)
	case grammar.KindJSONNull:
		c.offer(BucketLiteral, start, end, prefix, false, nullID)
	case grammar.KindTargetSelector:
		if start == c.index {
			c.offer(BucketLiteral, start, end, prefix, addSpace, selectors)
		}
	case grammar.KindCommandName:
		c.offer(BucketLiteral, start, end, prefix, true, normals(g.Table.Entries()))
	case grammar.KindIntegerWithUnit:
		c.units(n, prefix)
	case grammar.KindNormalID:
		c.offer(BucketID, start, end, prefix, addSpace, c.normalCandidates(g, sc))
	case grammar.KindNamespaceID:
		c.offer(BucketID, start, end, prefix, addSpace, namespaced(g.Table.Entries(), strings.Contains(prefix, ":")))
	case grammar.KindJSONString:
		if g.Table != nil {
			c.offer(BucketID, start, end, prefix, false, quoted(g.Table.Entries()))
		}
	}
}

// normalCandidates narrows block state keys and values to the matched block.
func (c *collector) normalCandidates(g *grammar.Node, sc scope) []*resource.NormalID {
	if sc.block != nil {
		switch g.ID {
		case grammar.IDBlockStateKey:
			out := make([]*resource.NormalID, 0, len(sc.block.States))
			for _, s := range sc.block.States {
				out = append(out, derivedID(s.Key, s.Description))
			}
			return out
		case grammar.IDBlockStateValue:
			s, ok := sc.block.State(sc.stateKey)
			if !ok {
				return nil
			}
			out := make([]*resource.NormalID, 0, len(s.Values))
			for _, v := range s.Values {
				out = append(out, derivedID(v, ""))
			}
			return out
		}
	}
	return normals(g.Table.Entries())
}

// units offers the unit table once a number has been typed.
func (c *collector) units(n *ast.Node, prefix string) {
	i := 0
	for i < len(prefix) && strings.IndexByte("0123456789.+-", prefix[i]) >= 0 {
		i++
	}
	if i == 0 {
		return
	}
	start := n.Span.StartOffset + i
	c.offer(BucketLiteral, start, n.Span.EndOffset, prefix[i:], false, normals(n.Grammar.Table.Entries()))
}

// offer adds the candidates matching prefix: those starting with it first,
// then those containing it. Matching ignores case.
func (c *collector) offer(b Bucket, start, end int, prefix string, addSpace bool, candidates []*resource.NormalID) {
	lower := strings.ToLower(prefix)
	var contains []*resource.NormalID
	for _, cand := range candidates {
		name := strings.ToLower(cand.Name)
		switch {
		case strings.HasPrefix(name, lower):
			c.out.Add(Suggestion{Start: start, End: end, AddSpace: addSpace, Bucket: b, Content: cand})
		case strings.Contains(name, lower):
			contains = append(contains, cand)
		}
	}
	for _, cand := range contains {
		c.out.Add(Suggestion{Start: start, End: end, AddSpace: addSpace, Bucket: b, Content: cand})
	}
}

func normals(entries []resource.Entry) []*resource.NormalID {
	out := make([]*resource.NormalID, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Normal())
	}
	return out
}

// namespaced returns the table entries, spelled with their namespace when
// full is set.
func namespaced(entries []resource.Entry, full bool) []*resource.NormalID {
	if !full {
		return normals(entries)
	}
	out := make([]*resource.NormalID, 0, len(entries))
	for _, e := range entries {
		if ns, ok := resource.Namespace(e); ok {
			out = append(out, derivedID(ns.FullName(), ns.Description))
			continue
		}
		n := e.Normal()
		out = append(out, derivedID(resource.DefaultNamespace+":"+n.Name, n.Description))
	}
	return out
}

func quoted(entries []resource.Entry) []*resource.NormalID {
	out := make([]*resource.NormalID, 0, len(entries))
	for _, e := range entries {
		n := e.Normal()
		out = append(out, derivedID(`"`+n.Name+`"`, n.Description))
	}
	return out
}
