package resource

import (
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// Table is a named, ordered collection of identifier entries. It is filled
// while a pack loads and read-only afterwards.
type Table struct {
	Name    string
	entries []Entry

	once  sync.Once
	index map[uint64][]int
}

// NewTable returns a table holding entries in the given order.
func NewTable(name string, entries ...Entry) *Table {
	return &Table{Name: name, entries: entries}
}

// NewNormalTable is a convenience constructor over plain names.
func NewNormalTable(name string, names ...string) *Table {
	entries := make([]Entry, 0, len(names))
	for _, n := range names {
		entries = append(entries, NewNormalID(n, ""))
	}
	return NewTable(name, entries...)
}

// Entries returns the entries in declaration order. The slice must not be
// modified.
func (t *Table) Entries() []Entry {
	if t == nil {
		return nil
	}
	return t.entries
}

// Len returns the number of entries.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

func (t *Table) buildIndex() {
	t.once.Do(func() {
		t.index = make(map[uint64][]int, len(t.entries))
		for i, e := range t.entries {
			h := e.Normal().NameHash()
			t.index[h] = append(t.index[h], i)
		}
	})
}

// Find looks an entry up by exact name. The name hash rejects misses before
// any string comparison happens.
func (t *Table) Find(name string) (Entry, bool) {
	if t == nil {
		return nil, false
	}
	t.buildIndex()
	h := xxhash.Sum64String(name)
	for _, i := range t.index[h] {
		if e := t.entries[i]; e.Normal().Matches(name, h) {
			return e, true
		}
	}
	return nil, false
}

// FindNamespaced looks up a possibly prefixed id. "minecraft:stone" and
// "stone" both find an entry named stone in the default namespace; other
// prefixes must match the entry namespace.
func (t *Table) FindNamespaced(text string) (Entry, bool) {
	ns, name, hasNS := strings.Cut(text, ":")
	if !hasNS {
		return t.Find(text)
	}
	e, ok := t.Find(name)
	if !ok {
		return nil, false
	}
	if nsEntry, isNS := namespaceOf(e); isNS && nsEntry.NamespaceOrDefault() != ns {
		return nil, false
	}
	return e, true
}

// Names returns every entry name in declaration order.
func (t *Table) Names() []string {
	names := make([]string, 0, t.Len())
	for _, e := range t.Entries() {
		names = append(names, e.Normal().Name)
	}
	return names
}

func namespaceOf(e Entry) (*NamespaceID, bool) {
	switch v := e.(type) {
	case *NamespaceID:
		return v, true
	case *BlockID:
		return &v.NamespaceID, true
	case *ItemID:
		return &v.NamespaceID, true
	default:
		return nil, false
	}
}

// Namespace returns the namespaced view of e, if it has one.
func Namespace(e Entry) (*NamespaceID, bool) {
	return namespaceOf(e)
}
