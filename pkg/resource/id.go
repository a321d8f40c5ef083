// Package resource holds the identifier tables a grammar matches against:
// plain ids, namespaced ids, blocks and items. Entries are loaded once with
// the pack and shared read-only by every parse; their hashes are computed
// lazily and safely across goroutines.
package resource

import (
	"encoding/binary"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// DefaultNamespace is assumed when a namespaced id is written without prefix.
const DefaultNamespace = "minecraft"

// Entry is implemented by every identifier kind.
type Entry interface {
	Normal() *NormalID
}

// NormalID is a plain identifier with an optional description.
type NormalID struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	once     sync.Once
	nameHash uint64
	state    xxhash.Digest
}

// NewNormalID returns an id with the given name and description.
func NewNormalID(name, description string) *NormalID {
	return &NormalID{Name: name, Description: description}
}

// Normal implements Entry.
func (n *NormalID) Normal() *NormalID {
	return n
}

func (n *NormalID) buildHash() {
	n.once.Do(func() {
		n.nameHash = xxhash.Sum64String(n.Name)
		n.state.Reset()
		_, _ = n.state.WriteString(n.Name)
		_, _ = n.state.WriteString(n.Description)
	})
}

// NameHash returns the cached hash of Name.
func (n *NormalID) NameHash() uint64 {
	n.buildHash()
	return n.nameHash
}

// FastMatch reports whether the name hash equals strHash. A true result still
// needs an exact comparison.
func (n *NormalID) FastMatch(strHash uint64) bool {
	return n.NameHash() == strHash
}

// Matches reports whether s names this id, using the hash to reject early.
func (n *NormalID) Matches(s string, sHash uint64) bool {
	return n.FastMatch(sHash) && n.Name == s
}

// ContentHash hashes the id content (name and description) together with the
// given extra integers. Suggestions use it as their dedup key.
func (n *NormalID) ContentHash(extra ...int) uint64 {
	n.buildHash()
	digest := n.state
	var buf [8]byte
	for _, v := range extra {
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		_, _ = digest.Write(buf[:])
	}
	return digest.Sum64()
}

// NamespaceID is an id that may be written with a "namespace:" prefix.
type NamespaceID struct {
	NormalID `yaml:",inline"`

	Namespace string `yaml:"namespace,omitempty" json:"namespace,omitempty"`
}

// NewNamespaceID returns a namespaced id. An empty namespace means the default.
func NewNamespaceID(name, description, namespace string) *NamespaceID {
	return &NamespaceID{NormalID: NormalID{Name: name, Description: description}, Namespace: namespace}
}

// NamespaceOrDefault returns the namespace, falling back to DefaultNamespace.
func (n *NamespaceID) NamespaceOrDefault() string {
	if n.Namespace == "" {
		return DefaultNamespace
	}
	return n.Namespace
}

// FullName returns "namespace:name".
func (n *NamespaceID) FullName() string {
	return n.NamespaceOrDefault() + ":" + n.Name
}

// BlockState is one property a block accepts in its state list.
type BlockState struct {
	Key         string   `yaml:"key" json:"key"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Values      []string `yaml:"values" json:"values"`
}

// HasValue reports whether v is an allowed value. An empty value list accepts
// anything.
func (s BlockState) HasValue(v string) bool {
	if len(s.Values) == 0 {
		return true
	}
	for _, allowed := range s.Values {
		if allowed == v {
			return true
		}
	}
	return false
}

// BlockID is a namespaced block id with its state properties.
type BlockID struct {
	NamespaceID `yaml:",inline"`

	States []BlockState `yaml:"states,omitempty" json:"states,omitempty"`
}

// State returns the state with the given key.
func (b *BlockID) State(key string) (BlockState, bool) {
	for _, s := range b.States {
		if s.Key == key {
			return s, true
		}
	}
	return BlockState{}, false
}

// ItemID is a namespaced item id with its data value range.
type ItemID struct {
	NamespaceID `yaml:",inline"`

	// Max is the largest data value; nil means unbounded.
	Max *int `yaml:"max,omitempty" json:"max,omitempty"`

	// Descriptions names individual data values, indexed by value.
	Descriptions []string `yaml:"descriptions,omitempty" json:"descriptions,omitempty"`
}
