package pack

import (
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/cmdassist/pkg/resource"
)

// File is the on-disk layout of a pack.
type File struct {
	Manifest     Manifest             `yaml:"manifest"`
	NormalIDs    map[string][]IDSpec  `yaml:"normalIds"`
	NamespaceIDs map[string][]IDSpec  `yaml:"namespaceIds"`
	Blocks       []BlockSpec          `yaml:"blocks"`
	Items        []ItemSpec           `yaml:"items"`
	Nodes        map[string]*NodeSpec `yaml:"nodes"`
	JSON         map[string]*NodeSpec `yaml:"json"`
	Commands     []CommandSpec        `yaml:"commands"`
}

// IDSpec is one identifier table entry.
type IDSpec struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Namespace   string `yaml:"namespace"`
}

// UnmarshalYAML accepts a bare name as shorthand.
func (s *IDSpec) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		s.Name = value.Value
		return nil
	}
	type plain IDSpec
	return value.Decode((*plain)(s))
}

func (s IDSpec) namespaceID() resource.NamespaceID {
	return resource.NamespaceID{
		NormalID:  resource.NormalID{Name: s.Name, Description: s.Description},
		Namespace: s.Namespace,
	}
}

// BlockSpec is a block with its state properties.
type BlockSpec struct {
	ID IDSpec `yaml:",inline"`

	States []StateSpec `yaml:"states"`
}

// StateSpec is one block state property.
type StateSpec struct {
	Key         string   `yaml:"key"`
	Description string   `yaml:"description"`
	Values      []string `yaml:"values"`
}

// ItemSpec is an item with its data values.
type ItemSpec struct {
	ID IDSpec `yaml:",inline"`

	Max          *int     `yaml:"max"`
	Descriptions []string `yaml:"descriptions"`
}

// CommandSpec is the grammar of one command.
type CommandSpec struct {
	Names       []string    `yaml:"names"`
	Description string      `yaml:"description"`
	Start       []*NodeSpec `yaml:"start"`
}

// NodeSpec describes one grammar node. Kind names are those of
// grammar.Kind.String. A bare scalar is a text literal.
type NodeSpec struct {
	Kind        string      `yaml:"kind"`
	ID          string      `yaml:"id"`
	Description string      `yaml:"description"`
	Optional    bool        `yaml:"optional"`
	Children    []*NodeSpec `yaml:"children"`
	Inner       *NodeSpec   `yaml:"inner"`
	Next        []*NodeSpec `yaml:"next"`
	Literal     string      `yaml:"literal"`
	Table       string      `yaml:"table"`
	Min         *float64    `yaml:"min"`
	Max         *float64    `yaml:"max"`
	Symbol      string      `yaml:"symbol"`
	Open        string      `yaml:"open"`
	Close       string      `yaml:"close"`
	Separator   string      `yaml:"separator"`
	Entries     []EntrySpec `yaml:"entries"`
	Fallback    *NodeSpec   `yaml:"fallback"`

	CanContainSpace bool `yaml:"canContainSpace"`
	IgnoreLater     bool `yaml:"ignoreLater"`
	AllowMissing    bool `yaml:"allowMissing"`

	// Ref names a JSON element for the json kind.
	Ref string `yaml:"ref"`

	// Use refers to a node of the nodes section instead of describing one.
	Use string `yaml:"use"`
}

// UnmarshalYAML accepts a bare scalar as a text literal.
func (n *NodeSpec) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		*n = NodeSpec{Kind: "text", Literal: value.Value}
		return nil
	}
	type plain NodeSpec
	return value.Decode((*plain)(n))
}

// EntrySpec is one key of an equal-entry node.
type EntrySpec struct {
	Key         string    `yaml:"key"`
	Description string    `yaml:"description"`
	Value       *NodeSpec `yaml:"value"`
	CanUseNot   bool      `yaml:"canUseNot"`
	Repeatable  bool      `yaml:"repeatable"`
}
