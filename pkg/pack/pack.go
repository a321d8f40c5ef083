// Package pack loads command packs: the identifier tables and command
// grammars of one game version, written in YAML or JSON.
package pack

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/cmdassist/pkg/grammar"
	"github.com/yaklabco/cmdassist/pkg/resource"
)

// ErrInvalidPack is wrapped by every load error.
var ErrInvalidPack = errors.New("invalid pack")

// Table names the loader creates besides the normalIds and namespaceIds
// sections.
const (
	TableBlocks   = "blocks"
	TableItems    = "items"
	TableEntities = "entities"
)

// Manifest describes a pack.
type Manifest struct {
	Name        string `yaml:"name" json:"name"`
	Version     string `yaml:"version" json:"version"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Pack is a loaded, immutable command pack.
type Pack struct {
	Manifest Manifest
	Graph    *grammar.Graph

	tables map[string]*resource.Table
}

// Table returns the identifier table registered under name.
func (p *Pack) Table(name string) (*resource.Table, bool) {
	t, ok := p.tables[name]
	return t, ok
}

// TableNames returns the table names in sorted order.
func (p *Pack) TableNames() []string {
	names := make([]string, 0, len(p.tables))
	for name := range p.tables {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Load reads a pack file. The format is chosen by extension: .yaml, .yml
// or .json.
func Load(path string) (*Pack, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml", ".json":
	default:
		return nil, fmt.Errorf("%w: %s: unsupported extension %q", ErrInvalidPack, path, ext)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pack: %w", err)
	}

	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Parse decodes and compiles a pack. JSON input is accepted as YAML.
func Parse(data []byte) (*Pack, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrInvalidPack, err)
	}
	return Compile(&f)
}

// Compile builds the tables and grammar described by f.
func Compile(f *File) (*Pack, error) {
	if len(f.Commands) == 0 {
		return nil, fmt.Errorf("%w: no commands", ErrInvalidPack)
	}

	tables, err := f.tables()
	if err != nil {
		return nil, err
	}

	c := newCompiler(tables, f.Nodes)
	g, err := c.compile(f)
	if err != nil {
		return nil, err
	}

	return &Pack{Manifest: f.Manifest, Graph: g, tables: tables}, nil
}

func (f *File) tables() (map[string]*resource.Table, error) {
	tables := make(map[string]*resource.Table)
	var errs []error
	add := func(name string, t *resource.Table) {
		if _, dup := tables[name]; dup {
			errs = append(errs, fmt.Errorf("%w: duplicate table %q", ErrInvalidPack, name))
			return
		}
		tables[name] = t
	}

	for _, name := range sortedKeys(f.NormalIDs) {
		specs := f.NormalIDs[name]
		entries := make([]resource.Entry, 0, len(specs))
		for _, s := range specs {
			entries = append(entries, resource.NewNormalID(s.Name, s.Description))
		}
		add(name, resource.NewTable(name, entries...))
	}
	for _, name := range sortedKeys(f.NamespaceIDs) {
		specs := f.NamespaceIDs[name]
		entries := make([]resource.Entry, 0, len(specs))
		for _, s := range specs {
			entries = append(entries, resource.NewNamespaceID(s.Name, s.Description, s.Namespace))
		}
		add(name, resource.NewTable(name, entries...))
	}

	if len(f.Blocks) > 0 {
		entries := make([]resource.Entry, 0, len(f.Blocks))
		for _, s := range f.Blocks {
			block := &resource.BlockID{NamespaceID: s.ID.namespaceID()}
			for _, st := range s.States {
				block.States = append(block.States, resource.BlockState{Key: st.Key, Description: st.Description, Values: st.Values})
			}
			entries = append(entries, block)
		}
		add(TableBlocks, resource.NewTable(TableBlocks, entries...))
	}

	if len(f.Items) > 0 {
		entries := make([]resource.Entry, 0, len(f.Items))
		for _, s := range f.Items {
			entries = append(entries, &resource.ItemID{
				NamespaceID:  s.ID.namespaceID(),
				Max:          s.Max,
				Descriptions: s.Descriptions,
			})
		}
		add(TableItems, resource.NewTable(TableItems, entries...))
	}

	return tables, errors.Join(errs...)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
