package grammar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/cmdassist/pkg/grammar"
	"github.com/yaklabco/cmdassist/pkg/resource"
)

func TestKind_RoundTrip(t *testing.T) {
	t.Parallel()

	kinds := grammar.Kinds()
	assert.Len(t, kinds, 38)
	for _, k := range kinds {
		got, ok := grammar.ParseKind(k.String())
		require.True(t, ok, k.String())
		assert.Equal(t, k, got)
	}

	_, ok := grammar.ParseKind("nope")
	assert.False(t, ok)
	assert.True(t, grammar.KindJSONNull.IsJSON())
	assert.False(t, grammar.KindString.IsJSON())
}

func TestBuild(t *testing.T) {
	t.Parallel()

	b := grammar.NewBuilder()
	say := b.PerCommand([]string{"say"}, "Broadcast", b.Message("message", "text"))
	tp := b.PerCommand([]string{"tp", "teleport"}, "Teleport", b.Position("destination", "where"))
	g, err := b.Build(b.Command("command-name", say, tp))
	require.NoError(t, err)

	assert.Equal(t, grammar.KindCommand, g.Root().Kind)
	assert.ElementsMatch(t, []string{"say", "tp", "teleport"}, g.Commands().Names())

	pc, ok := g.PerCommand("teleport")
	require.True(t, ok)
	assert.Equal(t, "tp", pc.ID)

	_, ok = g.PerCommand("kill")
	assert.False(t, ok)
	assert.Nil(t, g.Node(grammar.NoNode))
	assert.Nil(t, g.Node(grammar.NodeID(g.Len()+1)))
}

func TestBuild_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		build func(b *grammar.Builder) grammar.NodeID
	}{
		{
			name: "root is not a command",
			build: func(b *grammar.Builder) grammar.NodeID {
				return b.Text("say", "")
			},
		},
		{
			name: "duplicate command name",
			build: func(b *grammar.Builder) grammar.NodeID {
				return b.Command("name",
					b.PerCommand([]string{"say"}, "", b.Any("rest", "")),
					b.PerCommand([]string{"say"}, "", b.Any("rest", "")))
			},
		},
		{
			name: "missing reference",
			build: func(b *grammar.Builder) grammar.NodeID {
				return b.Command("name", b.PerCommand([]string{"tellraw"}, "", b.JSONRef("json", "", "rawtext")))
			},
		},
		{
			name: "optional without inner",
			build: func(b *grammar.Builder) grammar.NodeID {
				return b.Command("name", b.PerCommand([]string{"x"}, "", b.Add(grammar.Node{Kind: grammar.KindOptional})))
			},
		},
		{
			name: "dangling child",
			build: func(b *grammar.Builder) grammar.NodeID {
				return b.Command("name", b.PerCommand([]string{"x"}, "", b.And("and", 999)))
			},
		},
		{
			name: "min above max",
			build: func(b *grammar.Builder) grammar.NodeID {
				return b.Command("name", b.PerCommand([]string{"x"}, "", b.IntegerIn("n", "", 5, 1)))
			},
		},
		{
			name: "id without table",
			build: func(b *grammar.Builder) grammar.NodeID {
				return b.Command("name", b.PerCommand([]string{"x"}, "", b.NormalID("id", "", nil)))
			},
		},
		{
			name: "negative item data maximum",
			build: func(b *grammar.Builder) grammar.NodeID {
				limit := -1
				items := resource.NewTable("items", &resource.ItemID{
					NamespaceID: resource.NamespaceID{NormalID: resource.NormalID{Name: "wool"}},
					Max:         &limit,
				})
				return b.Command("name", b.PerCommand([]string{"give"}, "", b.Item("item", "", items)))
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b := grammar.NewBuilder()
			g, err := b.Build(tt.build(b))
			require.ErrorIs(t, err, grammar.ErrInvalidGraph)
			assert.Nil(t, g)
		})
	}
}

func TestBuild_Cycles(t *testing.T) {
	t.Parallel()

	b := grammar.NewBuilder()
	word := b.String("word", "")
	// The chain refers back to itself through Next.
	chain := b.Wrapped(word)
	lf := b.LF()
	b.Node(chain).Next = []grammar.NodeID{chain, lf}

	g, err := b.Build(b.Command("name", b.PerCommand([]string{"echo"}, "", chain)))
	require.NoError(t, err)
	n := g.Node(chain)
	require.NotNil(t, n)
	assert.Equal(t, chain, n.Next[0])
}

func TestBuild_ItemData(t *testing.T) {
	t.Parallel()

	limit := 3
	items := resource.NewTable("items",
		&resource.ItemID{NamespaceID: resource.NamespaceID{NormalID: resource.NormalID{Name: "wool"}}, Max: &limit},
		&resource.ItemID{NamespaceID: resource.NamespaceID{NormalID: resource.NormalID{Name: "dye"}}, Descriptions: []string{"black", "red"}},
		&resource.ItemID{NamespaceID: resource.NamespaceID{NormalID: resource.NormalID{Name: "stone"}}},
	)

	b := grammar.NewBuilder()
	item := b.Item("item", "", items)
	g, err := b.Build(b.Command("name", b.PerCommand([]string{"give"}, "", item)))
	require.NoError(t, err)

	n := g.Node(item)
	require.Len(t, n.ItemData, 2)

	wool := g.Node(n.ItemData["wool"])
	assert.Equal(t, grammar.KindInteger, wool.Kind)
	require.NotNil(t, wool.Max)
	assert.InDelta(t, 3.0, *wool.Max, 0)

	dye := g.Node(n.ItemData["dye"])
	assert.Equal(t, grammar.KindOr, dye.Kind)
	require.Len(t, dye.Children, 3)
	assert.Equal(t, "1", g.Node(dye.Children[1]).Literal)
	assert.Equal(t, "red", g.Node(dye.Children[1]).Description)
}

func TestSymbolNode(t *testing.T) {
	t.Parallel()

	n := grammar.SymbolNode('[')
	assert.Equal(t, grammar.KindSingleSymbol, n.Kind)
	assert.Equal(t, byte('['), n.Symbol)
	assert.Same(t, n, grammar.SymbolNode('['))
}
