package suggest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/cmdassist/pkg/ast"
	"github.com/yaklabco/cmdassist/pkg/grammar"
	"github.com/yaklabco/cmdassist/pkg/pack"
	"github.com/yaklabco/cmdassist/pkg/parser"
	"github.com/yaklabco/cmdassist/pkg/resource"
	"github.com/yaklabco/cmdassist/pkg/suggest"
)

func texts(sgs []suggest.Suggestion) []string {
	out := make([]string, 0, len(sgs))
	for _, s := range sgs {
		out = append(out, s.Text())
	}
	return out
}

func gather(t *testing.T, input string) *suggest.Suggestions {
	t.Helper()

	p := pack.MustBuiltin()
	root := parser.ParseString(p.Graph, input)
	return suggest.Gather(root, len(input))
}

func TestCollect_CommandNames(t *testing.T) {
	t.Parallel()

	p := pack.MustBuiltin()
	got := suggest.Collect(parser.ParseString(p.Graph, ""), 0)
	require.Len(t, got, p.Graph.Commands().Len())
	assert.Equal(t, "say", got[0].Text())
	for _, s := range got {
		assert.Equal(t, suggest.BucketLiteral, s.Bucket)
		assert.True(t, s.AddSpace, s.Text())
		assert.Equal(t, 0, s.Start)
		assert.Equal(t, 0, s.End)
	}
}

func TestCollect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		bucket suggest.Bucket
		want   []string
	}{
		{
			name:   "space after a complete name",
			input:  "kill",
			bucket: suggest.BucketSpace,
			want:   []string{" "},
		},
		{
			name:   "selector variables",
			input:  "kill ",
			bucket: suggest.BucketLiteral,
			want:   []string{"@a", "@e", "@p", "@r", "@s", "@initiator"},
		},
		{
			name:   "literal prefix",
			input:  "gamemode cr",
			bucket: suggest.BucketLiteral,
			want:   []string{"creative"},
		},
		{
			name:   "list punctuation",
			input:  "kill @e[r=5",
			bucket: suggest.BucketSymbol,
			want:   []string{",", "]"},
		},
		{
			name:   "state keys of the matched block",
			input:  "setblock ~ ~ ~ stone[",
			bucket: suggest.BucketID,
			want:   []string{"stone_type"},
		},
		{
			name:   "state values of the matched key",
			input:  "setblock ~ ~ ~ stone[stone_type=",
			bucket: suggest.BucketID,
			want:   []string{"stone", "granite", "granite_smooth", "diorite", "diorite_smooth", "andesite", "andesite_smooth"},
		},
		{
			name:   "state values of a quoted key",
			input:  `setblock ~ ~ ~ stone["stone_type"=`,
			bucket: suggest.BucketID,
			want:   []string{"stone", "granite", "granite_smooth", "diorite", "diorite_smooth", "andesite", "andesite_smooth"},
		},
		{
			name:   "prefix matches before substring matches",
			input:  "summon p",
			bucket: suggest.BucketID,
			want:   []string{"player", "pig", "creeper", "sheep", "npc"},
		},
		{
			name:   "namespaced names",
			input:  "summon minecraft:z",
			bucket: suggest.BucketID,
			want:   []string{"minecraft:zombie"},
		},
		{
			name:   "quoted json keys",
			input:  "tellraw @a {",
			bucket: suggest.BucketID,
			want:   []string{`"rawtext"`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := gather(t, tt.input)
			assert.Equal(t, tt.want, texts(got.Bucket(tt.bucket)))
		})
	}
}

func TestCollect_BucketOrder(t *testing.T) {
	t.Parallel()

	got := gather(t, "kill").All()
	require.Len(t, got, 2)
	assert.Equal(t, suggest.BucketSpace, got[0].Bucket)
	assert.Equal(t, "kill", got[1].Text())
}

func TestCollect_StateValuesAreTight(t *testing.T) {
	t.Parallel()

	for _, s := range gather(t, "setblock ~ ~ ~ stone[stone_type=").All() {
		assert.False(t, s.AddSpace, s.Text())
	}
}

func TestCollect_StateValueBooleans(t *testing.T) {
	t.Parallel()

	got := gather(t, "setblock ~ ~ ~ stone[stone_type=")
	assert.Equal(t, []string{"true", "false"}, texts(got.Bucket(suggest.BucketLiteral)))
}

func TestSuggestions_Dedup(t *testing.T) {
	t.Parallel()

	id := resource.NewNormalID("stone", "")
	s := suggest.NewSuggestions()
	assert.True(t, s.Add(suggest.Suggestion{Start: 0, End: 2, Bucket: suggest.BucketID, Content: id}))
	assert.False(t, s.Add(suggest.Suggestion{Start: 0, End: 2, Bucket: suggest.BucketID, Content: id}))
	assert.True(t, s.Add(suggest.Suggestion{Start: 1, End: 2, Bucket: suggest.BucketID, Content: id}))
	assert.True(t, s.Add(suggest.Suggestion{Start: 0, End: 2, Bucket: suggest.BucketID, Content: resource.NewNormalID("stone", "rock")}))
	assert.Equal(t, 3, s.Len())
	assert.Empty(t, s.Bucket(suggest.BucketSpace))
}

func TestCollect_SameLiteralFromTwoBranches(t *testing.T) {
	t.Parallel()

	b := grammar.NewBuilder()
	choice := b.Or("choice",
		b.And("number", b.Text("x", ""), b.Integer("n", "")),
		b.And("word", b.Text("x", ""), b.Text("y", "")))
	g, err := b.Build(b.Command("command-name", b.PerCommand([]string{"pick"}, "", choice)))
	require.NoError(t, err)

	got := suggest.Gather(parser.ParseString(g, "pick "), len("pick "))
	assert.Equal(t, []string{"x"}, texts(got.Bucket(suggest.BucketLiteral)))
	assert.Equal(t, 1, got.Len())
}

func TestBucket_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "space", suggest.BucketSpace.String())
	assert.Equal(t, "id", suggest.BucketID.String())
	assert.Equal(t, "unknown", suggest.Bucket(42).String())
}

func BenchmarkCollect(b *testing.B) {
	p := pack.MustBuiltin()
	inputs := []string{"", "give @p ", "kill @e[type=", "setblock ~ ~ ~ "}
	roots := make([]*ast.Node, 0, len(inputs))
	for _, input := range inputs {
		roots = append(roots, parser.ParseString(p.Graph, input))
	}

	b.ReportAllocs()
	for b.Loop() {
		for i, root := range roots {
			suggest.Collect(root, len(inputs[i]))
		}
	}
}
