package highlight_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/cmdassist/pkg/highlight"
	"github.com/yaklabco/cmdassist/pkg/pack"
	"github.com/yaklabco/cmdassist/pkg/parser"
)

func run(t *testing.T, input string) *highlight.Result {
	t.Helper()

	root := parser.ParseString(pack.MustBuiltin().Graph, input)
	return highlight.Highlight(root)
}

func TestHighlight_SayHelloWorld(t *testing.T) {
	t.Parallel()

	r := run(t, "say hello world")
	assert.Zero(t, r.Conflicts)
	assert.Equal(t, []highlight.Run{
		{Start: 0, End: 3, Category: highlight.Command},
		{Start: 3, End: 4, Category: highlight.Space},
		{Start: 4, End: 15, Category: highlight.String},
	}, r.Runs())
}

func TestHighlight_Selector(t *testing.T) {
	t.Parallel()

	input := "kill @e[type=zombie,r=5]"
	r := run(t, input)
	require.Len(t, r.Categories, len(input))
	assert.Zero(t, r.Conflicts)

	want := map[int]highlight.Category{
		0:  highlight.Command,
		4:  highlight.Space,
		5:  highlight.TargetSelector,
		6:  highlight.TargetSelector,
		7:  highlight.Bracket1,
		8:  highlight.ID,
		12: highlight.Symbol,
		13: highlight.ID,
		19: highlight.Symbol,
		20: highlight.ID,
		22: highlight.Float,
		23: highlight.Bracket1,
	}
	for offset, c := range want {
		assert.Equal(t, c, r.At(offset), "offset %d", offset)
	}
}

func TestHighlight_BracketLevels(t *testing.T) {
	t.Parallel()

	input := `tellraw @a {"rawtext":[{"text":"hi"}]}`
	r := run(t, input)
	assert.Zero(t, r.Conflicts)

	var levels []highlight.Category
	for i, c := range r.Categories {
		if c.IsBracket() {
			levels = append(levels, c)
			assert.Contains(t, "[]{}", string(input[i]))
		}
	}
	assert.Equal(t, []highlight.Category{
		highlight.Bracket1, highlight.Bracket2, highlight.Bracket3,
		highlight.Bracket3, highlight.Bracket2, highlight.Bracket1,
	}, levels)
}

func TestHighlight_Complete(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"say hello world",
		"/kill @e[type=zombie,r=5]",
		"give @p wool 2 3",
		"tp @s ~ ~1 ~",
		"tp @p @e[c=1]",
		"gamemode creative @a",
		"setblock 1 2 3 stone[stone_type=granite] keep",
		"time add 100t",
		"xp 5L @p",
		"weather rain 600",
		"execute @a ~ ~ ~ say hi",
		`tellraw @a {"rawtext":[{"text":"hi"},{"selector":"@p"}]}`,
		"say one\nkill @e",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			t.Parallel()

			r := run(t, input)
			assert.Zero(t, r.Conflicts)
			for i, c := range r.Categories {
				assert.NotEqual(t, highlight.Unknown, c, "offset %d of %q", i, input)
			}
		})
	}
}

func TestHighlight_ExcessStaysUnknown(t *testing.T) {
	t.Parallel()

	r := run(t, "kill @e extra")
	assert.Equal(t, highlight.Unknown, r.At(8))
	assert.Equal(t, highlight.Space, r.At(7))
	assert.Equal(t, highlight.Unknown, r.At(100))
}

func TestCategory_String(t *testing.T) {
	t.Parallel()

	assert.Len(t, highlight.Categories(), 16)
	assert.Equal(t, "target-selector", highlight.TargetSelector.String())
	assert.Equal(t, "category(99)", highlight.Category(99).String())
	assert.True(t, highlight.Bracket2.IsBracket())
	assert.False(t, highlight.Symbol.IsBracket())
}
