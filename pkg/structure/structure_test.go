package structure_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/cmdassist/pkg/pack"
	"github.com/yaklabco/cmdassist/pkg/parser"
	"github.com/yaklabco/cmdassist/pkg/structure"
)

func TestStructure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{input: "", want: "<command-name>"},
		{input: "sya hi", want: "<command-name>"},
		{input: "say hello world", want: "<command-name> <payload>"},
		{input: "kill", want: "<command-name> [victim]"},
		{input: "kill @e", want: "<command-name> [victim]"},
		{input: "give @p", want: "<command-name> <player> <item>"},
		{input: "give @p wool 2", want: "<command-name> <player> <item>"},
		{input: "tp 1 2 3", want: "<command-name> <position>"},
		{input: "tp @p 1 2 3", want: "<command-name> <victim> <position>"},
		{input: "tp @p @s", want: "<command-name> <victim> <destination>"},
		{input: "gamemode creative", want: "<command-name> creative [player]"},
		{input: "gamemode xyz", want: "<command-name> <mode> [player]"},
		{input: "setblock 1 2 3 stone", want: "<command-name> <position> <block> [mode]"},
		{input: "time add 100t", want: "<command-name> add <amount>"},
		{input: "say one\nkill @e", want: "<command-name> <payload>\n<command-name> [victim]"},
	}
	g := pack.MustBuiltin().Graph
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			root := parser.ParseString(g, tt.input)
			assert.Equal(t, tt.want, structure.Structure(g, root))
		})
	}
}

func TestParamHint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		index int
		want  string
	}{
		{input: "kill", index: 2, want: "command name"},
		{input: "kill ", index: 5, want: "entities to act on"},
		{input: "say hello", index: 9, want: "text to broadcast"},
		{input: "give @p wo", index: 10, want: "item to give"},
		{input: "gamemode cr", index: 11, want: "game mode"},
		{input: "tp @p 1 2 3", index: 7, want: "x y z coordinates"},
	}
	g := pack.MustBuiltin().Graph
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			root := parser.ParseString(g, tt.input)
			assert.Equal(t, tt.want, structure.ParamHint(root, tt.index))
		})
	}
}

func TestBuilder(t *testing.T) {
	t.Parallel()

	var b structure.Builder
	assert.Empty(t, b.String())

	b.Param("a", false)
	b.Param("b", true)
	b.Literal("c")
	b.NewLine()
	b.Param("d", false)
	assert.Equal(t, "<a> [b] c\n<d>", b.String())
}
