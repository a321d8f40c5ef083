package parser_test

import (
	"testing"

	"github.com/yaklabco/cmdassist/pkg/ast"
	"github.com/yaklabco/cmdassist/pkg/parser"
)

func FuzzParse(f *testing.F) {
	g := testGraph(f)
	for _, seed := range []string{
		"say hello world",
		"kill @e[type=zombie,r=5]",
		"give @p minecraft:stone 64",
		"tp ~ ~1 ~-2",
		"setblock 1 2 3 stone[stone_type=granite]",
		`tellraw @a {"rawtext":[{"text":"hi"}]}`,
		"time add 5d\nkill",
		"kill @e[",
		"",
	} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		root := parser.ParseString(g, input)
		if root == nil {
			t.Fatalf("nil tree for %q", input)
		}
		if root.Span.StartOffset != 0 || root.Span.EndOffset != len(input) {
			t.Fatalf("root span [%d,%d) for %q", root.Span.StartOffset, root.Span.EndOffset, input)
		}
		//nolint:errcheck // the callback never fails
		ast.WalkAll(root, func(n *ast.Node) error {
			if n.Span.StartOffset > n.Span.EndOffset {
				t.Errorf("inverted span [%d,%d) in %q", n.Span.StartOffset, n.Span.EndOffset, input)
			}
			for _, d := range n.Errors {
				if d.Start > d.End || d.End > len(input) {
					t.Errorf("diagnostic [%d,%d) outside %q", d.Start, d.End, input)
				}
			}
			return nil
		})
	})
}

func BenchmarkParse(b *testing.B) {
	g := testGraph(b)
	inputs := []string{
		"say hello world",
		"kill @a[scores={kills=1..5,deaths=..2},tag=a]",
		"give @p minecraft:stone 64",
		`tellraw @a {"rawtext":[{"text":"hi"},{"text":"there"}]}`,
		"tp @p 1 2 3\nkill @e[type=zombie]\ngive @p wool 1 15",
	}

	b.ReportAllocs()
	for b.Loop() {
		for _, input := range inputs {
			parser.ParseString(g, input)
		}
	}
}
