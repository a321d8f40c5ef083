package ast_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/cmdassist/pkg/ast"
	"github.com/yaklabco/cmdassist/pkg/diag"
	"github.com/yaklabco/cmdassist/pkg/grammar"
	"github.com/yaklabco/cmdassist/pkg/lexer"
)

// sample builds the tree of "kill @e" with a discarded attempt and a
// trailing separator that is missing its next member:
//
//	and
//	├── text "kill"
//	├── separator
//	├── or (chosen 1)
//	│   ├── integer (discarded, type error)
//	│   └── selector "@e"
//	└── separator at end (incomplete)
func sample(t *testing.T) (*ast.Node, map[string]*ast.Node) {
	t.Helper()

	in := lexer.Tokenize("kill @e ")
	require.Len(t, in.Tokens, 5)

	and := &grammar.Node{Kind: grammar.KindAnd, ID: "kill"}
	text := &grammar.Node{Kind: grammar.KindText, ID: "command"}
	or := &grammar.Node{Kind: grammar.KindOr, ID: "target"}
	integer := &grammar.Node{Kind: grammar.KindInteger, ID: "count"}
	selector := &grammar.Node{Kind: grammar.KindTargetSelector, ID: "victim"}

	name := ast.New(text, lexer.NewSpan(in, 0, 1))
	sep := ast.NewSeparator(lexer.NewSpan(in, 1, 2), nil)
	bad := ast.NewError(integer, lexer.NewSpan(in, 2, 2), diag.New(diag.TypeError, 5, 5, "expected an integer"))
	bad.Discarded = true
	sel := ast.New(selector, lexer.NewSpan(in, 2, 4))
	alt := ast.New(or, lexer.NewSpan(in, 2, 4), bad, sel)
	alt.Chosen = 1
	tail := ast.NewSeparator(lexer.NewSpan(in, 4, 5), diag.New(diag.Incomplete, 7, 8, "expected more"))
	root := ast.New(and, lexer.NewSpan(in, 0, 5), name, sep, alt, tail)

	return root, map[string]*ast.Node{
		"name": name, "sep": sep, "bad": bad, "sel": sel, "alt": alt, "tail": tail,
	}
}

func TestNode_Accessors(t *testing.T) {
	t.Parallel()

	root, nodes := sample(t)

	assert.Equal(t, grammar.KindAnd, root.Kind())
	assert.Equal(t, "kill", root.ID())
	assert.Equal(t, "kill @e ", root.Text())
	assert.True(t, root.Failed, "failure propagates from the live separator child")

	sep := nodes["sep"]
	assert.True(t, sep.Separator)
	assert.Equal(t, grammar.KindInvalid, sep.Kind())
	assert.Empty(t, sep.ID())
	assert.False(t, sep.Failed)

	alt := nodes["alt"]
	assert.Same(t, nodes["sel"], alt.ChosenChild())
	assert.Equal(t, []*ast.Node{nodes["sel"]}, alt.Live())
	assert.False(t, alt.Failed, "discarded attempts do not fail their parent")
	assert.Nil(t, nodes["sel"].ChosenChild())

	assert.Same(t, nodes["name"], root.Child(nodes["name"].Grammar))
	assert.Nil(t, alt.Child(nodes["bad"].Grammar))
}

func TestNode_Errors(t *testing.T) {
	t.Parallel()

	root, nodes := sample(t)

	first := root.FirstError()
	require.NotNil(t, first)
	assert.Equal(t, diag.Incomplete, first.Level)
	assert.True(t, root.IsAllSpaceError())

	assert.Equal(t, []*diag.Diagnostic{first}, root.Diagnostics())
	assert.Nil(t, nodes["sel"].FirstError())
	assert.False(t, nodes["sel"].IsAllSpaceError())

	w := ast.New(nodes["sel"].Grammar, nodes["sel"].Span)
	w.AddError(diag.New(diag.Warning, 5, 7, "deprecated"))
	assert.False(t, w.Failed, "warnings do not fail a node")
	assert.Nil(t, w.FirstError())
	assert.Len(t, w.Diagnostics(), 1)
}

func TestWalk(t *testing.T) {
	t.Parallel()

	root, _ := sample(t)

	var live, all []string
	require.NoError(t, ast.Walk(root, func(n *ast.Node) error {
		live = append(live, n.ID())
		return nil
	}))
	require.NoError(t, ast.WalkAll(root, func(n *ast.Node) error {
		all = append(all, n.ID())
		return nil
	}))
	assert.Equal(t, []string{"kill", "command", "", "target", "victim", ""}, live)
	assert.Equal(t, []string{"kill", "command", "", "target", "count", "victim", ""}, all)

	stop := errors.New("stop")
	visited := 0
	err := ast.Walk(root, func(*ast.Node) error {
		visited++
		if visited == 2 {
			return stop
		}
		return nil
	})
	require.ErrorIs(t, err, stop)
	assert.Equal(t, 2, visited)

	require.NoError(t, ast.Walk(nil, func(*ast.Node) error { return stop }))
}

func TestWalkWithContext(t *testing.T) {
	t.Parallel()

	root, _ := sample(t)

	var events []string
	require.NoError(t, ast.WalkWithContext(root,
		func(n *ast.Node) error {
			if n.Kind() == grammar.KindOr {
				events = append(events, "enter "+n.ID())
			}
			return nil
		},
		func(n *ast.Node) error {
			if n.Kind() != grammar.KindInvalid {
				events = append(events, "leave "+n.ID())
			}
			return nil
		},
	))
	assert.Equal(t, []string{"leave command", "enter target", "leave victim", "leave target", "leave kill"}, events)

	require.NoError(t, ast.WalkWithContext(root, nil, nil))
}

func TestFind(t *testing.T) {
	t.Parallel()

	root, nodes := sample(t)

	seps := ast.FindAll(root, func(n *ast.Node) bool { return n.Separator })
	assert.Equal(t, []*ast.Node{nodes["sep"], nodes["tail"]}, seps)

	assert.Same(t, nodes["sel"], ast.FindFirst(root, func(n *ast.Node) bool {
		return n.Kind() == grammar.KindTargetSelector
	}))
	assert.Nil(t, ast.FindFirst(root, func(n *ast.Node) bool {
		return n.Kind() == grammar.KindInteger
	}), "discarded attempts are not searched")
}
