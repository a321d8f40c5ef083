package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/cmdassist/pkg/diag"
	"github.com/yaklabco/cmdassist/pkg/grammar"
	"github.com/yaklabco/cmdassist/pkg/lexer"
	"github.com/yaklabco/cmdassist/pkg/parser"
)

func TestReader_PushRestore(t *testing.T) {
	t.Parallel()

	r := parser.NewReader(lexer.Tokenize("say  hello"))
	r.Push()
	require.True(t, r.Next())
	assert.Equal(t, 2, r.SkipSpaces())
	tok, ok := r.Read()
	require.True(t, ok)
	assert.Equal(t, "hello", tok.Text)
	assert.False(t, r.Ready())
	assert.Equal(t, 1, r.Depth())

	r.Restore()
	assert.Equal(t, 0, r.Index())
	assert.Equal(t, 0, r.Depth())

	r.Push()
	r.Next()
	span := r.Collect()
	assert.Equal(t, "say", span.String())
	assert.Equal(t, 0, r.Depth())
}

func TestReader_SkipToLineBreak(t *testing.T) {
	t.Parallel()

	r := parser.NewReader(lexer.Tokenize("a b\nc"))
	r.SkipToLineBreak()
	assert.True(t, r.AtLineEnd())
	tok, ok := r.Peek()
	require.True(t, ok)
	assert.Equal(t, lexer.TokLineBreak, tok.Kind)
}

func TestReader_ReadSymbol(t *testing.T) {
	t.Parallel()

	g := grammar.SymbolNode('=')

	tests := []struct {
		name   string
		input  string
		failed bool
		level  diag.Level
		text   string
	}{
		{name: "match", input: "=", text: "="},
		{name: "leading spaces", input: "  =", text: "="},
		{name: "end of input", input: "", failed: true, level: diag.Incomplete},
		{name: "wrong token", input: "x", failed: true, level: diag.TypeError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			n := parser.NewReader(lexer.Tokenize(tt.input)).ReadSymbol(g, '=')
			assert.Equal(t, tt.failed, n.Failed)
			if tt.failed {
				require.Len(t, n.Errors, 1)
				assert.Equal(t, tt.level, n.Errors[0].Level)
				assert.True(t, n.Span.IsEmpty())
				return
			}
			assert.Equal(t, tt.text, n.Text())
		})
	}
}

func TestReader_ReadSimpleCheck(t *testing.T) {
	t.Parallel()

	g := &grammar.Node{Kind: grammar.KindInteger, ID: "count"}
	check := func(tok lexer.Token) (diag.Level, string) {
		if tok.Text == "0" {
			return diag.Content, "zero is not allowed"
		}
		return 0, ""
	}

	n := parser.NewReader(lexer.Tokenize("0")).ReadNumber(g, "count", check)
	require.True(t, n.Failed)
	assert.Equal(t, "0", n.Text(), "a rejected token is still consumed")
	assert.Equal(t, "zero is not allowed", n.Errors[0].Message)

	n = parser.NewReader(lexer.Tokenize("word")).ReadNumber(g, "count", check)
	require.True(t, n.Failed)
	assert.True(t, n.Span.IsEmpty())
	assert.Equal(t, "expected count", n.Errors[0].Message)
}

func TestReader_ReadUntilSpace(t *testing.T) {
	t.Parallel()

	n := parser.NewReader(lexer.Tokenize(" a:b=c d")).ReadUntilSpace(nil, "value")
	assert.False(t, n.Failed)
	assert.Equal(t, "a:b=c", n.Text())
}
