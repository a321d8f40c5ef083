package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/yaklabco/cmdassist/internal/logging"
	"github.com/yaklabco/cmdassist/pkg/diag"
	"github.com/yaklabco/cmdassist/pkg/linter"
	"github.com/yaklabco/cmdassist/pkg/pack"
)

const testURI = protocol.DocumentUri("file:///tmp/test.mcfunction")

func pos(line, char int) protocol.Position {
	return protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(char)}
}

type notification struct {
	method string
	params any
}

// recorder returns a context collecting notifications.
func recorder() (*glsp.Context, *[]notification) {
	var sent []notification
	ctx := &glsp.Context{
		Notify: func(method string, params any) {
			sent = append(sent, notification{method: method, params: params})
		},
	}
	return ctx, &sent
}

func newTestServer(t *testing.T) *Server {
	t.Helper()

	s, err := New(Options{
		Pack:    pack.MustBuiltin(),
		Lint:    linter.DefaultOptions(),
		Version: "test",
		Logger:  logging.Discard(),
	})
	require.NoError(t, err)
	return s
}

func open(t *testing.T, s *Server, ctx *glsp.Context, text string) {
	t.Helper()

	require.NoError(t, s.didOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{
			URI:        testURI,
			LanguageID: "mcfunction",
			Version:    1,
			Text:       text,
		},
	}))
}

func lastDiagnostics(t *testing.T, sent []notification) protocol.PublishDiagnosticsParams {
	t.Helper()

	require.NotEmpty(t, sent)
	last := sent[len(sent)-1]
	assert.Equal(t, protocol.ServerTextDocumentPublishDiagnostics, last.method)
	params, ok := last.params.(protocol.PublishDiagnosticsParams)
	require.True(t, ok)
	return params
}

func TestLineIndex(t *testing.T) {
	t.Parallel()

	// "é" is two bytes and one UTF-16 unit; "😀" is four bytes and two units.
	text := "say é😀x\r\nkill\n"
	x := newLineIndex(text)

	assert.Equal(t, 3, x.lineCount())
	assert.Equal(t, "say é😀x", x.line(0))
	assert.Equal(t, "kill", x.line(1))
	assert.Empty(t, x.line(2))
	assert.Empty(t, x.line(7))

	tests := []struct {
		name   string
		pos    protocol.Position
		offset int
	}{
		{name: "start", pos: pos(0, 0), offset: 0},
		{name: "before two-byte rune", pos: pos(0, 4), offset: 4},
		{name: "after two-byte rune", pos: pos(0, 5), offset: 6},
		{name: "after surrogate pair", pos: pos(0, 7), offset: 10},
		{name: "line end", pos: pos(0, 8), offset: 11},
		{name: "past line end", pos: pos(0, 40), offset: 11},
		{name: "second line", pos: pos(1, 2), offset: 15},
		{name: "past last line", pos: pos(9, 0), offset: len(text)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.offset, x.offset(tt.pos))
		})
	}

	assert.Equal(t, pos(0, 5), x.position(6))
	assert.Equal(t, pos(0, 7), x.position(10))
	assert.Equal(t, pos(0, 5), x.position(8), "inside a rune")
	assert.Equal(t, pos(1, 0), x.position(13))
	assert.Equal(t, pos(2, 0), x.position(len(text)+5))
	assert.Equal(t, protocol.Range{Start: pos(1, 0), End: pos(1, 4)}, x.rangeOf(13, 17))
}

func TestInitialize(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	res, err := s.initialize(nil, &protocol.InitializeParams{})
	require.NoError(t, err)

	result, ok := res.(protocol.InitializeResult)
	require.True(t, ok)
	assert.Equal(t, serverName, result.ServerInfo.Name)
	assert.Equal(t, "test", *result.ServerInfo.Version)
	require.NotNil(t, result.Capabilities.CompletionProvider)
	assert.Contains(t, result.Capabilities.CompletionProvider.TriggerCharacters, "@")
	assert.Equal(t, true, result.Capabilities.HoverProvider)

	syncOpts, ok := result.Capabilities.TextDocumentSync.(*protocol.TextDocumentSyncOptions)
	require.True(t, ok)
	assert.Equal(t, protocol.TextDocumentSyncKindIncremental, *syncOpts.Change)
}

func TestDidOpen_PublishesDiagnostics(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	ctx, sent := recorder()
	open(t, s, ctx, "# comment\nsay hi\nsya hi\n")

	params := lastDiagnostics(t, *sent)
	assert.Equal(t, testURI, params.URI)
	require.NotNil(t, params.Version)
	assert.Equal(t, protocol.UInteger(1), *params.Version)
	require.Len(t, params.Diagnostics, 1)

	d := params.Diagnostics[0]
	assert.Equal(t, protocol.Range{Start: pos(2, 0), End: pos(2, 3)}, d.Range)
	assert.Equal(t, protocol.DiagnosticSeverityError, *d.Severity)
	assert.Equal(t, diag.IDError.String(), d.Code.Value)
	assert.Contains(t, d.Message, `did you mean "say"?`)
	assert.Equal(t, source, *d.Source)
}

func TestDidChange(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	ctx, sent := recorder()
	open(t, s, ctx, "sya hi\n")
	require.Len(t, lastDiagnostics(t, *sent).Diagnostics, 1)

	// Fix the typo with a ranged edit.
	start, end := pos(0, 1), pos(0, 3)
	require.NoError(t, s.didChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: testURI},
			Version:                2,
		},
		ContentChanges: []any{
			protocol.TextDocumentContentChangeEvent{
				Range: &protocol.Range{Start: start, End: end},
				Text:  "ay",
			},
		},
	}))
	params := lastDiagnostics(t, *sent)
	assert.Empty(t, params.Diagnostics)
	assert.Equal(t, protocol.UInteger(2), *params.Version)
	assert.Equal(t, "say hi\n", s.docs[testURI].text())

	require.NoError(t, s.didChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: testURI},
			Version:                3,
		},
		ContentChanges: []any{
			protocol.TextDocumentContentChangeEventWhole{Text: "kill @e extra"},
		},
	}))
	params = lastDiagnostics(t, *sent)
	require.Len(t, params.Diagnostics, 1)
	assert.Equal(t, protocol.Range{Start: pos(0, 8), End: pos(0, 13)}, params.Diagnostics[0].Range)
}

func TestDidChange_Errors(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	ctx, _ := recorder()

	err := s.didChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: testURI},
		},
	})
	require.Error(t, err)

	open(t, s, ctx, "say hi")
	err = s.didChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: testURI},
		},
		ContentChanges: []any{"bogus"},
	})
	require.ErrorIs(t, err, errUnknownChange)
	assert.Equal(t, "say hi", s.docs[testURI].text())
}

func TestDidClose(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	ctx, sent := recorder()
	open(t, s, ctx, "sya hi")

	require.NoError(t, s.didClose(ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
	}))
	assert.Empty(t, lastDiagnostics(t, *sent).Diagnostics)
	assert.NotContains(t, s.docs, testURI)
}

func complete(t *testing.T, s *Server, p protocol.Position) []protocol.CompletionItem {
	t.Helper()

	res, err := s.completion(nil, &protocol.CompletionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
			Position:     p,
		},
	})
	require.NoError(t, err)
	list, ok := res.(protocol.CompletionList)
	require.True(t, ok)
	return list.Items
}

func TestCompletion(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	open(t, s, nil, "say hi\nki\n")

	items := complete(t, s, pos(1, 2))
	require.NotEmpty(t, items)

	var kill *protocol.CompletionItem
	for i := range items {
		if items[i].Label == "kill" {
			kill = &items[i]
		}
	}
	require.NotNil(t, kill)
	edit, ok := kill.TextEdit.(protocol.TextEdit)
	require.True(t, ok)
	assert.Equal(t, "kill", edit.NewText)
	assert.Equal(t, protocol.Range{Start: pos(1, 0), End: pos(1, 2)}, edit.Range)

	empty := complete(t, s, pos(5, 0))
	assert.Len(t, empty, pack.MustBuiltin().Graph.Commands().Len())
}

func TestCompletion_Space(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	open(t, s, nil, "kill")

	items := complete(t, s, pos(0, 4))
	require.NotEmpty(t, items)
	assert.Equal(t, "␣", items[0].Label)
	assert.Equal(t, "00000", *items[0].SortText)
	assert.Nil(t, items[0].FilterText)
	assert.Equal(t, protocol.CompletionItemKindOperator, *items[0].Kind)
}

func TestCompletion_UnknownDocument(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	res, err := s.completion(nil, &protocol.CompletionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
		},
	})
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestHover(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	open(t, s, nil, "\nkill ")

	hover, err := s.hover(nil, &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
			Position:     pos(1, 5),
		},
	})
	require.NoError(t, err)
	require.NotNil(t, hover)

	content, ok := hover.Contents.(protocol.MarkupContent)
	require.True(t, ok)
	assert.Equal(t, protocol.MarkupKindMarkdown, content.Kind)
	assert.Equal(t, "```\n<command-name> [victim]\n```\n\nentities to act on", content.Value)

	hover, err = s.hover(nil, &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
			Position:     pos(0, 0),
		},
	})
	require.NoError(t, err)
	assert.Nil(t, hover)
}

func TestShutdown(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	open(t, s, nil, "say hi")
	require.NoError(t, s.shutdown(nil))
	assert.Empty(t, s.docs)
}

func TestHoverText(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "```\n<command-name>\n```", hoverText("<command-name>", ""))
}
