// Package lsp serves diagnostics, completion and hover for command files
// over the Language Server Protocol.
package lsp

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	// Registers the commonlog backend used by the glsp server.
	_ "github.com/tliron/commonlog/simple"

	"github.com/yaklabco/cmdassist/internal/logging"
	"github.com/yaklabco/cmdassist/pkg/linter"
	"github.com/yaklabco/cmdassist/pkg/pack"
	"github.com/yaklabco/cmdassist/pkg/session"
)

const serverName = "cmdassist"

// triggerCharacters start a completion request in the client.
//
//nolint:gochecknoglobals // constant slice
var triggerCharacters = []string{" ", "@", "[", "=", ",", "{", ":", "~", "^"}

// Options configures a Server.
type Options struct {
	Pack    *pack.Pack
	Lint    linter.Options
	Version string
	Logger  *log.Logger

	// Debug enables the protocol trace of the underlying glsp server.
	Debug bool
}

// Server is a language server for command files.
type Server struct {
	pack    *pack.Pack
	lint    linter.Options
	version string
	logger  *log.Logger
	debug   bool

	handler protocol.Handler

	mu   sync.Mutex
	docs map[protocol.DocumentUri]*document
}

// New creates a server. A nil pack selects the built-in one.
func New(opts Options) (*Server, error) {
	p := opts.Pack
	if p == nil {
		var err error
		if p, err = pack.Builtin(); err != nil {
			return nil, fmt.Errorf("loading builtin pack: %w", err)
		}
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Default()
	}

	s := &Server{
		pack:    p,
		lint:    opts.Lint,
		version: opts.Version,
		logger:  logger,
		debug:   opts.Debug,
		docs:    make(map[protocol.DocumentUri]*document),
	}
	s.handler = protocol.Handler{
		Initialize:             s.initialize,
		Initialized:            s.initialized,
		Shutdown:               s.shutdown,
		SetTrace:               s.setTrace,
		TextDocumentDidOpen:    s.didOpen,
		TextDocumentDidChange:  s.didChange,
		TextDocumentDidClose:   s.didClose,
		TextDocumentCompletion: s.completion,
		TextDocumentHover:      s.hover,
	}
	return s, nil
}

// RunStdio serves requests on stdin and stdout until the client exits.
func (s *Server) RunStdio() error {
	verbosity := 0
	if s.debug {
		verbosity = 2
	}
	commonlog.Configure(verbosity, nil)

	s.logger.Info("starting language server", logging.FieldVersion, s.version)
	srv := server.NewServer(&s.handler, serverName, s.debug)
	if err := srv.RunStdio(); err != nil {
		return fmt.Errorf("language server: %w", err)
	}
	return nil
}

func (s *Server) initialize(_ *glsp.Context, _ *protocol.InitializeParams) (any, error) {
	capabilities := s.handler.CreateServerCapabilities()
	syncKind := protocol.TextDocumentSyncKindIncremental
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    &syncKind,
	}
	capabilities.CompletionProvider = &protocol.CompletionOptions{
		TriggerCharacters: triggerCharacters,
	}
	capabilities.HoverProvider = true

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    serverName,
			Version: &s.version,
		},
	}, nil
}

func (s *Server) initialized(_ *glsp.Context, _ *protocol.InitializedParams) error {
	return nil
}

func (s *Server) shutdown(_ *glsp.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.docs = make(map[protocol.DocumentUri]*document)
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (s *Server) setTrace(_ *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) didOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	item := params.TextDocument
	s.logger.Debug("open", logging.FieldURI, item.URI, logging.FieldVersion, item.Version)

	sess := session.New(s.pack,
		session.WithLinterOptions(s.lint),
		session.WithLogger(s.logger))
	doc := newDocument(item.URI, item.Version, item.Text, sess)

	s.mu.Lock()
	s.docs[item.URI] = doc
	diags := doc.diagnostics(s)
	s.mu.Unlock()

	s.publish(ctx, doc.uri, doc.version, diags)
	return nil
}

func (s *Server) didChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI

	s.mu.Lock()
	doc, ok := s.docs[uri]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("document not open: %s", uri)
	}
	if err := doc.apply(params.TextDocument.Version, params.ContentChanges); err != nil {
		s.mu.Unlock()
		return err
	}
	diags := doc.diagnostics(s)
	version := doc.version
	s.mu.Unlock()

	s.publish(ctx, uri, version, diags)
	return nil
}

func (s *Server) didClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	s.logger.Debug("close", logging.FieldURI, uri)

	s.mu.Lock()
	delete(s.docs, uri)
	s.mu.Unlock()

	s.publish(ctx, uri, 0, []protocol.Diagnostic{})
	return nil
}

func (s *Server) completion(_ *glsp.Context, params *protocol.CompletionParams) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[params.TextDocument.URI]
	if !ok {
		return nil, nil //nolint:nilnil // no completions for unknown documents
	}
	offset := doc.focus(params.Position)
	sgs := doc.session.Suggestions()

	s.logger.Debug("completion",
		logging.FieldURI, doc.uri,
		logging.FieldCursor, doc.session.Cursor(),
		logging.FieldSuggestions, len(sgs))
	return protocol.CompletionList{
		IsIncomplete: false,
		Items:        toCompletionItems(doc.index, offset, sgs),
	}, nil
}

func (s *Server) hover(_ *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[params.TextDocument.URI]
	if !ok {
		return nil, nil //nolint:nilnil // no hover for unknown documents
	}
	doc.focus(params.Position)
	if doc.session.Text() == "" {
		return nil, nil //nolint:nilnil // nothing to describe on an empty line
	}

	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: hoverText(doc.session.Structure(), doc.session.ParamHint()),
		},
	}, nil
}

func (s *Server) publish(ctx *glsp.Context, uri protocol.DocumentUri, version protocol.Integer, diags []protocol.Diagnostic) {
	s.logger.Debug("publish diagnostics",
		logging.FieldURI, uri,
		logging.FieldDiagnostics, len(diags))
	if ctx == nil || ctx.Notify == nil {
		return
	}
	params := protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diags,
	}
	if version > 0 {
		v := protocol.UInteger(version)
		params.Version = &v
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, params)
}

func boolPtr(b bool) *bool {
	return &b
}
