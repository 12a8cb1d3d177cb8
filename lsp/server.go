// Package lsp serves diagnostics, document symbols and hovers for DSL
// files over the language server protocol.
package lsp

import (
	"strings"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/dhamidi/dslkit/grammar"
	"github.com/dhamidi/dslkit/parser"
)

const lsName = "dslkit"

// treeCacheSize bounds the number of parsed revisions kept in memory.
const treeCacheSize = 64

type Server struct {
	docs    *Documents
	handler protocol.Handler
	server  *server.Server
	version string
	log     commonlog.Logger
}

func NewServer(table *grammar.Table, version string, opts ...parser.Option) (*Server, error) {
	docs, err := NewDocuments(table, treeCacheSize, opts...)
	if err != nil {
		return nil, err
	}
	ls := &Server{
		docs:    docs,
		version: version,
		log:     commonlog.GetLogger("dslkit.lsp"),
	}

	ls.handler = protocol.Handler{
		Initialize:                 ls.initialize,
		Initialized:                ls.initialized,
		Shutdown:                   ls.shutdown,
		SetTrace:                   ls.setTrace,
		TextDocumentDidOpen:        ls.textDocumentDidOpen,
		TextDocumentDidChange:      ls.textDocumentDidChange,
		TextDocumentDidClose:       ls.textDocumentDidClose,
		TextDocumentDidSave:        ls.textDocumentDidSave,
		TextDocumentDocumentSymbol: ls.textDocumentDocumentSymbol,
		TextDocumentHover:          ls.textDocumentHover,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls, nil
}

func (ls *Server) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	ls.log.Infof("initialized %s %s", lsName, ls.version)
	return nil
}

func (ls *Server) shutdown(ctx *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (ls *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	ls.docs.Update(params.TextDocument.URI, params.TextDocument.Text)
	ls.publishDiagnostics(ctx, params.TextDocument.URI)
	return nil
}

func (ls *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	if whole, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
		ls.docs.Update(params.TextDocument.URI, whole.Text)
		ls.publishDiagnostics(ctx, params.TextDocument.URI)
	}
	return nil
}

func (ls *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	ls.docs.Close(params.TextDocument.URI)
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func (ls *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text != nil {
		ls.docs.Update(params.TextDocument.URI, *params.Text)
		ls.publishDiagnostics(ctx, params.TextDocument.URI)
	}
	return nil
}

func (ls *Server) textDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	tree, ok := ls.docs.Tree(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	return documentSymbols(tree), nil
}

func (ls *Server) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	tree, ok := ls.docs.Tree(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	text, span, ok := hover(tree, offset(tree, params.Position))
	if !ok {
		return nil, nil
	}
	r := rangeOf(tree, span)
	return &protocol.Hover{
		Contents: protocol.MarkupContent{Kind: protocol.MarkupKindMarkdown, Value: text},
		Range:    &r,
	}, nil
}

func (ls *Server) publishDiagnostics(ctx *glsp.Context, uri string) {
	tree, ok := ls.docs.Tree(uri)
	if !ok {
		return
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics(tree),
	})
}

func diagnostics(tree *parser.Tree) []protocol.Diagnostic {
	source := lsName
	severity := protocol.DiagnosticSeverityError

	result := []protocol.Diagnostic{}
	for _, d := range tree.Diagnostics() {
		message := d.Message
		if len(d.Expected) > 0 && d.Kind != parser.ErrorLexical {
			message += "; expected " + joinExpected(d.Expected)
		}
		result = append(result, protocol.Diagnostic{
			Range:    rangeOf(tree, d.Span),
			Severity: &severity,
			Code:     &protocol.IntegerOrString{Value: d.Kind.String()},
			Source:   &source,
			Message:  message,
		})
	}
	return result
}

func joinExpected(expected []string) string {
	const limit = 6
	if len(expected) > limit {
		return strings.Join(expected[:limit], ", ") + ", ..."
	}
	return strings.Join(expected, ", ")
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
