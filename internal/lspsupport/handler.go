package lspsupport

import (
	"fmt"
	"net/url"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"qbf/qcir"
	"qbf/qdimacs"
)

// Handler implements the LSP notifications this server answers: open and
// change publish diagnostics for the buffer's formula, close forgets it.
// No hover, completion, or semantic tokens: there is no meaningful
// "definition" to jump to in a clause list.
type Handler struct {
	mu      sync.RWMutex
	content map[string]string
}

// NewHandler creates an empty Handler.
func NewHandler() *Handler {
	return &Handler{content: make(map[string]string)}
}

// Initialize advertises the server's capabilities: full-document sync only.
func (h *Handler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
		},
	}, nil
}

func (h *Handler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (h *Handler) Shutdown(ctx *glsp.Context) error {
	return nil
}

func (h *Handler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	return nil
}

// TextDocumentDidOpen parses the newly opened buffer and publishes diagnostics.
func (h *Handler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	uri := params.TextDocument.URI
	h.setContent(uri, params.TextDocument.Text)
	h.publish(ctx, uri)
	return nil
}

// TextDocumentDidChange re-parses the buffer on every full-document update.
func (h *Handler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI
	for _, change := range params.ContentChanges {
		if full, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			h.setContent(uri, full.Text)
		}
	}
	h.publish(ctx, uri)
	return nil
}

// TextDocumentDidClose drops the cached buffer content and clears its diagnostics.
func (h *Handler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	h.mu.Lock()
	delete(h.content, uri)
	h.mu.Unlock()

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func (h *Handler) setContent(uri protocol.DocumentUri, text string) {
	h.mu.Lock()
	h.content[uri] = text
	h.mu.Unlock()
}

func (h *Handler) publish(ctx *glsp.Context, uri protocol.DocumentUri) {
	h.mu.RLock()
	text := h.content[uri]
	h.mu.RUnlock()

	err := parseBuffer(uri, text)

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: ConvertError(err),
	})
}

// parseBuffer dispatches to the reader matching uri's extension. An
// unrecognized extension is treated as QDIMACS, the more permissive format.
func parseBuffer(uri protocol.DocumentUri, text string) error {
	path, pathErr := uriToPath(uri)
	if pathErr == nil && strings.HasSuffix(strings.ToLower(path), ".qcir") {
		_, err := qcir.Read(strings.NewReader(text))
		return err
	}
	_, err := qdimacs.Read(strings.NewReader(text))
	return err
}

func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}

	path := u.Path
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}
	return filepath.FromSlash(path), nil
}

func ptrBool(b bool) *bool {
	return &b
}

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
