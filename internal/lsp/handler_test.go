package lsp_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"rbsparse/internal/lsp"
	"rbsparse/internal/workspace"
)

const uri = "file:///tmp/example.rbs"

func newHandler() *lsp.Handler {
	return lsp.NewHandler(workspace.NewLoader(1, 256, []string{".rbs"}))
}

// recorder captures published diagnostics.
type recorder struct {
	published []*protocol.PublishDiagnosticsParams
}

func (r *recorder) context() *glsp.Context {
	return &glsp.Context{
		Notify: func(method string, params any) {
			if method == protocol.ServerTextDocumentPublishDiagnostics {
				r.published = append(r.published, params.(*protocol.PublishDiagnosticsParams))
			}
		},
	}
}

func (r *recorder) last(t *testing.T) *protocol.PublishDiagnosticsParams {
	t.Helper()
	require.NotEmpty(t, r.published)
	return r.published[len(r.published)-1]
}

func open(t *testing.T, h *lsp.Handler, ctx *glsp.Context, text string) {
	t.Helper()
	err := h.TextDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, LanguageID: "rbs", Version: 1, Text: text},
	})
	require.NoError(t, err)
}

func TestInitialize(t *testing.T) {
	result, err := newHandler().Initialize(&glsp.Context{}, &protocol.InitializeParams{})
	require.NoError(t, err)

	init, ok := result.(*protocol.InitializeResult)
	require.True(t, ok)
	assert.Equal(t, true, init.Capabilities.DocumentSymbolProvider)
	require.NotNil(t, init.ServerInfo)
	assert.Equal(t, lsp.ServerName, init.ServerInfo.Name)

	tokens, ok := init.Capabilities.SemanticTokensProvider.(*protocol.SemanticTokensOptions)
	require.True(t, ok)
	assert.Equal(t, lsp.SemanticTokenTypes, tokens.Legend.TokenTypes)
}

func TestDiagnosticsOnOpenAndChange(t *testing.T) {
	h := newHandler()
	rec := &recorder{}
	ctx := rec.context()

	open(t, h, ctx, "type foo = \n")

	published := rec.last(t)
	assert.Equal(t, uri, published.URI)
	require.Len(t, published.Diagnostics, 1)

	diag := published.Diagnostics[0]
	assert.Contains(t, diag.Message, "unexpected token for simple type")
	assert.Equal(t, protocol.Position{Line: 1, Character: 0}, diag.Range.Start)
	assert.Equal(t, protocol.Position{Line: 1, Character: 1}, diag.Range.End)
	require.NotNil(t, diag.Code)
	assert.Equal(t, "E0100", diag.Code.Value)
	require.NotNil(t, diag.Severity)
	assert.Equal(t, protocol.DiagnosticSeverityError, *diag.Severity)

	err := h.TextDocumentDidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
			Version:                2,
		},
		ContentChanges: []any{
			protocol.TextDocumentContentChangeEventWhole{Text: "type foo = Integer\n"},
		},
	})
	require.NoError(t, err)
	assert.Empty(t, rec.last(t).Diagnostics)

	require.NoError(t, h.TextDocumentDidClose(ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	}))
	assert.Empty(t, rec.last(t).Diagnostics)
}

func TestDepthLimitDiagnostic(t *testing.T) {
	h := lsp.NewHandler(workspace.NewLoader(1, 2, []string{".rbs"}))
	rec := &recorder{}

	open(t, h, rec.context(), "type t = [[[Integer]]]\n")

	diags := rec.last(t).Diagnostics
	require.Len(t, diags, 1)
	assert.Equal(t, "E0103", diags[0].Code.Value)
}

func TestDocumentSymbol(t *testing.T) {
	h := newHandler()
	open(t, h, &glsp.Context{}, `class Point < Object
  attr_reader x: Integer
  def self.origin: () -> Point
  @cache: Hash[Symbol, Point]
end

type coord = [Integer, Integer]
`)

	result, err := h.TextDocumentDocumentSymbol(&glsp.Context{}, &protocol.DocumentSymbolParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)

	symbols, ok := result.([]protocol.DocumentSymbol)
	require.True(t, ok)
	require.Len(t, symbols, 2)

	class := symbols[0]
	assert.Equal(t, "Point", class.Name)
	assert.Equal(t, protocol.SymbolKindClass, class.Kind)
	assert.Equal(t, "< Object", *class.Detail)
	assert.Equal(t, protocol.Position{Line: 0, Character: 6}, class.SelectionRange.Start)
	assert.Equal(t, protocol.Position{Line: 4, Character: 3}, class.Range.End)

	require.Len(t, class.Children, 3)
	assert.Equal(t, "x", class.Children[0].Name)
	assert.Equal(t, protocol.SymbolKindProperty, class.Children[0].Kind)
	assert.Equal(t, "self.origin", class.Children[1].Name)
	assert.Equal(t, protocol.SymbolKindMethod, class.Children[1].Kind)
	assert.Equal(t, "() -> Point", *class.Children[1].Detail)
	assert.Equal(t, "@cache", class.Children[2].Name)
	assert.Equal(t, protocol.SymbolKindField, class.Children[2].Kind)

	alias := symbols[1]
	assert.Equal(t, "coord", alias.Name)
	assert.Equal(t, "[ Integer, Integer ]", *alias.Detail)
}

func TestDocumentSymbolReadsUnopenedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "io.rbs")
	require.NoError(t, os.WriteFile(path, []byte("module Kernel\nend\n"), 0o644))

	result, err := newHandler().TextDocumentDocumentSymbol(&glsp.Context{}, &protocol.DocumentSymbolParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: "file://" + filepath.ToSlash(path)},
	})
	require.NoError(t, err)

	symbols := result.([]protocol.DocumentSymbol)
	require.Len(t, symbols, 1)
	assert.Equal(t, "Kernel", symbols[0].Name)
	assert.Equal(t, protocol.SymbolKindModule, symbols[0].Kind)
}

func TestTextDocumentSemanticTokensFull(t *testing.T) {
	h := newHandler()
	open(t, h, &glsp.Context{}, "class Foo[T]\n  def bar: (T) -> Integer # c\nend\n")

	tokens, err := h.TextDocumentSemanticTokensFull(&glsp.Context{}, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)
	require.NotNil(t, tokens)

	decoded, err := decodeSemanticTokens(tokens.Data)
	require.NoError(t, err)
	require.Len(t, decoded, 9)

	assertToken(t, &decoded[0], 1, 1, 5, "keyword", nil)
	assertToken(t, &decoded[1], 1, 7, 3, "type", nil)
	assertToken(t, &decoded[2], 1, 11, 1, "typeParameter", []string{"declaration"})
	assertToken(t, &decoded[3], 2, 3, 3, "keyword", nil)
	assertToken(t, &decoded[4], 2, 13, 1, "typeParameter", nil)
	assertToken(t, &decoded[5], 2, 16, 2, "operator", nil)
	assertToken(t, &decoded[6], 2, 19, 7, "type", nil)
	assertToken(t, &decoded[7], 2, 27, 3, "comment", nil)
	assertToken(t, &decoded[8], 3, 1, 3, "keyword", nil)
}

func TestSemanticTokensWithParseError(t *testing.T) {
	h := newHandler()
	open(t, h, &glsp.Context{}, "%a{pure} def 'oops\n")

	tokens, err := h.TextDocumentSemanticTokensFull(&glsp.Context{}, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)

	decoded, err := decodeSemanticTokens(tokens.Data)
	require.NoError(t, err)
	require.NotEmpty(t, decoded)
	assertToken(t, &decoded[0], 1, 1, 8, "decorator", nil)
	assertToken(t, &decoded[1], 1, 10, 3, "keyword", nil)
}

func TestPositionsCountUTF16Units(t *testing.T) {
	h := newHandler()
	rec := &recorder{}

	open(t, h, rec.context(), "type t = \"😀\" & )\n")
	diags := rec.last(t).Diagnostics
	require.Len(t, diags, 1)
	assert.Equal(t, protocol.Position{Line: 0, Character: 16}, diags[0].Range.Start)
	assert.Equal(t, protocol.Position{Line: 0, Character: 17}, diags[0].Range.End)

	open(t, h, rec.context(), "type t = \"😀\" | Integer\n")
	tokens, err := h.TextDocumentSemanticTokensFull(&glsp.Context{}, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)

	decoded, err := decodeSemanticTokens(tokens.Data)
	require.NoError(t, err)
	require.Len(t, decoded, 4)
	assertToken(t, &decoded[0], 1, 1, 4, "keyword", nil)
	assertToken(t, &decoded[1], 1, 10, 4, "string", nil)
	assertToken(t, &decoded[2], 1, 15, 1, "operator", nil)
	assertToken(t, &decoded[3], 1, 17, 7, "type", nil)
}

type DecodedToken struct {
	Index     int
	Line      uint32
	Char      uint32
	Length    uint32
	Type      string
	Modifiers []string
}

func decodeSemanticTokens(raw []uint32) ([]DecodedToken, error) {
	if len(raw)%5 != 0 {
		return nil, fmt.Errorf("raw token data length %d is not a multiple of 5", len(raw))
	}

	var (
		decoded []DecodedToken
		line    uint32
		char    uint32
	)

	for i := 0; i < len(raw); i += 5 {
		deltaLine := raw[i]
		deltaStart := raw[i+1]
		length := raw[i+2]
		tokenTypeIdx := raw[i+3]
		tokenModMask := raw[i+4]

		if deltaLine == 0 {
			char += deltaStart
		} else {
			line += deltaLine
			char = deltaStart
		}

		var modifiers []string
		for j, name := range lsp.SemanticTokenModifiers {
			if tokenModMask&(1<<j) != 0 {
				modifiers = append(modifiers, name)
			}
		}

		decoded = append(decoded, DecodedToken{
			Index:     i / 5,
			Line:      line + 1, // LSP uses 0-based indexing
			Char:      char + 1, // LSP uses 0-based indexing
			Length:    length,
			Type:      lsp.SemanticTokenTypes[tokenTypeIdx],
			Modifiers: modifiers,
		})
	}

	return decoded, nil
}

func assertToken(t *testing.T, token *DecodedToken, expectedLine, expectedChar, expectedLength uint32, expectedType string, expectedModifiers []string) {
	require.Equal(t, expectedLine, token.Line, "line mismatch (expected line %d)", expectedLine)
	require.Equal(t, expectedChar, token.Char, "char mismatch (expected char %d)", expectedChar)
	require.Equal(t, expectedLength, token.Length, "length mismatch")
	require.Equal(t, expectedType, token.Type, "type mismatch")
	require.ElementsMatch(t, expectedModifiers, token.Modifiers, "modifiers mismatch")
}
