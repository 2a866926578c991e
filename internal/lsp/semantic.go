package lsp

import (
	"rbsparse/internal/ast"
	"rbsparse/internal/location"
	"rbsparse/internal/parser"
)

// SemanticToken represents a single LSP semantic token entry
// Line and StartChar are 0-based positions
// TokenType is an index into SemanticTokenTypes
// TokenModifiers is a bitmask based on SemanticTokenModifiers
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int
	TokenModifiers int
}

const (
	tokenKeyword = iota
	tokenType
	tokenTypeParameter
	tokenString
	tokenNumber
	tokenComment
	tokenOperator
	tokenDecorator
)

const modifierDeclaration = 1 << 0

// collectSemanticTokens lexes the whole buffer and classifies each token.
// Type variables and type parameter names are found from the parsed
// declarations, which may be empty when the buffer has errors.
func collectSemanticTokens(buf *location.Buffer, decls []ast.Decl) []SemanticToken {
	typeVars := make(map[int]int)
	for _, d := range decls {
		ast.Inspect(d, func(n ast.Node) bool {
			switch n := n.(type) {
			case *ast.Variable:
				if n.Loc != nil {
					typeVars[n.Loc.Start().ByteOffset] = 0
				}
			case *ast.TypeParam:
				if r, ok := n.Loc.Child("name"); ok {
					typeVars[r.Start.ByteOffset] = modifierDeclaration
				}
			}
			return true
		})
	}

	var tokens []SemanticToken
	scanner := parser.NewScanner(buf, 0, -1)
	for {
		tok := scanner.Next()
		if tok.Type == parser.EOF {
			break
		}
		kind, ok := classify(tok.Type)
		if !ok {
			continue
		}
		modifiers := 0
		if mods, isVar := typeVars[tok.Range.Start.ByteOffset]; isVar && kind == tokenType {
			kind = tokenTypeParameter
			modifiers = mods
		}
		if token, ok := makeToken(buf, tok.Range, kind, modifiers); ok {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

func classify(tt parser.TokenType) (int, bool) {
	switch {
	case tt.IsKeyword():
		return tokenKeyword, true
	}
	switch tt {
	case parser.UIDENT, parser.ULIDENT, parser.ULLIDENT:
		return tokenType, true
	case parser.SQSTRING, parser.DQSTRING, parser.SYMBOL, parser.SQSYMBOL, parser.DQSYMBOL:
		return tokenString, true
	case parser.INTEGER:
		return tokenNumber, true
	case parser.COMMENT, parser.LINE_COMMENT:
		return tokenComment, true
	case parser.BAR, parser.AMP, parser.QUESTION, parser.HAT, parser.STAR, parser.STAR_STAR,
		parser.ARROW, parser.FAT_ARROW, parser.LESS, parser.OPERATOR, parser.AREF_OPR:
		return tokenOperator, true
	case parser.ANNOTATION:
		return tokenDecorator, true
	}
	return 0, false
}

// makeToken converts a single-line range. Tokens spanning lines are dropped.
func makeToken(buf *location.Buffer, r location.Range, kind, modifiers int) (SemanticToken, bool) {
	if r.IsNull() || r.Start.Line != r.End.Line || r.End.ByteOffset <= r.Start.ByteOffset {
		return SemanticToken{}, false
	}
	start := toPosition(buf, r.Start)
	return SemanticToken{
		Line:           start.Line,
		StartChar:      start.Character,
		Length:         utf16Len(buf.Slice(r)),
		TokenType:      kind,
		TokenModifiers: modifiers,
	}, true
}
