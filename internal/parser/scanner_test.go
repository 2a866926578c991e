package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rbsparse/internal/location"
)

func scan(input string) []Token {
	return NewScanner(location.NewBuffer("test.rbs", input), 0, -1).ScanTokens()
}

func tokenTypes(tokens []Token) []TokenType {
	types := make([]TokenType, len(tokens))
	for i, tok := range tokens {
		types[i] = tok.Type
	}
	return types
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	tokens := scan("class Foo[out T] < Bar::Baz")
	assert.Equal(t, []TokenType{
		CLASS, UIDENT, LEFT_BRACKET, OUT, UIDENT, RIGHT_BRACKET,
		LESS, UIDENT, DOUBLE_COLON, UIDENT, EOF,
	}, tokenTypes(tokens))
}

func TestIdentifierKinds(t *testing.T) {
	tokens := scan("_Each _foo foo Foo @x @@y $z foo! foo= `foo bar`")
	assert.Equal(t, []TokenType{
		ULIDENT, ULLIDENT, LIDENT, UIDENT, AIDENT, A2IDENT, GIDENT,
		BANGIDENT, EQIDENT, QIDENT, EOF,
	}, tokenTypes(tokens))
	assert.Equal(t, "foo=", tokens[8].Lexeme)
	assert.Equal(t, "`foo bar`", tokens[9].Lexeme)
}

func TestSetterSuffixIsNotGluedToOperators(t *testing.T) {
	tokens := scan("a=>b c==d")
	assert.Equal(t, []TokenType{LIDENT, FAT_ARROW, LIDENT, LIDENT, OPERATOR, LIDENT, EOF}, tokenTypes(tokens))
}

func TestOperatorsAndPunctuation(t *testing.T) {
	input := "-> => ... . :: : ** * ? [] []= <=> -1 +2 | ^ &"
	expected := []TokenType{
		ARROW, FAT_ARROW, DOT3, DOT, DOUBLE_COLON, COLON, STAR_STAR, STAR,
		QUESTION, AREF_OPR, OPERATOR, OPERATOR, INTEGER, INTEGER, BAR, HAT, AMP, EOF,
	}
	expectedLexemes := []string{
		"->", "=>", "...", ".", "::", ":", "**", "*",
		"?", "[]", "[]=", "<=>", "-1", "+2", "|", "^", "&", "",
	}

	tokens := scan(input)
	require.Len(t, tokens, len(expected))
	for i, exp := range expected {
		assert.Equal(t, exp, tokens[i].Type, "token %d", i)
		assert.Equal(t, expectedLexemes[i], tokens[i].Lexeme, "token %d", i)
	}
}

func TestSymbols(t *testing.T) {
	tokens := scan(`:foo :foo? :"a b" :'c' :@x :$y :+ :[]=`)
	assert.Equal(t, []TokenType{
		SYMBOL, SYMBOL, DQSYMBOL, SQSYMBOL, SYMBOL, SYMBOL, SYMBOL, SYMBOL, EOF,
	}, tokenTypes(tokens))
	assert.Equal(t, ":foo?", tokens[1].Lexeme)
	assert.Equal(t, ":[]=", tokens[7].Lexeme)
}

func TestStrings(t *testing.T) {
	tokens := scan(`"a\"b" 'c\'d'`)
	require.Len(t, tokens, 3)
	assert.Equal(t, DQSTRING, tokens[0].Type)
	assert.Equal(t, `"a\"b"`, tokens[0].Lexeme)
	assert.Equal(t, SQSTRING, tokens[1].Type)
	assert.Equal(t, `'c\'d'`, tokens[1].Lexeme)
}

func TestAnnotations(t *testing.T) {
	tokens := scan("%a{foo} %a(bar) %a[baz] %a<q> %a|z|")
	assert.Equal(t, []TokenType{ANNOTATION, ANNOTATION, ANNOTATION, ANNOTATION, ANNOTATION, EOF}, tokenTypes(tokens))
	assert.Equal(t, "%a(bar)", tokens[1].Lexeme)
}

func TestCommentKinds(t *testing.T) {
	tokens := scan("# top\nfoo # trailing\n  # indented")
	assert.Equal(t, []TokenType{LINE_COMMENT, LIDENT, COMMENT, LINE_COMMENT, EOF}, tokenTypes(tokens))
	assert.Equal(t, "# top", tokens[0].Lexeme)
}

func TestIllegalTokens(t *testing.T) {
	tests := []struct {
		input   string
		message string
	}{
		{`"abc`, "unterminated string literal"},
		{"%a{abc", "unterminated annotation"},
		{"\\", "unexpected character `\\`"},
		{"@ x", "unexpected character `@`"},
	}

	for _, tt := range tests {
		s := NewScanner(location.NewBuffer("test.rbs", tt.input), 0, -1)
		tok := s.Next()
		assert.Equal(t, ILLEGAL, tok.Type, tt.input)
		assert.Equal(t, tt.message, s.ErrorFor(tok), tt.input)
	}
}

func TestPositionsCountCharacters(t *testing.T) {
	tokens := scan("é\n  Foo")
	require.Len(t, tokens, 3)
	assert.Equal(t, ILLEGAL, tokens[0].Type)

	foo := tokens[1]
	assert.Equal(t, UIDENT, foo.Type)
	assert.Equal(t, 5, foo.Range.Start.ByteOffset)
	assert.Equal(t, 4, foo.Range.Start.CharOffset)
	assert.Equal(t, 1, foo.Range.Start.Line)
	assert.Equal(t, 2, foo.Range.Start.Column)
}

func TestScanSubRange(t *testing.T) {
	buf := location.NewBuffer("test.rbs", "foo: Integer | String")
	tokens := NewScanner(buf, 5, 12).ScanTokens()
	require.Len(t, tokens, 2)
	assert.Equal(t, UIDENT, tokens[0].Type)
	assert.Equal(t, "Integer", tokens[0].Lexeme)
	assert.Equal(t, EOF, tokens[1].Type)
	assert.Equal(t, 12, tokens[1].Range.Start.ByteOffset)
}

func TestEOFRepeats(t *testing.T) {
	s := NewScanner(location.NewBuffer("test.rbs", "x"), 0, -1)
	assert.Equal(t, LIDENT, s.Next().Type)
	assert.Equal(t, EOF, s.Next().Type)
	assert.Equal(t, EOF, s.Next().Type)
}
