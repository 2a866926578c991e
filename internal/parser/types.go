package parser

import "rbsparse/internal/location"

type TokenType int

const (
	// Special tokens
	NULL TokenType = iota
	EOF
	ILLEGAL

	// Punctuation
	LEFT_PAREN
	RIGHT_PAREN
	LEFT_BRACKET
	RIGHT_BRACKET
	LEFT_BRACE
	RIGHT_BRACE
	COMMA
	BAR
	HAT
	AMP
	QUESTION
	STAR
	STAR_STAR
	DOT
	DOT3
	ARROW
	FAT_ARROW
	EQUAL
	COLON
	DOUBLE_COLON
	LESS
	AREF_OPR
	OPERATOR

	// Keywords
	BOOL
	BOT
	CLASS
	FALSE
	INSTANCE
	INTERFACE
	NIL
	SELF
	SINGLETON
	TOP
	TRUE
	VOID
	TYPE
	UNCHECKED
	IN
	OUT
	END
	DEF
	INCLUDE
	EXTEND
	PREPEND
	ALIAS
	MODULE
	ATTR_READER
	ATTR_WRITER
	ATTR_ACCESSOR
	PUBLIC
	PRIVATE
	UNTYPED

	// Identifiers
	LIDENT
	UIDENT
	ULIDENT
	ULLIDENT
	GIDENT
	AIDENT
	A2IDENT
	BANGIDENT
	EQIDENT
	QIDENT

	// Literals
	INTEGER
	DQSTRING
	SQSTRING
	SYMBOL
	DQSYMBOL
	SQSYMBOL

	COMMENT
	LINE_COMMENT
	ANNOTATION
)

var tokenTypeNames = [...]string{
	NULL:          "NULL",
	EOF:           "EOF",
	ILLEGAL:       "ILLEGAL",
	LEFT_PAREN:    "LEFT_PAREN",
	RIGHT_PAREN:   "RIGHT_PAREN",
	LEFT_BRACKET:  "LEFT_BRACKET",
	RIGHT_BRACKET: "RIGHT_BRACKET",
	LEFT_BRACE:    "LEFT_BRACE",
	RIGHT_BRACE:   "RIGHT_BRACE",
	COMMA:         "COMMA",
	BAR:           "BAR",
	HAT:           "HAT",
	AMP:           "AMP",
	QUESTION:      "QUESTION",
	STAR:          "STAR",
	STAR_STAR:     "STAR_STAR",
	DOT:           "DOT",
	DOT3:          "DOT3",
	ARROW:         "ARROW",
	FAT_ARROW:     "FAT_ARROW",
	EQUAL:         "EQUAL",
	COLON:         "COLON",
	DOUBLE_COLON:  "DOUBLE_COLON",
	LESS:          "LESS",
	AREF_OPR:      "AREF_OPR",
	OPERATOR:      "OPERATOR",
	BOOL:          "BOOL",
	BOT:           "BOT",
	CLASS:         "CLASS",
	FALSE:         "FALSE",
	INSTANCE:      "INSTANCE",
	INTERFACE:     "INTERFACE",
	NIL:           "NIL",
	SELF:          "SELF",
	SINGLETON:     "SINGLETON",
	TOP:           "TOP",
	TRUE:          "TRUE",
	VOID:          "VOID",
	TYPE:          "TYPE",
	UNCHECKED:     "UNCHECKED",
	IN:            "IN",
	OUT:           "OUT",
	END:           "END",
	DEF:           "DEF",
	INCLUDE:       "INCLUDE",
	EXTEND:        "EXTEND",
	PREPEND:       "PREPEND",
	ALIAS:         "ALIAS",
	MODULE:        "MODULE",
	ATTR_READER:   "ATTR_READER",
	ATTR_WRITER:   "ATTR_WRITER",
	ATTR_ACCESSOR: "ATTR_ACCESSOR",
	PUBLIC:        "PUBLIC",
	PRIVATE:       "PRIVATE",
	UNTYPED:       "UNTYPED",
	LIDENT:        "LIDENT",
	UIDENT:        "UIDENT",
	ULIDENT:       "ULIDENT",
	ULLIDENT:      "ULLIDENT",
	GIDENT:        "GIDENT",
	AIDENT:        "AIDENT",
	A2IDENT:       "A2IDENT",
	BANGIDENT:     "BANGIDENT",
	EQIDENT:       "EQIDENT",
	QIDENT:        "QIDENT",
	INTEGER:       "INTEGER",
	DQSTRING:      "DQSTRING",
	SQSTRING:      "SQSTRING",
	SYMBOL:        "SYMBOL",
	DQSYMBOL:      "DQSYMBOL",
	SQSYMBOL:      "SQSYMBOL",
	COMMENT:       "COMMENT",
	LINE_COMMENT:  "LINE_COMMENT",
	ANNOTATION:    "ANNOTATION",
}

func (t TokenType) String() string {
	if t >= 0 && int(t) < len(tokenTypeNames) && tokenTypeNames[t] != "" {
		return tokenTypeNames[t]
	}
	return "ILLEGAL"
}

var punctuationText = map[TokenType]string{
	LEFT_PAREN:    "(",
	RIGHT_PAREN:   ")",
	LEFT_BRACKET:  "[",
	RIGHT_BRACKET: "]",
	LEFT_BRACE:    "{",
	RIGHT_BRACE:   "}",
	COMMA:         ",",
	BAR:           "|",
	HAT:           "^",
	AMP:           "&",
	QUESTION:      "?",
	STAR:          "*",
	STAR_STAR:     "**",
	DOT:           ".",
	DOT3:          "...",
	ARROW:         "->",
	FAT_ARROW:     "=>",
	EQUAL:         "=",
	COLON:         ":",
	DOUBLE_COLON:  "::",
	LESS:          "<",
	AREF_OPR:      "[]",
}

// Text is the fixed spelling of punctuation and keyword tokens, or the type
// name for tokens with variable text.
func (t TokenType) Text() string {
	if s, ok := punctuationText[t]; ok {
		return s
	}
	if t.IsKeyword() {
		return keywordText[t]
	}
	return t.String()
}

func (t TokenType) IsKeyword() bool {
	return t >= BOOL && t <= UNTYPED
}

// Token is a classified slice of the source buffer.
type Token struct {
	Type   TokenType
	Lexeme string
	Range  location.Range
}

func (t Token) String() string {
	return t.Type.String() + "(" + t.Lexeme + ")@" + t.Range.String()
}
