package parser

import (
	"fmt"

	"rbsparse/internal/location"
)

type ErrorKind int

const (
	SyntaxError ErrorKind = iota
	LexicalError
	ScopeError
	NestingError
)

func (k ErrorKind) String() string {
	switch k {
	case LexicalError:
		return "lexical error"
	case ScopeError:
		return "scope error"
	case NestingError:
		return "nesting error"
	}
	return "syntax error"
}

// ParseError reports the first problem found in a buffer. Range covers the
// offending token.
type ParseError struct {
	Kind      ErrorKind
	Source    string
	Range     location.Range
	TokenType TokenType
	Lexeme    string
	Message   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%s: %s: %s (%s)", e.Source, e.Range.Start, e.Kind, e.Message, e.TokenType)
}

// bailout carries a ParseError up to the entry point that started the parse.
type bailout struct {
	err *ParseError
}
