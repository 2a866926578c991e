package workspace

import (
	"errors"
	"fmt"

	"rbsparse/internal/location"
	"rbsparse/internal/parser"
)

var ErrNestingTooDeep = errors.New("nesting too deep")

// DepthError reports where the nesting limit was first exceeded.
type DepthError struct {
	Source   string
	Position location.Position
	Depth    int
	Max      int
}

func (e *DepthError) Error() string {
	return fmt.Sprintf("%s:%s: %s (%d > %d)", e.Source, e.Position, ErrNestingTooDeep, e.Depth, e.Max)
}

func (e *DepthError) Unwrap() error { return ErrNestingTooDeep }

// CheckDepth lexes buf once and fails when bracket nesting plus declaration
// nesting exceeds limit. A declaration opens at a class, module, or interface
// keyword that starts its line and closes at an `end` that starts its line.
// Lexical errors are left for the parser to report. Recursion that opens no
// bracket, such as a chain of proc types, is bounded by parser.WithMaxDepth.
func CheckDepth(buf *location.Buffer, limit int) error {
	s := parser.NewScanner(buf, 0, -1)
	depth := 0
	lastLine := -1

	for {
		tok := s.Next()
		switch tok.Type {
		case parser.EOF:
			return nil
		case parser.COMMENT, parser.LINE_COMMENT, parser.ANNOTATION, parser.ILLEGAL:
			continue
		}

		lineStart := tok.Range.Start.Line != lastLine
		lastLine = tok.Range.End.Line

		switch tok.Type {
		case parser.LEFT_PAREN, parser.LEFT_BRACKET, parser.LEFT_BRACE:
			depth++
		case parser.RIGHT_PAREN, parser.RIGHT_BRACKET, parser.RIGHT_BRACE:
			depth--
		case parser.CLASS, parser.MODULE, parser.INTERFACE:
			if lineStart {
				depth++
			}
		case parser.END:
			if lineStart {
				depth--
			}
		}

		if depth > limit {
			return &DepthError{Source: buf.Name, Position: tok.Range.Start, Depth: depth, Max: limit}
		}
	}
}
