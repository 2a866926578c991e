package parser

import (
	"strings"

	"rbsparse/internal/ast"
	"rbsparse/internal/location"
)

// commentBlock is a run of line comments on consecutive lines.
type commentBlock struct {
	start  location.Position
	end    location.Position
	tokens []Token
}

// commentCollector groups LINE_COMMENT tokens as the parser sees them, so
// that a declaration can pick up the block ending on the line above it.
type commentCollector struct {
	blocks []*commentBlock
}

func (c *commentCollector) insert(tok Token) {
	if b := c.find(tok.Range.Start.Line - 1); b != nil {
		b.tokens = append(b.tokens, tok)
		b.end = tok.Range.End
		return
	}
	c.blocks = append(c.blocks, &commentBlock{
		start:  tok.Range.Start,
		end:    tok.Range.End,
		tokens: []Token{tok},
	})
}

// find returns the block whose last line is line. Blocks are ordered by
// line, so the search stops at the first block that ends earlier.
func (c *commentCollector) find(line int) *commentBlock {
	for i := len(c.blocks) - 1; i >= 0; i-- {
		b := c.blocks[i]
		if b.end.Line < line {
			return nil
		}
		if b.end.Line == line {
			return b
		}
	}
	return nil
}

// commentFor returns the comment that ends on the line just before
// subjectLine, or nil.
func (c *commentCollector) commentFor(buf *location.Buffer, subjectLine int) *ast.Comment {
	b := c.find(subjectLine - 1)
	if b == nil {
		return nil
	}
	var text strings.Builder
	for _, tok := range b.tokens {
		line := strings.TrimPrefix(tok.Lexeme, "#")
		line = strings.TrimPrefix(line, " ")
		text.WriteString(line)
		text.WriteString("\n")
	}
	return &ast.Comment{
		Text: text.String(),
		Loc:  location.New(buf, location.Range{Start: b.start, End: b.end}),
	}
}
