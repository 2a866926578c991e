package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rbsparse/internal/ast"
	"rbsparse/internal/location"
)

func collectNodes(decls []ast.Decl) []ast.Node {
	var nodes []ast.Node
	for _, d := range decls {
		ast.Inspect(d, func(n ast.Node) bool {
			nodes = append(nodes, n)
			return true
		})
	}
	return nodes
}

func TestSpanCoverage(t *testing.T) {
	for _, input := range []string{pointSignature, enumerableSignature} {
		nodes := collectNodes(parseSignature(t, input))
		require.NotEmpty(t, nodes)

		for _, n := range nodes {
			loc := n.Location()
			require.NotNil(t, loc, "%s has no location", n.NodeType())
			assert.LessOrEqual(t, loc.Start().ByteOffset, loc.End().ByteOffset, n.NodeType().String())

			for _, child := range loc.Children() {
				if child.Range.IsNull() {
					assert.False(t, child.Required, "required child %s of %s is absent", child.Name, n.NodeType())
					continue
				}
				assert.True(t, loc.Range.Contains(child.Range),
					"child %s %s outside %s %s", child.Name, child.Range, n.NodeType(), loc.Range)
			}
		}
	}
}

func significantTokens(s *Scanner) []TokenType {
	var types []TokenType
	for _, tok := range s.ScanTokens() {
		switch tok.Type {
		case EOF, COMMENT, LINE_COMMENT:
			continue
		}
		types = append(types, tok.Type)
	}
	return types
}

func TestRelexNodeRanges(t *testing.T) {
	buf := location.NewBuffer("test.rbs", pointSignature)
	decls, err := ParseSignature(buf)
	require.NoError(t, err)

	var all []Token
	for _, tok := range NewScanner(buf, 0, -1).ScanTokens() {
		switch tok.Type {
		case EOF, COMMENT, LINE_COMMENT:
			continue
		}
		all = append(all, tok)
	}

	for _, n := range collectNodes(decls) {
		r := n.Location().Range

		var expected []TokenType
		for _, tok := range all {
			if r.Contains(tok.Range) {
				expected = append(expected, tok.Type)
			}
		}
		relexed := significantTokens(NewScanner(buf, r.Start.ByteOffset, r.End.ByteOffset))
		assert.Equal(t, expected, relexed, "%s %q", n.NodeType(), buf.Slice(r))
	}
}

const quotedNamesSignature = `class Quoted
  def ` + "`foo bar`" + `: () -> void
  def self.` + "`1st`" + `: () -> Integer
  alias ` + "`a-b` `foo bar`" + `
  attr_reader ` + "`x y`" + `: String
  def ` + "`?`" + `: () -> bool
end
`

func TestPrintedSignatureReparses(t *testing.T) {
	for _, input := range []string{pointSignature, enumerableSignature, quotedNamesSignature} {
		decls := parseSignature(t, input)

		var printed string
		for _, d := range decls {
			printed += d.String() + "\n"
		}

		assert.NotContains(t, printed, "def foo bar")
		reparsed := parseSignature(t, printed)
		require.Len(t, reparsed, len(decls))
		for i := range decls {
			assert.Equal(t, decls[i].String(), reparsed[i].String())
		}
	}
}

func TestLookaheadAlwaysPopulated(t *testing.T) {
	p := newParser(location.NewBuffer("test.rbs", "A"))
	p.fill()
	assert.Equal(t, NULL, p.current.Type)
	assert.Equal(t, UIDENT, p.next.Type)
	assert.Equal(t, EOF, p.next2.Type)
	assert.Equal(t, EOF, p.next3.Type)

	p.advance()
	p.advance()
	assert.Equal(t, EOF, p.current.Type)
	assert.Equal(t, EOF, p.next.Type)
	assert.Equal(t, EOF, p.next3.Type)
}
