package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rbsparse/internal/location"
)

func collectComments(input string) (*location.Buffer, *commentCollector) {
	buf := location.NewBuffer("test.rbs", input)
	c := &commentCollector{}
	for _, tok := range NewScanner(buf, 0, -1).ScanTokens() {
		if tok.Type == LINE_COMMENT {
			c.insert(tok)
		}
	}
	return buf, c
}

func TestCommentAdjacency(t *testing.T) {
	buf, c := collectComments("# first\n#  second\nclass Foo\nend\n")

	comment := c.commentFor(buf, 2)
	require.NotNil(t, comment)
	assert.Equal(t, "first\n second\n", comment.Text)
	assert.Equal(t, 0, comment.Loc.Start().Line)
	assert.Equal(t, 1, comment.Loc.End().Line)

	assert.Nil(t, c.commentFor(buf, 1))
	assert.Nil(t, c.commentFor(buf, 3))
}

func TestCommentBlankLineSeparates(t *testing.T) {
	buf, c := collectComments("# detached\n\nclass Foo\nend\n")
	assert.Nil(t, c.commentFor(buf, 2))
	assert.NotNil(t, c.commentFor(buf, 1))
}

func TestCommentBlocksStaySeparate(t *testing.T) {
	buf, c := collectComments("# one\n\n# two\nfoo\n")
	require.Len(t, c.blocks, 2)

	comment := c.commentFor(buf, 3)
	require.NotNil(t, comment)
	assert.Equal(t, "two\n", comment.Text)

	comment = c.commentFor(buf, 1)
	require.NotNil(t, comment)
	assert.Equal(t, "one\n", comment.Text)
}
