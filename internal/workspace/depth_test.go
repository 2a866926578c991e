package workspace

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rbsparse/internal/location"
)

func TestCheckDepthBrackets(t *testing.T) {
	buf := location.NewBuffer("deep.rbs", "type t = "+strings.Repeat("[", 5)+"Integer"+strings.Repeat("]", 5))

	assert.NoError(t, CheckDepth(buf, 5))

	err := CheckDepth(buf, 4)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNestingTooDeep))

	var derr *DepthError
	require.True(t, errors.As(err, &derr))
	assert.Equal(t, 5, derr.Depth)
	assert.Equal(t, 4, derr.Max)
	assert.Equal(t, 13, derr.Position.ByteOffset)
}

func TestCheckDepthDeclarations(t *testing.T) {
	src := `class A
  module B
    interface _C
      def end: () -> void
    end
  end
end
class D
end
`
	buf := location.NewBuffer("nested.rbs", src)
	assert.NoError(t, CheckDepth(buf, 4))

	err := CheckDepth(buf, 2)
	var derr *DepthError
	require.True(t, errors.As(err, &derr))
	assert.Equal(t, 2, derr.Position.Line)
}

func TestCheckDepthIgnoresTypeKeywords(t *testing.T) {
	buf := location.NewBuffer("a.rbs", "class A\n  def f: () -> class\nend\n")
	assert.NoError(t, CheckDepth(buf, 2))
}
