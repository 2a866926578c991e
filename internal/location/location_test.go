package location

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNullRange(t *testing.T) {
	assert.True(t, NullRange.IsNull())
	assert.True(t, NullPosition.IsNull())
	assert.Equal(t, 0, NullRange.Bytes())
	assert.Equal(t, "-", NullRange.String())
}

func TestPositionAtMultibyte(t *testing.T) {
	content := "aé\nx"

	pos := PositionAt(content, 3)
	assert.Equal(t, Position{ByteOffset: 3, CharOffset: 2, Line: 0, Column: 2}, pos)

	pos = PositionAt(content, 5)
	assert.Equal(t, Position{ByteOffset: 5, CharOffset: 4, Line: 1, Column: 1}, pos)
}

func TestLocationChildren(t *testing.T) {
	buf := NewBuffer("a.rbs", "class Foo end")
	whole := Range{Start: PositionAt(buf.Content, 0), End: PositionAt(buf.Content, 13)}
	name := Range{Start: PositionAt(buf.Content, 6), End: PositionAt(buf.Content, 9)}

	loc := New(buf, whole)
	loc.AddRequired("name", name)
	loc.AddOptional("type_params", NullRange)

	r, ok := loc.Child("name")
	assert.True(t, ok)
	assert.Equal(t, "Foo", buf.Slice(r))

	_, ok = loc.Child("type_params")
	assert.False(t, ok)

	_, ok = loc.Child("missing")
	assert.False(t, ok)

	assert.Len(t, loc.Children(), 2)
	assert.True(t, whole.Contains(name))
	assert.Equal(t, "class Foo end", loc.Source())
	assert.Equal(t, "a.rbs:1:1-1:14", loc.String())
}
