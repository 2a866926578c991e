package location

import (
	"fmt"
	"unicode/utf8"
)

// Position locates a single point in a buffer. Line and Column are 0-based.
type Position struct {
	ByteOffset int
	CharOffset int
	Line       int
	Column     int
}

// NullPosition marks an absent position.
var NullPosition = Position{ByteOffset: -1, CharOffset: -1, Line: -1, Column: -1}

func (p Position) IsNull() bool {
	return p.ByteOffset == -1
}

func (p Position) String() string {
	if p.IsNull() {
		return "-"
	}
	return fmt.Sprintf("%d:%d", p.Line+1, p.Column+1)
}

// Range is the half-open interval [Start, End).
type Range struct {
	Start Position
	End   Position
}

// NullRange marks an optional child that was not present.
var NullRange = Range{Start: NullPosition, End: NullPosition}

func (r Range) IsNull() bool {
	return r.Start.IsNull()
}

// Bytes returns the byte length of the range.
func (r Range) Bytes() int {
	if r.IsNull() {
		return 0
	}
	return r.End.ByteOffset - r.Start.ByteOffset
}

// Contains reports whether other lies within r.
func (r Range) Contains(other Range) bool {
	if r.IsNull() || other.IsNull() {
		return false
	}
	return r.Start.ByteOffset <= other.Start.ByteOffset && other.End.ByteOffset <= r.End.ByteOffset
}

func (r Range) String() string {
	if r.IsNull() {
		return "-"
	}
	return fmt.Sprintf("%s-%s", r.Start, r.End)
}

// NonNullOr returns p, or fallback when p is null.
func NonNullOr(p, fallback Position) Position {
	if p.IsNull() {
		return fallback
	}
	return p
}

// Buffer is the source text a parse runs over.
type Buffer struct {
	Name    string
	Content string
}

func NewBuffer(name, content string) *Buffer {
	return &Buffer{Name: name, Content: content}
}

// Slice returns the text covered by r.
func (b *Buffer) Slice(r Range) string {
	if b == nil || r.IsNull() {
		return ""
	}
	return b.Content[r.Start.ByteOffset:r.End.ByteOffset]
}

// Child is a named sub-range of a Location.
type Child struct {
	Name     string
	Range    Range
	Required bool
}

// Location is the range of a node plus the ranges of its named parts.
type Location struct {
	Buffer   *Buffer
	Range    Range
	children []Child
}

func New(buf *Buffer, r Range) *Location {
	return &Location{Buffer: buf, Range: r}
}

// AddRequired registers a child that is always present.
func (l *Location) AddRequired(name string, r Range) {
	l.children = append(l.children, Child{Name: name, Range: r, Required: true})
}

// AddOptional registers a child that may be NullRange.
func (l *Location) AddOptional(name string, r Range) {
	l.children = append(l.children, Child{Name: name, Range: r})
}

// Child returns the named child range. ok is false when the child was never
// registered or was registered as absent.
func (l *Location) Child(name string) (Range, bool) {
	if l == nil {
		return NullRange, false
	}
	for _, c := range l.children {
		if c.Name == name {
			return c.Range, !c.Range.IsNull()
		}
	}
	return NullRange, false
}

// Children returns the registered children in registration order.
func (l *Location) Children() []Child {
	if l == nil {
		return nil
	}
	return l.children
}

func (l *Location) Start() Position { return l.Range.Start }
func (l *Location) End() Position   { return l.Range.End }

// Source returns the text covered by the location.
func (l *Location) Source() string {
	if l == nil {
		return ""
	}
	return l.Buffer.Slice(l.Range)
}

func (l *Location) String() string {
	if l == nil {
		return "<nil>"
	}
	name := "-"
	if l.Buffer != nil {
		name = l.Buffer.Name
	}
	return fmt.Sprintf("%s:%s", name, l.Range)
}

// PositionAt builds the position of a byte offset by decoding content from
// the beginning. offset must fall on a character boundary.
func PositionAt(content string, offset int) Position {
	pos := Position{}
	for pos.ByteOffset < offset && pos.ByteOffset < len(content) {
		r, size := utf8.DecodeRuneInString(content[pos.ByteOffset:])
		pos.ByteOffset += size
		pos.CharOffset++
		if r == '\n' {
			pos.Line++
			pos.Column = 0
		} else {
			pos.Column++
		}
	}
	return pos
}
