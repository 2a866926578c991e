package lsp

import (
	"strings"
	"unicode/utf16"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"rbsparse/internal/location"
)

// LSP characters count UTF-16 code units, while buffer columns count code
// points. The conversions below re-measure the line text when buf is known.

func toPosition(buf *location.Buffer, p location.Position) protocol.Position {
	if p.IsNull() {
		return protocol.Position{}
	}
	character := uint32(p.Column)
	if buf != nil && p.ByteOffset <= len(buf.Content) {
		line := buf.Content[:p.ByteOffset]
		character = utf16Len(line[strings.LastIndexByte(line, '\n')+1:])
	}
	return protocol.Position{Line: uint32(p.Line), Character: character}
}

func toRange(buf *location.Buffer, r location.Range) protocol.Range {
	start := toPosition(buf, r.Start)
	end := toPosition(buf, location.NonNullOr(r.End, r.Start))
	if end == start {
		end.Character++
	}
	return protocol.Range{Start: start, End: end}
}

// spanUnits measures n code points starting at p, stopping at the end of
// the line. The result is at least 1.
func spanUnits(buf *location.Buffer, p location.Position, n int) uint32 {
	if buf == nil || p.IsNull() || p.ByteOffset > len(buf.Content) {
		return uint32(max(n, 1))
	}
	units := 0
	for _, r := range buf.Content[p.ByteOffset:] {
		if n == 0 || r == '\n' {
			break
		}
		units += utf16.RuneLen(r)
		n--
	}
	return uint32(max(units, 1))
}

func utf16Len(s string) uint32 {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return uint32(n)
}
