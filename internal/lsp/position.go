package lsp

import (
	"sort"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// lineIndex maps between byte offsets and LSP positions, whose characters
// count UTF-16 code units.
type lineIndex struct {
	text   string
	starts []int
}

func newLineIndex(text string) *lineIndex {
	starts := []int{0}
	for i := range len(text) {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineIndex{text: text, starts: starts}
}

// lineCount returns the number of lines, counting a final empty line.
func (x *lineIndex) lineCount() int {
	return len(x.starts)
}

// line returns the content of line n without its line break.
func (x *lineIndex) line(n int) string {
	if n < 0 || n >= len(x.starts) {
		return ""
	}
	end := len(x.text)
	if n+1 < len(x.starts) {
		end = x.starts[n+1]
	}
	return strings.TrimRight(x.text[x.starts[n]:end], "\r\n")
}

// lineStart returns the byte offset of line n.
func (x *lineIndex) lineStart(n int) int {
	return x.starts[max(0, min(n, len(x.starts)-1))]
}

// offset converts pos to a byte offset. Positions past the end of a line
// clamp to the line end; lines past the end clamp to the text end.
func (x *lineIndex) offset(pos protocol.Position) int {
	n := int(pos.Line)
	if n >= len(x.starts) {
		return len(x.text)
	}
	line := x.line(n)
	start := x.starts[n]

	units := int(pos.Character)
	i := 0
	for i < len(line) && units > 0 {
		r, size := utf8.DecodeRuneInString(line[i:])
		w := utf16.RuneLen(r)
		if w < 0 {
			w = 1
		}
		if w > units {
			break
		}
		units -= w
		i += size
	}
	return start + i
}

// position converts a byte offset to a position. Offsets inside a multi-byte
// rune resolve to the rune start.
func (x *lineIndex) position(offset int) protocol.Position {
	offset = max(0, min(offset, len(x.text)))
	n := sort.Search(len(x.starts), func(i int) bool { return x.starts[i] > offset }) - 1

	units := 0
	for i := x.starts[n]; i < offset; {
		r, size := utf8.DecodeRuneInString(x.text[i:])
		if i+size > offset {
			break
		}
		w := utf16.RuneLen(r)
		if w < 0 {
			w = 1
		}
		units += w
		i += size
	}
	return protocol.Position{
		Line:      protocol.UInteger(n),
		Character: protocol.UInteger(units),
	}
}

// rangeOf converts the byte range [start, end) to an LSP range.
func (x *lineIndex) rangeOf(start, end int) protocol.Range {
	return protocol.Range{Start: x.position(start), End: x.position(end)}
}
