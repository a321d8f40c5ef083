package fix

import "strings"

// ApplyEdits applies a sorted, validated slice of edits to text.
// Edits must be prepared with PrepareEdits before calling.
func ApplyEdits(text string, edits []TextEdit) string {
	if len(edits) == 0 {
		return text
	}

	delta := 0
	for _, e := range edits {
		delta += len(e.NewText) - (e.End - e.Start)
	}

	var out strings.Builder
	out.Grow(max(len(text)+delta, 0))

	cursor := 0
	for _, e := range edits {
		out.WriteString(text[cursor:e.Start])
		out.WriteString(e.NewText)
		cursor = e.End
	}
	out.WriteString(text[cursor:])

	return out.String()
}

// CursorAfter maps offset through the edits: offsets past an edit move by its
// length change, and offsets inside a replaced range move to its end.
func CursorAfter(offset int, edits []TextEdit) int {
	shift := 0
	for _, e := range edits {
		switch {
		case offset >= e.End:
			shift += len(e.NewText) - (e.End - e.Start)
		case offset > e.Start:
			return e.Start + shift + len(e.NewText)
		}
	}
	return offset + shift
}
