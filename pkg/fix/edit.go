// Package fix provides text edits over command input, used to accept
// completions and to apply the corrections suggested by diagnostics.
package fix

// TextEdit replaces the bytes [Start, End) of a text with NewText.
type TextEdit struct {
	// Start is the byte index where the edit begins (inclusive).
	Start int `json:"start"`

	// End is the byte index where the edit ends (exclusive).
	End int `json:"end"`

	// NewText is the replacement text.
	NewText string `json:"newText"`
}

// EditBuilder accumulates text edits for one text.
type EditBuilder struct {
	edits []TextEdit
}

// NewEditBuilder creates a new EditBuilder.
func NewEditBuilder() *EditBuilder {
	return &EditBuilder{edits: make([]TextEdit, 0)}
}

// ReplaceRange adds an edit that replaces bytes [start, end) with newText.
func (b *EditBuilder) ReplaceRange(start, end int, newText string) *EditBuilder {
	b.edits = append(b.edits, TextEdit{Start: start, End: end, NewText: newText})
	return b
}

// Insert adds an edit that inserts text at the given offset.
func (b *EditBuilder) Insert(offset int, text string) *EditBuilder {
	return b.ReplaceRange(offset, offset, text)
}

// Delete adds an edit that deletes bytes [start, end).
func (b *EditBuilder) Delete(start, end int) *EditBuilder {
	return b.ReplaceRange(start, end, "")
}

// Edits returns the accumulated edits in insertion order.
func (b *EditBuilder) Edits() []TextEdit {
	return b.edits
}

// Len returns the number of accumulated edits.
func (b *EditBuilder) Len() int {
	return len(b.edits)
}

// Apply validates the accumulated edits and applies them to text.
func (b *EditBuilder) Apply(text string) (string, error) {
	prepared, err := PrepareEdits(b.edits, len(text))
	if err != nil {
		return text, err
	}
	return ApplyEdits(text, prepared), nil
}
