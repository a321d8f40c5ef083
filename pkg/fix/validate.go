package fix

import (
	"fmt"
	"sort"
)

// ValidationError describes an invalid edit.
type ValidationError struct {
	Edit    TextEdit
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid edit [%d:%d]: %s", e.Edit.Start, e.Edit.End, e.Message)
}

// ConflictError describes overlapping edits.
type ConflictError struct {
	Edit1 TextEdit
	Edit2 TextEdit
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("overlapping edits: [%d:%d] and [%d:%d]",
		e.Edit1.Start, e.Edit1.End,
		e.Edit2.Start, e.Edit2.End)
}

// ValidateEdits checks that all edits have valid ranges for the given text length.
// Returns nil if all edits are valid, or the first validation error encountered.
func ValidateEdits(edits []TextEdit, textLen int) error {
	for _, edit := range edits {
		if edit.Start < 0 {
			return &ValidationError{Edit: edit, Message: "start offset is negative"}
		}
		if edit.End < edit.Start {
			return &ValidationError{Edit: edit, Message: "end offset is before start offset"}
		}
		if edit.End > textLen {
			return &ValidationError{
				Edit:    edit,
				Message: fmt.Sprintf("end offset %d exceeds text length %d", edit.End, textLen),
			}
		}
	}
	return nil
}

// SortEdits sorts edits by start offset, then by end offset.
func SortEdits(edits []TextEdit) {
	sort.SliceStable(edits, func(i, j int) bool {
		if edits[i].Start != edits[j].Start {
			return edits[i].Start < edits[j].Start
		}
		return edits[i].End < edits[j].End
	})
}

// DetectConflicts checks for overlapping edits in a sorted slice.
// Two insertions at the same offset also conflict, as their order would be
// ambiguous.
func DetectConflicts(edits []TextEdit) error {
	for i := 1; i < len(edits); i++ {
		prev := edits[i-1]
		curr := edits[i]
		if curr.Start < prev.End || curr.Start == prev.Start {
			return &ConflictError{Edit1: prev, Edit2: curr}
		}
	}
	return nil
}

// PrepareEdits validates, sorts, and checks for conflicts.
// Returns the sorted edits and any error encountered.
func PrepareEdits(edits []TextEdit, textLen int) ([]TextEdit, error) {
	if len(edits) == 0 {
		return edits, nil
	}

	if err := ValidateEdits(edits, textLen); err != nil {
		return nil, err
	}

	result := make([]TextEdit, len(edits))
	copy(result, edits)
	SortEdits(result)

	if err := DetectConflicts(result); err != nil {
		return nil, err
	}

	return result, nil
}

// FilterConflicts drops edits overlapping an earlier one from a sorted slice.
// Earlier edits (by start position) take precedence.
func FilterConflicts(edits []TextEdit) (accepted, skipped []TextEdit) {
	if len(edits) == 0 {
		return nil, nil
	}

	accepted = make([]TextEdit, 0, len(edits))
	accepted = append(accepted, edits[0])
	last := edits[0]

	for _, edit := range edits[1:] {
		if edit.Start >= last.End && edit.Start != last.Start {
			accepted = append(accepted, edit)
			last = edit
		} else {
			skipped = append(skipped, edit)
		}
	}

	return accepted, skipped
}

// PrepareEditsFiltered validates and sorts edits, then filters conflicts
// instead of failing on them. The error is only for invalid ranges.
func PrepareEditsFiltered(edits []TextEdit, textLen int) (accepted, skipped []TextEdit, err error) {
	if len(edits) == 0 {
		return nil, nil, nil
	}

	if err := ValidateEdits(edits, textLen); err != nil {
		return nil, nil, err
	}

	sorted := make([]TextEdit, len(edits))
	copy(sorted, edits)
	SortEdits(sorted)

	accepted, skipped = FilterConflicts(sorted)
	return accepted, skipped, nil
}
