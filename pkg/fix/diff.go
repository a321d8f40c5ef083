package fix

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// diffContext is the number of unchanged lines around each hunk.
const diffContext = 3

// Diff is a unified diff between an original and a modified text.
type Diff struct {
	// Path is the file path for the diff header.
	Path string

	// Original is the original text.
	Original string

	// Modified is the modified text.
	Modified string

	// Unified is the rendered diff without the git header.
	Unified string

	// Additions is the number of lines added.
	Additions int

	// Deletions is the number of lines deleted.
	Deletions int
}

// GenerateDiff computes a unified diff. Returns nil if the texts are
// identical.
func GenerateDiff(path, original, modified string) (*Diff, error) {
	if original == modified {
		return nil, nil
	}

	unified, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(original),
		B:        difflib.SplitLines(modified),
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  diffContext,
	})
	if err != nil {
		return nil, fmt.Errorf("diff %s: %w", path, err)
	}

	d := &Diff{Path: path, Original: original, Modified: modified, Unified: unified}
	for _, line := range strings.Split(unified, "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		case strings.HasPrefix(line, "+"):
			d.Additions++
		case strings.HasPrefix(line, "-"):
			d.Deletions++
		}
	}
	return d, nil
}

// GitHeader returns the "diff --git" line preceding the unified diff.
func (d *Diff) GitHeader() string {
	return fmt.Sprintf("diff --git a/%s b/%s\n", d.Path, d.Path)
}

// String returns the unified diff.
func (d *Diff) String() string {
	return d.Unified
}

// FullString returns the diff with its git header.
func (d *Diff) FullString() string {
	return d.GitHeader() + d.Unified
}

// HasChanges reports whether the diff adds or removes any line.
func (d *Diff) HasChanges() bool {
	return d != nil && (d.Additions > 0 || d.Deletions > 0)
}
