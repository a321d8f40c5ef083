package fix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/cmdassist/pkg/fix"
)

func TestGenerateDiff(t *testing.T) {
	t.Parallel()

	d, err := fix.GenerateDiff("cmds.txt", "say hi\nsya hi\n", "say hi\nsay hi\n")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.True(t, d.HasChanges())
	assert.Equal(t, 1, d.Additions)
	assert.Equal(t, 1, d.Deletions)
	assert.Contains(t, d.String(), "--- a/cmds.txt")
	assert.Contains(t, d.String(), "+++ b/cmds.txt")
	assert.Contains(t, d.String(), "-sya hi")
	assert.Contains(t, d.String(), "+say hi")
	assert.Equal(t, "diff --git a/cmds.txt b/cmds.txt\n", d.GitHeader())
	assert.Equal(t, d.GitHeader()+d.String(), d.FullString())
}

func TestGenerateDiff_Identical(t *testing.T) {
	t.Parallel()

	d, err := fix.GenerateDiff("cmds.txt", "say hi\n", "say hi\n")
	require.NoError(t, err)
	assert.Nil(t, d)
	assert.False(t, d.HasChanges())
}

func FuzzApplyEdits(f *testing.F) {
	f.Add("gamemode cr", 9, 11, "creative")
	f.Add("", 0, 0, "say")
	f.Add("kill @e extra", 7, 13, "")

	f.Fuzz(func(t *testing.T, text string, start, end int, newText string) {
		edits, err := fix.PrepareEdits([]fix.TextEdit{{Start: start, End: end, NewText: newText}}, len(text))
		if err != nil {
			return
		}
		got := fix.ApplyEdits(text, edits)
		if len(got) != len(text)-(end-start)+len(newText) {
			t.Errorf("length %d after replacing [%d:%d) of %q with %q", len(got), start, end, text, newText)
		}
		if c := fix.CursorAfter(end, edits); c != start+len(newText) {
			t.Errorf("cursor %d, want %d", c, start+len(newText))
		}
	})
}
