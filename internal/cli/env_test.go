package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCursorOffset(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cursor int
		want   int
	}{
		{cursor: -1, want: 7},
		{cursor: -3, want: 5},
		{cursor: -100, want: 0},
		{cursor: 0, want: 0},
		{cursor: 4, want: 4},
		{cursor: 100, want: 7},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cursorOffset(tt.cursor, "kill @e"), "cursor %d", tt.cursor)
	}
}

func TestRpad(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ids  ", rpad("ids", 5))
	assert.Equal(t, "highlight", rpad("highlight", 5))
	assert.Equal(t, "a\nb", trimTrailingWhitespaces("a \t\nb  "))
}
