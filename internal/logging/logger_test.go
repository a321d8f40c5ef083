package logging_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/cmdassist/internal/logging"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level string
		want  log.Level
	}{
		{"debug", log.DebugLevel},
		{"info", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"warning", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"invalid", log.InfoLevel},
		{"", log.InfoLevel},
		{" DEBUG ", log.DebugLevel},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, logging.ParseLevel(tt.level))
			assert.Equal(t, tt.want, logging.New(tt.level).GetLevel())
		})
	}
}

func TestNewWithOptions(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.NewWithOptions(logging.Options{Level: "debug", Writer: &buf, Prefix: "lsp"})
	logger.Debug("parsed", logging.FieldTokens, 3)

	out := buf.String()
	assert.Contains(t, out, "lsp")
	assert.Contains(t, out, "parsed")
	assert.Contains(t, out, "tokens=3")
}

func TestDiscard(t *testing.T) {
	t.Parallel()

	assert.Equal(t, log.ErrorLevel, logging.Discard().GetLevel())
}

//nolint:paralleltest // Modifies the package default logger.
func TestSetDefault(t *testing.T) {
	original := logging.Default()
	defer logging.SetDefault(original)

	custom := logging.New("warn")
	logging.SetDefault(custom)
	assert.Same(t, custom, logging.Default())

	logging.SetLevel("debug")
	assert.Equal(t, log.DebugLevel, custom.GetLevel())
}

func TestContext(t *testing.T) {
	t.Parallel()

	custom := logging.New("error")
	ctx := logging.WithLogger(context.Background(), custom)
	assert.Same(t, custom, logging.FromContext(ctx))

	require.NotNil(t, logging.FromContext(context.Background()))
	//nolint:staticcheck // A nil context falls back to the default logger.
	require.NotNil(t, logging.FromContext(nil))
}

func TestWithFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := logging.WithLogger(context.Background(), logging.NewWithOptions(logging.Options{Writer: &buf}))
	ctx = logging.WithFields(ctx, logging.FieldURI, "file:///a.mcfunction")
	logging.FromContext(ctx).Info("opened")

	assert.Contains(t, buf.String(), "uri=file:///a.mcfunction")
}
