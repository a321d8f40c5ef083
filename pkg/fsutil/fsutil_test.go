package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/cmdassist/pkg/fsutil"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "load.mcfunction")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	path := writeTemp(t, "say hi\n")
	content, snap, err := fsutil.ReadFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "say hi\n", string(content))
	assert.Equal(t, path, snap.Path)
	assert.EqualValues(t, 7, snap.Size)
	assert.NotZero(t, snap.Hash)
	assert.Equal(t, os.FileMode(0o600), snap.Mode.Perm())
}

func TestReadFile_Errors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	_, _, err := fsutil.ReadFile(ctx, filepath.Join(t.TempDir(), "missing"))
	require.ErrorIs(t, err, fsutil.ErrNotFound)

	_, _, err = fsutil.ReadFile(ctx, t.TempDir())
	require.ErrorIs(t, err, fsutil.ErrIsDirectory)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, _, err = fsutil.ReadFile(cancelled, writeTemp(t, ""))
	require.ErrorIs(t, err, context.Canceled)
}

func TestModified(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	_, err := fsutil.Modified(ctx, nil)
	require.ErrorIs(t, err, fsutil.ErrNilSnapshot)

	path := writeTemp(t, "say hi\n")
	_, snap, err := fsutil.ReadFile(ctx, path)
	require.NoError(t, err)

	modified, err := fsutil.Modified(ctx, snap)
	require.NoError(t, err)
	assert.False(t, modified)

	// Same size and restored mod time; only the hash differs.
	require.NoError(t, os.WriteFile(path, []byte("say ho\n"), 0o600))
	require.NoError(t, os.Chtimes(path, time.Time{}, snap.ModTime))
	modified, err = fsutil.Modified(ctx, snap)
	require.NoError(t, err)
	assert.True(t, modified)

	require.NoError(t, os.Remove(path))
	modified, err = fsutil.Modified(ctx, snap)
	require.NoError(t, err)
	assert.True(t, modified, "deleted")
}

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "new.mcfunction")
	require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte("kill @e\n"), 0))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "kill @e\n", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestReplace(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := writeTemp(t, "sya hi\n")
	_, snap, err := fsutil.ReadFile(ctx, path)
	require.NoError(t, err)

	require.NoError(t, fsutil.Replace(ctx, snap, []byte("say hi\n")))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	// The snapshot is now stale.
	err = fsutil.Replace(ctx, snap, []byte("say ho\n"))
	require.ErrorIs(t, err, fsutil.ErrModified)
}
