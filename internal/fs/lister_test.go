package fs

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"colonnade/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLister(t *testing.T, patterns []string, opts ...Option) *Lister {
	t.Helper()
	l, err := NewLister(patterns, opts...)
	require.NoError(t, err)
	return l
}

func TestListKindsAndOrder(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "B"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "A"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "f.txt"), []byte("body"), 0o644))

	if runtime.GOOS != "windows" {
		require.NoError(t, os.Symlink(filepath.Join(dir, "f.txt"), filepath.Join(dir, "link")))
	}

	l := newTestLister(t, nil)
	entries, err := l.List(dir)
	require.NoError(t, err)

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	if runtime.GOOS != "windows" {
		// os.ReadDir returns lexical order; directories and files interleave
		assert.Equal(t, []string{"A", "B", "f.txt", "link"}, names)
	} else {
		assert.Equal(t, []string{"A", "B", "f.txt"}, names)
	}

	byName := make(map[string]Entry, len(entries))
	for _, e := range entries {
		byName[e.Name] = e
	}

	assert.Equal(t, KindDirectory, byName["A"].Kind)
	assert.True(t, byName["A"].IsDir())
	assert.Equal(t, KindFile, byName["f.txt"].Kind)
	assert.Equal(t, int64(4), byName["f.txt"].Size)
	assert.Equal(t, filepath.Join(dir, "f.txt"), byName["f.txt"].Path)
	assert.False(t, byName["f.txt"].ModTime.IsZero())

	if runtime.GOOS != "windows" {
		// Symlinks are their own kind, never resolved to their target
		assert.Equal(t, KindSymlink, byName["link"].Kind)
		assert.False(t, byName["link"].IsDir())
	}
}

func TestListSymlinkCycleDoesNotRecurse(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation requires privileges on Windows")
	}
	dir := t.TempDir()
	// A symlink pointing back at its own directory
	require.NoError(t, os.Symlink(dir, filepath.Join(dir, "self")))

	l := newTestLister(t, nil)
	entries, err := l.List(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, KindSymlink, entries[0].Kind)
}

func TestListHiddenFiltering(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".secret"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "plain.txt"), nil, 0o644))

	t.Run("hidden entries are skipped by default", func(t *testing.T) {
		l := newTestLister(t, nil)
		entries, err := l.List(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "plain.txt", entries[0].Name)
	})

	t.Run("show hidden includes them flagged", func(t *testing.T) {
		l := newTestLister(t, nil, WithShowHidden(true))
		entries, err := l.List(dir)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, ".secret", entries[0].Name)
		assert.True(t, entries[0].Hidden)
		assert.False(t, entries[1].Hidden)
	})

	t.Run("toggle at runtime", func(t *testing.T) {
		l := newTestLister(t, nil)
		assert.False(t, l.ShowHidden())
		l.SetShowHidden(true)
		assert.True(t, l.ShowHidden())
		entries, err := l.List(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})
}

func TestListHidePatterns(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "keep.txt"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scratch.tmp"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "edit.swp"), nil, 0o644))

	l := newTestLister(t, []string{"*.tmp", "*.swp"})
	entries, err := l.List(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "keep.txt", entries[0].Name)
}

func TestNewListerRejectsBadPattern(t *testing.T) {
	_, err := NewLister([]string{"["})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidConfig(err))
}

func TestListErrors(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		l := newTestLister(t, nil)
		_, err := l.List(filepath.Join(t.TempDir(), "gone"))
		require.Error(t, err)
		assert.True(t, errors.IsNotFound(err))
	})

	t.Run("listing a file", func(t *testing.T) {
		dir := t.TempDir()
		file := filepath.Join(dir, "plain.txt")
		require.NoError(t, os.WriteFile(file, nil, 0o644))

		l := newTestLister(t, nil)
		_, err := l.List(file)
		require.Error(t, err)
		assert.True(t, errors.IsIOError(err))
	})

	t.Run("permission denied", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("mode bits do not restrict access on Windows")
		}
		if os.Geteuid() == 0 {
			t.Skip("running as root, permissions are not enforced")
		}
		dir := t.TempDir()
		locked := filepath.Join(dir, "locked")
		require.NoError(t, os.Mkdir(locked, 0o000))
		t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

		l := newTestLister(t, nil)
		_, err := l.List(locked)
		require.Error(t, err)
		assert.True(t, errors.IsPermissionDenied(err))

		var pathErr *errors.PathError
		require.True(t, errors.As(err, &pathErr))
		assert.Equal(t, locked, pathErr.Path())
	})
}

func TestStat(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "doc.md")
	require.NoError(t, os.WriteFile(file, []byte("# doc"), 0o644))

	l := newTestLister(t, nil)

	t.Run("file", func(t *testing.T) {
		e, err := l.Stat(file)
		require.NoError(t, err)
		assert.Equal(t, "doc.md", e.Name)
		assert.Equal(t, file, e.Path)
		assert.Equal(t, KindFile, e.Kind)
		assert.Equal(t, int64(5), e.Size)
	})

	t.Run("directory", func(t *testing.T) {
		e, err := l.Stat(dir)
		require.NoError(t, err)
		assert.Equal(t, KindDirectory, e.Kind)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := l.Stat(filepath.Join(dir, "gone"))
		require.Error(t, err)
		assert.True(t, errors.IsNotFound(err))
	})
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "file", KindFile.String())
	assert.Equal(t, "directory", KindDirectory.String())
	assert.Equal(t, "symlink", KindSymlink.String())
	assert.Equal(t, "other", KindOther.String())
}
