package archive

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"colonnade/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(src, []byte("remember this"), 0o644))

	zipPath, err := Compress(src)
	require.NoError(t, err)
	assert.Equal(t, src+".zip", zipPath)

	r, err := zip.OpenReader(zipPath)
	require.NoError(t, err)
	defer r.Close()
	require.Len(t, r.File, 1)
	assert.Equal(t, "notes.txt", r.File[0].Name)
}

func TestCompressDirectoryTree(t *testing.T) {
	dir := t.TempDir()
	tree := filepath.Join(dir, "project")
	require.NoError(t, os.MkdirAll(filepath.Join(tree, "src"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(tree, "readme.md"), []byte("hi"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(tree, "src", "main.txt"), []byte("body"), 0o644))

	zipPath, err := Compress(tree)
	require.NoError(t, err)

	r, err := zip.OpenReader(zipPath)
	require.NoError(t, err)
	defer r.Close()

	names := make(map[string]bool, len(r.File))
	for _, f := range r.File {
		names[f.Name] = true
	}
	// Entries are rooted at the directory's own name
	assert.True(t, names["project/"])
	assert.True(t, names["project/readme.md"])
	assert.True(t, names["project/src/"])
	assert.True(t, names["project/src/main.txt"])
}

func TestCompressRefusesExistingArchive(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(src, []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(src+".zip", []byte("occupied"), 0o644))

	_, err := Compress(src)
	require.Error(t, err)
	assert.True(t, errors.IsOSRejected(err))

	// The existing file is untouched
	body, readErr := os.ReadFile(src + ".zip")
	require.NoError(t, readErr)
	assert.Equal(t, "occupied", string(body))
}

func TestCompressMissingSource(t *testing.T) {
	_, err := Compress(filepath.Join(t.TempDir(), "gone"))
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestExtractRoundTrip(t *testing.T) {
	dir := t.TempDir()
	tree := filepath.Join(dir, "bundle")
	require.NoError(t, os.MkdirAll(filepath.Join(tree, "docs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(tree, "docs", "a.txt"), []byte("alpha"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(tree, "b.txt"), []byte("beta"), 0o644))

	zipPath, err := Compress(tree)
	require.NoError(t, err)

	dest := filepath.Join(dir, "out")
	require.NoError(t, Extract(zipPath, dest))

	alpha, err := os.ReadFile(filepath.Join(dest, "bundle", "docs", "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "alpha", string(alpha))
	beta, err := os.ReadFile(filepath.Join(dest, "bundle", "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, "beta", string(beta))
}

func TestExtractMissingArchive(t *testing.T) {
	err := Extract(filepath.Join(t.TempDir(), "gone.zip"), t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestExtractRejectsEscapingEntries(t *testing.T) {
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "evil.zip")

	out, err := os.Create(zipPath)
	require.NoError(t, err)
	zw := zip.NewWriter(out)
	w, err := zw.Create("../outside.txt")
	require.NoError(t, err)
	_, err = w.Write([]byte("escaped"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, out.Close())

	dest := filepath.Join(dir, "dest")
	err = Extract(zipPath, dest)
	require.Error(t, err)

	_, statErr := os.Lstat(filepath.Join(dir, "outside.txt"))
	assert.True(t, os.IsNotExist(statErr))
}
