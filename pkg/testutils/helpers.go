// Package testutils holds small fixture and rendering helpers shared by
// the UI tests.
package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// CreateTestFilesWithContent writes the given files (name to content)
// under dir.
func CreateTestFilesWithContent(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
}

// CreateBrowseTree builds the directory shape the navigation tests
// drive: a nested directory, an empty one, and a file at each of the
// first two levels.
//
//	dir/
//	  docs/
//	    deep/
//	    note.txt
//	  music/
//	  readme.txt
func CreateBrowseTree(t *testing.T, dir string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "docs", "deep"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "music"), 0o755))
	CreateTestFilesWithContent(t, dir, map[string]string{"readme.txt": "hello"})
	CreateTestFilesWithContent(t, filepath.Join(dir, "docs"), map[string]string{"note.txt": "note"})
}

// StripANSI drops ANSI escape sequences so tests can match rendered
// views as plain text. Sequences are assumed to end at the first letter,
// which holds for everything lipgloss emits.
func StripANSI(str string) string {
	var out []rune
	inEscape := false
	for _, r := range str {
		switch {
		case r == '\x1b':
			inEscape = true
		case inEscape:
			if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
				inEscape = false
			}
		default:
			out = append(out, r)
		}
	}
	return string(out)
}
