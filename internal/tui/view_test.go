package tui

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	alsrt "github.com/alecthomas/assert"
	"github.com/stretchr/testify/require"

	"colonnade/pkg/testutils"
)

func plainView(m *Model) string {
	return testutils.StripANSI(m.View())
}

func TestViewListsEntries(t *testing.T) {
	root := testRoot(t)
	m := newTestModel(t, root)

	out := plainView(m)
	alsrt.Contains(t, out, "docs")
	alsrt.Contains(t, out, "music")
	alsrt.Contains(t, out, "readme.txt")
	alsrt.Contains(t, out, root)
}

func TestViewShowsChildColumn(t *testing.T) {
	root := testRoot(t)
	m := newTestModel(t, root)

	press(t, m, "j") // select docs/
	out := plainView(m)
	alsrt.Contains(t, out, "note.txt")
	alsrt.Contains(t, out, "deep")
}

func TestViewMarksEmptyDirectory(t *testing.T) {
	root := testRoot(t)
	m := newTestModel(t, root)

	press(t, m, "j", "j") // select music/, which is empty
	out := plainView(m)
	alsrt.Contains(t, out, "(empty)")
}

func TestViewStatusShowsFileSize(t *testing.T) {
	root := testRoot(t)
	m := newTestModel(t, root)

	press(t, m, "G") // readme.txt, 5 bytes
	out := plainView(m)
	alsrt.Contains(t, out, "readme.txt")
	alsrt.Contains(t, out, "5 B")
}

func TestViewConfirmPrompt(t *testing.T) {
	root := testRoot(t)
	m := newTestModel(t, root)
	m.cfg.Confirm.Delete = true

	press(t, m, "G", "D")
	out := plainView(m)
	alsrt.Contains(t, out, "permanently delete readme.txt? (y/n)")
}

func TestViewPermissionDeniedColumn(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits work differently on windows")
	}
	if os.Getuid() == 0 {
		t.Skip("root ignores permission bits")
	}
	root := testRoot(t)
	locked := filepath.Join(root, "locked")
	require.NoError(t, os.Mkdir(locked, 0o000))
	t.Cleanup(func() { os.Chmod(locked, 0o755) })

	m := newTestModel(t, root)
	press(t, m, "j", "j") // docs, locked (lexical order: docs, locked, music, readme.txt)

	out := plainView(m)
	alsrt.Contains(t, out, "permission denied")
}
