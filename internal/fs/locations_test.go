package fs

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func locationByLabel(locs []Location, label string) (Location, bool) {
	for _, l := range locs {
		if l.Label == label {
			return l, true
		}
	}
	return Location{}, false
}

func TestLocations(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("os.UserHomeDir does not follow HOME on windows")
	}
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_DATA_HOME", "")

	t.Run("home is always offered", func(t *testing.T) {
		locs := Locations()
		loc, ok := locationByLabel(locs, "Home")
		require.True(t, ok)
		assert.Equal(t, home, loc.Path)
	})

	t.Run("missing folders are skipped", func(t *testing.T) {
		locs := Locations()
		_, ok := locationByLabel(locs, "Documents")
		assert.False(t, ok)
		_, ok = locationByLabel(locs, "Trash")
		assert.False(t, ok)
	})

	t.Run("user folders appear once created", func(t *testing.T) {
		require.NoError(t, os.Mkdir(filepath.Join(home, "Documents"), 0o755))
		locs := Locations()
		loc, ok := locationByLabel(locs, "Documents")
		require.True(t, ok)
		assert.Equal(t, filepath.Join(home, "Documents"), loc.Path)
	})

	t.Run("trash appears once created", func(t *testing.T) {
		trash := trashFolder(home)
		require.NotEmpty(t, trash)
		require.NoError(t, os.MkdirAll(trash, 0o700))

		locs := Locations()
		loc, ok := locationByLabel(locs, "Trash")
		require.True(t, ok)
		assert.Equal(t, trash, loc.Path)
	})
}

func TestTrashFolderHonorsXDGDataHome(t *testing.T) {
	if runtime.GOOS == "windows" || runtime.GOOS == "darwin" {
		t.Skip("XDG only applies to freedesktop hosts")
	}
	data := t.TempDir()
	t.Setenv("XDG_DATA_HOME", data)
	assert.Equal(t, filepath.Join(data, "Trash", "files"), trashFolder("/home/ignored"))
}
