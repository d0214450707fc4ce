package fs

import (
	"os"
	"path/filepath"
	"runtime"
)

// Location is a well-known place offered for quick navigation.
type Location struct {
	Label string
	Path  string
}

// Locations returns the quick-navigation places that exist on this host:
// the home directory, the usual user folders beneath it, and mounted
// volumes. Missing folders are skipped rather than offered dead.
func Locations() []Location {
	var locs []Location

	home, err := os.UserHomeDir()
	if err == nil {
		locs = append(locs, Location{Label: "Home", Path: home})
		for _, folder := range []string{"Documents", "Downloads", "Music", "Pictures", "Videos"} {
			p := filepath.Join(home, folder)
			if info, err := os.Stat(p); err == nil && info.IsDir() {
				locs = append(locs, Location{Label: folder, Path: p})
			}
		}
		if p := trashFolder(home); p != "" {
			if info, err := os.Stat(p); err == nil && info.IsDir() {
				locs = append(locs, Location{Label: "Trash", Path: p})
			}
		}
	}

	locs = append(locs, volumes()...)
	return locs
}

// trashFolder returns the directory trashed items live in, or "" on
// hosts where the trash is not a plain directory. The unix path matches
// the freedesktop home trash layout.
func trashFolder(home string) string {
	switch runtime.GOOS {
	case "windows":
		return ""
	case "darwin":
		return filepath.Join(home, ".Trash")
	}
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "Trash", "files")
	}
	return filepath.Join(home, ".local", "share", "Trash", "files")
}

// volumes lists mounted media the way the host surfaces them.
func volumes() []Location {
	if runtime.GOOS == "windows" {
		return driveLetters()
	}

	var roots []string
	switch runtime.GOOS {
	case "darwin":
		roots = []string{"/Volumes"}
	default:
		user := os.Getenv("USER")
		roots = []string{filepath.Join("/media", user), "/media", "/mnt"}
	}

	seen := make(map[string]bool)
	var locs []Location
	for _, root := range roots {
		entries, err := os.ReadDir(root)
		if err != nil {
			continue
		}
		for _, de := range entries {
			if !de.IsDir() {
				continue
			}
			p := filepath.Join(root, de.Name())
			if seen[p] {
				continue
			}
			seen[p] = true
			locs = append(locs, Location{Label: de.Name(), Path: p})
		}
	}
	return locs
}
