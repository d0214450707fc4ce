// Package trash moves filesystem items to the host trash so deletions
// stay recoverable. On Unix-likes it writes the freedesktop.org layout
// (files/ plus info/ with .trashinfo metadata); on Windows it delegates
// to the recycle bin. Listing and restoring are only possible where the
// trash is a directory we own, so those calls are capability-checked.
package trash

import (
	"time"
)

// Item is one trashed entry as recorded by its metadata.
type Item struct {
	Name         string    // name inside the trash
	OriginalPath string    // absolute path it was trashed from
	DeletedAt    time.Time // when it was trashed
	TrashPath    string    // current location inside the trash
}

// Trash is a handle on the host trash.
type Trash struct {
	dir string // base trash directory; unused on Windows
}

// New returns a Trash rooted at overrideDir, or at the platform default
// when overrideDir is empty.
func New(overrideDir string) (*Trash, error) {
	dir := overrideDir
	if dir == "" {
		var err error
		dir, err = defaultDir()
		if err != nil {
			return nil, err
		}
	}
	return &Trash{dir: dir}, nil
}
