// Package fs provides directory enumeration for the column browser.
// Listings are immutable snapshots: every navigation re-lists, so the
// filesystem itself stays the source of truth.
package fs

import (
	"os"
	"path/filepath"
	"time"
)

// Kind classifies a directory entry. Symlinks are reported as their own
// kind and never followed while resolving it.
type Kind int

const (
	KindFile Kind = iota
	KindDirectory
	KindSymlink
	KindOther
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDirectory:
		return "directory"
	case KindSymlink:
		return "symlink"
	default:
		return "other"
	}
}

// Entry is an immutable snapshot of one filesystem item at listing time.
type Entry struct {
	Name    string
	Path    string // absolute
	Kind    Kind
	Size    int64
	ModTime time.Time
	Mode    os.FileMode
	Hidden  bool
}

// IsDir reports whether the entry is a directory.
func (e Entry) IsDir() bool {
	return e.Kind == KindDirectory
}

func kindOfMode(mode os.FileMode) Kind {
	switch {
	case mode&os.ModeSymlink != 0:
		return KindSymlink
	case mode.IsDir():
		return KindDirectory
	case mode.IsRegular():
		return KindFile
	default:
		return KindOther
	}
}

func entryFromInfo(path string, info os.FileInfo) Entry {
	name := filepath.Base(path)
	return Entry{
		Name:    name,
		Path:    path,
		Kind:    kindOfMode(info.Mode()),
		Size:    info.Size(),
		ModTime: info.ModTime(),
		Mode:    info.Mode(),
		Hidden:  IsHidden(path, name),
	}
}
