package fs

import (
	"os"
	"path/filepath"

	"github.com/gobwas/glob"

	"colonnade/internal/errors"
)

// Lister enumerates directories, applying the configured view filters.
// It is owned by the controller's update loop and is not safe for
// concurrent mutation.
type Lister struct {
	showHidden   bool
	hidePatterns []glob.Glob
}

// Option configures a Lister.
type Option func(*Lister)

// WithShowHidden includes hidden entries in listings.
func WithShowHidden(show bool) Option {
	return func(l *Lister) {
		l.showHidden = show
	}
}

// NewLister builds a Lister. Hide patterns that do not compile are
// reported rather than silently dropped.
func NewLister(hidePatterns []string, opts ...Option) (*Lister, error) {
	l := &Lister{}
	for _, p := range hidePatterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, errors.NewConfigError("invalid hide pattern", p, errors.InvalidConfig, err)
		}
		l.hidePatterns = append(l.hidePatterns, g)
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// ShowHidden reports whether hidden entries are currently listed.
func (l *Lister) ShowHidden() bool {
	return l.showHidden
}

// SetShowHidden flips hidden-entry visibility for subsequent listings.
func (l *Lister) SetShowHidden(show bool) {
	l.showHidden = show
}

func (l *Lister) hiddenByPattern(name string) bool {
	for _, g := range l.hidePatterns {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// List returns the entries of the directory at path in os.ReadDir's
// stable lexical order, directories and files interleaved. Errors carry
// the NotFound / PermissionDenied / IOError taxonomy.
func (l *Lister) List(path string) ([]Entry, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.NewPathError("invalid path", path, errors.InvalidPath, err)
	}

	dirEntries, err := os.ReadDir(abs)
	if err != nil {
		return nil, errors.FromOS(err, abs)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		name := de.Name()
		full := filepath.Join(abs, name)
		hidden := IsHidden(full, name)
		if hidden && !l.showHidden {
			continue
		}
		if l.hiddenByPattern(name) {
			continue
		}

		e := Entry{
			Name:   name,
			Path:   full,
			Kind:   kindOfMode(de.Type()),
			Hidden: hidden,
		}
		// Metadata is best-effort: the entry may vanish between ReadDir
		// and Lstat, and a name with unreadable metadata is still worth
		// showing.
		if info, err := de.Info(); err == nil {
			e.Size = info.Size()
			e.ModTime = info.ModTime()
			e.Mode = info.Mode()
			e.Kind = kindOfMode(info.Mode())
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Stat returns a snapshot of the single item at path without following
// symlinks.
func (l *Lister) Stat(path string) (Entry, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Entry{}, errors.NewPathError("invalid path", path, errors.InvalidPath, err)
	}
	info, err := os.Lstat(abs)
	if err != nil {
		return Entry{}, errors.FromOS(err, abs)
	}
	return entryFromInfo(abs, info), nil
}
