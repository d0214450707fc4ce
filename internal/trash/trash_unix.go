//go:build !windows

package trash

import (
	"bufio"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"

	"colonnade/internal/errors"
)

const trashInfoTimeLayout = "2006-01-02T15:04:05"

// defaultDir resolves the freedesktop home trash: $XDG_DATA_HOME/Trash,
// falling back to ~/.local/share/Trash.
func defaultDir() (string, error) {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "Trash"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", "Trash"), nil
}

// FilesDir returns the directory trashed items live in, for use as a
// quick-navigation location.
func (t *Trash) FilesDir() string {
	return filepath.Join(t.dir, "files")
}

func (t *Trash) infoDir() string {
	return filepath.Join(t.dir, "info")
}

func (t *Trash) ensureDirs() error {
	for _, d := range []string{t.FilesDir(), t.infoDir()} {
		if err := os.MkdirAll(d, 0o700); err != nil {
			return errors.FromOS(err, d)
		}
	}
	return nil
}

// Put moves the item at path into the trash and records where it came
// from. Name collisions inside the trash get a unique suffix.
func (t *Trash) Put(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.NewPathError("invalid path", path, errors.InvalidPath, err)
	}
	if _, err := os.Lstat(abs); err != nil {
		return errors.FromOS(err, abs)
	}
	if err := t.ensureDirs(); err != nil {
		return err
	}

	name := filepath.Base(abs)
	if _, err := os.Lstat(filepath.Join(t.FilesDir(), name)); err == nil {
		name = uniqueName(name)
	}

	// Reserve the name by creating the metadata exclusively, then move.
	infoPath := filepath.Join(t.infoDir(), name+".trashinfo")
	info, err := os.OpenFile(infoPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return errors.FromOS(err, infoPath)
	}
	escaped := (&url.URL{Path: abs}).EscapedPath()
	_, werr := fmt.Fprintf(info, "[Trash Info]\nPath=%s\nDeletionDate=%s\n",
		escaped, time.Now().Format(trashInfoTimeLayout))
	cerr := info.Close()
	if werr != nil || cerr != nil {
		os.Remove(infoPath)
		return errors.NewPathError("cannot write trash metadata", infoPath, errors.IOError, werr)
	}

	dest := filepath.Join(t.FilesDir(), name)
	if err := moveItem(abs, dest); err != nil {
		os.Remove(infoPath)
		return err
	}
	return nil
}

// List returns the trashed items that carry metadata, newest first.
func (t *Trash) List() ([]Item, error) {
	entries, err := os.ReadDir(t.infoDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.FromOS(err, t.infoDir())
	}

	var items []Item
	for _, de := range entries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ".trashinfo") {
			continue
		}
		name := strings.TrimSuffix(de.Name(), ".trashinfo")
		item, err := t.readInfo(name)
		if err != nil {
			continue
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].DeletedAt.After(items[j].DeletedAt)
	})
	return items, nil
}

// Restore moves the named trashed item back to where it came from.
// It refuses to overwrite anything that reappeared at the original path.
func (t *Trash) Restore(name string) (string, error) {
	item, err := t.readInfo(name)
	if err != nil {
		return "", err
	}
	if _, err := os.Lstat(item.OriginalPath); err == nil {
		return "", errors.NewPathError("original path exists again", item.OriginalPath, errors.OSRejected, nil)
	}
	if err := os.MkdirAll(filepath.Dir(item.OriginalPath), 0o755); err != nil {
		return "", errors.FromOS(err, filepath.Dir(item.OriginalPath))
	}
	if err := moveItem(item.TrashPath, item.OriginalPath); err != nil {
		return "", err
	}
	os.Remove(filepath.Join(t.infoDir(), name+".trashinfo"))
	return item.OriginalPath, nil
}

// Empty permanently removes everything in the trash and reports how many
// top-level items went away.
func (t *Trash) Empty() (int, error) {
	entries, err := os.ReadDir(t.FilesDir())
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, errors.FromOS(err, t.FilesDir())
	}
	count := 0
	for _, de := range entries {
		if err := os.RemoveAll(filepath.Join(t.FilesDir(), de.Name())); err != nil {
			return count, errors.FromOS(err, filepath.Join(t.FilesDir(), de.Name()))
		}
		count++
	}
	infos, err := os.ReadDir(t.infoDir())
	if err == nil {
		for _, de := range infos {
			os.RemoveAll(filepath.Join(t.infoDir(), de.Name()))
		}
	}
	return count, nil
}

func (t *Trash) readInfo(name string) (Item, error) {
	infoPath := filepath.Join(t.infoDir(), name+".trashinfo")
	f, err := os.Open(infoPath)
	if err != nil {
		return Item{}, errors.FromOS(err, infoPath)
	}
	defer f.Close()

	item := Item{
		Name:      name,
		TrashPath: filepath.Join(t.FilesDir(), name),
	}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "Path="):
			raw := strings.TrimPrefix(line, "Path=")
			if p, err := url.PathUnescape(raw); err == nil {
				item.OriginalPath = p
			} else {
				item.OriginalPath = raw
			}
		case strings.HasPrefix(line, "DeletionDate="):
			if ts, err := time.ParseInLocation(trashInfoTimeLayout, strings.TrimPrefix(line, "DeletionDate="), time.Local); err == nil {
				item.DeletedAt = ts
			}
		}
	}
	if item.OriginalPath == "" {
		return Item{}, errors.NewPathError("trash metadata has no Path", infoPath, errors.IOError, nil)
	}
	return item, nil
}

// uniqueName appends a short random suffix before the extension.
func uniqueName(name string) string {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	return fmt.Sprintf("%s.%s%s", stem, uuid.NewString()[:8], ext)
}

// moveItem renames src to dest, falling back to copy+delete when the
// trash lives on another device.
func moveItem(src, dest string) error {
	err := os.Rename(src, dest)
	if err == nil {
		return nil
	}
	var linkErr *os.LinkError
	if errors.As(err, &linkErr) && errors.Is(linkErr.Err, syscall.EXDEV) {
		if err := copyTree(src, dest); err != nil {
			os.RemoveAll(dest)
			return err
		}
		if err := os.RemoveAll(src); err != nil {
			return errors.FromOS(err, src)
		}
		return nil
	}
	return errors.FromOS(err, src)
}

func copyTree(src, dest string) error {
	info, err := os.Lstat(src)
	if err != nil {
		return errors.FromOS(err, src)
	}
	switch {
	case info.Mode()&os.ModeSymlink != 0:
		target, err := os.Readlink(src)
		if err != nil {
			return errors.FromOS(err, src)
		}
		if err := os.Symlink(target, dest); err != nil {
			return errors.FromOS(err, dest)
		}
		return nil
	case info.IsDir():
		if err := os.MkdirAll(dest, info.Mode().Perm()); err != nil {
			return errors.FromOS(err, dest)
		}
		entries, err := os.ReadDir(src)
		if err != nil {
			return errors.FromOS(err, src)
		}
		for _, de := range entries {
			if err := copyTree(filepath.Join(src, de.Name()), filepath.Join(dest, de.Name())); err != nil {
				return err
			}
		}
		return nil
	default:
		return copyFile(src, dest, info.Mode().Perm())
	}
}

func copyFile(src, dest string, perm os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.FromOS(err, src)
	}
	defer in.Close()
	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return errors.FromOS(err, dest)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return errors.NewPathError("copy failed", dest, errors.IOError, err)
	}
	return out.Close()
}
