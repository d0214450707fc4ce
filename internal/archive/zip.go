// Package archive implements the zip compress and extract actions.
package archive

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"colonnade/internal/errors"
)

// Compress zips the file or directory tree at src into "<src>.zip" next
// to it and returns the archive path. An archive that already exists is
// never overwritten.
func Compress(src string) (string, error) {
	abs, err := filepath.Abs(src)
	if err != nil {
		return "", errors.NewPathError("invalid path", src, errors.InvalidPath, err)
	}
	info, err := os.Lstat(abs)
	if err != nil {
		return "", errors.FromOS(err, abs)
	}

	zipPath := abs + ".zip"
	if _, err := os.Lstat(zipPath); err == nil {
		return "", errors.NewPathError("archive already exists", zipPath, errors.OSRejected, nil)
	}

	out, err := os.OpenFile(zipPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", errors.FromOS(err, zipPath)
	}
	zw := zip.NewWriter(out)

	base := filepath.Base(abs)
	if info.IsDir() {
		err = filepath.WalkDir(abs, func(path string, de os.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			rel, err := filepath.Rel(abs, path)
			if err != nil {
				return err
			}
			name := base
			if rel != "." {
				name = filepath.ToSlash(filepath.Join(base, rel))
			}
			return addEntry(zw, path, name, de)
		})
	} else {
		err = addFile(zw, abs, base, info.Mode())
	}
	if err != nil {
		zw.Close()
		out.Close()
		os.Remove(zipPath)
		return "", errors.NewPathError("compress failed", abs, errors.IOError, err)
	}

	if err := zw.Close(); err != nil {
		out.Close()
		os.Remove(zipPath)
		return "", errors.NewPathError("compress failed", abs, errors.IOError, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(zipPath)
		return "", errors.FromOS(err, zipPath)
	}
	return zipPath, nil
}

func addEntry(zw *zip.Writer, path, name string, de os.DirEntry) error {
	info, err := de.Info()
	if err != nil {
		return err
	}
	switch {
	case info.IsDir():
		header, err := zip.FileInfoHeader(info)
		if err != nil {
			return err
		}
		header.Name = name + "/"
		_, err = zw.CreateHeader(header)
		return err
	case info.Mode().IsRegular():
		return addFile(zw, path, name, info.Mode())
	default:
		// Sockets, devices and symlinks have no useful zip representation
		return nil
	}
}

func addFile(zw *zip.Writer, path, name string, mode os.FileMode) error {
	in, err := os.Open(path)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	header.Name = name
	header.Method = zip.Deflate
	w, err := zw.CreateHeader(header)
	if err != nil {
		return err
	}
	_, err = io.Copy(w, in)
	return err
}

// Extract unpacks the archive at zipPath into destDir, creating it if
// needed. Entries that would escape destDir are rejected.
func Extract(zipPath, destDir string) error {
	absZip, err := filepath.Abs(zipPath)
	if err != nil {
		return errors.NewPathError("invalid path", zipPath, errors.InvalidPath, err)
	}
	absDest, err := filepath.Abs(destDir)
	if err != nil {
		return errors.NewPathError("invalid path", destDir, errors.InvalidPath, err)
	}

	r, err := zip.OpenReader(absZip)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.FromOS(err, absZip)
		}
		return errors.NewPathError("cannot read archive", absZip, errors.IOError, err)
	}
	defer r.Close()

	if err := os.MkdirAll(absDest, 0o755); err != nil {
		return errors.FromOS(err, absDest)
	}

	for _, f := range r.File {
		target := filepath.Join(absDest, filepath.FromSlash(f.Name))
		if !strings.HasPrefix(target, absDest+string(os.PathSeparator)) && target != absDest {
			return errors.NewPathError("archive entry escapes destination", f.Name, errors.InvalidPath, nil)
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, f.Mode().Perm()|0o700); err != nil {
				return errors.FromOS(err, target)
			}
			continue
		}
		if err := extractFile(f, target); err != nil {
			return err
		}
	}
	return nil
}

func extractFile(f *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return errors.FromOS(err, filepath.Dir(target))
	}
	rc, err := f.Open()
	if err != nil {
		return errors.NewPathError("cannot read archive entry", f.Name, errors.IOError, err)
	}
	defer rc.Close()

	perm := f.Mode().Perm()
	if perm == 0 {
		perm = 0o644
	}
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return errors.FromOS(err, target)
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return errors.NewPathError("extract failed", target, errors.IOError, err)
	}
	return out.Close()
}
