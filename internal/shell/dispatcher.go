package shell

import (
	"os"
	"path/filepath"
	"strings"

	"colonnade/internal/analysis"
	"colonnade/internal/archive"
	"colonnade/internal/errors"
	"colonnade/internal/fs"
	"colonnade/internal/log"
	"colonnade/internal/trash"
)

// Dispatcher maps actions onto host-OS calls. Destructive actions
// report synchronously; the caller decides whether to refresh or retry.
type Dispatcher struct {
	lister    *fs.Lister
	trash     *trash.Trash
	inspector *analysis.Inspector
	menu      MenuProvider
}

// NewDispatcher wires a Dispatcher over the lister, trash and content
// inspector. The platform context-menu provider is chosen at build
// time; hosts without one reject Platform requests as unsupported.
func NewDispatcher(lister *fs.Lister, tr *trash.Trash, inspector *analysis.Inspector) *Dispatcher {
	return &Dispatcher{
		lister:    lister,
		trash:     tr,
		inspector: inspector,
		menu:      newMenuProvider(),
	}
}

// Dispatch performs one action against the host. Every action is a
// single attempt; requests naming a path that does not exist fail with
// NotFound before any side effect.
func (d *Dispatcher) Dispatch(req Request) (*Result, error) {
	logger := log.With(log.F("action", req.Action.String()), log.F("path", req.Path))

	if req.Action != EmptyTrash {
		if _, err := os.Lstat(req.Path); err != nil {
			return nil, errors.FromOS(err, req.Path)
		}
	}

	res, err := d.perform(req)
	if err != nil {
		log.LogWithError(err).Warn("dispatch failed")
		return nil, err
	}
	logger.Debug("dispatched")
	return res, nil
}

func (d *Dispatcher) perform(req Request) (*Result, error) {
	switch req.Action {
	case OpenFileManager:
		return &Result{Path: req.Path}, revealInFileManager(req.Path)

	case OpenDefault:
		return &Result{Path: req.Path}, openWithDefaultApp(req.Path)

	case Delete:
		if err := os.RemoveAll(req.Path); err != nil {
			return nil, errors.FromOS(err, req.Path)
		}
		return &Result{}, nil

	case MoveToTrash:
		if err := d.trash.Put(req.Path); err != nil {
			return nil, err
		}
		return &Result{}, nil

	case EmptyTrash:
		n, err := d.trash.Empty()
		if err != nil {
			return nil, err
		}
		return &Result{Removed: n}, nil

	case Rename:
		return d.rename(req.Path, req.Name)

	case NewFolder:
		return d.newFolder(req.Path, req.Name)

	case Compress:
		zipPath, err := archive.Compress(req.Path)
		if err != nil {
			return nil, err
		}
		return &Result{Path: zipPath}, nil

	case Extract:
		dest := req.Dest
		if dest == "" {
			dest = strings.TrimSuffix(req.Path, filepath.Ext(req.Path))
		}
		if err := archive.Extract(req.Path, dest); err != nil {
			return nil, err
		}
		return &Result{Path: dest}, nil

	case ShowProperties:
		entry, err := d.lister.Stat(req.Path)
		if err != nil {
			return nil, err
		}
		return &Result{Properties: buildProperties(entry, d.inspector)}, nil

	case Platform:
		return &Result{Path: req.Path}, d.menu.Invoke(req.Path, req.PlatformID)

	default:
		return nil, errors.NewActionError("unknown action", req.Action.String(), errors.Unsupported, nil)
	}
}

// rename moves the target inside its own directory only. Names with
// path separators and collisions with existing entries are refused.
func (d *Dispatcher) rename(path, name string) (*Result, error) {
	if name == "" || name != filepath.Base(name) || strings.ContainsAny(name, `/\`) {
		return nil, errors.NewActionError("invalid name", Rename.String(), errors.OSRejected, nil)
	}
	dest := filepath.Join(filepath.Dir(path), name)
	if dest == path {
		return &Result{Path: path}, nil
	}
	if _, err := os.Lstat(dest); err == nil {
		return nil, errors.NewPathError("name already taken", dest, errors.OSRejected, nil)
	}
	if err := os.Rename(path, dest); err != nil {
		return nil, errors.FromOS(err, path)
	}
	return &Result{Path: dest}, nil
}

// newFolder creates a directory under the target, which must itself be
// a directory.
func (d *Dispatcher) newFolder(parent, name string) (*Result, error) {
	if name == "" || name != filepath.Base(name) || strings.ContainsAny(name, `/\`) {
		return nil, errors.NewActionError("invalid name", NewFolder.String(), errors.OSRejected, nil)
	}
	isDir, err := lstatKind(parent)
	if err != nil {
		return nil, errors.FromOS(err, parent)
	}
	if !isDir {
		return nil, errors.NewPathError("target is not a directory", parent, errors.OSRejected, nil)
	}
	dest := filepath.Join(parent, name)
	if err := os.Mkdir(dest, 0o755); err != nil {
		if os.IsExist(err) {
			return nil, errors.NewPathError("name already taken", dest, errors.OSRejected, err)
		}
		return nil, errors.FromOS(err, dest)
	}
	return &Result{Path: dest}, nil
}

// Menu enumerates the host context-menu entries offered for path, in
// the order the platform yields them.
func (d *Dispatcher) Menu(path string) ([]MenuEntry, error) {
	if _, err := os.Lstat(path); err != nil {
		return nil, errors.FromOS(err, path)
	}
	return d.menu.Entries(path)
}

// RevealInFileManager satisfies the controller's Opener.
func (d *Dispatcher) RevealInFileManager(path string) error {
	_, err := d.Dispatch(Request{Action: OpenFileManager, Path: path})
	return err
}

// OpenWithDefaultApp satisfies the controller's Opener.
func (d *Dispatcher) OpenWithDefaultApp(path string) error {
	_, err := d.Dispatch(Request{Action: OpenDefault, Path: path})
	return err
}

func lstatKind(path string) (bool, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}
