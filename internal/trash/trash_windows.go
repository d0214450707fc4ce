//go:build windows

package trash

import (
	"os"
	"path/filepath"
	"syscall"
	"unsafe"

	"colonnade/internal/errors"
)

var (
	shell32                = syscall.NewLazyDLL("shell32.dll")
	procSHFileOperationW   = shell32.NewProc("SHFileOperationW")
	procSHEmptyRecycleBinW = shell32.NewProc("SHEmptyRecycleBinW")
)

const (
	foDelete          = 0x0003
	fofAllowUndo      = 0x0040
	fofNoConfirmation = 0x0010
	fofSilent         = 0x0004

	sherbNoConfirmation = 0x0001
	sherbNoProgressUI   = 0x0002
	sherbNoSound        = 0x0004

	// SHEmptyRecycleBin returns E_UNEXPECTED when the bin is already empty
	eUnexpected = 0x8000FFFF
)

type shFileOpStruct struct {
	hwnd                  uintptr
	wFunc                 uint32
	pFrom                 *uint16
	pTo                   *uint16
	fFlags                uint16
	fAnyOperationsAborted int32
	hNameMappings         uintptr
	lpszProgressTitle     *uint16
}

func defaultDir() (string, error) {
	// The recycle bin is addressed through the shell API, not a directory
	return "", nil
}

// FilesDir has no directory equivalent for the recycle bin.
func (t *Trash) FilesDir() string {
	return ""
}

// Put sends the item to the recycle bin with undo enabled.
func (t *Trash) Put(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.NewPathError("invalid path", path, errors.InvalidPath, err)
	}
	if _, err := os.Lstat(abs); err != nil {
		return errors.FromOS(err, abs)
	}

	// pFrom is a double-NUL-terminated list of paths
	from, err := syscall.UTF16FromString(abs)
	if err != nil {
		return errors.NewPathError("invalid path", abs, errors.InvalidPath, err)
	}
	from = append(from, 0)

	op := shFileOpStruct{
		wFunc:  foDelete,
		pFrom:  &from[0],
		fFlags: fofAllowUndo | fofNoConfirmation | fofSilent,
	}
	ret, _, _ := procSHFileOperationW.Call(uintptr(unsafe.Pointer(&op)))
	if ret != 0 {
		return errors.NewActionError("recycle bin refused the item", "move-to-trash", errors.OSRejected,
			errors.Newf("SHFileOperation code %#x", ret))
	}
	if op.fAnyOperationsAborted != 0 {
		return errors.NewActionError("recycle bin operation aborted", "move-to-trash", errors.OSRejected, nil)
	}
	return nil
}

// List is not available through the recycle bin API surface we use.
func (t *Trash) List() ([]Item, error) {
	return nil, errors.NewActionError("listing the recycle bin is not supported", "trash-list", errors.Unsupported, nil)
}

// Restore is not available through the recycle bin API surface we use.
func (t *Trash) Restore(name string) (string, error) {
	return "", errors.NewActionError("restoring from the recycle bin is not supported", "trash-restore", errors.Unsupported, nil)
}

// Empty empties the recycle bin for all drives.
func (t *Trash) Empty() (int, error) {
	ret, _, _ := procSHEmptyRecycleBinW.Call(0, 0, sherbNoConfirmation|sherbNoProgressUI|sherbNoSound)
	if ret != 0 && ret != eUnexpected {
		return 0, errors.NewActionError("emptying the recycle bin failed", "empty-trash", errors.OSRejected,
			errors.Newf("SHEmptyRecycleBin code %#x", ret))
	}
	return 0, nil
}
