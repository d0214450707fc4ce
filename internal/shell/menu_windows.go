//go:build windows

package shell

import (
	"path/filepath"
	"strings"

	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"

	"colonnade/internal/errors"
)

// sFalse is CoInitialize's "already initialized on this thread" result,
// which go-ole reports as an error but is not one.
const sFalse = 0x00000001

// explorerMenu enumerates shell verbs through the Shell.Application
// automation object, the same list Explorer shows on right-click.
type explorerMenu struct{}

func newMenuProvider() MenuProvider {
	return explorerMenu{}
}

// Entries lists the verbs offered for path in shell order. Separators
// and unnamed verbs are skipped. The verb's raw name doubles as the
// opaque id; Invoke re-enumerates and matches on it.
func (explorerMenu) Entries(path string) ([]MenuEntry, error) {
	var entries []MenuEntry
	err := withVerbs(path, func(verbs *ole.IDispatch) error {
		count, err := verbCount(verbs)
		if err != nil {
			return err
		}
		for i := 0; i < count; i++ {
			name, verb, err := verbAt(verbs, i)
			if err != nil {
				return err
			}
			verb.Release()
			if name == "" {
				continue
			}
			entries = append(entries, MenuEntry{
				Label: strings.ReplaceAll(name, "&", ""),
				ID:    name,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Invoke executes the verb whose name matches id.
func (explorerMenu) Invoke(path, id string) error {
	return withVerbs(path, func(verbs *ole.IDispatch) error {
		count, err := verbCount(verbs)
		if err != nil {
			return err
		}
		for i := 0; i < count; i++ {
			name, verb, err := verbAt(verbs, i)
			if err != nil {
				return err
			}
			if name != id {
				verb.Release()
				continue
			}
			_, err = oleutil.CallMethod(verb, "DoIt")
			verb.Release()
			if err != nil {
				return errors.NewActionError("verb execution failed", id, errors.OSRejected, err)
			}
			return nil
		}
		return errors.NewActionError("no such context-menu entry", id, errors.OSRejected, nil)
	})
}

// withVerbs resolves path to a shell item and hands its verb collection
// to fn, releasing every COM object on the way out.
func withVerbs(path string, fn func(verbs *ole.IDispatch) error) error {
	if err := ole.CoInitialize(0); err != nil {
		if oleErr, ok := err.(*ole.OleError); !ok || oleErr.Code() != uintptr(sFalse) {
			return errors.NewActionError("COM initialization failed", Platform.String(), errors.OSRejected, err)
		}
	}
	defer ole.CoUninitialize()

	unknown, err := oleutil.CreateObject("Shell.Application")
	if err != nil {
		return errors.NewActionError("Shell.Application unavailable", Platform.String(), errors.OSRejected, err)
	}
	defer unknown.Release()

	shellObj, err := unknown.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		return errors.NewActionError("Shell.Application unavailable", Platform.String(), errors.OSRejected, err)
	}
	defer shellObj.Release()

	folderV, err := oleutil.CallMethod(shellObj, "NameSpace", filepath.Dir(path))
	if err != nil || folderV.VT == ole.VT_EMPTY {
		return errors.NewPathError("shell namespace not found", filepath.Dir(path), errors.NotFound, err)
	}
	folder := folderV.ToIDispatch()
	defer folder.Release()

	itemV, err := oleutil.CallMethod(folder, "ParseName", filepath.Base(path))
	if err != nil || itemV.VT == ole.VT_EMPTY {
		return errors.NewPathError("shell item not found", path, errors.NotFound, err)
	}
	item := itemV.ToIDispatch()
	defer item.Release()

	verbsV, err := oleutil.CallMethod(item, "Verbs")
	if err != nil {
		return errors.NewActionError("verb enumeration failed", Platform.String(), errors.OSRejected, err)
	}
	verbs := verbsV.ToIDispatch()
	defer verbs.Release()

	return fn(verbs)
}

func verbCount(verbs *ole.IDispatch) (int, error) {
	countV, err := oleutil.GetProperty(verbs, "Count")
	if err != nil {
		return 0, errors.NewActionError("verb enumeration failed", Platform.String(), errors.OSRejected, err)
	}
	return int(countV.Val), nil
}

func verbAt(verbs *ole.IDispatch, i int) (string, *ole.IDispatch, error) {
	itemV, err := oleutil.CallMethod(verbs, "Item", i)
	if err != nil {
		return "", nil, errors.NewActionError("verb enumeration failed", Platform.String(), errors.OSRejected, err)
	}
	verb := itemV.ToIDispatch()
	nameV, err := oleutil.GetProperty(verb, "Name")
	if err != nil {
		verb.Release()
		return "", nil, errors.NewActionError("verb enumeration failed", Platform.String(), errors.OSRejected, err)
	}
	return nameV.ToString(), verb, nil
}
