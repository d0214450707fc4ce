package shell

import (
	"os/exec"
	"path/filepath"
	"runtime"

	"colonnade/internal/errors"
)

// linuxFileManagers are tried in order when xdg-open is unavailable.
var linuxFileManagers = []string{"nautilus", "dolphin", "thunar", "nemo", "pcmanfm"}

// revealInFileManager shows path in the native file manager, selecting
// it where the platform supports selection. Linux has no standardized
// select verb, so the parent directory opens instead.
func revealInFileManager(path string) error {
	switch runtime.GOOS {
	case "darwin":
		return runShell(OpenFileManager, exec.Command("open", "-R", path))
	case "windows":
		return runShell(OpenFileManager, exec.Command("explorer", "/select,", path))
	default:
		target := path
		if isDir, err := lstatKind(path); err == nil && !isDir {
			target = filepath.Dir(path)
		}
		if err := runShell(OpenFileManager, exec.Command("xdg-open", target)); err == nil {
			return nil
		}
		for _, fm := range linuxFileManagers {
			if _, err := exec.LookPath(fm); err == nil {
				return runShell(OpenFileManager, exec.Command(fm, target))
			}
		}
		return errors.NewActionError("no file manager found", OpenFileManager.String(), errors.Unsupported, nil)
	}
}

// openWithDefaultApp opens path with whatever the OS associates with it.
func openWithDefaultApp(path string) error {
	switch runtime.GOOS {
	case "darwin":
		return runShell(OpenDefault, exec.Command("open", path))
	case "windows":
		// start is a cmd builtin; the empty string is the window title.
		return runShell(OpenDefault, exec.Command("cmd", "/c", "start", "", path))
	default:
		return runShell(OpenDefault, exec.Command("xdg-open", path))
	}
}

func runShell(action Action, cmd *exec.Cmd) error {
	if err := cmd.Run(); err != nil {
		return errors.NewActionError("the OS rejected the call", action.String(), errors.OSRejected, err)
	}
	return nil
}
