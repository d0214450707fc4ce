//go:build windows

package fs

import (
	"strings"
	"syscall"
)

const fileAttributeHidden = 0x02

// IsHidden reports whether the named entry is hidden on this platform.
// Windows uses the hidden file attribute; dotfiles are treated as hidden
// too since they usually arrive from Unix tooling.
func IsHidden(fullPath string, name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	ptr, err := syscall.UTF16PtrFromString(fullPath)
	if err != nil {
		return false
	}
	attrs, err := syscall.GetFileAttributes(ptr)
	if err != nil {
		return false
	}
	return attrs&fileAttributeHidden != 0
}
