//go:build !windows

package fs

import "strings"

// IsHidden reports whether the named entry is hidden on this platform.
// On Unix-likes that is the leading-dot convention.
func IsHidden(fullPath string, name string) bool {
	return strings.HasPrefix(name, ".")
}
