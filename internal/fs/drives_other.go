//go:build !windows

package fs

// driveLetters only has meaning on Windows.
func driveLetters() []Location {
	return nil
}
