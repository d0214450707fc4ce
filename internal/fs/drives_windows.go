//go:build windows

package fs

import "syscall"

// driveLetters enumerates mounted drive letters from the logical drive
// bitmask.
func driveLetters() []Location {
	mask, err := syscall.GetLogicalDrives()
	if err != nil {
		return nil
	}
	var locs []Location
	for i := 0; i < 26; i++ {
		if mask&(1<<uint(i)) == 0 {
			continue
		}
		drive := string(rune('A'+i)) + ":\\"
		locs = append(locs, Location{Label: drive, Path: drive})
	}
	return locs
}
