// Package nav holds the column-navigation state machine: an ordered
// stack of directory columns where each column lists the children of the
// entry selected in the column to its left. The stack is owned by a
// single Controller and mutated only through its commands.
package nav

import (
	"colonnade/internal/fs"
)

// NoSelection marks a column without a selection cursor.
const NoSelection = -1

// Column is one list in the stack, bound to a single directory path.
// A column whose listing failed stays present with Err set and no
// entries, so the failure is visible where it happened.
type Column struct {
	Path     string
	Entries  []fs.Entry
	Selected int
	Err      error
}

// SelectedEntry returns the entry under the selection cursor.
func (c *Column) SelectedEntry() (fs.Entry, bool) {
	if c.Selected < 0 || c.Selected >= len(c.Entries) {
		return fs.Entry{}, false
	}
	return c.Entries[c.Selected], true
}

// clone copies the column so callers can hold a snapshot while the
// controller keeps mutating its own state.
func (c *Column) clone() Column {
	out := Column{
		Path:     c.Path,
		Selected: c.Selected,
		Err:      c.Err,
	}
	if len(c.Entries) > 0 {
		out.Entries = make([]fs.Entry, len(c.Entries))
		copy(out.Entries, c.Entries)
	}
	return out
}
