// Package messages defines the bubbletea messages the TUI model
// consumes beyond key and window events.
package messages

import (
	"colonnade/internal/shell"
)

// DirChanged reports that a watched directory's contents changed and
// the column showing it should refresh.
type DirChanged struct {
	Dir string
}

// WatcherClosed reports that the watcher's event channel closed.
type WatcherClosed struct{}

// PreviewLoaded carries the result of a background preview read. Gen is
// the generation counter at request time; the model drops results whose
// generation is stale.
type PreviewLoaded struct {
	Gen       int
	Path      string
	Content   string
	Truncated bool
	Err       error
}

// DispatchDone reports the outcome of a shell action that ran as a
// background command.
type DispatchDone struct {
	Action shell.Action
	Col    int // column owning the target; refreshed on success
	Result *shell.Result
	Err    error
}

// ClearStatus expires the transient status line.
type ClearStatus struct {
	ID int
}
