// Package gui is the desktop face of the column browser, built on fyne.
// Builds tagged nogui swap in a stub so the binary links without cgo.
package gui

import (
	"colonnade/internal/config"
	"colonnade/internal/fs"
	"colonnade/internal/nav"
	"colonnade/internal/shell"
)

// Deps bundles the already-wired core the GUI projects.
type Deps struct {
	Ctrl   *nav.Controller
	Disp   *shell.Dispatcher
	Lister *fs.Lister
	Cfg    *config.Config
}
