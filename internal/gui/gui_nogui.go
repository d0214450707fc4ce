//go:build nogui

package gui

import (
	"colonnade/internal/errors"
)

// Run is the stub for builds with the GUI disabled.
func Run(Deps) error {
	return errors.New("this build was compiled without GUI support")
}

// Available reports whether the GUI was compiled in.
func Available() bool {
	return false
}
