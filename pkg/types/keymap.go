package types

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the application modes.
// It lives in pkg/types so the model and the handlers can share it.
type KeyMap struct {
	// General
	Help key.Binding
	Quit key.Binding

	// Navigation
	Up        key.Binding // cursor up inside the focused column
	Down      key.Binding // cursor down inside the focused column
	Left      key.Binding // focus the column to the left
	Right     key.Binding // select / descend into the entry under the cursor
	GotoTop   key.Binding
	GotoEnd   key.Binding
	Parent    key.Binding // rebuild the stack one level up
	Home      key.Binding // rebuild the stack from the home directory
	GoTo      key.Binding // prompt for a path to jump to
	Activate  key.Binding // double-click equivalent
	Refresh   key.Binding

	// View
	ToggleHidden  key.Binding
	TogglePreview key.Binding

	// File actions
	Rename     key.Binding
	NewFolder  key.Binding
	Trash      key.Binding
	Delete     key.Binding
	Compress   key.Binding
	Extract    key.Binding // unpack next to the archive
	ExtractTo  key.Binding // prompt for the destination first
	Properties key.Binding

	// Prompt / confirm modes
	Accept key.Binding
	Cancel key.Binding
}

// DefaultKeyMap returns the standard keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "previous column"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "open"),
		),
		GotoTop: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "first entry"),
		),
		GotoEnd: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "last entry"),
		),
		Parent: key.NewBinding(
			key.WithKeys("backspace", "u"),
			key.WithHelp("u", "up one level"),
		),
		Home: key.NewBinding(
			key.WithKeys("~"),
			key.WithHelp("~", "home"),
		),
		GoTo: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "go to path"),
		),
		Activate: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "activate"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "refresh"),
		),
		ToggleHidden: key.NewBinding(
			key.WithKeys("."),
			key.WithHelp(".", "hidden files"),
		),
		TogglePreview: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "preview"),
		),
		Rename: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rename"),
		),
		NewFolder: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new folder"),
		),
		Trash: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "move to trash"),
		),
		Delete: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "delete"),
		),
		Compress: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "compress"),
		),
		Extract: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "extract"),
		),
		ExtractTo: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "extract to"),
		),
		Properties: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "properties"),
		),
		Accept: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}
