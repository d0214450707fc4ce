package nav

// Command is one navigation input. Commands are plain values so a UI
// event and a test can drive the controller through the same door.
type Command interface {
	isCommand()
}

// Init rebuilds the stack from a single root directory.
type Init struct {
	Root string
}

// SelectEntry moves the selection cursor in one column. Selecting a
// directory opens its listing as the next column; selecting anything
// else terminates the chain at that column.
type SelectEntry struct {
	Col   int
	Index int
}

// ActivateEntry is the double-click equivalent: select, then hand the
// entry to the OS according to the configured activation policy.
type ActivateEntry struct {
	Col   int
	Index int
}

// Up rebuilds the stack one level above the current root, keeping the
// old root visible as the selected entry of the new first column.
type Up struct{}

// Home rebuilds the stack from the configured home directory.
type Home struct{}

// Refresh re-lists one column, keeping the selection if its path still
// exists.
type Refresh struct {
	Col int
}

func (Init) isCommand()          {}
func (SelectEntry) isCommand()   {}
func (ActivateEntry) isCommand() {}
func (Up) isCommand()            {}
func (Home) isCommand()          {}
func (Refresh) isCommand()       {}
