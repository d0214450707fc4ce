// Package shell hands file-management actions to the host operating
// system. Every action is a single attempt: the outcome is reported to
// the caller and never retried here.
package shell

// Action identifies one host-OS file operation. The set is closed;
// values outside it are rejected as unsupported.
type Action int

const (
	// OpenFileManager shows the target in the OS file manager,
	// selecting it when the platform supports that.
	OpenFileManager Action = iota
	// OpenDefault opens the target with its default application.
	OpenDefault
	// Delete removes the target permanently.
	Delete
	// MoveToTrash moves the target to the user trash.
	MoveToTrash
	// EmptyTrash discards everything in the user trash.
	EmptyTrash
	// Rename gives the target a new name inside its directory.
	Rename
	// NewFolder creates a directory under the target path.
	NewFolder
	// Compress zips the target next to itself.
	Compress
	// Extract unpacks a zip archive.
	Extract
	// ShowProperties gathers metadata for the properties dialog.
	ShowProperties
	// Platform runs an opaque entry from the host context menu.
	Platform
)

func (a Action) String() string {
	switch a {
	case OpenFileManager:
		return "open-file-manager"
	case OpenDefault:
		return "open-default"
	case Delete:
		return "delete"
	case MoveToTrash:
		return "move-to-trash"
	case EmptyTrash:
		return "empty-trash"
	case Rename:
		return "rename"
	case NewFolder:
		return "new-folder"
	case Compress:
		return "compress"
	case Extract:
		return "extract"
	case ShowProperties:
		return "show-properties"
	case Platform:
		return "platform"
	default:
		return "unknown"
	}
}

// Request is a fully described action. Building one does nothing; only
// Dispatch acts on it.
type Request struct {
	Action Action
	// Path is the action target. For NewFolder it is the directory
	// that receives the new folder. EmptyTrash ignores it.
	Path string
	// Name carries the new name for Rename and NewFolder.
	Name string
	// Dest is the extraction directory for Extract. Empty means a
	// directory named after the archive.
	Dest string
	// PlatformID selects the host context-menu entry for Platform.
	PlatformID string
}

// MenuEntry is one host context-menu item offered for a path.
type MenuEntry struct {
	Label string
	ID    string
}

// MenuProvider is the host's shell extension surface: the ordered menu
// entries for a path, and execution of one by its opaque id.
type MenuProvider interface {
	Entries(path string) ([]MenuEntry, error)
	Invoke(path, id string) error
}

// Result reports what a successful dispatch produced.
type Result struct {
	// Path points at what the action created: the archive for
	// Compress, the extraction directory for Extract, the new
	// directory for NewFolder, the renamed path for Rename.
	Path string
	// Properties is set for ShowProperties requests.
	Properties *Properties
	// Removed is the number of discarded items for EmptyTrash.
	Removed int
}
