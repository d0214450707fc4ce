package nav

import (
	"path/filepath"

	"colonnade/internal/config"
	"colonnade/internal/errors"
	"colonnade/internal/fs"
	"colonnade/internal/log"
)

// Opener is the slice of the shell dispatcher activation needs: handing
// a path to the OS file manager or to its default application.
type Opener interface {
	RevealInFileManager(path string) error
	OpenWithDefaultApp(path string) error
}

// Controller owns the column stack and is the only code that mutates
// it. It is not safe for concurrent use; the UI drives it from its
// update loop.
type Controller struct {
	lister *fs.Lister
	opener Opener
	policy string
	home   string
	stack  []Column
}

// New builds a Controller over the given lister and opener. The home
// path and the directory activation policy come from cfg.
func New(lister *fs.Lister, opener Opener, cfg *config.Config) (*Controller, error) {
	home, err := cfg.HomePath()
	if err != nil {
		return nil, errors.Wrap(err, "resolving home directory")
	}
	return &Controller{
		lister: lister,
		opener: opener,
		policy: cfg.Browser.ActivateDirectories,
		home:   home,
	}, nil
}

// Start initializes the stack from root, falling back to the home
// directory when root is empty or inaccessible. It fails only when the
// fallback is inaccessible too.
func (c *Controller) Start(root string) error {
	if root == "" {
		root = c.home
	}
	err := c.initStack(root)
	if err == nil {
		return nil
	}
	if root == c.home {
		return err
	}
	log.LogWithError(err).Warn("root inaccessible, falling back to home")
	return c.initStack(c.home)
}

// Apply executes one navigation command against the stack.
func (c *Controller) Apply(cmd Command) error {
	switch m := cmd.(type) {
	case Init:
		return c.initStack(m.Root)
	case SelectEntry:
		return c.selectEntry(m.Col, m.Index)
	case ActivateEntry:
		return c.activateEntry(m.Col, m.Index)
	case Up:
		return c.up()
	case Home:
		return c.initStack(c.home)
	case Refresh:
		return c.refresh(m.Col)
	default:
		return errors.Newf("unknown navigation command %T", cmd)
	}
}

// Columns returns a snapshot of the stack. Mutating the snapshot does
// not affect the controller.
func (c *Controller) Columns() []Column {
	out := make([]Column, len(c.stack))
	for i := range c.stack {
		out[i] = c.stack[i].clone()
	}
	return out
}

// Len returns the number of active columns.
func (c *Controller) Len() int {
	return len(c.stack)
}

// Paths returns the directory bound to each column, root-most first.
// The watcher mirrors this set.
func (c *Controller) Paths() []string {
	paths := make([]string, len(c.stack))
	for i := range c.stack {
		paths[i] = c.stack[i].Path
	}
	return paths
}

// Root returns the directory of the first column, or "" before Init.
func (c *Controller) Root() string {
	if len(c.stack) == 0 {
		return ""
	}
	return c.stack[0].Path
}

func (c *Controller) initStack(root string) error {
	abs, err := filepath.Abs(root)
	if err != nil {
		return errors.NewPathError("invalid path", root, errors.InvalidPath, err)
	}
	entries, err := c.lister.List(abs)
	if err != nil {
		return err
	}
	c.stack = []Column{{Path: abs, Entries: entries, Selected: NoSelection}}
	return nil
}

func (c *Controller) column(i int) (*Column, error) {
	if i < 0 || i >= len(c.stack) {
		return nil, errors.Newf("no column at index %d", i)
	}
	return &c.stack[i], nil
}

// selectEntry moves the cursor and maintains the adjacency invariant:
// truncate everything past the column, then append the directory's
// listing when the selected entry is a directory. Re-selecting the
// already-selected entry is a no-op so descendant columns survive a
// repeated click.
func (c *Controller) selectEntry(col, idx int) error {
	cl, err := c.column(col)
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(cl.Entries) {
		return errors.Newf("no entry at index %d in column %d", idx, col)
	}
	entry := cl.Entries[idx]
	if cl.Selected == idx && c.consistentAfter(col, entry) {
		return nil
	}

	c.stack = c.stack[:col+1]
	cl.Selected = idx
	if !entry.IsDir() {
		return nil
	}

	child := Column{Path: entry.Path, Selected: NoSelection}
	entries, err := c.lister.List(entry.Path)
	if err != nil {
		// The column stays present so the failure is visible in place;
		// it just carries no children.
		child.Err = err
		c.stack = append(c.stack, child)
		return err
	}
	child.Entries = entries
	c.stack = append(c.stack, child)
	return nil
}

// consistentAfter reports whether the stack beyond col already reflects
// entry being selected there.
func (c *Controller) consistentAfter(col int, entry fs.Entry) bool {
	if !entry.IsDir() {
		return len(c.stack) == col+1
	}
	return len(c.stack) > col+1 && c.stack[col+1].Path == entry.Path
}

// activateEntry selects the entry, then hands it to the OS: files open
// with their default application, directories follow the configured
// activation policy. A failed hand-off leaves the stack as selection
// left it.
func (c *Controller) activateEntry(col, idx int) error {
	if err := c.selectEntry(col, idx); err != nil {
		return err
	}
	cl, err := c.column(col)
	if err != nil {
		return err
	}
	entry, ok := cl.SelectedEntry()
	if !ok {
		return errors.Newf("no entry selected in column %d", col)
	}

	if !entry.IsDir() {
		return c.opener.OpenWithDefaultApp(entry.Path)
	}
	switch c.policy {
	case config.ActivateNavigate:
		return nil
	case config.ActivateExternal, config.ActivateBoth:
		return c.opener.RevealInFileManager(entry.Path)
	default:
		return nil
	}
}

// up rebuilds the stack one level above the current root and re-selects
// the old root in the new first column, so the view keeps at least two
// columns and the invariant holds.
func (c *Controller) up() error {
	if len(c.stack) == 0 {
		return errors.New("navigation not initialized")
	}
	cur := c.stack[0].Path
	parent := filepath.Dir(cur)
	if parent == cur {
		return nil
	}
	if err := c.initStack(parent); err != nil {
		return err
	}
	for i, e := range c.stack[0].Entries {
		if e.Path == cur {
			return c.selectEntry(0, i)
		}
	}
	// The old root can be missing from the parent listing, e.g. when it
	// is hidden by a filter. A single unselected column is still valid.
	return nil
}

// refresh re-lists one column. The selection survives by path, not by
// index; when its path is gone the selection clears and downstream
// columns are dropped.
func (c *Controller) refresh(col int) error {
	cl, err := c.column(col)
	if err != nil {
		return err
	}
	selPath := ""
	if e, ok := cl.SelectedEntry(); ok {
		selPath = e.Path
	}

	entries, err := c.lister.List(cl.Path)
	if err != nil {
		cl.Entries = nil
		cl.Selected = NoSelection
		cl.Err = err
		c.stack = c.stack[:col+1]
		return err
	}
	cl.Entries = entries
	cl.Err = nil

	if selPath != "" {
		for i, e := range entries {
			if e.Path == selPath {
				cl.Selected = i
				if !e.IsDir() {
					// The path survived but stopped being a directory;
					// any child column is stale.
					c.stack = c.stack[:col+1]
				}
				return nil
			}
		}
	}
	cl.Selected = NoSelection
	c.stack = c.stack[:col+1]
	return nil
}

// RefreshAll re-lists every column front to back. Errors stay local to
// their column, matching single-column refresh.
func (c *Controller) RefreshAll() {
	for i := 0; i < len(c.stack); i++ {
		if err := c.refresh(i); err != nil {
			log.LogWithError(err).Debug("refresh failed")
		}
	}
}
