// Package tui implements the terminal face of the column browser: a
// bubbletea program projecting the controller's column stack and
// feeding user input back into it as navigation commands.
package tui

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"colonnade/internal/analysis"
	"colonnade/internal/config"
	"colonnade/internal/fs"
	"colonnade/internal/log"
	"colonnade/internal/nav"
	"colonnade/internal/shell"
	"colonnade/internal/tui/messages"
	"colonnade/internal/tui/styles"
	"colonnade/internal/watch"
	"colonnade/pkg/types"
)

// statusTTL is how long a transient status line stays visible.
const statusTTL = 4 * time.Second

// inputKind tells the prompt what the typed text is for.
type inputKind int

const (
	inputNone inputKind = iota
	inputRename
	inputNewFolder
	inputGoTo
	inputExtractDest
)

// pendingConfirm is a destructive action waiting for a yes.
type pendingConfirm struct {
	req      shell.Request
	col      int
	question string
}

// Model is the bubbletea model for the column browser.
type Model struct {
	ctrl    *nav.Controller
	disp    *shell.Dispatcher
	insp    *analysis.Inspector
	lister  *fs.Lister
	watcher *watch.Watcher
	cfg     *config.Config
	keys    types.KeyMap
	styles  *styles.Styles

	mode  types.Mode
	focus int

	width  int
	height int

	status      string
	statusIsErr bool
	statusID    int
	showHelp    bool

	showPreview    bool
	preview        viewport.Model
	previewTitle   string
	previewContent string
	previewGen     int

	input     textinput.Model
	inputFor  inputKind
	inputPath string // target the prompt acts on

	confirm *pendingConfirm

	quitting bool
}

// New assembles the model over an already-started controller.
func New(ctrl *nav.Controller, disp *shell.Dispatcher, insp *analysis.Inspector, lister *fs.Lister, watcher *watch.Watcher, cfg *config.Config) *Model {
	ti := textinput.New()
	ti.CharLimit = 255

	return &Model{
		ctrl:        ctrl,
		disp:        disp,
		insp:        insp,
		lister:      lister,
		watcher:     watcher,
		cfg:         cfg,
		keys:        types.DefaultKeyMap(),
		styles:      styles.FromConfig(cfg),
		mode:        types.Normal,
		showPreview: cfg.Browser.Preview,
		preview:     viewport.New(0, 0),
		input:       ti,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	m.syncWatcher()
	return m.waitForFsEvent()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.preview.Width = m.previewWidth() - 4
		m.preview.Height = m.columnHeight()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case messages.DirChanged:
		return m.handleDirChanged(msg)

	case messages.WatcherClosed:
		return m, nil

	case messages.PreviewLoaded:
		if msg.Gen != m.previewGen {
			return m, nil // stale load, a newer request is in flight
		}
		m.setPreview(msg)
		return m, nil

	case messages.DispatchDone:
		return m.handleDispatchDone(msg)

	case messages.ClearStatus:
		if msg.ID == m.statusID {
			m.status = ""
			m.statusIsErr = false
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case types.Input:
		return m.handleInputKey(msg)
	case types.Confirm:
		return m.handleConfirmKey(msg)
	default:
		return m.handleNormalKey(msg)
	}
}

func (m *Model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keys
	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		m.watcher.Stop()
		return m, tea.Quit

	case key.Matches(msg, keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, keys.Down):
		return m, m.moveCursor(1)

	case key.Matches(msg, keys.Up):
		return m, m.moveCursor(-1)

	case key.Matches(msg, keys.GotoTop):
		return m, m.setCursor(0)

	case key.Matches(msg, keys.GotoEnd):
		cols := m.ctrl.Columns()
		if m.focus < len(cols) {
			return m, m.setCursor(len(cols[m.focus].Entries) - 1)
		}
		return m, nil

	case key.Matches(msg, keys.Left):
		if m.focus > 0 {
			m.focus--
			return m, m.loadPreview()
		}
		return m, nil

	case key.Matches(msg, keys.Right):
		cols := m.ctrl.Columns()
		if m.focus+1 < len(cols) {
			m.focus++
			if cols[m.focus].Selected == nav.NoSelection && len(cols[m.focus].Entries) > 0 {
				return m, m.setCursor(0)
			}
			return m, m.loadPreview()
		}
		return m, nil

	case key.Matches(msg, keys.Parent):
		if err := m.ctrl.Apply(nav.Up{}); err != nil {
			return m, m.setError(err)
		}
		m.focus = 0
		m.syncWatcher()
		return m, m.loadPreview()

	case key.Matches(msg, keys.Home):
		if err := m.ctrl.Apply(nav.Home{}); err != nil {
			return m, m.setError(err)
		}
		m.focus = 0
		m.syncWatcher()
		return m, m.loadPreview()

	case key.Matches(msg, keys.Refresh):
		if err := m.ctrl.Apply(nav.Refresh{Col: m.focus}); err != nil {
			return m, m.setError(err)
		}
		m.clampFocus()
		m.syncWatcher()
		return m, m.loadPreview()

	case key.Matches(msg, keys.ToggleHidden):
		m.lister.SetShowHidden(!m.lister.ShowHidden())
		m.ctrl.RefreshAll()
		m.clampFocus()
		m.syncWatcher()
		return m, m.loadPreview()

	case key.Matches(msg, keys.TogglePreview):
		m.showPreview = !m.showPreview
		if !m.showPreview {
			m.previewContent = ""
			m.previewTitle = ""
			return m, nil
		}
		return m, m.loadPreview()

	case key.Matches(msg, keys.Activate):
		if err := m.ctrl.Apply(nav.ActivateEntry{Col: m.focus, Index: m.cursor()}); err != nil {
			m.syncWatcher()
			return m, m.setError(err)
		}
		m.syncWatcher()
		return m, m.loadPreview()

	case key.Matches(msg, keys.GoTo):
		return m, m.openPrompt(inputGoTo, "go to path", "")

	case key.Matches(msg, keys.Rename):
		entry, ok := m.selectedEntry()
		if !ok {
			return m, m.setNotice("nothing selected")
		}
		m.inputPath = entry.Path
		return m, m.openPrompt(inputRename, "rename to", entry.Name)

	case key.Matches(msg, keys.NewFolder):
		cols := m.ctrl.Columns()
		if m.focus >= len(cols) {
			return m, nil
		}
		m.inputPath = cols[m.focus].Path
		return m, m.openPrompt(inputNewFolder, "new folder", "")

	case key.Matches(msg, keys.Trash):
		entry, ok := m.selectedEntry()
		if !ok {
			return m, m.setNotice("nothing selected")
		}
		req := shell.Request{Action: shell.MoveToTrash, Path: entry.Path}
		if m.cfg.Confirm.Trash {
			return m, m.openConfirm(req, m.focus, "move "+entry.Name+" to trash?")
		}
		return m, m.dispatchCmd(req, m.focus)

	case key.Matches(msg, keys.Delete):
		entry, ok := m.selectedEntry()
		if !ok {
			return m, m.setNotice("nothing selected")
		}
		req := shell.Request{Action: shell.Delete, Path: entry.Path}
		if m.cfg.Confirm.Delete {
			return m, m.openConfirm(req, m.focus, "permanently delete "+entry.Name+"?")
		}
		return m, m.dispatchCmd(req, m.focus)

	case key.Matches(msg, keys.Compress):
		entry, ok := m.selectedEntry()
		if !ok {
			return m, m.setNotice("nothing selected")
		}
		return m, m.dispatchCmd(shell.Request{Action: shell.Compress, Path: entry.Path}, m.focus)

	case key.Matches(msg, keys.Extract):
		entry, ok := m.selectedEntry()
		if !ok {
			return m, m.setNotice("nothing selected")
		}
		if !strings.EqualFold(filepath.Ext(entry.Name), ".zip") {
			return m, m.setNotice(entry.Name + " is not a zip archive")
		}
		return m, m.dispatchCmd(shell.Request{Action: shell.Extract, Path: entry.Path}, m.focus)

	case key.Matches(msg, keys.ExtractTo):
		entry, ok := m.selectedEntry()
		if !ok {
			return m, m.setNotice("nothing selected")
		}
		if !strings.EqualFold(filepath.Ext(entry.Name), ".zip") {
			return m, m.setNotice(entry.Name + " is not a zip archive")
		}
		m.inputPath = entry.Path
		// Prefill with the same destination plain extract would pick.
		return m, m.openPrompt(inputExtractDest, "extract to", strings.TrimSuffix(entry.Path, filepath.Ext(entry.Path)))

	case key.Matches(msg, keys.Properties):
		entry, ok := m.selectedEntry()
		if !ok {
			return m, m.setNotice("nothing selected")
		}
		return m, m.dispatchCmd(shell.Request{Action: shell.ShowProperties, Path: entry.Path}, m.focus)
	}
	return m, nil
}

func (m *Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.closePrompt()
		return m, nil

	case key.Matches(msg, m.keys.Accept):
		value := strings.TrimSpace(m.input.Value())
		kind := m.inputFor
		target := m.inputPath
		m.closePrompt()
		if value == "" {
			return m, nil
		}
		switch kind {
		case inputGoTo:
			if err := m.ctrl.Apply(nav.Init{Root: value}); err != nil {
				return m, m.setError(err)
			}
			m.focus = 0
			m.syncWatcher()
			return m, m.loadPreview()
		case inputRename:
			return m, m.dispatchCmd(shell.Request{Action: shell.Rename, Path: target, Name: value}, m.focus)
		case inputNewFolder:
			return m, m.dispatchCmd(shell.Request{Action: shell.NewFolder, Path: target, Name: value}, m.focus)
		case inputExtractDest:
			return m, m.dispatchCmd(shell.Request{Action: shell.Extract, Path: target, Dest: value}, m.focus)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	pending := m.confirm
	switch msg.String() {
	case "y", "Y", "enter":
		m.confirm = nil
		m.mode = types.Normal
		if pending == nil {
			return m, nil
		}
		return m, m.dispatchCmd(pending.req, pending.col)
	case "n", "N", "esc", "q":
		m.confirm = nil
		m.mode = types.Normal
		return m, m.setNotice("cancelled")
	}
	return m, nil
}

func (m *Model) handleDirChanged(msg messages.DirChanged) (tea.Model, tea.Cmd) {
	if !m.cfg.Browser.AutoRefresh {
		return m, m.waitForFsEvent()
	}
	for i, p := range m.ctrl.Paths() {
		if p != msg.Dir {
			continue
		}
		if err := m.ctrl.Apply(nav.Refresh{Col: i}); err != nil {
			log.LogWithError(err).Debug("auto refresh failed")
		}
		break
	}
	m.clampFocus()
	m.syncWatcher()
	return m, tea.Batch(m.waitForFsEvent(), m.loadPreview())
}

func (m *Model) handleDispatchDone(msg messages.DispatchDone) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		return m, m.setError(msg.Err)
	}

	var cmds []tea.Cmd
	switch msg.Action {
	case shell.ShowProperties:
		if msg.Result != nil && msg.Result.Properties != nil {
			m.showProperties(msg.Result.Properties)
		}
		return m, nil
	case shell.MoveToTrash:
		cmds = append(cmds, m.setNotice("moved to trash"))
	case shell.Delete:
		cmds = append(cmds, m.setNotice("deleted"))
	case shell.Rename:
		cmds = append(cmds, m.setNotice("renamed"))
	case shell.NewFolder:
		cmds = append(cmds, m.setNotice("folder created"))
	case shell.Compress:
		if msg.Result != nil {
			cmds = append(cmds, m.setNotice("created "+filepath.Base(msg.Result.Path)))
		}
	case shell.Extract:
		if msg.Result != nil {
			cmds = append(cmds, m.setNotice("extracted to "+filepath.Base(msg.Result.Path)))
		}
	}

	// The action may have changed the owning column's contents.
	if msg.Col >= 0 && msg.Col < m.ctrl.Len() {
		if err := m.ctrl.Apply(nav.Refresh{Col: msg.Col}); err != nil {
			log.LogWithError(err).Debug("post-dispatch refresh failed")
		}
	}
	m.clampFocus()
	m.syncWatcher()
	cmds = append(cmds, m.loadPreview())
	return m, tea.Batch(cmds...)
}

// moveCursor shifts the focused column's cursor by delta, clamped to
// the listing.
func (m *Model) moveCursor(delta int) tea.Cmd {
	cols := m.ctrl.Columns()
	if m.focus >= len(cols) || len(cols[m.focus].Entries) == 0 {
		return nil
	}
	col := cols[m.focus]
	next := col.Selected + delta
	if col.Selected == nav.NoSelection {
		if delta > 0 {
			next = 0
		} else {
			next = len(col.Entries) - 1
		}
	}
	return m.setCursor(next)
}

func (m *Model) setCursor(idx int) tea.Cmd {
	cols := m.ctrl.Columns()
	if m.focus >= len(cols) {
		return nil
	}
	n := len(cols[m.focus].Entries)
	if n == 0 {
		return nil
	}
	if idx < 0 {
		idx = 0
	}
	if idx >= n {
		idx = n - 1
	}
	if err := m.ctrl.Apply(nav.SelectEntry{Col: m.focus, Index: idx}); err != nil {
		m.syncWatcher()
		return m.setError(err)
	}
	m.syncWatcher()
	return m.loadPreview()
}

// cursor returns the focused column's selection index.
func (m *Model) cursor() int {
	cols := m.ctrl.Columns()
	if m.focus >= len(cols) {
		return nav.NoSelection
	}
	return cols[m.focus].Selected
}

// selectedEntry returns the entry under the focused cursor.
func (m *Model) selectedEntry() (fs.Entry, bool) {
	cols := m.ctrl.Columns()
	if m.focus >= len(cols) {
		return fs.Entry{}, false
	}
	return cols[m.focus].SelectedEntry()
}

// clampFocus pulls the focus back onto the stack after truncation.
func (m *Model) clampFocus() {
	if n := m.ctrl.Len(); m.focus >= n && n > 0 {
		m.focus = n - 1
	}
}

func (m *Model) syncWatcher() {
	if m.cfg.Browser.AutoRefresh {
		m.watcher.Sync(m.ctrl.Paths())
	}
}

func (m *Model) waitForFsEvent() tea.Cmd {
	events := m.watcher.Events()
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return messages.WatcherClosed{}
		}
		return messages.DirChanged{Dir: ev.Dir}
	}
}

// loadPreview kicks off a background read of the focused file. The
// generation counter discards results that arrive after the user has
// moved on.
func (m *Model) loadPreview() tea.Cmd {
	if !m.showPreview {
		return nil
	}
	entry, ok := m.selectedEntry()
	if !ok || entry.IsDir() {
		m.previewContent = ""
		m.previewTitle = ""
		m.previewGen++
		return nil
	}

	m.previewGen++
	gen := m.previewGen
	insp := m.insp
	path := entry.Path
	return func() tea.Msg {
		content, truncated, err := insp.Preview(path)
		return messages.PreviewLoaded{Gen: gen, Path: path, Content: content, Truncated: truncated, Err: err}
	}
}

func (m *Model) setPreview(msg messages.PreviewLoaded) {
	m.previewTitle = filepath.Base(msg.Path)
	switch {
	case msg.Err != nil:
		m.previewContent = "(no preview)"
	case msg.Truncated:
		m.previewContent = msg.Content + "\n…"
	default:
		m.previewContent = msg.Content
	}
	m.preview.SetContent(m.previewContent)
	m.preview.GotoTop()
}

func (m *Model) showProperties(p *shell.Properties) {
	var b strings.Builder
	b.WriteString("Name: " + p.Name + "\n")
	b.WriteString("Kind: " + p.Kind + "\n")
	if p.ContentType != "" {
		b.WriteString("Type: " + p.ContentType + "\n")
	}
	b.WriteString("Size: " + p.HumanSize() + "\n")
	b.WriteString("Mode: " + p.Mode.String() + "\n")
	if !p.ModTime.IsZero() {
		b.WriteString("Modified: " + p.ModTime.Format("2006-01-02 15:04:05") + "\n")
	}
	for _, k := range p.MetadataKeys() {
		b.WriteString(k + ": " + p.Metadata[k] + "\n")
	}
	m.showPreview = true
	m.previewTitle = "properties"
	m.previewContent = b.String()
	m.preview.SetContent(m.previewContent)
	m.preview.GotoTop()
}

func (m *Model) openPrompt(kind inputKind, prompt, initial string) tea.Cmd {
	m.mode = types.Input
	m.inputFor = kind
	m.input.Prompt = prompt + ": "
	m.input.SetValue(initial)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *Model) closePrompt() {
	m.mode = types.Normal
	m.inputFor = inputNone
	m.inputPath = ""
	m.input.Blur()
	m.input.SetValue("")
}

func (m *Model) openConfirm(req shell.Request, col int, question string) tea.Cmd {
	m.mode = types.Confirm
	m.confirm = &pendingConfirm{req: req, col: col, question: question}
	return nil
}

func (m *Model) dispatchCmd(req shell.Request, col int) tea.Cmd {
	disp := m.disp
	return func() tea.Msg {
		res, err := disp.Dispatch(req)
		return messages.DispatchDone{Action: req.Action, Col: col, Result: res, Err: err}
	}
}

func (m *Model) setError(err error) tea.Cmd {
	if err == nil {
		return nil
	}
	return m.setStatus(err.Error(), true)
}

func (m *Model) setNotice(msg string) tea.Cmd {
	return m.setStatus(msg, false)
}

func (m *Model) setStatus(msg string, isErr bool) tea.Cmd {
	m.status = msg
	m.statusIsErr = isErr
	m.statusID++
	id := m.statusID
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return messages.ClearStatus{ID: id}
	})
}
