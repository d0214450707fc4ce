//go:build !nogui

package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"colonnade/internal/fs"
	"colonnade/internal/log"
	"colonnade/internal/nav"
	"colonnade/internal/shell"
)

// columnSize is the fixed footprint of one column list.
var columnSize = fyne.NewSize(230, 520)

// App is the GUI application.
type App struct {
	deps Deps

	fyneApp fyne.App
	win     fyne.Window

	pathLabel *widget.Label
	columns   *fyne.Container
	focus     int
}

// Run builds the window over an already-started controller and blocks
// until it closes.
func Run(deps Deps) error {
	a := &App{
		deps:    deps,
		fyneApp: app.NewWithID("io.github.colonnade"),
	}
	a.win = a.fyneApp.NewWindow("colonnade")
	a.win.Resize(fyne.NewSize(980, 640))
	a.win.SetMainMenu(a.buildMenu())
	a.buildContent()
	a.rebuild()
	a.win.ShowAndRun()
	return nil
}

// Available reports whether the GUI was compiled in.
func Available() bool {
	return true
}

func (a *App) buildContent() {
	a.pathLabel = widget.NewLabel("")
	a.pathLabel.TextStyle = fyne.TextStyle{Bold: true}
	a.columns = container.NewHBox()

	toolbar := widget.NewToolbar(
		widget.NewToolbarAction(theme.MoveUpIcon(), func() { a.apply(nav.Up{}) }),
		widget.NewToolbarAction(theme.HomeIcon(), func() { a.apply(nav.Home{}) }),
		widget.NewToolbarAction(theme.ViewRefreshIcon(), func() { a.refreshAll() }),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.FolderNewIcon(), a.promptNewFolder),
		widget.NewToolbarAction(theme.DeleteIcon(), a.confirmTrash),
		widget.NewToolbarAction(theme.InfoIcon(), a.showProperties),
	)

	top := container.NewVBox(toolbar, a.pathLabel)
	a.win.SetContent(container.NewBorder(top, nil, nil, nil, container.NewHScroll(a.columns)))
}

func (a *App) buildMenu() *fyne.MainMenu {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open", a.activateSelection),
		fyne.NewMenuItem("New Folder", a.promptNewFolder),
		fyne.NewMenuItem("Rename", a.promptRename),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Move to Trash", a.confirmTrash),
		fyne.NewMenuItem("Delete", a.confirmDelete),
		fyne.NewMenuItem("Empty Trash", a.confirmEmptyTrash),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Compress", func() { a.dispatchSelected(shell.Compress) }),
		fyne.NewMenuItem("Properties", a.showProperties),
	)

	goItems := []*fyne.MenuItem{
		fyne.NewMenuItem("Up", func() { a.apply(nav.Up{}) }),
		fyne.NewMenuItem("Home", func() { a.apply(nav.Home{}) }),
		fyne.NewMenuItemSeparator(),
	}
	for _, loc := range fs.Locations() {
		path := loc.Path
		goItems = append(goItems, fyne.NewMenuItem(loc.Label, func() {
			a.apply(nav.Init{Root: path})
		}))
	}

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Toggle Hidden Files", func() {
			a.deps.Lister.SetShowHidden(!a.deps.Lister.ShowHidden())
			a.refreshAll()
		}),
	)

	return fyne.NewMainMenu(fileMenu, fyne.NewMenu("Go", goItems...), viewMenu)
}

// rebuild re-creates the column lists from the controller's snapshot.
func (a *App) rebuild() {
	cols := a.deps.Ctrl.Columns()
	if a.focus >= len(cols) {
		a.focus = len(cols) - 1
	}
	if len(cols) > 0 {
		a.pathLabel.SetText(cols[len(cols)-1].Path)
	}

	objects := make([]fyne.CanvasObject, 0, len(cols))
	for i := range cols {
		objects = append(objects, a.buildColumn(i, &cols[i]))
	}
	a.columns.Objects = objects
	a.columns.Refresh()
}

func (a *App) buildColumn(idx int, col *nav.Column) fyne.CanvasObject {
	if col.Err != nil {
		note := widget.NewLabel(col.Err.Error())
		note.Wrapping = fyne.TextWrapWord
		return container.NewGridWrap(columnSize, note)
	}

	entries := col.Entries
	list := widget.NewList(
		func() int { return len(entries) },
		func() fyne.CanvasObject {
			return container.NewHBox(widget.NewIcon(theme.FileIcon()), widget.NewLabel(""))
		},
		func(i widget.ListItemID, o fyne.CanvasObject) {
			box := o.(*fyne.Container)
			icon := box.Objects[0].(*widget.Icon)
			label := box.Objects[1].(*widget.Label)
			e := entries[i]
			if e.IsDir() {
				icon.SetResource(theme.FolderIcon())
			} else {
				icon.SetResource(theme.FileIcon())
			}
			label.SetText(e.Name)
		},
	)
	list.OnSelected = func(id widget.ListItemID) {
		a.focus = idx
		a.apply(nav.SelectEntry{Col: idx, Index: id})
	}
	if col.Selected != nav.NoSelection {
		list.Select(col.Selected)
	}
	return container.NewGridWrap(columnSize, list)
}

// apply runs a navigation command, surfaces its error, and re-renders.
func (a *App) apply(cmd nav.Command) {
	if err := a.deps.Ctrl.Apply(cmd); err != nil {
		log.LogWithError(err).Warn("navigation failed")
		dialog.ShowError(err, a.win)
	}
	a.rebuild()
}

func (a *App) refreshAll() {
	a.deps.Ctrl.RefreshAll()
	a.rebuild()
}

func (a *App) selectedEntry() (fs.Entry, bool) {
	cols := a.deps.Ctrl.Columns()
	if a.focus < 0 || a.focus >= len(cols) {
		return fs.Entry{}, false
	}
	return cols[a.focus].SelectedEntry()
}

func (a *App) activateSelection() {
	cols := a.deps.Ctrl.Columns()
	if a.focus < 0 || a.focus >= len(cols) {
		return
	}
	if cols[a.focus].Selected == nav.NoSelection {
		return
	}
	a.apply(nav.ActivateEntry{Col: a.focus, Index: cols[a.focus].Selected})
}

// dispatchSelected runs an action against the current selection and
// refreshes the owning column afterwards.
func (a *App) dispatchSelected(action shell.Action) {
	entry, ok := a.selectedEntry()
	if !ok {
		return
	}
	a.dispatch(shell.Request{Action: action, Path: entry.Path})
}

func (a *App) dispatch(req shell.Request) {
	if _, err := a.deps.Disp.Dispatch(req); err != nil {
		dialog.ShowError(err, a.win)
		return
	}
	a.apply(nav.Refresh{Col: a.focus})
}

func (a *App) promptRename() {
	entry, ok := a.selectedEntry()
	if !ok {
		return
	}
	d := dialog.NewEntryDialog("Rename", "New name", func(name string) {
		if name == "" {
			return
		}
		a.dispatch(shell.Request{Action: shell.Rename, Path: entry.Path, Name: name})
	}, a.win)
	d.SetText(entry.Name)
	d.Show()
}

func (a *App) promptNewFolder() {
	cols := a.deps.Ctrl.Columns()
	if a.focus < 0 || a.focus >= len(cols) {
		return
	}
	dir := cols[a.focus].Path
	dialog.NewEntryDialog("New Folder", "Name", func(name string) {
		if name == "" {
			return
		}
		a.dispatch(shell.Request{Action: shell.NewFolder, Path: dir, Name: name})
	}, a.win).Show()
}

func (a *App) confirmTrash() {
	entry, ok := a.selectedEntry()
	if !ok {
		return
	}
	if !a.deps.Cfg.Confirm.Trash {
		a.dispatch(shell.Request{Action: shell.MoveToTrash, Path: entry.Path})
		return
	}
	dialog.ShowConfirm("Move to Trash", fmt.Sprintf("Move %q to the trash?", entry.Name), func(yes bool) {
		if yes {
			a.dispatch(shell.Request{Action: shell.MoveToTrash, Path: entry.Path})
		}
	}, a.win)
}

func (a *App) confirmDelete() {
	entry, ok := a.selectedEntry()
	if !ok {
		return
	}
	dialog.ShowConfirm("Delete", fmt.Sprintf("Permanently delete %q?", entry.Name), func(yes bool) {
		if yes {
			a.dispatch(shell.Request{Action: shell.Delete, Path: entry.Path})
		}
	}, a.win)
}

func (a *App) confirmEmptyTrash() {
	dialog.ShowConfirm("Empty Trash", "Permanently remove everything in the trash?", func(yes bool) {
		if !yes {
			return
		}
		if _, err := a.deps.Disp.Dispatch(shell.Request{Action: shell.EmptyTrash}); err != nil {
			dialog.ShowError(err, a.win)
		}
	}, a.win)
}

func (a *App) showProperties() {
	entry, ok := a.selectedEntry()
	if !ok {
		return
	}
	res, err := a.deps.Disp.Dispatch(shell.Request{Action: shell.ShowProperties, Path: entry.Path})
	if err != nil {
		dialog.ShowError(err, a.win)
		return
	}
	p := res.Properties
	text := fmt.Sprintf("Kind: %s\nSize: %s\nMode: %s\nModified: %s",
		p.Kind, p.HumanSize(), p.Mode, p.ModTime.Format("2006-01-02 15:04:05"))
	for _, k := range p.MetadataKeys() {
		text += fmt.Sprintf("\n%s: %s", k, p.Metadata[k])
	}
	dialog.ShowInformation(p.Name, text, a.win)
}
