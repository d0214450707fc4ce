package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"colonnade/internal/fs"
	"colonnade/internal/nav"
	"colonnade/pkg/types"
)

const columnWidth = 28

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderPathBar())
	b.WriteString("\n")
	b.WriteString(m.renderColumns())
	b.WriteString("\n")
	b.WriteString(m.renderBottom())
	return b.String()
}

func (m *Model) viewWidth() int {
	if m.width <= 0 {
		return 80
	}
	return m.width
}

func (m *Model) viewHeight() int {
	if m.height <= 0 {
		return 24
	}
	return m.height
}

// columnHeight is the inner height available for entry rows.
func (m *Model) columnHeight() int {
	h := m.viewHeight() - 6
	if h < 3 {
		h = 3
	}
	return h
}

// previewWidth is the horizontal space reserved for the preview pane.
func (m *Model) previewWidth() int {
	if !m.showPreview || m.previewContent == "" {
		return 0
	}
	w := m.viewWidth() / 3
	if w < 24 {
		w = 24
	}
	return w
}

func (m *Model) renderPathBar() string {
	cols := m.ctrl.Columns()
	path := ""
	if m.focus < len(cols) {
		path = cols[m.focus].Path
	}
	return m.styles.PathBar.Render(path)
}

func (m *Model) renderColumns() string {
	cols := m.ctrl.Columns()
	if len(cols) == 0 {
		return m.styles.EmptyNote.Render("no directory open")
	}

	available := m.viewWidth() - m.previewWidth()
	maxCols := available / columnWidth
	if maxCols < 1 {
		maxCols = 1
	}

	// Show the tail of the stack, but never scroll the focused column
	// out of view.
	start := len(cols) - maxCols
	if start < 0 {
		start = 0
	}
	if m.focus < start {
		start = m.focus
	}
	end := start + maxCols
	if end > len(cols) {
		end = len(cols)
	}

	rendered := make([]string, 0, end-start+1)
	for i := start; i < end; i++ {
		rendered = append(rendered, m.renderColumn(&cols[i], i == m.focus))
	}
	if pw := m.previewWidth(); pw > 0 {
		rendered = append(rendered, m.renderPreview(pw))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m *Model) renderColumn(col *nav.Column, focused bool) string {
	inner := columnWidth - 4 // border + padding
	h := m.columnHeight()

	lines := make([]string, 0, h+1)
	title := runewidth.Truncate(titleOf(col.Path), inner, "…")
	lines = append(lines, m.styles.ColumnTitle.Render(title))

	switch {
	case col.Err != nil:
		lines = append(lines, m.styles.ErrorNote.Render(wrapTo(col.Err.Error(), inner, h-1)))
	case len(col.Entries) == 0:
		lines = append(lines, m.styles.EmptyNote.Render("(empty)"))
	default:
		lines = append(lines, m.renderEntries(col, focused, inner, h-1)...)
	}

	style := m.styles.Column
	if focused {
		style = m.styles.FocusedColumn
	}
	return style.Width(columnWidth - 2).Height(h + 1).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderEntries(col *nav.Column, focused bool, inner, rows int) []string {
	offset := 0
	if col.Selected >= rows {
		offset = col.Selected - rows + 1
	}

	out := make([]string, 0, rows)
	for i := offset; i < len(col.Entries) && len(out) < rows; i++ {
		e := col.Entries[i]
		name := e.Name
		if e.IsDir() {
			name += "/"
		} else if m.cfg.Browser.HideExtensions {
			if ext := filepath.Ext(name); ext != "" && ext != name {
				name = strings.TrimSuffix(name, ext)
			}
		}
		name = runewidth.Truncate(name, inner-2, "…")

		line := "  " + name
		switch {
		case i == col.Selected && focused:
			line = m.styles.CursorLine.Render("▸ " + name)
		case i == col.Selected:
			line = m.styles.Selected.Render("▸ " + name)
		case e.Kind == fs.KindDirectory:
			line = m.styles.Directory.Render(line)
		case e.Kind == fs.KindSymlink:
			line = m.styles.Symlink.Render(line)
		default:
			line = m.styles.Entry.Render(line)
		}
		out = append(out, line)
	}
	return out
}

func (m *Model) renderPreview(width int) string {
	inner := width - 4
	lines := []string{m.styles.PreviewTitle.Render(runewidth.Truncate(m.previewTitle, inner, "…"))}
	m.preview.Width = inner
	m.preview.Height = m.columnHeight()
	lines = append(lines, m.preview.View())
	return m.styles.Preview.Width(width - 2).Height(m.columnHeight() + 1).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderBottom() string {
	switch m.mode {
	case types.Input:
		return m.styles.Prompt.Render(m.input.View())
	case types.Confirm:
		if m.confirm != nil {
			return m.styles.ConfirmText.Render(m.confirm.question + " (y/n)")
		}
	}

	if m.showHelp {
		return m.renderStatusLine() + "\n" + m.styles.Help.Render(
			"j/k move · h/l columns · enter activate · u up · ~ home · : go to · "+
				"r rename · n new folder · d trash · D delete · z zip · x/X extract · "+
				"i properties · . hidden · p preview · q quit")
	}
	return m.renderStatusLine()
}

func (m *Model) renderStatusLine() string {
	if m.status != "" {
		if m.statusIsErr {
			return m.styles.StatusError.Render(m.status)
		}
		return m.styles.StatusNotice.Render(m.status)
	}

	cols := m.ctrl.Columns()
	if m.focus >= len(cols) {
		return m.styles.StatusBar.Render("")
	}
	col := cols[m.focus]
	info := fmt.Sprintf("%d items", len(col.Entries))
	if e, ok := col.SelectedEntry(); ok {
		if e.IsDir() {
			info = fmt.Sprintf("%s · %s", e.Name, info)
		} else {
			info = fmt.Sprintf("%s · %s · %s", e.Name, humanize.Bytes(uint64(e.Size)), info)
		}
	}
	return m.styles.StatusBar.Render(info)
}

// titleOf is the short label a column carries: the directory's base
// name, or the full path for filesystem roots.
func titleOf(path string) string {
	base := strings.TrimRight(path, "/\\")
	if base == "" {
		return path
	}
	if i := strings.LastIndexAny(base, "/\\"); i >= 0 {
		return base[i+1:]
	}
	return base
}

// wrapTo hard-wraps text to the given width, keeping at most rows lines.
func wrapTo(text string, width, rows int) string {
	if width < 1 {
		return text
	}
	var lines []string
	for _, word := range strings.Fields(text) {
		if len(lines) == 0 || runewidth.StringWidth(lines[len(lines)-1])+1+runewidth.StringWidth(word) > width {
			lines = append(lines, word)
			continue
		}
		lines[len(lines)-1] += " " + word
	}
	if len(lines) > rows {
		lines = lines[:rows]
	}
	for i, l := range lines {
		lines[i] = runewidth.Truncate(l, width, "…")
	}
	return strings.Join(lines, "\n")
}
