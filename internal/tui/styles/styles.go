// Package styles centralizes the lipgloss styling for the terminal UI.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"colonnade/internal/config"
)

// Theme holds the resolved colors for the current session.
type Theme struct {
	Primary  lipgloss.Color
	Success  lipgloss.Color
	Warning  lipgloss.Color
	Error    lipgloss.Color
	Info     lipgloss.Color
	Emphasis lipgloss.Color
	Border   lipgloss.Color
}

// Styles bundles every style the views use so the theme is applied in
// one place.
type Styles struct {
	Theme Theme

	PathBar       lipgloss.Style
	Column        lipgloss.Style
	FocusedColumn lipgloss.Style
	ColumnTitle   lipgloss.Style
	Entry         lipgloss.Style
	Directory     lipgloss.Style
	Symlink       lipgloss.Style
	Selected      lipgloss.Style
	CursorLine    lipgloss.Style
	ErrorNote     lipgloss.Style
	EmptyNote     lipgloss.Style

	Preview      lipgloss.Style
	PreviewTitle lipgloss.Style

	StatusBar    lipgloss.Style
	StatusError  lipgloss.Style
	StatusNotice lipgloss.Style
	Prompt       lipgloss.Style
	ConfirmText  lipgloss.Style
	Help         lipgloss.Style
}

// FromConfig builds the style set from the configured theme colors.
func FromConfig(cfg *config.Config) *Styles {
	th := Theme{
		Primary:  lipgloss.Color(cfg.Theme.Primary),
		Success:  lipgloss.Color(cfg.Theme.Success),
		Warning:  lipgloss.Color(cfg.Theme.Warning),
		Error:    lipgloss.Color(cfg.Theme.Error),
		Info:     lipgloss.Color(cfg.Theme.Info),
		Emphasis: lipgloss.Color(cfg.Theme.Emphasis),
		Border:   lipgloss.Color(cfg.Theme.Border),
	}

	s := &Styles{Theme: th}

	s.PathBar = lipgloss.NewStyle().
		Foreground(th.Primary).
		Bold(true).
		Padding(0, 1)

	s.Column = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	s.FocusedColumn = s.Column.
		BorderForeground(th.Border)

	s.ColumnTitle = lipgloss.NewStyle().
		Foreground(th.Emphasis).
		Bold(true)

	s.Entry = lipgloss.NewStyle()

	s.Directory = lipgloss.NewStyle().
		Foreground(th.Info).
		Bold(true)

	s.Symlink = lipgloss.NewStyle().
		Foreground(th.Warning)

	s.Selected = lipgloss.NewStyle().
		Foreground(th.Emphasis)

	s.CursorLine = lipgloss.NewStyle().
		Foreground(lipgloss.Color("230")).
		Background(th.Primary).
		Bold(true)

	s.ErrorNote = lipgloss.NewStyle().
		Foreground(th.Error).
		Italic(true)

	s.EmptyNote = lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true)

	s.Preview = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	s.PreviewTitle = s.ColumnTitle

	s.StatusBar = lipgloss.NewStyle().
		Foreground(lipgloss.Color("250")).
		Padding(0, 1)

	s.StatusError = lipgloss.NewStyle().
		Foreground(th.Error).
		Bold(true).
		Padding(0, 1)

	s.StatusNotice = lipgloss.NewStyle().
		Foreground(th.Success).
		Padding(0, 1)

	s.Prompt = lipgloss.NewStyle().
		Foreground(th.Primary).
		Padding(0, 1)

	s.ConfirmText = lipgloss.NewStyle().
		Foreground(th.Warning).
		Bold(true).
		Padding(0, 1)

	s.Help = lipgloss.NewStyle().
		Foreground(lipgloss.Color("243")).
		Padding(0, 1)

	return s
}
