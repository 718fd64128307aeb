package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// Theme colors, overridable from config.
type Theme struct {
	Border string
	Text   string
	Accent string
}

var defaultTheme = Theme{
	Border: "#4a9a8a",
	Text:   "#d4d4d4",
	Accent: "#e6b450",
}

var (
	headerStyle       lipgloss.Style
	statusBarStyle    lipgloss.Style
	notificationStyle lipgloss.Style
	overlayStyle      lipgloss.Style
	formTitleStyle    lipgloss.Style
	labelStyle        lipgloss.Style
	focusedLabelStyle lipgloss.Style
	selectorStyle     lipgloss.Style
	filterStyle       lipgloss.Style
	tableBorderStyle  lipgloss.Style

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff5555"))

	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#50fa7b"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f1fa8c"))
)

func init() {
	applyTheme(defaultTheme)
}

// applyTheme rebuilds the themed styles. Empty fields keep the default.
func applyTheme(t Theme) {
	if t.Border == "" {
		t.Border = defaultTheme.Border
	}
	if t.Text == "" {
		t.Text = defaultTheme.Text
	}
	if t.Accent == "" {
		t.Accent = defaultTheme.Accent
	}
	border := lipgloss.Color(t.Border)
	text := lipgloss.Color(t.Text)
	accent := lipgloss.Color(t.Accent)

	headerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(accent).
		Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888888")).
		Padding(0, 1)

	notificationStyle = lipgloss.NewStyle().
		Foreground(accent).
		Padding(0, 1)

	overlayStyle = lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(accent).
		Foreground(text).
		Padding(1, 2)

	formTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(accent)

	labelStyle = lipgloss.NewStyle().Foreground(text)
	focusedLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	selectorStyle = lipgloss.NewStyle().Foreground(border)

	filterStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#8be9fd")).
		Padding(0, 1)

	tableBorderStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border)
}

func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(tableBorderStyle.GetBorderTopForeground()).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#1a1a1a")).
		Background(formTitleStyle.GetForeground()).
		Bold(false)
	return s
}
