package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/fibseq/internal/ui"
)

// Style variables for the viewer, rebuilt from the ui theme by initTUIStyles.
var (
	panelStyle       lipgloss.Style
	headerStyle      lipgloss.Style
	titleStyle       lipgloss.Style
	dimStyle         lipgloss.Style
	accentStyle      lipgloss.Style
	indexStyle       lipgloss.Style
	termStyle        lipgloss.Style
	statusRunStyle   lipgloss.Style
	statusDoneStyle  lipgloss.Style
	statusErrorStyle lipgloss.Style
	sparklineStyle   lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds all styles from the current ui theme. Run calls it
// again after the application has selected its theme.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Foreground(t.Text)

	headerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent).
		Padding(0, 1)

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
	dimStyle = lipgloss.NewStyle().Foreground(t.Dim)
	accentStyle = lipgloss.NewStyle().Foreground(t.Accent)
	indexStyle = lipgloss.NewStyle().Foreground(t.Dim)
	termStyle = lipgloss.NewStyle().Foreground(t.Text)

	statusRunStyle = lipgloss.NewStyle().Foreground(t.Success).Bold(true)
	statusDoneStyle = lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	statusErrorStyle = lipgloss.NewStyle().Foreground(t.Error).Bold(true)

	sparklineStyle = lipgloss.NewStyle().Foreground(t.Accent)
}
