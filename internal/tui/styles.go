package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/fibdrv/internal/ui"
)

// Style variables for the monitor dashboard, rebuilt from the active ui
// palette by initTUIStyles.
var (
	panelStyle         lipgloss.Style
	headerStyle        lipgloss.Style
	titleStyle         lipgloss.Style
	dimStyle           lipgloss.Style
	accentStyle        lipgloss.Style
	logOffsetStyle     lipgloss.Style
	logValueStyle      lipgloss.Style
	logErrorStyle      lipgloss.Style
	metricLabelStyle   lipgloss.Style
	metricValueStyle   lipgloss.Style
	chartStyle         lipgloss.Style
	cpuSparklineStyle  lipgloss.Style
	memSparklineStyle  lipgloss.Style
	footerKeyStyle     lipgloss.Style
	statusRunningStyle lipgloss.Style
	statusPausedStyle  lipgloss.Style
	statusDoneStyle    lipgloss.Style
	statusErrorStyle   lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds all styles from the current ui palette. Run calls it
// again because the theme is chosen after package initialisation.
func initTUIStyles() {
	p := ui.GetCurrentPalette()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(p.Accent)
	dimStyle = lipgloss.NewStyle().Foreground(p.Dim)
	accentStyle = lipgloss.NewStyle().Foreground(p.Accent)

	logOffsetStyle = lipgloss.NewStyle().Foreground(p.Label)
	logValueStyle = lipgloss.NewStyle().Foreground(p.Value)
	logErrorStyle = lipgloss.NewStyle().Foreground(p.Error)

	metricLabelStyle = lipgloss.NewStyle().Foreground(p.Label)
	metricValueStyle = lipgloss.NewStyle().Foreground(p.Accent).Bold(true)

	chartStyle = lipgloss.NewStyle().Foreground(p.Accent)
	cpuSparklineStyle = lipgloss.NewStyle().Foreground(p.Success)
	memSparklineStyle = lipgloss.NewStyle().Foreground(p.Warning)

	footerKeyStyle = lipgloss.NewStyle().Foreground(p.Accent).Bold(true)
	statusRunningStyle = lipgloss.NewStyle().Foreground(p.Success).Bold(true)
	statusPausedStyle = lipgloss.NewStyle().Foreground(p.Warning).Bold(true)
	statusDoneStyle = lipgloss.NewStyle().Foreground(p.Accent).Bold(true)
	statusErrorStyle = lipgloss.NewStyle().Foreground(p.Error).Bold(true)
}
