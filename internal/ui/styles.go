package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Row is one label/value line of a summary box.
type Row struct {
	Label string
	Value string
}

// RenderSummary draws rows inside a rounded box titled title, using the
// palette of the active theme. ok selects the success or error colour for the
// title.
func RenderSummary(title string, ok bool, rows []Row) string {
	p := GetCurrentPalette()

	titleColor := p.Success
	if !ok {
		titleColor = p.Error
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(titleColor)
	labelStyle := lipgloss.NewStyle().Foreground(p.Label)
	valueStyle := lipgloss.NewStyle().Foreground(p.Value)

	width := 0
	for _, r := range rows {
		width = max(width, len(r.Label))
	}

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, titleStyle.Render(title))
	for _, r := range rows {
		label := labelStyle.Render(r.Label + ":" + strings.Repeat(" ", width-len(r.Label)))
		lines = append(lines, label+" "+valueStyle.Render(r.Value))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Padding(0, 1)
	return box.Render(strings.Join(lines, "\n"))
}

// Dim renders s in the palette's dim colour.
func Dim(s string) string {
	return lipgloss.NewStyle().Foreground(GetCurrentPalette().Dim).Render(s)
}
