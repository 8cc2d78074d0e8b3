package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/fibdrv/internal/format"
)

// HeaderModel renders the top bar: title, device, range and elapsed time.
type HeaderModel struct {
	startTime time.Time
	endTime   time.Time
	version   string
	device    string
	from, to  int64
	width     int
}

// NewHeaderModel creates a header for a sweep of device over [from, to].
func NewHeaderModel(version, device string, from, to int64) HeaderModel {
	return HeaderModel{
		startTime: time.Now(),
		version:   version,
		device:    device,
		from:      from,
		to:        to,
	}
}

// SetDone freezes the elapsed timer.
func (h *HeaderModel) SetDone() { h.endTime = time.Now() }

// Reset restarts the elapsed timer.
func (h *HeaderModel) Reset() {
	h.startTime = time.Now()
	h.endTime = time.Time{}
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) { h.width = w }

// Elapsed returns the time since the sweep started, frozen once done.
func (h HeaderModel) Elapsed() time.Duration {
	if !h.endTime.IsZero() {
		return h.endTime.Sub(h.startTime)
	}
	return time.Since(h.startTime)
}

// View renders the header.
func (h HeaderModel) View() string {
	title := "fibdrv monitor"
	if h.version != "" && h.version != "dev" {
		title += " " + h.version
	}
	pipe := dimStyle.Render(" | ")
	row := titleStyle.Render(title) + pipe +
		accentStyle.Render(fmt.Sprintf("/dev/%s [%d..%d]", h.device, h.from, h.to)) + pipe +
		accentStyle.Render("Elapsed: "+format.FormatExecutionDuration(h.Elapsed()))
	return headerStyle.Width(max(h.width, lipgloss.Width(row))).Render(row)
}
