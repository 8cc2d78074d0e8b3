package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// FooterModel shows the run status and the key help.
type FooterModel struct {
	keys   help.KeyMap
	help   help.Model
	paused bool
	done   bool
	failed bool
}

// NewFooterModel creates a footer listing the short help of keys.
func NewFooterModel(keys help.KeyMap) FooterModel {
	h := help.New()
	h.Styles.ShortKey = footerKeyStyle
	h.Styles.ShortDesc = dimStyle
	h.Styles.ShortSeparator = dimStyle
	h.ShortSeparator = "  •  "
	return FooterModel{keys: keys, help: h}
}

func (f *FooterModel) SetWidth(w int)     { f.help.Width = w }
func (f *FooterModel) SetPaused(p bool)   { f.paused = p }
func (f *FooterModel) SetDone(d bool)     { f.done = d }
func (f *FooterModel) SetError(fail bool) { f.failed = fail }

// Status returns the label of the current state.
func (f FooterModel) Status() string {
	switch {
	case f.failed:
		return "ERROR"
	case f.done:
		return "DONE"
	case f.paused:
		return "PAUSED"
	}
	return "RUNNING"
}

// View renders the footer.
func (f FooterModel) View() string {
	style := statusRunningStyle
	switch f.Status() {
	case "ERROR":
		style = statusErrorStyle
	case "DONE":
		style = statusDoneStyle
	case "PAUSED":
		style = statusPausedStyle
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, " ", style.Render(f.Status()), "  ", f.help.View(f.keys))
}
