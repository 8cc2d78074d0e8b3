package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/fibdrv/internal/format"
)

// maxLogEntries bounds the scrollback.
const maxLogEntries = 2000

type logEntry struct {
	offset int64
	value  string
	engine time.Duration
	err    error
}

// LogModel lists the values read so far, newest at the bottom.
type LogModel struct {
	entries []logEntry
	scroll  int // lines hidden below the visible window
	width   int
	height  int
}

// SetSize updates dimensions.
func (l *LogModel) SetSize(w, h int) {
	l.width = w
	l.height = h
}

// AddRead appends a successful read.
func (l *LogModel) AddRead(msg ReadMsg) {
	l.push(logEntry{offset: msg.Offset, value: msg.Value, engine: msg.Engine})
}

// AddError appends a failed read.
func (l *LogModel) AddError(offset int64, err error) {
	l.push(logEntry{offset: offset, err: err})
}

func (l *LogModel) push(e logEntry) {
	if len(l.entries) == maxLogEntries {
		l.entries = append(l.entries[:0], l.entries[1:]...)
	}
	l.entries = append(l.entries, e)
	if l.scroll > 0 {
		l.scroll++
	}
}

// Len returns the number of entries.
func (l *LogModel) Len() int { return len(l.entries) }

// Reset clears the log.
func (l *LogModel) Reset() {
	l.entries = l.entries[:0]
	l.scroll = 0
}

// Scroll moves the window by delta lines; positive values go back in time.
func (l *LogModel) Scroll(delta int) {
	l.scroll = min(max(l.scroll+delta, 0), max(len(l.entries)-l.visibleLines(), 0))
}

func (l *LogModel) visibleLines() int { return max(l.height-2, 1) }

// View renders the visible window of the log.
func (l LogModel) View() string {
	visible := l.visibleLines()
	end := len(l.entries) - l.scroll
	start := max(end-visible, 0)

	inner := max(l.width-4, 10)
	lines := make([]string, 0, visible)
	for _, e := range l.entries[start:end] {
		lines = append(lines, renderLogEntry(e, inner))
	}
	return panelStyle.
		Width(max(l.width-2, 0)).
		Height(visible).
		Render(strings.Join(lines, "\n"))
}

func renderLogEntry(e logEntry, width int) string {
	offset := logOffsetStyle.Render(fmt.Sprintf("F(%d)", e.offset))
	if e.err != nil {
		return offset + " " + logErrorStyle.Render(e.err.Error())
	}
	engine := dimStyle.Render(format.FormatExecutionDuration(e.engine))
	room := width - lipgloss.Width(offset) - lipgloss.Width(engine) - 2
	return offset + " " + logValueStyle.Render(elide(e.value, room)) + " " + engine
}

// elide shortens s to at most n runes, keeping both ends.
func elide(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n < 5 {
		return s[:max(n, 0)]
	}
	head := (n - 1) / 2
	tail := n - 1 - head
	return s[:head] + "…" + s[len(s)-tail:]
}
