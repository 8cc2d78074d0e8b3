package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// MetricsModel shows runtime memory figures and the read throughput.
type MetricsModel struct {
	alloc        uint64
	heapSys      uint64
	numGC        uint32
	pauseTotalNs uint64
	numGoroutine int

	reads      int
	lastDigits int
	rate       float64 // reads per second, smoothed
	lastReads  int
	lastUpdate time.Time
	now        func() time.Time

	width  int
	height int
}

// NewMetricsModel creates a metrics panel.
func NewMetricsModel() MetricsModel {
	return MetricsModel{now: time.Now, lastUpdate: time.Now()}
}

// SetSize updates dimensions.
func (m *MetricsModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// UpdateMemStats stores a runtime sample and refreshes the read rate.
func (m *MetricsModel) UpdateMemStats(msg MemStatsMsg) {
	m.alloc = msg.Alloc
	m.heapSys = msg.HeapSys
	m.numGC = msg.NumGC
	m.pauseTotalNs = msg.PauseTotalNs
	m.numGoroutine = msg.NumGoroutine
	m.updateRate()
}

// AddRead counts one read of a digits-long value.
func (m *MetricsModel) AddRead(digits int) {
	m.reads++
	m.lastDigits = digits
}

// updateRate folds the reads since the previous call into an exponential
// moving average.
func (m *MetricsModel) updateRate() {
	now := m.now()
	dt := now.Sub(m.lastUpdate).Seconds()
	if dt < 0.05 {
		return
	}
	instant := float64(m.reads-m.lastReads) / dt
	if m.rate > 0 {
		m.rate = 0.7*m.rate + 0.3*instant
	} else {
		m.rate = instant
	}
	m.lastReads = m.reads
	m.lastUpdate = now
}

// Reset clears the read counters.
func (m *MetricsModel) Reset() {
	m.reads, m.lastReads, m.lastDigits = 0, 0, 0
	m.rate = 0
	m.lastUpdate = m.now()
}

// View renders the metrics panel.
func (m MetricsModel) View() string {
	col := max((m.width-6)/2, 10)
	rows := [][2]string{
		{metricCell("Heap:", formatBytes(m.alloc)+" / "+formatBytes(m.heapSys), col),
			metricCell("GC:", fmt.Sprintf("%d (%.1fms)", m.numGC, float64(m.pauseTotalNs)/1e6), col)},
		{metricCell("Reads:", fmt.Sprintf("%d", m.reads), col),
			metricCell("Rate:", fmt.Sprintf("%.0f/s", m.rate), col)},
		{metricCell("Digits:", fmt.Sprintf("%d", m.lastDigits), col),
			metricCell("Goroutines:", fmt.Sprintf("%d", m.numGoroutine), col)},
	}
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = r[0] + r[1]
	}
	return panelStyle.
		Width(max(m.width-2, 0)).
		Height(max(m.height-2, 0)).
		Render(strings.Join(lines, "\n"))
}

func metricCell(label, value string, width int) string {
	cell := fmt.Sprintf(" %s %s",
		metricLabelStyle.Render(fmt.Sprintf("%-11s", label)),
		metricValueStyle.Render(value))
	if w := lipgloss.Width(cell); w < width {
		cell += strings.Repeat(" ", width-w)
	}
	return cell
}

func formatBytes(b uint64) string {
	switch {
	case b >= 1<<30:
		return fmt.Sprintf("%.1f GB", float64(b)/(1<<30))
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
