package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/agbru/fibdrv/internal/format"
)

const historySize = 512

// ChartModel plots the engine time of recent reads together with host CPU
// and memory sparklines.
type ChartModel struct {
	latency *RingBuffer
	cpu     *RingBuffer
	mem     *RingBuffer
	width   int
	height  int
}

// NewChartModel creates an empty chart.
func NewChartModel() ChartModel {
	return ChartModel{
		latency: NewRingBuffer(historySize),
		cpu:     NewRingBuffer(historySize),
		mem:     NewRingBuffer(historySize),
	}
}

// SetSize updates dimensions.
func (c *ChartModel) SetSize(w, h int) {
	c.width = w
	c.height = h
}

// AddSample records the engine time of one read.
func (c *ChartModel) AddSample(d time.Duration) {
	c.latency.Push(float64(d.Nanoseconds()))
}

// UpdateSysStats records a host sample.
func (c *ChartModel) UpdateSysStats(cpuPercent, memPercent float64) {
	c.cpu.Push(cpuPercent)
	c.mem.Push(memPercent)
}

// Reset clears the latency history. Host history is kept across restarts.
func (c *ChartModel) Reset() {
	c.latency.Reset()
}

// View renders the chart panel.
func (c ChartModel) View() string {
	inner := max(c.width-4, 8)
	rows := max(c.height-5, 1)

	peak := c.latency.Max()
	var b strings.Builder
	b.WriteString(titleStyle.Render("Engine time"))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  last %s  peak %s",
		format.FormatExecutionDuration(time.Duration(c.latency.Last())),
		format.FormatExecutionDuration(time.Duration(peak)))))
	for _, line := range RenderBrailleChart(c.latency.Slice(), peak, inner, rows) {
		b.WriteString("\n")
		b.WriteString(chartStyle.Render(line))
	}

	spark := max(inner-12, 1)
	b.WriteString("\n")
	b.WriteString(sparkRow("CPU", c.cpu, spark, cpuSparklineStyle.Render))
	b.WriteString("\n")
	b.WriteString(sparkRow("MEM", c.mem, spark, memSparklineStyle.Render))

	return panelStyle.
		Width(max(c.width-2, 0)).
		Height(max(c.height-2, 0)).
		Render(b.String())
}

func sparkRow(label string, r *RingBuffer, width int, render func(...string) string) string {
	values := r.Slice()
	if len(values) > width {
		values = values[len(values)-width:]
	}
	return fmt.Sprintf("%s %s %s",
		metricLabelStyle.Render(label),
		render(RenderSparkline(values, 100)),
		metricValueStyle.Render(fmt.Sprintf("%5.1f%%", r.Last())))
}
