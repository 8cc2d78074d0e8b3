// Package tui implements the monitor dashboard: a full-screen view of a
// device sweep with the values read, the engine time of each read, and live
// runtime and host metrics.
package tui

import (
	"context"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/fibdrv/internal/device"
	apperrors "github.com/agbru/fibdrv/internal/errors"
	"github.com/agbru/fibdrv/internal/sysmon"
)

// Layout constants.
const (
	headerHeight          = 1
	footerHeight          = 1
	minBodyHeight         = 8
	LogsPanelWidthPercent = 55
	MetricsPanelHeight    = 5
	tickInterval          = 500 * time.Millisecond
)

// Config bounds a monitor session.
type Config struct {
	// From and To are the first and last offsets read, inclusive.
	From, To int64
	// BufferSize is the read buffer size.
	BufferSize int
	// Version is shown in the header.
	Version string
}

// Model is the root bubbletea model. Reads are issued one at a time as
// commands, so pausing simply stops scheduling the next one.
type Model struct {
	header  HeaderModel
	log     LogModel
	chart   ChartModel
	metrics MetricsModel
	footer  FooterModel
	keymap  KeyMap

	ctx  context.Context
	sess *device.Session
	cfg  Config
	buf  []byte

	next       int64
	generation uint64
	inFlight   bool
	paused     bool
	done       bool
	exitCode   int

	width  int
	height int
}

// NewModel creates a model sweeping sess over cfg's range. The first read is
// issued by Init.
func NewModel(ctx context.Context, sess *device.Session, devName string, cfg Config) Model {
	keymap := DefaultKeyMap()
	return Model{
		header:   NewHeaderModel(cfg.Version, devName, cfg.From, cfg.To),
		chart:    NewChartModel(),
		metrics:  NewMetricsModel(),
		footer:   NewFooterModel(keymap),
		keymap:   keymap,
		ctx:      ctx,
		sess:     sess,
		cfg:      cfg,
		buf:      make([]byte, max(cfg.BufferSize, 1)),
		next:     cfg.From,
		inFlight: true,
		exitCode: apperrors.ExitSuccess,
	}
}

// Init starts the first read, the sampling ticker and the context watcher.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), m.pending(), watchContextCmd(m.ctx))
}

// ExitCode returns the code the session ended with.
func (m Model) ExitCode() int { return m.exitCode }

// pending returns the read command for the current offset.
func (m Model) pending() tea.Cmd {
	return readCmd(m.ctx, m.sess, m.buf, m.next, m.generation)
}

// schedule issues the next read unless one is already outstanding or the
// sweep is paused or over.
func (m *Model) schedule() tea.Cmd {
	if m.inFlight || m.paused || m.done {
		return nil
	}
	m.inFlight = true
	return m.pending()
}

func (m *Model) finish(code int) {
	m.done = true
	m.exitCode = code
	m.header.SetDone()
	m.footer.SetDone(true)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layoutPanels()
		return m, nil

	case ReadMsg:
		m.inFlight = false
		if msg.Generation != m.generation {
			// Result of a sweep that was restarted.
			return m, m.schedule()
		}
		if msg.Err != nil {
			m.log.AddError(msg.Offset, msg.Err)
			m.footer.SetError(true)
			m.finish(apperrors.HandleCalculationError(msg.Err, 0, io.Discard, nil))
			return m, nil
		}
		m.log.AddRead(msg)
		m.chart.AddSample(msg.Engine)
		m.metrics.AddRead(len(msg.Value))
		m.next = msg.Offset + 1
		if m.next > m.cfg.To {
			m.finish(apperrors.ExitSuccess)
			return m, nil
		}
		return m, m.schedule()

	case TickMsg:
		if m.done {
			return m, nil
		}
		if m.paused {
			return m, tickCmd()
		}
		return m, tea.Batch(sampleMemStatsCmd(), sampleSysStatsCmd(m.ctx), tickCmd())

	case MemStatsMsg:
		m.metrics.UpdateMemStats(msg)
		return m, nil

	case SysStatsMsg:
		m.chart.UpdateSysStats(msg.CPUPercent, msg.MemPercent)
		return m, nil

	case ContextCancelledMsg:
		m.finish(apperrors.HandleCalculationError(msg.Err, 0, io.Discard, nil))
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Pause):
		if m.done {
			return m, nil
		}
		m.paused = !m.paused
		m.footer.SetPaused(m.paused)
		return m, m.schedule()

	case key.Matches(msg, m.keymap.Reset):
		wasDone := m.done
		m.generation++
		m.next = m.cfg.From
		m.done, m.paused = false, false
		m.exitCode = apperrors.ExitSuccess
		m.header.Reset()
		m.log.Reset()
		m.chart.Reset()
		m.metrics.Reset()
		m.footer.SetDone(false)
		m.footer.SetError(false)
		m.footer.SetPaused(false)

		cmds := []tea.Cmd{m.schedule()}
		if wasDone {
			cmds = append(cmds, tickCmd())
		}
		return m, tea.Batch(cmds...)

	case key.Matches(msg, m.keymap.Up):
		m.log.Scroll(1)
	case key.Matches(msg, m.keymap.Down):
		m.log.Scroll(-1)
	case key.Matches(msg, m.keymap.PageUp):
		m.log.Scroll(m.log.visibleLines())
	case key.Matches(msg, m.keymap.PageDown):
		m.log.Scroll(-m.log.visibleLines())
	}
	return m, nil
}

func (m *Model) layoutPanels() {
	body := max(m.height-headerHeight-footerHeight, minBodyHeight)
	logsWidth := m.width * LogsPanelWidthPercent / 100
	rightWidth := m.width - logsWidth
	metricsHeight := min(MetricsPanelHeight, body/2)

	m.header.SetWidth(m.width)
	m.footer.SetWidth(m.width)
	m.log.SetSize(logsWidth, body)
	m.metrics.SetSize(rightWidth, metricsHeight)
	m.chart.SetSize(rightWidth, body-metricsHeight)
}

// View renders the dashboard.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	right := lipgloss.JoinVertical(lipgloss.Left, m.metrics.View(), m.chart.View())
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.log.View(), right)
	return lipgloss.JoinVertical(lipgloss.Left, m.header.View(), body, m.footer.View())
}

// Run shows the dashboard until the user quits or ctx ends, and returns the
// exit code. sess stays open; the caller closes it.
func Run(ctx context.Context, sess *device.Session, devName string, cfg Config) int {
	initTUIStyles()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewModel(ctx, sess, devName, cfg), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return apperrors.ExitErrorGeneric
	}
	if m, ok := final.(Model); ok {
		return m.exitCode
	}
	return apperrors.ExitSuccess
}

// readCmd seeks to offset and reads it, timing the call.
func readCmd(ctx context.Context, sess *device.Session, buf []byte, offset int64, gen uint64) tea.Cmd {
	return func() tea.Msg {
		msg := ReadMsg{Generation: gen, Offset: offset}
		if _, err := sess.Seek(offset, io.SeekStart); err != nil {
			msg.Err = err
			return msg
		}
		start := time.Now()
		n, err := sess.ReadContext(ctx, buf)
		msg.Caller = time.Since(start)
		msg.Engine = sess.Elapsed()
		msg.Value = string(buf[:n])
		msg.Err = err
		return msg
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func sampleMemStatsCmd() tea.Cmd {
	return func() tea.Msg {
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		return MemStatsMsg{
			Alloc:        ms.Alloc,
			HeapSys:      ms.HeapSys,
			NumGC:        ms.NumGC,
			PauseTotalNs: ms.PauseTotalNs,
			NumGoroutine: runtime.NumGoroutine(),
		}
	}
}

func sampleSysStatsCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		s := sysmon.Sample(ctx)
		return SysStatsMsg{CPUPercent: s.CPUPercent, MemPercent: s.MemPercent}
	}
}

func watchContextCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err()}
	}
}
