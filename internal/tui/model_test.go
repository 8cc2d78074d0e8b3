package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/fibdrv/internal/device"
	apperrors "github.com/agbru/fibdrv/internal/errors"
	"github.com/agbru/fibdrv/internal/fibonacci"
	"github.com/agbru/fibdrv/internal/logging"
)

func newTestModel(t *testing.T, cfg Config) Model {
	t.Helper()
	calc, err := fibonacci.NewDefaultFactory().Get(fibonacci.AlgoFast)
	if err != nil {
		t.Fatal(err)
	}
	dev := device.New(calc, 100, device.WithLogger(logging.Nop()))
	sess, err := dev.Open()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = sess.Close() })
	return NewModel(context.Background(), sess, dev.Name(), cfg)
}

// drain executes read commands until the model stops scheduling them.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for cmd != nil {
		raw := cmd()
		msg, ok := raw.(ReadMsg)
		if !ok {
			t.Fatalf("expected a ReadMsg, got %T", raw)
		}
		next, c := m.Update(msg)
		m, cmd = next.(Model), c
	}
	return m
}

func press(m Model, k string) (Model, tea.Cmd) {
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
	return next.(Model), cmd
}

func TestModel_SweepsRange(t *testing.T) {
	m := newTestModel(t, Config{From: 3, To: 10, BufferSize: 64})
	m = drain(t, m, m.pending())

	if !m.done || m.ExitCode() != apperrors.ExitSuccess {
		t.Fatalf("done = %v, exit = %d", m.done, m.ExitCode())
	}
	if m.next != 11 {
		t.Errorf("next = %d, want 11", m.next)
	}
	if m.log.Len() != 8 || m.chart.latency.Len() != 8 || m.metrics.reads != 8 {
		t.Errorf("log %d, chart %d, reads %d; want 8 each", m.log.Len(), m.chart.latency.Len(), m.metrics.reads)
	}
	last := m.log.entries[len(m.log.entries)-1]
	if last.offset != 10 || last.value != "55" {
		t.Errorf("last entry = F(%d) %s, want F(10) 55", last.offset, last.value)
	}
	if m.footer.Status() != "DONE" {
		t.Errorf("status = %s", m.footer.Status())
	}
}

func TestModel_PauseStopsScheduling(t *testing.T) {
	m := newTestModel(t, Config{From: 0, To: 5, BufferSize: 64})
	first := m.pending()

	m, cmd := press(m, "p")
	if cmd != nil || !m.paused || m.footer.Status() != "PAUSED" {
		t.Fatal("pausing with a read outstanding should not schedule another")
	}

	next, cmd := m.Update(first())
	m = next.(Model)
	if cmd != nil {
		t.Fatal("a paused model should not schedule reads")
	}
	if m.next != 1 {
		t.Errorf("next = %d, want 1", m.next)
	}

	m, cmd = press(m, "p")
	if cmd == nil {
		t.Fatal("resuming should schedule the next read")
	}
	m = drain(t, m, cmd)
	if !m.done || m.log.Len() != 6 {
		t.Errorf("done = %v, entries = %d", m.done, m.log.Len())
	}
}

func TestModel_ResetDiscardsStaleRead(t *testing.T) {
	m := newTestModel(t, Config{From: 0, To: 4, BufferSize: 64})
	stale := m.pending()

	m, cmd := press(m, "r")
	if m.generation != 1 {
		t.Fatalf("generation = %d, want 1", m.generation)
	}
	if cmd != nil {
		if _, isRead := cmd().(ReadMsg); isRead {
			t.Fatal("reset must not issue a second concurrent read")
		}
	}

	next, cmd := m.Update(stale())
	m = next.(Model)
	if m.log.Len() != 0 {
		t.Error("stale read should not be logged")
	}
	if cmd == nil {
		t.Fatal("stale read should trigger the restarted sweep")
	}
	msg := cmd().(ReadMsg)
	if msg.Generation != 1 || msg.Offset != 0 {
		t.Errorf("restarted read = gen %d offset %d", msg.Generation, msg.Offset)
	}
}

func TestModel_ResetAfterDone(t *testing.T) {
	m := newTestModel(t, Config{From: 0, To: 2, BufferSize: 64})
	m = drain(t, m, m.pending())

	m, cmd := press(m, "r")
	if m.done || m.next != 0 || m.log.Len() != 0 || m.metrics.reads != 0 {
		t.Error("reset should clear the sweep state")
	}
	if cmd == nil {
		t.Error("reset after completion should restart reads and sampling")
	}
}

func TestModel_ReadErrorEndsSweep(t *testing.T) {
	// F(7) = 13 is the first value that does not fit one byte.
	m := newTestModel(t, Config{From: 5, To: 9, BufferSize: 1})
	m = drain(t, m, m.pending())

	if !m.done || m.footer.Status() != "ERROR" {
		t.Fatalf("done = %v, status = %s", m.done, m.footer.Status())
	}
	if m.ExitCode() != apperrors.ExitErrorGeneric {
		t.Errorf("exit = %d, want %d", m.ExitCode(), apperrors.ExitErrorGeneric)
	}
	last := m.log.entries[len(m.log.entries)-1]
	if last.offset != 7 || last.err == nil {
		t.Errorf("last entry = %+v, want an error at 7", last)
	}
}

func TestModel_ContextCancelled(t *testing.T) {
	m := newTestModel(t, Config{From: 0, To: 2, BufferSize: 64})
	next, cmd := m.Update(ContextCancelledMsg{Err: context.Canceled})
	m = next.(Model)

	if m.ExitCode() != apperrors.ExitErrorCanceled {
		t.Errorf("exit = %d, want %d", m.ExitCode(), apperrors.ExitErrorCanceled)
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("cancellation should quit the program")
	}
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(t, Config{From: 0, To: 2, BufferSize: 64})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should quit")
	}
}

func TestModel_SamplesUpdatePanels(t *testing.T) {
	m := newTestModel(t, Config{From: 0, To: 2, BufferSize: 64})

	next, _ := m.Update(SysStatsMsg{CPUPercent: 12.5, MemPercent: 40})
	m = next.(Model)
	next, _ = m.Update(MemStatsMsg{Alloc: 3 << 20, HeapSys: 8 << 20, NumGC: 4, NumGoroutine: 9})
	m = next.(Model)

	if m.chart.cpu.Last() != 12.5 || m.chart.mem.Last() != 40 {
		t.Error("host sample not recorded")
	}
	if m.metrics.alloc != 3<<20 || m.metrics.numGoroutine != 9 {
		t.Error("memory sample not recorded")
	}

	next, cmd := m.Update(TickMsg(time.Now()))
	m = next.(Model)
	if cmd == nil {
		t.Error("a running model should keep ticking")
	}
}

func TestModel_View(t *testing.T) {
	m := newTestModel(t, Config{From: 8, To: 12, BufferSize: 64, Version: "v1.0.0"})
	if m.View() != "Initializing..." {
		t.Error("view before the first size message should be a placeholder")
	}

	m = drain(t, m, m.pending())
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	m = next.(Model)

	view := m.View()
	for _, want := range []string{"fibdrv monitor v1.0.0", "/dev/fibonacci [8..12]", "F(12)", "144", "Engine time", "Reads:", "DONE", "quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestLogModel_Scroll(t *testing.T) {
	var l LogModel
	l.SetSize(40, 5) // three visible lines
	for i := range 10 {
		l.AddRead(ReadMsg{Offset: int64(i), Value: "1"})
	}

	l.Scroll(100)
	if l.scroll != 7 {
		t.Errorf("scroll = %d, want 7", l.scroll)
	}
	l.AddRead(ReadMsg{Offset: 10, Value: "1"})
	if l.scroll != 8 {
		t.Errorf("scrolled view should stay put when entries arrive, scroll = %d", l.scroll)
	}
	if !strings.Contains(l.View(), "F(0)") {
		t.Error("fully scrolled view should show the oldest entry")
	}

	l.Scroll(-100)
	if l.scroll != 0 {
		t.Errorf("scroll = %d, want 0", l.scroll)
	}
}

func TestMetricsModel_Rate(t *testing.T) {
	m := NewMetricsModel()
	now := time.Unix(100, 0)
	m.now = func() time.Time { return now }
	m.lastUpdate = now

	for range 50 {
		m.AddRead(20)
	}
	now = now.Add(time.Second)
	m.UpdateMemStats(MemStatsMsg{})
	if m.rate != 50 {
		t.Errorf("rate = %v, want 50", m.rate)
	}

	now = now.Add(time.Second)
	m.UpdateMemStats(MemStatsMsg{})
	if m.rate != 35 {
		t.Errorf("smoothed rate = %v, want 35", m.rate)
	}

	m.Reset()
	if m.reads != 0 || m.rate != 0 {
		t.Error("Reset should clear the counters")
	}
}

func TestFormatBytes(t *testing.T) {
	tests := map[uint64]string{
		512:     "512 B",
		2048:    "2.0 KB",
		5 << 20: "5.0 MB",
		3 << 30: "3.0 GB",
	}
	for in, want := range tests {
		if got := formatBytes(in); got != want {
			t.Errorf("formatBytes(%d) = %q, want %q", in, got, want)
		}
	}
}
