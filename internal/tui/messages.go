package tui

import "time"

// ReadMsg carries the outcome of reading one offset.
type ReadMsg struct {
	Generation uint64
	Offset     int64
	Value      string
	Engine     time.Duration
	Caller     time.Duration
	Err        error
}

// TickMsg drives periodic sampling.
type TickMsg time.Time

// MemStatsMsg carries a runtime memory sample.
type MemStatsMsg struct {
	Alloc        uint64
	HeapSys      uint64
	NumGC        uint32
	PauseTotalNs uint64
	NumGoroutine int
}

// SysStatsMsg carries a host CPU and memory sample.
type SysStatsMsg struct {
	CPUPercent float64
	MemPercent float64
}

// ContextCancelledMsg reports that the session context ended.
type ContextCancelledMsg struct {
	Err error
}
