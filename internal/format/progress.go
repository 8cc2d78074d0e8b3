package format

import (
	"fmt"
	"strings"
	"time"
)

// maxETA caps estimates so a stalled rate never prints absurd values.
const maxETA = 24 * time.Hour

// ProgressWithETA estimates the time remaining for a job of Total units from
// the smoothed completion rate. It is not safe for concurrent use.
type ProgressWithETA struct {
	Total        int64
	startTime    time.Time
	lastUpdate   time.Time
	lastDone     int64
	progressRate float64 // units per second
	now          func() time.Time
}

// NewProgressWithETA creates a tracker for total units of work.
func NewProgressWithETA(total int64) *ProgressWithETA {
	return newProgressWithClock(total, time.Now)
}

func newProgressWithClock(total int64, now func() time.Time) *ProgressWithETA {
	t := now()
	return &ProgressWithETA{Total: total, startTime: t, lastUpdate: t, now: now}
}

// Update records done completed units and returns the completed fraction and
// the estimated time remaining, 0 while no estimate is available.
//
// The rate is smoothed exponentially, 70% previous and 30% instantaneous.
func (p *ProgressWithETA) Update(done int64) (progress float64, eta time.Duration) {
	progress = p.fraction(done)
	now := p.now()
	elapsed := now.Sub(p.startTime)

	if elapsed < 100*time.Millisecond || done <= 0 {
		p.lastUpdate = now
		p.lastDone = done
		return progress, 0
	}

	if dt := now.Sub(p.lastUpdate).Seconds(); dt > 0.05 {
		if delta := done - p.lastDone; delta > 0 {
			instant := float64(delta) / dt
			if p.progressRate > 0 {
				p.progressRate = 0.7*p.progressRate + 0.3*instant
			} else {
				p.progressRate = float64(done) / elapsed.Seconds()
			}
		}
		p.lastUpdate = now
		p.lastDone = done
	}

	return progress, p.eta(done)
}

func (p *ProgressWithETA) fraction(done int64) float64 {
	if p.Total <= 0 {
		return 1
	}
	return min(float64(done)/float64(p.Total), 1)
}

func (p *ProgressWithETA) eta(done int64) time.Duration {
	if p.progressRate <= 0 || done >= p.Total {
		return 0
	}
	eta := time.Duration(float64(p.Total-done) / p.progressRate * float64(time.Second))
	return min(eta, maxETA)
}

// FormatETA formats a duration into a short ETA such as "< 1s", "2m30s" or
// "1h15m".
func FormatETA(eta time.Duration) string {
	if eta <= 0 {
		return "calculating..."
	}
	if eta < time.Second {
		return "< 1s"
	}
	if eta < time.Minute {
		return fmt.Sprintf("%ds", int(eta.Seconds()))
	}
	if eta < time.Hour {
		minutes := int(eta.Minutes())
		if seconds := int(eta.Seconds()) % 60; seconds > 0 {
			return fmt.Sprintf("%dm%ds", minutes, seconds)
		}
		return fmt.Sprintf("%dm", minutes)
	}
	hours := int(eta.Hours())
	if minutes := int(eta.Minutes()) % 60; minutes > 0 {
		return fmt.Sprintf("%dh%dm", hours, minutes)
	}
	return fmt.Sprintf("%dh", hours)
}

// ProgressBar renders progress (0..1) as a bar of width cells.
func ProgressBar(progress float64, width int) string {
	if width <= 0 {
		return ""
	}
	progress = max(0, min(progress, 1))
	filled := int(progress * float64(width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// FormatProgressBarWithETA combines percentage, bar and ETA, e.g.
// "45.00% [████░░░░] ETA: 2m30s".
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	return fmt.Sprintf("%6.2f%% [%s] ETA: %s", progress*100, ProgressBar(progress, width), FormatETA(eta))
}
