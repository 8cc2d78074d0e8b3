// Package cli holds the terminal front ends of fibdrv: the sweep client, the
// calc and verify commands, the interactive shell and shell completion.
//
// # Naming Conventions
//
//   - Display* functions write formatted output to an [io.Writer].
//   - Format* functions return a formatted string without performing I/O.
//   - Write* functions write data to files on the filesystem.
//   - Run* functions drive a whole command and return an exit code or error.
package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/fibdrv/internal/decimal"
	"github.com/agbru/fibdrv/internal/format"
	"github.com/agbru/fibdrv/internal/orchestration"
	"github.com/agbru/fibdrv/internal/ui"
)

const (
	// TruncationLimit is the digit count from which a value is truncated in
	// standard output.
	TruncationLimit = 100
	// DisplayEdges is the number of digits kept at each end of a truncated
	// value.
	DisplayEdges = 25
	// ProgressRefreshRate defines the refresh frequency of the progress bar.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 40
)

// Spinner abstracts a terminal spinner so DisplayProgress can be tested
// without a terminal.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Suffix = suffix
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// DisplayProgress shows a spinner with a progress bar and ETA until
// progressChan is closed, then prints the final state on its own line.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.Progress, out io.Writer) {
	defer wg.Done()

	var (
		last    orchestration.Progress
		tracker *format.ProgressWithETA
		eta     time.Duration
	)

	s := newSpinner(spinner.WithWriter(out))
	s.Start()
	stopped := false
	defer func() {
		if !stopped {
			s.Stop()
		}
	}()

	barWidth := progressBarWidth(out)
	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	for {
		select {
		case p, ok := <-progressChan:
			if !ok {
				s.Stop()
				stopped = true
				if tracker == nil {
					return
				}
				frac := float64(last.Done) / float64(max(last.Total, 1))
				fmt.Fprintf(out, "Checked %d/%d: %s\n", last.Done, last.Total,
					format.FormatProgressBarWithETA(frac, 0, barWidth))
				return
			}
			if tracker == nil {
				tracker = format.NewProgressWithETA(p.Total)
			}
			if p.Done > last.Done {
				last = p
				_, eta = tracker.Update(p.Done)
			}
		case <-ticker.C:
			if tracker == nil {
				continue
			}
			frac := float64(last.Done) / float64(max(last.Total, 1))
			s.UpdateSuffix(fmt.Sprintf(" Checked %d/%d: %s", last.Done, last.Total,
				format.FormatProgressBarWithETA(frac, eta, barWidth)))
		}
	}
}

// progressBarWidth shrinks the bar on narrow terminals so the spinner line
// never wraps. The counters and ETA take about 40 columns.
func progressBarWidth(out io.Writer) int {
	return max(min(ProgressBarWidth, ui.TerminalWidth(out, 80)-40), 10)
}

// DisplayResult prints F(n) inside a summary box with its digit count and
// engine time. Values longer than TruncationLimit are shortened unless
// verbose is set.
func DisplayResult(result decimal.Number, n int64, duration time.Duration, verbose bool, out io.Writer) {
	digits := result.String()
	value := format.FormatNumberString(digits)
	truncated := false
	if !verbose && len(digits) > TruncationLimit {
		value = digits[:DisplayEdges] + "..." + digits[len(digits)-DisplayEdges:]
		truncated = true
	}

	rows := []ui.Row{
		{Label: "Index", Value: fmt.Sprintf("%d", n)},
		{Label: "Digits", Value: format.FormatNumberString(fmt.Sprintf("%d", len(digits)))},
		{Label: "Engine time", Value: format.FormatExecutionDuration(duration)},
	}
	fmt.Fprintln(out, ui.RenderSummary(fmt.Sprintf("F(%d)", n), true, rows))

	if truncated {
		fmt.Fprintf(out, "F(%s%d%s) (truncated) = %s%s%s\n", ui.ColorMagenta(), n, ui.ColorReset(), ui.ColorGreen(), value, ui.ColorReset())
		fmt.Fprintf(out, "%s\n", ui.Dim("(Tip: use -v to display the full value)"))
		return
	}
	fmt.Fprintf(out, "F(%s%d%s) = %s%s%s\n", ui.ColorMagenta(), n, ui.ColorReset(), ui.ColorGreen(), value, ui.ColorReset())
}
