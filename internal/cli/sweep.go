package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/agbru/fibdrv/internal/device"
)

// SweepConfig bounds a sweep.
type SweepConfig struct {
	// From and To are the first and last offsets read, inclusive.
	From, To int64
	// BufferSize is the size of the read buffer; values longer than it fail
	// with io.ErrShortBuffer.
	BufferSize int
	// Quiet prints "offset value" pairs only.
	Quiet bool
}

// RunSweep opens dev and, for every offset in [From, To], seeks to it, reads
// the value and prints it with the engine time reported by the session and
// the time observed around the read.
func RunSweep(ctx context.Context, dev *device.Device, cfg SweepConfig, out io.Writer) error {
	sess, err := dev.Open()
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", dev.Name(), err)
	}
	defer sess.Close()

	buf := make([]byte, cfg.BufferSize)
	for i := cfg.From; i <= cfg.To; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := sess.Seek(i, io.SeekStart); err != nil {
			return fmt.Errorf("seek to offset %d: %w", i, err)
		}

		start := time.Now()
		n, err := sess.ReadContext(ctx, buf)
		caller := time.Since(start)
		if err != nil {
			return fmt.Errorf("read at offset %d: %w", i, err)
		}

		if cfg.Quiet {
			fmt.Fprintf(out, "%d %s\n", i, buf[:n])
			continue
		}
		fmt.Fprintln(out, FormatSweepLine(i, buf[:n], sess.Elapsed(), caller))
	}
	return nil
}

// FormatSweepLine renders one line of sweep output.
func FormatSweepLine(offset int64, value []byte, engine, caller time.Duration) string {
	return fmt.Sprintf("Reading at offset %d, returned the sequence %s. engine time: %d ns, caller time: %d ns.",
		offset, value, engine.Nanoseconds(), caller.Nanoseconds())
}
