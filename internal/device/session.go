package device

import (
	"context"
	"errors"
	"io"
	"os"
	"sync"
	"time"

	"github.com/agbru/fibdrv/internal/decimal"
)

var errWhence = errors.New("device: invalid whence")

// Session is an open handle on a Device. Its methods are safe for concurrent
// use, though a session normally belongs to one caller.
type Session struct {
	dev *Device

	mu      sync.Mutex
	pos     int64
	elapsed time.Duration
	last    decimal.Number
	closed  bool
}

// Seek sets the index for the next Read. io.SeekEnd positions at
// MaxIndex − offset. The resulting position is clamped to [0, MaxIndex]
// rather than rejected.
func (s *Session) Seek(offset int64, whence int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, os.ErrClosed
	}

	var pos int64
	switch whence {
	case io.SeekStart:
		pos = clamp(0, offset, s.dev.maxIndex)
	case io.SeekCurrent:
		pos = clamp(s.pos, offset, s.dev.maxIndex)
	case io.SeekEnd:
		// offset is only negated when positive, so MinInt64 cannot overflow.
		pos = s.dev.maxIndex
		if offset > 0 {
			pos = clamp(s.dev.maxIndex, -offset, s.dev.maxIndex)
		}
	default:
		return s.pos, errWhence
	}
	s.pos = pos
	return s.pos, nil
}

// clamp returns base+delta limited to [0, hi]. base is already in [0, hi],
// so the sum is compared against the bounds before it is formed.
func clamp(base, delta, hi int64) int64 {
	switch {
	case delta >= hi-base:
		return hi
	case delta <= -base:
		return 0
	}
	return base + delta
}

// Pos returns the current index.
func (s *Session) Pos() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos
}

// Read computes F(Pos()) and copies its digits into p. It returns
// io.ErrShortBuffer, copying nothing, when p cannot hold every digit. The
// position is left unchanged, so consecutive reads return the same value.
func (s *Session) Read(p []byte) (int, error) {
	return s.ReadContext(context.Background(), p)
}

// ReadContext is Read with cancellation.
func (s *Session) ReadContext(ctx context.Context, p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, os.ErrClosed
	}

	res, err := s.dev.calc.Calculate(ctx, s.pos)
	s.elapsed = res.Elapsed
	if err != nil {
		return 0, err
	}
	s.last = res.Value

	digits := res.Value.String()
	if len(p) < len(digits) {
		return 0, io.ErrShortBuffer
	}
	return copy(p, digits), nil
}

// Value returns the number produced by the last successful read.
func (s *Session) Value() decimal.Number {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Elapsed returns the engine time of the most recent read.
func (s *Session) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elapsed
}

// Close ends the session and releases the device. Closing twice returns
// os.ErrClosed.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return os.ErrClosed
	}
	s.closed = true
	s.dev.release()
	return nil
}

var _ io.ReadSeekCloser = (*Session)(nil)
