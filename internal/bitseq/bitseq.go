// Package bitseq decomposes a Fibonacci index into its binary digits, most
// significant first, for consumption by doubling-based engines.
package bitseq

import (
	"fmt"
	"math/bits"

	apperrors "github.com/agbru/fibdrv/internal/errors"
)

// ErrNegativeIndex is returned for indices below zero.
var ErrNegativeIndex = fmt.Errorf("negative index: %w", apperrors.ErrInvalidArgument)

// Sequence is a one-shot, forward-only view of an index's binary expansion.
// To start over, build a new Sequence with Of.
type Sequence struct {
	bits []uint8
	pos  int
}

// Of returns the binary expansion of k, most significant bit first. Zero
// yields a single 0 bit.
func Of(k int64) (*Sequence, error) {
	if k < 0 {
		return nil, ErrNegativeIndex
	}
	if k == 0 {
		return &Sequence{bits: []uint8{0}}, nil
	}

	u := uint64(k)
	n := bits.Len64(u)
	out := make([]uint8, n)
	for i := n - 1; i >= 0; i-- {
		out[n-1-i] = uint8((u >> uint(i)) & 1)
	}
	return &Sequence{bits: out}, nil
}

// Next returns the next bit. ok is false once the sequence is exhausted.
func (s *Sequence) Next() (bit uint8, ok bool) {
	if s.pos >= len(s.bits) {
		return 0, false
	}
	bit = s.bits[s.pos]
	s.pos++
	return bit, true
}

// Len returns the total number of bits in the expansion.
func (s *Sequence) Len() int { return len(s.bits) }

// Remaining returns how many bits Next has yet to yield.
func (s *Sequence) Remaining() int { return len(s.bits) - s.pos }

// Bits returns a copy of the whole expansion regardless of progress.
func (s *Sequence) Bits() []uint8 {
	out := make([]uint8, len(s.bits))
	copy(out, s.bits)
	return out
}
