package fibonacci

import (
	"context"

	"github.com/agbru/fibdrv/internal/bitseq"
	"github.com/agbru/fibdrv/internal/decimal"
)

// FastDoubling computes F(k) with the "Fast Doubling" identities in O(log k)
// doubling steps:
//
//	F(2m)   = F(m) · [2·F(m+1) − F(m)]
//	F(2m+1) = F(m+1)² + F(m)²
//
// The pair (a, b) = (F(m), F(m+1)) starts at (F(1), F(2)) = (1, 1), which
// accounts for the leading bit of k. Each remaining bit doubles m, and a set
// bit then advances the pair by one: (a, b) = (b, a+b).
type FastDoubling struct{}

// Name returns the descriptive name of the algorithm.
func (fd *FastDoubling) Name() string {
	return "Fast Doubling"
}

// CalculateCore computes F(k). Every primitive failure aborts the loop and is
// returned unchanged; the context is checked once per bit.
func (fd *FastDoubling) CalculateCore(ctx context.Context, arith *decimal.Arith, k int64) (decimal.Number, error) {
	bits, err := bitseq.Of(k)
	if err != nil {
		return decimal.Number{}, err
	}
	if k == 0 {
		return decimal.Zero(), nil
	}

	a, b := decimal.One(), decimal.One()
	bits.Next() // the leading 1 is folded into the initial pair
	for {
		bit, ok := bits.Next()
		if !ok {
			return a, nil
		}
		if err := ctx.Err(); err != nil {
			return decimal.Number{}, err
		}
		if a, b, err = doublingStep(arith, a, b); err != nil {
			return decimal.Number{}, err
		}
		if bit == 1 {
			sum, err := arith.Add(a, b)
			if err != nil {
				return decimal.Number{}, err
			}
			a, b = b, sum
		}
	}
}

// doublingStep maps (F(m), F(m+1)) to (F(2m), F(2m+1)). All temporaries are
// derived from the pre-update pair.
func doublingStep(arith *decimal.Arith, a, b decimal.Number) (decimal.Number, decimal.Number, error) {
	t1, err := arith.Add(b, b)
	if err != nil {
		return a, b, err
	}
	t2, err := arith.Sub(t1, a)
	if err != nil {
		return a, b, err
	}
	f2m, err := arith.Mul(a, t2)
	if err != nil {
		return a, b, err
	}
	bb, err := arith.Mul(b, b)
	if err != nil {
		return a, b, err
	}
	aa, err := arith.Mul(a, a)
	if err != nil {
		return a, b, err
	}
	f2m1, err := arith.Add(bb, aa)
	if err != nil {
		return a, b, err
	}
	return f2m, f2m1, nil
}
