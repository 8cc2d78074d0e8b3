//go:build gmp

// This file provides a GMP-backed engine, compiled only with the "gmp" build
// tag so the default build needs no libgmp. It computes with the same
// fast-doubling identities and converts the result into the bounded decimal
// form, so it obeys the same digit capacity as the native engines.

package fibonacci

import (
	"context"

	"github.com/agbru/fibdrv/internal/decimal"
	"github.com/ncw/gmp"
)

func init() {
	_ = RegisterCalculator("gmp", func() coreCalculator { return &GMPCalculator{} })
}

// GMPCalculator computes F(k) on gmp.Int. It requires the 'gmp' build tag and
// the libgmp library installed on the system.
type GMPCalculator struct{}

// Name returns the name of the algorithm.
func (c *GMPCalculator) Name() string {
	return "GMP (Fast Doubling)"
}

// CalculateCore computes F(k) and checks the result against the capacity of
// arith. Intermediates are not bounded.
func (c *GMPCalculator) CalculateCore(ctx context.Context, arith *decimal.Arith, k int64) (decimal.Number, error) {
	switch {
	case k < 0:
		return decimal.Number{}, ErrNegativeIndex
	case k == 0:
		return decimal.Zero(), nil
	}

	a, b := gmp.NewInt(0), gmp.NewInt(1)
	t1, t2 := new(gmp.Int), new(gmp.Int)
	for i := 62; i >= 0; i-- {
		if k>>uint(i) == 0 {
			continue
		}
		if err := ctx.Err(); err != nil {
			return decimal.Number{}, err
		}
		// t1 = a * (2b - a) = F(2m)
		t1.Lsh(b, 1)
		t1.Sub(t1, a)
		t1.Mul(a, t1)
		// t2 = a² + b² = F(2m+1)
		t2.Mul(a, a)
		a.Mul(b, b)
		t2.Add(t2, a)
		a.Set(t1)
		b.Set(t2)
		if (k>>uint(i))&1 == 1 {
			t1.Add(a, b)
			a.Set(b)
			b.Set(t1)
		}
	}

	digits := a.String()
	if !arith.Fits(len(digits)) {
		return decimal.Number{}, &decimal.CapacityError{Op: "gmp", Digits: len(digits), Capacity: arith.Capacity()}
	}
	return decimal.Parse(digits)
}
