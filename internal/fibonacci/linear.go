package fibonacci

import (
	"context"

	"github.com/agbru/fibdrv/internal/decimal"
)

// Linear computes F(k) by k−1 additions over a two-slot rolling window. It
// serves as the reference engine that fast doubling is checked against.
type Linear struct{}

// Name returns the descriptive name of the algorithm.
func (l *Linear) Name() string {
	return "Linear (Reference)"
}

// CalculateCore computes F(k), checking the context between additions.
func (l *Linear) CalculateCore(ctx context.Context, arith *decimal.Arith, k int64) (decimal.Number, error) {
	switch {
	case k < 0:
		return decimal.Number{}, ErrNegativeIndex
	case k == 0:
		return decimal.Zero(), nil
	}

	prev, cur := decimal.Zero(), decimal.One()
	for i := int64(2); i <= k; i++ {
		if err := ctx.Err(); err != nil {
			return decimal.Number{}, err
		}
		next, err := arith.Add(prev, cur)
		if err != nil {
			return decimal.Number{}, err
		}
		prev, cur = cur, next
	}
	return cur, nil
}
