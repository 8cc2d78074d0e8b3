package orchestration

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/fibdrv/internal/errors"
	"github.com/agbru/fibdrv/internal/fibonacci"
)

// MismatchError reports an index at which two engines disagree.
type MismatchError struct {
	Index     int64
	Reference string
	Candidate string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("F(%d) mismatch: reference %s, candidate %s", e.Index, e.Reference, e.Candidate)
}

// VerifyRange computes F(k) with both calculators for every k in [from, to]
// on at most workers goroutines (GOMAXPROCS when workers <= 0) and compares
// the digits. It stops scheduling at the first disagreement or failure and
// lets the checks already running finish, so the lowest mismatching index in
// the range is the one reported.
//
// onProgress, if non-nil, is called after each checked index with the running
// count. It may be called concurrently.
//
// Returns the number of indices checked and either nil, a *MismatchError, or
// the first computation error.
func VerifyRange(ctx context.Context, reference, candidate fibonacci.Calculator, from, to int64, workers int, onProgress func(Progress)) (int64, error) {
	if from < 0 || to < from {
		return 0, apperrors.ValidationError{Field: "range", Message: fmt.Sprintf("invalid range [%d, %d]", from, to)}
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	total := to - from + 1

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var (
		done     atomic.Int64
		mu       sync.Mutex
		mismatch *MismatchError
	)
	// settledBelow reports whether a mismatch below k is already recorded.
	settledBelow := func(k int64) bool {
		mu.Lock()
		defer mu.Unlock()
		return mismatch != nil && mismatch.Index < k
	}

	for k := from; k <= to; k++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if gctx.Err() != nil && settledBelow(k) {
				return nil
			}
			// Lower indices still in flight when a mismatch is found run on ctx,
			// so the group's cancellation cannot hide them.
			ref, err := reference.Calculate(ctx, k)
			if err != nil {
				return err
			}
			got, err := candidate.Calculate(ctx, k)
			if err != nil {
				return err
			}
			if !ref.Value.Equal(got.Value) {
				mu.Lock()
				if mismatch == nil || k < mismatch.Index {
					mismatch = &MismatchError{Index: k, Reference: ref.Value.String(), Candidate: got.Value.String()}
				}
				mu.Unlock()
				return errMismatch
			}
			n := done.Add(1)
			if onProgress != nil {
				onProgress(Progress{Done: n, Total: total})
			}
			return nil
		})
	}

	err := g.Wait()
	if mismatch != nil {
		return done.Load(), mismatch
	}
	if err == nil {
		err = ctx.Err()
	}
	return done.Load(), err
}

// errMismatch stops the group; the caller reports the recorded MismatchError.
var errMismatch = errors.New("results differ")
