package bitseq

import (
	"errors"
	"fmt"
	"math"
	"testing"

	apperrors "github.com/agbru/fibdrv/internal/errors"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestOf_KnownExpansions(t *testing.T) {
	t.Parallel()
	tests := []struct {
		k    int64
		want []uint8
	}{
		{0, []uint8{0}},
		{1, []uint8{1}},
		{2, []uint8{1, 0}},
		{5, []uint8{1, 0, 1}},
		{10, []uint8{1, 0, 1, 0}},
		{500, []uint8{1, 1, 1, 1, 1, 0, 1, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("k=%d", tt.k), func(t *testing.T) {
			t.Parallel()
			seq, err := Of(tt.k)
			if err != nil {
				t.Fatalf("Of(%d) error: %v", tt.k, err)
			}
			var got []uint8
			for {
				b, ok := seq.Next()
				if !ok {
					break
				}
				got = append(got, b)
			}
			if fmt.Sprint(got) != fmt.Sprint(tt.want) {
				t.Errorf("Of(%d) = %v, want %v", tt.k, got, tt.want)
			}
		})
	}
}

func TestOf_Negative(t *testing.T) {
	t.Parallel()
	_, err := Of(-1)
	if !errors.Is(err, ErrNegativeIndex) {
		t.Errorf("Of(-1) error = %v, want ErrNegativeIndex", err)
	}
	if !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Errorf("Of(-1) error should match apperrors.ErrInvalidArgument")
	}
}

func TestSequence_ForwardOnly(t *testing.T) {
	t.Parallel()
	seq, err := Of(6)
	if err != nil {
		t.Fatal(err)
	}
	if seq.Len() != 3 || seq.Remaining() != 3 {
		t.Fatalf("Len/Remaining = %d/%d, want 3/3", seq.Len(), seq.Remaining())
	}
	if b, _ := seq.Next(); b != 1 {
		t.Errorf("first bit = %d, want 1", b)
	}
	if seq.Remaining() != 2 {
		t.Errorf("Remaining() = %d, want 2", seq.Remaining())
	}
	seq.Next()
	seq.Next()
	if _, ok := seq.Next(); ok {
		t.Error("exhausted sequence should report ok=false")
	}
	if got := seq.Bits(); fmt.Sprint(got) != "[1 1 0]" {
		t.Errorf("Bits() = %v, want [1 1 0]", got)
	}
}

func TestOf_MaxInt64(t *testing.T) {
	t.Parallel()
	seq, err := Of(math.MaxInt64)
	if err != nil {
		t.Fatal(err)
	}
	if seq.Len() != 63 {
		t.Errorf("Len() = %d, want 63", seq.Len())
	}
}

// TestOf_RoundTrip_PropertyBased verifies that folding the bits back
// together reproduces the index and that the expansion starts with 1.
func TestOf_RoundTrip_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	properties.Property("bits fold back into the index", prop.ForAll(
		func(k int64) bool {
			seq, err := Of(k)
			if err != nil {
				return false
			}
			bits := seq.Bits()
			if k > 0 && bits[0] != 1 {
				return false
			}
			var v int64
			for _, b := range bits {
				v = v<<1 | int64(b)
			}
			return v == k
		},
		gen.Int64Range(0, math.MaxInt64),
	))

	properties.TestingRun(t)
}
