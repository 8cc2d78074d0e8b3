package fibonacci

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/agbru/fibdrv/internal/decimal"
	apperrors "github.com/agbru/fibdrv/internal/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// stubCore is a coreCalculator returning canned values.
type stubCore struct {
	value decimal.Number
	err   error
	calls int
}

func (s *stubCore) Name() string { return "stub" }

func (s *stubCore) CalculateCore(ctx context.Context, arith *decimal.Arith, k int64) (decimal.Number, error) {
	s.calls++
	return s.value, s.err
}

func TestNewCalculator_PanicsOnNilCore(t *testing.T) {
	t.Parallel()
	defer func() {
		if r := recover(); r == nil {
			t.Error("NewCalculator(nil) should panic")
		}
	}()
	NewCalculator(nil, nil)
}

func TestNewCalculator_DefaultCapacity(t *testing.T) {
	t.Parallel()
	calc := NewCalculator(&FastDoubling{}, nil).(*FibCalculator)
	if calc.Capacity() != decimal.DefaultCapacity {
		t.Errorf("Capacity() = %d, want %d", calc.Capacity(), decimal.DefaultCapacity)
	}
	if calc.Name() != "Fast Doubling" {
		t.Errorf("Name() = %q", calc.Name())
	}
}

func TestFibCalculator_Calculate(t *testing.T) {
	t.Parallel()
	calc := NewCalculator(&FastDoubling{}, nil)

	res, err := calc.Calculate(context.Background(), 100)
	if err != nil {
		t.Fatalf("Calculate(100) error = %v", err)
	}
	if res.Index != 100 {
		t.Errorf("Index = %d, want 100", res.Index)
	}
	if res.Value.String() != "354224848179261915075" {
		t.Errorf("Value = %s", res.Value)
	}
	if res.Elapsed < 0 {
		t.Errorf("Elapsed = %v, want non-negative", res.Elapsed)
	}
}

func TestFibCalculator_NegativeIndexSkipsCore(t *testing.T) {
	t.Parallel()
	core := &stubCore{}
	calc := NewCalculator(core, nil)

	res, err := calc.Calculate(context.Background(), -5)
	if !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Fatalf("Calculate(-5) error = %v, want invalid argument", err)
	}
	if core.calls != 0 {
		t.Errorf("core called %d times, want 0", core.calls)
	}
	if res.Index != -5 {
		t.Errorf("Index = %d, want -5", res.Index)
	}
}

func TestFibCalculator_WrapsErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		cause      error
		wantDigits int
		wantIs     error
	}{
		{
			name:       "capacity overflow",
			cause:      &decimal.CapacityError{Op: "mul", Digits: 300, Capacity: 256},
			wantDigits: 300,
			wantIs:     apperrors.ErrCapacityOverflow,
		},
		{
			name:   "canceled",
			cause:  context.Canceled,
			wantIs: context.Canceled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			calc := NewCalculator(&stubCore{err: tt.cause}, nil)
			_, err := calc.Calculate(context.Background(), 42)

			var calcErr apperrors.CalculationError
			if !errors.As(err, &calcErr) {
				t.Fatalf("error = %T, want CalculationError", err)
			}
			if calcErr.Algorithm != "stub" || calcErr.Index != 42 {
				t.Errorf("CalculationError = %+v", calcErr)
			}
			if calcErr.Digits != tt.wantDigits {
				t.Errorf("Digits = %d, want %d", calcErr.Digits, tt.wantDigits)
			}
			if !errors.Is(err, tt.wantIs) {
				t.Errorf("errors.Is(%v, %v) = false", err, tt.wantIs)
			}
		})
	}
}

func TestFibCalculator_OverflowReportsDigits(t *testing.T) {
	t.Parallel()
	calc := NewCalculator(&Linear{}, decimal.NewArith(10))

	_, err := calc.Calculate(context.Background(), 60)
	var calcErr apperrors.CalculationError
	if !errors.As(err, &calcErr) {
		t.Fatalf("error = %v, want CalculationError", err)
	}
	// F(50) = 12586269025 is the first Fibonacci number with 11 digits.
	if calcErr.Digits != 11 {
		t.Errorf("Digits = %d, want 11", calcErr.Digits)
	}
	if !apperrors.IsCapacityOverflow(err) {
		t.Errorf("IsCapacityOverflow(%v) = false", err)
	}
}

// namedCore is a Linear engine under its own metric label.
type namedCore struct {
	Linear
	name string
}

func (n *namedCore) Name() string { return n.name }

// digitSamples returns the count and sum of the result-digits histogram for
// algorithm.
func digitSamples(t *testing.T, algorithm string) (uint64, float64) {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != "fibdrv_result_digits" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "algorithm" && lp.GetValue() == algorithm {
					return m.GetHistogram().GetSampleCount(), m.GetHistogram().GetSampleSum()
				}
			}
		}
	}
	return 0, 0
}

func TestFibCalculator_FailedCalculationRecordsNoDigits(t *testing.T) {
	t.Parallel()
	const algo = "linear-capacity-10"
	calc := NewCalculator(&namedCore{name: algo}, decimal.NewArith(10))

	if _, err := calc.Calculate(context.Background(), 60); err == nil {
		t.Fatal("Calculate(60) at capacity 10 should overflow")
	}
	if count, _ := digitSamples(t, algo); count != 0 {
		t.Errorf("failed calculation recorded %d digit samples, want 0", count)
	}

	if _, err := calc.Calculate(context.Background(), 45); err != nil {
		t.Fatalf("Calculate(45) error = %v", err)
	}
	// F(45) = 1134903170
	if count, sum := digitSamples(t, algo); count != 1 || sum != 10 {
		t.Errorf("digit samples = %d (sum %v), want 1 sample of 10 digits", count, sum)
	}
}

func TestFibCalculator_ConcurrentUse(t *testing.T) {
	t.Parallel()
	calc := NewCalculator(&FastDoubling{}, nil)
	want := bigFib(DefaultMaxIndex).String()

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := calc.Calculate(context.Background(), DefaultMaxIndex)
			if err != nil {
				errs <- err
				return
			}
			if res.Value.String() != want {
				errs <- errors.New("mismatched result: " + res.Value.String())
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}
