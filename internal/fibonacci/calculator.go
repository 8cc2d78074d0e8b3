// Package fibonacci computes exact Fibonacci numbers on the bounded decimal
// arithmetic of package decimal. It exposes a Calculator interface that hides
// the engine behind it, so the O(log k) fast-doubling engine and the linear
// reference engine can be used interchangeably and cross-checked.
package fibonacci

//go:generate mockgen -source=calculator.go -destination=mocks/mock_calculator.go -package=mocks

import (
	"context"
	"errors"
	"time"

	"github.com/agbru/fibdrv/internal/bitseq"
	"github.com/agbru/fibdrv/internal/decimal"
	apperrors "github.com/agbru/fibdrv/internal/errors"
	"github.com/agbru/fibdrv/internal/metrics"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// ErrNegativeIndex is returned for any k < 0.
var ErrNegativeIndex = bitseq.ErrNegativeIndex

// Result is the outcome of one computation.
type Result struct {
	// Index is the requested k.
	Index int64
	// Value is F(k).
	Value decimal.Number
	// Elapsed is the wall-clock time spent inside the engine.
	Elapsed time.Duration
}

// Calculator defines the public interface for a Fibonacci calculator.
// It is the abstraction used by the device layer, the service layer and the
// orchestration layer to interact with the different engines.
type Calculator interface {
	// Calculate computes F(k). It is safe for concurrent use and honours
	// cancellation through ctx.
	//
	// Parameters:
	//   - ctx: The context for managing cancellation and deadlines.
	//   - k: The index of the Fibonacci number to calculate.
	//
	// Returns:
	//   - Result: The value and the engine latency.
	//   - error: An *apperrors.CalculationError wrapping the cause.
	Calculate(ctx context.Context, k int64) (Result, error)

	// Name returns the display name of the engine (e.g., "Fast Doubling").
	Name() string
}

// coreCalculator defines the internal interface for a pure engine. Engines
// own no state between calls; every call builds its own working numbers.
type coreCalculator interface {
	CalculateCore(ctx context.Context, arith *decimal.Arith, k int64) (decimal.Number, error)
	Name() string
}

// FibCalculator wraps a coreCalculator to add the cross-cutting concerns:
// input validation, timing, tracing, metrics, logging and error wrapping.
type FibCalculator struct {
	core  coreCalculator
	arith *decimal.Arith
}

// NewCalculator constructs a FibCalculator around core. A nil arith selects
// the default digit capacity. It panics if core is nil.
func NewCalculator(core coreCalculator, arith *decimal.Arith) Calculator {
	if core == nil {
		panic("fibonacci: the `coreCalculator` implementation cannot be nil")
	}
	if arith == nil {
		arith = decimal.NewArith(decimal.DefaultCapacity)
	}
	return &FibCalculator{core: core, arith: arith}
}

// Name returns the name of the encapsulated engine.
func (c *FibCalculator) Name() string {
	return c.core.Name()
}

// Capacity returns the digit capacity the engine computes under.
func (c *FibCalculator) Capacity() int {
	return c.arith.Capacity()
}

// Calculate runs the engine for k inside a tracing span and records the
// outcome. The reported Elapsed covers the engine only.
func (c *FibCalculator) Calculate(ctx context.Context, k int64) (res Result, err error) {
	algoName := c.core.Name()
	ctx, span := otel.Tracer("fibonacci").Start(ctx, "Calculate")
	defer span.End()
	span.SetAttributes(
		attribute.String("fibonacci.algorithm", algoName),
		attribute.Int64("fibonacci.index", k),
		attribute.Int("fibonacci.capacity", c.arith.Capacity()),
	)

	res.Index = k
	defer func() {
		digits := 0
		if err == nil {
			digits = res.Value.Len()
		}
		metrics.ObserveCalculation(algoName, res.Elapsed, digits, err)

		event := log.Debug()
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			event = event.Err(err)
		} else {
			span.SetAttributes(attribute.Int("fibonacci.digits", digits))
		}
		event.Str("algo", algoName).
			Int64("k", k).
			Dur("elapsed", res.Elapsed).
			Str("status", metrics.StatusOf(err)).
			Msg("calculation completed")
	}()

	if k < 0 {
		return res, c.wrap(k, ErrNegativeIndex)
	}

	start := time.Now()
	value, err := c.core.CalculateCore(ctx, c.arith, k)
	res.Elapsed = time.Since(start)
	if err != nil {
		return res, c.wrap(k, err)
	}
	res.Value = value
	return res, nil
}

// wrap attaches the engine name and index to a failure and, for capacity
// overflows, the digit count the engine attempted to produce.
func (c *FibCalculator) wrap(k int64, cause error) error {
	calcErr := apperrors.CalculationError{Algorithm: c.core.Name(), Index: k, Cause: cause}
	var capErr *decimal.CapacityError
	if errors.As(cause, &capErr) {
		calcErr.Digits = capErr.Digits
	}
	return calcErr
}
