// Package service holds the request-level logic shared by the HTTP server and
// the REPL: index validation and engine selection.
package service

//go:generate mockgen -source=calculator_service.go -destination=mocks/mock_service.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	apperrors "github.com/agbru/fibdrv/internal/errors"
	"github.com/agbru/fibdrv/internal/fibonacci"
)

var (
	// ErrMaxValueExceeded is returned when n exceeds the configured maximum index.
	ErrMaxValueExceeded = errors.New("maximum n value exceeded")

	// ErrUnknownAlgorithm is returned when no engine is registered under the
	// requested name.
	ErrUnknownAlgorithm = errors.New("unknown algorithm")
)

// Service defines the interface for Fibonacci calculation services.
// This abstraction enables dependency injection and easier testing/mocking.
type Service interface {
	// Calculate validates n and computes F(n) with the named engine.
	//
	// Parameters:
	//   - ctx: The context for cancellation.
	//   - algoName: The name of the algorithm to use.
	//   - n: The Fibonacci index to calculate.
	//
	// Returns:
	//   - fibonacci.Result: The value and engine time.
	//   - error: An error if validation or calculation fails.
	Calculate(ctx context.Context, algoName string, n int64) (fibonacci.Result, error)

	// Algorithms returns the names of the available engines.
	Algorithms() []string
}

// CalculatorService centralizes validation and algorithm retrieval.
// Implements the Service interface.
type CalculatorService struct {
	factory fibonacci.CalculatorFactory
	maxN    int64
}

// Ensure CalculatorService implements Service interface.
var _ Service = (*CalculatorService)(nil)

// NewCalculatorService creates a new instance of CalculatorService.
//
// Parameters:
//   - factory: The factory to retrieve calculators from.
//   - maxN: The maximum allowed value for n (negative for no limit).
func NewCalculatorService(factory fibonacci.CalculatorFactory, maxN int64) *CalculatorService {
	return &CalculatorService{
		factory: factory,
		maxN:    maxN,
	}
}

// Calculate retrieves the requested calculator and computes F(n).
func (s *CalculatorService) Calculate(ctx context.Context, algoName string, n int64) (fibonacci.Result, error) {
	if n < 0 {
		return fibonacci.Result{Index: n}, apperrors.ValidationError{Field: "n", Message: "must be a non-negative integer"}
	}
	if s.maxN >= 0 && n > s.maxN {
		return fibonacci.Result{Index: n}, fmt.Errorf("%w: %d > %d", ErrMaxValueExceeded, n, s.maxN)
	}

	calc, err := s.factory.Get(algoName)
	if err != nil {
		return fibonacci.Result{Index: n}, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, algoName)
	}
	return calc.Calculate(ctx, n)
}

// Algorithms returns the registered engine names in sorted order.
func (s *CalculatorService) Algorithms() []string {
	return s.factory.List()
}
