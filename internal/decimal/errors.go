package decimal

import (
	"fmt"

	apperrors "github.com/agbru/fibdrv/internal/errors"
)

var (
	// ErrCapacityOverflow is matched by every error caused by a result that
	// would need more digits than the configured capacity.
	ErrCapacityOverflow = apperrors.ErrCapacityOverflow

	// ErrInvalidArgument is matched by every error caused by operands that
	// violate an operation's precondition or by malformed numerals.
	ErrInvalidArgument = apperrors.ErrInvalidArgument
)

// CapacityError reports an operation whose result would exceed the digit
// capacity of its Arith.
type CapacityError struct {
	// Op is the operation that overflowed ("add", "sub", "mul", "from").
	Op string
	// Digits is the digit count the result would have needed.
	Digits int
	// Capacity is the configured maximum digit count.
	Capacity int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("decimal %s: %v: result needs %d digits, capacity is %d", e.Op, ErrCapacityOverflow, e.Digits, e.Capacity)
}

// Unwrap links the error to ErrCapacityOverflow.
func (e *CapacityError) Unwrap() error { return ErrCapacityOverflow }

// ArgumentError reports an operand that an operation cannot accept.
type ArgumentError struct {
	Op     string
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("decimal %s: %v: %s", e.Op, ErrInvalidArgument, e.Reason)
}

// Unwrap links the error to ErrInvalidArgument.
func (e *ArgumentError) Unwrap() error { return ErrInvalidArgument }
