package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorTimeout  = 2   // Indicates the operation timed out.
	ExitErrorMismatch = 3   // Indicates a result mismatch between algorithms.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorCapacity = 5   // Indicates a result exceeded the digit capacity.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// Error classes shared by every layer of the engine.
var (
	// ErrInvalidArgument marks a request the core cannot accept, such as a
	// negative index or a subtraction whose result would be negative.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrCapacityOverflow marks a digit sequence that would exceed the
	// configured buffer capacity.
	ErrCapacityOverflow = errors.New("capacity overflow")

	// ErrBusy marks an attempt to open a device that already has a live
	// exclusive session.
	ErrBusy = errors.New("device busy")
)

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// CalculationError reports a failed Fibonacci computation. It identifies the
// algorithm and the requested index and, for capacity overflows, the digit
// count the engine attempted to produce.
type CalculationError struct {
	// Algorithm is the short name of the engine that failed.
	Algorithm string
	// Index is the requested Fibonacci index.
	Index int64
	// Digits is the attempted digit count when the cause is a capacity
	// overflow, zero otherwise.
	Digits int
	// Cause is the underlying error that aborted the computation.
	Cause error
}

// Error returns a message naming the failing index and the cause.
func (e CalculationError) Error() string {
	if e.Algorithm == "" {
		return fmt.Sprintf("F(%d): %v", e.Index, e.Cause)
	}
	return fmt.Sprintf("%s: F(%d): %v", e.Algorithm, e.Index, e.Cause)
}

// Unwrap returns the original wrapped error, allowing for error chain
// inspection (e.g., using errors.Is or errors.As).
func (e CalculationError) Unwrap() error { return e.Cause }

// TimeoutError represents a calculation timeout. It captures the operation
// name and the duration limit that was exceeded.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was considered timed out.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// Unwrap lets errors.Is(err, context.DeadlineExceeded) recognise timeouts.
func (e TimeoutError) Unwrap() error { return context.DeadlineExceeded }

// ValidationError represents an input validation failure. It identifies which
// field failed validation and provides a human-readable explanation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// Unwrap classifies every validation failure as an invalid argument.
func (e ValidationError) Unwrap() error { return ErrInvalidArgument }

// ServerError wraps failures of the HTTP server lifecycle.
type ServerError struct {
	Message string
	Cause   error
}

func (e ServerError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

func (e ServerError) Unwrap() error { return e.Cause }

// NewServerError creates a ServerError with the given message and cause.
func NewServerError(message string, cause error) error {
	return ServerError{Message: message, Cause: cause}
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// IsCapacityOverflow reports whether err stems from a digit capacity overflow.
func IsCapacityOverflow(err error) bool {
	return errors.Is(err, ErrCapacityOverflow)
}
