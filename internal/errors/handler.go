package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// ColorProvider supplies the terminal codes used to highlight failures. The
// cli package implements it with the active theme.
type ColorProvider interface {
	Yellow() string
	Reset() string
}

// DefaultColorProvider provides no color codes (for non-terminal output).
type DefaultColorProvider struct{}

func (d DefaultColorProvider) Yellow() string { return "" }
func (d DefaultColorProvider) Reset() string  { return "" }

// HandleCalculationError reports a failed computation on out and returns the
// exit code for its class. duration, when positive, is how long the engine
// ran before failing; colors may be nil.
//
// Capacity overflows name the attempted digit count when a CalculationError
// carries one, so the user knows how far to raise --capacity.
func HandleCalculationError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	if colors == nil {
		colors = DefaultColorProvider{}
	}
	hl := func(v any) string { return fmt.Sprintf("%s%v%s", colors.Yellow(), v, colors.Reset()) }

	after := ""
	if duration > 0 {
		after = " after " + hl(duration)
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		fmt.Fprintf(out, "Status: Failure (Timeout). The execution limit was reached%s.\n", after)
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		fmt.Fprintf(out, "%sStatus: Canceled%s.%s\n", colors.Yellow(), after, colors.Reset())
		return ExitErrorCanceled
	case IsCapacityOverflow(err):
		fmt.Fprintf(out, "Status: Failure (Capacity). %v\n", err)
		var calcErr CalculationError
		if errors.As(err, &calcErr) && calcErr.Digits > 0 {
			fmt.Fprintf(out, "F(%d) needs at least %s digits; raise --capacity or lower the index.\n",
				calcErr.Index, hl(calcErr.Digits))
		}
		return ExitErrorCapacity
	case errors.Is(err, ErrInvalidArgument):
		fmt.Fprintf(out, "Status: Failure (Invalid argument). %v\n", err)
		return ExitErrorConfig
	}
	fmt.Fprintf(out, "Status: Failure. An unexpected error occurred: %v\n", err)
	return ExitErrorGeneric
}
