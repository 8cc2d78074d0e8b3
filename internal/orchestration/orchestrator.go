package orchestration

import (
	"context"
	"fmt"
	"io"
	"sort"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/fibdrv/internal/errors"
	"github.com/agbru/fibdrv/internal/fibonacci"
)

// ExecuteCalculations runs every calculator on index n concurrently and
// returns one result per calculator, in input order. Failures are reported in
// the results, never as an early abort.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - calculators: The calculators to execute.
//   - n: The Fibonacci index to compute.
//
// Returns:
//   - []CalculationResult: The results of each calculation.
func ExecuteCalculations(ctx context.Context, calculators []fibonacci.Calculator, n int64) []CalculationResult {
	var g errgroup.Group
	results := make([]CalculationResult, len(calculators))

	for i, calc := range calculators {
		g.Go(func() error {
			res, err := calc.Calculate(ctx, n)
			results[i] = CalculationResult{
				Name: calc.Name(), Result: res.Value, Duration: res.Elapsed, Err: err,
			}
			return nil
		})
	}

	_ = g.Wait()
	return results
}

// AnalyzeComparisonResults sorts results by duration, checks that every
// successful result agrees, and presents the outcome.
//
// Parameters:
//   - results: The calculation results to analyze.
//   - opts: Presentation options for the final result.
//   - presenter: The result presenter for display formatting.
//   - errHandler: Maps the first failure to an exit code when nothing succeeded.
//   - out: The io.Writer for the summary report.
//
// Returns:
//   - int: An exit code indicating success (0) or the type of failure.
func AnalyzeComparisonResults(results []CalculationResult, opts PresentationOptions, presenter ResultPresenter, errHandler ErrorHandler, out io.Writer) int {
	sort.SliceStable(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	var firstValidResult *CalculationResult
	var firstError error
	successCount := 0

	for i := range results {
		if results[i].Err != nil {
			if firstError == nil {
				firstError = results[i].Err
			}
		} else {
			successCount++
			if firstValidResult == nil {
				firstValidResult = &results[i]
			}
		}
	}

	if len(results) > 1 && !opts.Quiet {
		presenter.PresentComparisonTable(results, out)
	}

	if successCount == 0 {
		if !opts.Quiet {
			fmt.Fprintf(out, "\nGlobal Status: Failure. No algorithm could complete the calculation.\n")
		}
		return errHandler.HandleError(firstError, 0, out)
	}

	for _, res := range results {
		if res.Err == nil && !res.Result.Equal(firstValidResult.Result) {
			fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! An inconsistency was detected between the results of the algorithms.\n")
			return apperrors.ExitErrorMismatch
		}
	}

	if len(results) > 1 && !opts.Quiet {
		fmt.Fprintf(out, "\nGlobal Status: Success. All valid results are consistent.\n")
	}
	presenter.PresentResult(*firstValidResult, opts, out)
	return apperrors.ExitSuccess
}
