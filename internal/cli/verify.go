package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	apperrors "github.com/agbru/fibdrv/internal/errors"
	"github.com/agbru/fibdrv/internal/fibonacci"
	"github.com/agbru/fibdrv/internal/format"
	"github.com/agbru/fibdrv/internal/orchestration"
	"github.com/agbru/fibdrv/internal/ui"
)

// VerifyConfig describes a cross-check run.
type VerifyConfig struct {
	From, To int64
	Workers  int
	Quiet    bool
}

// RunVerify cross-checks candidate against reference over [From, To] while
// reporter shows progress, prints a summary and returns an exit code.
func RunVerify(ctx context.Context, reference, candidate fibonacci.Calculator, cfg VerifyConfig, reporter orchestration.ProgressReporter, out io.Writer) int {
	if reporter == nil {
		reporter = orchestration.NullProgressReporter{}
	}

	progressChan := make(chan orchestration.Progress, 64)
	var wg sync.WaitGroup
	wg.Add(1)
	go reporter.DisplayProgress(&wg, progressChan, out)

	start := time.Now()
	checked, err := orchestration.VerifyRange(ctx, reference, candidate, cfg.From, cfg.To, cfg.Workers,
		func(p orchestration.Progress) { progressChan <- p })
	elapsed := time.Since(start)
	close(progressChan)
	wg.Wait()

	var mismatch *orchestration.MismatchError
	switch {
	case errors.As(err, &mismatch):
		fmt.Fprintf(out, "%sMismatch at F(%d)%s\n  %s: %s\n  %s: %s\n",
			ui.ColorRed(), mismatch.Index, ui.ColorReset(),
			reference.Name(), mismatch.Reference,
			candidate.Name(), mismatch.Candidate)
		return apperrors.ExitErrorMismatch
	case err != nil:
		return apperrors.HandleCalculationError(err, elapsed, out, CLIColorProvider{})
	}

	if cfg.Quiet {
		fmt.Fprintf(out, "ok %d\n", checked)
		return apperrors.ExitSuccess
	}
	fmt.Fprintln(out, ui.RenderSummary("Verification passed", true, []ui.Row{
		{Label: "Range", Value: fmt.Sprintf("[%d, %d]", cfg.From, cfg.To)},
		{Label: "Indices", Value: format.FormatNumberString(fmt.Sprintf("%d", checked))},
		{Label: "Engines", Value: reference.Name() + " vs " + candidate.Name()},
		{Label: "Wall time", Value: format.FormatExecutionDuration(elapsed)},
	}))
	return apperrors.ExitSuccess
}
