package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/agbru/fibdrv/internal/cli"
	"github.com/agbru/fibdrv/internal/device"
	apperrors "github.com/agbru/fibdrv/internal/errors"
	"github.com/agbru/fibdrv/internal/fibonacci"
	"github.com/agbru/fibdrv/internal/logging"
	"github.com/agbru/fibdrv/internal/orchestration"
	"github.com/agbru/fibdrv/internal/server"
	"github.com/agbru/fibdrv/internal/tui"
	"github.com/agbru/fibdrv/internal/ui"
)

// engine returns the calculator selected by -algo. "all" selects the
// fast-doubling engine where a single engine is needed.
func (a *Application) engine() (fibonacci.Calculator, error) {
	name := a.Config.Algo
	if name == orchestration.AlgoAll {
		name = fibonacci.AlgoFast
	}
	return a.Factory.Get(name)
}

// newDevice builds the device the sweep and repl modes read from.
func (a *Application) newDevice() (*device.Device, error) {
	calc, err := a.engine()
	if err != nil {
		return nil, err
	}
	logger := logging.NewConsoleLogger(a.ErrWriter, "device", zerolog.GlobalLevel())
	return device.New(calc, a.Config.MaxIndex,
		device.WithShared(a.Config.Shared),
		device.WithLogger(logger),
	), nil
}

// runSweep reproduces the device client: it reads every offset of the
// configured range and prints the value with its timings.
func (a *Application) runSweep(ctx context.Context, out io.Writer) int {
	ctx, cancel := SetupLifecycle(ctx, a.Config.Timeout)
	defer cancel.Cleanup()

	dev, err := a.newDevice()
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}

	err = cli.RunSweep(ctx, dev, cli.SweepConfig{
		From:       a.Config.From,
		To:         a.Config.RangeEnd(),
		BufferSize: a.Config.Capacity,
		Quiet:      a.Config.Quiet,
	}, out)
	if errors.Is(err, apperrors.ErrBusy) {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.HandleCalculationError(err, 0, out, cli.CLIColorProvider{})
}

// runCalculate computes F(N) with the selected engines, compares them when
// several run, and optionally saves the result.
func (a *Application) runCalculate(ctx context.Context, out io.Writer) int {
	ctx, cancel := SetupLifecycle(ctx, a.Config.Timeout)
	defer cancel.Cleanup()

	calculatorsToRun := orchestration.GetCalculatorsToRun(a.Config.Algo, a.Factory)
	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(calculatorsToRun, out)
	}

	results := orchestration.ExecuteCalculations(ctx, calculatorsToRun, a.Config.N)

	presenter := cli.CLIResultPresenter{}
	opts := orchestration.PresentationOptions{
		N:       a.Config.N,
		Verbose: a.Config.Verbose,
		Quiet:   a.Config.Quiet,
	}
	exitCode := orchestration.AnalyzeComparisonResults(results, opts, presenter, presenter, out)
	if exitCode != apperrors.ExitSuccess || a.Config.OutputFile == "" {
		return exitCode
	}

	// Successful results sort first, fastest leading.
	best := results[0]
	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
	}
	if err := cli.WriteResultToFile(best.Result, a.Config.N, best.Duration, best.Name, outputCfg); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	if !a.Config.Quiet {
		fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
			ui.ColorGreen(), ui.ColorCyan(), a.Config.OutputFile, ui.ColorReset())
	}
	return apperrors.ExitSuccess
}

// runVerify cross-checks the selected engine against the linear reference
// over the configured range.
func (a *Application) runVerify(ctx context.Context, out io.Writer) int {
	ctx, cancel := SetupLifecycle(ctx, a.Config.Timeout)
	defer cancel.Cleanup()

	reference, err := a.Factory.Get(fibonacci.AlgoLinear)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	candidate, err := a.engine()
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}

	var reporter orchestration.ProgressReporter = cli.CLIProgressReporter{}
	if a.Config.Quiet {
		reporter = orchestration.NullProgressReporter{}
	}
	return cli.RunVerify(ctx, reference, candidate, cli.VerifyConfig{
		From:    a.Config.From,
		To:      a.Config.RangeEnd(),
		Workers: a.Config.Workers,
		Quiet:   a.Config.Quiet,
	}, reporter, out)
}

// runServer serves the HTTP API until a termination signal arrives.
func (a *Application) runServer(ctx context.Context) int {
	ctx, stop := SetupSignals(ctx)
	defer stop()

	srv := server.NewServer(a.Factory, a.Config)
	if err := srv.Start(ctx); err != nil {
		fmt.Fprintf(a.ErrWriter, "Server error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// runREPL starts the interactive shell over a device session.
func (a *Application) runREPL(ctx context.Context, out io.Writer) int {
	ctx, stop := SetupSignals(ctx)
	defer stop()

	dev, err := a.newDevice()
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	repl := cli.NewREPL(dev, a.Factory, cli.REPLConfig{
		DefaultAlgo: a.Config.Algo,
		Timeout:     a.Config.Timeout,
		BufferSize:  a.Config.Capacity,
		Workers:     a.Config.Workers,
	})
	repl.SetOutput(out)
	if err := repl.Start(ctx); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// runMonitor shows the sweep in the full-screen dashboard.
func (a *Application) runMonitor(ctx context.Context) int {
	ctx, stop := SetupSignals(ctx)
	defer stop()

	dev, err := a.newDevice()
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	sess, err := dev.Open()
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: failed to open %s: %v\n", dev.Name(), err)
		return apperrors.ExitErrorGeneric
	}
	defer sess.Close()

	return tui.Run(ctx, sess, dev.Name(), tui.Config{
		From:       a.Config.From,
		To:         a.Config.RangeEnd(),
		BufferSize: a.Config.Capacity,
		Version:    Version,
	})
}
