// Package config provides the configuration management for the fibdrv
// application. It defines the configuration structure, parses command-line
// arguments, applies environment overrides and validates the result.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/agbru/fibdrv/internal/decimal"
	apperrors "github.com/agbru/fibdrv/internal/errors"
	"github.com/agbru/fibdrv/internal/fibonacci"
)

const (
	// EnvPrefix is the prefix for all environment variables used by fibdrv.
	EnvPrefix = "FIBDRV_"
)

// Run modes.
const (
	ModeSweep   = "sweep"
	ModeCalc    = "calc"
	ModeVerify  = "verify"
	ModeServe   = "serve"
	ModeREPL    = "repl"
	ModeMonitor = "monitor"
)

// Modes lists the accepted values of -mode.
var Modes = []string{ModeSweep, ModeCalc, ModeVerify, ModeServe, ModeREPL, ModeMonitor}

// Default configuration values.
const (
	// DefaultN is the default index for calc mode.
	DefaultN int64 = 100
	// DefaultMaxIndex is the largest index the device accepts.
	DefaultMaxIndex int64 = fibonacci.DefaultMaxIndex
	// DefaultCapacity is the digit capacity of the arithmetic.
	DefaultCapacity = decimal.DefaultCapacity
	// DefaultTimeout bounds a whole run.
	DefaultTimeout = 1 * time.Minute
	// DefaultPort is the default server port.
	DefaultPort = "8080"
	// DefaultAlgo selects the fast-doubling engine.
	DefaultAlgo = fibonacci.AlgoFast
	// DefaultMode reproduces the sweep client.
	DefaultMode = ModeSweep
	// DefaultLogLevel is the zerolog level name used unless overridden.
	DefaultLogLevel = "warn"
)

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// N is the index computed in calc mode.
	N int64
	// From and To bound the sweep and verify ranges, inclusive. A negative To
	// means MaxIndex.
	From int64
	To   int64
	// MaxIndex is the largest index a device session may seek to.
	MaxIndex int64
	// Capacity is the maximum number of decimal digits of any value.
	Capacity int
	// Algo selects the engine ("fast", "linear") or "all".
	Algo string
	// Mode selects what the program does; see Modes.
	Mode string
	// Timeout sets the maximum duration of the run.
	Timeout time.Duration
	// Quiet suppresses banners and summaries; only values are printed.
	Quiet bool
	// Verbose prints full values in calc mode and debug logs.
	Verbose bool
	// NoColor disables colored output. NO_COLOR and non-terminal output
	// have the same effect.
	NoColor bool
	// OutputFile, if set, receives the result of calc mode.
	OutputFile string
	// Port is the listen port of serve mode.
	Port string
	// LogLevel is a zerolog level name.
	LogLevel string
	// Shared lets several device sessions be open at once.
	Shared bool
	// Workers bounds the concurrency of verify mode; 0 means GOMAXPROCS.
	Workers int
	// Completion, if set, names a shell whose completion script is printed
	// instead of running a mode.
	Completion string
}

// RangeEnd returns To, or MaxIndex when To is negative.
func (c AppConfig) RangeEnd() int64 {
	if c.To < 0 {
		return c.MaxIndex
	}
	return c.To
}

// Validate checks the semantic consistency of the configuration parameters.
//
// Parameters:
//   - availableAlgos: The registered engine names (e.g., ["fast", "linear"]).
//
// Returns:
//   - error: A ConfigError if the configuration is invalid, nil otherwise.
func (c AppConfig) Validate(availableAlgos []string) error {
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout value must be strictly positive")
	}
	if c.Capacity < 1 {
		return apperrors.NewConfigError("capacity must be at least one digit: %d", c.Capacity)
	}
	if c.MaxIndex < 0 {
		return apperrors.NewConfigError("max index cannot be negative: %d", c.MaxIndex)
	}
	if safe := fibonacci.MaxSafeIndex(c.Capacity); c.MaxIndex > safe {
		return apperrors.NewConfigError("max index %d needs more than %d digits; the largest safe index is %d", c.MaxIndex, c.Capacity, safe)
	}
	if c.N < 0 {
		return apperrors.NewConfigError("index cannot be negative: %d", c.N)
	}
	if c.From < 0 || c.From > c.MaxIndex {
		return apperrors.NewConfigError("range start %d is outside [0, %d]", c.From, c.MaxIndex)
	}
	if end := c.RangeEnd(); end < c.From || end > c.MaxIndex {
		return apperrors.NewConfigError("range end %d is outside [%d, %d]", end, c.From, c.MaxIndex)
	}
	if c.Workers < 0 {
		return apperrors.NewConfigError("workers cannot be negative: %d", c.Workers)
	}
	if !slices.Contains(Modes, c.Mode) {
		return apperrors.NewConfigError("unrecognized mode: '%s'. Valid modes are: [%s]", c.Mode, strings.Join(Modes, ", "))
	}
	if c.Algo != "all" && !slices.Contains(availableAlgos, c.Algo) {
		return apperrors.NewConfigError("unrecognized algorithm: '%s'. Valid algorithms are: 'all' or [%s]", c.Algo, strings.Join(availableAlgos, ", "))
	}
	return nil
}

// ParseConfig parses the command-line arguments into an AppConfig, applies
// FIBDRV_* environment overrides for flags that were not set, and validates
// the result.
//
// Parameters:
//   - programName: The name of the program, used in the usage message.
//   - args: The command-line arguments (typically os.Args[1:]).
//   - errorWriter: Where parsing errors and usage information are printed.
//   - availableAlgos: Valid engine names for validation.
//
// Returns:
//   - AppConfig: The populated configuration struct.
//   - error: An error if flag parsing fails or validation fails.
func ParseConfig(programName string, args []string, errorWriter io.Writer, availableAlgos []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	algoHelp := fmt.Sprintf("Engine to use: 'all' or one of [%s].", strings.Join(availableAlgos, ", "))
	modeHelp := fmt.Sprintf("What to run: one of [%s].", strings.Join(Modes, ", "))

	config := AppConfig{}
	fs.StringVar(&config.Mode, "mode", DefaultMode, modeHelp)
	fs.Int64Var(&config.N, "n", DefaultN, "Index of the Fibonacci number to calculate (calc mode).")
	fs.Int64Var(&config.From, "from", 0, "First index of the sweep or verify range.")
	fs.Int64Var(&config.To, "to", -1, "Last index of the sweep or verify range (-1 for max-index).")
	fs.Int64Var(&config.MaxIndex, "max-index", DefaultMaxIndex, "Largest index the device accepts; seeks are clamped to it.")
	fs.IntVar(&config.Capacity, "capacity", DefaultCapacity, "Maximum number of decimal digits of any value.")
	fs.StringVar(&config.Algo, "algo", DefaultAlgo, algoHelp)
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum execution time.")
	fs.BoolVar(&config.Verbose, "v", false, "Display full values and debug logs.")
	fs.BoolVar(&config.Verbose, "verbose", false, "Alias for -v.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Quiet mode - minimal output for scripts.")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode (shorthand).")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output (also respects NO_COLOR env var).")
	fs.StringVar(&config.OutputFile, "output", "", "Output file path for the result.")
	fs.StringVar(&config.OutputFile, "o", "", "Output file path (shorthand).")
	fs.StringVar(&config.Port, "port", DefaultPort, "Port to listen on in serve mode.")
	fs.StringVar(&config.LogLevel, "log-level", DefaultLogLevel, "Log level: debug, info, warn, error.")
	fs.BoolVar(&config.Shared, "shared", false, "Allow several device sessions at once.")
	fs.IntVar(&config.Workers, "workers", 0, "Concurrent workers in verify mode (0 for GOMAXPROCS).")
	fs.StringVar(&config.Completion, "completion", "", "Print a completion script for the given shell (bash, zsh, fish).")

	setCustomUsage(fs)

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	// Apply environment variable overrides for flags not explicitly set
	applyEnvOverrides(&config, fs)

	config.Algo = strings.ToLower(config.Algo)
	config.Mode = strings.ToLower(config.Mode)
	if err := config.Validate(availableAlgos); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		fs.Usage()
		return AppConfig{}, errors.Join(errors.New("invalid configuration"), err)
	}
	return config, nil
}
