package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/fibdrv/internal/device"
	"github.com/agbru/fibdrv/internal/fibonacci"
	"github.com/agbru/fibdrv/internal/orchestration"
	"github.com/agbru/fibdrv/internal/service"
	"github.com/agbru/fibdrv/internal/ui"
)

// REPLConfig holds configuration for the interactive shell.
type REPLConfig struct {
	// DefaultAlgo is the engine used by calc.
	DefaultAlgo string
	// Timeout bounds each command.
	Timeout time.Duration
	// BufferSize is the read buffer size.
	BufferSize int
	// Workers bounds verify concurrency.
	Workers int
}

// REPL is an interactive session over a device. It holds the device open for
// its whole lifetime, like a process keeping a file descriptor.
type REPL struct {
	config      REPLConfig
	dev         *device.Device
	factory     fibonacci.CalculatorFactory
	svc         service.Service
	sess        *device.Session
	buf         []byte
	currentAlgo string
	in          io.Reader
	out         io.Writer
}

// NewREPL creates a shell over dev; calc and verify use engines from factory.
func NewREPL(dev *device.Device, factory fibonacci.CalculatorFactory, config REPLConfig) *REPL {
	if config.DefaultAlgo == "" || config.DefaultAlgo == "all" {
		config.DefaultAlgo = fibonacci.AlgoFast
	}
	if config.Timeout <= 0 {
		config.Timeout = time.Minute
	}
	return &REPL{
		config:      config,
		dev:         dev,
		factory:     factory,
		svc:         service.NewCalculatorService(factory, dev.MaxIndex()),
		buf:         make([]byte, max(config.BufferSize, 1)),
		currentAlgo: config.DefaultAlgo,
		in:          os.Stdin,
		out:         os.Stdout,
	}
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) { r.in = in }

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) { r.out = out }

// Start opens the device and processes commands until exit or EOF. It fails
// only if the device cannot be opened.
func (r *REPL) Start(ctx context.Context) error {
	sess, err := r.dev.Open()
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", r.dev.Name(), err)
	}
	r.sess = sess
	defer func() {
		_ = r.sess.Close()
		r.sess = nil
	}()

	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)
	for {
		if ctx.Err() != nil {
			return nil
		}
		fmt.Fprint(r.out, ui.Colorize(ui.ColorGreen(), "fib> "))

		input, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			return nil
		}
		line := strings.TrimSpace(input)
		if line != "" && !r.processCommand(ctx, line) {
			return nil
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(r.out, "\nGoodbye!")
			return nil
		}
	}
}

func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s%s%s opened (positions 0..%d)\n",
		ui.ColorBold(), r.dev.Name(), ui.ColorReset(), r.dev.MaxIndex())
}

func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	cmds := [][2]string{
		{"seek <off> [set|cur|end]", "Move the read position"},
		{"read", "Read F(position)"},
		{"pos", "Show the read position"},
		{"time", "Engine time of the last read"},
		{"calc <n>", "Calculate F(n) with the current engine"},
		{"verify <from> <to>", "Cross-check engines over a range"},
		{"algo <name>", "Change engine (" + strings.Join(r.factory.List(), ", ") + ")"},
		{"help", "Display this help"},
		{"exit", "Leave the shell"},
	}
	for _, c := range cmds {
		fmt.Fprintf(r.out, "  %s%-26s%s %s\n", ui.ColorYellow(), c[0], ui.ColorReset(), c[1])
	}
}

// processCommand runs one command line. It returns false when the shell
// should exit.
func (r *REPL) processCommand(ctx context.Context, input string) bool {
	parts := strings.Fields(input)
	cmd, args := strings.ToLower(parts[0]), parts[1:]

	ctx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	switch cmd {
	case "seek", "s":
		r.cmdSeek(args)
	case "read", "r":
		r.cmdRead(ctx)
	case "pos", "p":
		fmt.Fprintf(r.out, "Position: %s%d%s\n", ui.ColorCyan(), r.sess.Pos(), ui.ColorReset())
	case "time", "t":
		fmt.Fprintf(r.out, "Engine time: %s%d ns%s\n", ui.ColorGreen(), r.sess.Elapsed().Nanoseconds(), ui.ColorReset())
	case "calc", "c":
		r.cmdCalc(ctx, args)
	case "verify", "v":
		r.cmdVerify(ctx, args)
	case "algo", "a":
		r.cmdAlgo(args)
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintln(r.out, ui.Colorize(ui.ColorGreen(), "Goodbye!"))
		return false
	default:
		if off, err := strconv.ParseInt(cmd, 10, 64); err == nil {
			r.cmdSeek([]string{strconv.FormatInt(off, 10)})
			r.cmdRead(ctx)
			return true
		}
		r.errorf("Unknown command: %s", cmd)
		fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorYellow(), ui.ColorReset())
	}
	return true
}

func (r *REPL) errorf(format string, args ...any) {
	fmt.Fprintln(r.out, ui.Colorize(ui.ColorRed(), fmt.Sprintf(format, args...)))
}

var whenceNames = map[string]int{
	"set": io.SeekStart,
	"cur": io.SeekCurrent,
	"end": io.SeekEnd,
}

func (r *REPL) cmdSeek(args []string) {
	if len(args) == 0 || len(args) > 2 {
		r.errorf("Usage: seek <offset> [set|cur|end]")
		return
	}
	off, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		r.errorf("Invalid offset: %s", args[0])
		return
	}
	whence := io.SeekStart
	if len(args) == 2 {
		w, ok := whenceNames[strings.ToLower(args[1])]
		if !ok {
			r.errorf("Invalid whence: %s", args[1])
			return
		}
		whence = w
	}
	pos, err := r.sess.Seek(off, whence)
	if err != nil {
		r.errorf("Seek failed: %v", err)
		return
	}
	fmt.Fprintf(r.out, "Position: %s%d%s\n", ui.ColorCyan(), pos, ui.ColorReset())
}

func (r *REPL) cmdRead(ctx context.Context) {
	start := time.Now()
	n, err := r.sess.ReadContext(ctx, r.buf)
	caller := time.Since(start)
	if err != nil {
		r.errorf("Read failed: %v", err)
		return
	}
	fmt.Fprintf(r.out, "F(%s%d%s) = %s%s%s\n", ui.ColorMagenta(), r.sess.Pos(), ui.ColorReset(), ui.ColorGreen(), r.buf[:n], ui.ColorReset())
	fmt.Fprintf(r.out, "  %s\n", ui.Dim(fmt.Sprintf("engine time: %d ns, caller time: %d ns",
		r.sess.Elapsed().Nanoseconds(), caller.Nanoseconds())))
}

func (r *REPL) cmdCalc(ctx context.Context, args []string) {
	if len(args) != 1 {
		r.errorf("Usage: calc <n>")
		return
	}
	n, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		r.errorf("Invalid value: %s", args[0])
		return
	}
	res, err := r.svc.Calculate(ctx, r.currentAlgo, n)
	if err != nil {
		r.errorf("Error: %v", err)
		return
	}
	DisplayResult(res.Value, n, res.Elapsed, false, r.out)
}

func (r *REPL) cmdVerify(ctx context.Context, args []string) {
	if len(args) != 2 {
		r.errorf("Usage: verify <from> <to>")
		return
	}
	from, err1 := strconv.ParseInt(args[0], 10, 64)
	to, err2 := strconv.ParseInt(args[1], 10, 64)
	if err1 != nil || err2 != nil {
		r.errorf("Invalid range: %s %s", args[0], args[1])
		return
	}
	reference, err := r.factory.Get(fibonacci.AlgoLinear)
	if err != nil {
		r.errorf("Error: %v", err)
		return
	}
	candidate, err := r.factory.Get(r.currentAlgo)
	if err != nil {
		r.errorf("Error: %v", err)
		return
	}
	RunVerify(ctx, reference, candidate, VerifyConfig{From: from, To: to, Workers: r.config.Workers},
		orchestration.NullProgressReporter{}, r.out)
}

func (r *REPL) cmdAlgo(args []string) {
	if len(args) != 1 {
		r.errorf("Usage: algo <name>")
		fmt.Fprintf(r.out, "Available engines: %s\n", strings.Join(r.factory.List(), ", "))
		return
	}
	name := strings.ToLower(args[0])
	calc, err := r.factory.Get(name)
	if err != nil {
		r.errorf("Unknown engine: %s", name)
		fmt.Fprintf(r.out, "Available engines: %s\n", strings.Join(r.factory.List(), ", "))
		return
	}
	r.currentAlgo = name
	fmt.Fprintf(r.out, "Engine changed to: %s\n", ui.Colorize(ui.ColorGreen(), calc.Name()))
}
