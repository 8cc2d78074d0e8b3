package config

import (
	"flag"
	"fmt"
	"os"

	"github.com/agbru/fibdrv/internal/ui"
)

// modeSummaries describes each mode in the usage text, in Modes order.
var modeSummaries = map[string]string{
	ModeSweep:   "read every position in [-from, -to] through a device session",
	ModeCalc:    "compute F(-n) once, or with every engine when -algo all",
	ModeVerify:  "cross-check an engine against the linear reference",
	ModeServe:   "serve the HTTP API on -port",
	ModeREPL:    "interactive shell over a device session",
	ModeMonitor: "live dashboard of a sweep",
}

var usageExamples = []string{
	"-mode calc -n 500",
	"-mode calc -n 1000 -algo all",
	"-mode verify -from 0 -to 1225",
	"-capacity 512 -max-index 2000 -mode monitor",
}

// setCustomUsage prints flags, modes and examples, colored with the active
// theme unless NO_COLOR is set.
func setCustomUsage(fs *flag.FlagSet) {
	fs.Usage = func() {
		t := ui.GetCurrentTheme()
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			t = ui.NoColorTheme
		}
		out := fs.Output()
		section := func(title string) { fmt.Fprintf(out, "\n%s%s:%s\n", t.Warning, title, t.Reset) }

		fmt.Fprintf(out, "\n%sfibdrv%s: exact Fibonacci numbers on bounded decimal arithmetic.\n", t.Bold, t.Reset)
		section("Usage")
		fmt.Fprintf(out, "  %s [flags]\n", fs.Name())

		section("Modes")
		for _, m := range Modes {
			fmt.Fprintf(out, "  %s%-10s%s %s\n", t.Primary, m, t.Reset, modeSummaries[m])
		}

		section("Flags")
		fs.VisitAll(func(f *flag.Flag) {
			name, usage := flag.UnquoteUsage(f)
			sig := "-" + f.Name
			if name != "" {
				sig += " " + name
			}
			fmt.Fprintf(out, "  %s%-22s%s %s", t.Primary, sig, t.Reset, usage)
			if f.DefValue != "" && f.DefValue != "0" && f.DefValue != "false" {
				fmt.Fprintf(out, " %s(default %s)%s", t.Secondary, f.DefValue, t.Reset)
			}
			fmt.Fprintln(out)
		})

		section("Examples")
		for _, ex := range usageExamples {
			fmt.Fprintf(out, "  %s %s\n", fs.Name(), ex)
		}
		fmt.Fprintf(out, "\nEvery flag can also be set through %s<NAME> (e.g. %sMAX_INDEX).\n", EnvPrefix, EnvPrefix)
		fmt.Fprintf(out, "%s=light selects colors for light backgrounds; NO_COLOR disables them.\n\n", ui.ThemeEnv)
	}
}
