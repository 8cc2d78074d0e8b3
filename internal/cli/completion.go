package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/agbru/fibdrv/internal/config"
)

// FlagCompletion describes a CLI flag for shell completion generation.
// Every generator reads flagRegistry, so a new flag only needs an entry there.
type FlagCompletion struct {
	Name      string   // flag name without the leading dash
	Help      string   // description text
	Values    []string // suggested values (nil = none)
	ValueName string   // label for the value; empty for boolean flags
	IsFile    bool     // the flag takes a file path
	IsAlgo    bool     // values come from the engine list
}

// Shells lists the accepted values of -completion.
var Shells = []string{"bash", "zsh", "fish"}

var flagRegistry = []FlagCompletion{
	{Name: "mode", Help: "What to run", Values: config.Modes, ValueName: "mode"},
	{Name: "n", Help: "Fibonacci index to calculate", ValueName: "index"},
	{Name: "from", Help: "First index of the range", ValueName: "index"},
	{Name: "to", Help: "Last index of the range", ValueName: "index"},
	{Name: "max-index", Help: "Largest index the device accepts", Values: []string{"100", "500", "1000"}, ValueName: "index"},
	{Name: "capacity", Help: "Maximum number of decimal digits", Values: []string{"64", "128", "256", "512"}, ValueName: "digits"},
	{Name: "algo", Help: "Engine to use", IsAlgo: true, ValueName: "engine"},
	{Name: "timeout", Help: "Maximum execution time", Values: []string{"10s", "1m", "5m"}, ValueName: "duration"},
	{Name: "workers", Help: "Concurrent workers in verify mode", ValueName: "count"},
	{Name: "port", Help: "Port to listen on in serve mode", ValueName: "port"},
	{Name: "log-level", Help: "Log level", Values: []string{"debug", "info", "warn", "error"}, ValueName: "level"},
	{Name: "output", Help: "Output file path", IsFile: true, ValueName: "file"},
	{Name: "o", Help: "Output file path", IsFile: true, ValueName: "file"},
	{Name: "v", Help: "Display full values"},
	{Name: "verbose", Help: "Display full values"},
	{Name: "q", Help: "Quiet mode for scripts"},
	{Name: "quiet", Help: "Quiet mode for scripts"},
	{Name: "no-color", Help: "Disable colored output"},
	{Name: "shared", Help: "Allow several device sessions at once"},
	{Name: "completion", Help: "Generate completion script", Values: Shells, ValueName: "shell"},
}

// GenerateCompletion writes a completion script for shell to out.
func GenerateCompletion(out io.Writer, shell string, algorithms []string) error {
	var script string
	switch shell {
	case "bash":
		script = bashCompletion(algorithms)
	case "zsh":
		script = zshCompletion(algorithms)
	case "fish":
		script = fishCompletion(algorithms)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: %s)", shell, strings.Join(Shells, ", "))
	}
	if _, err := io.WriteString(out, script); err != nil {
		return fmt.Errorf("completion %s generation failed: %w", shell, err)
	}
	return nil
}

// valuesFor returns the suggestions of f, resolving the engine list.
func valuesFor(f FlagCompletion, algorithms []string) []string {
	if f.IsAlgo {
		return append(append([]string(nil), algorithms...), "all")
	}
	return f.Values
}

func bashCompletion(algorithms []string) string {
	opts := make([]string, 0, len(flagRegistry))
	var cases, files strings.Builder
	for _, f := range flagRegistry {
		opts = append(opts, "-"+f.Name)
		if f.IsFile {
			if files.Len() > 0 {
				files.WriteByte('|')
			}
			files.WriteString("-" + f.Name)
			continue
		}
		if vals := valuesFor(f, algorithms); len(vals) > 0 {
			fmt.Fprintf(&cases, "        -%s)\n            COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n            return 0\n            ;;\n",
				f.Name, strings.Join(vals, " "))
		}
	}
	if files.Len() > 0 {
		fmt.Fprintf(&cases, "        %s)\n            COMPREPLY=( $(compgen -f -- \"${cur}\") )\n            return 0\n            ;;\n", files.String())
	}

	return fmt.Sprintf(`# Bash completion script for fibdrv
# Add this to your ~/.bashrc or ~/.bash_completion

_fibdrv_completions() {
    local cur prev opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"
    opts="%s"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _fibdrv_completions fibdrv
`, strings.Join(opts, " "), cases.String())
}

func zshCompletion(algorithms []string) string {
	args := make([]string, 0, len(flagRegistry))
	for _, f := range flagRegistry {
		suffix := ""
		switch {
		case f.IsFile:
			suffix = fmt.Sprintf(":%s:_files", f.ValueName)
		case len(valuesFor(f, algorithms)) > 0:
			suffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(valuesFor(f, algorithms), " "))
		case f.ValueName != "":
			suffix = fmt.Sprintf(":%s:", f.ValueName)
		}
		args = append(args, fmt.Sprintf("        '-%s[%s]%s'", f.Name, f.Help, suffix))
	}

	return fmt.Sprintf(`#compdef fibdrv

# Zsh completion script for fibdrv
# Place this file in $fpath as _fibdrv

_fibdrv() {
    _arguments \
%s
}

_fibdrv "$@"
`, strings.Join(args, " \\\n"))
}

func fishCompletion(algorithms []string) string {
	lines := []string{
		"# Fish completion script for fibdrv",
		"# Add this to ~/.config/fish/completions/fibdrv.fish",
		"",
		"complete -c fibdrv -f",
	}
	for _, f := range flagRegistry {
		parts := []string{"complete -c fibdrv", "-o " + f.Name, fmt.Sprintf("-d '%s'", f.Help)}
		switch vals := valuesFor(f, algorithms); {
		case f.IsFile:
			parts = append(parts, "-rF")
		case len(vals) > 0:
			parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(vals, " ")))
		case f.ValueName != "":
			parts = append(parts, "-x")
		}
		lines = append(lines, strings.Join(parts, " "))
	}
	return strings.Join(lines, "\n") + "\n"
}
