package ui

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// ThemeEnv selects the theme ("dark" or "light") when colors are enabled.
const ThemeEnv = "FIBDRV_THEME"

// Theme holds the ANSI escape codes used by line-oriented output.
type Theme struct {
	Name      string
	Primary   string // flags, device names
	Secondary string // labels, defaults
	Success   string // values, "ok"
	Warning   string // durations, section titles
	Error     string
	Info      string // indices
	Bold      string
	Underline string
	Reset     string
}

// Palette holds the lipgloss colors used for boxed summaries and the monitor.
type Palette struct {
	Border  lipgloss.TerminalColor
	Label   lipgloss.TerminalColor
	Value   lipgloss.TerminalColor
	Success lipgloss.TerminalColor
	Error   lipgloss.TerminalColor
	Dim     lipgloss.TerminalColor
	Accent  lipgloss.TerminalColor
	Warning lipgloss.TerminalColor
}

// roles lists the 256-color indices of one color scheme. Both the ANSI Theme
// and the lipgloss Palette are derived from it so the two renderings agree.
type roles struct {
	primary, secondary, success, warning, danger, info, value, dim uint8
}

func (r roles) theme(name string) Theme {
	fg := func(c uint8) string { return fmt.Sprintf("\033[38;5;%dm", c) }
	return Theme{
		Name:      name,
		Primary:   fg(r.primary),
		Secondary: fg(r.secondary),
		Success:   fg(r.success),
		Warning:   fg(r.warning),
		Error:     fg(r.danger),
		Info:      fg(r.info),
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}
}

func (r roles) palette() Palette {
	c := func(n uint8) lipgloss.TerminalColor { return lipgloss.Color(strconv.Itoa(int(n))) }
	return Palette{
		Border:  c(r.primary),
		Label:   c(r.secondary),
		Value:   c(r.value),
		Success: c(r.success),
		Error:   c(r.danger),
		Dim:     c(r.dim),
		Accent:  c(r.info),
		Warning: c(r.warning),
	}
}

var (
	darkRoles  = roles{primary: 39, secondary: 245, success: 82, warning: 220, danger: 196, info: 141, value: 255, dim: 240}
	lightRoles = roles{primary: 27, secondary: 240, success: 28, warning: 130, danger: 124, info: 54, value: 16, dim: 246}

	DarkTheme    = darkRoles.theme("dark")
	LightTheme   = lightRoles.theme("light")
	NoColorTheme = Theme{Name: "none"}

	DarkPalette    = darkRoles.palette()
	LightPalette   = lightRoles.palette()
	NoColorPalette = Palette{
		Border: lipgloss.NoColor{}, Label: lipgloss.NoColor{}, Value: lipgloss.NoColor{},
		Success: lipgloss.NoColor{}, Error: lipgloss.NoColor{}, Dim: lipgloss.NoColor{},
		Accent: lipgloss.NoColor{}, Warning: lipgloss.NoColor{},
	}

	themeMutex   sync.RWMutex
	currentTheme = DarkTheme
)

// GetCurrentTheme returns the active theme.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme replaces the active theme. Tests use it to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// GetCurrentPalette returns the palette matching the active theme.
func GetCurrentPalette() Palette {
	switch GetCurrentTheme().Name {
	case NoColorTheme.Name:
		return NoColorPalette
	case LightTheme.Name:
		return LightPalette
	}
	return DarkPalette
}

// SetTheme activates a theme by name: "dark", "light" or "none". Unknown
// names select the dark theme.
func SetTheme(name string) {
	t := DarkTheme
	switch name {
	case LightTheme.Name:
		t = LightTheme
	case NoColorTheme.Name:
		t = NoColorTheme
	}
	SetCurrentTheme(t)
}

// InitTheme picks the theme for this run. noColor and a set NO_COLOR
// (https://no-color.org/) both disable colors; otherwise FIBDRV_THEME names
// the theme.
func InitTheme(noColor bool) {
	if _, set := os.LookupEnv("NO_COLOR"); noColor || set {
		SetCurrentTheme(NoColorTheme)
		return
	}
	SetTheme(os.Getenv(ThemeEnv))
}

// InitThemeFor is InitTheme that also disables colors when w is not a
// terminal, so redirected output stays free of escape codes.
func InitThemeFor(w io.Writer, noColor bool) {
	InitTheme(noColor || !IsTerminal(w))
}
