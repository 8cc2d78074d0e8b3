// Package ui holds the presentation primitives shared by the fibdrv front
// ends: ANSI themes for line-oriented output, the lipgloss palette and
// summary boxes, and terminal detection.
//
// The theme is chosen once per run by InitThemeFor. It falls back to
// NoColorTheme when output is not a terminal, when NO_COLOR is set, or when
// --no-color is given.
package ui
