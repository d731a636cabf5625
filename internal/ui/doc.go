// Package ui provides theme and color support for the CLI and the interactive
// viewer. It defines ANSI color schemes, lipgloss palettes and the helpers
// that read the active theme.
package ui
