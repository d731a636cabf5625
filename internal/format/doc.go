// Package format holds the pure string formatting used by the CLI and the
// TUI: sequence renderings, number grouping, durations and progress bars.
// Nothing in this package performs I/O.
package format
