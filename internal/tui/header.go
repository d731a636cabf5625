package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/fibseq/internal/format"
)

// HeaderModel renders the top bar: title, version, term count and elapsed
// time of the current generation.
type HeaderModel struct {
	startTime time.Time
	endTime   time.Time
	version   string
	generator string
	n         int
	width     int
}

// NewHeaderModel creates a header for the given generator label.
func NewHeaderModel(version, generator string, n int) HeaderModel {
	return HeaderModel{
		startTime: time.Now(),
		version:   version,
		generator: generator,
		n:         n,
	}
}

// SetDone freezes the elapsed timer.
func (h *HeaderModel) SetDone() {
	h.endTime = time.Now()
}

// Reset restarts the elapsed timer for a new generation of n terms.
func (h *HeaderModel) Reset(n int) {
	h.startTime = time.Now()
	h.endTime = time.Time{}
	h.n = n
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) {
	h.width = w
}

// Elapsed returns the running or frozen generation time.
func (h HeaderModel) Elapsed() time.Duration {
	if !h.endTime.IsZero() {
		return h.endTime.Sub(h.startTime)
	}
	return time.Since(h.startTime)
}

// View renders the header.
func (h HeaderModel) View() string {
	titleText := "fibseq viewer"
	if h.version != "" && h.version != "dev" {
		titleText += " " + h.version
	}
	pipe := dimStyle.Render(" | ")

	row := titleStyle.Render(titleText) +
		pipe + accentStyle.Render(fmt.Sprintf("n = %s", format.FormatNumberString(fmt.Sprint(h.n)))) +
		pipe + dimStyle.Render(h.generator) +
		pipe + accentStyle.Render("Elapsed: "+format.FormatExecutionDuration(h.Elapsed()))

	gap := max(0, h.width-2-lipgloss.Width(row))
	return headerStyle.Width(h.width).Render(row + spaces(gap))
}

// spaces returns n space characters.
func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
