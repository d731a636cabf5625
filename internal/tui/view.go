package tui

import (
	"fmt"
	"strings"

	"github.com/agbru/fibseq/internal/fibonacci"
)

// SequenceView is a scrollable list of terms, one "F(i) = value" per row.
// Terms wider than the panel are shortened in the middle.
type SequenceView struct {
	seq    fibonacci.Sequence
	offset int
	width  int
	height int
}

// SetSequence replaces the displayed sequence, keeping the scroll position
// when it is still valid.
func (v *SequenceView) SetSequence(seq fibonacci.Sequence) {
	v.seq = seq
	v.offset = min(v.offset, v.maxOffset())
}

// Sequence returns the displayed sequence.
func (v SequenceView) Sequence() fibonacci.Sequence { return v.seq }

// SetSize updates the visible area in cells.
func (v *SequenceView) SetSize(w, h int) {
	v.width = max(0, w)
	v.height = max(1, h)
	v.offset = min(v.offset, v.maxOffset())
}

// Offset returns the index of the first visible term.
func (v SequenceView) Offset() int { return v.offset }

// ScrollBy moves the window by delta rows, clamped to the sequence.
func (v *SequenceView) ScrollBy(delta int) {
	v.offset = max(0, min(v.offset+delta, v.maxOffset()))
}

// ScrollToTop shows the first term.
func (v *SequenceView) ScrollToTop() { v.offset = 0 }

// ScrollToBottom shows the last page.
func (v *SequenceView) ScrollToBottom() { v.offset = v.maxOffset() }

// PageSize returns the number of visible rows.
func (v SequenceView) PageSize() int { return max(1, v.height) }

func (v SequenceView) maxOffset() int {
	return max(0, len(v.seq)-v.PageSize())
}

// visible returns the terms currently in the window.
func (v SequenceView) visible() fibonacci.Sequence {
	end := min(len(v.seq), v.offset+v.PageSize())
	if v.offset >= end {
		return nil
	}
	return v.seq[v.offset:end]
}

// DigitProfile returns the digit count of each visible term.
func (v SequenceView) DigitProfile() []float64 {
	terms := v.visible()
	out := make([]float64, len(terms))
	for i, t := range terms {
		out[i] = float64(len(t.String()))
	}
	return out
}

// View renders the visible rows.
func (v SequenceView) View() string {
	if len(v.seq) == 0 {
		return dimStyle.Render("(empty sequence)")
	}

	labelWidth := len(fmt.Sprintf("F(%d)", len(v.seq)-1))
	var b strings.Builder
	for i, term := range v.visible() {
		if i > 0 {
			b.WriteByte('\n')
		}
		idx := v.offset + i
		label := fmt.Sprintf("%*s", labelWidth, fmt.Sprintf("F(%d)", idx))
		value := term.String()
		if avail := v.width - labelWidth - len(" = "); avail > 0 {
			value = truncateMiddle(value, avail)
		}
		b.WriteString(indexStyle.Render(label))
		b.WriteString(dimStyle.Render(" = "))
		b.WriteString(termStyle.Render(value))
	}
	return b.String()
}

// truncateMiddle shortens s to width runes, replacing the middle with "…".
// Terms are ASCII digits, so byte and rune widths coincide.
func truncateMiddle(s string, width int) string {
	if len(s) <= width {
		return s
	}
	if width < 3 {
		return s[:max(0, width)]
	}
	head := (width - 1) / 2
	tail := width - 1 - head
	return s[:head] + "…" + s[len(s)-tail:]
}
