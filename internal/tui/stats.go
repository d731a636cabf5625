package tui

import (
	"fmt"

	"github.com/agbru/fibseq/internal/format"
	"github.com/agbru/fibseq/internal/metrics"
	"github.com/agbru/fibseq/internal/sysmon"
)

// statsHistory is the default number of heap samples kept for the sparkline.
const statsHistory = 30

// StatsModel renders a one-line runtime summary with a heap sparkline.
type StatsModel struct {
	snapshot   metrics.MemorySnapshot
	goroutines int
	system     sysmon.Stats
	heap       *RingBuffer
	width      int
}

// NewStatsModel creates an empty stats line.
func NewStatsModel() StatsModel {
	return StatsModel{heap: NewRingBuffer(statsHistory)}
}

// Update records a memory sample.
func (s *StatsModel) Update(msg MemStatsMsg) {
	s.snapshot = msg.Snapshot
	s.goroutines = msg.Goroutines
	s.system = msg.System
	s.heap.Push(float64(msg.Snapshot.HeapAlloc))
}

// SetWidth sizes the sparkline history to a quarter of the width.
func (s *StatsModel) SetWidth(w int) {
	s.width = w
	s.heap.Resize(max(statsHistory, w/4))
}

// View renders the stats line. Host usage is shown only when it could be read.
func (s StatsModel) View() string {
	line := fmt.Sprintf("%s %s %s  %s %d  %s %d",
		dimStyle.Render("Heap"),
		accentStyle.Render(format.FormatBytes(s.snapshot.HeapAlloc)),
		sparklineStyle.Render(RenderSparkline(Normalize(s.heap.Slice()))),
		dimStyle.Render("GC"), s.snapshot.NumGC,
		dimStyle.Render("Goroutines"), s.goroutines,
	)
	if s.system.Valid {
		line += fmt.Sprintf("  %s %.0f%%  %s %.0f%%",
			dimStyle.Render("CPU"), s.system.CPUPercent,
			dimStyle.Render("Mem"), s.system.MemPercent,
		)
	}
	return line
}
