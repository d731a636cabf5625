package tui

import (
	"time"

	"github.com/agbru/fibseq/internal/metrics"
	"github.com/agbru/fibseq/internal/orchestration"
	"github.com/agbru/fibseq/internal/sysmon"
)

// ProgressMsg carries an aggregated progress update for a generation.
type ProgressMsg struct {
	Generation      uint64
	AverageProgress float64
	ETA             time.Duration
}

// SequenceMsg reports the end of a generation run.
type SequenceMsg struct {
	Generation uint64
	N          int
	Result     orchestration.Result
	ExitCode   int
}

// TickMsg drives the periodic refresh.
type TickMsg time.Time

// MemStatsMsg carries a runtime memory sample and the host usage.
type MemStatsMsg struct {
	Snapshot   metrics.MemorySnapshot
	Goroutines int
	System     sysmon.Stats
}

// ContextCancelledMsg is sent when the session context ends (timeout or signal).
type ContextCancelledMsg struct {
	Err error
}
