package orchestration

import (
	"time"

	"github.com/agbru/fibseq/internal/format"
	"github.com/agbru/fibseq/internal/progress"
)

// ProgressAggregator averages the progress of several concurrent
// generators and tracks an ETA for the average. Both the CLI spinner and
// the viewer consume updates through it. Not safe for concurrent use.
type ProgressAggregator struct {
	values []float64
	eta    *format.ProgressWithETA
}

// NewProgressAggregator returns nil when numGenerators <= 0.
func NewProgressAggregator(numGenerators int) *ProgressAggregator {
	if numGenerators <= 0 {
		return nil
	}
	return &ProgressAggregator{
		values: make([]float64, numGenerators),
		eta:    format.NewProgressWithETA(),
	}
}

// AggregatedProgress is the state after applying one update.
type AggregatedProgress struct {
	GeneratorIndex  int
	Value           float64
	AverageProgress float64
	ETA             time.Duration
}

// Update applies an update. Out-of-range indices only refresh the average.
func (a *ProgressAggregator) Update(update progress.ProgressUpdate) AggregatedProgress {
	if update.GeneratorIndex >= 0 && update.GeneratorIndex < len(a.values) {
		a.values[update.GeneratorIndex] = update.Value
	}
	avg := a.CalculateAverage()
	return AggregatedProgress{
		GeneratorIndex:  update.GeneratorIndex,
		Value:           update.Value,
		AverageProgress: avg,
		ETA:             a.eta.Update(avg),
	}
}

// CalculateAverage returns the mean progress across generators.
func (a *ProgressAggregator) CalculateAverage() float64 {
	var total float64
	for _, v := range a.values {
		total += v
	}
	return total / float64(len(a.values))
}

// GetETA returns the current estimate without applying an update.
func (a *ProgressAggregator) GetETA() time.Duration { return a.eta.GetETA() }

// NumGenerators returns the number of tracked generators.
func (a *ProgressAggregator) NumGenerators() int { return len(a.values) }

// IsMultiGenerator reports whether more than one generator is tracked.
func (a *ProgressAggregator) IsMultiGenerator() bool { return len(a.values) > 1 }

// DrainChannel discards updates until progressChan is closed.
func DrainChannel(progressChan <-chan progress.ProgressUpdate) {
	for range progressChan {
	}
}
