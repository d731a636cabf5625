package orchestration

import (
	"io"
	"sync"
	"time"

	"github.com/agbru/fibseq/internal/fibonacci"
	"github.com/agbru/fibseq/internal/progress"
)

// Result is the outcome of a single generator run.
type Result struct {
	// Name is the generator's description (e.g. "Iterative (math/big)").
	Name string
	// Sequence holds the generated terms. It is nil if an error occurred.
	Sequence fibonacci.Sequence
	// Duration is the wall-clock time of the run.
	Duration time.Duration
	// Err is the error returned by the generator, if any.
	Err error
}

// ProgressReporter displays generation progress.
//
// DisplayProgress is run on its own goroutine. It must consume progressChan
// until it is closed and call wg.Done before returning.
type ProgressReporter interface {
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numGenerators int, out io.Writer)
}

// ProgressReporterFunc adapts a function to ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numGenerators int, out io.Writer)

// DisplayProgress calls f.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numGenerators int, out io.Writer) {
	f(wg, progressChan, numGenerators, out)
}

// NullProgressReporter drains the progress channel without output.
// Used in quiet mode and tests.
type NullProgressReporter struct{}

// DisplayProgress drains the channel.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ResultPresenter renders comparison runs and maps failures to exit codes.
type ResultPresenter interface {
	// PresentComparisonTable displays one row per generator.
	PresentComparisonTable(results []Result, out io.Writer)
	// HandleError reports err and returns the process exit code.
	HandleError(err error, duration time.Duration, out io.Writer) int
}
