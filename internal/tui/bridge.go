package tui

import (
	"io"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	apperrors "github.com/agbru/fibseq/internal/errors"
	"github.com/agbru/fibseq/internal/orchestration"
	"github.com/agbru/fibseq/internal/progress"
)

// programRef is a shared reference to the tea.Program. bubbletea copies the
// model on every Update, so bridge goroutines need a pointer that survives.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram sets the program reference.
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send forwards msg to the program. It is a no-op before SetProgram.
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// TUIProgressReporter forwards progress updates to the viewer as ProgressMsg.
type TUIProgressReporter struct {
	ref        *programRef
	generation uint64
}

var _ orchestration.ProgressReporter = (*TUIProgressReporter)(nil)

// DisplayProgress drains progressChan, sending one ProgressMsg per update.
func (t *TUIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numGenerators int, _ io.Writer) {
	defer wg.Done()

	agg := orchestration.NewProgressAggregator(numGenerators)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}
	for update := range progressChan {
		ap := agg.Update(update)
		t.ref.Send(ProgressMsg{
			Generation:      t.generation,
			AverageProgress: ap.AverageProgress,
			ETA:             ap.ETA,
		})
	}
}

// TUIResultPresenter satisfies orchestration.ResultPresenter without
// writing anything: the viewer renders results from SequenceMsg.
type TUIResultPresenter struct{}

var _ orchestration.ResultPresenter = TUIResultPresenter{}

// PresentComparisonTable is a no-op.
func (TUIResultPresenter) PresentComparisonTable([]orchestration.Result, io.Writer) {}

// HandleError returns the exit code for err.
func (TUIResultPresenter) HandleError(err error, _ time.Duration, _ io.Writer) int {
	return apperrors.ExitCodeFor(err)
}
