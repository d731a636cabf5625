//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/fibseq/internal/format"
	"github.com/agbru/fibseq/internal/orchestration"
	"github.com/agbru/fibseq/internal/progress"
)

const (
	// ProgressRefreshRate is the spinner frame and progress refresh period.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth is the width in characters of the progress bar.
	ProgressBarWidth = 40
)

// Spinner abstracts the terminal spinner so DisplayProgress can be tested
// without a terminal.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts *spinner.Spinner to Spinner.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

// UpdateSuffix locks the spinner so the change does not race with its
// render loop.
func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// DisplayProgress renders a spinner with an aggregated progress bar until
// progressChan is closed, then prints the final bar on its own line. It
// calls wg.Done on return. With no generators it only drains the channel.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numGenerators int, out io.Writer) {
	defer wg.Done()

	agg := orchestration.NewProgressAggregator(numGenerators)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	label := "Generating"
	if agg.IsMultiGenerator() {
		label = "Comparing"
	}
	render := func(avg float64, eta time.Duration) string {
		return fmt.Sprintf("%s %s", label, format.FormatProgressBarWithETA(avg, eta, ProgressBarWidth))
	}

	s := newSpinner(spinner.WithWriter(out))
	s.UpdateSuffix(" " + render(0, 0))
	s.Start()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				s.Stop()
				fmt.Fprintln(out, render(agg.CalculateAverage(), 0))
				return
			}
			p := agg.Update(update)
			s.UpdateSuffix(" " + render(p.AverageProgress, p.ETA))
		case <-ticker.C:
			s.UpdateSuffix(" " + render(agg.CalculateAverage(), agg.GetETA()))
		}
	}
}
