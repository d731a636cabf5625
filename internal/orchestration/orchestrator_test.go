package orchestration

import (
	"context"
	"errors"
	"io"
	"math/big"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	apperrors "github.com/agbru/fibseq/internal/errors"
	"github.com/agbru/fibseq/internal/fibonacci"
	"github.com/agbru/fibseq/internal/progress"
)

// mockGenerator lets tests script a generator's behavior.
type mockGenerator struct {
	name     string
	generate func(ctx context.Context, n int, cb progress.ProgressCallback) (fibonacci.Sequence, error)
}

func (m *mockGenerator) Name() string { return m.name }

func (m *mockGenerator) Generate(ctx context.Context, n int, cb progress.ProgressCallback) (fibonacci.Sequence, error) {
	if m.generate != nil {
		return m.generate(ctx, n, cb)
	}
	return fibonacci.Generate(n), nil
}

type mockPresenter struct {
	tableRows int
	errCode   int
}

func (p *mockPresenter) PresentComparisonTable(results []Result, _ io.Writer) {
	p.tableRows = len(results)
}

func (p *mockPresenter) HandleError(err error, _ time.Duration, _ io.Writer) int {
	if p.errCode != 0 {
		return p.errCode
	}
	return apperrors.ExitCodeFor(err)
}

// countingReporter records every update it receives.
type countingReporter struct {
	mu      sync.Mutex
	updates []progress.ProgressUpdate
	numGens int
}

func (r *countingReporter) DisplayProgress(wg *sync.WaitGroup, ch <-chan progress.ProgressUpdate, numGenerators int, _ io.Writer) {
	defer wg.Done()
	r.mu.Lock()
	r.numGens = numGenerators
	r.mu.Unlock()
	for u := range ch {
		r.mu.Lock()
		r.updates = append(r.updates, u)
		r.mu.Unlock()
	}
}

func TestExecute(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		gen     fibonacci.Generator
		n       int
		wantLen int
		wantErr error
	}{
		{"big generator", fibonacci.BigGenerator{}, 10, 10, nil},
		{"empty request", fibonacci.BigGenerator{}, 0, 0, nil},
		{
			name: "failure is wrapped",
			gen: &mockGenerator{name: "broken", generate: func(context.Context, int, progress.ProgressCallback) (fibonacci.Sequence, error) {
				return fibonacci.Sequence{big.NewInt(1)}, context.DeadlineExceeded
			}},
			n:       5,
			wantErr: context.DeadlineExceeded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := Execute(context.Background(), tt.gen, tt.n, NullProgressReporter{}, io.Discard)
			if res.Name != tt.gen.Name() {
				t.Errorf("Name = %q, want %q", res.Name, tt.gen.Name())
			}
			if tt.wantErr != nil {
				if !errors.Is(res.Err, tt.wantErr) {
					t.Fatalf("Err = %v, want %v", res.Err, tt.wantErr)
				}
				var genErr apperrors.GenerationError
				if !errors.As(res.Err, &genErr) || genErr.Generator != "broken" {
					t.Errorf("error should be a GenerationError naming the generator, got %v", res.Err)
				}
				if res.Sequence != nil {
					t.Error("Sequence should be nil on failure")
				}
				return
			}
			if res.Err != nil {
				t.Fatalf("unexpected error: %v", res.Err)
			}
			if res.Sequence.Len() != tt.wantLen {
				t.Errorf("len = %d, want %d", res.Sequence.Len(), tt.wantLen)
			}
			if err := res.Sequence.Verify(); err != nil {
				t.Errorf("Verify: %v", err)
			}
		})
	}
}

func TestExecute_ReporterReceivesFinalUpdate(t *testing.T) {
	t.Parallel()
	reporter := &countingReporter{}
	res := Execute(context.Background(), fibonacci.BigGenerator{}, 20000, reporter, io.Discard)
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}

	reporter.mu.Lock()
	defer reporter.mu.Unlock()
	if reporter.numGens != 1 {
		t.Errorf("reporter saw %d generators, want 1", reporter.numGens)
	}
	if len(reporter.updates) == 0 {
		t.Fatal("reporter received no updates")
	}
	if last := reporter.updates[len(reporter.updates)-1]; last.Value != 1.0 {
		t.Errorf("last update = %v, want 1.0", last.Value)
	}
}

func TestExecute_NilReporter(t *testing.T) {
	t.Parallel()
	res := Execute(context.Background(), fibonacci.BigGenerator{}, 5, nil, io.Discard)
	if res.Err != nil || res.Sequence.Len() != 5 {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestExecute_Canceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := Execute(ctx, fibonacci.BigGenerator{}, 100000, NullProgressReporter{}, io.Discard)
	if !errors.Is(res.Err, context.Canceled) {
		t.Fatalf("Err = %v, want context.Canceled", res.Err)
	}
	if got := apperrors.ExitCodeFor(res.Err); got != apperrors.ExitErrorCanceled {
		t.Errorf("exit code = %d, want %d", got, apperrors.ExitErrorCanceled)
	}
}

func TestExecuteAll_RunsConcurrently(t *testing.T) {
	t.Parallel()
	var running, peak atomic.Int32
	release := make(chan struct{})
	slow := func(ctx context.Context, n int, _ progress.ProgressCallback) (fibonacci.Sequence, error) {
		now := running.Add(1)
		for {
			old := peak.Load()
			if now <= old || peak.CompareAndSwap(old, now) {
				break
			}
		}
		<-release
		running.Add(-1)
		return fibonacci.Generate(n), nil
	}
	gens := []fibonacci.Generator{
		&mockGenerator{name: "a", generate: slow},
		&mockGenerator{name: "b", generate: slow},
	}

	done := make(chan []Result)
	go func() { done <- ExecuteAll(context.Background(), gens, 8, NullProgressReporter{}, io.Discard) }()

	deadline := time.After(5 * time.Second)
	for peak.Load() < 2 {
		select {
		case <-deadline:
			close(release)
			t.Fatal("generators did not run concurrently")
		default:
			time.Sleep(time.Millisecond)
		}
	}
	close(release)

	results := <-done
	if len(results) != 2 || results[0].Name != "a" || results[1].Name != "b" {
		t.Fatalf("results should keep input order: %+v", results)
	}
}

func TestExecuteAll_ProgressFloodDoesNotDeadlock(t *testing.T) {
	t.Parallel()
	flood := func(_ context.Context, n int, cb progress.ProgressCallback) (fibonacci.Sequence, error) {
		for i := 0; i < 10000; i++ {
			cb(float64(i) / 10000)
		}
		cb(1.0)
		return fibonacci.Generate(n), nil
	}
	gens := []fibonacci.Generator{
		&mockGenerator{name: "f1", generate: flood},
		&mockGenerator{name: "f2", generate: flood},
		&mockGenerator{name: "f3", generate: flood},
	}

	done := make(chan struct{})
	go func() {
		ExecuteAll(context.Background(), gens, 3, NullProgressReporter{}, io.Discard)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("ExecuteAll deadlocked under a progress flood")
	}
}

func TestAnalyzeComparisonResults(t *testing.T) {
	t.Parallel()
	good := fibonacci.Generate(6)
	tests := []struct {
		name      string
		results   []Result
		wantCode  int
		wantBest  string
		wantInOut string
	}{
		{
			name: "fastest success wins",
			results: []Result{
				{Name: "slow", Sequence: good, Duration: 2 * time.Millisecond},
				{Name: "fast", Sequence: good, Duration: time.Millisecond},
				{Name: "failed", Err: errors.New("boom")},
			},
			wantCode:  apperrors.ExitSuccess,
			wantBest:  "fast",
			wantInOut: "Success",
		},
		{
			name: "mismatch",
			results: []Result{
				{Name: "a", Sequence: good},
				{Name: "b", Sequence: fibonacci.Generate(5)},
			},
			wantCode:  apperrors.ExitErrorMismatch,
			wantInOut: "CRITICAL",
		},
		{
			name: "all failed",
			results: []Result{
				{Name: "a", Err: context.DeadlineExceeded},
			},
			wantCode:  apperrors.ExitErrorTimeout,
			wantInOut: "Failure",
		},
		{
			name:      "no results",
			wantCode:  apperrors.ExitSuccess,
			wantInOut: "Failure",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var out strings.Builder
			presenter := &mockPresenter{}
			best, code := AnalyzeComparisonResults(tt.results, presenter, &out)
			if code != tt.wantCode {
				t.Errorf("code = %d, want %d", code, tt.wantCode)
			}
			if tt.wantBest == "" && best != nil {
				t.Errorf("best = %+v, want nil", best)
			}
			if tt.wantBest != "" && (best == nil || best.Name != tt.wantBest) {
				t.Errorf("best = %+v, want %q", best, tt.wantBest)
			}
			if presenter.tableRows != len(tt.results) {
				t.Errorf("table rows = %d, want %d", presenter.tableRows, len(tt.results))
			}
			if !strings.Contains(out.String(), tt.wantInOut) {
				t.Errorf("output %q should contain %q", out.String(), tt.wantInOut)
			}
		})
	}
}

func TestProgressReporterFunc(t *testing.T) {
	t.Parallel()
	called := false
	reporter := ProgressReporterFunc(func(wg *sync.WaitGroup, ch <-chan progress.ProgressUpdate, _ int, _ io.Writer) {
		defer wg.Done()
		called = true
		DrainChannel(ch)
	})
	Execute(context.Background(), fibonacci.BigGenerator{}, 3, reporter, io.Discard)
	if !called {
		t.Error("ProgressReporterFunc was not invoked")
	}
}
