package orchestration

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/fibseq/internal/errors"
	"github.com/agbru/fibseq/internal/fibonacci"
	"github.com/agbru/fibseq/internal/progress"
)

const (
	// ProgressBufferMultiplier sizes the progress channel per generator so
	// a slow reporter rarely causes updates to be dropped.
	ProgressBufferMultiplier = 5

	// TracerName identifies the spans emitted by this package.
	TracerName = "github.com/agbru/fibseq/internal/orchestration"
	// SpanName is the name of the span wrapping each generator run.
	SpanName = "fibseq.generate"
)

// Execute runs one generator for n terms while reporter displays its
// progress. The progress channel is closed once generation returns and the
// reporter is awaited before Execute returns.
func Execute(ctx context.Context, gen fibonacci.Generator, n int, reporter ProgressReporter, out io.Writer) Result {
	return ExecuteAll(ctx, []fibonacci.Generator{gen}, n, reporter, out)[0]
}

// ExecuteAll runs every generator concurrently for n terms and returns their
// results in input order. A failing generator does not stop the others.
func ExecuteAll(ctx context.Context, generators []fibonacci.Generator, n int, reporter ProgressReporter, out io.Writer) []Result {
	if reporter == nil {
		reporter = NullProgressReporter{}
	}
	results := make([]Result, len(generators))
	progressChan := make(chan progress.ProgressUpdate, max(1, len(generators))*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go reporter.DisplayProgress(&displayWg, progressChan, len(generators), out)

	var g errgroup.Group
	for i, gen := range generators {
		g.Go(func() error {
			results[i] = run(ctx, gen, n, progress.ChannelCallback(progressChan, i))
			return nil
		})
	}

	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

// run executes a single generator inside a span.
func run(ctx context.Context, gen fibonacci.Generator, n int, cb progress.ProgressCallback) Result {
	ctx, span := otel.Tracer(TracerName).Start(ctx, SpanName)
	defer span.End()
	span.SetAttributes(
		attribute.Int("fibseq.n", n),
		attribute.String("fibseq.generator", gen.Name()),
	)

	start := time.Now()
	seq, err := gen.Generate(ctx, n, cb)
	res := Result{Name: gen.Name(), Sequence: seq, Duration: time.Since(start), Err: err}

	if err != nil {
		res.Sequence = nil
		res.Err = apperrors.GenerationError{Generator: gen.Name(), Cause: err}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return res
	}
	span.SetAttributes(attribute.Int("fibseq.terms", seq.Len()))
	span.SetStatus(codes.Ok, "")
	return res
}

// AnalyzeComparisonResults orders results (successes first, fastest
// first), presents the comparison table and checks that every successful
// generator produced the same sequence. It returns the fastest successful
// result, or nil, along with the exit code.
func AnalyzeComparisonResults(results []Result, presenter ResultPresenter, out io.Writer) (*Result, int) {
	sort.SliceStable(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	presenter.PresentComparisonTable(results, out)

	if len(results) == 0 || results[0].Err != nil {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No generator could complete the sequence.\n")
		var firstErr error
		if len(results) > 0 {
			firstErr = results[0].Err
		}
		return nil, presenter.HandleError(firstErr, 0, out)
	}

	best := &results[0]
	for _, res := range results[1:] {
		if res.Err == nil && !res.Sequence.Equal(best.Sequence) {
			fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! Generators produced different sequences.\n")
			return nil, apperrors.ExitErrorMismatch
		}
	}

	fmt.Fprintf(out, "\nGlobal Status: Success. All valid results are consistent.\n")
	return best, apperrors.ExitSuccess
}
