package fibonacci

import (
	"context"
	"fmt"
	"iter"
	"math/big"

	"github.com/agbru/fibseq/internal/progress"
)

// Terms streams the first n terms as (index, term) pairs, following the same
// case policy as Generate. Each yielded term is a distinct value the consumer
// may retain. Iteration stops as soon as the consumer breaks out of the loop.
func Terms(n int) iter.Seq2[int, *big.Int] {
	return func(yield func(int, *big.Int) bool) {
		a, b := big.NewInt(0), big.NewInt(1)
		for i := 0; i < n; i++ {
			if !yield(i, a) {
				return
			}
			a, b = b, new(big.Int).Add(a, b)
		}
	}
}

// IterGenerator collects Terms into a Sequence. It shares no code path with
// BigGenerator, so comparing the two cross-checks both.
type IterGenerator struct{}

// Name returns the generator description.
func (IterGenerator) Name() string { return "Streaming (iter.Seq2)" }

// Generate consumes Terms(n) with the same cancellation and progress cadence
// as GenerateContext.
func (IterGenerator) Generate(ctx context.Context, n int, cb ProgressCallback) (Sequence, error) {
	cb = progress.OrNoop(cb)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("generation not started: %w", err)
	}

	seq := make(Sequence, 0, max(0, min(n, maxPreallocTerms)))
	for i, term := range Terms(n) {
		if i > 0 && i%CancellationCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("generation interrupted at term %d of %d: %w", i, n, err)
			}
		}
		if i > 0 && i%ProgressReportInterval == 0 {
			cb(workFraction(i, n))
		}
		seq = append(seq, term)
	}
	cb(1.0)
	return seq, nil
}
