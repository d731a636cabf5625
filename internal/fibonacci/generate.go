package fibonacci

import (
	"context"
	"fmt"
	"math/big"

	"github.com/agbru/fibseq/internal/progress"
)

// GenerateContext is Generate with cancellation and progress reporting, for
// sequences long enough that the caller wants a deadline or a progress bar.
//
// The context is checked every CancellationCheckInterval terms; on
// cancellation the partial sequence is discarded and the context error is
// returned wrapped. The callback, which may be nil, receives the completed
// fraction of the work at most every ProgressReportInterval terms and a final
// 1.0 on success.
//
// Parameters:
//   - ctx: The context controlling cancellation.
//   - n: The requested term count.
//   - cb: The progress callback, or nil.
//
// Returns:
//   - Sequence: The first n terms.
//   - error: A wrapped ctx.Err() if the context was canceled.
func GenerateContext(ctx context.Context, n int, cb ProgressCallback) (Sequence, error) {
	cb = progress.OrNoop(cb)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("generation not started: %w", err)
	}

	seq := seed(n)
	for i := len(seq); i < n; i++ {
		if i%CancellationCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("generation interrupted at term %d of %d: %w", i, n, err)
			}
		}
		if i%ProgressReportInterval == 0 {
			cb(workFraction(i, n))
		}
		seq = append(seq, new(big.Int).Add(seq[i-1], seq[i-2]))
	}
	cb(1.0)
	return seq, nil
}

// workFraction estimates completed work after done of total terms. Adding
// term i costs O(i) bit operations, so completed work grows with done².
func workFraction(done, total int) float64 {
	if total <= 0 {
		return 1.0
	}
	f := float64(done) / float64(total)
	return f * f
}
