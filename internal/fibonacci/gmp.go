//go:build gmp

package fibonacci

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ncw/gmp"

	"github.com/agbru/fibseq/internal/progress"
)

func init() {
	builtinGenerators["gmp"] = func() Generator { return GMPGenerator{} }
}

// GMPGenerator performs the additions with GMP and converts each term back to
// math/big for the returned Sequence. Available when built with -tags gmp.
type GMPGenerator struct{}

// Name returns the generator description.
func (GMPGenerator) Name() string { return "Iterative (GMP)" }

// Generate returns the first n terms using GMP arithmetic.
func (GMPGenerator) Generate(ctx context.Context, n int, cb ProgressCallback) (Sequence, error) {
	cb = progress.OrNoop(cb)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("generation not started: %w", err)
	}

	seq := seed(n)
	a, b := gmp.NewInt(0), gmp.NewInt(1)
	for i := len(seq); i < n; i++ {
		if i%CancellationCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("generation interrupted at term %d of %d: %w", i, n, err)
			}
		}
		if i%ProgressReportInterval == 0 {
			cb(workFraction(i, n))
		}
		a.Add(a, b)
		a, b = b, a
		seq = append(seq, new(big.Int).SetBytes(b.Bytes()))
	}
	cb(1.0)
	return seq, nil
}
