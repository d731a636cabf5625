package fibonacci

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"
)

func TestTerms_MatchesGenerate(t *testing.T) {
	t.Parallel()
	for _, n := range []int{-2, 0, 1, 2, 3, 10, 200} {
		want := Generate(n)
		var got Sequence
		for i, term := range Terms(n) {
			if i != len(got) {
				t.Fatalf("Terms(%d) yielded index %d, want %d", n, i, len(got))
			}
			got = append(got, term)
		}
		if len(got) != len(want) || (len(want) > 0 && !got.Equal(want)) {
			t.Errorf("Terms(%d) = %v, want %v", n, got.Strings(), want.Strings())
		}
	}
}

func TestTerms_EarlyBreak(t *testing.T) {
	t.Parallel()
	count := 0
	for i := range Terms(1_000_000) {
		count++
		if i == 9 {
			break
		}
	}
	if count != 10 {
		t.Errorf("expected 10 terms before break, got %d", count)
	}
}

func TestTerms_YieldsIndependentValues(t *testing.T) {
	t.Parallel()
	var kept []*big.Int
	for _, term := range Terms(12) {
		kept = append(kept, term)
	}
	if err := Sequence(kept).Verify(); err != nil {
		t.Errorf("retained terms were mutated after being yielded: %v", err)
	}
}

func TestIterGenerator(t *testing.T) {
	t.Parallel()
	for _, n := range []int{-1, 0, 1, 2, 3, 94, 95, CancellationCheckInterval + 1, 2*ProgressReportInterval + 3} {
		var last float64
		got, err := IterGenerator{}.Generate(context.Background(), n, func(v float64) { last = v })
		if err != nil {
			t.Fatalf("Generate(%d) error: %v", n, err)
		}
		if want := Generate(n); !got.Equal(want) {
			t.Errorf("Generate(%d) differs from the reference sequence", n)
		}
		if last != 1.0 {
			t.Errorf("Generate(%d) final progress = %v, want 1.0", n, last)
		}
	}
}

func TestIterGenerator_Context(t *testing.T) {
	t.Parallel()
	canceled, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (IterGenerator{}).Generate(canceled, 10, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("canceled context: error = %v, want context.Canceled", err)
	}

	deadline, stop := context.WithTimeout(context.Background(), time.Millisecond)
	defer stop()
	if _, err := (IterGenerator{}).Generate(deadline, 1<<62, nil); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("huge n: error = %v, want context.DeadlineExceeded", err)
	}
}
