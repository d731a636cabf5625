package fibonacci

import (
	"fmt"
	"math/big"

	apperrors "github.com/agbru/fibseq/internal/errors"
)

// Sequence is an ordered prefix of the Fibonacci sequence. Every element is a
// distinct *big.Int owned by the caller that requested the sequence.
type Sequence []*big.Int

// Generate returns the first n terms of the Fibonacci sequence.
//
//	n <= 0  → []
//	n == 1  → [0]
//	n == 2  → [0, 1]
//	n >= 3  → [0, 1, 1, 2, ...] of length n
//
// Generation is a single linear pass. The result is freshly allocated on
// every call and shares no state with other calls.
func Generate(n int) Sequence {
	seq := seed(n)
	for i := len(seq); i < n; i++ {
		seq = append(seq, new(big.Int).Add(seq[i-1], seq[i-2]))
	}
	return seq
}

// seed returns the literal result for n <= 2, and the two-term seed with
// capacity n otherwise. The n == 1 case is its own branch: it is not derived
// by truncating the two-term seed.
func seed(n int) Sequence {
	switch {
	case n <= 0:
		return Sequence{}
	case n == 1:
		return Sequence{big.NewInt(0)}
	case n == 2:
		return Sequence{big.NewInt(0), big.NewInt(1)}
	}
	seq := make(Sequence, 2, min(n, maxPreallocTerms))
	seq[0], seq[1] = big.NewInt(0), big.NewInt(1)
	return seq
}

// FromUint64s converts fixed-width terms to a Sequence of fresh *big.Int.
func FromUint64s(terms []uint64) Sequence {
	seq := make(Sequence, len(terms))
	for i, t := range terms {
		seq[i] = new(big.Int).SetUint64(t)
	}
	return seq
}

// Len returns the number of terms.
func (s Sequence) Len() int { return len(s) }

// Last returns the final term, or nil for an empty sequence.
func (s Sequence) Last() *big.Int {
	if len(s) == 0 {
		return nil
	}
	return s[len(s)-1]
}

// Strings returns the decimal representation of every term.
func (s Sequence) Strings() []string {
	out := make([]string, len(s))
	for i, term := range s {
		out[i] = term.String()
	}
	return out
}

// Uint64s converts the sequence to fixed-width integers. The second result is
// false when a term does not fit in a uint64.
func (s Sequence) Uint64s() ([]uint64, bool) {
	out := make([]uint64, len(s))
	for i, term := range s {
		if !term.IsUint64() {
			return nil, false
		}
		out[i] = term.Uint64()
	}
	return out, true
}

// Equal reports whether s and other hold the same values in the same order.
func (s Sequence) Equal(other Sequence) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i].Cmp(other[i]) != 0 {
			return false
		}
	}
	return true
}

// Verify checks the seed terms and the recurrence s[i] = s[i-1] + s[i-2].
// It returns a ValidationError naming the first offending index.
func (s Sequence) Verify() error {
	if len(s) > 0 && s[0].Sign() != 0 {
		return apperrors.ValidationError{Field: "sequence[0]", Message: fmt.Sprintf("want 0, got %s", s[0])}
	}
	if len(s) > 1 && s[1].Cmp(big.NewInt(1)) != 0 {
		return apperrors.ValidationError{Field: "sequence[1]", Message: fmt.Sprintf("want 1, got %s", s[1])}
	}
	sum := new(big.Int)
	for i := 2; i < len(s); i++ {
		sum.Add(s[i-1], s[i-2])
		if sum.Cmp(s[i]) != 0 {
			return apperrors.ValidationError{
				Field:   fmt.Sprintf("sequence[%d]", i),
				Message: fmt.Sprintf("want %s, got %s", sum, s[i]),
			}
		}
	}
	return nil
}

// EstimateSequenceBytes approximates the memory held by Generate(n). Term i
// carries about i*FibonacciGrowthFactor bits, so the payload grows with n².
func EstimateSequenceBytes(n int) uint64 {
	if n <= 0 {
		return 0
	}
	fn := float64(n)
	payload := FibonacciGrowthFactor * fn * fn / 16
	return uint64(payload) + uint64(n)*termOverheadBytes
}
