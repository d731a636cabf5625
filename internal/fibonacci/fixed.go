package fibonacci

import (
	"fmt"

	apperrors "github.com/agbru/fibseq/internal/errors"
)

// GenerateUint64 is the fixed-width counterpart of Generate for prefixes of
// at most MaxUint64Terms terms. Longer prefixes would overflow and are
// rejected with a ValidationError.
func GenerateUint64(n int) ([]uint64, error) {
	switch {
	case n > MaxUint64Terms:
		return nil, apperrors.ValidationError{
			Field:   "n",
			Message: fmt.Sprintf("%d terms overflow uint64 (max %d)", n, MaxUint64Terms),
		}
	case n <= 0:
		return []uint64{}, nil
	case n == 1:
		return []uint64{0}, nil
	case n == 2:
		return []uint64{0, 1}, nil
	}

	seq := make([]uint64, 2, n)
	seq[1] = 1
	for i := 2; i < n; i++ {
		seq = append(seq, seq[i-1]+seq[i-2])
	}
	return seq, nil
}
