package fibonacci

// ─────────────────────────────────────────────────────────────────────────────
// Generation Constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	// MaxUint64Terms is the longest prefix whose terms all fit in a uint64.
	// The last term of that prefix is F(93) = 12200160415121876738; F(94)
	// exceeds 2^64-1.
	MaxUint64Terms = 94

	// CancellationCheckInterval is the number of terms generated between two
	// context checks in GenerateContext. Checking on every term would dominate
	// the cost of the early, small additions.
	CancellationCheckInterval = 1024

	// ProgressReportInterval is the number of terms generated between two
	// progress callbacks in GenerateContext.
	ProgressReportInterval = 4096

	// maxPreallocTerms caps the slice capacity reserved up front. Longer
	// sequences grow through append, so a huge n costs nothing until terms
	// are actually produced and the first context check can run.
	maxPreallocTerms = 1 << 16
)

// ─────────────────────────────────────────────────────────────────────────────
// Size Estimation Constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	// FibonacciGrowthFactor is log2(phi), where phi ≈ 1.618 (golden ratio).
	// F(i) has roughly i*FibonacciGrowthFactor bits.
	FibonacciGrowthFactor = 0.69424

	// termOverheadBytes approximates the fixed cost of one materialized term:
	// the big.Int header plus its slot in the Sequence slice.
	termOverheadBytes = 40
)
