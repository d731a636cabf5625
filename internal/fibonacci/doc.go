// Package fibonacci generates prefixes of the Fibonacci sequence.
//
// The central entry point is [Generate], which returns the first n terms as a
// [Sequence] of arbitrary-precision integers. [GenerateContext] adds
// cancellation and progress reporting for very long sequences, [Terms] streams
// terms without materializing the whole prefix, and [GenerateUint64] is a
// fixed-width variant for prefixes that fit in 64 bits.
//
// All variants share the same case policy: n <= 0 yields an empty sequence,
// n == 1 yields [0], n == 2 yields [0, 1], and larger n extend the seed by
// summing the two preceding terms.
package fibonacci
