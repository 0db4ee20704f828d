package nttconst

import "fmt"

// BitReverse reverses the low width bits of v. Bits at or above width are
// ignored on input and absent from the output, so the result always fits in
// width bits. The operation is involutive: BitReverse(BitReverse(x, w), w)
// == x for any x representable in w bits.
//
// Parameters:
//   - v: The value whose bits are reversed.
//   - width: The bit width of the reversal window (width >= 0).
//
// Returns:
//   - uint64: v with its low width bits reversed.
func BitReverse(v uint64, width int) uint64 {
	var result uint64
	for i := 0; i < width; i++ {
		result = result<<1 | v&1
		v >>= 1
	}
	return result
}

// PermuteBitReversed scatters a sequence into bit-reversed index order:
// result[BitReverse(i, w)] = seq[i] with w = log2(len(seq)). This is the
// standard reordering aligning natural and transform-domain indexing in
// butterfly-structured transforms.
//
// Note this is scatter-by-reversed-index, not gather; the two coincide only
// because bit reversal is an involution, but the definition is the scatter.
//
// Parameters:
//   - seq: The sequence to permute; its length must be a power of two.
//
// Returns:
//   - []uint64: A new sequence in bit-reversed order.
//   - error: An error if len(seq) is not a power of two.
func PermuteBitReversed(seq []uint64) ([]uint64, error) {
	n := uint64(len(seq))
	if !isPowerOfTwo(n) {
		return nil, fmt.Errorf("sequence length %d is not a power of two", n)
	}

	width := log2(n)
	out := make([]uint64, n)
	for i := uint64(0); i < n; i++ {
		out[BitReverse(i, width)] = seq[i]
	}
	return out, nil
}
