package nttconst

import "testing"

// FuzzBitReverse verifies the structural invariants of the bit-reversal
// primitive for arbitrary values and widths: the result always fits in the
// window, and reversing twice recovers the masked input.
func FuzzBitReverse(f *testing.F) {
	// Seed corpus with known interesting values
	f.Add(uint64(0), 0)
	f.Add(uint64(1), 1)
	f.Add(uint64(0b011), 3)
	f.Add(uint64(63), 7) // log2(128)-1 window of the ML-KEM schedule
	f.Add(uint64(255), 8)
	f.Add(^uint64(0), 64)

	f.Fuzz(func(t *testing.T, v uint64, width int) {
		if width < 0 || width > 64 {
			return
		}

		mask := ^uint64(0)
		if width < 64 {
			mask = uint64(1)<<uint(width) - 1
		}

		r := BitReverse(v, width)

		// Containment: the result must fit in width bits
		if r&^mask != 0 {
			t.Errorf("BitReverse(%#x, %d) = %#x exceeds the %d-bit window", v, width, r, width)
		}

		// Involution on the masked input
		if back := BitReverse(r, width); back != v&mask {
			t.Errorf("BitReverse(BitReverse(%#x, %d), %d) = %#x, want %#x",
				v, width, width, back, v&mask)
		}
	})
}

// FuzzPermuteBitReversedRoundTrip verifies that applying the bit-reversed
// scatter twice is the identity, for arbitrary power-of-two lengths and
// arbitrary contents. Bit reversal is an involution, so the permutation is
// its own inverse.
func FuzzPermuteBitReversedRoundTrip(f *testing.F) {
	// Seed corpus
	f.Add(uint64(0), uint8(0))
	f.Add(uint64(1), uint8(3))
	f.Add(uint64(3329), uint8(8))
	f.Add(uint64(0xdeadbeef), uint8(5))

	f.Fuzz(func(t *testing.T, seed uint64, sizeExp uint8) {
		// Lengths 1 .. 2^10 keep iterations quick
		n := 1 << (sizeExp % 11)

		// Deterministic contents from the seed (xorshift)
		seq := make([]uint64, n)
		x := seed | 1
		for i := range seq {
			x ^= x << 13
			x ^= x >> 7
			x ^= x << 17
			seq[i] = x
		}

		once, err := PermuteBitReversed(seq)
		if err != nil {
			t.Fatalf("PermuteBitReversed failed for n=%d: %v", n, err)
		}
		twice, err := PermuteBitReversed(once)
		if err != nil {
			t.Fatalf("PermuteBitReversed failed on second pass for n=%d: %v", n, err)
		}

		for i := range seq {
			if twice[i] != seq[i] {
				t.Fatalf("round trip mismatch at index %d for n=%d: got %d, want %d",
					i, n, twice[i], seq[i])
			}
		}
	})
}
