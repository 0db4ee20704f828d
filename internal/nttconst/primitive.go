package nttconst

import "github.com/kriskwiatkowski/mlkem-prime-roots/internal/modmath"

// IsPrimitiveRoot reports whether g is a primitive root modulo the prime p,
// given the complete set of distinct prime factors of p-1.
//
// g fails the test iff g^((p-1)/f) == 1 (mod p) for some factor f; with the
// complete factor set this is both necessary and sufficient for g to
// generate the full multiplicative group.
//
// Parameters:
//   - g: The candidate generator.
//   - p: The prime modulus.
//   - factors: The distinct prime factors of p-1 (all of them).
//
// Returns:
//   - bool: true if g is a primitive root mod p.
func IsPrimitiveRoot(g, p uint64, factors []uint64) bool {
	for _, f := range factors {
		if modmath.Pow(g, (p-1)/f, p) == 1 {
			return false
		}
	}
	return true
}

// FindPrimitiveRoots returns up to count primitive roots modulo p, scanning
// candidates g = 2, 3, ..., p-1 in ascending order. The output order is
// therefore strictly ascending and deterministic.
//
// For p <= 1 there is no group structure and the result is empty. For p == 2
// the scan range [2, 2) is empty, so no roots are returned either; 1 is
// technically the only unit mod 2 but sits below the g >= 2 lower bound.
//
// Parameters:
//   - p: The prime modulus.
//   - count: The maximum number of roots to collect.
//
// Returns:
//   - []uint64: The first primitive roots of p in ascending order.
func FindPrimitiveRoots(p uint64, count int) []uint64 {
	if p <= 1 || count <= 0 {
		return nil
	}

	factors := modmath.PrimeFactors(p - 1)

	var roots []uint64
	for g := uint64(2); g < p; g++ {
		if len(roots) >= count {
			break
		}
		if IsPrimitiveRoot(g, p, factors) {
			roots = append(roots, g)
		}
	}
	return roots
}
