package nttconst

import "github.com/kriskwiatkowski/mlkem-prime-roots/internal/modmath"

// rootSearchPool bounds the number of primitive roots inspected when
// deriving an n-th root of unity. A larger pool only matters for fields
// where the first primitive roots all map to already-seen values, which
// cannot happen when only one root is requested; the bound is kept for
// behavioral compatibility with the historical search and is a documented
// limitation, not a contract.
const rootSearchPool = 50

// FindNthRoot derives a primitive n-th root of unity modulo the prime q.
//
// No such root exists when n does not divide q-1: the multiplicative group
// mod q has order q-1 and contains an element of order exactly n iff n
// divides that order. In that case ok is false, a legitimate
// mathematical answer, not an error.
//
// Otherwise the first primitive root g from a bounded candidate pool is
// raised to (q-1)/n. Group theory guarantees the result has order exactly n:
// ord(g^k) = ord(g)/gcd(ord(g), k) with ord(g) = q-1 and k = (q-1)/n.
//
// Parameters:
//   - n: The requested root order (the transform size).
//   - q: The prime modulus.
//
// Returns:
//   - uint64: A primitive n-th root of unity mod q.
//   - bool: false when no n-th root of unity exists or no primitive root
//     was found within the bounded pool.
func FindNthRoot(n, q uint64) (uint64, bool) {
	if n == 0 || (q-1)%n != 0 {
		return 0, false
	}

	primitiveRoots := FindPrimitiveRoots(q, rootSearchPool)
	if len(primitiveRoots) == 0 {
		return 0, false
	}

	// The first primitive root always yields a fresh value, so the search
	// stops immediately; the pool exists only to mirror the bounded scan.
	g := primitiveRoots[0]
	return modmath.Pow(g, (q-1)/n, q), true
}
