// Package nttconst derives the modular-arithmetic constants consumed by a
// Number Theoretic Transform over a fixed prime field: primitive roots of the
// field, a primitive n-th root of unity, the forward and inverse power tables
// of that root, and the bit-reversed twiddle-factor schedule of an in-place
// butterfly network.
//
// Every derivation is a deterministic pure function of the field parameters;
// the package holds no global state.
package nttconst

import (
	"math/bits"

	apperrors "github.com/kriskwiatkowski/mlkem-prime-roots/internal/errors"
	"github.com/kriskwiatkowski/mlkem-prime-roots/internal/modmath"
)

// Default field parameters. These are the ML-KEM (FIPS 203) NTT constants:
// the prime 3329, transform size 256 and the standard primitive 256th root
// of unity 17.
const (
	// DefaultQ is the default prime modulus.
	DefaultQ uint64 = 3329
	// DefaultN is the default transform size (a power of two).
	DefaultN uint64 = 256
	// DefaultZeta is the default primitive DefaultN-th root of unity mod DefaultQ.
	DefaultZeta uint64 = 17
)

// Params holds the field parameters for a single derivation run.
// It is the explicit, immutable configuration passed into every entry point;
// there are no process-wide parameter globals.
type Params struct {
	// Q is the prime field modulus.
	Q uint64
	// N is the transform size; must be a positive power of two.
	N uint64
	// Zeta is the primitive N-th root of unity to use. Zero means
	// "derive one from a primitive root of the field".
	Zeta uint64
}

// Validate checks the structural constraints on the field parameters:
// Q must be an odd prime greater than 2 and N a positive power of two.
//
// Divisibility of Q-1 by N is deliberately not validated here: a field
// without an N-th root of unity is a legitimate input whose outcome is the
// documented "no root exists" result, not a configuration error.
//
// Returns:
//   - error: A ValidationError describing the first violated constraint, or nil.
func (p Params) Validate() error {
	if p.Q <= 2 {
		return apperrors.NewValidationError("q", "modulus must be an odd prime greater than 2", p.Q)
	}
	if !modmath.IsPrime(p.Q) {
		return apperrors.NewValidationError("q", "modulus must be prime", p.Q)
	}
	if !isPowerOfTwo(p.N) {
		return apperrors.NewValidationError("n", "transform size must be a positive power of two", p.N)
	}
	if p.Zeta >= p.Q {
		return apperrors.NewValidationError("zeta", "root must be a reduced nonzero residue", p.Zeta)
	}
	return nil
}

// VerifyZeta reports whether zeta is a primitive n-th root of unity mod q:
// zeta^n == 1 and zeta^(n/2) != 1. For n a power of two these two conditions
// are equivalent to the multiplicative order of zeta being exactly n.
//
// Parameters:
//   - zeta: The candidate root.
//   - n: The transform size (a power of two).
//   - q: The prime modulus.
//
// Returns:
//   - bool: true if zeta has order exactly n.
func VerifyZeta(zeta, n, q uint64) bool {
	if zeta == 0 || !isPowerOfTwo(n) {
		return false
	}
	if modmath.Pow(zeta, n, q) != 1 {
		return false
	}
	if n == 1 {
		return zeta%q == 1
	}
	return modmath.Pow(zeta, n/2, q) != 1
}

// isPowerOfTwo reports whether n is a positive power of two.
func isPowerOfTwo(n uint64) bool {
	return n > 0 && n&(n-1) == 0
}

// log2 returns log2(n) for a positive power of two n.
func log2(n uint64) int {
	return bits.TrailingZeros64(n)
}
