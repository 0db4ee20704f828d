// Package modmath implements word-sized modular arithmetic over a prime
// field: binary modular exponentiation, Fermat inversion, trial-division
// factorization and primality testing, and multiplicative-order computation.
//
// All routines operate on uint64 values and assume the products involved fit
// in 128 bits (guaranteed by math/bits.Mul64); they are deterministic pure
// functions with no hidden state.
package modmath

import "math/bits"

// mulMod returns (a * b) mod m using a full 128-bit intermediate product,
// so it is exact for any uint64 operands.
func mulMod(a, b, m uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	_, rem := bits.Div64(hi%m, lo, m)
	return rem
}

// Pow computes base^exp mod modulus using binary (square-and-multiply)
// exponentiation in O(log exp) multiplications.
//
// The base is reduced into [0, modulus) first. By convention Pow(x, 0, m) == 1
// for every x, including x == 0. For modulus == 1 every residue is 0, so the
// result is 0 regardless of base and exponent, matching math/big.Int.Exp.
// Note the two rules conflict at exp == 0, modulus == 1: environments that
// apply the exponent-zero rule first (e.g. Python's pow) return 1 there.
//
// Parameters:
//   - base: The base of the exponentiation.
//   - exp: The non-negative exponent.
//   - modulus: The modulus (must be >= 1).
//
// Returns:
//   - uint64: base^exp mod modulus.
func Pow(base, exp, modulus uint64) uint64 {
	if modulus == 1 {
		return 0
	}
	result := uint64(1)
	base %= modulus
	for exp > 0 {
		if exp&1 == 1 {
			result = mulMod(result, base, modulus)
		}
		exp >>= 1
		base = mulMod(base, base, modulus)
	}
	return result
}

// Inverse computes the modular inverse of a modulo q via Fermat's little
// theorem: a^(q-2) mod q.
//
// Precondition: q is prime and a is not a multiple of q. This is Fermat
// inversion, not extended Euclid; when the precondition is violated the
// returned value is meaningless (no panic, no error). The field modulus is
// prime by construction everywhere this is called.
//
// Parameters:
//   - a: The value to invert.
//   - q: The prime modulus.
//
// Returns:
//   - uint64: a^(-1) mod q.
func Inverse(a, q uint64) uint64 {
	return Pow(a, q-2, q)
}

// PrimeFactors returns the distinct prime factors of m in ascending order,
// found by trial division up to sqrt(m). A cofactor greater than 1 surviving
// the loop is itself prime and is appended last.
//
// For m <= 1 the result is empty.
//
// Parameters:
//   - m: The value to factorize (m >= 1).
//
// Returns:
//   - []uint64: The distinct prime factors of m.
func PrimeFactors(m uint64) []uint64 {
	var factors []uint64
	n := m
	for i := uint64(2); i*i <= n; i++ {
		if n%i == 0 {
			factors = append(factors, i)
			for n%i == 0 {
				n /= i
			}
		}
	}
	if n > 1 {
		factors = append(factors, n)
	}
	return factors
}

// IsPrime reports whether n is prime, using trial division up to sqrt(n).
// Adequate for the word-sized field moduli this application handles.
//
// Parameters:
//   - n: The value to test.
//
// Returns:
//   - bool: true if n is prime.
func IsPrime(n uint64) bool {
	if n < 2 {
		return false
	}
	for i := uint64(2); i*i <= n; i++ {
		if n%i == 0 {
			return false
		}
	}
	return true
}

// Order computes the multiplicative order of a modulo q by iterated
// multiplication: the smallest k >= 1 with a^k == 1 (mod q).
//
// The search is bounded by q-1 (the group order when q is prime). If no k up
// to that bound satisfies the condition, which happens when a shares a
// factor with q, ok is false.
//
// Parameters:
//   - a: The element whose order is sought (reduced mod q internally).
//   - q: The modulus (q >= 2).
//
// Returns:
//   - uint64: The multiplicative order of a mod q.
//   - bool: false if a has no finite order in the group (or q < 2).
func Order(a, q uint64) (uint64, bool) {
	if q < 2 {
		return 0, false
	}
	a %= q
	if a == 0 {
		return 0, false
	}
	order := uint64(1)
	power := a
	for power != 1 {
		power = mulMod(power, a, q)
		order++
		if order > q-1 {
			return 0, false
		}
	}
	return order, true
}
