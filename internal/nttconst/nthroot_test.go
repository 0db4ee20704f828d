package nttconst

import (
	"testing"

	"github.com/kriskwiatkowski/mlkem-prime-roots/internal/modmath"
)

// TestFindNthRoot validates n-th root of unity derivation, including the
// non-existence case when n does not divide q-1.
func TestFindNthRoot(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name   string
		n, q   uint64
		want   uint64
		wantOK bool
	}{
		{"mlkem 256th root", 256, 3329, 3061, true}, // 3^(3328/256) = 3^13
		{"8th root mod 17", 8, 17, 9, true},
		{"4th root mod 5", 4, 5, 2, true},
		{"does not exist", 100, 7, 0, false},
		{"n exceeds group order", 16, 7, 0, false},
		{"full group order", 6, 7, 3, true}, // first primitive root itself
		{"n is zero", 0, 7, 0, false},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := FindNthRoot(tc.n, tc.q)
			if ok != tc.wantOK || got != tc.want {
				t.Errorf("FindNthRoot(%d, %d) = (%d, %v), want (%d, %v)", tc.n, tc.q, got, ok, tc.want, tc.wantOK)
			}
		})
	}
}

// TestFindNthRootHasExactOrder checks the group-theoretic guarantee that the
// derived root has multiplicative order exactly n, not a proper divisor.
func TestFindNthRootHasExactOrder(t *testing.T) {
	t.Parallel()
	testCases := []struct{ n, q uint64 }{
		{256, 3329},
		{128, 3329},
		{8, 17},
		{4, 17},
		{2, 17},
		{4, 5},
	}

	for _, tc := range testCases {
		tc := tc
		zeta, ok := FindNthRoot(tc.n, tc.q)
		if !ok {
			t.Fatalf("FindNthRoot(%d, %d): root unexpectedly missing", tc.n, tc.q)
		}
		ord, ok := modmath.Order(zeta, tc.q)
		if !ok || ord != tc.n {
			t.Errorf("FindNthRoot(%d, %d) = %d has order %d, want %d", tc.n, tc.q, zeta, ord, tc.n)
		}
		if !VerifyZeta(zeta, tc.n, tc.q) {
			t.Errorf("VerifyZeta(%d, %d, %d) = false, want true", zeta, tc.n, tc.q)
		}
	}
}

// TestVerifyZeta checks the two-sided primitivity condition on the
// caller-asserted ML-KEM root and on counterexamples.
func TestVerifyZeta(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name       string
		zeta, n, q uint64
		want       bool
	}{
		{"mlkem zeta", 17, 256, 3329, true},
		{"derived root", 3061, 256, 3329, true},
		{"order divides but not exact", 17 * 17 % 3329, 256, 3329, false}, // order 128
		{"unity is not primitive for n>1", 1, 256, 3329, false},
		{"zero is never a root", 0, 256, 3329, false},
		{"n not a power of two", 17, 100, 3329, false},
		{"trivial n", 1, 1, 3329, true},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := VerifyZeta(tc.zeta, tc.n, tc.q); got != tc.want {
				t.Errorf("VerifyZeta(%d, %d, %d) = %v, want %v", tc.zeta, tc.n, tc.q, got, tc.want)
			}
		})
	}
}
