package modmath

import "testing"

// TestPowKnownValues validates the exponentiation routine against a
// hand-checked oracle, including the degenerate modulus and zero-exponent
// conventions.
func TestPowKnownValues(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name                string
		base, exp, mod, want uint64
	}{
		{"2^3 mod 7", 2, 3, 7, 1},
		{"3^2 mod 5", 3, 2, 5, 4},
		{"5^0 mod 13", 5, 0, 13, 1},
		{"0^0 mod 13", 0, 0, 13, 1},
		{"0^5 mod 13", 0, 5, 13, 0},
		{"base reduced first", 10, 2, 7, 2}, // 10 ≡ 3, 3^2 = 9 ≡ 2
		{"modulus one", 6, 4, 1, 0},
		{"modulus one zero exp", 6, 0, 1, 0},
		{"mlkem zeta order", 17, 256, 3329, 1},
		{"mlkem zeta half order", 17, 128, 3329, 3328},
		{"large operands", 1 << 62, 3, (1 << 61) - 1, Pow(2, 186, (1<<61)-1)},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Pow(tc.base, tc.exp, tc.mod); got != tc.want {
				t.Errorf("Pow(%d, %d, %d) = %d, want %d", tc.base, tc.exp, tc.mod, got, tc.want)
			}
		})
	}
}

// TestPowReReductionIdempotent checks that re-reducing a result is a no-op:
// Pow(Pow(a, e, m), 1, m) == Pow(a, e, m).
func TestPowReReductionIdempotent(t *testing.T) {
	t.Parallel()
	for a := uint64(0); a < 12; a++ {
		for e := uint64(0); e < 12; e++ {
			for _, m := range []uint64{2, 3, 7, 13, 3329} {
				r := Pow(a, e, m)
				if again := Pow(r, 1, m); again != r {
					t.Fatalf("Pow(Pow(%d,%d,%d),1,%d) = %d, want %d", a, e, m, m, again, r)
				}
			}
		}
	}
}

// TestInverse validates Fermat inversion over small prime fields and the
// ML-KEM field: a * Inverse(a) must be congruent to 1.
func TestInverse(t *testing.T) {
	t.Parallel()
	primes := []uint64{3, 5, 7, 13, 17, 3329}
	for _, q := range primes {
		for a := uint64(1); a < q && a < 200; a++ {
			inv := Inverse(a, q)
			if got := mulMod(a, inv, q); got != 1 {
				t.Errorf("q=%d: %d * Inverse(%d) mod %d = %d, want 1", q, a, a, q, got)
			}
		}
	}
}

// TestPrimeFactors validates the trial-division factorizer, including the
// surviving-cofactor path and the empty result for m = 1.
func TestPrimeFactors(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		m    uint64
		want []uint64
	}{
		{1, nil},
		{2, []uint64{2}},
		{6, []uint64{2, 3}},
		{8, []uint64{2}},
		{12, []uint64{2, 3}},
		{97, []uint64{97}},           // prime cofactor survives the loop
		{3328, []uint64{2, 13}},      // q-1 for ML-KEM: 2^8 * 13
		{360, []uint64{2, 3, 5}},
		{1 << 20, []uint64{2}},
	}

	for _, tc := range testCases {
		tc := tc
		got := PrimeFactors(tc.m)
		if len(got) != len(tc.want) {
			t.Errorf("PrimeFactors(%d) = %v, want %v", tc.m, got, tc.want)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("PrimeFactors(%d) = %v, want %v", tc.m, got, tc.want)
				break
			}
		}
	}
}

// TestIsPrime checks primality classification around small boundaries and
// for the application's field modulus.
func TestIsPrime(t *testing.T) {
	t.Parallel()
	primes := []uint64{2, 3, 5, 7, 13, 17, 97, 3329, 7681, 12289}
	composites := []uint64{0, 1, 4, 6, 9, 15, 3327, 3330}

	for _, p := range primes {
		if !IsPrime(p) {
			t.Errorf("IsPrime(%d) = false, want true", p)
		}
	}
	for _, c := range composites {
		if IsPrime(c) {
			t.Errorf("IsPrime(%d) = true, want false", c)
		}
	}
}

// TestOrder validates the iterative multiplicative-order computation.
// The ML-KEM case asserts the order of 17 mod 3329 is exactly 256; the loop
// must not terminate at any earlier exponent.
func TestOrder(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name  string
		a, q  uint64
		want  uint64
		wantOK bool
	}{
		{"identity", 1, 7, 1, true},
		{"generator of F7", 3, 7, 6, true},
		{"order 3 in F7", 2, 7, 3, true},
		{"mlkem zeta", 17, 3329, 256, true},
		{"zero element", 0, 7, 0, false},
		{"shared factor", 6, 12, 0, false},
		{"degenerate modulus", 5, 1, 0, false},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := Order(tc.a, tc.q)
			if ok != tc.wantOK || got != tc.want {
				t.Errorf("Order(%d, %d) = (%d, %v), want (%d, %v)", tc.a, tc.q, got, ok, tc.want, tc.wantOK)
			}
		})
	}
}

// TestOrderDividesGroupOrder verifies Lagrange's theorem on small prime
// fields: every element order divides q-1.
func TestOrderDividesGroupOrder(t *testing.T) {
	t.Parallel()
	for _, q := range []uint64{3, 5, 7, 11, 13, 17} {
		for a := uint64(1); a < q; a++ {
			ord, ok := Order(a, q)
			if !ok {
				t.Fatalf("Order(%d, %d) unexpectedly has no result", a, q)
			}
			if (q-1)%ord != 0 {
				t.Errorf("Order(%d, %d) = %d does not divide %d", a, q, ord, q-1)
			}
		}
	}
}
