package nttconst

import (
	"context"
	"sync"

	"github.com/kriskwiatkowski/mlkem-prime-roots/internal/modmath"
	"github.com/kriskwiatkowski/mlkem-prime-roots/internal/parallel"
)

// BuildTables generates the forward and inverse root tables for zeta:
// forward[i] = zeta^i mod q and inverse[i] = zeta^(-i) mod q for i in [0, n),
// where zeta^(-1) is obtained by Fermat inversion. Both tables have length
// exactly n and start with 1.
//
// This is the pure, non-cancellable entry point; the two tables are built
// concurrently since neither reads the other's output.
//
// Parameters:
//   - zeta: The primitive n-th root of unity.
//   - q: The prime modulus.
//   - n: The transform size.
//
// Returns:
//   - forward: The table of ascending powers of zeta.
//   - inverse: The table of ascending powers of zeta^(-1).
func BuildTables(zeta, q uint64, n int) (forward, inverse []uint64) {
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		forward, _ = ForwardTable(context.Background(), zeta, q, n, nil, 0)
	}()
	go func() {
		defer wg.Done()
		inverse, _ = InverseTable(context.Background(), zeta, q, n, nil, 0)
	}()
	wg.Wait()
	return forward, inverse
}

// BuildTablesContext is the cancellable, progress-reporting variant of
// BuildTables. The forward and inverse tables are built concurrently and
// report progress under separate derivation indices.
//
// Parameters:
//   - ctx: The context for cancellation.
//   - zeta: The primitive n-th root of unity.
//   - q: The prime modulus.
//   - n: The transform size.
//   - obs: The progress observer (may be nil).
//   - fwdIndex: The derivation index reported for the forward table.
//   - invIndex: The derivation index reported for the inverse table.
//
// Returns:
//   - forward, inverse: The two power tables.
//   - error: The first error encountered (context cancellation only).
func BuildTablesContext(ctx context.Context, zeta, q uint64, n int, obs ProgressObserver, fwdIndex, invIndex int) (forward, inverse []uint64, err error) {
	var wg sync.WaitGroup
	var ec parallel.ErrorCollector
	wg.Add(2)
	go func() {
		defer wg.Done()
		var e error
		forward, e = ForwardTable(ctx, zeta, q, n, obs, fwdIndex)
		ec.SetError(e)
	}()
	go func() {
		defer wg.Done()
		var e error
		inverse, e = InverseTable(ctx, zeta, q, n, obs, invIndex)
		ec.SetError(e)
	}()
	wg.Wait()
	return forward, inverse, ec.Err()
}

// ForwardTable builds the forward table zeta^i mod q for i in [0, n).
//
// Parameters:
//   - ctx: The context for cancellation, checked periodically.
//   - zeta: The primitive n-th root of unity.
//   - q: The prime modulus.
//   - n: The transform size.
//   - obs: The progress observer (may be nil).
//   - index: The derivation index reported to the observer.
//
// Returns:
//   - []uint64: The forward table of length n.
//   - error: ctx.Err() if the context was cancelled mid-build.
func ForwardTable(ctx context.Context, zeta, q uint64, n int, obs ProgressObserver, index int) ([]uint64, error) {
	return buildPowerTable(ctx, zeta, q, n, obs, index)
}

// InverseTable builds the inverse table zeta^(-i) mod q for i in [0, n),
// using Fermat inversion for zeta^(-1).
//
// Parameters mirror ForwardTable.
func InverseTable(ctx context.Context, zeta, q uint64, n int, obs ProgressObserver, index int) ([]uint64, error) {
	return buildPowerTable(ctx, modmath.Inverse(zeta, q), q, n, obs, index)
}

// buildPowerTable fills table[i] = base^i mod q incrementally, reporting
// progress and honoring cancellation every progressReportStep entries.
func buildPowerTable(ctx context.Context, base, q uint64, n int, obs ProgressObserver, index int) ([]uint64, error) {
	table := make([]uint64, n)
	for i := 0; i < n; i++ {
		table[i] = modmath.Pow(base, uint64(i), q)
		if (i+1)%progressReportStep == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			reportProgress(obs, index, i+1, n)
		}
	}
	reportProgress(obs, index, n, n)
	return table, nil
}
