package nttconst

import (
	"context"

	"github.com/kriskwiatkowski/mlkem-prime-roots/internal/modmath"
)

// TwiddleSchedule derives the per-level twiddle-factor sequence for a
// butterfly-structured NTT of size n over the field q, using zeta as the
// primitive n-th root of unity.
//
// For level from log2(n)-1 down to 1, with step = 2^level, each butterfly
// block starting at i (stepping by 2*step across [0, n)) contributes the
// factor zeta^BitReverse(j/2, log2(n)-1) where j = i + step. The flat
// insertion order (outer loop descending by level, inner loop ascending by
// block start) is part of the contract: consumers index the sequence by
// butterfly-stage position.
//
// The schedule has n/2 - 1 entries for n >= 4 and is empty for n <= 2.
//
// Parameters:
//   - zeta: The primitive n-th root of unity.
//   - q: The prime modulus.
//   - n: The transform size (a power of two).
//
// Returns:
//   - []uint64: The flat twiddle-factor schedule.
func TwiddleSchedule(zeta, q uint64, n int) []uint64 {
	schedule, _ := TwiddleScheduleContext(context.Background(), zeta, q, n, nil, 0)
	return schedule
}

// TwiddleScheduleContext is the cancellable, progress-reporting variant of
// TwiddleSchedule.
//
// Parameters:
//   - ctx: The context for cancellation, checked once per level.
//   - zeta: The primitive n-th root of unity.
//   - q: The prime modulus.
//   - n: The transform size (a power of two).
//   - obs: The progress observer (may be nil).
//   - index: The derivation index reported to the observer.
//
// Returns:
//   - []uint64: The flat twiddle-factor schedule.
//   - error: ctx.Err() if the context was cancelled mid-build.
func TwiddleScheduleContext(ctx context.Context, zeta, q uint64, n int, obs ProgressObserver, index int) ([]uint64, error) {
	if n < 4 {
		reportProgress(obs, index, 1, 1)
		return nil, nil
	}

	levels := log2(uint64(n))
	width := levels - 1
	total := n/2 - 1

	schedule := make([]uint64, 0, total)
	for level := levels - 1; level >= 1; level-- {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		step := 1 << level
		for i := 0; i < n; i += 2 * step {
			j := i + step
			br := BitReverse(uint64(j/2), width)
			schedule = append(schedule, modmath.Pow(zeta, br, q))
		}
		reportProgress(obs, index, len(schedule), total)
	}
	return schedule, nil
}
