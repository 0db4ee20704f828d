// Package orchestration coordinates the concurrent derivation of NTT
// constants and turns the outcome into user-facing reporting.
package orchestration

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kriskwiatkowski/mlkem-prime-roots/internal/cli"
	"github.com/kriskwiatkowski/mlkem-prime-roots/internal/config"
	apperrors "github.com/kriskwiatkowski/mlkem-prime-roots/internal/errors"
	"github.com/kriskwiatkowski/mlkem-prime-roots/internal/nttconst"
)

// Result encapsulates the outcome of a full derivation run: the discovered
// primitive roots, the resolved root of unity, its power tables and the
// twiddle schedule, plus timing and error information.
type Result struct {
	// PrimitiveRoots lists the discovered primitive roots modulo q.
	PrimitiveRoots []uint64
	// Zeta is the resolved primitive n-th root of unity.
	Zeta uint64
	// Forward holds zeta^i mod q for i in [0, n).
	Forward []uint64
	// Inverse holds zeta^(-i) mod q for i in [0, n).
	Inverse []uint64
	// Twiddles holds the bit-reversed twiddle-factor schedule.
	Twiddles []uint64
	// Duration is the time taken by the full run.
	Duration time.Duration
	// Err contains any error that occurred during the run.
	Err error
}

// Derivation indices reported to the progress display. The forward table,
// inverse table and twiddle schedule run as independent goroutines and each
// reports under its own index.
const (
	forwardIndex = iota
	inverseIndex
	twiddleIndex
	numDerivations
)

// ProgressBufferMultiplier defines the buffer size multiplier for the
// progress channel. A larger buffer reduces the likelihood of blocking
// derivation goroutines when the UI is slow to consume updates.
const ProgressBufferMultiplier = 5

// ResolveZeta determines the primitive n-th root of unity to build tables
// on. A non-zero params.Zeta is taken as an explicit request and checked for
// exact order n; zero requests discovery from the field's first primitive
// root.
//
// Parameters:
//   - params: The validated field parameters.
//
// Returns:
//   - uint64: The resolved root of unity.
//   - error: A ValidationError if an explicitly requested zeta does not have
//     order n, or ErrNoRoot if no n-th root exists in the field.
func ResolveZeta(params nttconst.Params) (uint64, error) {
	if params.Zeta != 0 {
		if !nttconst.VerifyZeta(params.Zeta, params.N, params.Q) {
			return 0, apperrors.NewValidationError("zeta",
				fmt.Sprintf("%d is not a primitive %dth root of unity modulo %d", params.Zeta, params.N, params.Q),
				params.Zeta)
		}
		return params.Zeta, nil
	}

	zeta, ok := nttconst.FindNthRoot(params.N, params.Q)
	if !ok {
		return 0, apperrors.ErrNoRoot
	}
	return zeta, nil
}

// ExecuteDerivations orchestrates the concurrent derivation of all NTT
// constants for the configured field.
//
// It discovers the field's primitive roots, resolves the root of unity,
// then builds the forward table, inverse table and twiddle schedule in
// parallel goroutines while a dedicated display goroutine renders their
// aggregated progress. This function is the core of the application's
// concurrency model.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - cfg: The application configuration (field parameters, root count).
//   - out: The io.Writer for displaying progress updates.
//
// Returns:
//   - Result: The complete outcome of the run.
func ExecuteDerivations(ctx context.Context, cfg config.AppConfig, out io.Writer) Result {
	startTime := time.Now()
	params := cfg.ToParams()

	roots := nttconst.FindPrimitiveRoots(params.Q, cfg.RootCount)

	zeta, err := ResolveZeta(params)
	if err != nil {
		return Result{
			PrimitiveRoots: roots,
			Duration:       time.Since(startTime),
			Err:            err,
		}
	}

	progressChan := make(chan nttconst.ProgressUpdate, numDerivations*ProgressBufferMultiplier)
	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go cli.DisplayProgress(&displayWg, progressChan, numDerivations, out)

	obs := nttconst.NewChannelObserver(progressChan)
	n := int(params.N)

	var forward, inverse, twiddles []uint64
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var e error
		forward, e = nttconst.ForwardTable(gctx, zeta, params.Q, n, obs, forwardIndex)
		return e
	})
	g.Go(func() error {
		var e error
		inverse, e = nttconst.InverseTable(gctx, zeta, params.Q, n, obs, inverseIndex)
		return e
	})
	g.Go(func() error {
		var e error
		twiddles, e = nttconst.TwiddleScheduleContext(gctx, zeta, params.Q, n, obs, twiddleIndex)
		return e
	})

	err = g.Wait()
	close(progressChan)
	displayWg.Wait()

	if err != nil {
		return Result{
			PrimitiveRoots: roots,
			Zeta:           zeta,
			Duration:       time.Since(startTime),
			Err:            apperrors.DerivationError{Cause: err},
		}
	}

	return Result{
		PrimitiveRoots: roots,
		Zeta:           zeta,
		Forward:        forward,
		Inverse:        inverse,
		Twiddles:       twiddles,
		Duration:       time.Since(startTime),
	}
}

// ReportResult processes the outcome of a run and renders it to the user.
//
// It separates reporting from computation: ExecuteDerivations never writes
// the constants itself, so alternative frontends (HTTP, JSON) can reuse the
// raw Result. On failure the error is routed through the shared handler to
// derive the exit code.
//
// Parameters:
//   - result: The run outcome to report.
//   - cfg: The application configuration.
//   - out: The io.Writer for the report.
//
// Returns:
//   - int: An exit code indicating success (0) or the type of failure.
func ReportResult(result Result, cfg config.AppConfig, out io.Writer) int {
	if result.Err != nil {
		code := apperrors.HandleDerivationError(result.Err, result.Duration, out, cli.CLIColorProvider{})
		if code == apperrors.ExitErrorGeneric && isValidationError(result.Err) {
			return apperrors.ExitErrorConfig
		}
		return code
	}

	report := cli.Report{
		Q:              cfg.Q,
		N:              cfg.N,
		Zeta:           result.Zeta,
		PrimitiveRoots: result.PrimitiveRoots,
		Forward:        result.Forward,
		Inverse:        result.Inverse,
		Twiddles:       result.Twiddles,
	}

	err := cli.DisplayConstantsWithConfig(out, report, result.Duration, cli.OutputConfig{
		OutputFile: cfg.OutputFile,
		Quiet:      cfg.Quiet,
		Verbose:    cfg.Verbose,
	})
	if err != nil {
		fmt.Fprintf(out, "%sError writing report: %v%s\n", cli.ColorRed(), err, cli.ColorReset())
		return apperrors.ExitErrorIO
	}

	return apperrors.ExitSuccess
}

// isValidationError reports whether the error chain contains a
// ValidationError, which maps to the configuration exit code.
func isValidationError(err error) bool {
	var verr apperrors.ValidationError
	return errors.As(err, &verr)
}
