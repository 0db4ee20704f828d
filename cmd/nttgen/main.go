// Command nttgen derives the NTT constants of a prime field: primitive
// roots, a primitive n-th root of unity, its forward and inverse power
// tables and the bit-reversed twiddle-factor schedule. Defaults target the
// ML-KEM field (q=3329, n=256, ζ=17).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/kriskwiatkowski/mlkem-prime-roots/internal/app"
	apperrors "github.com/kriskwiatkowski/mlkem-prime-roots/internal/errors"
)

func main() {
	// Handle --version before flag parsing so it works in any position.
	if app.HasVersionFlag(os.Args[1:]) {
		app.PrintVersion(os.Stdout)
		os.Exit(apperrors.ExitSuccess)
	}

	application, err := app.New(os.Args, os.Stderr)
	if err != nil {
		if app.IsHelpError(err) {
			os.Exit(apperrors.ExitSuccess)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(apperrors.ExitErrorConfig)
	}

	os.Exit(application.Run(context.Background(), os.Stdout))
}
