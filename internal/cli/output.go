// Package cli provides output utilities for exporting derived NTT constants.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kriskwiatkowski/mlkem-prime-roots/internal/modmath"
)

// Report aggregates every constant derived during a run, ready for display
// or export. It mirrors the layout of the persisted text report.
type Report struct {
	// Q is the prime field modulus.
	Q uint64
	// N is the transform size.
	N uint64
	// Zeta is the primitive N-th root of unity the tables are built on.
	Zeta uint64
	// PrimitiveRoots lists the discovered primitive roots modulo Q.
	PrimitiveRoots []uint64
	// Forward holds zeta^i mod Q for i in [0, N).
	Forward []uint64
	// Inverse holds zeta^(-i) mod Q for i in [0, N).
	Inverse []uint64
	// Twiddles holds the bit-reversed twiddle-factor schedule.
	Twiddles []uint64
}

// OutputConfig holds configuration for constants output.
type OutputConfig struct {
	// OutputFile is the path of the text report (empty for no file output).
	OutputFile string
	// Quiet mode suppresses all but the essential values.
	Quiet bool
	// Verbose prints the full tables instead of a preview.
	Verbose bool
}

// WriteReportFile persists the derived constants as a text report. The
// layout lists the field parameters followed by the complete forward table,
// inverse table and twiddle schedule, one labeled entry per line.
//
// Parameters:
//   - path: The destination file path.
//   - r: The constants to persist.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteReportFile(path string, r Report) error {
	if path == "" {
		return nil
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := WriteReport(file, r); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// WriteReport renders the text report to an arbitrary writer. Splitting the
// rendering from file handling keeps the format testable without touching
// the filesystem.
func WriteReport(w io.Writer, r Report) error {
	fmt.Fprintf(w, "ML-KEM Prime Roots and NTT Parameters\n")
	fmt.Fprintf(w, "%s\n\n", strings.Repeat("=", 40))
	fmt.Fprintf(w, "Prime modulus (q): %d\n", r.Q)
	fmt.Fprintf(w, "Polynomial degree (n): %d\n", r.N)
	fmt.Fprintf(w, "Primitive root (ζ): %d\n\n", r.Zeta)

	fmt.Fprintf(w, "Forward NTT roots (ζ^i mod q):\n")
	for i, v := range r.Forward {
		fmt.Fprintf(w, "zeta_powers[%3d] = %4d\n", i, v)
	}

	fmt.Fprintf(w, "\nInverse NTT roots (ζ^(-i) mod q):\n")
	for i, v := range r.Inverse {
		fmt.Fprintf(w, "zeta_inv_powers[%3d] = %4d\n", i, v)
	}

	fmt.Fprintf(w, "\nTwiddle factors for NTT (%d total):\n", len(r.Twiddles))
	for i, v := range r.Twiddles {
		fmt.Fprintf(w, "twiddle[%3d] = %4d\n", i, v)
	}

	// Errors on *os.File surface at Close; for in-memory writers Fprintf
	// cannot fail, so a final sync point is enough.
	if f, ok := w.(*os.File); ok {
		return f.Sync()
	}
	return nil
}

// PrintRunConfig displays the field parameters of the current run.
//
// Parameters:
//   - out: The output writer.
//   - q: The prime field modulus.
//   - n: The transform size.
//   - zeta: The requested root of unity (0 when derived).
//   - timeout: The derivation timeout.
func PrintRunConfig(out io.Writer, q, n, zeta uint64, timeout time.Duration) {
	fmt.Fprintf(out, "%s%s%s\n", ColorBold(), strings.Repeat("=", 60), ColorReset())
	fmt.Fprintf(out, "%sML-KEM Prime Roots Calculator%s\n", ColorBold(), ColorReset())
	fmt.Fprintf(out, "%s%s%s\n", ColorBold(), strings.Repeat("=", 60), ColorReset())
	fmt.Fprintf(out, "Prime modulus (q): %s%d%s\n", ColorCyan(), q, ColorReset())
	fmt.Fprintf(out, "Polynomial degree (n): %s%d%s\n", ColorCyan(), n, ColorReset())
	if zeta != 0 {
		fmt.Fprintf(out, "Requested root (ζ): %s%d%s\n", ColorCyan(), zeta, ColorReset())
	} else {
		fmt.Fprintf(out, "Requested root (ζ): %sderive%s\n", ColorYellow(), ColorReset())
	}
	fmt.Fprintf(out, "Timeout: %s%v%s\n\n", ColorCyan(), timeout, ColorReset())
}

// DisplayConstants formats and prints the derived constants. The root of
// unity is re-verified on the spot (ζ^n mod q and its multiplicative order)
// so the console shows the proof alongside the value. In standard mode the
// tables are previewed to their first TablePreviewLimit entries; verbose
// mode prints everything.
//
// Parameters:
//   - out: The output writer.
//   - r: The derived constants.
//   - duration: The time taken for the derivation.
//   - verbose: If true, prints full tables instead of a preview.
func DisplayConstants(out io.Writer, r Report, duration time.Duration, verbose bool) {
	fmt.Fprintf(out, "First %d primitive roots modulo %d:\n", len(r.PrimitiveRoots), r.Q)
	for i, root := range r.PrimitiveRoots {
		fmt.Fprintf(out, "  g_%d = %s%d%s\n", i+1, ColorGreen(), root, ColorReset())
	}

	fmt.Fprintf(out, "\nML-KEM uses ζ = %s%d%s as the primitive %dth root of unity\n",
		ColorMagenta(), r.Zeta, ColorReset(), r.N)
	displayZetaVerification(out, r)

	displayTable(out, "Forward NTT roots (ζ^i mod q)", "ζ^%2d", r.Forward, verbose)
	displayTable(out, "Inverse NTT roots (ζ^(-i) mod q)", "ζ^-%d", r.Inverse, verbose)
	displayTable(out, fmt.Sprintf("Twiddle factors (%d total)", len(r.Twiddles)), "w_%2d", r.Twiddles, verbose)

	durationStr := FormatExecutionDuration(duration)
	if duration == 0 {
		durationStr = "< 1µs"
	}
	fmt.Fprintf(out, "\nDerivation time: %s%s%s\n", ColorGreen(), durationStr, ColorReset())
}

// displayZetaVerification prints an independent check of the root of unity:
// ζ^n mod q must be 1 and the multiplicative order of ζ must be exactly n.
func displayZetaVerification(out io.Writer, r Report) {
	zetaN := modmath.Pow(r.Zeta, r.N, r.Q)
	verdict := ColorGreen() + "✓ Correct" + ColorReset()
	if zetaN != 1 {
		verdict = ColorRed() + "✗ Incorrect" + ColorReset()
	}
	fmt.Fprintf(out, "Verification: ζ^%d ≡ %d (mod %d) - %s\n", r.N, zetaN, r.Q, verdict)

	order, ok := modmath.Order(r.Zeta, r.Q)
	orderVerdict := ColorRed() + "✗ Not primitive" + ColorReset()
	if ok && order == r.N {
		orderVerdict = ColorGreen() + "✓ Primitive" + ColorReset()
	}
	fmt.Fprintf(out, "Order of ζ = %d: %d - %s\n", r.Zeta, order, orderVerdict)
}

// displayTable prints a labeled table, truncated to TablePreviewLimit
// entries unless verbose is set.
func displayTable(out io.Writer, title, labelFormat string, values []uint64, verbose bool) {
	limit := len(values)
	truncated := false
	if !verbose && limit > TablePreviewLimit {
		limit = TablePreviewLimit
		truncated = true
	}

	fmt.Fprintf(out, "\n%s%s:%s\n", ColorBold(), title, ColorReset())
	for i := 0; i < limit; i++ {
		fmt.Fprintf(out, "  "+labelFormat+" = %s%4d%s\n", i, ColorCyan(), values[i], ColorReset())
	}
	if truncated {
		fmt.Fprintf(out, "  ...\n")
		fmt.Fprintf(out, "(Tip: use the %s-v%s or %s--verbose%s option to display the full tables)\n",
			ColorYellow(), ColorReset(), ColorYellow(), ColorReset())
	}
}

// DisplayQuietConstants outputs the essential constants in quiet mode, one
// "key=value" pair per line, suitable for scripting.
//
// Parameters:
//   - out: The output writer.
//   - r: The derived constants.
func DisplayQuietConstants(out io.Writer, r Report) {
	fmt.Fprintf(out, "q=%d\n", r.Q)
	fmt.Fprintf(out, "n=%d\n", r.N)
	fmt.Fprintf(out, "zeta=%d\n", r.Zeta)
}

// DisplayConstantsWithConfig displays derived constants with the given
// output configuration. This is a unified function that handles all output
// modes, including the optional text-report export.
//
// Parameters:
//   - out: The output writer.
//   - r: The derived constants.
//   - duration: The time taken for the derivation.
//   - config: Output configuration.
//
// Returns:
//   - error: An error if file output fails.
func DisplayConstantsWithConfig(out io.Writer, r Report, duration time.Duration, config OutputConfig) error {
	if config.Quiet {
		DisplayQuietConstants(out, r)
	} else {
		DisplayConstants(out, r, duration, config.Verbose)
	}

	if config.OutputFile != "" {
		if err := WriteReportFile(config.OutputFile, r); err != nil {
			return err
		}
		if !config.Quiet {
			fmt.Fprintf(out, "\n%s✓ Results saved to: %s%s%s\n",
				ColorGreen(), ColorCyan(), config.OutputFile, ColorReset())
		}
	}

	return nil
}
