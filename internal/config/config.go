// Package config provides the configuration management for the nttgen
// application. It defines the data structure for the configuration, handles
// the parsing of command-line arguments, and performs validation on the
// configuration values.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	apperrors "github.com/kriskwiatkowski/mlkem-prime-roots/internal/errors"
	"github.com/kriskwiatkowski/mlkem-prime-roots/internal/nttconst"
)

const (
	// EnvPrefix is the prefix for all environment variables used by nttgen.
	// Environment variables provide an alternative to CLI flags for
	// configuration, following the 12-Factor App methodology.
	EnvPrefix = "NTTGEN_"
)

// Default configuration values.
// These can be overridden via command-line flags or environment variables.
const (
	// DefaultTimeout is the default derivation timeout.
	DefaultTimeout = 1 * time.Minute
	// DefaultPort is the default server port.
	DefaultPort = "8080"
	// DefaultRootCount is the default number of primitive roots to report.
	DefaultRootCount = 10
	// DefaultOutputFile is the default path of the persisted text report.
	DefaultOutputFile = "mlkem_roots_output.txt"
)

// AppConfig aggregates the application's configuration parameters, parsed
// from command-line flags. It encapsulates all settings that control a run,
// from the field parameters to output and server options.
type AppConfig struct {
	// Q is the prime field modulus.
	Q uint64
	// N is the transform size (a power of two).
	N uint64
	// Zeta is the primitive N-th root of unity to use. Zero requests
	// derivation from the field's first primitive root.
	Zeta uint64
	// RootCount is the number of primitive roots to discover and report.
	RootCount int
	// Verbose, if true, prints the full tables instead of a preview.
	Verbose bool
	// Timeout sets the maximum duration for the derivation.
	Timeout time.Duration
	// OutputFile is the path of the persisted text report ("" disables it).
	OutputFile string
	// JSONOutput, if true, outputs the constants in JSON format.
	JSONOutput bool
	// Quiet mode - minimal output for scripting purposes.
	// Suppresses progress display, banners, and informational messages.
	Quiet bool
	// NoColor, if true, disables all color output in the CLI.
	// Also respects the NO_COLOR environment variable.
	NoColor bool
	// ServerMode, if true, starts the application as an HTTP server.
	ServerMode bool
	// Port specifies the port to listen on in server mode.
	Port string
}

// ToParams converts the application configuration into the field parameters
// consumed by the derivation engine.
func (c AppConfig) ToParams() nttconst.Params {
	return nttconst.Params{Q: c.Q, N: c.N, Zeta: c.Zeta}
}

// Validate checks the semantic consistency of the configuration parameters.
// It ensures that numerical values are within valid ranges and that the
// field parameters are structurally sound.
//
// Returns:
//   - error: An error of type ConfigError if the configuration is invalid,
//     nil otherwise.
func (c AppConfig) Validate() error {
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout value must be strictly positive")
	}
	if c.RootCount <= 0 {
		return apperrors.NewConfigError("primitive-root count must be strictly positive: %d", c.RootCount)
	}
	if err := c.ToParams().Validate(); err != nil {
		return apperrors.NewConfigError("invalid field parameters: %v", err)
	}
	return nil
}

// ParseConfig parses the command-line arguments and populates an AppConfig
// struct. It defines all the command-line flags, sets their default values,
// and handles the parsing process. After parsing, it performs validation on
// the resulting configuration.
//
// The function is designed to be testable by allowing the input arguments
// and output writer to be specified.
//
// Parameters:
//   - programName: The name of the program, used in the usage message.
//   - args: A slice of strings representing the command-line arguments
//     (typically os.Args[1:]).
//   - errorWriter: An io.Writer where parsing errors and usage information
//     will be printed.
//
// Returns:
//   - AppConfig: The populated configuration struct.
//   - error: An error if flag parsing fails or validation fails.
func ParseConfig(programName string, args []string, errorWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)

	config := AppConfig{}
	fs.Uint64Var(&config.Q, "q", nttconst.DefaultQ, "Prime field modulus.")
	fs.Uint64Var(&config.N, "n", nttconst.DefaultN, "Transform size (a power of two).")
	fs.Uint64Var(&config.Zeta, "zeta", nttconst.DefaultZeta, "Primitive n-th root of unity to use (0 to derive one; ignored in favor of derivation when -q or -n is customized without it).")
	fs.IntVar(&config.RootCount, "roots", DefaultRootCount, "Number of primitive roots to discover and report.")
	fs.BoolVar(&config.Verbose, "v", false, "Display the full tables instead of a preview.")
	fs.BoolVar(&config.Verbose, "verbose", false, "Alias for -v.")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum execution time for the derivation.")
	fs.StringVar(&config.OutputFile, "output", DefaultOutputFile, "Output file path for the text report (empty to disable).")
	fs.StringVar(&config.OutputFile, "o", DefaultOutputFile, "Output file path (shorthand).")
	fs.BoolVar(&config.JSONOutput, "json", false, "Output constants in JSON format.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Quiet mode - minimal output for scripts.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output (also respects NO_COLOR env var).")
	fs.BoolVar(&config.ServerMode, "server", false, "Start in HTTP server mode.")
	fs.StringVar(&config.Port, "port", DefaultPort, "Port to listen on in server mode.")

	setCustomUsage(fs)

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	// Apply environment variable overrides for flags not explicitly set
	applyEnvOverrides(&config, fs)

	// The built-in zeta belongs to the default field. When q or n is
	// customized without an explicit zeta, switch to derivation instead of
	// failing order verification against a foreign root.
	if qSet, nSet, zetaSet := explicitFieldParams(fs); (qSet || nSet) && !zetaSet {
		config.Zeta = 0
	}

	if err := config.Validate(); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		fs.Usage()
		return AppConfig{}, errors.New("invalid configuration")
	}
	return config, nil
}

// setCustomUsage installs a usage message describing the tool and its flags.
func setCustomUsage(fs *flag.FlagSet) {
	fs.Usage = func() {
		out := fs.Output()
		fmt.Fprintf(out, "Usage: %s [options]\n\n", fs.Name())
		fmt.Fprintf(out, "Derives the NTT constants of a prime field: primitive roots, a primitive\n")
		fmt.Fprintf(out, "n-th root of unity, its forward/inverse power tables and the bit-reversed\n")
		fmt.Fprintf(out, "twiddle-factor schedule. Defaults target the ML-KEM field (q=3329, n=256).\n\n")
		fmt.Fprintf(out, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(out, "\nEnvironment variables (override unset flags): %sQ, %sN, %sZETA,\n", EnvPrefix, EnvPrefix, EnvPrefix)
		fmt.Fprintf(out, "%sROOTS, %sTIMEOUT, %sOUTPUT, %sPORT, %sQUIET, %sNO_COLOR\n",
			EnvPrefix, EnvPrefix, EnvPrefix, EnvPrefix, EnvPrefix, EnvPrefix)
	}
}
