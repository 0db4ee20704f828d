package app

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/kriskwiatkowski/mlkem-prime-roots/internal/cli"
	"github.com/kriskwiatkowski/mlkem-prime-roots/internal/config"
	apperrors "github.com/kriskwiatkowski/mlkem-prime-roots/internal/errors"
	"github.com/kriskwiatkowski/mlkem-prime-roots/internal/orchestration"
	"github.com/kriskwiatkowski/mlkem-prime-roots/internal/server"
	"github.com/kriskwiatkowski/mlkem-prime-roots/internal/ui"
)

// Application represents the nttgen application instance.
// It encapsulates the configuration and provides methods to run
// the application in its various modes (CLI, server).
type Application struct {
	// Config holds the parsed application configuration.
	Config config.AppConfig
	// ErrWriter is the writer for error output (typically os.Stderr).
	ErrWriter io.Writer
}

// New creates a new Application instance by parsing command-line arguments.
// It validates the configuration and returns an error if parsing or validation fails.
//
// Parameters:
//   - args: The command-line arguments (typically os.Args).
//   - errWriter: The writer for error output.
//
// Returns:
//   - *Application: A new application instance.
//   - error: An error if configuration parsing or validation fails.
func New(args []string, errWriter io.Writer) (*Application, error) {
	// args[0] is program name, args[1:] are the actual arguments
	programName := "nttgen"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}

	return &Application{
		Config:    cfg,
		ErrWriter: errWriter,
	}, nil
}

// Run executes the application based on the configured mode.
// It dispatches to the appropriate handler (server or CLI derivation).
//
// Parameters:
//   - ctx: The context for managing cancellation and timeouts.
//   - out: The writer for standard output.
//
// Returns:
//   - int: An exit code (0 for success, non-zero for errors).
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	// Initialize CLI theme (respects --no-color flag and NO_COLOR env var)
	ui.InitTheme(a.Config.NoColor)

	// Server mode
	if a.Config.ServerMode {
		return a.runServer()
	}

	// Standard CLI derivation mode
	return a.runDerive(ctx, out)
}

// runServer starts the HTTP server mode.
func (a *Application) runServer() int {
	srv := server.NewServer(a.Config)
	if err := srv.Start(); err != nil {
		fmt.Fprintf(a.ErrWriter, "Server error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// runDerive orchestrates the execution of the CLI derivation command.
func (a *Application) runDerive(ctx context.Context, out io.Writer) int {
	// Setup lifecycle (timeout + signals)
	ctx, cancelFuncs := SetupLifecycle(ctx, a.Config.Timeout)
	defer cancelFuncs.Cleanup()

	// Skip the banner in quiet and JSON modes
	if !a.Config.JSONOutput && !a.Config.Quiet {
		cli.PrintRunConfig(out, a.Config.Q, a.Config.N, a.Config.Zeta, a.Config.Timeout)
	}

	// In quiet and JSON modes, use a discard writer for progress display
	progressOut := out
	if a.Config.Quiet || a.Config.JSONOutput {
		progressOut = io.Discard
	}

	result := orchestration.ExecuteDerivations(ctx, a.Config, progressOut)

	// Handle JSON output
	if a.Config.JSONOutput {
		return a.printJSONResult(result, out)
	}

	return orchestration.ReportResult(result, a.Config, out)
}

// IsHelpError checks if the error is a help flag error (--help was used).
// This is useful for determining if the application should exit with success
// after displaying help text.
//
// Parameters:
//   - err: The error to check.
//
// Returns:
//   - bool: True if the error indicates help was requested.
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

// jsonConstants represents the derived constants in JSON format.
type jsonConstants struct {
	Q              uint64   `json:"q"`
	N              uint64   `json:"n"`
	Zeta           uint64   `json:"zeta"`
	PrimitiveRoots []uint64 `json:"primitive_roots"`
	Forward        []uint64 `json:"forward,omitempty"`
	Inverse        []uint64 `json:"inverse,omitempty"`
	Twiddles       []uint64 `json:"twiddles,omitempty"`
	Duration       string   `json:"duration"`
	Error          string   `json:"error,omitempty"`
}

// printJSONResult formats the run outcome as JSON and writes it to the
// output. This is useful for programmatic consumption of the constants.
func (a *Application) printJSONResult(result orchestration.Result, out io.Writer) int {
	jc := jsonConstants{
		Q:              a.Config.Q,
		N:              a.Config.N,
		Zeta:           result.Zeta,
		PrimitiveRoots: result.PrimitiveRoots,
		Duration:       result.Duration.String(),
	}
	if result.Err != nil {
		jc.Error = result.Err.Error()
	} else {
		jc.Forward = result.Forward
		jc.Inverse = result.Inverse
		jc.Twiddles = result.Twiddles
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(jc); err != nil {
		return apperrors.ExitErrorGeneric
	}

	if result.Err != nil {
		return apperrors.HandleDerivationError(result.Err, result.Duration, io.Discard, nil)
	}
	return apperrors.ExitSuccess
}
