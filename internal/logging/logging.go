// Package logging provides the unified logging interface for the application.
// It wraps zerolog behind a small interface so that components (notably the
// HTTP server) can log without being coupled to a specific backend, and so
// that tests can substitute a capturing logger.
package logging

import (
	"fmt"
	"io"
	"log"

	"github.com/rs/zerolog"
)

// Logger is the minimal logging interface used across the application.
// It intentionally mirrors the standard library surface so that a *log.Logger
// can be adapted when structured logging is not desired.
type Logger interface {
	// Printf logs a formatted message.
	Printf(format string, v ...any)
	// Println logs a message followed by a newline.
	Println(v ...any)
}

// zerologAdapter implements Logger on top of a zerolog.Logger.
// All messages are emitted at Info level with a "component" field.
type zerologAdapter struct {
	logger zerolog.Logger
}

// NewLogger creates a zerolog-backed Logger writing to the given writer.
// The component name is attached to every emitted event.
//
// Parameters:
//   - w: The destination writer (e.g., os.Stdout).
//   - component: A short identifier for the emitting component (e.g., "server").
//
// Returns:
//   - Logger: A structured logger ready for use.
func NewLogger(w io.Writer, component string) Logger {
	zl := zerolog.New(w).With().Timestamp().Str("component", component).Logger()
	return &zerologAdapter{logger: zl}
}

// NewZerologAdapter wraps an existing zerolog.Logger in the Logger interface.
//
// Parameters:
//   - zl: The zerolog logger to wrap.
//
// Returns:
//   - Logger: The adapted logger.
func NewZerologAdapter(zl zerolog.Logger) Logger {
	return &zerologAdapter{logger: zl}
}

// Printf logs a formatted message at Info level.
func (a *zerologAdapter) Printf(format string, v ...any) {
	// zerolog appends no newline; trim the conventional trailing one
	msg := fmt.Sprintf(format, v...)
	if n := len(msg); n > 0 && msg[n-1] == '\n' {
		msg = msg[:n-1]
	}
	a.logger.Info().Msg(msg)
}

// Println logs a message at Info level.
func (a *zerologAdapter) Println(v ...any) {
	a.logger.Info().Msg(fmt.Sprint(v...))
}

// stdLoggerAdapter implements Logger on top of a standard library *log.Logger.
type stdLoggerAdapter struct {
	logger *log.Logger
}

// NewStdLoggerAdapter wraps a standard library logger in the Logger interface.
// This provides backward compatibility with code using log.Logger.
//
// Parameters:
//   - l: The standard logger to wrap.
//
// Returns:
//   - Logger: The adapted logger.
func NewStdLoggerAdapter(l *log.Logger) Logger {
	return &stdLoggerAdapter{logger: l}
}

// Printf logs a formatted message via the wrapped standard logger.
func (a *stdLoggerAdapter) Printf(format string, v ...any) {
	a.logger.Printf(format, v...)
}

// Println logs a message via the wrapped standard logger.
func (a *stdLoggerAdapter) Println(v ...any) {
	a.logger.Println(v...)
}
