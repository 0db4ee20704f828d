// Package parallel provides small synchronization helpers for running
// independent pieces of work concurrently.
package parallel

import "sync"

// ErrorCollector accumulates errors from concurrent goroutines in a
// thread-safe manner, keeping only the first error reported.
// The zero value is ready for use.
type ErrorCollector struct {
	mu  sync.Mutex
	err error
}

// SetError records an error if no error has been recorded yet.
// Nil errors are ignored, so callers can report unconditionally.
//
// Parameters:
//   - err: The error to record (may be nil).
func (ec *ErrorCollector) SetError(err error) {
	if err == nil {
		return
	}
	ec.mu.Lock()
	defer ec.mu.Unlock()
	if ec.err == nil {
		ec.err = err
	}
}

// Err returns the first recorded error, or nil if none occurred.
//
// Returns:
//   - error: The first error reported to the collector.
func (ec *ErrorCollector) Err() error {
	ec.mu.Lock()
	defer ec.mu.Unlock()
	return ec.err
}
