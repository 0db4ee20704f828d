package nttconst

// ProgressUpdate carries a normalized progress notification from a running
// derivation to a display consumer.
type ProgressUpdate struct {
	// DerivationIndex identifies which derivation the update belongs to.
	DerivationIndex int
	// Value is the normalized progress in [0.0, 1.0].
	Value float64
}

// ProgressObserver receives progress notifications from derivations.
// Implementations must be safe for concurrent use: the table builders run
// in parallel and report independently.
type ProgressObserver interface {
	// Update reports the progress of one derivation.
	//
	// Parameters:
	//   - derivationIndex: The derivation instance identifier.
	//   - progress: The normalized progress value (0.0 to 1.0).
	Update(derivationIndex int, progress float64)
}

// progressReportStep is the number of table entries between two progress
// notifications. Small enough to keep the display lively for large n,
// large enough not to dominate the loop for small n.
const progressReportStep = 32

// reportProgress notifies the observer, tolerating a nil observer so the
// pure entry points can pass nothing.
func reportProgress(obs ProgressObserver, idx int, done, total int) {
	if obs == nil || total <= 0 {
		return
	}
	obs.Update(idx, float64(done)/float64(total))
}
