package cli

import (
	"fmt"
	"time"
)

const (
	// etaSampleInterval is the minimum interval between rate samples. Sampling
	// less often than every update smooths the estimate against bursty
	// progress reports.
	etaSampleInterval = 100 * time.Millisecond
	// maxETA caps the estimate so a near-stalled derivation does not report
	// an absurd remaining time.
	maxETA = 24 * time.Hour
)

// ProgressWithETA extends ProgressState with an estimate of the remaining
// time, derived from the observed rate of progress.
type ProgressWithETA struct {
	*ProgressState
	numDerivations int
	startTime      time.Time
	lastSample     time.Time
	lastAverage    float64
	progressRate   float64 // fraction of total progress per second
}

// NewProgressWithETA creates a progress tracker with ETA estimation for the
// specified number of derivations.
func NewProgressWithETA(numDerivations int) *ProgressWithETA {
	now := time.Now()
	return &ProgressWithETA{
		ProgressState:  NewProgressState(numDerivations),
		numDerivations: numDerivations,
		startTime:      now,
		lastSample:     now,
	}
}

// UpdateWithETA records a progress value for a derivation and refreshes the
// rate estimate.
//
// Parameters:
//   - index: The index of the derivation.
//   - value: The progress value (0.0 to 1.0).
//
// Returns:
//   - float64: The new average progress across all derivations.
//   - time.Duration: The current ETA (0 while still calculating).
func (p *ProgressWithETA) UpdateWithETA(index int, value float64) (float64, time.Duration) {
	p.Update(index, value)
	avg := p.CalculateAverage()

	now := time.Now()
	if elapsed := now.Sub(p.lastSample); elapsed >= etaSampleInterval {
		if delta := avg - p.lastAverage; delta > 0 {
			p.progressRate = delta / elapsed.Seconds()
		}
		p.lastSample = now
		p.lastAverage = avg
	}

	return avg, p.GetETA()
}

// GetETA returns the estimated remaining time based on the last observed
// progress rate. It returns 0 when no rate has been established yet.
func (p *ProgressWithETA) GetETA() time.Duration {
	if p.progressRate <= 0 {
		return 0
	}
	remaining := 1.0 - p.CalculateAverage()
	if remaining <= 0 {
		return 0
	}
	eta := time.Duration(remaining / p.progressRate * float64(time.Second))
	if eta > maxETA {
		return maxETA
	}
	return eta
}

// FormatETA formats an ETA duration for display. Zero or negative values
// render as "calculating..." since no rate has been established.
//
// Parameters:
//   - eta: The estimated remaining duration.
//
// Returns:
//   - string: A compact human-readable form such as "45s", "2m30s" or "1h15m".
func FormatETA(eta time.Duration) string {
	if eta <= 0 {
		return "calculating..."
	}
	if eta < time.Second {
		return "< 1s"
	}

	hours := int(eta.Hours())
	minutes := int(eta.Minutes()) % 60
	seconds := int(eta.Seconds()) % 60

	switch {
	case hours > 0 && minutes > 0:
		return fmt.Sprintf("%dh%dm", hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh", hours)
	case minutes > 0 && seconds > 0:
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%dm", minutes)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}

// FormatProgressBarWithETA renders a progress bar with a percentage and ETA
// suffix in a single line.
//
// Parameters:
//   - progress: The normalized progress value (0.0 to 1.0).
//   - eta: The estimated remaining duration.
//   - width: The character width of the bar.
//
// Returns:
//   - string: The formatted line.
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	return fmt.Sprintf("%6.2f%% [%s] ETA: %s", progress*100, progressBar(progress, width), FormatETA(eta))
}
