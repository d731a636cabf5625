package format

import (
	"fmt"
	"strings"
	"time"
)

const (
	// etaSmoothing is the weight of the newest rate sample in the
	// exponential moving average used for ETA estimates.
	etaSmoothing = 0.3
	// maxETA caps estimates produced from very slow early rates.
	maxETA = 24 * time.Hour
)

// ProgressWithETA tracks the progress of a single generation and derives a
// smoothed estimate of the remaining time. It is not safe for concurrent use.
type ProgressWithETA struct {
	progress     float64
	lastUpdate   time.Time
	progressRate float64 // fraction per second, smoothed
}

// NewProgressWithETA creates a tracker starting at zero progress.
func NewProgressWithETA() *ProgressWithETA {
	return &ProgressWithETA{lastUpdate: time.Now()}
}

// Update records a new progress value, clamped to [0, 1], and returns the
// updated ETA.
func (p *ProgressWithETA) Update(value float64) time.Duration {
	value = clamp01(value)
	now := time.Now()
	if dt := now.Sub(p.lastUpdate).Seconds(); dt > 0 && value > p.progress {
		rate := (value - p.progress) / dt
		if p.progressRate == 0 {
			p.progressRate = rate
		} else {
			p.progressRate = etaSmoothing*rate + (1-etaSmoothing)*p.progressRate
		}
	}
	p.progress = value
	p.lastUpdate = now
	return p.GetETA()
}

// Progress returns the last recorded progress value.
func (p *ProgressWithETA) Progress() float64 { return p.progress }

// GetETA returns the estimated remaining time, or 0 when no estimate is
// available yet.
func (p *ProgressWithETA) GetETA() time.Duration {
	if p.progressRate <= 0 || p.progress <= 0 {
		return 0
	}
	eta := time.Duration((1 - p.progress) / p.progressRate * float64(time.Second))
	if eta > maxETA {
		return maxETA
	}
	return eta
}

// ProgressBar renders a bar of the given width for a progress value in [0, 1].
func ProgressBar(progress float64, length int) string {
	count := int(clamp01(progress) * float64(length))
	var b strings.Builder
	b.Grow(length * 3)
	for i := 0; i < length; i++ {
		if i < count {
			b.WriteRune('█')
		} else {
			b.WriteRune('░')
		}
	}
	return b.String()
}

// FormatProgressBarWithETA renders "[bar]  42.0% ETA: 3s".
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	progress = clamp01(progress)
	etaText := FormatETA(eta)
	if progress >= 1 {
		etaText = "done"
	}
	return fmt.Sprintf("[%s] %5.1f%% ETA: %s", ProgressBar(progress, width), progress*100, etaText)
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
