package interact

import "time"

const (
	velocityHorizon = 100 * time.Millisecond
	maxSamples      = 20
)

type sample struct {
	t time.Duration
	v float64
}

// VelocityTracker estimates pointer velocity along one axis from recent
// samples with a least squares line fit.
type VelocityTracker struct {
	samples []sample
}

// Reset drops all samples.
func (vt *VelocityTracker) Reset() {
	vt.samples = vt.samples[:0]
}

// Add records a position at event time t.
func (vt *VelocityTracker) Add(t time.Duration, pos float64) {
	if n := len(vt.samples); n > 0 && t < vt.samples[n-1].t {
		// Out of order timestamps invalidate the history.
		vt.Reset()
	}
	if len(vt.samples) == maxSamples {
		copy(vt.samples, vt.samples[1:])
		vt.samples = vt.samples[:maxSamples-1]
	}
	vt.samples = append(vt.samples, sample{t: t, v: pos})
}

// Estimate returns the velocity in position units per millisecond over
// the samples within the horizon of the latest one. Fewer than two
// usable samples yield zero.
func (vt *VelocityTracker) Estimate() float64 {
	n := len(vt.samples)
	if n < 2 {
		return 0
	}
	last := vt.samples[n-1].t
	var window []sample
	for _, s := range vt.samples {
		if last-s.t <= velocityHorizon {
			window = append(window, s)
		}
	}
	if len(window) < 2 {
		return 0
	}

	var sumT, sumV, sumTT, sumTV float64
	for _, s := range window {
		t := float64(s.t-last) / float64(time.Millisecond)
		sumT += t
		sumV += s.v
		sumTT += t * t
		sumTV += t * s.v
	}
	k := float64(len(window))
	den := k*sumTT - sumT*sumT
	if den == 0 {
		return 0
	}
	return (k*sumTV - sumT*sumV) / den
}
