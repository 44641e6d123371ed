package interact

import (
	"math"
	"testing"
	"time"
)

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

func TestVelocityConstant(t *testing.T) {
	var vt VelocityTracker
	for i := 0; i <= 5; i++ {
		vt.Add(ms(i*10), float64(i*10)*0.8)
	}
	if got := vt.Estimate(); math.Abs(got-0.8) > 1e-9 {
		t.Errorf("Estimate() = %v, want 0.8", got)
	}
}

func TestVelocityTooFewSamples(t *testing.T) {
	var vt VelocityTracker
	if got := vt.Estimate(); got != 0 {
		t.Errorf("empty Estimate() = %v", got)
	}
	vt.Add(ms(5), 100)
	if got := vt.Estimate(); got != 0 {
		t.Errorf("single sample Estimate() = %v", got)
	}
	vt.Add(ms(5), 120)
	if got := vt.Estimate(); got != 0 {
		t.Errorf("same timestamp Estimate() = %v", got)
	}
}

func TestVelocityIgnoresStaleSamples(t *testing.T) {
	var vt VelocityTracker
	// A fast movement long ago, then a slow one.
	vt.Add(ms(0), 0)
	vt.Add(ms(10), 500)
	for i := 0; i <= 4; i++ {
		vt.Add(ms(500+i*20), 500+float64(i*20)*0.1)
	}
	if got := vt.Estimate(); math.Abs(got-0.1) > 1e-9 {
		t.Errorf("Estimate() = %v, want 0.1", got)
	}
}

func TestVelocityResetOnTimeTravel(t *testing.T) {
	var vt VelocityTracker
	vt.Add(ms(100), 0)
	vt.Add(ms(110), 50)
	vt.Add(ms(50), 0)
	if got := vt.Estimate(); got != 0 {
		t.Errorf("Estimate() = %v, want 0 after reset", got)
	}
}

func TestVelocityBounded(t *testing.T) {
	var vt VelocityTracker
	for i := 0; i < 3*maxSamples; i++ {
		vt.Add(ms(i), float64(i))
	}
	if len(vt.samples) != maxSamples {
		t.Errorf("kept %d samples, want %d", len(vt.samples), maxSamples)
	}
}
