package core

import "math"

// DismissPolicy decides whether a released vertical drag closes the view.
type DismissPolicy struct {
	// Velocity is the minimum absolute release velocity, px/ms.
	Velocity float64
	// Offset, when positive, also dismisses on net displacement alone.
	Offset float64
}

// DefaultDismissPolicy dismisses on velocity only.
var DefaultDismissPolicy = DismissPolicy{Velocity: SwipeCloseVelocity}

// ShouldDismiss applies the policy to a drag release. Callers are
// responsible for never asking while zoomed in.
func (p DismissPolicy) ShouldDismiss(velocityY, offsetY float64) bool {
	threshold := p.Velocity
	if threshold <= 0 {
		threshold = SwipeCloseVelocity
	}
	if math.Abs(Finite(velocityY)) > threshold {
		return true
	}
	return p.Offset > 0 && math.Abs(Finite(offsetY)) >= p.Offset
}
