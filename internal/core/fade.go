package core

import "math"

// Swipe-to-close thresholds.
const (
	SwipeCloseOffset   = 75.0 // px
	SwipeCloseVelocity = 0.55 // px per ms
)

// fadeFloor is the opacity reached at the swipe offset threshold.
const fadeFloor = 0.5

// Fade maps a vertical drag offset to image opacity: 1 at rest, fading
// linearly to 0.5 at ±limit and clamped beyond.
func Fade(offset, limit float64) float64 {
	offset = math.Abs(Finite(offset))
	if limit <= 0 {
		limit = SwipeCloseOffset
	}
	if offset >= limit {
		return fadeFloor
	}
	return 1 - (1-fadeFloor)*offset/limit
}
