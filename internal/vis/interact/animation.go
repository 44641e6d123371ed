package interact

import "time"

// Animation durations.
const (
	ZoomDuration   = 250 * time.Millisecond
	SettleDuration = 200 * time.Millisecond
)

// Frame is one scroll view position.
type Frame struct {
	Zoom    float64
	OffsetX float64
	OffsetY float64
}

// Animation interpolates between two frames over time with an ease-out
// curve. Starting a new animation replaces the old one.
type Animation struct {
	Active   bool
	from, to Frame
	start    time.Time
	duration time.Duration
}

// Start begins animating from one frame to another.
func (a *Animation) Start(from, to Frame, now time.Time, d time.Duration) {
	a.from, a.to = from, to
	a.start = now
	a.duration = d
	a.Active = true
}

// Stop ends the animation without jumping to the target.
func (a *Animation) Stop() {
	a.Active = false
}

// Target returns the frame being animated to.
func (a *Animation) Target() Frame {
	return a.to
}

// Progress returns eased progress as 0-1.
func (a *Animation) Progress(now time.Time) float64 {
	if a.duration <= 0 {
		return 1
	}
	t := now.Sub(a.start).Seconds() / a.duration.Seconds()
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	// Cubic ease-out.
	u := 1 - t
	return 1 - u*u*u
}

// Advance returns the frame at now, finishing the animation at its end.
func (a *Animation) Advance(now time.Time) Frame {
	p := a.Progress(now)
	if p >= 1 {
		a.Active = false
		return a.to
	}
	return Frame{
		Zoom:    lerp(a.from.Zoom, a.to.Zoom, p),
		OffsetX: lerp(a.from.OffsetX, a.to.OffsetX, p),
		OffsetY: lerp(a.from.OffsetY, a.to.OffsetY, p),
	}
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
