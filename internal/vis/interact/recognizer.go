package interact

import (
	"math"
	"time"

	"gioui.org/f32"
	"gioui.org/io/key"
	"gioui.org/io/pointer"

	"github.com/elektrokombinacija/zoomview/internal/vis/state"
)

// Gesture timing and distance defaults.
const (
	DoubleTapDelay = 300 * time.Millisecond
	DefaultSlop    = 8.0 // px
)

type tracked struct {
	id  pointer.ID
	pos f32.Point
}

// Recognizer converts pointer events into gesture state machine events
// while driving a ScrollView. Offsets and velocities reported to the
// state machine are in dp, positions of taps are in pixels.
type Recognizer struct {
	View *ScrollView

	LongPressDelay time.Duration
	DoubleTapDelay time.Duration
	Slop           float64 // px
	PxPerDp        float64

	pointers []tracked
	velocity VelocityTracker

	// single pointer press
	pressing  bool
	pressAt   time.Time
	pressPos  f32.Point
	moved     bool
	longFired bool

	// pinch
	pinching   bool
	pinchDist  float64
	pinchZoom  float64
	pinchFocus f32.Point

	// previous tap, for double tap detection
	lastTap    time.Time
	lastTapPos f32.Point
	haveTap    bool
}

// NewRecognizer creates a recognizer driving view.
func NewRecognizer(view *ScrollView, longPressDelay time.Duration) *Recognizer {
	return &Recognizer{
		View:           view,
		LongPressDelay: longPressDelay,
		DoubleTapDelay: DoubleTapDelay,
		Slop:           DefaultSlop,
		PxPerDp:        1,
	}
}

// Active reports whether any pointer is down.
func (r *Recognizer) Active() bool {
	return len(r.pointers) > 0
}

// LongPressDeadline returns when a pending long press fires.
func (r *Recognizer) LongPressDeadline() (time.Time, bool) {
	if !r.pressing || r.moved || r.longFired || r.pinching || r.LongPressDelay <= 0 {
		return time.Time{}, false
	}
	return r.pressAt.Add(r.LongPressDelay), true
}

// Tick fires a pending long press once its delay has elapsed.
func (r *Recognizer) Tick(now time.Time) []state.Event {
	deadline, ok := r.LongPressDeadline()
	if !ok || now.Before(deadline) {
		return nil
	}
	r.longFired = true
	r.haveTap = false
	return []state.Event{state.LongPressEvent{}}
}

// Pointer processes one pointer event observed at frame time now.
func (r *Recognizer) Pointer(ev pointer.Event, now time.Time) []state.Event {
	switch ev.Kind {
	case pointer.Press:
		if ev.Source == pointer.Mouse && !ev.Buttons.Contain(pointer.ButtonPrimary) {
			return nil
		}
		return r.press(ev, now)
	case pointer.Drag:
		return r.drag(ev)
	case pointer.Release, pointer.Cancel:
		return r.release(ev, now)
	case pointer.Scroll:
		return r.wheel(ev)
	}
	return nil
}

func (r *Recognizer) press(ev pointer.Event, now time.Time) []state.Event {
	if r.index(ev.PointerID) >= 0 {
		return nil
	}
	// A new touch takes over from any running animation. The view then
	// rests wherever the animation was, which the state machine must learn.
	var out []state.Event
	if r.View.Interrupt() {
		out = append(out, state.ZoomEvent{ZoomScale: r.View.Zoom})
	}
	r.pointers = append(r.pointers, tracked{id: ev.PointerID, pos: ev.Position})

	switch len(r.pointers) {
	case 1:
		r.pressing = true
		r.pressAt = now
		r.pressPos = ev.Position
		r.moved = false
		r.longFired = false
		r.velocity.Reset()
		r.velocity.Add(ev.Time, r.dp(float64(ev.Position.Y)))
	case 2:
		r.startPinch()
	}
	return out
}

func (r *Recognizer) startPinch() {
	r.pinching = true
	r.moved = true
	r.haveTap = false
	r.pinchDist = distance(r.pointers[0].pos, r.pointers[1].pos)
	r.pinchZoom = r.View.Zoom
	r.pinchFocus = midpoint(r.pointers[0].pos, r.pointers[1].pos)
	r.velocity.Reset()
}

func (r *Recognizer) drag(ev pointer.Event) []state.Event {
	i := r.index(ev.PointerID)
	if i < 0 {
		return nil
	}
	prev := r.pointers[i].pos
	r.pointers[i].pos = ev.Position

	if len(r.pointers) >= 2 {
		if i > 1 {
			return nil
		}
		return r.pinch()
	}

	if !r.moved {
		if distance(ev.Position, r.pressPos) < r.Slop {
			return nil
		}
		r.moved = true
		r.haveTap = false
	}
	r.View.Pan(float64(ev.Position.X-prev.X), float64(ev.Position.Y-prev.Y))
	r.velocity.Add(ev.Time, r.dp(float64(ev.Position.Y)))
	return []state.Event{r.ScrollEvent()}
}

func (r *Recognizer) pinch() []state.Event {
	a, b := r.pointers[0].pos, r.pointers[1].pos
	focus := midpoint(a, b)
	if r.pinchDist > 0 {
		z := r.pinchZoom * distance(a, b) / r.pinchDist
		r.View.ZoomAt(z, float64(focus.X), float64(focus.Y))
	}
	// The pinch focus also pans the content.
	r.View.Pan(float64(focus.X-r.pinchFocus.X), float64(focus.Y-r.pinchFocus.Y))
	r.pinchFocus = focus
	if r.View.Zoomed() {
		return []state.Event{state.ZoomEvent{ZoomScale: r.View.Zoom}}
	}
	// A pinch that stays fitted is not a swipe; hold the image in place.
	r.View.OffsetY = 0
	return []state.Event{state.ZoomEvent{ZoomScale: r.View.Zoom}, r.ScrollEvent()}
}

func (r *Recognizer) release(ev pointer.Event, now time.Time) []state.Event {
	i := r.index(ev.PointerID)
	if i < 0 {
		return nil
	}
	pos := r.pointers[i].pos
	r.pointers = append(r.pointers[:i], r.pointers[i+1:]...)

	switch len(r.pointers) {
	case 1:
		// Pinch ended with one finger left; it keeps panning.
		r.pinching = false
		r.velocity.Reset()
		return nil
	case 0:
	default:
		r.startPinch()
		return nil
	}

	r.pressing = false
	wasGesture := r.moved || r.pinching || r.longFired
	r.pinching = false
	if ev.Kind == pointer.Cancel {
		r.haveTap = false
		r.View.Settle(now)
		return nil
	}

	if wasGesture {
		if r.longFired && !r.moved {
			return nil
		}
		out := state.DragEndEvent{
			VelocityY: r.velocity.Estimate(),
			ZoomScale: r.View.Zoom,
			OffsetY:   r.dp(r.View.OffsetY),
		}
		r.View.Settle(now)
		return []state.Event{out}
	}

	// A tap: the second one within the delay and close to the first is a double tap.
	if r.haveTap && now.Sub(r.lastTap) < r.DoubleTapDelay && distance(pos, r.lastTapPos) < 2*r.Slop {
		r.haveTap = false
		return []state.Event{state.DoubleTapEvent{X: float64(pos.X), Y: float64(pos.Y)}}
	}
	r.haveTap = true
	r.lastTap = now
	r.lastTapPos = pos
	return nil
}

func (r *Recognizer) wheel(ev pointer.Event) []state.Event {
	zoom := ev.Modifiers.Contain(key.ModShortcut) || ev.Modifiers.Contain(key.ModCtrl)
	if !r.View.Wheel(float64(ev.Scroll.X), float64(ev.Scroll.Y), float64(ev.Position.X), float64(ev.Position.Y), zoom) {
		return nil
	}
	if zoom {
		return []state.Event{state.ZoomEvent{ZoomScale: r.View.Zoom}}
	}
	return []state.Event{r.ScrollEvent()}
}

// ScrollEvent reports the current view position as scroll telemetry.
func (r *Recognizer) ScrollEvent() state.ScrollEvent {
	return state.ScrollEvent{OffsetY: r.dp(r.View.OffsetY), ZoomScale: r.View.Zoom}
}

func (r *Recognizer) index(id pointer.ID) int {
	for i, p := range r.pointers {
		if p.id == id {
			return i
		}
	}
	return -1
}

func (r *Recognizer) dp(px float64) float64 {
	if r.PxPerDp <= 0 {
		return px
	}
	return px / r.PxPerDp
}

func distance(a, b f32.Point) float64 {
	return math.Hypot(float64(a.X-b.X), float64(a.Y-b.Y))
}

func midpoint(a, b f32.Point) f32.Point {
	return f32.Pt((a.X+b.X)/2, (a.Y+b.Y)/2)
}
