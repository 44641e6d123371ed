package state

// Event is a unit of viewport telemetry fed to the reducer.
type Event interface {
	isEvent()
}

// ScrollEvent reports the scroll view content offset together with the
// zoom factor current at that moment.
type ScrollEvent struct {
	OffsetY   float64
	ZoomScale float64
}

// ZoomEvent reports a live zoom factor change from a pinch or animation.
type ZoomEvent struct {
	ZoomScale float64
}

// DragEndEvent is reported once when the user lifts the last finger.
type DragEndEvent struct {
	VelocityY float64 // px per ms
	ZoomScale float64
	OffsetY   float64
}

// DoubleTapEvent carries the tap position in viewport coordinates.
type DoubleTapEvent struct {
	X, Y float64
}

// LongPressEvent is reported after the press was held for the configured delay.
type LongPressEvent struct{}

func (ScrollEvent) isEvent()    {}
func (ZoomEvent) isEvent()      {}
func (DragEndEvent) isEvent()   {}
func (DoubleTapEvent) isEvent() {}
func (LongPressEvent) isEvent() {}
