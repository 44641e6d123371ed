package state

import "github.com/elektrokombinacija/zoomview/internal/core"

// Effect is an outbound action produced by the reducer. The reducer never
// performs effects itself.
type Effect interface {
	isEffect()
}

// ZoomEffect asks the host to run onZoom(scaled).
type ZoomEffect struct {
	Scaled bool
}

// RequestCloseEffect asks the host to dismiss the view.
type RequestCloseEffect struct{}

// LongPressEffect asks the host to run onLongPress(source).
type LongPressEffect struct {
	Source core.ImageSource
}

// AnimateZoomEffect asks the scroll view to animate to a zoom factor,
// keeping the focus point under the finger.
type AnimateZoomEffect struct {
	Factor float64 // relative to the fitted transform
	Scale  float64 // absolute render scale, Fit.Scale * Factor
	FocusX float64
	FocusY float64
}

func (ZoomEffect) isEffect()         {}
func (RequestCloseEffect) isEffect() {}
func (LongPressEffect) isEffect()    {}
func (AnimateZoomEffect) isEffect()  {}
