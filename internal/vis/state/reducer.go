package state

import (
	"github.com/elektrokombinacija/zoomview/internal/core"
)

// Reduce applies one event to the view state and returns the new state
// with the effects the host must perform, in order. It is pure.
func Reduce(opts Options, geo Geometry, s ViewState, ev Event) (ViewState, []Effect) {
	var effects []Effect

	switch e := ev.(type) {
	case ScrollEvent:
		s, effects = transition(s, e.ZoomScale, effects)
		if s.Scaled || !opts.SwipeToCloseEnabled {
			break
		}
		s.ScrollOffsetY = core.Finite(e.OffsetY)
		s.Opacity = core.Fade(s.ScrollOffsetY, core.SwipeCloseOffset)

	case ZoomEvent:
		s, effects = transition(s, e.ZoomScale, effects)

	case DragEndEvent:
		s, effects = transition(s, e.ZoomScale, effects)
		// A pan of a zoomed image must never close the view.
		if s.Scaled || !opts.SwipeToCloseEnabled {
			break
		}
		if opts.Dismiss.ShouldDismiss(e.VelocityY, e.OffsetY) {
			effects = append(effects, RequestCloseEffect{})
		}

	case DoubleTapEvent:
		if !opts.DoubleTapToZoomEnabled {
			break
		}
		target := core.DoubleTapTarget(s.Scaled, geo.MaxScale)
		effects = append(effects, AnimateZoomEffect{
			Factor: target,
			Scale:  geo.Fit.Zoomed(target),
			FocusX: core.Finite(e.X),
			FocusY: core.Finite(e.Y),
		})
		s, effects = transition(s, target, effects)

	case LongPressEvent:
		effects = append(effects, LongPressEffect{Source: geo.Source})
	}

	return s, effects
}

// transition moves between Fitted and Zoomed for a zoom factor and
// reports the change.
func transition(s ViewState, zoom float64, effects []Effect) (ViewState, []Effect) {
	scaled := core.IsZoomed(zoom)
	if scaled == s.Scaled {
		return s, effects
	}
	s.Scaled = scaled
	if scaled {
		// Zooming cancels any swipe fade in progress.
		s.ScrollOffsetY = 0
		s.Opacity = 1
	}
	return s, append(effects, ZoomEffect{Scaled: scaled})
}
