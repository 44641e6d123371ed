package core

// FitZoom is the zoom factor of the fitted transform.
const FitZoom = 1.0

// DoubleTapTarget returns the zoom factor a double tap animates to.
// Zoom factors are relative to the fitted transform, so zooming back out
// always lands on FitZoom no matter what maxScale is.
func DoubleTapTarget(scaled bool, maxScale float64) float64 {
	if scaled {
		return FitZoom
	}
	if maxScale < FitZoom {
		return FitZoom
	}
	return maxScale
}

// IsZoomed reports whether a live zoom factor counts as zoomed in.
func IsZoomed(zoom float64) bool {
	return Finite(zoom) > FitZoom
}
