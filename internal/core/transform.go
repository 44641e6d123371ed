package core

import (
	"math"
	"strconv"
)

// ComputeTransform returns the transform that fits img entirely inside
// viewport while preserving the aspect ratio, centered on both axes.
// Unknown dimensions yield Identity so fitting is deferred until the real
// size arrives.
func ComputeTransform(img ImageDimensions, viewport ViewportGeometry) Transform {
	if !img.Known() || !viewport.Known() {
		return Identity
	}

	scale := math.Min(viewport.Width/img.Width, viewport.Height/img.Height)

	return Transform{
		Scale:      scale,
		TranslateX: (viewport.Width - img.Width*scale) / 2,
		TranslateY: (viewport.Height - img.Height*scale) / 2,
	}
}

// MaxScale is the most a user may zoom in: enough to reach the natural
// resolution of the image, and never less than 1.
func MaxScale(t Transform) float64 {
	if t.Scale <= 0 {
		return 1
	}
	return math.Max(1/t.Scale, 1)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Compose applies a zoom factor and content offset on top of a fit
// transform, producing what the renderer draws.
func Compose(fit Transform, zoom, offsetX, offsetY, opacity float64) Visual {
	zoom = Finite(zoom)
	if zoom <= 0 {
		zoom = FitZoom
	}
	return Visual{
		Scale:      fit.Zoomed(zoom),
		TranslateX: fit.TranslateX*zoom - Finite(offsetX),
		TranslateY: fit.TranslateY*zoom - Finite(offsetY),
		Opacity:    opacity,
	}
}
