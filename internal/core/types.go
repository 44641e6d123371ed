// Package core defines the viewport geometry model and the pure transform
// and gesture policies of the image viewer.
package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Size is a width/height pair in pixels.
type Size struct {
	Width  float64
	Height float64
}

// ViewportGeometry is the fixed on-screen rectangle the image is composed into.
type ViewportGeometry = Size

// ImageDimensions is the natural pixel size of the source image.
// Both fields are zero while the size is still unknown.
type ImageDimensions = Size

// Known reports whether both dimensions are positive.
func (s Size) Known() bool {
	return s.Width > 0 && s.Height > 0
}

func (s Size) String() string {
	return formatFloat(s.Width) + "x" + formatFloat(s.Height)
}

// ParseSize reads a size written as WIDTHxHEIGHT.
func ParseSize(s string) (Size, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return Size{}, fmt.Errorf("size %q is not WIDTHxHEIGHT", s)
	}
	w, err := strconv.ParseFloat(ws, 64)
	if err != nil {
		return Size{}, fmt.Errorf("bad width in %q: %w", s, err)
	}
	h, err := strconv.ParseFloat(hs, 64)
	if err != nil {
		return Size{}, fmt.Errorf("bad height in %q: %w", s, err)
	}
	size := Size{Width: w, Height: h}
	if !size.Known() || math.IsInf(w, 0) || math.IsInf(h, 0) {
		return Size{}, fmt.Errorf("size %q must be positive and finite", s)
	}
	return size, nil
}

// ImageSource describes where the image bytes come from. Width and Height
// are optional hints; when absent the renderer discovers them.
type ImageSource struct {
	PreviewURL string
	URL        string
	RemoteURL  string
	Width      float64
	Height     float64
}

// Dimensions returns the size hint carried by the source, zero if absent.
func (s ImageSource) Dimensions() ImageDimensions {
	d := ImageDimensions{Width: Finite(s.Width), Height: Finite(s.Height)}
	if !d.Known() {
		return ImageDimensions{}
	}
	return d
}

// Transform is the affine mapping that fits and centers the image.
// The image is scaled about its top-left corner, then translated.
type Transform struct {
	Scale      float64
	TranslateX float64
	TranslateY float64
}

// Identity is the neutral transform used while the image size is unknown.
var Identity = Transform{Scale: 1}

// Zoomed returns the absolute render scale for zoom factor z.
func (t Transform) Zoomed(z float64) float64 {
	return t.Scale * z
}

// Visual is the continuously updated output consumed by the renderer.
type Visual struct {
	Scale      float64
	TranslateX float64
	TranslateY float64
	Opacity    float64
}

// Finite maps NaN and infinities to zero. Telemetry is best effort and
// missing values must never poison the transform math.
func Finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
