// Package interact turns raw pointer input into viewer telemetry: it keeps
// the zoom factor and content offset of the scroll view and recognizes
// pinch, drag, double tap and long press gestures.
package interact

import (
	"math"
	"time"

	"github.com/elektrokombinacija/zoomview/internal/core"
)

// wheelZoomFactor is applied per wheel notch when zooming with ctrl held.
const wheelZoomFactor = 1.1

// ScrollView manages the zoom factor and content offset applied on top of
// the fitted image transform. Zoom 1 shows the fitted image; the content
// offset is in pixels and grows when content moves up or left.
type ScrollView struct {
	Zoom    float64
	OffsetX float64
	OffsetY float64

	// MaxZoom bounds the zoom factor from above.
	MaxZoom float64
	// Viewport is the visible area in pixels.
	Viewport core.Size
	// ScrollEnabled lets a fitted image travel vertically for swipe to
	// close. When off a fitted image stays put.
	ScrollEnabled bool

	anim     Animation
	settling bool
}

// NewScrollView creates a fitted scroll view.
func NewScrollView() *ScrollView {
	return &ScrollView{
		Zoom:          core.FitZoom,
		MaxZoom:       core.FitZoom,
		ScrollEnabled: true,
	}
}

// Reset returns to the fitted view.
func (v *ScrollView) Reset() {
	v.anim.Stop()
	v.Zoom = core.FitZoom
	v.OffsetX = 0
	v.OffsetY = 0
}

// SetBounds updates the viewport and zoom ceiling, clamping the current
// position into the new bounds.
func (v *ScrollView) SetBounds(viewport core.Size, maxZoom float64) {
	v.Viewport = viewport
	if maxZoom < core.FitZoom {
		maxZoom = core.FitZoom
	}
	v.MaxZoom = maxZoom
	v.Zoom = v.clampZoom(v.Zoom)
	v.clampOffset()
}

// Zoomed reports whether the view is zoomed in beyond the fit.
func (v *ScrollView) Zoomed() bool {
	return core.IsZoomed(v.Zoom)
}

// Pan moves the content with the finger by the given screen delta.
func (v *ScrollView) Pan(dx, dy float64) {
	v.OffsetX -= dx
	v.OffsetY -= dy
	v.clampOffset()
}

// ZoomAt sets the zoom factor keeping the screen point (fx, fy) fixed.
func (v *ScrollView) ZoomAt(zoom, fx, fy float64) {
	v.Zoom, v.OffsetX, v.OffsetY = v.zoomFrame(zoom, fx, fy)
	v.clampOffset()
}

// ZoomBy multiplies the zoom factor, centered on a screen point.
func (v *ScrollView) ZoomBy(factor, fx, fy float64) {
	v.ZoomAt(v.Zoom*factor, fx, fy)
}

// Wheel applies a mouse wheel step. With zoom requested the wheel zooms
// around the cursor; otherwise it pans a zoomed image. It reports whether
// the view changed.
func (v *ScrollView) Wheel(scrollX, scrollY, fx, fy float64, zoom bool) bool {
	switch {
	case zoom && scrollY != 0:
		v.anim.Stop()
		if scrollY > 0 {
			v.ZoomBy(1/wheelZoomFactor, fx, fy)
		} else {
			v.ZoomBy(wheelZoomFactor, fx, fy)
		}
		return true
	case v.Zoomed():
		v.anim.Stop()
		v.Pan(-scrollX, -scrollY)
		return true
	}
	return false
}

// AnimateTo starts an animated zoom to the given factor around a focus
// point. Any running animation is replaced.
func (v *ScrollView) AnimateTo(zoom, fx, fy float64, now time.Time) {
	z, ox, oy := v.zoomFrame(zoom, fx, fy)
	to := Frame{Zoom: z, OffsetX: ox, OffsetY: oy}
	to.OffsetX, to.OffsetY = v.clampFor(to.Zoom, to.OffsetX, to.OffsetY)
	v.anim.Start(v.frame(), to, now, ZoomDuration)
	v.settling = false
}

// Settle springs a fitted view back to rest after a released swipe.
func (v *ScrollView) Settle(now time.Time) {
	if v.Zoomed() || (v.OffsetX == 0 && v.OffsetY == 0) {
		return
	}
	v.anim.Start(v.frame(), Frame{Zoom: v.Zoom}, now, SettleDuration)
	v.settling = true
}

// Interrupt stops any running animation where it is. It reports whether
// one was running, in which case the view rests at an intermediate zoom.
func (v *ScrollView) Interrupt() bool {
	if !v.anim.Active {
		return false
	}
	v.anim.Stop()
	v.settling = false
	return true
}

// Settling reports whether a swipe spring back is in progress. Unlike
// zoom animations it moves the swipe offset and so feeds the fade.
func (v *ScrollView) Settling() bool {
	return v.anim.Active && v.settling
}

// Animating reports whether an animation is in progress.
func (v *ScrollView) Animating() bool {
	return v.anim.Active
}

// Advance steps a running animation to now. It reports whether the view changed.
func (v *ScrollView) Advance(now time.Time) bool {
	if !v.anim.Active {
		return false
	}
	f := v.anim.Advance(now)
	v.Zoom, v.OffsetX, v.OffsetY = f.Zoom, f.OffsetX, f.OffsetY
	return true
}

func (v *ScrollView) frame() Frame {
	return Frame{Zoom: v.Zoom, OffsetX: v.OffsetX, OffsetY: v.OffsetY}
}

// zoomFrame computes the zoom and offsets that keep (fx, fy) fixed.
func (v *ScrollView) zoomFrame(zoom, fx, fy float64) (z, ox, oy float64) {
	z = v.clampZoom(core.Finite(zoom))
	cur := v.Zoom
	if cur <= 0 {
		cur = core.FitZoom
	}
	if !core.IsZoomed(z) {
		return z, 0, 0
	}
	ratio := z / cur
	ox = (v.OffsetX+fx)*ratio - fx
	oy = (v.OffsetY+fy)*ratio - fy
	return z, ox, oy
}

func (v *ScrollView) clampZoom(z float64) float64 {
	if z < core.FitZoom || v.MaxZoom <= core.FitZoom {
		return core.FitZoom
	}
	return math.Min(z, v.MaxZoom)
}

func (v *ScrollView) clampOffset() {
	v.OffsetX, v.OffsetY = v.clampFor(v.Zoom, v.OffsetX, v.OffsetY)
}

// clampFor bounds offsets for zoom z. A fitted view only travels
// vertically, and freely, so it can be swiped away.
func (v *ScrollView) clampFor(z, ox, oy float64) (float64, float64) {
	if !core.IsZoomed(z) {
		if !v.ScrollEnabled {
			return 0, 0
		}
		return 0, oy
	}
	maxX := v.Viewport.Width * (z - 1)
	maxY := v.Viewport.Height * (z - 1)
	return math.Max(0, math.Min(ox, maxX)), math.Max(0, math.Min(oy, maxY))
}
