// Package draw paints the image viewer scene.
package draw

import (
	"image"
	"image/color"
	"math"
	"time"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/elektrokombinacija/zoomview/internal/core"
)

// Scene colors
var (
	ColorBackdrop    = color.NRGBA{R: 0, G: 0, B: 0, A: 255}
	ColorPlaceholder = color.NRGBA{R: 38, G: 40, B: 44, A: 255}
	ColorPulse       = color.NRGBA{R: 70, G: 74, B: 82, A: 255}
	ColorError       = color.NRGBA{R: 120, G: 50, B: 50, A: 255}
)

// PulsePeriod is the length of one placeholder pulse cycle.
const PulsePeriod = 1200 * time.Millisecond

// DrawBackdrop fills the viewport behind the image. Its alpha follows the
// image opacity so a swiped image reveals what is beneath the viewer.
func DrawBackdrop(gtx layout.Context, opacity float64) {
	col := ColorBackdrop
	col.A = alpha(opacity)
	paint.Fill(gtx.Ops, col)
}

// DrawImage paints imgOp with the visual transform v. natural is the size
// the transform was computed for; the texture may be smaller when it was
// downscaled on decode.
func DrawImage(gtx layout.Context, imgOp paint.ImageOp, natural core.Size, v core.Visual) {
	tex := imgOp.Size()
	if tex.X <= 0 || tex.Y <= 0 || v.Opacity <= 0 {
		return
	}
	if !natural.Known() {
		natural = core.Size{Width: float64(tex.X), Height: float64(tex.Y)}
	}

	sx := float32(v.Scale * natural.Width / float64(tex.X))
	sy := float32(v.Scale * natural.Height / float64(tex.Y))
	tr := f32.Affine2D{}.
		Scale(f32.Point{}, f32.Pt(sx, sy)).
		Offset(f32.Pt(float32(v.TranslateX), float32(v.TranslateY)))

	defer paint.PushOpacity(gtx.Ops, float32(math.Min(v.Opacity, 1))).Pop()
	defer op.Affine(tr).Push(gtx.Ops).Pop()
	defer clip.Rect(image.Rectangle{Max: tex}).Push(gtx.Ops).Pop()

	imgOp.Add(gtx.Ops)
	paint.PaintOp{}.Add(gtx.Ops)
}

// DrawPlaceholder fills the area the image will occupy while it loads,
// pulsing between two shades. It returns when the next frame is due.
func DrawPlaceholder(gtx layout.Context, area core.Visual, natural core.Size, start time.Time) time.Time {
	if !natural.Known() {
		return time.Time{}
	}
	w := int(math.Round(natural.Width * area.Scale))
	h := int(math.Round(natural.Height * area.Scale))
	x := int(math.Round(area.TranslateX))
	y := int(math.Round(area.TranslateY))

	col := PulseColor(gtx.Now.Sub(start))
	col.A = alpha(area.Opacity)
	paint.FillShape(gtx.Ops, col, clip.Rect(image.Rect(x, y, x+w, y+h)).Op())
	return gtx.Now.Add(time.Second / 30)
}

// DrawError marks a failed load with a small centered block.
func DrawError(gtx layout.Context) {
	size := gtx.Constraints.Max
	side := min(size.X, size.Y) / 6
	cx, cy := size.X/2, size.Y/2
	paint.FillShape(gtx.Ops, ColorError,
		clip.Rect(image.Rect(cx-side/2, cy-side/2, cx+side/2, cy+side/2)).Op())
}

// PulseColor returns the placeholder shade elapsed into the pulse,
// blended in Lab space so the midpoint does not wash out.
func PulseColor(elapsed time.Duration) color.NRGBA {
	phase := math.Mod(float64(elapsed)/float64(PulsePeriod), 1)
	if phase < 0 {
		phase += 1
	}
	t := (1 - math.Cos(2*math.Pi*phase)) / 2

	a := toColorful(ColorPlaceholder)
	b := toColorful(ColorPulse)
	r, g, bl := a.BlendLab(b, t).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: bl, A: 255}
}

func toColorful(c color.NRGBA) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func alpha(opacity float64) uint8 {
	return uint8(math.Round(255 * math.Max(0, math.Min(opacity, 1))))
}
