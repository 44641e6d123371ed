package widgets

import (
	"fmt"
	"image"
	"image/color"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
)

// Header is the overlay bar above the image with the window controls.
type Header struct {
	Title string
	// Info is an optional second line, shown after a long press.
	Info string

	// OnClose and OnReset are called when the buttons are clicked.
	OnClose func()
	OnReset func()

	closeBtn widget.Clickable
	resetBtn widget.Clickable
}

// NewHeader creates a header showing title.
func NewHeader(title string) *Header {
	return &Header{Title: title}
}

// Layout renders the header for an image at the given zoom factor.
func (h *Header) Layout(gtx layout.Context, th *material.Theme, zoom float64, opacity float64) layout.Dimensions {
	h.handleClicks(gtx)

	height := gtx.Dp(unit.Dp(48))
	if h.Info != "" {
		height += gtx.Dp(unit.Dp(20))
	}

	bg := color.NRGBA{R: 20, G: 20, B: 22, A: 200}
	bg.A = uint8(float64(bg.A) * clamp01(opacity))
	rect := image.Rect(0, 0, gtx.Constraints.Max.X, height)
	paint.FillShape(gtx.Ops, bg, clip.Rect(rect).Op())

	gtx.Constraints.Max.Y = height
	return layout.Inset{Left: unit.Dp(10), Right: unit.Dp(10), Top: unit.Dp(8), Bottom: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						return h.button(gtx, th, &h.closeBtn, "X")
					}),
					layout.Rigid(layout.Spacer{Width: unit.Dp(10)}.Layout),
					layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
						label := material.Label(th, 14, h.Title)
						label.Color = color.NRGBA{R: 230, G: 230, B: 230, A: 255}
						label.MaxLines = 1
						return label.Layout(gtx)
					}),
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						label := material.Label(th, 12, ZoomLabel(zoom))
						label.Color = color.NRGBA{R: 160, G: 165, B: 170, A: 255}
						return label.Layout(gtx)
					}),
					layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						return h.button(gtx, th, &h.resetBtn, "Fit")
					}),
				)
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				if h.Info == "" {
					return layout.Dimensions{}
				}
				label := material.Label(th, 11, h.Info)
				label.Color = color.NRGBA{R: 160, G: 165, B: 170, A: 255}
				label.MaxLines = 1
				return layout.Inset{Top: unit.Dp(4)}.Layout(gtx, label.Layout)
			}),
		)
	})
}

// ZoomLabel formats a zoom factor for display.
func ZoomLabel(zoom float64) string {
	return fmt.Sprintf("%.0f%%", zoom*100)
}

func (h *Header) button(gtx layout.Context, th *material.Theme, btn *widget.Clickable, text string) layout.Dimensions {
	bg := color.NRGBA{R: 55, G: 58, B: 65, A: 255}
	if btn.Hovered() {
		bg.R = minU8(bg.R+15, 255)
		bg.G = minU8(bg.G+15, 255)
		bg.B = minU8(bg.B+15, 255)
	}

	return btn.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Background{}.Layout(gtx,
			func(gtx layout.Context) layout.Dimensions {
				gtx.Constraints.Min = image.Point{X: gtx.Dp(32), Y: gtx.Dp(28)}
				rect := image.Rect(0, 0, gtx.Constraints.Min.X, gtx.Constraints.Min.Y)
				paint.FillShape(gtx.Ops, bg, clip.Rect(rect).Op())
				return layout.Dimensions{Size: gtx.Constraints.Min}
			},
			func(gtx layout.Context) layout.Dimensions {
				return layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					label := material.Label(th, 12, text)
					label.Color = color.NRGBA{R: 220, G: 220, B: 220, A: 255}
					return label.Layout(gtx)
				})
			},
		)
	})
}

func (h *Header) handleClicks(gtx layout.Context) {
	for h.closeBtn.Clicked(gtx) {
		if h.OnClose != nil {
			h.OnClose()
		}
	}
	for h.resetBtn.Clicked(gtx) {
		if h.OnReset != nil {
			h.OnReset()
		}
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func minU8(a, b uint8) uint8 {
	if a < b {
		return a
	}
	return b
}
