// Package observer delivers state machine effects to the host.
package observer

import (
	"go.uber.org/zap"

	"github.com/elektrokombinacija/zoomview/internal/core"
	"github.com/elektrokombinacija/zoomview/internal/vis/state"
)

// Observer is the interface the host implements to follow the viewer.
type Observer interface {
	// OnZoom is called on every transition between fitted and zoomed.
	OnZoom(scaled bool)

	// OnRequestClose is called when a dismiss swipe is detected.
	OnRequestClose()

	// OnLongPress is called when the image is long pressed.
	OnLongPress(src core.ImageSource)
}

// Funcs adapts plain functions to the Observer interface. Nil fields are
// skipped.
type Funcs struct {
	Zoom         func(scaled bool)
	RequestClose func()
	LongPress    func(src core.ImageSource)
}

// OnZoom is called on every transition between fitted and zoomed.
func (f Funcs) OnZoom(scaled bool) {
	if f.Zoom != nil {
		f.Zoom(scaled)
	}
}

// OnRequestClose is called when a dismiss swipe is detected.
func (f Funcs) OnRequestClose() {
	if f.RequestClose != nil {
		f.RequestClose()
	}
}

// OnLongPress is called when the image is long pressed.
func (f Funcs) OnLongPress(src core.ImageSource) {
	if f.LongPress != nil {
		f.LongPress(src)
	}
}

// Logged wraps an observer and records every callback at debug level.
type Logged struct {
	next Observer
	log  *zap.Logger
}

// NewLogged creates a logging observer around next.
func NewLogged(next Observer, log *zap.Logger) *Logged {
	return &Logged{next: next, log: log}
}

func (o *Logged) OnZoom(scaled bool) {
	o.log.Debug("Zoom state changed", zap.Bool("scaled", scaled))
	o.next.OnZoom(scaled)
}

func (o *Logged) OnRequestClose() {
	o.log.Debug("Close requested")
	o.next.OnRequestClose()
}

func (o *Logged) OnLongPress(src core.ImageSource) {
	o.log.Debug("Long press", zap.String("url", src.URL))
	o.next.OnLongPress(src)
}

// Dispatch delivers host effects to obs in order and returns the zoom
// animations, which belong to the scroll view rather than the host.
func Dispatch(obs Observer, effects []state.Effect) []state.AnimateZoomEffect {
	var anims []state.AnimateZoomEffect
	for _, e := range effects {
		switch e := e.(type) {
		case state.ZoomEffect:
			obs.OnZoom(e.Scaled)
		case state.RequestCloseEffect:
			obs.OnRequestClose()
		case state.LongPressEffect:
			obs.OnLongPress(e.Source)
		case state.AnimateZoomEffect:
			anims = append(anims, e)
		}
	}
	return anims
}
