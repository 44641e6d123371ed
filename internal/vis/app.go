// Package vis implements the Gio-based image viewer window.
package vis

import (
	"context"
	"fmt"

	"gioui.org/app"
	"gioui.org/io/key"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/widget/material"
	"go.uber.org/zap"

	"github.com/elektrokombinacija/zoomview/internal/config"
	"github.com/elektrokombinacija/zoomview/internal/core"
	"github.com/elektrokombinacija/zoomview/internal/loader"
	"github.com/elektrokombinacija/zoomview/internal/vis/observer"
	"github.com/elektrokombinacija/zoomview/internal/vis/widgets"
)

// App is the viewer application showing a single image.
type App struct {
	theme  *material.Theme
	item   *widgets.ImageItem
	header *widgets.Header
	loader *loader.Loader
	log    *zap.Logger

	scaled  bool
	closing bool
}

// NewApp creates a viewer for src.
func NewApp(src core.ImageSource, cfg *config.Config, log *zap.Logger) *App {
	a := &App{
		theme:  material.NewTheme(),
		header: widgets.NewHeader(cfg.Window.Title),
		loader: loader.New(cfg.Viewer.MaxTextureSize, log.Named("loader")),
		log:    log,
	}

	obs := observer.NewLogged(observer.Funcs{
		Zoom:         a.onZoom,
		RequestClose: a.requestClose,
		LongPress:    a.showInfo,
	}, log)
	a.item = widgets.NewImageItem(src, cfg.Viewer.Options(), obs, log)

	a.header.OnClose = a.requestClose
	return a
}

// Run starts the application event loop. It returns when the window is
// destroyed; cancelling ctx closes the window.
func (a *App) Run(ctx context.Context, w *app.Window) error {
	a.item.Load(ctx, a.loader, w.Invalidate)
	defer a.item.Close()

	go func() {
		<-ctx.Done()
		w.Invalidate()
	}()

	var ops op.Ops
	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err

		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)
			a.header.OnReset = func() { a.item.Reset(gtx.Now) }

			// Handle keyboard events
			for {
				ev, ok := gtx.Event(
					key.Filter{Name: key.NameEscape},
					key.Filter{Name: key.NameBack},
					key.Filter{Name: "R"},
				)
				if !ok {
					break
				}
				if ke, ok := ev.(key.Event); ok && ke.State == key.Press {
					a.handleKeyEvent(gtx, ke)
				}
			}

			a.layout(gtx)
			e.Frame(gtx.Ops)

			if a.closing || ctx.Err() != nil {
				a.log.Debug("Closing viewer", zap.Bool("scaled", a.scaled))
				w.Perform(system.ActionClose)
			}
		}
	}
}

func (a *App) handleKeyEvent(gtx layout.Context, e key.Event) {
	switch e.Name {
	case key.NameEscape, key.NameBack:
		a.requestClose()
	case "R":
		a.item.Reset(gtx.Now)
	}
}

func (a *App) layout(gtx layout.Context) layout.Dimensions {
	dims := a.item.Layout(gtx)
	view := a.item.View()
	a.header.Layout(gtx, a.theme, view.Zoom, a.item.Machine().State().Opacity)
	return dims
}

func (a *App) onZoom(scaled bool) {
	a.scaled = scaled
}

func (a *App) requestClose() {
	a.closing = true
}

func (a *App) showInfo(src core.ImageSource) {
	location := src.URL
	if location == "" {
		location = src.RemoteURL
	}
	a.header.Info = fmt.Sprintf("%s  %s", location, a.item.Machine().Dimensions())
}
