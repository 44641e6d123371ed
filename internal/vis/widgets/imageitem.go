// Package widgets provides Gio UI widgets for the viewer.
package widgets

import (
	"context"
	"image"
	"math"
	"time"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/elektrokombinacija/zoomview/internal/core"
	"github.com/elektrokombinacija/zoomview/internal/loader"
	"github.com/elektrokombinacija/zoomview/internal/vis/draw"
	"github.com/elektrokombinacija/zoomview/internal/vis/interact"
	"github.com/elektrokombinacija/zoomview/internal/vis/observer"
	"github.com/elektrokombinacija/zoomview/internal/vis/state"
)

// ImageItem renders one zoomable image and feeds its gestures through the
// view state machine.
type ImageItem struct {
	ID uuid.UUID

	machine *state.Machine
	view    *interact.ScrollView
	recog   *interact.Recognizer
	obs     observer.Observer
	log     *zap.Logger

	// loading
	updates   <-chan loader.Update
	cancel    context.CancelFunc
	loadStart time.Time
	loadErr   error
	final     bool

	texture     paint.ImageOp
	textureDims core.Size
	hasTexture  bool
}

// NewImageItem creates an item for src. Effects are delivered to obs.
func NewImageItem(src core.ImageSource, opts state.Options, obs observer.Observer, log *zap.Logger) *ImageItem {
	view := interact.NewScrollView()
	view.ScrollEnabled = opts.SwipeToCloseEnabled
	it := &ImageItem{
		ID:      uuid.New(),
		machine: state.NewMachine(src, core.Size{}, opts),
		view:    view,
		recog:   interact.NewRecognizer(view, opts.LongPressDelay),
		obs:     obs,
	}
	it.log = log.With(zap.Stringer("item", it.ID))
	return it
}

// Machine returns the item state machine.
func (it *ImageItem) Machine() *state.Machine {
	return it.machine
}

// View returns the item scroll view.
func (it *ImageItem) View() *interact.ScrollView {
	return it.view
}

// LoadError returns why the image could not be shown, if it failed.
func (it *ImageItem) LoadError() error {
	return it.loadErr
}

// Load starts decoding the image in the background. invalidate is called
// whenever a new stage is ready.
func (it *ImageItem) Load(ctx context.Context, l *loader.Loader, invalidate func()) {
	it.Close()
	ctx, it.cancel = context.WithCancel(ctx)
	it.loadStart = time.Now()
	it.loadErr = nil
	it.final = false
	it.updates = l.Start(ctx, it.machine.Source(), invalidate)
}

// Close abandons any load in progress.
func (it *ImageItem) Close() {
	if it.cancel != nil {
		it.cancel()
		it.cancel = nil
	}
}

// Reset returns the image to the fitted view.
func (it *ImageItem) Reset(now time.Time) {
	it.view.Reset()
	it.dispatch(now, state.ZoomEvent{ZoomScale: it.view.Zoom}, it.recog.ScrollEvent())
}

// Layout renders the item filling the available space.
func (it *ImageItem) Layout(gtx layout.Context) layout.Dimensions {
	size := gtx.Constraints.Max
	viewport := core.Size{Width: float64(size.X), Height: float64(size.Y)}
	if viewport != it.machine.Viewport() {
		it.machine.SetViewport(viewport)
	}
	it.drain()

	it.view.SetBounds(viewport, it.machine.MaxScale())
	it.recog.PxPerDp = float64(gtx.Metric.PxPerDp)

	defer clip.Rect(image.Rectangle{Max: size}).Push(gtx.Ops).Pop()
	event.Op(gtx.Ops, it)

	it.handlePointerEvents(gtx)
	it.dispatch(gtx.Now, it.recog.Tick(gtx.Now)...)
	it.advance(gtx.Now)

	next := it.paint(gtx, viewport)
	if it.view.Animating() {
		next = gtx.Now
	}
	if deadline, ok := it.recog.LongPressDeadline(); ok && (next.IsZero() || deadline.Before(next)) {
		next = deadline
	}
	if !next.IsZero() {
		gtx.Execute(op.InvalidateCmd{At: next})
	}
	return layout.Dimensions{Size: size}
}

func (it *ImageItem) handlePointerEvents(gtx layout.Context) {
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target:  it,
			Kinds:   pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel | pointer.Scroll,
			ScrollX: pointer.ScrollRange{Min: math.MinInt32, Max: math.MaxInt32},
			ScrollY: pointer.ScrollRange{Min: math.MinInt32, Max: math.MaxInt32},
		})
		if !ok {
			break
		}
		pe, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		if pe.Kind == pointer.Press {
			gtx.Execute(pointer.GrabCmd{Tag: it, ID: pe.PointerID})
		}
		it.dispatch(gtx.Now, it.recog.Pointer(pe, gtx.Now)...)
	}
}

// advance steps the scroll view animation. A settling swipe reports
// every frame so the fade follows it; a zoom animation reports once it
// lands.
func (it *ImageItem) advance(now time.Time) {
	settling := it.view.Settling()
	if !it.view.Advance(now) {
		return
	}
	switch {
	case settling:
		it.dispatch(now, it.recog.ScrollEvent())
	case !it.view.Animating():
		it.dispatch(now, state.ZoomEvent{ZoomScale: it.view.Zoom})
	}
}

// dispatch runs events through the machine, hands host effects to the
// observer and starts requested zoom animations.
func (it *ImageItem) dispatch(now time.Time, events ...state.Event) {
	for _, ev := range events {
		effects := it.machine.Dispatch(ev)
		for _, a := range observer.Dispatch(it.obs, effects) {
			it.log.Debug("Animating zoom", zap.Float64("factor", a.Factor), zap.Float64("scale", a.Scale))
			it.view.AnimateTo(a.Factor, a.FocusX, a.FocusY, now)
		}
	}
}

// drain applies finished load stages without blocking.
func (it *ImageItem) drain() {
	for it.updates != nil {
		select {
		case u, ok := <-it.updates:
			if !ok {
				it.updates = nil
				return
			}
			it.apply(u)
		default:
			return
		}
	}
}

func (it *ImageItem) apply(u loader.Update) {
	if u.Err != nil {
		it.loadErr = u.Err
		it.log.Error("Unable to load image", zap.Error(u.Err))
		if it.hasTexture {
			// The preview is all there is; let it define the size.
			it.machine.DiscoverDimensions(it.textureDims)
		}
		return
	}
	res := u.Result
	if res.Stage == loader.StagePreview && it.final {
		return
	}
	it.texture = paint.NewImageOp(res.Image)
	it.textureDims = res.Dimensions
	it.hasTexture = true
	if res.Stage == loader.StageFinal {
		it.final = true
		it.machine.DiscoverDimensions(res.Dimensions)
	}
	it.log.Debug("Image stage ready",
		zap.Stringer("stage", res.Stage),
		zap.String("location", res.Location),
		zap.String("mime", res.MIME),
		zap.Stringer("size", res.Dimensions),
		zap.Duration("elapsed", time.Since(it.loadStart)))
}

// paint draws the scene and returns when the next frame is needed, zero
// for none.
func (it *ImageItem) paint(gtx layout.Context, viewport core.Size) time.Time {
	st := it.machine.State()
	draw.DrawBackdrop(gtx, st.Opacity)

	natural, v := it.target(viewport)
	switch {
	case it.hasTexture:
		draw.DrawImage(gtx, it.texture, natural, v)
	case it.loadErr != nil:
		draw.DrawError(gtx)
	default:
		return draw.DrawPlaceholder(gtx, v, natural, it.loadStart)
	}
	return time.Time{}
}

// target picks the size the image is laid out at and its visual. Known
// dimensions win; otherwise a preview is fitted on its own.
func (it *ImageItem) target(viewport core.Size) (core.Size, core.Visual) {
	dims := it.machine.Dimensions()
	if dims.Known() || !it.hasTexture {
		return dims, it.machine.Visual(it.view.Zoom, it.view.OffsetX, it.view.OffsetY)
	}
	fit := core.ComputeTransform(it.textureDims, viewport)
	return it.textureDims, core.Compose(fit, it.view.Zoom, it.view.OffsetX, it.view.OffsetY, it.machine.State().Opacity)
}
