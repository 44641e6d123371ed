package state

import (
	"math"
	"reflect"
	"testing"

	"github.com/elektrokombinacija/zoomview/internal/core"
)

func scenarioGeometry() Geometry {
	fit := core.ComputeTransform(core.Size{Width: 2160, Height: 1080}, core.Size{Width: 1080, Height: 1920})
	return Geometry{
		Fit:      fit,
		MaxScale: core.MaxScale(fit),
		Source:   core.ImageSource{URL: "wide.png"},
	}
}

func countClose(effects []Effect) int {
	n := 0
	for _, e := range effects {
		if _, ok := e.(RequestCloseEffect); ok {
			n++
		}
	}
	return n
}

func TestReduceDragEndDismiss(t *testing.T) {
	tests := []struct {
		name      string
		opts      Options
		start     ViewState
		ev        DragEndEvent
		wantClose int
	}{
		{"fast swipe closes", DefaultOptions(), InitialViewState(), DragEndEvent{VelocityY: 0.6, ZoomScale: 1}, 1},
		{"fast swipe up closes", DefaultOptions(), InitialViewState(), DragEndEvent{VelocityY: -0.9, ZoomScale: 1}, 1},
		{"slow swipe stays", DefaultOptions(), InitialViewState(), DragEndEvent{VelocityY: 0.5, ZoomScale: 1}, 0},
		{"zoomed pan stays", DefaultOptions(), InitialViewState(), DragEndEvent{VelocityY: 5, ZoomScale: 1.2}, 0},
		{"zoomed pan from zoomed stays", DefaultOptions(), ViewState{Scaled: true, Opacity: 1}, DragEndEvent{VelocityY: 0.6, ZoomScale: 1.2}, 0},
		{"disabled swipe stays", Options{Dismiss: core.DefaultDismissPolicy}, InitialViewState(), DragEndEvent{VelocityY: 2, ZoomScale: 1}, 0},
		{"missing fields stay", DefaultOptions(), InitialViewState(), DragEndEvent{VelocityY: math.NaN()}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, effects := Reduce(tt.opts, scenarioGeometry(), tt.start, tt.ev)
			if got := countClose(effects); got != tt.wantClose {
				t.Errorf("close effects = %d, want %d (%#v)", got, tt.wantClose, effects)
			}
		})
	}
}

func TestReduceDragEndOffsetPolicy(t *testing.T) {
	opts := DefaultOptions()
	opts.Dismiss.Offset = 150

	_, effects := Reduce(opts, scenarioGeometry(), InitialViewState(), DragEndEvent{VelocityY: 0.1, ZoomScale: 1, OffsetY: 200})
	if countClose(effects) != 1 {
		t.Errorf("large displacement should dismiss with offset policy, got %#v", effects)
	}

	_, effects = Reduce(DefaultOptions(), scenarioGeometry(), InitialViewState(), DragEndEvent{VelocityY: 0.1, ZoomScale: 1, OffsetY: 200})
	if countClose(effects) != 0 {
		t.Errorf("displacement alone should not dismiss by default, got %#v", effects)
	}
}

func TestReduceScrollFade(t *testing.T) {
	geo := scenarioGeometry()
	s, effects := Reduce(DefaultOptions(), geo, InitialViewState(), ScrollEvent{OffsetY: 75, ZoomScale: 1})
	if len(effects) != 0 {
		t.Errorf("unexpected effects %#v", effects)
	}
	if s.ScrollOffsetY != 75 || s.Opacity != 0.5 {
		t.Errorf("state = %+v, want offset 75 opacity 0.5", s)
	}

	s, _ = Reduce(DefaultOptions(), geo, s, ScrollEvent{OffsetY: -37.5, ZoomScale: 1})
	if s.Opacity != 0.75 {
		t.Errorf("opacity = %v, want 0.75", s.Opacity)
	}

	// Without swipe to close the offset is not tracked at all.
	s, _ = Reduce(Options{}, geo, InitialViewState(), ScrollEvent{OffsetY: 75, ZoomScale: 1})
	if s != InitialViewState() {
		t.Errorf("state = %+v, want initial", s)
	}
}

func TestReduceLiveZoomTransitions(t *testing.T) {
	geo := scenarioGeometry()
	opts := DefaultOptions()
	s := InitialViewState()

	var all []Effect
	for _, z := range []float64{1, 1.1, 1.5, 1.9, 1.4, 1.0} {
		var effects []Effect
		s, effects = Reduce(opts, geo, s, ZoomEvent{ZoomScale: z})
		all = append(all, effects...)
	}
	want := []Effect{ZoomEffect{Scaled: true}, ZoomEffect{Scaled: false}}
	if !reflect.DeepEqual(all, want) {
		t.Errorf("effects = %#v, want %#v", all, want)
	}
	if s.Mode() != Fitted {
		t.Errorf("mode = %v, want Fitted", s.Mode())
	}
}

func TestReduceScrollWhileZoomedKeepsOffset(t *testing.T) {
	geo := scenarioGeometry()
	s := ViewState{Scaled: true, Opacity: 1}
	s, effects := Reduce(DefaultOptions(), geo, s, ScrollEvent{OffsetY: 300, ZoomScale: 1.7})
	if len(effects) != 0 {
		t.Errorf("unexpected effects %#v", effects)
	}
	if s.ScrollOffsetY != 0 || s.Opacity != 1 {
		t.Errorf("zoomed scroll must not fade: %+v", s)
	}
}

func TestReduceEnteringZoomResetsFade(t *testing.T) {
	s := ViewState{ScrollOffsetY: 50, Opacity: fade50()}
	s, _ = Reduce(DefaultOptions(), scenarioGeometry(), s, ZoomEvent{ZoomScale: 1.3})
	if s.Opacity != 1 || s.ScrollOffsetY != 0 {
		t.Errorf("state = %+v, want fade reset", s)
	}
}

func fade50() float64 {
	return core.Fade(50, core.SwipeCloseOffset)
}

func TestReduceDoubleTapScenario(t *testing.T) {
	geo := scenarioGeometry()
	opts := DefaultOptions()

	s, effects := Reduce(opts, geo, InitialViewState(), DoubleTapEvent{X: 540, Y: 960})
	want := []Effect{
		AnimateZoomEffect{Factor: 2, Scale: 1, FocusX: 540, FocusY: 960},
		ZoomEffect{Scaled: true},
	}
	if !reflect.DeepEqual(effects, want) {
		t.Fatalf("first double tap effects = %#v, want %#v", effects, want)
	}
	if s.Mode() != Zoomed {
		t.Fatalf("mode = %v, want Zoomed", s.Mode())
	}

	s, effects = Reduce(opts, geo, s, DoubleTapEvent{X: 10, Y: 20})
	want = []Effect{
		AnimateZoomEffect{Factor: 1, Scale: 0.5, FocusX: 10, FocusY: 20},
		ZoomEffect{Scaled: false},
	}
	if !reflect.DeepEqual(effects, want) {
		t.Fatalf("second double tap effects = %#v, want %#v", effects, want)
	}
	if s.Mode() != Fitted {
		t.Errorf("mode = %v, want Fitted", s.Mode())
	}
}

func TestReduceDoubleTapAtNaturalSize(t *testing.T) {
	// An image smaller than the viewport is already past 1:1 when fitted.
	fit := core.ComputeTransform(core.Size{Width: 100, Height: 100}, core.Size{Width: 1080, Height: 1920})
	geo := Geometry{Fit: fit, MaxScale: core.MaxScale(fit)}

	s, effects := Reduce(DefaultOptions(), geo, InitialViewState(), DoubleTapEvent{})
	if len(effects) != 1 {
		t.Fatalf("effects = %#v, want a single animation", effects)
	}
	if a := effects[0].(AnimateZoomEffect); a.Factor != 1 {
		t.Errorf("factor = %v, want 1", a.Factor)
	}
	if s.Scaled {
		t.Error("state must stay Fitted")
	}
}

func TestReduceDoubleTapDisabled(t *testing.T) {
	opts := DefaultOptions()
	opts.DoubleTapToZoomEnabled = false
	s, effects := Reduce(opts, scenarioGeometry(), InitialViewState(), DoubleTapEvent{})
	if len(effects) != 0 || s != InitialViewState() {
		t.Errorf("disabled double tap changed state: %+v %#v", s, effects)
	}
}

func TestReduceLongPress(t *testing.T) {
	geo := scenarioGeometry()
	start := ViewState{Scaled: true, ScrollOffsetY: 12, Opacity: 0.9}
	s, effects := Reduce(DefaultOptions(), geo, start, LongPressEvent{})
	if s != start {
		t.Errorf("long press mutated state: %+v", s)
	}
	want := []Effect{LongPressEffect{Source: geo.Source}}
	if !reflect.DeepEqual(effects, want) {
		t.Errorf("effects = %#v, want %#v", effects, want)
	}
}

func TestModeString(t *testing.T) {
	if Fitted.String() != "Fitted" || Zoomed.String() != "Zoomed" {
		t.Errorf("unexpected mode names %q %q", Fitted, Zoomed)
	}
	if got := Mode(5).String(); got != "Mode(5)" {
		t.Errorf("Mode(5).String() = %q", got)
	}
}
