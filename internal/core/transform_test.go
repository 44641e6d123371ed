package core

import (
	"math"
	"testing"
)

const eps = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestComputeTransformUnknown(t *testing.T) {
	viewport := Size{Width: 1080, Height: 1920}
	for _, img := range []Size{{}, {Width: 100}, {Height: 100}, {Width: -5, Height: 10}} {
		if got := ComputeTransform(img, viewport); got != Identity {
			t.Errorf("ComputeTransform(%v) = %+v, want identity", img, got)
		}
	}
	if Identity != (Transform{Scale: 1}) {
		t.Errorf("Identity = %+v", Identity)
	}
}

func TestComputeTransformFitsAndCenters(t *testing.T) {
	tests := []struct {
		img, viewport Size
		scale         float64
	}{
		{Size{2160, 1080}, Size{1080, 1920}, 0.5},
		{Size{1080, 1920}, Size{1080, 1920}, 1},
		{Size{100, 100}, Size{1080, 1920}, 10.8},
		{Size{4000, 3000}, Size{800, 800}, 0.2},
		{Size{300, 3000}, Size{1000, 600}, 0.2},
	}

	for _, tt := range tests {
		got := ComputeTransform(tt.img, tt.viewport)
		if got.Scale <= 0 {
			t.Fatalf("ComputeTransform(%v, %v) scale = %v, want > 0", tt.img, tt.viewport, got.Scale)
		}
		if !approx(got.Scale, tt.scale) {
			t.Errorf("ComputeTransform(%v, %v) scale = %v, want %v", tt.img, tt.viewport, got.Scale, tt.scale)
		}

		w, h := tt.img.Width*got.Scale, tt.img.Height*got.Scale
		if w > tt.viewport.Width+eps || h > tt.viewport.Height+eps {
			t.Errorf("scaled image %vx%v overflows viewport %v", w, h, tt.viewport)
		}

		// Left/right and top/bottom margins must match.
		if !approx(got.TranslateX, tt.viewport.Width-(got.TranslateX+w)) {
			t.Errorf("horizontal margins differ: %v vs %v", got.TranslateX, tt.viewport.Width-(got.TranslateX+w))
		}
		if !approx(got.TranslateY, tt.viewport.Height-(got.TranslateY+h)) {
			t.Errorf("vertical margins differ: %v vs %v", got.TranslateY, tt.viewport.Height-(got.TranslateY+h))
		}
	}
}

func TestComputeTransformScenario(t *testing.T) {
	got := ComputeTransform(Size{Width: 2160, Height: 1080}, Size{Width: 1080, Height: 1920})
	want := Transform{Scale: 0.5, TranslateX: 0, TranslateY: (1920 - 540) / 2.0}
	if got != want {
		t.Errorf("ComputeTransform() = %+v, want %+v", got, want)
	}
	if m := MaxScale(got); m != 2 {
		t.Errorf("MaxScale() = %v, want 2", m)
	}
}

func TestMaxScale(t *testing.T) {
	tests := []struct {
		scale, want float64
	}{
		{0.5, 2},
		{0.25, 4},
		{1, 1},
		{3, 1},
		{0, 1},
		{-1, 1},
	}
	for _, tt := range tests {
		if got := MaxScale(Transform{Scale: tt.scale}); !approx(got, tt.want) {
			t.Errorf("MaxScale(%v) = %v, want %v", tt.scale, got, tt.want)
		}
	}
}

func TestTransformZoomed(t *testing.T) {
	tr := Transform{Scale: 0.5}
	if got := tr.Zoomed(2); got != 1 {
		t.Errorf("Zoomed(2) = %v, want 1", got)
	}
	if got := tr.Zoomed(FitZoom); got != 0.5 {
		t.Errorf("Zoomed(1) = %v, want 0.5", got)
	}
}

func TestCompose(t *testing.T) {
	fit := Transform{Scale: 0.5, TranslateY: 690}
	got := Compose(fit, 2, 100, 200, 0.7)
	want := Visual{Scale: 1, TranslateX: -100, TranslateY: 1180, Opacity: 0.7}
	if got != want {
		t.Errorf("Compose() = %+v, want %+v", got, want)
	}
	if got := Compose(fit, 0, 0, 0, 1); got.Scale != 0.5 || got.TranslateY != 690 {
		t.Errorf("Compose() with missing zoom = %+v", got)
	}
}
