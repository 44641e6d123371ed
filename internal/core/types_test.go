package core

import (
	"math"
	"testing"
)

func TestSizeKnown(t *testing.T) {
	tests := []struct {
		size Size
		want bool
	}{
		{Size{}, false},
		{Size{Width: 10}, false},
		{Size{Height: 10}, false},
		{Size{Width: -1, Height: 10}, false},
		{Size{Width: 1, Height: 1}, true},
	}

	for _, tt := range tests {
		if got := tt.size.Known(); got != tt.want {
			t.Errorf("%v.Known() = %v, want %v", tt.size, got, tt.want)
		}
	}
}

func TestImageSourceDimensions(t *testing.T) {
	src := ImageSource{URL: "a.png", Width: 640, Height: 480}
	if got := src.Dimensions(); got != (Size{Width: 640, Height: 480}) {
		t.Errorf("Dimensions() = %v, want 640x480", got)
	}

	// A single hint is not enough to fit the image.
	src = ImageSource{URL: "a.png", Width: 640}
	if got := src.Dimensions(); got.Known() {
		t.Errorf("Dimensions() with missing height = %v, want unknown", got)
	}

	src = ImageSource{URL: "a.png", Width: math.NaN(), Height: 10}
	if got := src.Dimensions(); got.Known() {
		t.Errorf("Dimensions() with NaN width = %v, want unknown", got)
	}
}

func TestFinite(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if got := Finite(v); got != 0 {
			t.Errorf("Finite(%v) = %v, want 0", v, got)
		}
	}
	if got := Finite(-2.5); got != -2.5 {
		t.Errorf("Finite(-2.5) = %v", got)
	}
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		in      string
		want    Size
		wantErr bool
	}{
		{"1080x1920", Size{Width: 1080, Height: 1920}, false},
		{" 320X240 ", Size{Width: 320, Height: 240}, false},
		{"12.5x4", Size{Width: 12.5, Height: 4}, false},
		{"1080", Size{}, true},
		{"0x100", Size{}, true},
		{"axb", Size{}, true},
		{"100x-1", Size{}, true},
		{"infx10", Size{}, true},
	}
	for _, tt := range tests {
		got, err := ParseSize(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseSize(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseSize(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
