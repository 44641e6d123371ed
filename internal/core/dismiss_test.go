package core

import (
	"math"
	"testing"
)

func TestShouldDismiss(t *testing.T) {
	tests := []struct {
		name     string
		policy   DismissPolicy
		velocity float64
		offset   float64
		want     bool
	}{
		{"fast down", DefaultDismissPolicy, 0.6, 0, true},
		{"fast up", DefaultDismissPolicy, -0.6, 0, true},
		{"slow", DefaultDismissPolicy, 0.5, 0, false},
		{"at threshold", DefaultDismissPolicy, 0.55, 0, false},
		{"missing velocity", DefaultDismissPolicy, math.NaN(), 200, false},
		{"far but offset rule off", DefaultDismissPolicy, 0.1, 400, false},
		{"far with offset rule", DismissPolicy{Velocity: 0.55, Offset: 150}, 0.1, -200, true},
		{"near with offset rule", DismissPolicy{Velocity: 0.55, Offset: 150}, 0.1, 100, false},
		{"zero policy uses default velocity", DismissPolicy{}, 0.6, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.policy.ShouldDismiss(tt.velocity, tt.offset); got != tt.want {
				t.Errorf("ShouldDismiss(%v, %v) = %v, want %v", tt.velocity, tt.offset, got, tt.want)
			}
		})
	}
}
