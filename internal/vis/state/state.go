// Package state implements the gesture state machine of the image viewer:
// a pure reducer over (ViewState, Event) and a Machine that owns the state
// for one rendered image.
package state

import (
	"fmt"
	"time"

	"github.com/elektrokombinacija/zoomview/internal/core"
)

// DefaultLongPressDelay matches the long-press delay used when none is configured.
const DefaultLongPressDelay = 800 * time.Millisecond

// Options are the per-mount viewer settings.
type Options struct {
	SwipeToCloseEnabled    bool
	DoubleTapToZoomEnabled bool
	LongPressDelay         time.Duration
	Dismiss                core.DismissPolicy
}

// DefaultOptions returns the settings used when the host overrides nothing.
func DefaultOptions() Options {
	return Options{
		SwipeToCloseEnabled:    true,
		DoubleTapToZoomEnabled: true,
		LongPressDelay:         DefaultLongPressDelay,
		Dismiss:                core.DefaultDismissPolicy,
	}
}

// Mode names the two states of the machine.
type Mode int

const (
	Fitted Mode = iota // zoom factor 1, swipe to close active
	Zoomed             // zoom factor above 1, drags pan the image
)

func (m Mode) String() string {
	switch m {
	case Fitted:
		return "Fitted"
	case Zoomed:
		return "Zoomed"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ViewState is the mutable state owned by one Machine.
type ViewState struct {
	Scaled        bool
	ScrollOffsetY float64
	Opacity       float64
}

// InitialViewState is the state of a freshly mounted image.
func InitialViewState() ViewState {
	return ViewState{Opacity: 1}
}

// Mode returns the machine state the view is in.
func (s ViewState) Mode() Mode {
	if s.Scaled {
		return Zoomed
	}
	return Fitted
}

// Geometry carries the derived values the reducer needs from the transform.
type Geometry struct {
	Fit      core.Transform
	MaxScale float64
	Source   core.ImageSource
}
