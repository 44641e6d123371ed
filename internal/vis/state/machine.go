package state

import (
	"github.com/elektrokombinacija/zoomview/internal/core"
)

// Machine owns the view state of one rendered image. It is not safe for
// concurrent use; all calls must come from the UI event loop.
type Machine struct {
	opts     Options
	source   core.ImageSource
	viewport core.ViewportGeometry
	dims     core.ImageDimensions
	state    ViewState

	memo transformMemo
}

// transformMemo caches the fit transform for one (dims, viewport) pair.
type transformMemo struct {
	dims     core.ImageDimensions
	viewport core.ViewportGeometry
	fit      core.Transform
	valid    bool
	computed int
}

func (m *transformMemo) get(dims core.ImageDimensions, viewport core.ViewportGeometry) core.Transform {
	if m.valid && m.dims == dims && m.viewport == viewport {
		return m.fit
	}
	m.dims, m.viewport = dims, viewport
	m.fit = core.ComputeTransform(dims, viewport)
	m.valid = true
	m.computed++
	return m.fit
}

// NewMachine creates a machine for src shown in viewport. Size hints on
// src are taken as the final image dimensions.
func NewMachine(src core.ImageSource, viewport core.ViewportGeometry, opts Options) *Machine {
	return &Machine{
		opts:     opts,
		source:   src,
		viewport: viewport,
		dims:     src.Dimensions(),
		state:    InitialViewState(),
	}
}

// Options returns the settings the machine was mounted with.
func (m *Machine) Options() Options {
	return m.opts
}

// Source returns the image source.
func (m *Machine) Source() core.ImageSource {
	return m.source
}

// State returns a copy of the current view state.
func (m *Machine) State() ViewState {
	return m.state
}

// Dimensions returns the image dimensions, zero while unknown.
func (m *Machine) Dimensions() core.ImageDimensions {
	return m.dims
}

// Viewport returns the current viewport geometry.
func (m *Machine) Viewport() core.ViewportGeometry {
	return m.viewport
}

// DiscoverDimensions records the natural image size reported by the
// renderer. It is accepted exactly once, and only while the size is
// unknown; later reports are ignored and false is returned.
func (m *Machine) DiscoverDimensions(dims core.ImageDimensions) bool {
	if m.dims.Known() || !dims.Known() {
		return false
	}
	m.dims = dims
	return true
}

// SetViewport updates the viewport after a window resize.
func (m *Machine) SetViewport(viewport core.ViewportGeometry) {
	m.viewport = viewport
}

// Transform returns the fit transform, recomputed only when the image
// dimensions or the viewport changed since the last call.
func (m *Machine) Transform() core.Transform {
	return m.memo.get(m.dims, m.viewport)
}

// MaxScale returns the zoom ceiling for the current transform.
func (m *Machine) MaxScale() float64 {
	return core.MaxScale(m.Transform())
}

// Geometry returns the derived reducer inputs.
func (m *Machine) Geometry() Geometry {
	fit := m.Transform()
	return Geometry{
		Fit:      fit,
		MaxScale: core.MaxScale(fit),
		Source:   m.source,
	}
}

// Dispatch reduces ev into the machine state and returns the effects to perform.
func (m *Machine) Dispatch(ev Event) []Effect {
	var effects []Effect
	m.state, effects = Reduce(m.opts, m.Geometry(), m.state, ev)
	return effects
}

// Visual composes the fit transform with the scroll view zoom factor and
// content offset into what the renderer draws.
func (m *Machine) Visual(zoom, offsetX, offsetY float64) core.Visual {
	return core.Compose(m.Transform(), zoom, offsetX, offsetY, m.state.Opacity)
}
