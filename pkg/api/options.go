package api

import (
	"image/color"

	"github.com/noutice/happy-color-poc/pkg/raster"
)

// RenderOptions configures rendering behavior.
type RenderOptions struct {
	// Scale sets pixels per document unit.
	// Default: 1.0
	Scale float64

	// Zoom is the view magnification labels compensate for: higher
	// zoom yields smaller label sizes in document units.
	// Default: 1.0
	Zoom float64

	// Background sets the background color.
	// Default: white
	Background color.Color

	// Mode selects progress, outline or solution rendering.
	// Default: progress
	Mode raster.Mode

	// ShowLabels enables numeral labels on unfilled regions.
	// Default: true
	ShowLabels bool
}

// DefaultRenderOptions returns render options with sensible defaults.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		Scale:      1.0,
		Zoom:       1.0,
		Background: color.White,
		Mode:       raster.ModeProgress,
		ShowLabels: true,
	}
}

// WithScale returns options with the specified scale.
func WithScale(scale float64) RenderOptions {
	opts := DefaultRenderOptions()
	opts.Scale = scale
	return opts
}

// WithMode returns options with the specified render mode.
func WithMode(mode raster.Mode) RenderOptions {
	opts := DefaultRenderOptions()
	opts.Mode = mode
	return opts
}

// Option is a functional option for configuring RenderOptions.
type Option func(*RenderOptions)

// Scale sets pixels per document unit.
func Scale(scale float64) Option {
	return func(o *RenderOptions) {
		o.Scale = scale
	}
}

// Zoom sets the view magnification used for label sizing.
func Zoom(zoom float64) Option {
	return func(o *RenderOptions) {
		o.Zoom = zoom
	}
}

// Background sets the background color.
func Background(c color.Color) Option {
	return func(o *RenderOptions) {
		o.Background = c
	}
}

// Mode sets the render mode.
func Mode(m raster.Mode) Option {
	return func(o *RenderOptions) {
		o.Mode = m
	}
}

// Outline selects the printable outline mode.
func Outline() Option {
	return Mode(raster.ModeOutline)
}

// Solution selects the fully colored solution mode.
func Solution() Option {
	return Mode(raster.ModeSolution)
}

// NoLabels disables numeral labels.
func NoLabels() Option {
	return func(o *RenderOptions) {
		o.ShowLabels = false
	}
}

// NewRenderOptions creates options from functional options.
func NewRenderOptions(opts ...Option) RenderOptions {
	o := DefaultRenderOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Apply applies functional options to existing options.
func (o *RenderOptions) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(o)
	}
}
