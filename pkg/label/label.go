// Package label places numeral labels inside region geometry. Given a
// region's path, a zoom factor and the text to draw, it picks the
// largest font size whose centered text box sits entirely inside the
// shape, with a fallback for slivers that cannot hold one.
package label

import (
	"math"

	"github.com/noutice/happy-color-poc/pkg/font"
	"github.com/noutice/happy-color-poc/pkg/graphics"
)

const (
	// Font size targets in document units. The desired size is the
	// on-screen base divided by the zoom, so labels keep a roughly
	// constant apparent size as the view scales.
	baseFontSize       = 16.0
	minFontSize        = 5.0
	relaxedMinFontSize = 3.0
	maxFontSize        = 40.0

	// Geometries with a bounding box under this size in either
	// dimension get a second placement pass at the relaxed minimum.
	smallGeometryExtent = 10.0

	// No label is attempted at all when a bounding-box dimension is at
	// or below this.
	minLabelExtent = 1.0

	insetFraction    = 0.15
	gridSteps        = 6
	fitStartFraction = 0.40
	shrinkStep       = 0.25

	fallbackMinFontSize = 2.0
)

// Measurer reports text extents at a font size. *font.Measurer
// satisfies it.
type Measurer interface {
	StringWidth(s string, size float64) float64
	Metrics(size float64) font.Metrics
}

// Placement is a sized, anchored label. Anchor is the center of the
// text box in document coordinates. Fallback marks placements that were
// forced onto geometry too small for strict containment and may
// overflow it.
type Placement struct {
	FontSize float64
	Anchor   graphics.Point
	Fallback bool
}

// Engine computes label placements. It holds no per-region state, so
// one engine serves a whole document.
type Engine struct {
	measurer Measurer
}

// NewEngine creates an engine over the given measurer.
func NewEngine(m Measurer) *Engine {
	return &Engine{measurer: m}
}

// Place chooses a font size and anchor so that text drawn centered on
// the anchor stays inside geom. A nil result means the geometry is too
// small to carry any label. Placements with Fallback set are anchored
// at the bounding-box center without a containment guarantee. A
// non-positive zoom is treated as 1.
func (e *Engine) Place(geom *graphics.Path, zoom float64, text string) *Placement {
	if geom == nil || geom.IsEmpty() || text == "" {
		return nil
	}
	bounds := geom.Bounds()
	if bounds.Width <= minLabelExtent || bounds.Height <= minLabelExtent {
		return nil
	}
	if zoom <= 0 {
		zoom = 1
	}

	desired := clamp(baseFontSize/zoom, minFontSize, maxFontSize)
	inset := bounds.Inset(insetFraction)

	passes := []float64{minFontSize}
	if bounds.Width < smallGeometryExtent || bounds.Height < smallGeometryExtent {
		passes = append(passes, relaxedMinFontSize)
	}

	candidates := e.candidates(geom, bounds, inset)
	for _, minSize := range passes {
		for _, anchor := range candidates {
			if size, ok := e.fit(geom, inset, anchor, text, desired, minSize); ok {
				return &Placement{FontSize: size, Anchor: anchor}
			}
		}
	}

	// Nothing fits strictly. Pin a small label to the bounding-box
	// center so every region still shows its number.
	size := clamp(0.5*math.Min(bounds.Width, bounds.Height), fallbackMinFontSize, maxFontSize)
	return &Placement{FontSize: size, Anchor: bounds.Center(), Fallback: true}
}

// candidates returns anchor points to try, best first: the inset-box
// center when it lies inside the shape, otherwise interior grid points
// over the inset box, otherwise the plain bounding-box center.
func (e *Engine) candidates(geom *graphics.Path, bounds, inset graphics.Rect) []graphics.Point {
	center := inset.Center()
	if geom.Contains(center, graphics.FillRuleNonZero) {
		return []graphics.Point{center}
	}

	var pts []graphics.Point
	for iy := 0; iy < gridSteps; iy++ {
		for ix := 0; ix < gridSteps; ix++ {
			p := graphics.Point{
				X: inset.X + inset.Width*(float64(ix)+0.5)/gridSteps,
				Y: inset.Y + inset.Height*(float64(iy)+0.5)/gridSteps,
			}
			if geom.Contains(p, graphics.FillRuleNonZero) {
				pts = append(pts, p)
			}
		}
	}
	if len(pts) > 0 {
		return pts
	}

	if c := bounds.Center(); geom.Contains(c, graphics.FillRuleNonZero) {
		return []graphics.Point{c}
	}
	return nil
}

// fit finds the largest size in [minSize, maxFontSize] at which the
// text box centered on anchor fits the inset box and has all four
// corners inside the geometry. The search starts below the desired size
// for narrow insets and shrinks in fixed steps.
func (e *Engine) fit(geom *graphics.Path, inset graphics.Rect, anchor graphics.Point, text string, desired, minSize float64) (float64, bool) {
	start := math.Min(desired, fitStartFraction*math.Min(inset.Width, inset.Height))
	start = clamp(start, minSize, maxFontSize)

	for size := start; size >= minSize; size -= shrinkStep {
		w := e.measurer.StringWidth(text, size)
		met := e.measurer.Metrics(size)
		h := met.Ascent + met.Descent
		if w > inset.Width || h > inset.Height {
			continue
		}

		box := graphics.Rect{X: anchor.X - w/2, Y: anchor.Y - h/2, Width: w, Height: h}
		if !containsRect(inset, box) {
			continue
		}
		if !cornersInside(geom, box) {
			continue
		}
		return size, true
	}
	return 0, false
}

// containsRect reports whether inner lies entirely within outer.
func containsRect(outer, inner graphics.Rect) bool {
	return inner.X >= outer.X && inner.Y >= outer.Y &&
		inner.X+inner.Width <= outer.X+outer.Width &&
		inner.Y+inner.Height <= outer.Y+outer.Height
}

// cornersInside reports whether all four corners of the box are inside
// the geometry.
func cornersInside(geom *graphics.Path, box graphics.Rect) bool {
	corners := []graphics.Point{
		{X: box.X, Y: box.Y},
		{X: box.X + box.Width, Y: box.Y},
		{X: box.X + box.Width, Y: box.Y + box.Height},
		{X: box.X, Y: box.Y + box.Height},
	}
	for _, c := range corners {
		if !geom.Contains(c, graphics.FillRuleNonZero) {
			return false
		}
	}
	return true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
