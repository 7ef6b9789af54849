// Package path provides path construction utilities shared by the shape
// extractor and the rasterizer.
package path

import (
	"github.com/noutice/happy-color-poc/pkg/graphics"

	"golang.org/x/image/vector"
)

// ToVector feeds a graphics.Path into a golang.org/x/image/vector
// rasterizer. Sub-contours without an explicit close are closed here,
// matching the fill semantics of graphics.Path.
func ToVector(p *graphics.Path, rasterizer *vector.Rasterizer) {
	open := false
	for _, seg := range p.Segments {
		switch seg.Op {
		case graphics.PathOpMoveTo:
			if len(seg.Points) >= 1 {
				if open {
					rasterizer.ClosePath()
				}
				rasterizer.MoveTo(
					float32(seg.Points[0].X),
					float32(seg.Points[0].Y),
				)
				open = true
			}
		case graphics.PathOpLineTo:
			if len(seg.Points) >= 1 {
				rasterizer.LineTo(
					float32(seg.Points[0].X),
					float32(seg.Points[0].Y),
				)
			}
		case graphics.PathOpCurveTo:
			if len(seg.Points) >= 3 {
				rasterizer.CubeTo(
					float32(seg.Points[0].X), float32(seg.Points[0].Y),
					float32(seg.Points[1].X), float32(seg.Points[1].Y),
					float32(seg.Points[2].X), float32(seg.Points[2].Y),
				)
			}
		case graphics.PathOpClose:
			rasterizer.ClosePath()
			open = false
		}
	}
	if open {
		rasterizer.ClosePath()
	}
}

// Builder provides a fluent interface for building paths.
type Builder struct {
	path *graphics.Path
}

// NewBuilder creates a new path builder.
func NewBuilder() *Builder {
	return &Builder{
		path: graphics.NewPath(),
	}
}

// MoveTo starts a new sub-contour.
func (b *Builder) MoveTo(x, y float64) *Builder {
	b.path.MoveTo(x, y)
	return b
}

// LineTo draws a line to the given point.
func (b *Builder) LineTo(x, y float64) *Builder {
	b.path.LineTo(x, y)
	return b
}

// CurveTo draws a cubic Bezier curve.
func (b *Builder) CurveTo(cp1x, cp1y, cp2x, cp2y, x, y float64) *Builder {
	b.path.CurveTo(cp1x, cp1y, cp2x, cp2y, x, y)
	return b
}

// QuadTo draws a quadratic Bezier curve (converted to cubic).
func (b *Builder) QuadTo(cpx, cpy, x, y float64) *Builder {
	// Convert quadratic to cubic
	// Current point
	cur := b.path.CurrentPoint()

	// Control points for cubic
	cp1x := cur.X + 2.0/3.0*(cpx-cur.X)
	cp1y := cur.Y + 2.0/3.0*(cpy-cur.Y)
	cp2x := x + 2.0/3.0*(cpx-x)
	cp2y := y + 2.0/3.0*(cpy-y)

	b.path.CurveTo(cp1x, cp1y, cp2x, cp2y, x, y)
	return b
}

// Close closes the current sub-contour.
func (b *Builder) Close() *Builder {
	b.path.Close()
	return b
}

// Rect adds a rectangle as one closed sub-contour.
func (b *Builder) Rect(x, y, w, h float64) *Builder {
	b.MoveTo(x, y)
	b.LineTo(x+w, y)
	b.LineTo(x+w, y+h)
	b.LineTo(x, y+h)
	b.Close()
	return b
}

// RoundRect adds a rounded rectangle to the path.
func (b *Builder) RoundRect(x, y, w, h, rx, ry float64) *Builder {
	// Clamp radii
	if rx > w/2 {
		rx = w / 2
	}
	if ry > h/2 {
		ry = h / 2
	}

	// Magic number for cubic bezier approximation of quarter circle
	k := 0.5522847498307936

	b.MoveTo(x+rx, y)
	b.LineTo(x+w-rx, y)
	b.CurveTo(x+w-rx+rx*k, y, x+w, y+ry-ry*k, x+w, y+ry)
	b.LineTo(x+w, y+h-ry)
	b.CurveTo(x+w, y+h-ry+ry*k, x+w-rx+rx*k, y+h, x+w-rx, y+h)
	b.LineTo(x+rx, y+h)
	b.CurveTo(x+rx-rx*k, y+h, x, y+h-ry+ry*k, x, y+h-ry)
	b.LineTo(x, y+ry)
	b.CurveTo(x, y+ry-ry*k, x+rx-rx*k, y, x+rx, y)
	b.Close()

	return b
}

// Circle adds a circle to the path.
func (b *Builder) Circle(cx, cy, r float64) *Builder {
	return b.Ellipse(cx, cy, r, r)
}

// Ellipse adds an ellipse built from four cubic arcs.
func (b *Builder) Ellipse(cx, cy, rx, ry float64) *Builder {
	k := 0.5522847498307936

	b.MoveTo(cx+rx, cy)
	b.CurveTo(cx+rx, cy+ry*k, cx+rx*k, cy+ry, cx, cy+ry)
	b.CurveTo(cx-rx*k, cy+ry, cx-rx, cy+ry*k, cx-rx, cy)
	b.CurveTo(cx-rx, cy-ry*k, cx-rx*k, cy-ry, cx, cy-ry)
	b.CurveTo(cx+rx*k, cy-ry, cx+rx, cy-ry*k, cx+rx, cy)
	b.Close()

	return b
}

// Polygon adds the point sequence as one closed sub-contour.
func (b *Builder) Polygon(points []graphics.Point) *Builder {
	if len(points) == 0 {
		return b
	}
	b.MoveTo(points[0].X, points[0].Y)
	for _, pt := range points[1:] {
		b.LineTo(pt.X, pt.Y)
	}
	b.Close()
	return b
}

// Polyline adds the point sequence, closed like a polygon. Every region
// must support filling, so open polylines are not representable here.
func (b *Builder) Polyline(points []graphics.Point) *Builder {
	return b.Polygon(points)
}

// Build returns the constructed path.
func (b *Builder) Build() *graphics.Path {
	return b.path
}

// Clear resets the builder for reuse.
func (b *Builder) Clear() *Builder {
	b.path = graphics.NewPath()
	return b
}
