// Package raster draws board state into RGBA images. Geometry is filled
// and outlined through golang.org/x/image/vector; numeral labels are
// drawn with x/image font faces.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/noutice/happy-color-poc/pkg/graphics"
	pathpkg "github.com/noutice/happy-color-poc/pkg/path"

	"golang.org/x/image/vector"
)

// Canvas is a fixed-size RGBA drawing surface.
type Canvas struct {
	img    *image.RGBA
	width  int
	height int

	background color.Color
}

// NewCanvas creates a canvas with the given pixel dimensions, cleared
// to white.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{
		img:        image.NewRGBA(image.Rect(0, 0, width, height)),
		width:      width,
		height:     height,
		background: color.White,
	}
	c.Clear()
	return c
}

// Image returns the underlying RGBA image.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int {
	return c.width
}

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int {
	return c.height
}

// SetBackground sets the color used by Clear.
func (c *Canvas) SetBackground(col color.Color) {
	c.background = col
}

// Clear fills the canvas with the background color.
func (c *Canvas) Clear() {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(c.background), image.Point{}, draw.Src)
}

// Fill fills a path with the given color. Filling uses the non-zero
// winding rule; even-odd geometry must be resolved before rasterizing.
func (c *Canvas) Fill(path *graphics.Path, col color.Color) {
	if path.IsEmpty() {
		return
	}

	r := &vector.Rasterizer{}
	r.Reset(c.width, c.height)
	pathpkg.ToVector(path, r)
	r.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{})
}

// Stroke draws the outline of a path by expanding it into a fillable
// ribbon of the given width. Each sub-contour is outlined separately.
func (c *Canvas) Stroke(path *graphics.Path, col color.Color, width float64, cap graphics.LineCap, join graphics.LineJoin) {
	if path.IsEmpty() || width <= 0 {
		return
	}
	c.Fill(strokeToPath(path, width, cap, join), col)
}

// GetPixel returns the pixel color at x, y, or transparent outside the
// canvas.
func (c *Canvas) GetPixel(x, y int) color.Color {
	if x >= 0 && x < c.width && y >= 0 && y < c.height {
		return c.img.At(x, y)
	}
	return color.Transparent
}

// WritePNG encodes an image as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

type strokeSegment struct {
	start, end graphics.Point
}

// strokeToPath converts a stroke into a fillable ribbon path. Curves
// are flattened first, then each sub-contour's segment chain is offset
// to both sides and joined through end caps.
func strokeToPath(path *graphics.Path, width float64, cap graphics.LineCap, join graphics.LineJoin) *graphics.Path {
	halfWidth := width / 2
	result := graphics.NewPath()

	var chain []strokeSegment
	var current, start graphics.Point

	flush := func() {
		if len(chain) > 0 {
			outlineChain(result, chain, halfWidth, cap)
			chain = nil
		}
	}

	for _, seg := range path.Flattened().Segments {
		switch seg.Op {
		case graphics.PathOpMoveTo:
			flush()
			current = seg.Points[0]
			start = current
		case graphics.PathOpLineTo:
			end := seg.Points[0]
			if end != current {
				chain = append(chain, strokeSegment{start: current, end: end})
			}
			current = end
		case graphics.PathOpClose:
			if current != start {
				chain = append(chain, strokeSegment{start: current, end: start})
			}
			current = start
			flush()
		}
	}
	flush()

	return result
}

// outlineChain appends the ribbon outline of one segment chain to the
// path: the left offsets forward, an end cap, the right offsets
// backward, a start cap.
func outlineChain(result *graphics.Path, segments []strokeSegment, halfWidth float64, cap graphics.LineCap) {
	first := true
	for _, seg := range segments {
		dx := seg.end.X - seg.start.X
		dy := seg.end.Y - seg.start.Y
		length := math.Sqrt(dx*dx + dy*dy)
		if length == 0 {
			continue
		}

		nx := -dy / length
		ny := dx / length

		x1 := seg.start.X + nx*halfWidth
		y1 := seg.start.Y + ny*halfWidth
		x2 := seg.end.X + nx*halfWidth
		y2 := seg.end.Y + ny*halfWidth

		if first {
			result.MoveTo(x1, y1)
			first = false
		} else {
			result.LineTo(x1, y1)
		}
		result.LineTo(x2, y2)
	}
	if first {
		return
	}

	last := segments[len(segments)-1]
	addCap(result, last.end, last, halfWidth, cap, false)

	for i := len(segments) - 1; i >= 0; i-- {
		seg := segments[i]
		dx := seg.end.X - seg.start.X
		dy := seg.end.Y - seg.start.Y
		length := math.Sqrt(dx*dx + dy*dy)
		if length == 0 {
			continue
		}

		nx := dy / length
		ny := -dx / length

		result.LineTo(seg.end.X+nx*halfWidth, seg.end.Y+ny*halfWidth)
		result.LineTo(seg.start.X+nx*halfWidth, seg.start.Y+ny*halfWidth)
	}

	addCap(result, segments[0].start, segments[0], halfWidth, cap, true)
	result.Close()
}

// addCap extends the ribbon outline around a chain endpoint.
func addCap(path *graphics.Path, pt graphics.Point, seg strokeSegment, halfWidth float64, cap graphics.LineCap, isStart bool) {
	dx := seg.end.X - seg.start.X
	dy := seg.end.Y - seg.start.Y
	length := math.Sqrt(dx*dx + dy*dy)
	if length == 0 {
		return
	}

	switch cap {
	case graphics.LineCapRound:
		nx := -dy / length
		ny := dx / length
		if isStart {
			nx, ny = -nx, -ny
		}
		for i := 0; i <= 8; i++ {
			angle := float64(i) * math.Pi / 8
			x := pt.X + halfWidth*(nx*math.Cos(angle)+dx/length*math.Sin(angle))
			y := pt.Y + halfWidth*(ny*math.Cos(angle)+dy/length*math.Sin(angle))
			path.LineTo(x, y)
		}
	case graphics.LineCapSquare:
		tx := dx / length * halfWidth
		ty := dy / length * halfWidth
		if isStart {
			tx, ty = -tx, -ty
		}
		nx := -dy / length * halfWidth
		ny := dx / length * halfWidth

		path.LineTo(pt.X+tx+nx, pt.Y+ty+ny)
		path.LineTo(pt.X+tx-nx, pt.Y+ty-ny)
	case graphics.LineCapButt:
		// ribbon sides meet directly
	}
}
