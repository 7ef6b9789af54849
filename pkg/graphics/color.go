package graphics

import (
	"fmt"
)

// RGBA is the 8-bit color value carried by palette entries and regions.
// The zero value is fully transparent.
type RGBA struct {
	R, G, B, A uint8
}

// Transparent returns the sentinel for fills that paint nothing.
// Nodes resolving to it produce no region.
func Transparent() RGBA {
	return RGBA{}
}

// White returns the placeholder color unfilled regions display.
func White() RGBA {
	return RGBA{255, 255, 255, 255}
}

// Black returns opaque black.
func Black() RGBA {
	return RGBA{0, 0, 0, 255}
}

// Gray returns the fallback color for unparsable fill tokens.
func Gray() RGBA {
	return RGBA{158, 158, 158, 255}
}

// IsTransparent reports whether the color paints nothing.
func (c RGBA) IsTransparent() bool {
	return c.A == 0
}

// RGBA implements image/color.Color with the usual alpha-premultiplied
// conversion, so values plug directly into image fills and uniforms.
func (c RGBA) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	r *= uint32(c.A)
	r /= 0xff
	g = uint32(c.G)
	g |= g << 8
	g *= uint32(c.A)
	g /= 0xff
	b = uint32(c.B)
	b |= b << 8
	b *= uint32(c.A)
	b /= 0xff
	a = uint32(c.A)
	a |= a << 8
	return
}

// Hex returns the color as a #rrggbb string. Alpha is not encoded.
func (c RGBA) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// LineCap represents the line cap style for stroked outlines.
type LineCap int

const (
	LineCapButt   LineCap = 0
	LineCapRound  LineCap = 1
	LineCapSquare LineCap = 2
)

// LineJoin represents the line join style for stroked outlines.
type LineJoin int

const (
	LineJoinMiter LineJoin = 0
	LineJoinRound LineJoin = 1
	LineJoinBevel LineJoin = 2
)
