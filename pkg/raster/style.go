package raster

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/noutice/happy-color-poc/pkg/graphics"
)

// Blend strengths for highlight previews. Blending runs in Lab space so
// the preview keeps the palette color's hue while reading as unfilled.
const (
	highlightBlend = 0.65
	focusBlend     = 0.45
	outlineBlend   = 0.50
)

// labelLuminance is the Lab lightness above which label text switches
// from light to dark.
const labelLuminance = 0.6

// highlightTint returns the preview fill for a highlighted, unfilled
// region: its palette color pulled toward white.
func highlightTint(c graphics.RGBA) color.NRGBA {
	return blendToward(c, colorful.Color{R: 1, G: 1, B: 1}, highlightBlend)
}

// focusTint is the stronger preview used for the focused region.
func focusTint(c graphics.RGBA) color.NRGBA {
	return blendToward(c, colorful.Color{R: 1, G: 1, B: 1}, focusBlend)
}

// focusOutline darkens the palette color for the focus ring.
func focusOutline(c graphics.RGBA) color.NRGBA {
	return blendToward(c, colorful.Color{}, outlineBlend)
}

// labelColor picks dark or light label text for contrast against the
// fill it sits on.
func labelColor(bg color.NRGBA) color.NRGBA {
	c := colorful.Color{
		R: float64(bg.R) / 255,
		G: float64(bg.G) / 255,
		B: float64(bg.B) / 255,
	}
	l, _, _ := c.Lab()
	if l > labelLuminance {
		return color.NRGBA{R: 33, G: 33, B: 33, A: 255}
	}
	return color.NRGBA{R: 255, G: 255, B: 255, A: 255}
}

// blendToward mixes a palette color toward a target in Lab space.
func blendToward(c graphics.RGBA, target colorful.Color, t float64) color.NRGBA {
	base := colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
	r, g, b := base.BlendLab(target, t).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}
