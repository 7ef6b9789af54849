// Package font measures and draws label text. It wraps a parsed
// TrueType font together with a reusable shaping buffer; the bundled Go
// Regular face is the default. Sizes are in document units (72 dpi, so
// one point is one unit).
package font

import (
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Measurer computes text extents for one font at arbitrary sizes. The
// shaping buffer is reused across calls, so a Measurer is not safe for
// concurrent use.
type Measurer struct {
	font *opentype.Font
	buf  sfnt.Buffer
}

// NewMeasurer parses TrueType or OpenType font bytes.
func NewMeasurer(data []byte) (*Measurer, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return &Measurer{font: f}, nil
}

// Default returns a measurer over the bundled Go Regular face. It
// panics only if the bundled font bytes are corrupt.
func Default() *Measurer {
	m, err := NewMeasurer(goregular.TTF)
	if err != nil {
		panic(fmt.Sprintf("font: bundled face failed to parse: %v", err))
	}
	return m
}

// StringWidth returns the advance width of s at the given size,
// kerning included. Runes the font has no glyph for are skipped.
func (m *Measurer) StringWidth(s string, size float64) float64 {
	ppem := fixed.Int26_6(size * 64)
	var width fixed.Int26_6
	var prev sfnt.GlyphIndex
	first := true

	for _, r := range s {
		gi, err := m.font.GlyphIndex(&m.buf, r)
		if err != nil || gi == 0 {
			continue
		}
		if !first {
			if kern, err := m.font.Kern(&m.buf, prev, gi, ppem, font.HintingNone); err == nil {
				width += kern
			}
		}
		adv, err := m.font.GlyphAdvance(&m.buf, gi, ppem, font.HintingNone)
		if err == nil {
			width += adv
		}
		prev = gi
		first = false
	}

	return fixedToFloat(width)
}

// Metrics describes vertical text extents at a given size.
type Metrics struct {
	Ascent  float64
	Descent float64
	Height  float64 // line height including the font's line gap
}

// Metrics returns the font's vertical metrics at the given size.
func (m *Measurer) Metrics(size float64) Metrics {
	ppem := fixed.Int26_6(size * 64)
	met, err := m.font.Metrics(&m.buf, ppem, font.HintingNone)
	if err != nil {
		// em-box estimate when the metrics tables are unusable
		return Metrics{Ascent: size * 0.8, Descent: size * 0.2, Height: size}
	}
	return Metrics{
		Ascent:  fixedToFloat(met.Ascent),
		Descent: fixedToFloat(met.Descent),
		Height:  fixedToFloat(met.Height),
	}
}

// Face returns a drawing face at the given size for use with a
// font.Drawer. The caller owns closing it.
func (m *Measurer) Face(size float64) (font.Face, error) {
	face, err := opentype.NewFace(m.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create face: %w", err)
	}
	return face, nil
}

// fixedToFloat converts 26.6 fixed point to float64.
func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
