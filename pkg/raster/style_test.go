package raster

import (
	"image/color"
	"testing"

	"github.com/noutice/happy-color-poc/pkg/graphics"
)

func channelSum(c color.NRGBA) int {
	return int(c.R) + int(c.G) + int(c.B)
}

func TestLabelColor(t *testing.T) {
	tests := []struct {
		name string
		bg   color.NRGBA
		want color.NRGBA
	}{
		{"dark fill gets light text", color.NRGBA{R: 20, G: 20, B: 20, A: 255}, color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
		{"white fill gets dark text", color.NRGBA{R: 255, G: 255, B: 255, A: 255}, color.NRGBA{R: 33, G: 33, B: 33, A: 255}},
		{"saturated red reads as dark", color.NRGBA{R: 244, G: 67, B: 54, A: 255}, color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := labelColor(tt.bg); got != tt.want {
				t.Errorf("labelColor(%v) = %v, want %v", tt.bg, got, tt.want)
			}
		})
	}
}

// The three preview tints keep their ordering: highlight is the palest,
// focus sits between it and the palette color, and the focus ring is
// darker than the palette color.
func TestTintOrdering(t *testing.T) {
	base := graphics.RGBA{R: 244, G: 67, B: 54, A: 255}
	baseSum := int(base.R) + int(base.G) + int(base.B)

	hl := highlightTint(base)
	fc := focusTint(base)
	ring := focusOutline(base)

	if channelSum(hl) <= channelSum(fc) {
		t.Errorf("highlight %v not lighter than focus %v", hl, fc)
	}
	if channelSum(fc) <= baseSum {
		t.Errorf("focus tint %v not lighter than the palette color", fc)
	}
	if channelSum(ring) >= baseSum {
		t.Errorf("focus ring %v not darker than the palette color", ring)
	}

	for _, c := range []color.NRGBA{hl, fc, ring} {
		if c.A != 255 {
			t.Errorf("tint %v not opaque", c)
		}
	}
}
