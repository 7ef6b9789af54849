package raster

import (
	"image"
	"image/color"
	"testing"

	"github.com/noutice/happy-color-poc/pkg/board"
	"github.com/noutice/happy-color-poc/pkg/font"
	"github.com/noutice/happy-color-poc/pkg/graphics"
	"github.com/noutice/happy-color-poc/pkg/path"
)

var (
	testRed  = graphics.RGBA{R: 200, A: 255}
	testBlue = graphics.RGBA{B: 200, A: 255}
)

// twoRegionBoard is a 20x10 document split into a red left half and a
// blue right half.
func twoRegionBoard() *board.Board {
	return board.New([]*board.Region{
		{ID: 1, ColorID: 1, Geometry: path.NewBuilder().Rect(0, 0, 10, 10).Build(), Current: graphics.White()},
		{ID: 2, ColorID: 2, Geometry: path.NewBuilder().Rect(10, 0, 10, 10).Build(), Current: graphics.White()},
	}, board.Palette{1: testRed, 2: testBlue})
}

func renderFrame(t *testing.T, b *board.Board, w, h float64, f Frame) *image.RGBA {
	t.Helper()
	img, err := NewBoardRenderer(b, w, h, font.Default()).Render(f)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	return img
}

func pixelIs(img *image.RGBA, x, y int, want color.NRGBA) bool {
	r, g, b := rgb8(img.At(x, y))
	return r == want.R && g == want.G && b == want.B
}

func TestRenderDimensions(t *testing.T) {
	tests := []struct {
		name  string
		frame Frame
		w, h  int
	}{
		{"unit scale", Frame{Scale: 1}, 20, 10},
		{"doubled", Frame{Scale: 2}, 40, 20},
		{"zero scale defaults to one", Frame{}, 20, 10},
		{"fractional scale rounds up", Frame{Scale: 0.25}, 5, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := renderFrame(t, twoRegionBoard(), 20, 10, tt.frame)
			if b := img.Bounds(); b.Dx() != tt.w || b.Dy() != tt.h {
				t.Errorf("image = %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.w, tt.h)
			}
		})
	}
}

func TestRenderSolution(t *testing.T) {
	// ShowLabels is set on purpose: the solution view never draws
	// numerals, so the centers must hold the pure palette colors.
	img := renderFrame(t, twoRegionBoard(), 20, 10, Frame{
		Scale:      1,
		Mode:       ModeSolution,
		ShowLabels: true,
	})

	if !pixelIs(img, 5, 5, toNRGBA(testRed)) {
		t.Errorf("left region center = %v, want the red palette color", img.At(5, 5))
	}
	if !pixelIs(img, 15, 5, toNRGBA(testBlue)) {
		t.Errorf("right region center = %v, want the blue palette color", img.At(15, 5))
	}
}

func TestRenderOutline(t *testing.T) {
	b := twoRegionBoard()
	b.SelectColor(1)
	b.AttemptFill(1)

	// Fill state never shows in the printable outline view.
	img := renderFrame(t, b, 20, 10, Frame{Scale: 1, Mode: ModeOutline})

	if !isWhite(img.At(5, 5)) || !isWhite(img.At(15, 5)) {
		t.Error("outline view painted region interiors")
	}
	if isWhite(img.At(10, 5)) {
		t.Error("region boundary not outlined")
	}
}

func TestRenderProgress(t *testing.T) {
	b := twoRegionBoard()

	img := renderFrame(t, b, 20, 10, Frame{Scale: 1, Mode: ModeProgress})
	if !isWhite(img.At(5, 5)) || !isWhite(img.At(15, 5)) {
		t.Fatal("unfilled regions not white with nothing selected")
	}

	b.SelectColor(1)
	img = renderFrame(t, b, 20, 10, Frame{Scale: 1, Mode: ModeProgress})
	if !pixelIs(img, 5, 5, highlightTint(testRed)) {
		t.Errorf("highlighted region = %v, want the highlight tint", img.At(5, 5))
	}
	if !isWhite(img.At(15, 5)) {
		t.Error("region of the unselected color was tinted")
	}

	b.AttemptFill(1)
	img = renderFrame(t, b, 20, 10, Frame{Scale: 1, Mode: ModeProgress})
	if !pixelIs(img, 5, 5, toNRGBA(testRed)) {
		t.Errorf("filled region = %v, want the solid palette color", img.At(5, 5))
	}
}

func TestRenderFocus(t *testing.T) {
	b := twoRegionBoard()
	b.SelectColor(1)
	b.AdvanceFocus()

	img := renderFrame(t, b, 20, 10, Frame{Scale: 1, Mode: ModeProgress})

	if !pixelIs(img, 5, 5, focusTint(testRed)) {
		t.Errorf("focused region = %v, want the focus tint", img.At(5, 5))
	}
	if !pixelIs(img, 0, 5, focusOutline(testRed)) {
		t.Errorf("focus ring edge = %v, want the ring color", img.At(0, 5))
	}
}

func TestRenderLabels(t *testing.T) {
	pale := graphics.RGBA{R: 240, G: 240, B: 240, A: 255}
	newBoard := func() *board.Board {
		return board.New([]*board.Region{
			{ID: 1, ColorID: 1, Geometry: path.NewBuilder().Rect(0, 0, 100, 100).Build(), Current: graphics.White()},
		}, board.Palette{1: pale})
	}

	// darkPixelNear reports whether any pixel around the region center
	// is dark enough to be numeral ink.
	darkPixelNear := func(img *image.RGBA) bool {
		for y := 40; y < 60; y++ {
			for x := 40; x < 60; x++ {
				if r, _, _ := rgb8(img.At(x, y)); r < 200 {
					return true
				}
			}
		}
		return false
	}

	img := renderFrame(t, newBoard(), 100, 100, Frame{Scale: 1, Mode: ModeOutline, ShowLabels: true})
	if !darkPixelNear(img) {
		t.Error("outline view with labels has no numeral at the region center")
	}

	img = renderFrame(t, newBoard(), 100, 100, Frame{Scale: 1, Mode: ModeOutline})
	if darkPixelNear(img) {
		t.Error("numeral drawn with labels disabled")
	}

	img = renderFrame(t, newBoard(), 100, 100, Frame{Scale: 1, Mode: ModeSolution, ShowLabels: true})
	if darkPixelNear(img) {
		t.Error("numeral drawn in the solution view")
	}

	b := newBoard()
	b.SelectColor(1)
	b.FillAll()
	img = renderFrame(t, b, 100, 100, Frame{Scale: 1, Mode: ModeProgress, ShowLabels: true})
	if darkPixelNear(img) {
		t.Error("numeral still drawn on a filled region")
	}
}

func TestRenderBackground(t *testing.T) {
	b := board.New([]*board.Region{
		{ID: 1, ColorID: 1, Geometry: path.NewBuilder().Rect(2, 2, 6, 6).Build(), Current: graphics.White()},
	}, board.Palette{1: testRed})

	green := color.NRGBA{G: 200, A: 255}
	img := renderFrame(t, b, 10, 10, Frame{Scale: 1, Mode: ModeOutline, Background: green})

	if !pixelIs(img, 0, 0, green) {
		t.Errorf("uncovered pixel = %v, want the background color", img.At(0, 0))
	}
	if !isWhite(img.At(5, 5)) {
		t.Error("region interior took the background color")
	}
}

func TestModeString(t *testing.T) {
	tests := []struct {
		mode Mode
		want string
	}{
		{ModeProgress, "progress"},
		{ModeOutline, "outline"},
		{ModeSolution, "solution"},
		{Mode(9), "progress"},
	}

	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("Mode(%d).String() = %q, want %q", int(tt.mode), got, tt.want)
		}
	}
}
