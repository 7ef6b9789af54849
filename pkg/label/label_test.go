package label

import (
	"math"
	"testing"

	"github.com/noutice/happy-color-poc/pkg/font"
	"github.com/noutice/happy-color-poc/pkg/graphics"
	"github.com/noutice/happy-color-poc/pkg/path"
)

func square(size float64) *graphics.Path {
	return path.NewBuilder().Rect(0, 0, size, size).Build()
}

func TestPlaceRejectsUnlabelable(t *testing.T) {
	e := NewEngine(font.Default())

	tests := []struct {
		name string
		geom *graphics.Path
		text string
	}{
		{"nil geometry", nil, "1"},
		{"empty geometry", graphics.NewPath(), "1"},
		{"empty text", square(100), ""},
		{"tiny geometry", square(0.5), "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if p := e.Place(tt.geom, 1, tt.text); p != nil {
				t.Errorf("Place = %+v, want nil", p)
			}
		})
	}
}

func TestPlaceLargeSquare(t *testing.T) {
	e := NewEngine(font.Default())

	p := e.Place(square(100), 1, "1")
	if p == nil {
		t.Fatal("Place = nil")
	}
	if p.FontSize != 16 {
		t.Errorf("FontSize = %g, want the desired size 16", p.FontSize)
	}
	if p.Anchor != (graphics.Point{X: 50, Y: 50}) {
		t.Errorf("Anchor = %v, want the center (50, 50)", p.Anchor)
	}
	if p.Fallback {
		t.Error("Fallback set on a roomy square")
	}
}

// Labels shrink as the view zooms in so their apparent size stays
// steady, within the configured clamp band.
func TestPlaceZoom(t *testing.T) {
	e := NewEngine(font.Default())
	geom := square(100)

	tests := []struct {
		name string
		zoom float64
		want float64
	}{
		{"unit zoom", 1, 16},
		{"zoomed in", 4, 5},
		{"zoomed out", 0.5, 28}, // capped by the inset box, not the desired 32
		{"zero zoom treated as one", 0, 16},
		{"negative zoom treated as one", -2, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := e.Place(geom, tt.zoom, "1")
			if p == nil {
				t.Fatal("Place = nil")
			}
			if math.Abs(p.FontSize-tt.want) > 1e-6 {
				t.Errorf("FontSize at zoom %g = %g, want %g", tt.zoom, p.FontSize, tt.want)
			}
		})
	}
}

func TestPlaceSmallGeometryRelaxed(t *testing.T) {
	e := NewEngine(font.Default())

	p := e.Place(square(8), 1, "1")
	if p == nil {
		t.Fatal("Place = nil")
	}
	if p.Fallback {
		t.Fatal("8x8 square fell back instead of using the relaxed minimum")
	}
	if p.FontSize != 3 {
		t.Errorf("FontSize = %g, want the relaxed minimum 3", p.FontSize)
	}
}

func TestPlaceSliverFallback(t *testing.T) {
	e := NewEngine(font.Default())

	p := e.Place(path.NewBuilder().Rect(0, 0, 2, 30).Build(), 1, "1")
	if p == nil {
		t.Fatal("Place = nil")
	}
	if !p.Fallback {
		t.Fatal("sliver did not fall back")
	}
	if p.FontSize != 2 {
		t.Errorf("fallback FontSize = %g, want 2", p.FontSize)
	}
	if p.Anchor != (graphics.Point{X: 1, Y: 15}) {
		t.Errorf("fallback Anchor = %v, want the bounds center (1, 15)", p.Anchor)
	}
}

// An L-shaped region's bounding-box center lies outside the shape, so
// placement has to move to a grid point inside one of the arms.
func TestPlaceConcaveGeometry(t *testing.T) {
	e := NewEngine(font.Default())
	geom := path.NewBuilder().
		MoveTo(0, 0).LineTo(40, 0).LineTo(40, 10).
		LineTo(10, 10).LineTo(10, 40).LineTo(0, 40).
		Close().
		Build()

	p := e.Place(geom, 1, "1")
	if p == nil {
		t.Fatal("Place = nil")
	}
	if p.Fallback {
		t.Fatal("concave shape fell back despite having room in its arms")
	}
	if center := (graphics.Point{X: 20, Y: 20}); p.Anchor == center {
		t.Errorf("anchor stayed at the hollow center %v", center)
	}
	if p.Anchor.X >= 10 {
		t.Errorf("anchor %v not inside the vertical arm", p.Anchor)
	}
	if p.FontSize < 5 {
		t.Errorf("FontSize = %g below the strict minimum", p.FontSize)
	}

	// The placement contract: the text box centered on the anchor stays
	// inside the geometry.
	m := font.Default()
	w := m.StringWidth("1", p.FontSize)
	met := m.Metrics(p.FontSize)
	h := met.Ascent + met.Descent
	for _, c := range []graphics.Point{
		{X: p.Anchor.X - w/2, Y: p.Anchor.Y - h/2},
		{X: p.Anchor.X + w/2, Y: p.Anchor.Y - h/2},
		{X: p.Anchor.X + w/2, Y: p.Anchor.Y + h/2},
		{X: p.Anchor.X - w/2, Y: p.Anchor.Y + h/2},
	} {
		if !geom.Contains(c, graphics.FillRuleNonZero) {
			t.Errorf("text box corner %v outside the geometry", c)
		}
	}
}

func TestPlaceMultiDigit(t *testing.T) {
	e := NewEngine(font.Default())

	one := e.Place(square(30), 1, "1")
	long := e.Place(square(30), 1, "888")
	if one == nil || long == nil {
		t.Fatal("Place = nil")
	}
	if long.FontSize > one.FontSize {
		t.Errorf("three digits placed larger (%g) than one (%g)", long.FontSize, one.FontSize)
	}
}
