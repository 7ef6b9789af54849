package svg

import (
	"math"
	"testing"

	"github.com/noutice/happy-color-poc/pkg/graphics"
)

func pointNear(a, b graphics.Point) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

func TestParseTransform(t *testing.T) {
	tests := []struct {
		name  string
		attr  string
		point graphics.Point
		want  graphics.Point
	}{
		{"empty", "", graphics.Point{X: 3, Y: 4}, graphics.Point{X: 3, Y: 4}},
		{"translate", "translate(10 20)", graphics.Point{X: 1, Y: 1}, graphics.Point{X: 11, Y: 21}},
		{"translate comma", "translate(10,20)", graphics.Point{X: 1, Y: 1}, graphics.Point{X: 11, Y: 21}},
		{"translate single arg", "translate(10)", graphics.Point{X: 1, Y: 1}, graphics.Point{X: 11, Y: 1}},
		{"scale uniform", "scale(2)", graphics.Point{X: 1, Y: 2}, graphics.Point{X: 2, Y: 4}},
		{"scale two args", "scale(2 3)", graphics.Point{X: 1, Y: 2}, graphics.Point{X: 2, Y: 6}},
		{"rotate", "rotate(90)", graphics.Point{X: 1, Y: 0}, graphics.Point{X: 0, Y: 1}},
		{"rotate about center", "rotate(90 10 10)", graphics.Point{X: 20, Y: 10}, graphics.Point{X: 10, Y: 20}},
		{"matrix", "matrix(2 0 0 2 5 5)", graphics.Point{X: 1, Y: 1}, graphics.Point{X: 7, Y: 7}},
		{"unknown function", "skewX(20)", graphics.Point{X: 3, Y: 4}, graphics.Point{X: 3, Y: 4}},
		{"malformed args", "translate(a b)", graphics.Point{X: 3, Y: 4}, graphics.Point{X: 3, Y: 4}},
		{"unclosed paren", "translate(10 20", graphics.Point{X: 3, Y: 4}, graphics.Point{X: 3, Y: 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := ParseTransform(tt.attr)
			got := m.TransformPoint(tt.point)
			if !pointNear(got, tt.want) {
				t.Errorf("ParseTransform(%q) maps %v to %v, want %v", tt.attr, tt.point, got, tt.want)
			}
		})
	}
}

// TestParseTransformFixedOrder pins the documented behavior: scale is
// applied to points before translate regardless of where the functions
// appear in the attribute.
func TestParseTransformFixedOrder(t *testing.T) {
	pt := graphics.Point{X: 1, Y: 1}
	want := graphics.Point{X: 12, Y: 22}

	for _, attr := range []string{
		"translate(10 20) scale(2)",
		"scale(2) translate(10 20)",
	} {
		if got := ParseTransform(attr).TransformPoint(pt); !pointNear(got, want) {
			t.Errorf("ParseTransform(%q) maps %v to %v, want %v", attr, pt, got, want)
		}
	}
}

func TestParseTransformRotateThenTranslate(t *testing.T) {
	// Points rotate first, then translate.
	got := ParseTransform("rotate(90) translate(10 0)").TransformPoint(graphics.Point{X: 1, Y: 0})
	if want := (graphics.Point{X: 10, Y: 1}); !pointNear(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestParseTransformMatrixAppliesFirst(t *testing.T) {
	got := ParseTransform("rotate(90) matrix(1 0 0 1 5 0)").TransformPoint(graphics.Point{})
	if want := (graphics.Point{X: 0, Y: 5}); !pointNear(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
