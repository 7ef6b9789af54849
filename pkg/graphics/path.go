package graphics

import (
	"math"
)

// PathOp represents a path operation type.
type PathOp int

const (
	PathOpMoveTo PathOp = iota
	PathOpLineTo
	PathOpCurveTo // Cubic bezier
	PathOpClose
)

// PathSegment represents a single segment in a path.
type PathSegment struct {
	Op     PathOp
	Points []Point
}

// Path represents a region outline: one or more sub-contours made of
// lines and cubic curves. Sub-contours are treated as closed for fill
// and containment even when no explicit Close was recorded, since every
// region must support filling.
type Path struct {
	Segments []PathSegment
	current  Point
	start    Point // Start of current sub-contour
}

// NewPath creates a new empty path.
func NewPath() *Path {
	return &Path{}
}

// MoveTo starts a new sub-contour at the given point.
func (p *Path) MoveTo(x, y float64) {
	pt := Point{x, y}
	p.Segments = append(p.Segments, PathSegment{
		Op:     PathOpMoveTo,
		Points: []Point{pt},
	})
	p.current = pt
	p.start = pt
}

// LineTo draws a line from the current point to the given point.
func (p *Path) LineTo(x, y float64) {
	pt := Point{x, y}
	p.Segments = append(p.Segments, PathSegment{
		Op:     PathOpLineTo,
		Points: []Point{pt},
	})
	p.current = pt
}

// CurveTo draws a cubic Bezier curve from the current point.
// cp1 and cp2 are control points, end is the endpoint.
func (p *Path) CurveTo(cp1x, cp1y, cp2x, cp2y, endX, endY float64) {
	p.Segments = append(p.Segments, PathSegment{
		Op: PathOpCurveTo,
		Points: []Point{
			{cp1x, cp1y},
			{cp2x, cp2y},
			{endX, endY},
		},
	})
	p.current = Point{endX, endY}
}

// Close closes the current sub-contour with a line back to its start.
func (p *Path) Close() {
	p.Segments = append(p.Segments, PathSegment{
		Op: PathOpClose,
	})
	p.current = p.start
}

// IsEmpty returns true if the path has no segments.
func (p *Path) IsEmpty() bool {
	return len(p.Segments) == 0
}

// CurrentPoint returns the current point.
func (p *Path) CurrentPoint() Point {
	return p.current
}

// Bounds returns the bounding box of the path. Curve control points are
// included, so the box is conservative for curved outlines.
func (p *Path) Bounds() Rect {
	if len(p.Segments) == 0 {
		return Rect{}
	}

	minX := math.MaxFloat64
	minY := math.MaxFloat64
	maxX := -math.MaxFloat64
	maxY := -math.MaxFloat64

	for _, seg := range p.Segments {
		for _, pt := range seg.Points {
			minX = math.Min(minX, pt.X)
			minY = math.Min(minY, pt.Y)
			maxX = math.Max(maxX, pt.X)
			maxY = math.Max(maxY, pt.Y)
		}
	}

	if minX == math.MaxFloat64 {
		return Rect{}
	}

	return NewRect(minX, minY, maxX, maxY)
}

// Transform applies a transformation matrix to all points in the path,
// returning a new path. The receiver is not modified.
func (p *Path) Transform(m Matrix) *Path {
	result := NewPath()
	for _, seg := range p.Segments {
		newSeg := PathSegment{
			Op:     seg.Op,
			Points: make([]Point, len(seg.Points)),
		}
		for i, pt := range seg.Points {
			newSeg.Points[i] = m.TransformPoint(pt)
		}
		result.Segments = append(result.Segments, newSeg)
	}
	if len(p.Segments) > 0 {
		result.current = m.TransformPoint(p.current)
		result.start = m.TransformPoint(p.start)
	}
	return result
}

// Flattened returns a copy of the path with every curve replaced by
// line chords. Sub-contour structure is preserved.
func (p *Path) Flattened() *Path {
	result := NewPath()
	for _, seg := range p.Segments {
		switch seg.Op {
		case PathOpMoveTo:
			if len(seg.Points) > 0 {
				result.MoveTo(seg.Points[0].X, seg.Points[0].Y)
			}
		case PathOpLineTo:
			if len(seg.Points) > 0 {
				result.LineTo(seg.Points[0].X, seg.Points[0].Y)
			}
		case PathOpCurveTo:
			if len(seg.Points) >= 3 {
				from := result.current
				for i := 1; i <= curveFlattenSteps; i++ {
					t := float64(i) / curveFlattenSteps
					pt := cubicAt(from, seg.Points[0], seg.Points[1], seg.Points[2], t)
					result.LineTo(pt.X, pt.Y)
				}
			}
		case PathOpClose:
			result.Close()
		}
	}
	return result
}

// FillRule represents the fill rule for path filling.
type FillRule int

const (
	FillRuleNonZero FillRule = iota
	FillRuleEvenOdd
)

// Contains checks if a point is inside the path using the specified fill
// rule. All sub-contours contribute, each implicitly closed.
func (p *Path) Contains(pt Point, rule FillRule) bool {
	if rule == FillRuleEvenOdd {
		return p.containsEvenOdd(pt)
	}
	return p.containsNonZero(pt)
}

// containsNonZero implements the non-zero winding rule.
func (p *Path) containsNonZero(pt Point) bool {
	winding := 0
	p.visitEdges(func(a, b Point) {
		winding += windingLine(pt, a, b)
	})
	return winding != 0
}

// containsEvenOdd implements the even-odd fill rule.
func (p *Path) containsEvenOdd(pt Point) bool {
	crossings := 0
	p.visitEdges(func(a, b Point) {
		if rayIntersectsLine(pt, a, b) {
			crossings++
		}
	})
	return crossings%2 == 1
}

// curveFlattenSteps is the number of chords used to approximate one
// cubic curve in containment tests.
const curveFlattenSteps = 8

// visitEdges calls fn for every boundary edge of the path, flattening
// curves into chords and closing each sub-contour back to its start.
func (p *Path) visitEdges(fn func(a, b Point)) {
	var prev, start Point
	started := false

	closeSub := func() {
		if started && prev != start {
			fn(prev, start)
		}
	}

	for _, seg := range p.Segments {
		switch seg.Op {
		case PathOpMoveTo:
			if len(seg.Points) > 0 {
				closeSub()
				prev = seg.Points[0]
				start = prev
				started = true
			}
		case PathOpLineTo:
			if len(seg.Points) > 0 {
				fn(prev, seg.Points[0])
				prev = seg.Points[0]
			}
		case PathOpCurveTo:
			if len(seg.Points) >= 3 {
				prev = flattenCubic(prev, seg.Points[0], seg.Points[1], seg.Points[2], fn)
			}
		case PathOpClose:
			closeSub()
			prev = start
		}
	}
	closeSub()
}

// flattenCubic emits a polyline approximation of a cubic Bezier and
// returns its endpoint.
func flattenCubic(p0, c1, c2, p1 Point, fn func(a, b Point)) Point {
	prev := p0
	for i := 1; i <= curveFlattenSteps; i++ {
		t := float64(i) / curveFlattenSteps
		next := cubicAt(p0, c1, c2, p1, t)
		fn(prev, next)
		prev = next
	}
	return p1
}

// cubicAt evaluates a cubic Bezier at parameter t.
func cubicAt(p0, c1, c2, p1 Point, t float64) Point {
	u := 1 - t
	a := u * u * u
	b := 3 * u * u * t
	c := 3 * u * t * t
	d := t * t * t
	return Point{
		X: a*p0.X + b*c1.X + c*c2.X + d*p1.X,
		Y: a*p0.Y + b*c1.Y + c*c2.Y + d*p1.Y,
	}
}

// windingLine returns the winding contribution of a line segment.
func windingLine(pt, p1, p2 Point) int {
	if p1.Y <= pt.Y {
		if p2.Y > pt.Y {
			if isLeft(p1, p2, pt) > 0 {
				return 1
			}
		}
	} else {
		if p2.Y <= pt.Y {
			if isLeft(p1, p2, pt) < 0 {
				return -1
			}
		}
	}
	return 0
}

// isLeft returns a value indicating which side of a line a point is on.
func isLeft(p0, p1, p2 Point) float64 {
	return (p1.X-p0.X)*(p2.Y-p0.Y) - (p2.X-p0.X)*(p1.Y-p0.Y)
}

// rayIntersectsLine tests if a horizontal ray from pt intersects the line segment.
func rayIntersectsLine(pt, p1, p2 Point) bool {
	if (p1.Y > pt.Y) == (p2.Y > pt.Y) {
		return false
	}

	t := (pt.Y - p1.Y) / (p2.Y - p1.Y)
	x := p1.X + t*(p2.X-p1.X)

	return x > pt.X
}
