// Package svg extracts colorable regions from a vector document. It
// walks the element tree depth-first, composing transforms through
// arbitrary nesting, builds a closed path for every shape that carries
// a paintable fill, and deduplicates fill colors into a stable 1-based
// palette. Parsing is lenient: only malformed markup is fatal, every
// per-node problem degrades silently and is counted in ParseStats.
package svg

import (
	"bytes"
	"compress/gzip"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/noutice/happy-color-poc/pkg/board"
	"github.com/noutice/happy-color-poc/pkg/graphics"
	"github.com/noutice/happy-color-poc/pkg/path"
)

// Default canvas size when the document declares no usable dimensions.
const (
	defaultWidth  = 500
	defaultHeight = 500
)

// Document is the result of parsing: the canvas size, the regions in
// traversal order, and the deduplicated palette.
type Document struct {
	Width   float64
	Height  float64
	Regions []*board.Region
	Palette board.Palette
	Stats   ParseStats
}

// ParseStats counts what the walker saw. Degradations are silent at
// parse time; callers log the summary if they care.
type ParseStats struct {
	Elements       int // elements visited
	Shapes         int // regions produced
	SkippedNodes   int // unrecognized elements, unparsable or unfilled shapes
	DegradedColors int // fill tokens that fell back to gray
}

// parser is one parse session. Counters and accumulators live here so
// repeated parses are independent.
type parser struct {
	stack    *stateStack
	regions  []*board.Region
	palette  board.Palette
	colorIDs map[string]int // normalized fill token -> palette index

	nextColorID  int
	nextRegionID int

	width, height float64
	haveSize      bool
	sawRoot       bool

	stats ParseStats
}

// Parse reads a vector document and extracts its regions and palette.
// Gzip-compressed input (.svgz) is decompressed transparently. The only
// fatal condition is input that is not well-formed markup; a successful
// parse always yields a complete, interactive model.
func Parse(data []byte) (*Document, error) {
	if isGzip(data) {
		raw, err := gunzip(data)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress document: %w", err)
		}
		data = raw
	}

	p := &parser{
		stack:    newStateStack(),
		palette:  make(board.Palette),
		colorIDs: make(map[string]int),
		width:    defaultWidth,
		height:   defaultHeight,
	}

	if err := p.run(bytes.NewReader(data)); err != nil {
		return nil, err
	}

	return &Document{
		Width:   p.width,
		Height:  p.height,
		Regions: p.regions,
		Palette: p.palette,
		Stats:   p.stats,
	}, nil
}

// run drives the token loop. Start and end element tokens come in
// matched pairs for well-formed input, so the state stack pushes once
// per start and pops once per end.
func (p *parser) run(r io.Reader) error {
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charset.NewReaderLabel

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to parse document: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			p.startElement(t)
		case xml.EndElement:
			p.stack.Pop()
		}
	}

	if !p.sawRoot {
		return fmt.Errorf("failed to parse document: no root element")
	}
	return nil
}

// startElement composes the element's transform and, for shape
// elements, records a region. Containers and unknown elements only
// contribute their transform; children are walked either way.
func (p *parser) startElement(el xml.StartElement) {
	p.stats.Elements++
	if !p.sawRoot {
		p.sawRoot = true
		p.resolveCanvasSize(el)
	}

	local := graphics.Identity()
	if t := attr(el, "transform"); t != "" {
		local = ParseTransform(t)
	}
	p.stack.Push(local)

	switch el.Name.Local {
	case "path", "rect", "circle", "ellipse", "polygon", "polyline":
		p.shape(el)
	case "svg", "g":
		// containers contribute nothing beyond their transform
	default:
		p.stats.SkippedNodes++
	}
}

// shape resolves the element's fill and geometry and appends a region.
// Nodes without a paintable fill or a buildable shape are skipped.
func (p *parser) shape(el xml.StartElement) {
	fillToken := attr(el, "fill")
	col, degraded := resolveFill(fillToken)
	if degraded {
		p.stats.DegradedColors++
	}
	if col.IsTransparent() {
		p.stats.SkippedNodes++
		return
	}

	geom := buildShape(el)
	if geom == nil {
		p.stats.SkippedNodes++
		return
	}
	global := geom.Transform(p.stack.Current().Transform)

	key := paletteKey(fillToken)
	colorID, ok := p.colorIDs[key]
	if !ok {
		p.nextColorID++
		colorID = p.nextColorID
		p.colorIDs[key] = colorID
		p.palette[colorID] = col
	}

	p.nextRegionID++
	p.regions = append(p.regions, &board.Region{
		ID:       p.nextRegionID,
		ColorID:  colorID,
		Geometry: global,
		State:    board.Unfilled,
		Current:  graphics.White(),
	})
	p.stats.Shapes++
}

// resolveCanvasSize reads the root element's dimensions: the third and
// fourth viewBox fields when present, else width/height attributes with
// unit suffixes stripped, else the 500x500 default already in place.
func (p *parser) resolveCanvasSize(el xml.StartElement) {
	if vb := attr(el, "viewBox"); vb != "" {
		fields := splitNumbers(vb)
		if len(fields) >= 4 {
			w := numberAt(fields, 2, 0)
			h := numberAt(fields, 3, 0)
			if w > 0 && h > 0 {
				p.width = w
				p.height = h
				p.haveSize = true
				return
			}
		}
	}

	w := dimension(attr(el, "width"))
	h := dimension(attr(el, "height"))
	if w > 0 && h > 0 {
		p.width = w
		p.height = h
		p.haveSize = true
	}
}

// buildShape constructs the element's geometry in its local coordinate
// space, nil when the element cannot produce a fillable shape.
func buildShape(el xml.StartElement) *graphics.Path {
	switch el.Name.Local {
	case "path":
		return ParsePathData(attr(el, "d"))
	case "rect":
		x := attrNumber(el, "x", 0)
		y := attrNumber(el, "y", 0)
		w := attrNumber(el, "width", 0)
		h := attrNumber(el, "height", 0)
		if w <= 0 || h <= 0 {
			return nil
		}
		rx := attrNumber(el, "rx", 0)
		ry := attrNumber(el, "ry", 0)
		if rx <= 0 {
			rx = ry
		}
		if ry <= 0 {
			ry = rx
		}
		if rx > 0 {
			return path.NewBuilder().RoundRect(x, y, w, h, rx, ry).Build()
		}
		return path.NewBuilder().Rect(x, y, w, h).Build()
	case "circle":
		r := attrNumber(el, "r", 0)
		if r <= 0 {
			return nil
		}
		cx := attrNumber(el, "cx", 0)
		cy := attrNumber(el, "cy", 0)
		return path.NewBuilder().Circle(cx, cy, r).Build()
	case "ellipse":
		rx := attrNumber(el, "rx", 0)
		ry := attrNumber(el, "ry", 0)
		if rx <= 0 || ry <= 0 {
			return nil
		}
		cx := attrNumber(el, "cx", 0)
		cy := attrNumber(el, "cy", 0)
		return path.NewBuilder().Ellipse(cx, cy, rx, ry).Build()
	case "polygon":
		pts := parsePoints(attr(el, "points"))
		if len(pts) < 3 {
			return nil
		}
		return path.NewBuilder().Polygon(pts).Build()
	case "polyline":
		// force-closed like a polygon so the region can fill
		pts := parsePoints(attr(el, "points"))
		if len(pts) < 3 {
			return nil
		}
		return path.NewBuilder().Polyline(pts).Build()
	}
	return nil
}

// parsePoints parses a points attribute into coordinate pairs, nil when
// any coordinate is malformed. A trailing odd coordinate is dropped.
func parsePoints(s string) []graphics.Point {
	nums := splitNumbers(s)
	pts := make([]graphics.Point, 0, len(nums)/2)
	for i := 0; i+1 < len(nums); i += 2 {
		x, err1 := strconv.ParseFloat(nums[i], 64)
		y, err2 := strconv.ParseFloat(nums[i+1], 64)
		if err1 != nil || err2 != nil {
			return nil
		}
		pts = append(pts, graphics.Point{X: x, Y: y})
	}
	return pts
}

// paletteKey normalizes a raw fill token for deduplication. Distinct
// spellings of the same color ("#ABCDEF", "#abcdef") share one palette
// index; distinct tokens that resolve to the same color do not.
func paletteKey(token string) string {
	return strings.ToLower(strings.TrimSpace(token))
}

// attr returns the named attribute's value, ignoring namespaces.
func attr(el xml.StartElement, name string) string {
	for _, a := range el.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// attrNumber parses a numeric attribute, def when missing or malformed.
func attrNumber(el xml.StartElement, name string, def float64) float64 {
	s := attr(el, name)
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return def
	}
	return v
}

// dimension parses a width/height attribute value, stripping a trailing
// unit suffix such as "px" or "pt". Returns 0 when unparsable.
func dimension(s string) float64 {
	s = strings.TrimSpace(s)
	i := len(s)
	for i > 0 {
		c := s[i-1]
		if (c >= '0' && c <= '9') || c == '.' {
			break
		}
		i--
	}
	v, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		return 0
	}
	return v
}

// isGzip sniffs the two-byte gzip magic that marks .svgz input.
func isGzip(data []byte) bool {
	return len(data) >= 2 && data[0] == 0x1f && data[1] == 0x8b
}

// gunzip decompresses gzip data fully into memory.
func gunzip(data []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(zr)
}
