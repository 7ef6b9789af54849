package svg

import (
	"bytes"
	"compress/gzip"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/noutice/happy-color-poc/pkg/board"
	"github.com/noutice/happy-color-poc/pkg/graphics"
)

func TestParseSingleRect(t *testing.T) {
	doc, err := Parse([]byte(`<svg viewBox="0 0 100 100">
		<rect x="10" y="10" width="30" height="30" fill="#ff0000"/>
	</svg>`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if doc.Width != 100 || doc.Height != 100 {
		t.Errorf("canvas = %gx%g, want 100x100", doc.Width, doc.Height)
	}
	if len(doc.Regions) != 1 {
		t.Fatalf("got %d regions, want 1", len(doc.Regions))
	}

	r := doc.Regions[0]
	if r.ID != 1 || r.ColorID != 1 {
		t.Errorf("region ID = %d, ColorID = %d, want 1, 1", r.ID, r.ColorID)
	}
	if r.State != board.Unfilled {
		t.Errorf("fresh region state = %v, want Unfilled", r.State)
	}
	if !r.Geometry.Contains(graphics.Point{X: 25, Y: 25}, graphics.FillRuleNonZero) {
		t.Errorf("region does not contain (25, 25)")
	}
	if r.Geometry.Contains(graphics.Point{X: 50, Y: 50}, graphics.FillRuleNonZero) {
		t.Errorf("region contains (50, 50) outside the rect")
	}

	if want := (graphics.RGBA{R: 255, G: 0, B: 0, A: 255}); doc.Palette[1] != want {
		t.Errorf("palette[1] = %v, want %v", doc.Palette[1], want)
	}

	if doc.Stats.Elements != 2 || doc.Stats.Shapes != 1 {
		t.Errorf("stats = %+v, want 2 elements, 1 shape", doc.Stats)
	}
	if doc.Stats.SkippedNodes != 0 || doc.Stats.DegradedColors != 0 {
		t.Errorf("stats report problems on a clean document: %+v", doc.Stats)
	}
}

func TestParseShapeElements(t *testing.T) {
	tests := []struct {
		name    string
		element string
		inside  graphics.Point
	}{
		{"circle", `<circle cx="50" cy="50" r="10" fill="blue"/>`, graphics.Point{X: 50, Y: 50}},
		{"ellipse", `<ellipse cx="50" cy="50" rx="20" ry="5" fill="blue"/>`, graphics.Point{X: 60, Y: 50}},
		{"polygon", `<polygon points="0,0 10,0 10,10" fill="blue"/>`, graphics.Point{X: 7, Y: 3}},
		{"polyline closed like polygon", `<polyline points="0,0 10,0 10,10" fill="blue"/>`, graphics.Point{X: 7, Y: 3}},
		{"path", `<path d="M 0 0 L 10 0 L 10 10 Z" fill="blue"/>`, graphics.Point{X: 7, Y: 3}},
		{"rounded rect", `<rect x="0" y="0" width="10" height="10" rx="2" fill="blue"/>`, graphics.Point{X: 5, Y: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse([]byte(`<svg viewBox="0 0 100 100">` + tt.element + `</svg>`))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if len(doc.Regions) != 1 {
				t.Fatalf("got %d regions, want 1", len(doc.Regions))
			}
			if !doc.Regions[0].Geometry.Contains(tt.inside, graphics.FillRuleNonZero) {
				t.Errorf("region does not contain %v", tt.inside)
			}
		})
	}
}

// Palette identity follows the raw fill token, so two spellings of one
// hex value share an entry while a name and its hex equivalent do not.
func TestParsePaletteDeduplication(t *testing.T) {
	doc, err := Parse([]byte(`<svg viewBox="0 0 100 100">
		<rect x="0" y="0" width="10" height="10" fill="#00FF00"/>
		<rect x="20" y="0" width="10" height="10" fill="#00ff00"/>
		<rect x="40" y="0" width="10" height="10" fill="red"/>
		<rect x="60" y="0" width="10" height="10" fill="#f44336"/>
	</svg>`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if len(doc.Palette) != 3 {
		t.Fatalf("palette has %d colors, want 3: %v", len(doc.Palette), doc.Palette)
	}
	if doc.Regions[0].ColorID != doc.Regions[1].ColorID {
		t.Errorf("same hex token got two palette ids: %d, %d",
			doc.Regions[0].ColorID, doc.Regions[1].ColorID)
	}
	if doc.Regions[2].ColorID == doc.Regions[3].ColorID {
		t.Errorf("distinct tokens share palette id %d", doc.Regions[2].ColorID)
	}

	// Region ids run 1..N in document order regardless of color reuse.
	for i, r := range doc.Regions {
		if r.ID != i+1 {
			t.Errorf("regions[%d].ID = %d, want %d", i, r.ID, i+1)
		}
	}
}

func TestParseTwiceIdentical(t *testing.T) {
	src := []byte(`<svg viewBox="0 0 100 100">
		<rect x="0" y="0" width="10" height="10" fill="#00FF00"/>
		<g transform="translate(20 0)">
			<circle cx="5" cy="5" r="4" fill="blue"/>
		</g>
		<rect x="40" y="0" width="10" height="10" fill="#00ff00"/>
	</svg>`)

	first, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	second, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse again: %v", err)
	}

	if diff := cmp.Diff(first.Palette, second.Palette); diff != "" {
		t.Errorf("palettes differ between parses (-first, +second):\n%s", diff)
	}

	type regionKey struct{ ID, ColorID int }
	keys := func(doc *Document) []regionKey {
		out := make([]regionKey, len(doc.Regions))
		for i, r := range doc.Regions {
			out[i] = regionKey{ID: r.ID, ColorID: r.ColorID}
		}
		return out
	}
	if diff := cmp.Diff(keys(first), keys(second)); diff != "" {
		t.Errorf("region ordering differs between parses (-first, +second):\n%s", diff)
	}
}

func TestParseCanvasSize(t *testing.T) {
	tests := []struct {
		name string
		root string
		w, h float64
	}{
		{"viewBox", `<svg viewBox="0 0 200 100"></svg>`, 200, 100},
		{"width and height with units", `<svg width="300px" height="150pt"></svg>`, 300, 150},
		{"viewBox wins over attributes", `<svg viewBox="0 0 200 100" width="900" height="900"></svg>`, 200, 100},
		{"zero viewBox falls back to attributes", `<svg viewBox="0 0 0 0" width="40" height="30"></svg>`, 40, 30},
		{"no size declared", `<svg></svg>`, 500, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse([]byte(tt.root))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if doc.Width != tt.w || doc.Height != tt.h {
				t.Errorf("canvas = %gx%g, want %gx%g", doc.Width, doc.Height, tt.w, tt.h)
			}
		})
	}
}

func TestParseNestedTransforms(t *testing.T) {
	doc, err := Parse([]byte(`<svg viewBox="0 0 100 100">
		<g transform="translate(10 10)">
			<g transform="scale(2)">
				<rect x="0" y="0" width="5" height="5" fill="#000000"/>
			</g>
		</g>
	</svg>`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(doc.Regions) != 1 {
		t.Fatalf("got %d regions, want 1", len(doc.Regions))
	}

	// Scale doubles the rect in place, then the translate moves it.
	got := doc.Regions[0].Geometry.Bounds()
	if want := graphics.NewRect(10, 10, 20, 20); got != want {
		t.Errorf("transformed bounds = %v, want %v", got, want)
	}
}

func TestParseSkippedNodes(t *testing.T) {
	doc, err := Parse([]byte(`<svg viewBox="0 0 100 100">
		<text x="0" y="0">label</text>
		<rect x="0" y="0" width="10" height="10" fill="none"/>
		<rect x="0" y="0" width="0" height="10" fill="#ff0000"/>
		<rect x="0" y="0" width="10" height="10"/>
		<rect x="20" y="20" width="10" height="10" fill="#ff0000"/>
	</svg>`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if doc.Stats.SkippedNodes != 4 {
		t.Errorf("SkippedNodes = %d, want 4 (unknown element, fill none, zero width, missing fill)",
			doc.Stats.SkippedNodes)
	}
	if doc.Stats.Shapes != 1 || len(doc.Regions) != 1 {
		t.Errorf("got %d shapes, %d regions, want 1 each", doc.Stats.Shapes, len(doc.Regions))
	}
}

func TestParseDegradedColor(t *testing.T) {
	doc, err := Parse([]byte(`<svg viewBox="0 0 100 100">
		<rect x="0" y="0" width="10" height="10" fill="zzz"/>
	</svg>`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if doc.Stats.DegradedColors != 1 {
		t.Errorf("DegradedColors = %d, want 1", doc.Stats.DegradedColors)
	}
	if len(doc.Regions) != 1 {
		t.Fatalf("degraded fill dropped the region")
	}
	if got := doc.Palette[doc.Regions[0].ColorID]; got != graphics.Gray() {
		t.Errorf("degraded fill = %v, want gray", got)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{"malformed markup", `<svg><rect`, "failed to parse document"},
		{"empty input", ``, "no root element"},
		{"no markup at all", `plain text`, "no root element"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if err == nil {
				t.Fatalf("Parse(%q) succeeded", tt.data)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestParseGzip(t *testing.T) {
	plain := []byte(`<svg viewBox="0 0 100 100">
		<rect x="10" y="10" width="30" height="30" fill="#ff0000"/>
	</svg>`)

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(plain); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	doc, err := Parse(buf.Bytes())
	if err != nil {
		t.Fatalf("Parse(gzip): %v", err)
	}
	if len(doc.Regions) != 1 || doc.Width != 100 {
		t.Errorf("decompressed parse: %d regions, width %g", len(doc.Regions), doc.Width)
	}

	if _, err := Parse([]byte{0x1f, 0x8b, 0x00}); err == nil {
		t.Errorf("truncated gzip input parsed without error")
	}
}
