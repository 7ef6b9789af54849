package raster

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/noutice/happy-color-poc/pkg/board"
	fontpkg "github.com/noutice/happy-color-poc/pkg/font"
	"github.com/noutice/happy-color-poc/pkg/graphics"
	"github.com/noutice/happy-color-poc/pkg/label"
)

// Mode selects what a rendered frame shows.
type Mode int

const (
	// ModeProgress draws the current fill state with highlight and
	// focus previews.
	ModeProgress Mode = iota
	// ModeOutline draws an uncolored page with every numeral, suitable
	// for printing.
	ModeOutline
	// ModeSolution draws every region in its palette color, no labels.
	ModeSolution
)

// String returns the mode's command-line name.
func (m Mode) String() string {
	switch m {
	case ModeOutline:
		return "outline"
	case ModeSolution:
		return "solution"
	default:
		return "progress"
	}
}

// Frame describes one rendering request.
type Frame struct {
	Scale      float64 // pixels per document unit
	Zoom       float64 // view magnification labels compensate for
	Background color.Color
	Mode       Mode
	ShowLabels bool
}

const (
	regionOutlineWidth = 1.0
	focusRingWidth     = 2.5
)

// regionOutline is the thin boundary drawn around every region.
var regionOutline = color.NRGBA{R: 90, G: 90, B: 90, A: 255}

// BoardRenderer rasterizes a board into frames. Placement and fill
// state are read fresh on every Render call.
type BoardRenderer struct {
	board    *board.Board
	width    float64
	height   float64
	engine   *label.Engine
	measurer *fontpkg.Measurer
}

// NewBoardRenderer creates a renderer for a board with the given
// document dimensions.
func NewBoardRenderer(b *board.Board, width, height float64, measurer *fontpkg.Measurer) *BoardRenderer {
	return &BoardRenderer{
		board:    b,
		width:    width,
		height:   height,
		engine:   label.NewEngine(measurer),
		measurer: measurer,
	}
}

// Render draws one frame of the board.
func (r *BoardRenderer) Render(f Frame) (*image.RGBA, error) {
	scale := f.Scale
	if scale <= 0 {
		scale = 1
	}
	zoom := f.Zoom
	if zoom <= 0 {
		zoom = 1
	}

	w := int(math.Ceil(r.width * scale))
	h := int(math.Ceil(r.height * scale))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	canvas := NewCanvas(w, h)
	if f.Background != nil {
		canvas.SetBackground(f.Background)
		canvas.Clear()
	}

	toPixels := graphics.Scale(scale, scale)
	palette := r.board.Palette()
	focused := r.board.FocusedRegionID()

	highlighted := make(map[int]bool)
	for _, reg := range r.board.HighlightedRegions() {
		highlighted[reg.ID] = true
	}

	var focusGeom *graphics.Path
	var focusColor color.NRGBA

	for _, reg := range r.board.Regions() {
		geom := reg.Geometry.Transform(toPixels)
		canvas.Fill(geom, r.regionFill(reg, f.Mode, highlighted[reg.ID], reg.ID == focused, palette))
		canvas.Stroke(geom, regionOutline, regionOutlineWidth, graphics.LineCapButt, graphics.LineJoinMiter)

		if f.Mode == ModeProgress && reg.ID == focused {
			focusGeom = geom
			focusColor = focusOutline(palette[reg.ColorID])
		}
	}

	if focusGeom != nil {
		canvas.Stroke(focusGeom, focusColor, focusRingWidth, graphics.LineCapRound, graphics.LineJoinRound)
	}

	if f.ShowLabels && f.Mode != ModeSolution {
		for _, reg := range r.board.Regions() {
			if f.Mode == ModeProgress && reg.State == board.Filled {
				continue
			}
			text := strconv.Itoa(reg.ColorID)
			place := r.engine.Place(reg.Geometry, zoom, text)
			if place == nil {
				continue
			}
			bg := r.regionFill(reg, f.Mode, highlighted[reg.ID], reg.ID == focused, palette)
			if err := r.drawLabel(canvas, place, text, scale, bg); err != nil {
				return nil, err
			}
		}
	}

	return canvas.Image(), nil
}

// regionFill resolves what color a region is painted with in a given
// mode.
func (r *BoardRenderer) regionFill(reg *board.Region, mode Mode, isHighlighted, isFocused bool, palette board.Palette) color.NRGBA {
	switch mode {
	case ModeSolution:
		return toNRGBA(palette[reg.ColorID])
	case ModeOutline:
		return color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	}

	if reg.State == board.Filled {
		return toNRGBA(reg.Current)
	}
	if isFocused {
		return focusTint(palette[reg.ColorID])
	}
	if isHighlighted {
		return highlightTint(palette[reg.ColorID])
	}
	return color.NRGBA{R: 255, G: 255, B: 255, A: 255}
}

// drawLabel draws one placed numeral. The placement anchor is the
// center of the text box in document units; scaling to pixels happens
// here.
func (r *BoardRenderer) drawLabel(canvas *Canvas, place *label.Placement, text string, scale float64, bg color.NRGBA) error {
	size := place.FontSize * scale
	face, err := r.measurer.Face(size)
	if err != nil {
		return fmt.Errorf("failed to prepare label face: %w", err)
	}
	defer face.Close()

	width := r.measurer.StringWidth(text, size)
	met := r.measurer.Metrics(size)
	height := met.Ascent + met.Descent

	x := place.Anchor.X*scale - width/2
	y := place.Anchor.Y*scale - height/2 + met.Ascent

	d := font.Drawer{
		Dst:  canvas.Image(),
		Src:  image.NewUniform(labelColor(bg)),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.Int26_6(x * 64),
			Y: fixed.Int26_6(y * 64),
		},
	}
	d.DrawString(text)
	return nil
}

// toNRGBA converts a palette color for drawing.
func toNRGBA(c graphics.RGBA) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}
