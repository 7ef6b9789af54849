package api

import (
	"image"

	"github.com/google/uuid"

	"github.com/noutice/happy-color-poc/pkg/board"
	"github.com/noutice/happy-color-poc/pkg/font"
	"github.com/noutice/happy-color-poc/pkg/graphics"
	"github.com/noutice/happy-color-poc/pkg/raster"
)

// Session is one play-through of a document: a board with fill
// progress, plus rendering. Sessions created from the same Document are
// independent. A session must be driven from a single goroutine.
type Session struct {
	id       string
	doc      *Document
	board    *board.Board
	renderer *raster.BoardRenderer
}

// NewSession starts a fresh session over the document. All regions
// begin unfilled.
func (d *Document) NewSession() *Session {
	regions := make([]*board.Region, len(d.doc.Regions))
	for i, r := range d.doc.Regions {
		regions[i] = &board.Region{
			ID:       r.ID,
			ColorID:  r.ColorID,
			Geometry: r.Geometry,
			State:    board.Unfilled,
			Current:  graphics.White(),
		}
	}

	b := board.New(regions, d.doc.Palette)
	return &Session{
		id:       uuid.NewString(),
		doc:      d,
		board:    b,
		renderer: raster.NewBoardRenderer(b, d.doc.Width, d.doc.Height, font.Default()),
	}
}

// ID returns the session's unique identifier.
func (s *Session) ID() string {
	return s.id
}

// Document returns the document this session plays.
func (s *Session) Document() *Document {
	return s.doc
}

// Board exposes the fill state machine for selection, focus and fill
// operations.
func (s *Session) Board() *board.Board {
	return s.board
}

// SelectColor selects a palette color and clears the focus cursor.
func (s *Session) SelectColor(colorID int) {
	s.board.SelectColor(colorID)
}

// TapAt performs a tap at document coordinates: the topmost region
// containing the point is hit-tested and a fill is attempted with the
// selected color. It reports whether a region was filled.
func (s *Session) TapAt(x, y float64) bool {
	id, ok := s.board.HitTest(graphics.Point{X: x, Y: y})
	if !ok {
		return false
	}
	return s.board.AttemptFill(id)
}

// IsComplete returns true once every region is filled.
func (s *Session) IsComplete() bool {
	return s.board.IsComplete()
}

// Progress returns the filled fraction in [0, 1].
func (s *Session) Progress() float64 {
	return s.board.Progress()
}

// Render draws the session's current state with default options.
func (s *Session) Render() (*image.RGBA, error) {
	return s.RenderWithOptions(DefaultRenderOptions())
}

// RenderWithOptions draws the session's current state.
func (s *Session) RenderWithOptions(opts RenderOptions) (*image.RGBA, error) {
	return s.renderer.Render(raster.Frame{
		Scale:      opts.Scale,
		Zoom:       opts.Zoom,
		Background: opts.Background,
		Mode:       opts.Mode,
		ShowLabels: opts.ShowLabels,
	})
}
