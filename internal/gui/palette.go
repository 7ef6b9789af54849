package gui

import (
	"fmt"
	"image/color"
	"sort"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/noutice/happy-color-poc/pkg/api"
)

// swatch is one tappable palette entry: a color block showing the
// palette number and how many regions of that color remain.
type swatch struct {
	widget.BaseWidget

	colorID   int
	fill      color.Color
	remaining int
	selected  bool
	onTapped  func(colorID int)
}

func newSwatch(colorID int, fill color.Color, onTapped func(int)) *swatch {
	s := &swatch{
		colorID:  colorID,
		fill:     fill,
		onTapped: onTapped,
	}
	s.ExtendBaseWidget(s)
	return s
}

// Tapped selects this swatch's color.
func (s *swatch) Tapped(*fyne.PointEvent) {
	if s.onTapped != nil {
		s.onTapped(s.colorID)
	}
}

// SetState updates the remaining count and selection highlight.
func (s *swatch) SetState(remaining int, selected bool) {
	s.remaining = remaining
	s.selected = selected
	s.Refresh()
}

func (s *swatch) CreateRenderer() fyne.WidgetRenderer {
	background := canvas.NewRectangle(s.fill)
	background.CornerRadius = 6

	number := canvas.NewText(strconv.Itoa(s.colorID), textColorFor(s.fill))
	number.TextStyle = fyne.TextStyle{Bold: true}
	number.TextSize = 18
	number.Alignment = fyne.TextAlignCenter

	count := canvas.NewText("", textColorFor(s.fill))
	count.TextSize = 11
	count.Alignment = fyne.TextAlignCenter

	r := &swatchRenderer{
		swatch:     s,
		background: background,
		number:     number,
		count:      count,
	}
	r.Refresh()
	return r
}

type swatchRenderer struct {
	swatch     *swatch
	background *canvas.Rectangle
	number     *canvas.Text
	count      *canvas.Text
}

func (r *swatchRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
	r.background.Move(fyne.NewPos(0, 0))

	r.number.Resize(fyne.NewSize(size.Width, r.number.MinSize().Height))
	r.number.Move(fyne.NewPos(0, size.Height*0.18))

	r.count.Resize(fyne.NewSize(size.Width, r.count.MinSize().Height))
	r.count.Move(fyne.NewPos(0, size.Height*0.60))
}

func (r *swatchRenderer) MinSize() fyne.Size {
	return fyne.NewSize(52, 56)
}

func (r *swatchRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.background, r.number, r.count}
}

func (r *swatchRenderer) Refresh() {
	if r.swatch.selected {
		r.background.StrokeColor = color.NRGBA{R: 33, G: 33, B: 33, A: 255}
		r.background.StrokeWidth = 3
	} else {
		r.background.StrokeColor = color.NRGBA{R: 120, G: 120, B: 120, A: 255}
		r.background.StrokeWidth = 1
	}

	if r.swatch.remaining == 0 {
		r.count.Text = "done"
	} else {
		r.count.Text = fmt.Sprintf("%d left", r.swatch.remaining)
	}

	r.background.Refresh()
	r.number.Refresh()
	r.count.Refresh()
}

func (r *swatchRenderer) Destroy() {}

// textColorFor picks dark or light text against a swatch fill.
func textColorFor(c color.Color) color.Color {
	r, g, b, _ := c.RGBA()
	luma := 0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(b>>8)
	if luma > 140 {
		return color.NRGBA{R: 33, G: 33, B: 33, A: 255}
	}
	return color.NRGBA{R: 255, G: 255, B: 255, A: 255}
}

// PaletteBar is the row of color swatches under the board.
type PaletteBar struct {
	container *fyne.Container
	swatches  map[int]*swatch

	// OnSelect fires when a swatch is tapped.
	OnSelect func(colorID int)
}

// NewPaletteBar creates an empty palette bar.
func NewPaletteBar() *PaletteBar {
	return &PaletteBar{
		container: container.NewHBox(),
		swatches:  make(map[int]*swatch),
	}
}

// Container returns the palette bar container.
func (p *PaletteBar) Container() *fyne.Container {
	return p.container
}

// SetSession rebuilds the swatches for a session's palette.
func (p *PaletteBar) SetSession(s *api.Session) {
	p.container.Objects = nil
	p.swatches = make(map[int]*swatch)

	palette := s.Board().Palette()
	ids := make([]int, 0, len(palette))
	for id := range palette {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		sw := newSwatch(id, palette[id], func(colorID int) {
			if p.OnSelect != nil {
				p.OnSelect(colorID)
			}
		})
		p.swatches[id] = sw
		p.container.Add(sw)
	}

	p.Update(s)
}

// Update refreshes counts and the selection highlight.
func (p *PaletteBar) Update(s *api.Session) {
	b := s.Board()
	selected := b.SelectedColorID()
	for id, sw := range p.swatches {
		sw.SetState(b.Remaining(id), id == selected)
	}
}

// StatusBar shows progress and the current zoom.
type StatusBar struct {
	container *fyne.Container
	label     *widget.Label
	progress  *widget.ProgressBar
	zoomLabel *widget.Label
}

// NewStatusBar creates a new status bar.
func NewStatusBar() *StatusBar {
	s := &StatusBar{
		label:     widget.NewLabel("No picture loaded"),
		progress:  widget.NewProgressBar(),
		zoomLabel: widget.NewLabel("100%"),
	}

	s.container = container.NewBorder(nil, nil, s.label, s.zoomLabel, s.progress)
	return s
}

// Container returns the status bar container.
func (s *StatusBar) Container() *fyne.Container {
	return s.container
}

// SetStatus sets the status message.
func (s *StatusBar) SetStatus(msg string) {
	s.label.SetText(msg)
}

// SetProgress sets the filled fraction.
func (s *StatusBar) SetProgress(frac float64) {
	s.progress.SetValue(frac)
}

// SetZoom sets the zoom percentage display.
func (s *StatusBar) SetZoom(percent int) {
	s.zoomLabel.SetText(strconv.Itoa(percent) + "%")
}
