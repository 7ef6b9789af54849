package gui

import (
	"image"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/noutice/happy-color-poc/pkg/api"
)

// Zoom bounds for the board view. Zoom moves in multiplicative steps so
// wheel and keyboard feel the same.
const (
	minZoom  = 0.25
	maxZoom  = 8.0
	zoomStep = 1.2
)

// BoardViewer is a custom widget displaying the coloring board with
// pan, zoom and tap-to-fill.
type BoardViewer struct {
	widget.BaseWidget

	session *api.Session
	image   *canvas.Image
	frame   image.Image

	// Base rendering resolution in pixels per document unit. The frame
	// is re-rendered at renderScale*zoom so it stays crisp.
	renderScale float64

	// View state
	zoom    float64
	offsetX float64
	offsetY float64

	// Dragging state
	dragStart    fyne.Position
	startOffsetX float64
	startOffsetY float64

	// OnChanged fires after any tap that filled a region.
	OnChanged func()
	// OnRenderError fires when a frame fails to draw.
	OnRenderError func(err error)
}

// NewBoardViewer creates a board viewer without a session. Nothing is
// drawn until SetSession.
func NewBoardViewer(renderScale float64) *BoardViewer {
	if renderScale <= 0 {
		renderScale = 1
	}
	v := &BoardViewer{
		renderScale: renderScale,
		zoom:        1.0,
	}
	v.ExtendBaseWidget(v)

	v.image = canvas.NewImageFromImage(nil)
	v.image.FillMode = canvas.ImageFillContain
	v.image.ScaleMode = canvas.ImageScaleSmooth

	return v
}

// SetSession swaps the session being displayed and resets the view.
func (v *BoardViewer) SetSession(s *api.Session) {
	v.session = s
	v.resetView()
	v.Redraw()
}

// Session returns the session being displayed.
func (v *BoardViewer) Session() *api.Session {
	return v.session
}

// Zoom returns the current view magnification.
func (v *BoardViewer) Zoom() float64 {
	return v.zoom
}

func (v *BoardViewer) resetView() {
	v.zoom = 1.0
	v.offsetX = 0
	v.offsetY = 0
	v.startOffsetX = 0
	v.startOffsetY = 0
}

// Redraw renders a fresh frame from the session state. Label sizes
// follow the current zoom.
func (v *BoardViewer) Redraw() {
	if v.session == nil {
		v.frame = nil
		v.image.Image = nil
		v.Refresh()
		return
	}

	img, err := v.session.RenderWithOptions(api.NewRenderOptions(
		api.Scale(v.renderScale*v.zoom),
		api.Zoom(v.zoom),
	))
	if err != nil {
		if v.OnRenderError != nil {
			v.OnRenderError(err)
		}
		return
	}

	v.frame = img
	v.image.Image = img
	v.Refresh()
}

// CreateRenderer creates the renderer for this widget.
func (v *BoardViewer) CreateRenderer() fyne.WidgetRenderer {
	return &boardViewerRenderer{
		viewer: v,
	}
}

// Tapped fills the tapped region if it matches the selected color.
func (v *BoardViewer) Tapped(event *fyne.PointEvent) {
	if v.session == nil {
		return
	}

	x, y, ok := v.screenToDoc(event.Position)
	if !ok {
		return
	}

	if v.session.TapAt(x, y) {
		v.Redraw()
		if v.OnChanged != nil {
			v.OnChanged()
		}
	}
}

// Dragged handles drag events for panning.
func (v *BoardViewer) Dragged(event *fyne.DragEvent) {
	v.offsetX = v.startOffsetX + float64(event.Dragged.DX)
	v.offsetY = v.startOffsetY + float64(event.Dragged.DY)
	v.Refresh()
}

// DragEnd handles the end of a drag.
func (v *BoardViewer) DragEnd() {
	v.startOffsetX = v.offsetX
	v.startOffsetY = v.offsetY
}

// Scrolled zooms one step toward the cursor.
func (v *BoardViewer) Scrolled(event *fyne.ScrollEvent) {
	factor := zoomStep
	if event.Scrolled.DY < 0 {
		factor = 1 / zoomStep
	}
	v.zoomBy(factor, event.Position)
}

// ZoomIn increases zoom one step around the view center.
func (v *BoardViewer) ZoomIn() {
	v.zoomBy(zoomStep, v.center())
}

// ZoomOut decreases zoom one step around the view center.
func (v *BoardViewer) ZoomOut() {
	v.zoomBy(1/zoomStep, v.center())
}

// FitPage resets zoom and centers the board.
func (v *BoardViewer) FitPage() {
	v.resetView()
	v.Redraw()
}

func (v *BoardViewer) center() fyne.Position {
	size := v.Size()
	return fyne.NewPos(size.Width/2, size.Height/2)
}

// zoomBy rescales around a fixed screen point so the document point
// under it stays put.
func (v *BoardViewer) zoomBy(factor float64, at fyne.Position) {
	newZoom := math.Max(minZoom, math.Min(maxZoom, v.zoom*factor))
	if newZoom == v.zoom {
		return
	}

	docX, docY, ok := v.screenToDoc(at)

	v.zoom = newZoom
	v.Redraw()

	if ok {
		// Re-anchor the offsets so (docX, docY) lands back under the
		// cursor at the new zoom.
		size := v.Size()
		scale := v.renderScale * v.zoom
		imgW := v.frameWidth()
		imgH := v.frameHeight()

		v.offsetX = float64(at.X) - docX*scale - (float64(size.Width)-imgW)/2
		v.offsetY = float64(at.Y) - docY*scale - (float64(size.Height)-imgH)/2
		v.startOffsetX = v.offsetX
		v.startOffsetY = v.offsetY
		v.Refresh()
	}
}

// screenToDoc maps a widget position to document coordinates.
func (v *BoardViewer) screenToDoc(pos fyne.Position) (float64, float64, bool) {
	if v.frame == nil {
		return 0, 0, false
	}

	size := v.Size()
	imgW := v.frameWidth()
	imgH := v.frameHeight()

	drawX := (float64(size.Width)-imgW)/2 + v.offsetX
	drawY := (float64(size.Height)-imgH)/2 + v.offsetY

	scale := v.renderScale * v.zoom
	x := (float64(pos.X) - drawX) / scale
	y := (float64(pos.Y) - drawY) / scale

	doc := v.session.Document()
	if x < 0 || y < 0 || x > doc.Width() || y > doc.Height() {
		return 0, 0, false
	}
	return x, y, true
}

func (v *BoardViewer) frameWidth() float64 {
	if v.frame == nil {
		return 0
	}
	return float64(v.frame.Bounds().Dx())
}

func (v *BoardViewer) frameHeight() float64 {
	if v.frame == nil {
		return 0
	}
	return float64(v.frame.Bounds().Dy())
}

// boardViewerRenderer lays the rendered frame out inside the widget.
type boardViewerRenderer struct {
	viewer *BoardViewer
}

func (r *boardViewerRenderer) Layout(size fyne.Size) {
	if r.viewer.frame == nil {
		return
	}

	imgW := float32(r.viewer.frameWidth())
	imgH := float32(r.viewer.frameHeight())

	x := (size.Width-imgW)/2 + float32(r.viewer.offsetX)
	y := (size.Height-imgH)/2 + float32(r.viewer.offsetY)

	r.viewer.image.Move(fyne.NewPos(x, y))
	r.viewer.image.Resize(fyne.NewSize(imgW, imgH))
}

func (r *boardViewerRenderer) MinSize() fyne.Size {
	return fyne.NewSize(200, 200)
}

func (r *boardViewerRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.viewer.image}
}

func (r *boardViewerRenderer) Refresh() {
	r.viewer.image.Refresh()
}

func (r *boardViewerRenderer) Destroy() {}
