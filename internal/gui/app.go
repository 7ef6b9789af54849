// Package gui provides the desktop coloring app built on Fyne.
package gui

import (
	"fmt"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/charmbracelet/log"

	"github.com/noutice/happy-color-poc/internal/config"
	"github.com/noutice/happy-color-poc/pkg/api"
)

// App represents the coloring application.
type App struct {
	fyneApp    fyne.App
	mainWindow fyne.Window
	cfg        *config.Config
	logger     *log.Logger

	document *api.Document
	session  *api.Session

	viewer  *BoardViewer
	palette *PaletteBar
	status  *StatusBar
}

// NewApp creates the application shell.
func NewApp(cfg *config.Config, logger *log.Logger) *App {
	a := &App{
		fyneApp: app.New(),
		cfg:     cfg,
		logger:  logger,
	}

	a.fyneApp.Settings().SetTheme(theme.LightTheme())
	a.mainWindow = a.fyneApp.NewWindow("Happy Color")
	a.mainWindow.Resize(fyne.NewSize(float32(cfg.WindowWidth), float32(cfg.WindowHeight)))

	return a
}

// Run starts the application.
func (a *App) Run() {
	a.buildUI()
	a.mainWindow.ShowAndRun()
}

// RunWithFile starts the application with a picture already loaded.
func (a *App) RunWithFile(path string) {
	a.buildUI()

	// Load after the window is ready
	go func() {
		if err := a.loadFile(path); err != nil {
			dialog.ShowError(err, a.mainWindow)
		}
	}()

	a.mainWindow.ShowAndRun()
}

// buildUI constructs the user interface.
func (a *App) buildUI() {
	a.viewer = NewBoardViewer(a.cfg.RenderScale)
	a.viewer.OnChanged = a.onBoardChanged
	a.viewer.OnRenderError = func(err error) {
		a.logger.Error("render failed", "err", err)
	}

	a.palette = NewPaletteBar()
	a.palette.OnSelect = a.selectColor

	a.status = NewStatusBar()

	openBtn := widget.NewButtonWithIcon("Open", theme.FolderOpenIcon(), a.openFile)
	nextBtn := widget.NewButtonWithIcon("Next region", theme.NavigateNextIcon(), a.advanceFocus)
	fillBtn := widget.NewButtonWithIcon("Fill region", theme.ConfirmIcon(), a.fillFocused)
	fillAllBtn := widget.NewButtonWithIcon("Fill all", theme.ColorPaletteIcon(), a.fillAll)
	zoomOutBtn := widget.NewButtonWithIcon("", theme.ZoomOutIcon(), a.zoomOut)
	zoomInBtn := widget.NewButtonWithIcon("", theme.ZoomInIcon(), a.zoomIn)
	fitBtn := widget.NewButtonWithIcon("", theme.ViewRestoreIcon(), a.fitPage)

	toolbar := container.NewHBox(
		openBtn,
		widget.NewSeparator(),
		nextBtn,
		fillBtn,
		fillAllBtn,
		widget.NewSeparator(),
		zoomOutBtn,
		zoomInBtn,
		fitBtn,
	)

	bottom := container.NewVBox(
		container.NewHScroll(a.palette.Container()),
		a.status.Container(),
	)

	content := container.NewBorder(
		container.NewPadded(toolbar), // Top
		bottom,                       // Bottom
		nil,                          // Left
		nil,                          // Right
		a.viewer,                     // Center
	)

	a.mainWindow.SetContent(content)

	a.mainWindow.Canvas().SetOnTypedKey(a.handleKey)
}

// handleKey handles keyboard shortcuts: digits select a color, Tab
// walks the highlighted regions, F fills the focused one, A fills all.
func (a *App) handleKey(key *fyne.KeyEvent) {
	switch key.Name {
	case fyne.Key1, fyne.Key2, fyne.Key3, fyne.Key4, fyne.Key5,
		fyne.Key6, fyne.Key7, fyne.Key8, fyne.Key9:
		a.selectColor(int(key.Name[0] - '0'))
	case fyne.KeyTab:
		a.advanceFocus()
	case fyne.KeyF:
		a.fillFocused()
	case fyne.KeyA:
		a.fillAll()
	case fyne.KeyPlus, fyne.KeyEqual:
		a.zoomIn()
	case fyne.KeyMinus:
		a.zoomOut()
	case fyne.Key0:
		a.fitPage()
	}
}

// openFile shows a file dialog and loads the selected picture.
func (a *App) openFile() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.mainWindow)
			return
		}
		if reader == nil {
			return // Cancelled
		}
		defer reader.Close()

		if err := a.loadFile(reader.URI().Path()); err != nil {
			dialog.ShowError(err, a.mainWindow)
		}
	}, a.mainWindow)

	fd.SetFilter(storage.NewExtensionFileFilter([]string{".svg", ".svgz"}))
	fd.Show()
}

// loadFile loads a picture and starts a fresh session over it.
func (a *App) loadFile(path string) error {
	doc, err := api.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open picture: %w", err)
	}

	a.document = doc
	a.session = doc.NewSession()

	stats := doc.Stats()
	a.logger.Info("picture loaded",
		"path", path,
		"regions", doc.RegionCount(),
		"colors", doc.ColorCount(),
		"skipped", stats.SkippedNodes,
		"degraded", stats.DegradedColors,
	)

	a.mainWindow.SetTitle(fmt.Sprintf("Happy Color - %s", filepath.Base(path)))

	a.viewer.SetSession(a.session)
	a.palette.SetSession(a.session)
	a.updateStatus()

	return nil
}

// selectColor selects a palette color and refreshes highlights.
func (a *App) selectColor(colorID int) {
	if a.session == nil {
		return
	}
	if _, ok := a.session.Board().Palette()[colorID]; !ok {
		return
	}

	a.session.SelectColor(colorID)
	a.palette.Update(a.session)
	a.viewer.Redraw()
	a.updateStatus()
}

// advanceFocus moves the focus cursor to the next highlighted region.
func (a *App) advanceFocus() {
	if a.session == nil {
		return
	}
	a.session.Board().AdvanceFocus()
	a.viewer.Redraw()
}

// fillFocused fills the currently focused region.
func (a *App) fillFocused() {
	if a.session == nil {
		return
	}

	b := a.session.Board()
	if id := b.FocusedRegionID(); id != 0 && b.AttemptFill(id) {
		a.viewer.Redraw()
		a.onBoardChanged()
	}
}

// fillAll fills every highlighted region at once.
func (a *App) fillAll() {
	if a.session == nil {
		return
	}

	if n := a.session.Board().FillAll(); n > 0 {
		a.logger.Debug("filled remaining regions", "count", n)
		a.viewer.Redraw()
		a.onBoardChanged()
	}
}

// onBoardChanged refreshes palette counts and progress after fills.
func (a *App) onBoardChanged() {
	a.palette.Update(a.session)
	a.updateStatus()

	if a.session.IsComplete() {
		dialog.ShowInformation("Picture complete", "Every region is filled. Nice work!", a.mainWindow)
	}
}

// updateStatus refreshes the status bar.
func (a *App) updateStatus() {
	if a.session == nil {
		a.status.SetStatus("No picture loaded")
		return
	}

	b := a.session.Board()
	if sel := b.SelectedColorID(); sel != 0 {
		a.status.SetStatus(fmt.Sprintf("Color %d: %d regions left", sel, b.Remaining(sel)))
	} else {
		a.status.SetStatus("Pick a color")
	}

	a.status.SetProgress(a.session.Progress())
	a.status.SetZoom(int(a.viewer.Zoom()*100 + 0.5))
}

func (a *App) zoomIn() {
	a.viewer.ZoomIn()
	a.status.SetZoom(int(a.viewer.Zoom()*100 + 0.5))
}

func (a *App) zoomOut() {
	a.viewer.ZoomOut()
	a.status.SetZoom(int(a.viewer.Zoom()*100 + 0.5))
}

func (a *App) fitPage() {
	a.viewer.FitPage()
	a.status.SetZoom(int(a.viewer.Zoom()*100 + 0.5))
}
