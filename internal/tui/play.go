// Package tui plays a picture in the terminal. Frames are rendered
// through the normal rasterizer and folded into half-block cells, two
// pixel rows per terminal row.
package tui

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/noutice/happy-color-poc/pkg/api"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	statusStyle   = lipgloss.NewStyle().Faint(true)
	selectedStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	doneStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	errorStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
)

// chromeRows is the number of terminal rows reserved for title,
// palette and status around the board.
const chromeRows = 4

type model struct {
	session *api.Session
	name    string

	width  int
	height int
}

// Run plays a document interactively until the user quits.
func Run(doc *api.Document, name string) error {
	m := model{
		session: doc.NewSession(),
		name:    name,
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch s := msg.String(); s {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "1", "2", "3", "4", "5", "6", "7", "8", "9":
			m.session.SelectColor(int(s[0] - '0'))
		case "tab":
			m.session.Board().AdvanceFocus()
		case "f":
			b := m.session.Board()
			if id := b.FocusedRegionID(); id != 0 {
				b.AttemptFill(id)
			}
		case "a":
			m.session.Board().FillAll()
		}
	}

	return m, nil
}

func (m model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("happycolor") + "  " + m.name + "\n")
	b.WriteString(m.renderBoard())
	b.WriteString(m.paletteLine() + "\n")
	b.WriteString(m.statusLine())
	return b.String()
}

// renderBoard rasterizes the session scaled to the terminal.
func (m model) renderBoard() string {
	doc := m.session.Document()

	availW := float64(m.width)
	availH := float64((m.height - chromeRows) * 2)
	if availW < 2 || availH < 2 {
		return ""
	}

	scale := math.Min(availW/doc.Width(), availH/doc.Height())
	img, err := m.session.RenderWithOptions(api.NewRenderOptions(api.Scale(scale)))
	if err != nil {
		return errorStyle.Render(fmt.Sprintf("render failed: %v", err)) + "\n"
	}

	return halfBlocks(img)
}

// halfBlocks folds pairs of pixel rows into upper-half-block cells:
// foreground carries the top pixel, background the bottom one.
func halfBlocks(img *image.RGBA) string {
	bounds := img.Bounds()
	var b strings.Builder

	for y := bounds.Min.Y; y < bounds.Max.Y; y += 2 {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			top := img.RGBAAt(x, y)
			bottom := top
			if y+1 < bounds.Max.Y {
				bottom = img.RGBAAt(x, y+1)
			}

			cell := lipgloss.NewStyle().
				Foreground(lipgloss.Color(hexPixel(top))).
				Background(lipgloss.Color(hexPixel(bottom)))
			b.WriteString(cell.Render("▀"))
		}
		b.WriteByte('\n')
	}

	return b.String()
}

func hexPixel(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// paletteLine lists every palette color with its remaining count.
func (m model) paletteLine() string {
	b := m.session.Board()
	palette := b.Palette()

	ids := make([]int, 0, len(palette))
	for id := range palette {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		chip := lipgloss.NewStyle().
			Foreground(lipgloss.Color(palette[id].Hex())).
			Render("■")
		entry := fmt.Sprintf("%s %d:%d", chip, id, b.Remaining(id))
		if id == b.SelectedColorID() {
			entry = selectedStyle.Render(entry)
		}
		parts = append(parts, entry)
	}

	return strings.Join(parts, "  ")
}

func (m model) statusLine() string {
	if m.session.IsComplete() {
		return doneStyle.Render("Complete!") + statusStyle.Render("  ·  q quit")
	}
	return statusStyle.Render(fmt.Sprintf(
		"%3.0f%% filled  ·  1-9 color  ·  tab next  ·  f fill  ·  a fill all  ·  q quit",
		m.session.Progress()*100,
	))
}
