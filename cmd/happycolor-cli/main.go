// CLI-only version (no GUI dependencies)
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/noutice/happy-color-poc/internal/config"
	"github.com/noutice/happy-color-poc/internal/tui"
	"github.com/noutice/happy-color-poc/pkg/api"
	"github.com/noutice/happy-color-poc/pkg/raster"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "info":
		if len(os.Args) < 3 {
			fmt.Println("Usage: happycolor info <file.svg>")
			os.Exit(1)
		}
		cmdInfo(os.Args[2])

	case "render":
		if len(os.Args) < 3 {
			fmt.Println("Usage: happycolor render <file.svg> [-o output.png] [-scale value] [-mode name] [-no-labels]")
			os.Exit(1)
		}
		cmdRender(os.Args[2:])

	case "play":
		if len(os.Args) < 3 {
			fmt.Println("Usage: happycolor play <file.svg>")
			os.Exit(1)
		}
		cmdPlay(os.Args[2])

	case "help", "-h", "--help":
		printUsage()

	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`
  ██╗  ██╗ █████╗ ██████╗ ██████╗ ██╗   ██╗
  ██║  ██║██╔══██╗██╔══██╗██╔══██╗╚██╗ ██╔╝
  ███████║███████║██████╔╝██████╔╝ ╚████╔╝
  ██╔══██║██╔══██║██╔═══╝ ██╔═══╝   ╚██╔╝
  ██║  ██║██║  ██║██║     ██║        ██║
  ╚═╝  ╚═╝╚═╝  ╚═╝╚═╝     ╚═╝        ╚═╝

  A paint-by-number coloring book for SVG pictures (CLI version)

Usage:
  happycolor <command> [arguments]

Commands:
  info <file.svg>              Show picture size, regions and palette
  render <file.svg> [options]  Render the picture to PNG
    -o <output.png>            Output file (default from config)
    -scale <value>             Pixels per document unit (default from config)
    -mode <name>               progress, outline or solution (default: outline)
    -no-labels                 Hide the color-number labels
  play <file.svg>              Color the picture in the terminal

Examples:
  happycolor info mandala.svg
  happycolor render mandala.svg -o sheet.png
  happycolor render mandala.svg -mode solution -scale 4
  happycolor play mandala.svg`)
}

func cmdInfo(path string) {
	doc, err := api.Open(path)
	if err != nil {
		fmt.Printf("Error opening picture: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("File: %s\n", path)
	fmt.Println("────────────────────────────────────────")
	fmt.Printf("Canvas: %g × %g units\n", doc.Width(), doc.Height())
	fmt.Printf("Regions: %d\n", doc.RegionCount())
	fmt.Printf("Colors: %d\n", doc.ColorCount())

	stats := doc.Stats()
	if stats.SkippedNodes > 0 {
		fmt.Printf("Skipped elements: %d\n", stats.SkippedNodes)
	}
	if stats.DegradedColors > 0 {
		fmt.Printf("Degraded fills: %d\n", stats.DegradedColors)
	}

	palette := doc.Palette()
	ids := make([]int, 0, len(palette))
	for id := range palette {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	board := doc.NewSession().Board()

	fmt.Println("\nPalette:")
	for _, id := range ids {
		fmt.Printf("  %2d: %s  (%d regions)\n", id, palette[id].Hex(), board.Remaining(id))
	}
}

func cmdRender(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: happycolor render <file.svg> [-o output.png] [-scale value] [-mode name] [-no-labels]")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	path := args[0]
	output := cfg.OutputPath
	scale := cfg.RenderScale
	mode := raster.ModeOutline
	labels := true

	for i := 1; i < len(args); i++ {
		switch args[i] {
		case "-o":
			if i+1 < len(args) {
				output = args[i+1]
				i++
			}
		case "-scale":
			if i+1 < len(args) {
				scale, _ = strconv.ParseFloat(args[i+1], 64)
				i++
			}
		case "-mode":
			if i+1 < len(args) {
				mode = parseMode(args[i+1])
				i++
			}
		case "-no-labels":
			labels = false
		}
	}

	// Handle relative paths
	if !filepath.IsAbs(path) && !strings.HasPrefix(path, ".") {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			// Try current directory
			cwd, _ := os.Getwd()
			path = filepath.Join(cwd, path)
		}
	}

	fmt.Printf("Opening %s...\n", path)

	doc, err := api.Open(path)
	if err != nil {
		fmt.Printf("Error opening picture: %v\n", err)
		os.Exit(1)
	}

	session := doc.NewSession()

	fmt.Printf("Rendering %s view at %gx scale...\n", mode, scale)

	opts := api.NewRenderOptions(
		api.Scale(scale),
		api.Mode(mode),
		api.Background(cfg.BackgroundColor()),
	)
	if !labels {
		opts.Apply(api.NoLabels())
	}

	img, err := session.RenderWithOptions(opts)
	if err != nil {
		fmt.Printf("Error rendering picture: %v\n", err)
		os.Exit(1)
	}

	dir := filepath.Dir(output)
	if dir != "" && dir != "." {
		os.MkdirAll(dir, 0755)
	}

	f, err := os.Create(output)
	if err != nil {
		fmt.Printf("Error creating output file: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	if err := raster.WritePNG(f, img); err != nil {
		fmt.Printf("Error encoding PNG: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Saved %s (%dx%d pixels)\n", output, img.Bounds().Dx(), img.Bounds().Dy())
}

func parseMode(name string) raster.Mode {
	switch strings.ToLower(name) {
	case "progress":
		return raster.ModeProgress
	case "outline":
		return raster.ModeOutline
	case "solution":
		return raster.ModeSolution
	default:
		fmt.Printf("Unknown mode: %s (want progress, outline or solution)\n", name)
		os.Exit(1)
		return 0
	}
}

func cmdPlay(path string) {
	doc, err := api.Open(path)
	if err != nil {
		fmt.Printf("Error opening picture: %v\n", err)
		os.Exit(1)
	}

	if err := tui.Run(doc, filepath.Base(path)); err != nil {
		fmt.Printf("Error in terminal mode: %v\n", err)
		os.Exit(1)
	}
}
