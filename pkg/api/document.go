// Package api provides a clean public API for the coloring engine.
// This is the main entry point for external consumers.
package api

import (
	"fmt"
	"os"

	"github.com/noutice/happy-color-poc/pkg/board"
	"github.com/noutice/happy-color-poc/pkg/svg"
)

// Document represents a parsed picture: canvas size, regions and
// palette. A Document is immutable; fill progress belongs to the
// sessions created from it.
type Document struct {
	doc *svg.Document
}

// Open reads and parses a picture file. Gzip-compressed files are
// detected and decompressed transparently.
func Open(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return OpenBytes(data)
}

// OpenBytes parses a picture from a byte slice.
func OpenBytes(data []byte) (*Document, error) {
	doc, err := svg.Parse(data)
	if err != nil {
		return nil, err
	}
	return &Document{doc: doc}, nil
}

// Width returns the canvas width in document units.
func (d *Document) Width() float64 {
	return d.doc.Width
}

// Height returns the canvas height in document units.
func (d *Document) Height() float64 {
	return d.doc.Height
}

// RegionCount returns the number of fillable regions.
func (d *Document) RegionCount() int {
	return len(d.doc.Regions)
}

// ColorCount returns the number of distinct palette colors.
func (d *Document) ColorCount() int {
	return len(d.doc.Palette)
}

// Palette returns the palette index to color mapping.
func (d *Document) Palette() board.Palette {
	return d.doc.Palette
}

// Stats returns counters collected while parsing.
func (d *Document) Stats() svg.ParseStats {
	return d.doc.Stats
}

// AspectRatio returns the width/height ratio.
func (d *Document) AspectRatio() float64 {
	if d.doc.Height == 0 {
		return 1
	}
	return d.doc.Width / d.doc.Height
}

// IsLandscape returns true if the canvas is wider than tall.
func (d *Document) IsLandscape() bool {
	return d.doc.Width > d.doc.Height
}
