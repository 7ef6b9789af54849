// Package board holds the colorable model produced by parsing: the
// ordered regions, the palette, and the state machine driving one
// coloring session.
package board

import (
	"github.com/noutice/happy-color-poc/pkg/graphics"
)

// FillState tracks whether a region has been painted. The transition is
// one-way: once Filled a region never reverts during a session.
type FillState int

const (
	Unfilled FillState = iota
	Filled
)

// Region is one closed, colorable shape in global document coordinates.
// Regions are created at parse time; only State and Current change
// afterwards, and only through Board operations.
type Region struct {
	ID       int // 1-based, document traversal order
	ColorID  int // palette index
	Geometry *graphics.Path
	State    FillState
	Current  graphics.RGBA // placeholder white until filled
}

// Palette maps palette indices to colors. Indices are contiguous and
// 1-based in first-seen traversal order.
type Palette map[int]graphics.RGBA

// Board is a single coloring session over a parsed document. It owns
// the fill transitions and the selection/focus cursor. A board is not
// safe for concurrent use; callers with multiple input sources must
// serialize access to it.
type Board struct {
	regions []*Region
	palette Palette

	selectedColorID int // 0 = none
	focusedRegionID int // 0 = none
}

// New creates a board over parsed regions and their palette. Region ids
// are expected to be 1..N in slice order, as the parser assigns them.
func New(regions []*Region, palette Palette) *Board {
	return &Board{
		regions: regions,
		palette: palette,
	}
}

// Regions returns all regions in id order. The slice is shared; callers
// must not mutate it.
func (b *Board) Regions() []*Region {
	return b.regions
}

// Palette returns the palette.
func (b *Board) Palette() Palette {
	return b.palette
}

// SelectedColorID returns the selected palette index, 0 when none.
func (b *Board) SelectedColorID() int {
	return b.selectedColorID
}

// FocusedRegionID returns the focused region id, 0 when none.
func (b *Board) FocusedRegionID() int {
	return b.focusedRegionID
}

// SelectColor chooses the palette index subsequent fills must match and
// clears the focus cursor. Selecting 0 clears the selection.
func (b *Board) SelectColor(id int) {
	b.selectedColorID = id
	b.focusedRegionID = 0
}

// HitTest returns the id of the topmost region whose geometry contains
// pt. Regions are tested in reverse traversal order so shapes drawn
// later shadow the ones beneath them.
func (b *Board) HitTest(pt graphics.Point) (int, bool) {
	for i := len(b.regions) - 1; i >= 0; i-- {
		r := b.regions[i]
		if r.Geometry != nil && r.Geometry.Contains(pt, graphics.FillRuleNonZero) {
			return r.ID, true
		}
	}
	return 0, false
}

// AttemptFill fills the region only when a color is selected, the
// region's palette index matches it, and the region is still unfilled.
// Every other combination is a no-op. Reports whether a fill happened.
func (b *Board) AttemptFill(regionID int) bool {
	if b.selectedColorID == 0 {
		return false
	}
	r := b.region(regionID)
	if r == nil || r.ColorID != b.selectedColorID || r.State != Unfilled {
		return false
	}
	b.fill(r)
	return true
}

// HighlightedRegions returns the unfilled regions of the selected color
// in id order. The result is rebuilt on every call; nothing is cached.
func (b *Board) HighlightedRegions() []*Region {
	if b.selectedColorID == 0 {
		return nil
	}
	var out []*Region
	for _, r := range b.regions {
		if r.ColorID == b.selectedColorID && r.State == Unfilled {
			out = append(out, r)
		}
	}
	return out
}

// AdvanceFocus moves the focus cursor to the next highlighted region in
// id order, wrapping past the end. When the cursor is unset, or points
// at a region no longer highlighted, it restarts at the first. No-op
// when nothing is highlighted.
func (b *Board) AdvanceFocus() {
	hl := b.HighlightedRegions()
	if len(hl) == 0 {
		return
	}
	for i, r := range hl {
		if r.ID == b.focusedRegionID {
			b.focusedRegionID = hl[(i+1)%len(hl)].ID
			return
		}
	}
	b.focusedRegionID = hl[0].ID
}

// FillAll fills every highlighted region and parks the focus on the
// last one filled. Returns the number of regions filled, 0 when the
// highlighted set was empty.
func (b *Board) FillAll() int {
	hl := b.HighlightedRegions()
	for _, r := range hl {
		b.fill(r)
	}
	if n := len(hl); n > 0 {
		b.focusedRegionID = hl[n-1].ID
	}
	return len(hl)
}

// Remaining returns how many regions of the given palette index are
// still unfilled.
func (b *Board) Remaining(colorID int) int {
	n := 0
	for _, r := range b.regions {
		if r.ColorID == colorID && r.State == Unfilled {
			n++
		}
	}
	return n
}

// IsComplete reports whether no region remains unfilled. This is a
// derived query, not a stored flag.
func (b *Board) IsComplete() bool {
	for _, r := range b.regions {
		if r.State == Unfilled {
			return false
		}
	}
	return true
}

// Progress returns the filled fraction, 0 for an empty board.
func (b *Board) Progress() float64 {
	if len(b.regions) == 0 {
		return 0
	}
	filled := 0
	for _, r := range b.regions {
		if r.State == Filled {
			filled++
		}
	}
	return float64(filled) / float64(len(b.regions))
}

// fill applies the palette color. This is the only place a region
// transitions to Filled, so the color is set exactly once.
func (b *Board) fill(r *Region) {
	r.State = Filled
	r.Current = b.palette[r.ColorID]
}

// region resolves an id to its region, nil when out of range.
func (b *Board) region(id int) *Region {
	if id < 1 || id > len(b.regions) {
		return nil
	}
	return b.regions[id-1]
}
