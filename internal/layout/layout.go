// Package layout implements the thumbnail gallery grid of section 4.7:
// resize geometry, the visible window, cell-wise selection, hit
// testing, and the thumbnail load queue.
package layout

import (
	"github.com/swayview/swayview/internal/imageio"
	"github.com/swayview/swayview/internal/imagelist"
)

// Direction enumerates the cell-wise and page-wise selection moves.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
	PageUp
	PageDown
	FirstEntry
	LastEntry
)

// Layout is the tuple named in section 3's data model.
type Layout struct {
	List *imagelist.List

	Columns, Rows      int
	ThumbSize, Padding int
	Width, Height      int

	Current    *imageio.Image
	CurrentRow int
	CurrentCol int
	Visible    []*imageio.Image

	entered bool
}

// New returns a Layout bound to list.
func New(list *imagelist.List, thumbSize, padding int) *Layout {
	return &Layout{List: list, ThumbSize: thumbSize, Padding: padding}
}

// Resize recomputes the grid geometry for new window dimensions.
func (l *Layout) Resize(width, height int) {
	l.Width, l.Height = width, height
	cell := l.ThumbSize + l.Padding
	if cell < 1 {
		cell = 1
	}
	l.Columns = width / cell
	if l.Columns < 1 {
		l.Columns = 1
	}
	l.Rows = height / cell
	if l.Rows < 1 {
		l.Rows = 1
	}
	l.Update()
}

// Update positions the selected image at current_row (defaulting to
// rows/2 on first entry, else clamped), computes current_col from the
// image's index, and recomputes the visible set so the selection stays
// on screen.
func (l *Layout) Update() {
	entries := l.List.Entries()
	if len(entries) == 0 {
		l.Visible = nil
		l.Current = nil
		return
	}
	if l.Current == nil {
		l.Current = entries[0]
	}

	idx := l.Current.Index
	perPage := l.Rows * l.Columns

	if !l.entered {
		l.CurrentRow = l.Rows / 2
		l.entered = true
	}
	if l.CurrentRow >= l.Rows {
		l.CurrentRow = l.Rows - 1
	}
	l.CurrentCol = idx % l.Columns

	// windowStart is the index of the top-left visible cell, chosen so
	// idx lands on CurrentRow.
	windowStart := idx - l.CurrentCol - l.CurrentRow*l.Columns
	if windowStart < 0 {
		windowStart = 0
		l.CurrentRow = idx / l.Columns
	}
	if windowStart+perPage > len(entries) {
		// Scroll so the last row is fully populated where possible.
		windowStart = len(entries) - perPage
		if windowStart < 0 {
			windowStart = 0
		}
		l.CurrentRow = (idx - windowStart) / l.Columns
	}

	end := windowStart + perPage
	if end > len(entries) {
		end = len(entries)
	}
	l.Visible = entries[windowStart:end]
}

// Select moves the selection by one cell, one page, or to an end,
// clamping at the list boundaries.
func (l *Layout) Select(dir Direction) bool {
	entries := l.List.Entries()
	if len(entries) == 0 || l.Current == nil {
		return false
	}
	idx := l.Current.Index
	n := len(entries)
	next := idx

	switch dir {
	case Up:
		next = idx - l.Columns
	case Down:
		next = idx + l.Columns
	case Left:
		next = idx - 1
	case Right:
		next = idx + 1
	case PageUp:
		next = idx - (l.Rows-1)*l.Columns
	case PageDown:
		next = idx + (l.Rows-1)*l.Columns
	case FirstEntry:
		next = 0
	case LastEntry:
		next = n - 1
	}
	if next < 0 {
		next = 0
	}
	if next >= n {
		next = n - 1
	}
	if next == idx {
		return false
	}
	l.Current = entries[next]
	l.Update()
	return true
}

// SelectAt hit-tests a pixel and selects the thumb under it, reporting
// whether a thumb was found there.
func (l *Layout) SelectAt(x, y int) bool {
	cell := l.ThumbSize + l.Padding
	if cell < 1 || len(l.Visible) == 0 {
		return false
	}
	col := x / cell
	row := y / cell
	if col < 0 || col >= l.Columns || row < 0 || row >= l.Rows {
		return false
	}
	i := row*l.Columns + col
	if i < 0 || i >= len(l.Visible) {
		return false
	}
	l.Current = l.Visible[i]
	l.CurrentRow, l.CurrentCol = row, col
	return true
}

// LoadQueue produces an ordered sequence of images to thumbnail next:
// visible entries missing a thumbnail first (alternating outward from
// current), then up to `preload` additional off-screen entries in the
// same alternating order.
func (l *Layout) LoadQueue(preload int) []*imageio.Image {
	entries := l.List.Entries()
	if len(entries) == 0 || l.Current == nil {
		return nil
	}
	center := l.Current.Index
	var queue []*imageio.Image
	seen := make(map[string]bool)

	addIfMissingThumb := func(img *imageio.Image) {
		if img.Thumbnail == nil && !seen[img.Source] {
			queue = append(queue, img)
			seen[img.Source] = true
		}
	}

	visibleSet := make(map[string]bool, len(l.Visible))
	for _, v := range l.Visible {
		visibleSet[v.Source] = true
	}

	fwd, back := center, center-1
	for fwd < len(entries) || back >= 0 {
		if fwd < len(entries) && visibleSet[entries[fwd].Source] {
			addIfMissingThumb(entries[fwd])
		}
		if back >= 0 && visibleSet[entries[back].Source] {
			addIfMissingThumb(entries[back])
		}
		fwd++
		back--
	}

	extra := 0
	fwd, back = l.visibleEnd(), l.visibleStart()-1
	for extra < preload && (fwd < len(entries) || back >= 0) {
		if fwd < len(entries) {
			addIfMissingThumb(entries[fwd])
			extra++
			fwd++
		}
		if extra >= preload {
			break
		}
		if back >= 0 {
			addIfMissingThumb(entries[back])
			extra++
			back--
		}
	}
	return queue
}

func (l *Layout) visibleStart() int {
	if len(l.Visible) == 0 {
		return 0
	}
	return l.Visible[0].Index
}

func (l *Layout) visibleEnd() int {
	if len(l.Visible) == 0 {
		return 0
	}
	return l.Visible[len(l.Visible)-1].Index + 1
}

// Clear frees thumbnails outside the preserved window around the
// visible range (`preserve` entries on each side).
func (l *Layout) Clear(preserve int) {
	entries := l.List.Entries()
	if len(l.Visible) == 0 {
		return
	}
	lo := l.visibleStart() - preserve
	hi := l.visibleEnd() + preserve
	for _, img := range entries {
		if img.Index < lo || img.Index >= hi {
			if img.Thumbnail != nil {
				img.Clear(imageio.MaskThumbnail)
			}
		}
	}
}
