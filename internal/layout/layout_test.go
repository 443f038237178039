package layout

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/swayview/swayview/internal/imagelist"
	"github.com/swayview/swayview/internal/pixmap"
)

var fakeThumb = pixmap.Pixmap{Width: 1, Height: 1, Format: pixmap.ARGBFormat, Pix: []pixmap.Color{0}}

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		p := filepath.Join(dir, n)
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatalf("WriteFile(%s): %v", p, err)
		}
	}
}

func newTestLayout(t *testing.T, n int) *Layout {
	t.Helper()
	dir := t.TempDir()
	names := make([]string, n)
	for i := 0; i < n; i++ {
		names[i] = string(rune('a'+i)) + ".png"
	}
	writeFiles(t, dir, names...)

	l := imagelist.New(imagelist.OrderAlpha, false, false)
	if err := l.Load([]string{dir}, false); err != nil {
		t.Fatalf("Load: %v", err)
	}
	lay := New(l, 100, 10)
	lay.Resize(330, 230) // 3 columns, 2 rows at cell=110
	return lay
}

func TestResizeComputesColumnsAndRows(t *testing.T) {
	lay := newTestLayout(t, 9)
	if lay.Columns != 3 {
		t.Fatalf("Columns = %d, want 3", lay.Columns)
	}
	if lay.Rows != 2 {
		t.Fatalf("Rows = %d, want 2", lay.Rows)
	}
}

func TestSelectRightAdvancesOneColumn(t *testing.T) {
	lay := newTestLayout(t, 9)
	start := lay.Current
	if !lay.Select(Right) {
		t.Fatalf("Select(Right) = false")
	}
	if lay.Current.Index != start.Index+1 {
		t.Fatalf("Current.Index = %d, want %d", lay.Current.Index, start.Index+1)
	}
}

func TestSelectClampsAtBoundaries(t *testing.T) {
	lay := newTestLayout(t, 9)
	if lay.Select(Left) {
		t.Fatalf("Select(Left) at first entry should report no movement")
	}
	lay.Select(LastEntry)
	if lay.Current.Index != 8 {
		t.Fatalf("Current.Index = %d, want 8", lay.Current.Index)
	}
	if lay.Select(Right) {
		t.Fatalf("Select(Right) at last entry should report no movement")
	}
}

func TestSelectAtHitTestsVisibleCell(t *testing.T) {
	lay := newTestLayout(t, 9)
	if !lay.SelectAt(5, 5) {
		t.Fatalf("SelectAt(5,5) = false, want true for top-left cell")
	}
	if lay.CurrentRow != 0 || lay.CurrentCol != 0 {
		t.Fatalf("row,col = %d,%d, want 0,0", lay.CurrentRow, lay.CurrentCol)
	}
	if !lay.SelectAt(115, 5) {
		t.Fatalf("SelectAt(115,5) = false, want true for second column")
	}
	if lay.CurrentCol != 1 {
		t.Fatalf("CurrentCol = %d, want 1", lay.CurrentCol)
	}
}

func TestSelectAtOutsideGridReturnsFalse(t *testing.T) {
	lay := newTestLayout(t, 9)
	if lay.SelectAt(10000, 10000) {
		t.Fatalf("SelectAt far outside grid should return false")
	}
}

func TestLoadQueueListsEntriesMissingThumbnails(t *testing.T) {
	lay := newTestLayout(t, 9)
	queue := lay.LoadQueue(0)
	if len(queue) == 0 {
		t.Fatalf("LoadQueue returned no entries, want at least the visible ones")
	}
	for _, img := range queue {
		if img.Thumbnail != nil {
			t.Fatalf("LoadQueue included an entry that already has a thumbnail: %s", img.Source)
		}
	}
}

func TestClearFreesThumbnailsOutsidePreservedWindow(t *testing.T) {
	lay := newTestLayout(t, 9)
	for _, img := range lay.List.Entries() {
		img.Thumbnail = &fakeThumb
	}
	lay.Clear(0)
	for _, img := range lay.Visible {
		if img.Thumbnail == nil {
			t.Fatalf("Clear freed a visible entry's thumbnail: %s", img.Source)
		}
	}
	var sawFreed bool
	for _, img := range lay.List.Entries() {
		if img.Thumbnail == nil {
			sawFreed = true
		}
	}
	if !sawFreed {
		t.Fatalf("Clear did not free any off-screen thumbnail")
	}
}
