package thumbcache

import (
	"testing"

	"github.com/swayview/swayview/internal/pixmap"
)

func solidThumb(t *testing.T, size int, c pixmap.Color) *pixmap.Pixmap {
	t.Helper()
	p, err := pixmap.New(size, size, pixmap.ARGBFormat)
	if err != nil {
		t.Fatalf("pixmap.New: %v", err)
	}
	p.Fill(0, 0, size, size, c)
	return p
}

func TestStoreThenLoadRoundTripsWithMatchingParams(t *testing.T) {
	c, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	want := Params{ThumbWidth: 64, ThumbHeight: 64, Fill: true, Antialias: true, Scale: 0.5}
	thumb := solidThumb(t, 64, pixmap.ARGB(255, 10, 20, 30))

	if err := c.Store("a.png", thumb, want); err != nil {
		t.Fatalf("Store: %v", err)
	}

	got, found := c.Load("a.png", want)
	if !found {
		t.Fatalf("Load found=false, want true")
	}
	if got.Width != 64 || got.Height != 64 {
		t.Fatalf("loaded thumb dims = %dx%d, want 64x64", got.Width, got.Height)
	}
	if got.At(32, 32) != thumb.At(32, 32) {
		t.Fatalf("loaded pixel = %v, want %v", got.At(32, 32), thumb.At(32, 32))
	}
}

func TestLoadRejectsMismatchedParams(t *testing.T) {
	c, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	stored := Params{ThumbWidth: 64, ThumbHeight: 64, Scale: 0.5}
	thumb := solidThumb(t, 64, pixmap.ARGB(255, 1, 2, 3))
	c.Store("a.png", thumb, stored)

	_, found := c.Load("a.png", Params{ThumbWidth: 128, ThumbHeight: 128, Scale: 0.5})
	if found {
		t.Fatalf("Load found=true for mismatched params, want false")
	}
}

func TestLoadMissingEntryReturnsNotFound(t *testing.T) {
	c, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, found := c.Load("never-stored.png", Params{}); found {
		t.Fatalf("Load found=true for an entry never stored")
	}
}
