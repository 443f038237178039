package render

import (
	"testing"

	"github.com/swayview/swayview/internal/pixmap"
)

func mustPixmap(t *testing.T, w, h int, f pixmap.Format) *pixmap.Pixmap {
	t.Helper()
	p, err := pixmap.New(w, h, f)
	if err != nil {
		t.Fatalf("pixmap.New(%d,%d): %v", w, h, err)
	}
	return p
}

func TestNearestIdentityAtScaleOne(t *testing.T) {
	src := mustPixmap(t, 3, 3, pixmap.XRGBFormat)
	colors := []pixmap.Color{
		pixmap.ARGB(255, 10, 20, 30), pixmap.ARGB(255, 40, 50, 60), pixmap.ARGB(255, 70, 80, 90),
		pixmap.ARGB(255, 1, 2, 3), pixmap.ARGB(255, 4, 5, 6), pixmap.ARGB(255, 7, 8, 9),
		pixmap.ARGB(255, 100, 110, 120), pixmap.ARGB(255, 130, 140, 150), pixmap.ARGB(255, 160, 170, 180),
	}
	for i, c := range colors {
		src.Set(i%3, i/3, c)
	}
	dst := mustPixmap(t, 3, 3, pixmap.XRGBFormat)

	Render(src, dst, 0, 0, 1.0, FilterNearest, false)

	for i := range src.Pix {
		if src.Pix[i] != dst.Pix[i] {
			t.Fatalf("pixel %d: got %#x, want %#x", i, dst.Pix[i], src.Pix[i])
		}
	}
}

func TestNearest2xUpscale(t *testing.T) {
	r := pixmap.ARGB(255, 255, 0, 0)
	g := pixmap.ARGB(255, 0, 255, 0)
	b := pixmap.ARGB(255, 0, 0, 255)
	w := pixmap.ARGB(255, 255, 255, 255)

	src := mustPixmap(t, 2, 2, pixmap.XRGBFormat)
	src.Set(0, 0, r)
	src.Set(1, 0, g)
	src.Set(0, 1, b)
	src.Set(1, 1, w)

	dst := mustPixmap(t, 4, 4, pixmap.XRGBFormat)
	Render(src, dst, 0, 0, 2.0, FilterNearest, false)

	want := [4][4]pixmap.Color{
		{r, r, g, g},
		{r, r, g, g},
		{b, b, w, w},
		{b, b, w, w},
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if got := dst.At(x, y); got != want[y][x] {
				t.Fatalf("At(%d,%d) = %#x, want %#x", x, y, got, want[y][x])
			}
		}
	}
}

func TestConstantColorInvariantUnderAllFilters(t *testing.T) {
	color := pixmap.ARGB(255, 77, 88, 99)
	src := mustPixmap(t, 6, 6, pixmap.XRGBFormat)
	for i := range src.Pix {
		src.Pix[i] = color
	}

	for _, f := range []Filter{FilterNearest, FilterBox, FilterBilinear, FilterBicubic, FilterMKS13} {
		dst := mustPixmap(t, 9, 9, pixmap.XRGBFormat)
		Render(src, dst, 0, 0, 1.5, f, false)
		for y := 0; y < dst.Height; y++ {
			for x := 0; x < dst.Width; x++ {
				if got := dst.At(x, y); got != color {
					t.Fatalf("filter %v: At(%d,%d) = %#x, want constant %#x", f, x, y, got, color)
				}
			}
		}
	}
}

func TestKernelWeightsSumToFixedOne(t *testing.T) {
	for _, f := range []Filter{FilterBox, FilterBilinear, FilterBicubic, FilterMKS13} {
		k := buildKernel(10, 20, 2.0, f)
		for o, taps := range k.taps {
			var sum int32
			for _, t := range taps {
				sum += t.weight
			}
			if sum != FixedOne {
				t.Fatalf("filter %v output %d: weights sum to %d, want %d", f, o, sum, FixedOne)
			}
		}
	}
}

func TestMultithreadedMatchesSingleThreaded(t *testing.T) {
	src := mustPixmap(t, 400, 400, pixmap.XRGBFormat)
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			src.Set(x, y, pixmap.ARGB(255, uint8(x), uint8(y), uint8(x^y)))
		}
	}

	for _, f := range []Filter{FilterNearest, FilterBox, FilterBilinear, FilterBicubic, FilterMKS13} {
		single := mustPixmap(t, 400, 400, pixmap.XRGBFormat)
		multi := mustPixmap(t, 400, 400, pixmap.XRGBFormat)
		Render(src, single, 0, 0, 1.0, f, false)
		Render(src, multi, 0, 0, 1.0, f, true)
		for i := range single.Pix {
			if single.Pix[i] != multi.Pix[i] {
				t.Fatalf("filter %v: pixel %d differs between single (%#x) and multithreaded (%#x) render", f, i, single.Pix[i], multi.Pix[i])
			}
		}
	}
}

func TestAlphaWeightedDivisionIgnoresTransparentContribution(t *testing.T) {
	// scale=0.5 on a 2-wide source centers the box kernel's single output
	// tap exactly between columns 0 and 1, so both the transparent and the
	// opaque-red pixel contribute to dst(0,0). Row 1 duplicates row 0 so
	// the vertical pass is a no-op and the test isolates the horizontal
	// alpha-weighted combination.
	src := mustPixmap(t, 2, 2, pixmap.ARGBFormat)
	src.Set(0, 0, pixmap.ARGB(0, 0, 0, 0))
	src.Set(1, 0, pixmap.ARGB(255, 255, 0, 0))
	src.Set(0, 1, pixmap.ARGB(0, 0, 0, 0))
	src.Set(1, 1, pixmap.ARGB(255, 255, 0, 0))

	dst := mustPixmap(t, 1, 1, pixmap.ARGBFormat)
	Render(src, dst, 0, 0, 0.5, FilterBox, false)

	got := dst.At(0, 0)
	if a := got.A(); a != 255 {
		t.Fatalf("alpha = %d, want 255 (the transparent pixel contributes zero weighted alpha)", a)
	}
	if r := got.R(); r != 255 {
		t.Fatalf("red = %d, want 255", r)
	}
}

func TestConstantColorInvariantUnderAllFiltersARGB(t *testing.T) {
	c := pixmap.ARGB(255, 77, 88, 99)
	src := mustPixmap(t, 6, 6, pixmap.ARGBFormat)
	for i := range src.Pix {
		src.Pix[i] = c
	}

	for _, f := range []Filter{FilterNearest, FilterBox, FilterBilinear, FilterBicubic, FilterMKS13} {
		dst := mustPixmap(t, 9, 9, pixmap.ARGBFormat)
		Render(src, dst, 0, 0, 1.5, f, false)
		for y := 0; y < dst.Height; y++ {
			for x := 0; x < dst.Width; x++ {
				if got := dst.At(x, y); got != c {
					t.Fatalf("filter %v: At(%d,%d) = %#x, want constant opaque %#x", f, x, y, got, c)
				}
			}
		}
	}
}

func TestSeparableBoxFilterMatchesRowAverage(t *testing.T) {
	// A vertical gradient: row y has luminance y*25 (clamped), constant
	// across columns, so a box downscale along the vertical axis should
	// match the straightforward average of contributing rows within +-1.
	src := mustPixmap(t, 4, 8, pixmap.XRGBFormat)
	for y := 0; y < 8; y++ {
		v := uint8(y * 25)
		for x := 0; x < 4; x++ {
			src.Set(x, y, pixmap.ARGB(255, v, v, v))
		}
	}
	dst := mustPixmap(t, 4, 4, pixmap.XRGBFormat)
	Render(src, dst, 0, 0, 0.5, FilterBox, false)

	for y := 0; y < 4; y++ {
		expected := (int(uint8((2*y)*25)) + int(uint8((2*y+1)*25))) / 2
		got := int(dst.At(0, y).R())
		diff := got - expected
		if diff < -1 || diff > 1 {
			t.Fatalf("row %d: box-downscaled value %d, want within 1 of row-average %d", y, got, expected)
		}
	}
}

func TestRenderNoopOnDegenerateInputs(t *testing.T) {
	src := mustPixmap(t, 2, 2, pixmap.XRGBFormat)
	dst := mustPixmap(t, 2, 2, pixmap.XRGBFormat)
	orig := append([]pixmap.Color(nil), dst.Pix...)

	Render(src, dst, 0, 0, 0, FilterNearest, false)
	Render(src, dst, 100, 100, 1.0, FilterBox, false)

	for i := range orig {
		if dst.Pix[i] != orig[i] {
			t.Fatalf("degenerate render mutated dst at pixel %d", i)
		}
	}
}
