package pixmap

import "testing"

func mustNew(t *testing.T, w, h int, f Format) *Pixmap {
	t.Helper()
	p, err := New(w, h, f)
	if err != nil {
		t.Fatalf("New(%d,%d): %v", w, h, err)
	}
	return p
}

func fillSequential(p *Pixmap) {
	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Width; x++ {
			p.Set(x, y, ARGB(255, uint8(x), uint8(y), uint8(x+y)))
		}
	}
}

func TestNewRejectsBadDimensions(t *testing.T) {
	if _, err := New(0, 10, ARGBFormat); err == nil {
		t.Fatal("New(0, 10): want error")
	}
	if _, err := New(10, -1, ARGBFormat); err == nil {
		t.Fatal("New(10, -1): want error")
	}
}

func TestCopyIdentity(t *testing.T) {
	src := mustNew(t, 4, 4, XRGBFormat)
	fillSequential(src)
	dst := mustNew(t, 4, 4, XRGBFormat)
	Copy(src, dst, 0, 0)
	for i := range src.Pix {
		if src.Pix[i] != dst.Pix[i] {
			t.Fatalf("pixel %d: got %#x, want %#x", i, dst.Pix[i], src.Pix[i])
		}
	}
}

func TestCopyARGBBlendsAgainstDestination(t *testing.T) {
	src := mustNew(t, 1, 1, ARGBFormat)
	src.Set(0, 0, ARGB(128, 255, 0, 0))
	dst := mustNew(t, 1, 1, ARGBFormat)
	dst.Set(0, 0, ARGB(255, 0, 0, 255))
	Copy(src, dst, 0, 0)
	if want := ARGB(255, 128, 0, 128); dst.At(0, 0) != want {
		t.Fatalf("Copy blended = %#x, want %#x", dst.At(0, 0), want)
	}
}

func TestFlipVerticalInvolution(t *testing.T) {
	p := mustNew(t, 5, 7, XRGBFormat)
	fillSequential(p)
	orig := append([]Color(nil), p.Pix...)
	p.FlipVertical()
	p.FlipVertical()
	for i := range orig {
		if p.Pix[i] != orig[i] {
			t.Fatalf("pixel %d: flip-flip != identity", i)
		}
	}
}

func TestFlipHorizontalInvolution(t *testing.T) {
	p := mustNew(t, 5, 7, XRGBFormat)
	fillSequential(p)
	orig := append([]Color(nil), p.Pix...)
	p.FlipHorizontal()
	p.FlipHorizontal()
	for i := range orig {
		if p.Pix[i] != orig[i] {
			t.Fatalf("pixel %d: flip-flip != identity", i)
		}
	}
}

func TestRotateFourTimesIsIdentity(t *testing.T) {
	for _, step := range []int{90, 270} {
		p := mustNew(t, 3, 5, XRGBFormat)
		fillSequential(p)
		orig := append([]Color(nil), p.Pix...)
		origW, origH := p.Width, p.Height
		for i := 0; i < 4; i++ {
			if err := p.Rotate(step); err != nil {
				t.Fatalf("Rotate(%d) iteration %d: %v", step, i, err)
			}
		}
		if p.Width != origW || p.Height != origH {
			t.Fatalf("Rotate(%d) x4 dims = %dx%d, want %dx%d", step, p.Width, p.Height, origW, origH)
		}
		for i := range orig {
			if p.Pix[i] != orig[i] {
				t.Fatalf("Rotate(%d) x4: pixel %d mismatch", step, i)
			}
		}
	}
}

func TestRotate180TwiceIsIdentity(t *testing.T) {
	p := mustNew(t, 4, 6, XRGBFormat)
	fillSequential(p)
	orig := append([]Color(nil), p.Pix...)
	p.Rotate(180)
	p.Rotate(180)
	for i := range orig {
		if p.Pix[i] != orig[i] {
			t.Fatalf("pixel %d: rotate180 x2 != identity", i)
		}
	}
}

func TestRotate90PreservesCorner(t *testing.T) {
	p := mustNew(t, 2, 3, XRGBFormat)
	p.Set(0, 0, ARGB(255, 1, 0, 0))
	if err := p.Rotate(90); err != nil {
		t.Fatalf("Rotate(90): %v", err)
	}
	if p.Width != 3 || p.Height != 2 {
		t.Fatalf("Rotate(90) dims = %dx%d, want 3x2", p.Width, p.Height)
	}
	if got := p.At(p.Width-1, 0); got != ARGB(255, 1, 0, 0) {
		t.Fatalf("top-left corner after CW rotate = %#x", got)
	}
}

func TestFillClips(t *testing.T) {
	p := mustNew(t, 4, 4, XRGBFormat)
	p.Fill(-2, -2, 4, 4, ARGB(255, 9, 9, 9))
	if got := p.At(0, 0); got != ARGB(255, 9, 9, 9) {
		t.Fatalf("At(0,0) = %#x, want filled", got)
	}
	if got := p.At(2, 2); got != 0 {
		t.Fatalf("At(2,2) = %#x, want untouched (0)", got)
	}
}

func TestInverseFill(t *testing.T) {
	p := mustNew(t, 3, 3, XRGBFormat)
	p.InverseFill(1, 1, 1, 1, ARGB(255, 1, 1, 1))
	if got := p.At(1, 1); got != 0 {
		t.Fatalf("inside rect At(1,1) = %#x, want untouched (0)", got)
	}
	if got := p.At(0, 0); got != ARGB(255, 1, 1, 1) {
		t.Fatalf("outside rect At(0,0) = %#x, want filled", got)
	}
}

func TestGridCheckerboard(t *testing.T) {
	p := mustNew(t, 4, 4, XRGBFormat)
	c0, c1 := ARGB(255, 0, 0, 0), ARGB(255, 255, 255, 255)
	p.Grid(0, 0, 4, 4, 1, c0, c1)
	if p.At(0, 0) != c0 {
		t.Fatalf("Grid(0,0) = %#x, want c0", p.At(0, 0))
	}
	if p.At(1, 0) != c1 {
		t.Fatalf("Grid(1,0) = %#x, want c1", p.At(1, 0))
	}
	if p.At(0, 1) != c1 {
		t.Fatalf("Grid(0,1) = %#x, want c1", p.At(0, 1))
	}
	if p.At(1, 1) != c0 {
		t.Fatalf("Grid(1,1) = %#x, want c0", p.At(1, 1))
	}
}

func TestApplyMaskFullCoverageEqualsBlend(t *testing.T) {
	p := mustNew(t, 1, 1, ARGBFormat)
	p.Set(0, 0, ARGB(255, 0, 0, 255))
	c := ARGB(255, 255, 0, 0)
	p.ApplyMask(0, 0, []byte{255}, 1, 1, c)
	if got := p.At(0, 0); got != c {
		t.Fatalf("ApplyMask full coverage = %#x, want %#x", got, c)
	}
}

func TestApplyMaskZeroCoverageIsNoOp(t *testing.T) {
	p := mustNew(t, 1, 1, ARGBFormat)
	orig := ARGB(255, 0, 0, 255)
	p.Set(0, 0, orig)
	p.ApplyMask(0, 0, []byte{0}, 1, 1, ARGB(255, 255, 0, 0))
	if got := p.At(0, 0); got != orig {
		t.Fatalf("ApplyMask zero coverage = %#x, want unchanged %#x", got, orig)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	p := mustNew(t, 2, 2, XRGBFormat)
	fillSequential(p)
	clone := p.Clone()
	p.Set(0, 0, ARGB(255, 255, 255, 255))
	if clone.At(0, 0) == p.At(0, 0) {
		t.Fatal("Clone shares storage with original")
	}
}
