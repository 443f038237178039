package viewport

import "testing"

func TestScaleAbsPreservesWindowToImageMapping(t *testing.T) {
	v := New(800, 600)
	v.ImageW, v.ImageH = 400, 300
	v.ScaleSet(FitWindow)

	px, py := 100.0, 80.0
	imgXBefore := (px - v.X) / v.Scale
	imgYBefore := (py - v.Y) / v.Scale

	v.ScaleAbs(v.Scale*1.7, px, py)

	imgXAfter := (px - v.X) / v.Scale
	imgYAfter := (py - v.Y) / v.Scale

	const eps = 1e-9
	if diff := imgXAfter - imgXBefore; diff > eps || diff < -eps {
		t.Fatalf("image X under (px,py) changed: before=%v after=%v", imgXBefore, imgXAfter)
	}
	if diff := imgYAfter - imgYBefore; diff > eps || diff < -eps {
		t.Fatalf("image Y under (px,py) changed: before=%v after=%v", imgYBefore, imgYAfter)
	}
}

func TestRotateFourTimesRestoresFitWindowState(t *testing.T) {
	v := New(800, 600)
	v.ImageW, v.ImageH = 400, 300
	v.ScaleSet(FitWindow)
	v.Position(PosCenter)

	wantScale, wantX, wantY := v.Scale, v.X, v.Y

	for i := 0; i < 4; i++ {
		v.Rotate()
	}

	const eps = 1e-9
	if d := v.Scale - wantScale; d > eps || d < -eps {
		t.Fatalf("scale after 4x rotate = %v, want %v", v.Scale, wantScale)
	}
	if d := v.X - wantX; d > eps || d < -eps {
		t.Fatalf("X after 4x rotate = %v, want %v", v.X, wantX)
	}
	if d := v.Y - wantY; d > eps || d < -eps {
		t.Fatalf("Y after 4x rotate = %v, want %v", v.Y, wantY)
	}
}

func TestClampCentersWhenImageSmallerThanWindow(t *testing.T) {
	v := New(200, 200)
	v.ImageW, v.ImageH = 50, 50
	v.ScaleSet(RealSize)
	if v.X != 75 || v.Y != 75 {
		t.Fatalf("X,Y = %v,%v, want centered at 75,75", v.X, v.Y)
	}
}

func TestClampKeepsImageOnWindowWhenLarger(t *testing.T) {
	v := New(100, 100)
	v.ImageW, v.ImageH = 500, 500
	v.ScaleSet(RealSize)
	v.Move(-10000, -10000)
	if v.X < float64(v.WindowW)-float64(v.ImageW)*v.Scale {
		t.Fatalf("X clamped past min bound: %v", v.X)
	}
	if v.X > 0 {
		t.Fatalf("X clamped past max bound: %v", v.X)
	}
}
