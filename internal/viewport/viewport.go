// Package viewport implements the single-image scale/position state
// machine of section 4.6, mapping image coordinates to window
// coordinates, plus the animation timer of the same section.
package viewport

import (
	"github.com/swayview/swayview/internal/pixmap"
	"github.com/swayview/swayview/internal/render"
)

// ScaleMode selects how the absolute scale is derived from window and
// image dimensions.
type ScaleMode int

const (
	FitOptimal ScaleMode = iota // min(1.0, fit)
	FitWindow
	FitWidth
	FitHeight
	FillWindow
	RealSize
	KeepZoom
)

// PositionMode selects how x/y snap after a move or scale change.
type PositionMode int

const (
	PosFree PositionMode = iota
	PosCenter
	PosTop
	PosBottom
	PosLeft
	PosRight
	PosTopLeft
	PosTopRight
	PosBottomLeft
	PosBottomRight
)

// Viewport is the tuple named in section 3's data model.
type Viewport struct {
	ImageW, ImageH int
	FrameIndex     int

	Scale float64
	X, Y  float64

	WindowW, WindowH int

	DefScaleMode    ScaleMode
	DefPositionMode PositionMode
	AAMode          render.Filter
	AAEnabled       bool
	WindowBG        pixmap.Color
	TransparentBG   bool

	anim *animation
}

// New returns a Viewport sized for the given window dimensions.
func New(windowW, windowH int) *Viewport {
	return &Viewport{WindowW: windowW, WindowH: windowH}
}

// fitScale returns the scale that fits the image within the window
// along both axes (the limiting axis wins).
func (v *Viewport) fitScale() float64 {
	if v.ImageW == 0 || v.ImageH == 0 {
		return 1
	}
	sw := float64(v.WindowW) / float64(v.ImageW)
	sh := float64(v.WindowH) / float64(v.ImageH)
	if sw < sh {
		return sw
	}
	return sh
}

func (v *Viewport) fillScale() float64 {
	if v.ImageW == 0 || v.ImageH == 0 {
		return 1
	}
	sw := float64(v.WindowW) / float64(v.ImageW)
	sh := float64(v.WindowH) / float64(v.ImageH)
	if sw > sh {
		return sw
	}
	return sh
}

// scaleForMode computes the absolute scale implied by mode, given the
// viewport's current image/window dimensions. KeepZoom returns the
// viewport's current scale unchanged.
func (v *Viewport) scaleForMode(mode ScaleMode) float64 {
	switch mode {
	case FitOptimal:
		s := v.fitScale()
		if s > 1 {
			return 1
		}
		return s
	case FitWindow:
		return v.fitScale()
	case FitWidth:
		if v.ImageW == 0 {
			return 1
		}
		return float64(v.WindowW) / float64(v.ImageW)
	case FitHeight:
		if v.ImageH == 0 {
			return 1
		}
		return float64(v.WindowH) / float64(v.ImageH)
	case FillWindow:
		return v.fillScale()
	case RealSize:
		return 1
	case KeepZoom:
		if v.Scale == 0 {
			return 1
		}
		return v.Scale
	default:
		return 1
	}
}

// ScaleSet computes the absolute scale from mode and the current
// window/image sizes, then clamps position.
func (v *Viewport) ScaleSet(mode ScaleMode) {
	v.DefScaleMode = mode
	v.Scale = v.scaleForMode(mode)
	v.clamp()
}

// ScaleAbs sets an absolute scale while keeping the image pixel
// currently shown under window coordinates (px, py) fixed in window
// space: computing that image pixel before the change, then solving
// for the X/Y offset that puts it back under (px, py) after.
func (v *Viewport) ScaleAbs(s, px, py float64) {
	if v.Scale == 0 {
		v.Scale = 1
	}
	imgX := (px - v.X) / v.Scale
	imgY := (py - v.Y) / v.Scale

	v.Scale = s
	v.X = px - imgX*s
	v.Y = py - imgY*s
	v.clamp()
}

// Move translates (x, y) by (dx, dy) and re-clamps.
func (v *Viewport) Move(dx, dy float64) {
	v.X += dx
	v.Y += dy
	v.DefPositionMode = PosFree
	v.clamp()
}

// PageDelta returns the translation magnitude for a page-style move
// along the given window dimension (0.9 of it, per section 4.6).
func PageDelta(windowDim int) float64 {
	return float64(windowDim) * 0.9
}

// Position snaps x/y to the named anchor; Free leaves coordinates
// untouched.
func (v *Viewport) Position(mode PositionMode) {
	v.DefPositionMode = mode
	scaledW := float64(v.ImageW) * v.Scale
	scaledH := float64(v.ImageH) * v.Scale
	switch mode {
	case PosFree:
		return
	case PosCenter:
		v.X = (float64(v.WindowW) - scaledW) / 2
		v.Y = (float64(v.WindowH) - scaledH) / 2
	case PosTop:
		v.X = (float64(v.WindowW) - scaledW) / 2
		v.Y = 0
	case PosBottom:
		v.X = (float64(v.WindowW) - scaledW) / 2
		v.Y = float64(v.WindowH) - scaledH
	case PosLeft:
		v.X = 0
		v.Y = (float64(v.WindowH) - scaledH) / 2
	case PosRight:
		v.X = float64(v.WindowW) - scaledW
		v.Y = (float64(v.WindowH) - scaledH) / 2
	case PosTopLeft:
		v.X, v.Y = 0, 0
	case PosTopRight:
		v.X, v.Y = float64(v.WindowW)-scaledW, 0
	case PosBottomLeft:
		v.X, v.Y = 0, float64(v.WindowH)-scaledH
	case PosBottomRight:
		v.X, v.Y = float64(v.WindowW)-scaledW, float64(v.WindowH)-scaledH
	}
	v.clamp()
}

// Rotate swaps width/height semantics (as a 90-degree rotation would)
// and recomputes the current scale mode so the rotated image still
// respects it.
func (v *Viewport) Rotate() {
	v.ImageW, v.ImageH = v.ImageH, v.ImageW
	v.Scale = v.scaleForMode(v.DefScaleMode)
	v.Position(v.DefPositionMode)
}

// clamp centers an axis if the scaled image is smaller than the
// window along it; otherwise clamps x/y so the image cannot move fully
// off-window.
func (v *Viewport) clamp() {
	scaledW := float64(v.ImageW) * v.Scale
	scaledH := float64(v.ImageH) * v.Scale

	if scaledW <= float64(v.WindowW) {
		v.X = (float64(v.WindowW) - scaledW) / 2
	} else {
		minX := float64(v.WindowW) - scaledW
		if v.X < minX {
			v.X = minX
		}
		if v.X > 0 {
			v.X = 0
		}
	}

	if scaledH <= float64(v.WindowH) {
		v.Y = (float64(v.WindowH) - scaledH) / 2
	} else {
		minY := float64(v.WindowH) - scaledH
		if v.Y < minY {
			v.Y = minY
		}
		if v.Y > 0 {
			v.Y = 0
		}
	}
}
