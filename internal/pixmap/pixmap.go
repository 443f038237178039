package pixmap

import "github.com/pkg/errors"

// Format is a pixmap's alpha-participation tag.
type Format uint8

const (
	// ARGBFormat pixels participate in alpha blending when drawn onto
	// another pixmap.
	ARGBFormat Format = iota
	// XRGBFormat pixels ignore source alpha and are forced opaque when
	// composited.
	XRGBFormat
)

// ErrAlloc is returned by allocating operations that fail; on failure the
// receiver pixmap (if any) is left unchanged, per spec section 4.1.
var ErrAlloc = errors.New("pixmap: allocation failed")

// Pixmap owns a row-major ARGB buffer of Width x Height pixels.
type Pixmap struct {
	Width, Height int
	Format        Format
	Pix           []Color
}

// New allocates a Width x Height pixmap. It returns ErrAlloc (and a nil
// Pixmap) if width or height are non-positive or the allocation size
// would overflow an int.
func New(width, height int, format Format) (*Pixmap, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Wrap(ErrAlloc, "non-positive dimensions")
	}
	n := width * height
	if n/width != height {
		return nil, errors.Wrap(ErrAlloc, "dimensions overflow")
	}
	return &Pixmap{
		Width:  width,
		Height: height,
		Format: format,
		Pix:    make([]Color, n),
	}, nil
}

// Free releases the pixmap's buffer. The Pixmap must not be used
// afterwards.
func (p *Pixmap) Free() {
	p.Pix = nil
	p.Width, p.Height = 0, 0
}

// At returns the color at (x, y), or 0 if out of bounds.
func (p *Pixmap) At(x, y int) Color {
	if x < 0 || y < 0 || x >= p.Width || y >= p.Height {
		return 0
	}
	return p.Pix[y*p.Width+x]
}

// Set writes the color at (x, y). Out-of-bounds writes are ignored.
func (p *Pixmap) Set(x, y int, c Color) {
	if x < 0 || y < 0 || x >= p.Width || y >= p.Height {
		return
	}
	p.Pix[y*p.Width+x] = c
}

// clipRect clips (x,y,w,h) against the pixmap bounds, returning the
// clipped rectangle and whether anything remains.
func (p *Pixmap) clipRect(x, y, w, h int) (cx, cy, cw, ch int, ok bool) {
	if w <= 0 || h <= 0 {
		return 0, 0, 0, 0, false
	}
	x1, y1 := x+w, y+h
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	if x1 > p.Width {
		x1 = p.Width
	}
	if y1 > p.Height {
		y1 = p.Height
	}
	if x1 <= x || y1 <= y {
		return 0, 0, 0, 0, false
	}
	return x, y, x1 - x, y1 - y, true
}

// Fill overwrites the region (x,y,w,h) with color, clipped to bounds.
func (p *Pixmap) Fill(x, y, w, h int, c Color) {
	cx, cy, cw, ch, ok := p.clipRect(x, y, w, h)
	if !ok {
		return
	}
	for row := cy; row < cy+ch; row++ {
		off := row * p.Width
		line := p.Pix[off+cx : off+cx+cw]
		for i := range line {
			line[i] = c
		}
	}
}

// InverseFill overwrites every pixel except the region (x,y,w,h) with
// color.
func (p *Pixmap) InverseFill(x, y, w, h int, c Color) {
	cx, cy, cw, ch, ok := p.clipRect(x, y, w, h)
	if !ok {
		p.Fill(0, 0, p.Width, p.Height, c)
		return
	}
	for row := 0; row < p.Height; row++ {
		inRow := row >= cy && row < cy+ch
		off := row * p.Width
		if !inRow {
			line := p.Pix[off : off+p.Width]
			for i := range line {
				line[i] = c
			}
			continue
		}
		for col := 0; col < p.Width; col++ {
			if col >= cx && col < cx+cw {
				continue
			}
			p.Pix[off+col] = c
		}
	}
}

// Blend alpha-blends color over the region (x,y,w,h), clipped to bounds.
func (p *Pixmap) Blend(x, y, w, h int, c Color) {
	cx, cy, cw, ch, ok := p.clipRect(x, y, w, h)
	if !ok {
		return
	}
	for row := cy; row < cy+ch; row++ {
		off := row * p.Width
		line := p.Pix[off+cx : off+cx+cw]
		for i := range line {
			line[i] = BlendOver(c, line[i])
		}
	}
}

// BlendOver is the alpha blend of src over dst, respecting ARGBFormat
// semantics of this pixmap: callers that know their source is XRGB
// should call Fill instead since those pixels are forced opaque.
func BlendOver(src, dst Color) Color { return Blend(src, dst) }

// HLine draws a horizontal line of the given pixel thickness (growing
// downward) starting at (x,y) with length w.
func (p *Pixmap) HLine(x, y, w, thickness int, c Color) {
	p.Fill(x, y, w, thickness, c)
}

// VLine draws a vertical line of the given pixel thickness (growing
// rightward) starting at (x,y) with length h.
func (p *Pixmap) VLine(x, y, h, thickness int, c Color) {
	p.Fill(x, y, thickness, h, c)
}

// Rect draws a rectangle outline of the given pixel thickness (growing
// outward) around (x,y,w,h).
func (p *Pixmap) Rect(x, y, w, h, thickness int, c Color) {
	p.Fill(x-thickness, y-thickness, w+2*thickness, thickness, c) // top
	p.Fill(x-thickness, y+h, w+2*thickness, thickness, c)         // bottom
	p.Fill(x-thickness, y, thickness, h, c)                       // left
	p.Fill(x+w, y, thickness, h, c)                               // right
}

// Grid fills the region (x,y,w,h) with a checkerboard of c0/c1 at tile
// size, top-left tile colored c0. Used for transparency visualization.
func (p *Pixmap) Grid(x, y, w, h, tile int, c0, c1 Color) {
	if tile <= 0 {
		tile = 1
	}
	cx, cy, cw, ch, ok := p.clipRect(x, y, w, h)
	if !ok {
		return
	}
	for row := cy; row < cy+ch; row++ {
		ty := (row - y) / tile
		off := row * p.Width
		for col := cx; col < cx+cw; col++ {
			tx := (col - x) / tile
			c := c0
			if (tx+ty)%2 != 0 {
				c = c1
			}
			p.Pix[off+col] = c
		}
	}
}

// ApplyMask alpha-blends color over the region (x,y,w,h), scaling each
// pixel's contribution by the corresponding mask byte (0..255), used to
// composite rasterized glyphs. mask must have exactly w*h bytes,
// row-major.
func (p *Pixmap) ApplyMask(x, y int, mask []byte, w, h int, c Color) {
	if len(mask) < w*h {
		return
	}
	for row := 0; row < h; row++ {
		py := y + row
		if py < 0 || py >= p.Height {
			continue
		}
		rowOff := py * p.Width
		maskOff := row * w
		for col := 0; col < w; col++ {
			px := x + col
			if px < 0 || px >= p.Width {
				continue
			}
			m := mask[maskOff+col]
			if m == 0 {
				continue
			}
			i := rowOff + px
			p.Pix[i] = BlendScaled(c, p.Pix[i], m)
		}
	}
}

// Copy draws src onto dst with its top-left at (x,y). If src.Format is
// ARGBFormat each pixel is alpha-blended; otherwise rows are copied
// verbatim (memcpy semantics), ignoring src alpha.
func Copy(src *Pixmap, dst *Pixmap, x, y int) {
	cx, cy, cw, ch, ok := dst.clipRect(x, y, src.Width, src.Height)
	if !ok {
		return
	}
	srcX0 := cx - x
	srcY0 := cy - y
	if src.Format == XRGBFormat {
		for row := 0; row < ch; row++ {
			srcOff := (srcY0 + row) * src.Width
			dstOff := (cy + row) * dst.Width
			copy(dst.Pix[dstOff+cx:dstOff+cx+cw], src.Pix[srcOff+srcX0:srcOff+srcX0+cw])
		}
		return
	}
	for row := 0; row < ch; row++ {
		srcOff := (srcY0+row)*src.Width + srcX0
		dstOff := (cy+row)*dst.Width + cx
		for col := 0; col < cw; col++ {
			dst.Pix[dstOff+col] = Blend(src.Pix[srcOff+col], dst.Pix[dstOff+col])
		}
	}
}

// FlipVertical reverses the pixmap's rows in place.
func (p *Pixmap) FlipVertical() {
	for top, bottom := 0, p.Height-1; top < bottom; top, bottom = top+1, bottom-1 {
		a := p.Pix[top*p.Width : top*p.Width+p.Width]
		b := p.Pix[bottom*p.Width : bottom*p.Width+p.Width]
		for i := range a {
			a[i], b[i] = b[i], a[i]
		}
	}
}

// FlipHorizontal reverses each row in place.
func (p *Pixmap) FlipHorizontal() {
	for row := 0; row < p.Height; row++ {
		line := p.Pix[row*p.Width : row*p.Width+p.Width]
		for l, r := 0, len(line)-1; l < r; l, r = l+1, r-1 {
			line[l], line[r] = line[r], line[l]
		}
	}
}

// Rotate180 rotates the pixmap 180 degrees in place.
func (p *Pixmap) Rotate180() {
	n := len(p.Pix)
	for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
		p.Pix[i], p.Pix[j] = p.Pix[j], p.Pix[i]
	}
}

// Rotate90CW allocates a new buffer rotated 90 degrees clockwise and
// swaps it in, exchanging Width and Height. Returns ErrAlloc (leaving p
// unchanged) on allocation failure.
func (p *Pixmap) Rotate90CW() error {
	out, err := New(p.Height, p.Width, p.Format)
	if err != nil {
		return err
	}
	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Width; x++ {
			nx := p.Height - 1 - y
			ny := x
			out.Pix[ny*out.Width+nx] = p.Pix[y*p.Width+x]
		}
	}
	p.Width, p.Height, p.Pix = out.Width, out.Height, out.Pix
	return nil
}

// Rotate90CCW allocates a new buffer rotated 90 degrees counter-clockwise
// and swaps it in. Returns ErrAlloc (leaving p unchanged) on allocation
// failure.
func (p *Pixmap) Rotate90CCW() error {
	out, err := New(p.Height, p.Width, p.Format)
	if err != nil {
		return err
	}
	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Width; x++ {
			nx := y
			ny := p.Width - 1 - x
			out.Pix[ny*out.Width+nx] = p.Pix[y*p.Width+x]
		}
	}
	p.Width, p.Height, p.Pix = out.Width, out.Height, out.Pix
	return nil
}

// Rotate rotates the pixmap by the given degrees, one of 90, 180, 270.
// It panics for any other value, matching the closed set named in the
// spec's rotate primitive.
func (p *Pixmap) Rotate(degrees int) error {
	switch degrees {
	case 90:
		return p.Rotate90CW()
	case 180:
		p.Rotate180()
		return nil
	case 270:
		return p.Rotate90CCW()
	default:
		panic("pixmap: Rotate: degrees must be one of 90, 180, 270")
	}
}

// Clone returns an independent copy of p with its own buffer.
func (p *Pixmap) Clone() *Pixmap {
	out := &Pixmap{Width: p.Width, Height: p.Height, Format: p.Format}
	out.Pix = make([]Color, len(p.Pix))
	copy(out.Pix, p.Pix)
	return out
}
