// Package thumbcache persists generated thumbnails to disk so a
// restart doesn't pay the decode+scale cost again, per section 6's
// "Persisted thumbnail cache": a PNG whose filename hashes the source
// path, next to a sidecar record of the parameters used to generate
// it so a stale thumbnail can be rejected.
package thumbcache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"github.com/nfnt/resize"

	"github.com/swayview/swayview/internal/imageio"
	"github.com/swayview/swayview/internal/pixmap"
	"github.com/swayview/swayview/internal/render"
)

// Params are the generation parameters recorded in the sidecar; a
// cache entry is rejected if any of these differ from the reader's
// current request.
type Params struct {
	ThumbWidth  int
	ThumbHeight int
	OffsetX     int
	OffsetY     int
	Fill        bool
	Antialias   bool
	Scale       float64
}

// Cache manages a directory of persisted thumbnail PNGs and sidecars.
type Cache struct {
	dir string
}

// New returns a Cache rooted at dir, creating it if necessary.
func New(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

func hashName(source string) string {
	sum := sha256.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])
}

func (c *Cache) pngPath(source string) string {
	return filepath.Join(c.dir, hashName(source)+".png")
}

func (c *Cache) sidecarPath(source string) string {
	return filepath.Join(c.dir, hashName(source)+".meta")
}

func sidecarLine(p Params) string {
	return fmt.Sprintf("thumb_width=%d\nthumb_height=%d\noffset_x=%d\noffset_y=%d\nfill=%t\nantialias=%t\nscale=%g\n",
		p.ThumbWidth, p.ThumbHeight, p.OffsetX, p.OffsetY, p.Fill, p.Antialias, p.Scale)
}

func (c *Cache) writeSidecar(source string, p Params) error {
	return os.WriteFile(c.sidecarPath(source), []byte(sidecarLine(p)), 0o644)
}

func (c *Cache) readSidecar(source string) (Params, error) {
	data, err := os.ReadFile(c.sidecarPath(source))
	if err != nil {
		return Params{}, err
	}
	var p Params
	_, err = fmt.Sscanf(string(data),
		"thumb_width=%d\nthumb_height=%d\noffset_x=%d\noffset_y=%d\nfill=%t\nantialias=%t\nscale=%g\n",
		&p.ThumbWidth, &p.ThumbHeight, &p.OffsetX, &p.OffsetY, &p.Fill, &p.Antialias, &p.Scale)
	return p, err
}

// Load returns the persisted thumbnail for source if present and its
// sidecar parameters match want exactly; otherwise it reports found =
// false so the caller regenerates.
func (c *Cache) Load(source string, want Params) (p *pixmap.Pixmap, found bool) {
	recorded, err := c.readSidecar(source)
	if err != nil || recorded != want {
		return nil, false
	}
	f, err := os.Open(c.pngPath(source))
	if err != nil {
		return nil, false
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, false
	}
	return fromImage(img), true
}

// Store writes thumb and its generation parameters to the persisted
// cache, overwriting any prior entry for source.
func (c *Cache) Store(source string, thumb *pixmap.Pixmap, p Params) error {
	f, err := os.Create(c.pngPath(source))
	if err != nil {
		return err
	}
	defer f.Close()
	if err := png.Encode(f, toImage(thumb)); err != nil {
		return err
	}
	return c.writeSidecar(source, p)
}

// Generate scales src's frame 0 into a thumbnail via
// imageio.ThumbCreate (size×size in fill mode, fitted within size×size
// otherwise) using the render package's filter stack. If that ever fails to produce a thumbnail
// (an unexpected, defensive path — the render package does not return
// errors), it falls back to nfnt/resize's bilinear scaler so a
// gallery entry always gets a thumbnail.
func Generate(src *imageio.Image, size int, fill bool, bg pixmap.Color, filter render.Filter) (*pixmap.Pixmap, error) {
	if err := imageio.ThumbCreate(src, size, fill, bg, filter); err == nil && src.Thumbnail != nil {
		return src.Thumbnail, nil
	}
	if len(src.Frames) == 0 {
		return nil, fmt.Errorf("thumbcache: no frames to scale for %s", src.Source)
	}
	full := toImage(src.Frames[0].Pix)
	scaled := resize.Thumbnail(uint(size), uint(size), full, resize.Bilinear)
	out := fromImage(scaled)
	src.Thumbnail = out
	return out, nil
}

func toImage(p *pixmap.Pixmap) image.Image {
	out := image.NewNRGBA(image.Rect(0, 0, p.Width, p.Height))
	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Width; x++ {
			a, r, g, b := p.At(x, y).Channels()
			out.Set(x, y, color.NRGBA{R: r, G: g, B: b, A: a})
		}
	}
	return out
}

func fromImage(img image.Image) *pixmap.Pixmap {
	b := img.Bounds()
	out, err := pixmap.New(b.Dx(), b.Dy(), pixmap.ARGBFormat)
	if err != nil {
		return nil
	}
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			r16, g16, b16, a16 := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			out.Set(x, y, pixmap.ARGB(uint8(a16>>8), uint8(r16>>8), uint8(g16>>8), uint8(b16>>8)))
		}
	}
	return out
}
