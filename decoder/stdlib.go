// Package decoder provides the concrete format decoders registered
// with an imageio.Registry: PNG, JPEG, and GIF via the standard
// library, and WebP via a pure-Go decoder, each probing its own magic
// bytes and populating an imageio.Image's frames.
package decoder

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"time"

	"github.com/pkg/errors"

	"github.com/swayview/swayview/internal/imageio"
	"github.com/swayview/swayview/internal/pixmap"
)

var (
	pngMagic  = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	jpegMagic = []byte{0xFF, 0xD8, 0xFF}
	gifMagic  = []byte("GIF8")
)

func hasPrefix(data, magic []byte) bool {
	return len(data) >= len(magic) && bytes.Equal(data[:len(magic)], magic)
}

func peek(r io.Reader, n int) []byte {
	buf := make([]byte, n)
	m, _ := io.ReadFull(r, buf)
	return buf[:m]
}

// toPixmap converts a decoded image into the pixmap package's
// straight-alpha ARGB form. image.Image.At returns alpha-premultiplied
// 16-bit channels, so conversion goes through color.NRGBAModel rather
// than unpacking RGBA() directly, which would store every partially
// transparent pixel darkened by its own alpha.
func toPixmap(img image.Image) (*pixmap.Pixmap, bool, error) {
	b := img.Bounds()
	p, err := pixmap.New(b.Dx(), b.Dy(), pixmap.ARGBFormat)
	if err != nil {
		return nil, false, err
	}
	hasAlpha := false
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			if c.A != 255 {
				hasAlpha = true
			}
			p.Set(x, y, pixmap.ARGB(c.A, c.R, c.G, c.B))
		}
	}
	return p, hasAlpha, nil
}

// PNGDecoder decodes PNG streams via image/png.
type PNGDecoder struct{}

func (PNGDecoder) Name() string { return "png" }

func (PNGDecoder) Probe(r io.Reader) bool {
	return hasPrefix(peek(r, len(pngMagic)), pngMagic)
}

func (PNGDecoder) Decode(r io.Reader, img *imageio.Image) error {
	m, err := png.Decode(r)
	if err != nil {
		return errors.Wrap(imageio.ErrFormatError, err.Error())
	}
	p, alpha, err := toPixmap(m)
	if err != nil {
		return errors.Wrap(imageio.ErrIO, err.Error())
	}
	img.Format = "png"
	img.Alpha = alpha
	img.Frames = []imageio.Frame{{Pix: p}}
	return nil
}

// JPEGDecoder decodes JPEG streams via image/jpeg.
type JPEGDecoder struct{}

func (JPEGDecoder) Name() string { return "jpeg" }

func (JPEGDecoder) Probe(r io.Reader) bool {
	return hasPrefix(peek(r, len(jpegMagic)), jpegMagic)
}

func (JPEGDecoder) Decode(r io.Reader, img *imageio.Image) error {
	m, err := jpeg.Decode(r)
	if err != nil {
		return errors.Wrap(imageio.ErrFormatError, err.Error())
	}
	p, alpha, err := toPixmap(m)
	if err != nil {
		return errors.Wrap(imageio.ErrIO, err.Error())
	}
	img.Format = "jpeg"
	img.Alpha = alpha
	img.Frames = []imageio.Frame{{Pix: p}}
	return nil
}

// GIFDecoder decodes (possibly animated) GIF streams via image/gif,
// populating one Frame per animation frame with its display duration.
type GIFDecoder struct{}

func (GIFDecoder) Name() string { return "gif" }

func (GIFDecoder) Probe(r io.Reader) bool {
	return hasPrefix(peek(r, len(gifMagic)), gifMagic)
}

func (GIFDecoder) Decode(r io.Reader, img *imageio.Image) error {
	g, err := gif.DecodeAll(r)
	if err != nil {
		return errors.Wrap(imageio.ErrFormatError, err.Error())
	}
	frames := make([]imageio.Frame, len(g.Image))
	alpha := false
	for i, frame := range g.Image {
		p, frameAlpha, err := toPixmap(frame)
		if err != nil {
			return errors.Wrap(imageio.ErrIO, err.Error())
		}
		if frameAlpha {
			alpha = true
		}
		delay := time.Duration(g.Delay[i]) * 10 * time.Millisecond
		frames[i] = imageio.Frame{Pix: p, Duration: delay}
	}
	img.Format = "gif"
	img.Alpha = alpha
	img.Frames = frames
	return nil
}
