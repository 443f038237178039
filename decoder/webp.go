package decoder

import (
	"io"

	"github.com/HugoSmits86/nativewebp"
	"github.com/pkg/errors"

	"github.com/swayview/swayview/internal/imageio"
)

var webpMagic = []byte("RIFF")

// WebPDecoder decodes WebP streams via a pure-Go decoder, avoiding the
// cgo dependency a libwebp binding would need.
type WebPDecoder struct{}

func (WebPDecoder) Name() string { return "webp" }

func (WebPDecoder) Probe(r io.Reader) bool {
	header := peek(r, 12)
	return len(header) == 12 && hasPrefix(header, webpMagic) && string(header[8:12]) == "WEBP"
}

func (WebPDecoder) Decode(r io.Reader, img *imageio.Image) error {
	m, err := nativewebp.Decode(r)
	if err != nil {
		return errors.Wrap(imageio.ErrFormatError, err.Error())
	}
	p, alpha, err := toPixmap(m)
	if err != nil {
		return errors.Wrap(imageio.ErrIO, err.Error())
	}
	img.Format = "webp"
	img.Alpha = alpha
	img.Frames = []imageio.Frame{{Pix: p}}
	return nil
}
