package imageio

import (
	"image"
	"image/color"

	"github.com/swayview/swayview/internal/pixmap"
)

// pixmapToNRGBA converts a render-core Pixmap into a stdlib image.NRGBA
// suitable for png.Encode, the only encoder this package links.
func pixmapToNRGBA(p *pixmap.Pixmap) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, p.Width, p.Height))
	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Width; x++ {
			a, r, g, b := p.At(x, y).Channels()
			out.SetNRGBA(x, y, color.NRGBA{R: r, G: g, B: b, A: a})
		}
	}
	return out
}
