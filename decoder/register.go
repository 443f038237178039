package decoder

import "github.com/swayview/swayview/internal/imageio"

// RegisterAll wires every decoder in this package into reg at the
// priority tiers section 6 expects: raster formats before the
// comparatively rare WebP format.
func RegisterAll(reg *imageio.Registry) {
	reg.Register(PNGDecoder{}, imageio.High)
	reg.Register(JPEGDecoder{}, imageio.High)
	reg.Register(GIFDecoder{}, imageio.Normal)
	reg.Register(WebPDecoder{}, imageio.Low)
}
