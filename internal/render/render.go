package render

import (
	"runtime"

	"github.com/swayview/swayview/internal/pixmap"
	"github.com/swayview/swayview/internal/workerpool"
)

// maxRenderThreads is the upper bound on background workers used for a
// single render call, per section 4.2's `N = min(16, max(1, cpu_count)) - 1`.
const maxRenderThreads = 16

// multithreadPixelThreshold is the minimum destination pixel count
// required before a render call is allowed to use the worker pool.
const multithreadPixelThreshold = 100_000

// Render paints src scaled by scale with its top-left at (x, y) in dst
// coordinates, using filter. Contributions outside dst are clipped; an
// out-of-window or empty clip is a no-op. src.Format governs blending
// exactly as pixmap.Copy does. When multithreaded is true and the
// destination clip is at least multithreadPixelThreshold pixels, work is
// split across a worker pool with a barrier between the horizontal and
// vertical passes.
func Render(src, dst *pixmap.Pixmap, x, y int, scale float64, filter Filter, multithreaded bool) {
	if scale <= 0 || src.Width <= 0 || src.Height <= 0 {
		return
	}
	dstW := int(float64(src.Width) * scale)
	dstH := int(float64(src.Height) * scale)
	if dstW <= 0 || dstH <= 0 {
		return
	}

	cx, cy, cw, ch, ok := clipRect(dst, x, y, dstW, dstH)
	if !ok {
		return
	}

	if filter == FilterNearest {
		renderNearest(src, dst, x, y, scale, cx, cy, cw, ch, multithreaded)
		return
	}
	renderConvolution(src, dst, x, y, dstW, dstH, scale, filter, cx, cy, cw, ch, multithreaded)
}

func clipRect(dst *pixmap.Pixmap, x, y, w, h int) (cx, cy, cw, ch int, ok bool) {
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
	if x1 > dst.Width {
		x1 = dst.Width
	}
	if y1 > dst.Height {
		y1 = dst.Height
	}
	if x1 <= x || y1 <= y {
		return 0, 0, 0, 0, false
	}
	return x, y, x1 - x, y1 - y, true
}

func workerCount(pixels int, multithreaded bool) int {
	if !multithreaded || pixels < multithreadPixelThreshold {
		return 0
	}
	n := runtime.NumCPU()
	if n > maxRenderThreads {
		n = maxRenderThreads
	}
	if n < 1 {
		n = 1
	}
	return n - 1
}

// renderNearest implements section 4.2's nearest-neighbor path: a
// fixed-point reciprocal maps each destination pixel to a source pixel.
func renderNearest(src, dst *pixmap.Pixmap, x, y int, scale float64, cx, cy, cw, ch int, multithreaded bool) {
	num, bits := nearestReciprocal(scale)
	paintRow := func(dy int) {
		sy := nearestIndex(dy-y, num, bits)
		if sy < 0 {
			sy = 0
		}
		if sy > src.Height-1 {
			sy = src.Height - 1
		}
		for dx := cx; dx < cx+cw; dx++ {
			sx := nearestIndex(dx-x, num, bits)
			if sx < 0 {
				sx = 0
			}
			if sx > src.Width-1 {
				sx = src.Width - 1
			}
			sc := src.At(sx, sy)
			if src.Format == pixmap.XRGBFormat {
				dst.Set(dx, dy, sc)
			} else {
				dst.Set(dx, dy, pixmap.Blend(sc, dst.At(dx, dy)))
			}
		}
	}

	n := workerCount(cw*ch, multithreaded)
	if n == 0 {
		for dy := cy; dy < cy+ch; dy++ {
			paintRow(dy)
		}
		return
	}
	runRowsParallel(cy, cy+ch, n, paintRow)
}

// runRowsParallel splits rows [lo, hi) into n+1 bands (n pool workers
// plus the caller) and runs fn over each row in a band, joining before
// returning.
func runRowsParallel(lo, hi, n int, fn func(row int)) {
	rows := hi - lo
	if rows <= 0 {
		return
	}
	pool := workerpool.New(n)
	defer pool.Close()

	bands := n + 1
	per := (rows + bands - 1) / bands
	if per < 1 {
		per = 1
	}

	start := lo
	for b := 0; b < n && start < hi; b++ {
		end := start + per
		if end > hi {
			end = hi
		}
		bs, be := start, end
		pool.Add(func(arg interface{}) {
			for r := bs; r < be; r++ {
				fn(r)
			}
		}, nil)
		start = end
	}
	for r := start; r < hi; r++ {
		fn(r)
	}
	pool.WaitAll()
}

// renderConvolution implements the separable horizontal/vertical
// two-pass convolution of section 4.2.
func renderConvolution(src, dst *pixmap.Pixmap, x, y, dstW, dstH int, scale float64, filter Filter, cx, cy, cw, ch int, multithreaded bool) {
	hKernel := buildKernel(src.Width, dstW, scale, filter)
	vKernel := buildKernel(src.Height, dstH, scale, filter)

	// Only the destination rows inside the clip are needed; narrow the
	// vertical kernel's working range to the rows [cy-y, cy-y+ch) in
	// destination-local coordinates.
	loOut, hiOut := cy-y, cy-y+ch
	if loOut < 0 {
		loOut = 0
	}
	if hiOut > dstH {
		hiOut = dstH
	}

	srcMin, srcMax := src.Height, -1
	for o := loOut; o < hiOut; o++ {
		for _, t := range vKernel.taps[o] {
			if t.idx < srcMin {
				srcMin = t.idx
			}
			if t.idx > srcMax {
				srcMax = t.idx
			}
		}
	}
	if srcMax < srcMin {
		return
	}
	interH := srcMax - srcMin + 1

	var inter *pixmap.Pixmap
	var accum *alphaAccum
	if src.Format == pixmap.ARGBFormat {
		accum = newAlphaAccum(cw, interH)
	} else {
		var err error
		inter, err = pixmap.New(cw, interH, pixmap.ARGBFormat)
		if err != nil {
			return
		}
	}

	n := workerCount(cw*ch, multithreaded)

	pass1Row := func(srcRow int) {
		if accum != nil {
			horizontalFilterRowAlpha(src, hKernel, accum, srcRow-srcMin, srcRow, cx, x, cw)
		} else {
			horizontalFilterRow(src, hKernel, inter, srcRow-srcMin, srcRow, cx, x, cw)
		}
	}
	pass2Row := func(dstRow int) {
		if accum != nil {
			verticalFilterRowAlpha(vKernel, accum, srcMin, dst, dstRow, dstRow-y, cx, cw)
		} else {
			verticalFilterRow(vKernel, inter, srcMin, dst, dstRow, dstRow-y, cx, cw)
		}
	}

	if n == 0 {
		for r := srcMin; r <= srcMax; r++ {
			pass1Row(r)
		}
		for r := cy; r < cy+ch; r++ {
			pass2Row(r)
		}
		return
	}

	parties := n + 1
	pass1Bands := makeBands(srcMin, srcMax+1, parties)
	pass2Bands := makeBands(cy, cy+ch, parties)

	barrier := workerpool.NewBarrier(parties)
	pool := workerpool.New(n)
	defer pool.Close()

	// The N pool workers take bands [0, n); the calling goroutine always
	// takes the last band (index n), for both passes.
	for w := 0; w < n; w++ {
		w := w
		pool.Add(func(arg interface{}) {
			b1 := pass1Bands[w]
			for r := b1.lo; r < b1.hi; r++ {
				pass1Row(r)
			}
			barrier.Wait()
			b2 := pass2Bands[w]
			for r := b2.lo; r < b2.hi; r++ {
				pass2Row(r)
			}
		}, nil)
	}

	b1 := pass1Bands[n]
	for r := b1.lo; r < b1.hi; r++ {
		pass1Row(r)
	}
	barrier.Wait()
	b2 := pass2Bands[n]
	for r := b2.lo; r < b2.hi; r++ {
		pass2Row(r)
	}

	pool.WaitAll()
}

// rowBand is a disjoint [lo, hi) row range assigned to one participant.
type rowBand struct{ lo, hi int }

// makeBands splits [lo, hi) into `parties` disjoint, contiguous bands
// that cover the range exactly; trailing bands may be empty if rows is
// smaller than parties.
func makeBands(lo, hi, parties int) []rowBand {
	bands := make([]rowBand, parties)
	rows := hi - lo
	if rows <= 0 || parties <= 0 {
		for i := range bands {
			bands[i] = rowBand{lo, lo}
		}
		return bands
	}
	per := (rows + parties - 1) / parties
	if per < 1 {
		per = 1
	}
	start := lo
	for i := 0; i < parties; i++ {
		end := start + per
		if end > hi {
			end = hi
		}
		if start > hi {
			start = hi
		}
		bands[i] = rowBand{start, end}
		start = end
	}
	return bands
}

// horizontalFilterRow applies the horizontal kernel to one XRGB source
// row, writing the filtered pixels into row interRow of inter. XRGB
// sources ignore alpha, so channels are plain weighted averages.
func horizontalFilterRow(src *pixmap.Pixmap, hKernel *axisKernel, inter *pixmap.Pixmap, interRow, srcRow, dstClipX, dstOriginX, cw int) {
	if srcRow < 0 || srcRow >= src.Height || interRow < 0 || interRow >= inter.Height {
		return
	}
	for ox := 0; ox < cw; ox++ {
		outIdx := dstClipX - dstOriginX + ox
		taps := hKernel.taps[outIdx]
		var sr, sg, sb, sa int64
		for _, t := range taps {
			c := src.At(t.idx, srcRow)
			a, r, g, b := c.Channels()
			w := int64(t.weight)
			sr += int64(r) * w
			sg += int64(g) * w
			sb += int64(b) * w
			sa += int64(a) * w
		}
		inter.Set(ox, interRow, packFixed(sa, sr, sg, sb))
	}
}

// verticalFilterRow applies the vertical kernel to produce one XRGB
// destination row from the intermediate buffer.
func verticalFilterRow(vKernel *axisKernel, inter *pixmap.Pixmap, interMin int, dst *pixmap.Pixmap, dstRow, outIdx, dstClipX, cw int) {
	if outIdx < 0 || outIdx >= len(vKernel.taps) {
		return
	}
	taps := vKernel.taps[outIdx]
	for ox := 0; ox < cw; ox++ {
		var sr, sg, sb, sa int64
		for _, t := range taps {
			row := t.idx - interMin
			if row < 0 || row >= inter.Height {
				continue
			}
			c := inter.At(ox, row)
			a, r, g, b := c.Channels()
			w := int64(t.weight)
			sr += int64(r) * w
			sg += int64(g) * w
			sb += int64(b) * w
			sa += int64(a) * w
		}
		outA := clampDiv(sa, FixedOne)
		outR := clampDiv(sr, FixedOne)
		outG := clampDiv(sg, FixedOne)
		outB := clampDiv(sb, FixedOne)
		dst.Set(dstClipX+ox, dstRow, pixmap.ARGB(outA, outR, outG, outB))
	}
}

// alphaAccum carries the α-weighted sums of the ARGB convolution path
// between the horizontal and vertical passes: Σ(channel·α·w) for each
// color channel, Σ(α·α·w) for alpha treated as its own channel, and the
// shared Σ(α·w) denominator. Kept as raw int64 sums rather than
// repacked into 8-bit intermediate pixels, so the division by Σ(α·w)
// happens exactly once, after both passes have contributed.
type alphaAccum struct {
	width, height   int
	r, g, b, a2, aw []int64
}

func newAlphaAccum(width, height int) *alphaAccum {
	n := width * height
	return &alphaAccum{
		width: width, height: height,
		r: make([]int64, n), g: make([]int64, n), b: make([]int64, n),
		a2: make([]int64, n), aw: make([]int64, n),
	}
}

func (p *alphaAccum) set(x, y int, r, g, b, a2, aw int64) {
	i := y*p.width + x
	p.r[i], p.g[i], p.b[i], p.a2[i], p.aw[i] = r, g, b, a2, aw
}

func (p *alphaAccum) at(x, y int) (r, g, b, a2, aw int64) {
	i := y*p.width + x
	return p.r[i], p.g[i], p.b[i], p.a2[i], p.aw[i]
}

// horizontalFilterRowAlpha applies the horizontal kernel to one ARGB
// source row, accumulating the α-weighted channel sums of section
// 4.2's alpha branch into row interRow of accum.
func horizontalFilterRowAlpha(src *pixmap.Pixmap, hKernel *axisKernel, accum *alphaAccum, interRow, srcRow, dstClipX, dstOriginX, cw int) {
	if srcRow < 0 || srcRow >= src.Height || interRow < 0 || interRow >= accum.height {
		return
	}
	for ox := 0; ox < cw; ox++ {
		outIdx := dstClipX - dstOriginX + ox
		taps := hKernel.taps[outIdx]
		var sr, sg, sb, sa2, saw int64
		for _, t := range taps {
			c := src.At(t.idx, srcRow)
			a, r, g, b := c.Channels()
			aw := int64(a) * int64(t.weight)
			sr += int64(r) * aw
			sg += int64(g) * aw
			sb += int64(b) * aw
			sa2 += int64(a) * aw
			saw += aw
		}
		accum.set(ox, interRow, sr, sg, sb, sa2, saw)
	}
}

// verticalFilterRowAlpha applies the vertical kernel to accum, dividing
// the fully-accumulated α-weighted channel sums by Σ(α·w) once both
// passes have contributed, so transparent source pixels contribute
// nothing to either the numerator or the denominator, then alpha-blends
// the result over dst.
func verticalFilterRowAlpha(vKernel *axisKernel, accum *alphaAccum, interMin int, dst *pixmap.Pixmap, dstRow, outIdx, dstClipX, cw int) {
	if outIdx < 0 || outIdx >= len(vKernel.taps) {
		return
	}
	taps := vKernel.taps[outIdx]
	for ox := 0; ox < cw; ox++ {
		var sr, sg, sb, sa2, saw int64
		for _, t := range taps {
			row := t.idx - interMin
			if row < 0 || row >= accum.height {
				continue
			}
			r, g, b, a2, aw := accum.at(ox, row)
			w := int64(t.weight)
			sr += r * w
			sg += g * w
			sb += b * w
			sa2 += a2 * w
			saw += aw * w
		}
		var outA, outR, outG, outB uint8
		if saw != 0 {
			outA = clampDiv(sa2, saw)
			outR = clampDiv(sr, saw)
			outG = clampDiv(sg, saw)
			outB = clampDiv(sb, saw)
		}
		src := pixmap.ARGB(outA, outR, outG, outB)
		dst.Set(dstClipX+ox, dstRow, pixmap.Blend(src, dst.At(dstClipX+ox, dstRow)))
	}
}

// packFixed packs fixed-point-weighted-sum channels (still scaled by
// 2^FixedBits) back down to 8-bit channels for storage in the
// intermediate ARGB buffer between passes.
func packFixed(a, r, g, b int64) pixmap.Color {
	return pixmap.ARGB(clampDiv(a, FixedOne), clampDiv(r, FixedOne), clampDiv(g, FixedOne), clampDiv(b, FixedOne))
}

// clampDiv divides num by den (den > 0) and saturates the quotient to
// the 8-bit range.
func clampDiv(num, den int64) uint8 {
	if den == 0 {
		return 0
	}
	v := num / den
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
