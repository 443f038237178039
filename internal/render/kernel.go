// Package render implements the multithreaded software renderer of
// section 4.2: nearest-neighbor scaling and four separable convolution
// filters (box, bilinear, bicubic Catmull-Rom, MKS13), applied as
// fixed-point horizontal/vertical passes with a worker pool and a
// pass barrier.
package render

import "math"

// Filter selects the resampling kernel used by Render.
type Filter int

const (
	FilterNearest Filter = iota
	FilterBox
	FilterBilinear
	FilterBicubic
	FilterMKS13
)

// FixedBits is the fixed-point scale used for convolution kernel
// weights: every tap weight is an integer counting 1/2^FixedBits.
const FixedBits = 14

// FixedOne is 2^FixedBits, the value the taps of any single output
// index sum to exactly.
const FixedOne = 1 << FixedBits

func filterWindow(f Filter) float64 {
	switch f {
	case FilterBox:
		return 0.5
	case FilterBilinear:
		return 1
	case FilterBicubic:
		return 2
	case FilterMKS13:
		return 2.5
	default:
		return 0
	}
}

func filterWeight(f Filter, x float64) float64 {
	if x < 0 {
		x = -x
	}
	switch f {
	case FilterBox:
		if x <= 0.5 {
			return 1
		}
		return 0
	case FilterBilinear:
		if x < 1 {
			return 1 - x
		}
		return 0
	case FilterBicubic:
		return catmullRom(x)
	case FilterMKS13:
		return mks13(x)
	default:
		return 0
	}
}

// catmullRom is the standard two-piece Catmull-Rom cubic (a = -0.5).
func catmullRom(x float64) float64 {
	const a = -0.5
	switch {
	case x <= 1:
		return (a+2)*x*x*x - (a+3)*x*x + 1
	case x < 2:
		return a*x*x*x - 5*a*x*x + 8*a*x - 4*a
	default:
		return 0
	}
}

// mks13 is the Magic Kernel Sharp 2013 three-piece polynomial.
func mks13(x float64) float64 {
	switch {
	case x <= 0.5:
		return 17.0/16.0 - (7.0/4.0)*x*x
	case x <= 1.5:
		return x*x - (11.0/4.0)*x + 7.0/4.0
	case x <= 2.5:
		return -(1.0/8.0)*x*x + (5.0/8.0)*x - 25.0/32.0
	default:
		return 0
	}
}

// tap is one contributing input index and its fixed-point weight.
type tap struct {
	idx    int
	weight int32
}

// axisKernel holds, for every output index in [0, dstSize), the list of
// input indices and fixed-point weights that contribute to it.
type axisKernel struct {
	taps          [][]tap
	minIdx, maxIdx int
}

// supportHeight returns the number of distinct input indices spanned by
// the kernel, used to size the intermediate buffer for the orthogonal
// pass.
func (k *axisKernel) supportHeight() int {
	if k.maxIdx < k.minIdx {
		return 0
	}
	return k.maxIdx - k.minIdx + 1
}

// nearestIndex computes the fixed-point nearest-neighbor source
// index for a destination index, per section 4.2's reciprocal scheme.
// bits is 32 for upscales (scale >= 1) and 25 for downscales.
func nearestIndex(dstIdx int, num int64, bits uint) int {
	return int((int64(dstIdx) * num) >> bits)
}

// nearestReciprocal returns the fixed-point reciprocal `num` and the
// shift `bits` used to map a destination index to a source index for
// the given scale factor. num is rounded up so that destination
// indices that are exact multiples of scale map to the exact source
// index rather than the one before it.
func nearestReciprocal(scale float64) (num int64, bits uint) {
	if scale >= 1 {
		bits = 32
	} else {
		bits = 25
	}
	return int64(math.Ceil((1 / scale) * float64(uint64(1)<<bits))), bits
}

// buildKernel constructs the 1-D kernel mapping srcSize input samples to
// dstSize output samples at the given scale factor (dstSize/srcSize),
// per the five kernel-building rules of section 4.2.
func buildKernel(srcSize, dstSize int, scale float64, filter Filter) *axisKernel {
	k := &axisKernel{
		taps:   make([][]tap, dstSize),
		minIdx: srcSize,
		maxIdx: -1,
	}
	window := filterWindow(filter)
	mult := scale
	if scale > 1 {
		mult = 1
	}
	supportHalf := window
	if mult > 0 {
		supportHalf = window / mult
	}

	for o := 0; o < dstSize; o++ {
		center := (float64(o)+0.5)/scale - 0.5
		lo := int(math.Ceil(center - supportHalf))
		hi := int(math.Floor(center + supportHalf))
		if lo < 0 {
			lo = 0
		}
		if hi > srcSize-1 {
			hi = srcSize - 1
		}
		if hi < lo {
			// Degenerate support (can occur past the image edge); clamp
			// to the single nearest valid sample.
			c := int(math.Round(center))
			if c < 0 {
				c = 0
			}
			if c > srcSize-1 {
				c = srcSize - 1
			}
			lo, hi = c, c
		}

		n := hi - lo + 1
		raw := make([]float64, n)
		var sum float64
		for i := 0; i < n; i++ {
			idx := lo + i
			x := (float64(idx) - center) * mult
			w := filterWeight(filter, x)
			raw[i] = w
			sum += w
		}
		if sum == 0 {
			sum = 1
		}

		fixed := make([]int32, n)
		var fsum int32
		for i, w := range raw {
			fw := int32(math.Round(w / sum * FixedOne))
			fixed[i] = fw
			fsum += fw
		}
		// Rule 3: correct the middle weight so the fixed-point weights
		// sum exactly to 2^14.
		mid := n / 2
		fixed[mid] += int32(FixedOne) - fsum

		// Rule 4: drop leading/trailing zero weights.
		start, end := 0, n
		for start < end && fixed[start] == 0 {
			start++
		}
		for end > start && fixed[end-1] == 0 {
			end--
		}
		if start == end {
			// Every tap rounded to zero weight; keep the middle sample
			// at full weight so the output pixel is still defined.
			start, end = mid, mid+1
			fixed[mid] = FixedOne
		}

		outTaps := make([]tap, 0, end-start)
		for i := start; i < end; i++ {
			outTaps = append(outTaps, tap{idx: lo + i, weight: fixed[i]})
			if lo+i < k.minIdx {
				k.minIdx = lo + i
			}
			if lo+i > k.maxIdx {
				k.maxIdx = lo + i
			}
		}
		k.taps[o] = outTaps
	}
	return k
}
