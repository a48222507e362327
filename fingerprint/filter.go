package fingerprint

import "sort"

const binaryThreshold = 128

// EnhanceContrast stretches the luminance around the midpoint:
// v' = clamp(0, 255, (v-128)*1.5 + 128).
func EnhanceContrast(src *PixelBuffer) *PixelBuffer {
	out := NewPixelBuffer(src.Width, src.Height)
	for i, v := range src.Pix {
		s := (float64(v)-128)*1.5 + 128
		if s < 0 {
			s = 0
		} else if s > 255 {
			s = 255
		}
		out.Pix[i] = uint8(s)
	}
	return out
}

// MedianFilter applies a 3x3 median filter. The 1-pixel border is
// copied through unfiltered.
func MedianFilter(src *PixelBuffer) *PixelBuffer {
	out := NewPixelBuffer(src.Width, src.Height)
	copy(out.Pix, src.Pix)

	var window [9]int
	for y := 1; y < src.Height-1; y++ {
		for x := 1; x < src.Width-1; x++ {
			i := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					window[i] = int(src.At(x+dx, y+dy))
					i++
				}
			}
			w := window[:]
			sort.Ints(w)
			out.Set(x, y, uint8(w[4]))
		}
	}
	return out
}

// Bitmap is a binary ridge map: 1 for ridge (ink), 0 for valley.
type Bitmap struct {
	Width  int
	Height int
	Bits   []uint8
}

// NewBitmap allocates a zeroed bitmap.
func NewBitmap(w, h int) *Bitmap {
	return &Bitmap{Width: w, Height: h, Bits: make([]uint8, w*h)}
}

// At returns the bit at (x, y).
func (b *Bitmap) At(x, y int) uint8 {
	return b.Bits[y*b.Width+x]
}

// Set stores a bit at (x, y).
func (b *Bitmap) Set(x, y int, v uint8) {
	b.Bits[y*b.Width+x] = v
}

// Count returns the number of foreground pixels.
func (b *Bitmap) Count() int {
	n := 0
	for _, v := range b.Bits {
		if v == 1 {
			n++
		}
	}
	return n
}

// Binarize thresholds the luminance buffer at the fixed ridge
// threshold. Dark pixels (ink) become foreground.
func Binarize(src *PixelBuffer) *Bitmap {
	out := NewBitmap(src.Width, src.Height)
	for i, v := range src.Pix {
		if v < binaryThreshold {
			out.Bits[i] = 1
		}
	}
	return out
}
