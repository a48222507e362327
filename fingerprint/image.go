package fingerprint

import (
	"bytes"
	"image"

	// Register the decoders for the supported fingerprint image formats.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// PixelBuffer is a single-channel luminance raster. Stage outputs are
// derived copies; a buffer is never mutated after it is produced.
type PixelBuffer struct {
	Width  int
	Height int
	Pix    []uint8 // row-major, Width*Height values
}

// NewPixelBuffer allocates a zeroed buffer.
func NewPixelBuffer(w, h int) *PixelBuffer {
	return &PixelBuffer{Width: w, Height: h, Pix: make([]uint8, w*h)}
}

// At returns the luminance value at (x, y).
func (p *PixelBuffer) At(x, y int) uint8 {
	return p.Pix[y*p.Width+x]
}

// Set stores a luminance value at (x, y).
func (p *PixelBuffer) Set(x, y int, v uint8) {
	p.Pix[y*p.Width+x] = v
}

// DecodeImage decodes an encoded fingerprint image (PNG, JPEG, BMP or
// TIFF) into a grayscale buffer using the ITU-R 601 luma weights.
func DecodeImage(data []byte) (*PixelBuffer, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &ImageLoadError{Err: err}
	}
	return Grayscale(img), nil
}

// Grayscale converts any decoded image to a luminance buffer with
// gray = 0.299R + 0.587G + 0.114B.
func Grayscale(img image.Image) *PixelBuffer {
	b := img.Bounds()
	out := NewPixelBuffer(b.Dx(), b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			v := 0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(bl>>8)
			if v > 255 {
				v = 255
			}
			out.Set(x-b.Min.X, y-b.Min.Y, uint8(v))
		}
	}
	return out
}
