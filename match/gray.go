package match

import (
	"fmt"
	"image"
)

// Gray is an 8-bit grayscale raster in row-major order. Pix holds exactly W*H
// bytes. A Gray is immutable once built; searches never write to it.
type Gray struct {
	W, H int
	Pix  []uint8
}

// NewGray wraps an existing grayscale buffer. The buffer is used as-is, so the
// caller must cede ownership.
func NewGray(pix []uint8, w, h int) (*Gray, error) {
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, w, h)
	}
	if len(pix) != w*h {
		return nil, fmt.Errorf("%w: got %d bytes for %dx%d", ErrInvalidDimensions, len(pix), w, h)
	}
	return &Gray{W: w, H: h, Pix: pix}, nil
}

// FromRaw builds a Gray from an interleaved buffer with 1 (gray), 3 (RGB) or
// 4 (RGBA) channels. Alpha, when present, is ignored.
func FromRaw(pix []uint8, w, h, channels int) (*Gray, error) {
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, w, h)
	}
	if len(pix) != w*h*channels {
		return nil, fmt.Errorf("%w: got %d bytes for %dx%dx%d", ErrInvalidDimensions, len(pix), w, h, channels)
	}
	switch channels {
	case 1:
		out := make([]uint8, w*h)
		copy(out, pix)
		return &Gray{W: w, H: h, Pix: out}, nil
	case 3, 4:
		out := make([]uint8, w*h)
		for i := range out {
			j := i * channels
			out[i] = luma8(pix[j], pix[j+1], pix[j+2])
		}
		return &Gray{W: w, H: h, Pix: out}, nil
	}
	return nil, fmt.Errorf("%w: unsupported channel count %d", ErrInvalidDimensions, channels)
}

// FromImage converts a decoded image to grayscale. Fast paths avoid the
// generic color interface for the common decoder output types.
func FromImage(img image.Image) *Gray {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := make([]uint8, w*h)
	switch src := img.(type) {
	case *image.Gray:
		for y := 0; y < h; y++ {
			copy(out[y*w:(y+1)*w], src.Pix[y*src.Stride:y*src.Stride+w])
		}
	case *image.NRGBA:
		for y := 0; y < h; y++ {
			row := src.Pix[y*src.Stride : y*src.Stride+w*4]
			for x := 0; x < w; x++ {
				i := x * 4
				out[y*w+x] = luma8(row[i], row[i+1], row[i+2])
			}
		}
	case *image.RGBA:
		for y := 0; y < h; y++ {
			row := src.Pix[y*src.Stride : y*src.Stride+w*4]
			for x := 0; x < w; x++ {
				i := x * 4
				out[y*w+x] = luma8(row[i], row[i+1], row[i+2])
			}
		}
	default:
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
				out[y*w+x] = luma8(uint8(r>>8), uint8(g>>8), uint8(bl>>8))
			}
		}
	}
	return &Gray{W: w, H: h, Pix: out}
}

// luma8 is BT.601 luminance rounded to nearest. The weights are exact to three
// decimals, so integer arithmetic reproduces round(0.299R+0.587G+0.114B).
func luma8(r, g, b uint8) uint8 {
	return uint8((299*uint32(r) + 587*uint32(g) + 114*uint32(b) + 500) / 1000)
}

// Dims returns the raster dimensions.
func (g *Gray) Dims() (int, int) { return g.W, g.H }
