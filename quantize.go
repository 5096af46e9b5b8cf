package txd

import (
	"fmt"
	"image"
	"image/color"

	"github.com/ericpauley/go-quantize/quantize"
)

// BuildPalette reduces a canonical RGBA image to at most maxColors
// distinct colors using median-cut quantization, returning the palette in
// R,G,B,A order (padded with zeroed entries up to maxColors) and a
// one-byte-per-pixel row-major index buffer. Both PAL4 and PAL8 store one
// full index byte per pixel on disk; maxColors must be 16 or 256 to match
// their respective palette sizes. The caller is responsible for
// byte-swapping the palette to on-disk BGRA order when writing a Texture.
func BuildPalette(rgba []byte, width, height uint32, maxColors int) (palette []byte, indices []byte, err error) {
	if maxColors != 16 && maxColors != 256 {
		return nil, nil, fmt.Errorf("%w: %v", ErrQuantizerFailed, ErrPaletteSize)
	}
	if width == 0 || height == 0 {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidStructure, ErrBadDimensions)
	}
	if len(rgba) < int(width)*int(height)*4 {
		return nil, nil, fmt.Errorf("%w: %v", ErrQuantizerFailed, ErrWrongPayloadSize)
	}

	img := image.NewNRGBA(image.Rect(0, 0, int(width), int(height)))
	copy(img.Pix, rgba[:int(width)*int(height)*4])

	q := quantize.MedianCutQuantizer{}
	reduced := q.Quantize(make(color.Palette, 0, maxColors), img)
	if len(reduced) == 0 {
		return nil, nil, fmt.Errorf("%w: quantizer returned an empty palette", ErrQuantizerFailed)
	}

	palette = make([]byte, maxColors*4)
	for i, c := range reduced {
		if i >= maxColors {
			break
		}
		r, g, b, a := c.RGBA()
		palette[i*4+0] = byte(r >> 8)
		palette[i*4+1] = byte(g >> 8)
		palette[i*4+2] = byte(b >> 8)
		palette[i*4+3] = byte(a >> 8)
	}

	indices = make([]byte, int(width)*int(height))
	for y := 0; y < int(height); y++ {
		for x := 0; x < int(width); x++ {
			idx := reduced.Index(img.At(x, y))
			indices[y*int(width)+x] = byte(idx)
		}
	}

	return palette, indices, nil
}

// ConvertPaletteToRGBA reconstructs canonical RGBA from a one-byte-per-pixel
// index buffer and an on-disk BGRA palette.
func ConvertPaletteToRGBA(indices []byte, palette []byte, width, height int) []byte {
	out := make([]byte, width*height*4)
	for i := 0; i < width*height && i < len(indices); i++ {
		writePaletteEntry(out, i, palette, int(indices[i]))
	}
	return out
}
