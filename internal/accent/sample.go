// Package accent derives display colors from embedded cover art.
package accent

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Register WebP decoder

	"github.com/simonhull/trackmeta/internal/types"
)

// sampleStride is the byte step through the RGBA buffer: every 10th pixel.
const sampleStride = 40

// ErrEmptyCrop is returned when the image is too small to have a central region.
var ErrEmptyCrop = errors.New("central crop is empty")

// Sample decodes data and averages a strided sample of its central crop.
//
// The crop is the rectangle [w/4, h/4, w/4+w/2, h/4+h/2), copied into a
// non-premultiplied buffer. Alpha is ignored; each channel is the truncated
// mean of the visited pixels.
func Sample(data []byte) (types.RGB, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return types.RGB{}, fmt.Errorf("decode image: %w", err)
	}

	crop := centralCrop(img)
	if crop == nil {
		return types.RGB{}, ErrEmptyCrop
	}

	return average(crop.Pix), nil
}

// centralCrop copies the middle half of img (in both dimensions) into a
// fresh NRGBA image with origin (0, 0). It returns nil when the crop has no area.
func centralCrop(img image.Image) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	src := image.Rect(w/4, h/4, w/4+w/2, h/4+h/2).Add(b.Min)
	if src.Empty() {
		return nil
	}

	dst := image.NewNRGBA(image.Rect(0, 0, src.Dx(), src.Dy()))
	draw.Draw(dst, dst.Bounds(), img, src.Min, draw.Src)
	return dst
}

func average(pix []byte) types.RGB {
	var r, g, b, n uint64
	for i := 0; i+2 < len(pix); i += sampleStride {
		r += uint64(pix[i])
		g += uint64(pix[i+1])
		b += uint64(pix[i+2])
		n++
	}
	if n == 0 {
		return types.RGB{}
	}

	return types.RGB{
		R: uint8(r / n),
		G: uint8(g / n),
		B: uint8(b / n),
	}
}
