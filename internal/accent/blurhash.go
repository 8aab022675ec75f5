package accent

import (
	"bytes"
	"fmt"
	"image"

	"github.com/bbrks/go-blurhash"
	"golang.org/x/image/draw"
)

// blurHashSize bounds the long side of the thumbnail the hash is computed on.
const blurHashSize = 64

// BlurHash decodes data and encodes a 4x3 component BlurHash of it.
func BlurHash(data []byte) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	hash, err := blurhash.Encode(4, 3, thumbnail(img))
	if err != nil {
		return "", fmt.Errorf("encode blurhash: %w", err)
	}

	return hash, nil
}

// thumbnail scales img so neither side exceeds blurHashSize, keeping the
// aspect ratio. Small images are returned unchanged.
func thumbnail(img image.Image) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	if w <= blurHashSize && h <= blurHashSize {
		return img
	}

	var dw, dh int
	if w > h {
		dw = blurHashSize
		dh = max(1, h*blurHashSize/w)
	} else {
		dh = blurHashSize
		dw = max(1, w*blurHashSize/h)
	}

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
