package id3test

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
)

// SolidPNG returns a w x h PNG filled with c.
func SolidPNG(w, h int, c color.Color) []byte {
	buf := &bytes.Buffer{}
	if err := png.Encode(buf, solid(w, h, c)); err != nil {
		panic("id3test: encode png: " + err.Error())
	}
	return buf.Bytes()
}

// SolidJPEG returns a w x h JPEG filled with c at maximum quality.
// JPEG is lossy, so decoded pixels may differ from c by a few levels.
func SolidJPEG(w, h int, c color.Color) []byte {
	buf := &bytes.Buffer{}
	if err := jpeg.Encode(buf, solid(w, h, c), &jpeg.Options{Quality: 100}); err != nil {
		panic("id3test: encode jpeg: " + err.Error())
	}
	return buf.Bytes()
}

// FramedPNG returns a w x h PNG whose outer quarter on every side is border
// and whose central half is center.
func FramedPNG(w, h int, border, center color.Color) []byte {
	img := solid(w, h, border)
	for y := h / 4; y < h/4+h/2; y++ {
		for x := w / 4; x < w/4+w/2; x++ {
			img.Set(x, y, center)
		}
	}

	buf := &bytes.Buffer{}
	if err := png.Encode(buf, img); err != nil {
		panic("id3test: encode png: " + err.Error())
	}
	return buf.Bytes()
}

func solid(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, c)
		}
	}
	return img
}
