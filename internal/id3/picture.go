package id3

import (
	"bytes"

	binutil "github.com/simonhull/trackmeta/internal/binary"
	"github.com/simonhull/trackmeta/internal/types"
)

// magicScanWindow is how far past the computed data start the extractor
// looks for an image signature. Declared picture offsets are frequently
// wrong in the wild (unterminated descriptions, bogus encodings), so the
// signature is trusted over the layout.
const magicScanWindow = 200

// extractPicture pulls the image out of an APIC (v2.3/v2.4) or PIC (v2.2) body.
//
// APIC layout:
//
//	[1 byte]          Text encoding
//	[null-terminated] MIME type
//	[1 byte]          Picture type
//	[...]             Description, then picture data
//
// PIC layout:
//
//	[1 byte]  Text encoding
//	[3 bytes] Image format ("JPG", "PNG")
//	[1 byte]  Picture type
//	[...]     Description, then picture data
//
// The description is not parsed. Instead the first JPEG (FF D8) or PNG
// (89 50) signature within magicScanWindow bytes of its start marks the
// image, which runs to the end of the frame. ok is false if no signature
// is found.
func extractPicture(body []byte, version byte) (cover *types.Cover, ok bool) {
	if len(body) < 2 {
		return nil, false
	}

	r := binutil.NewReader(binutil.NewSafeReader(body, "picture frame"), 1)
	if version == 2 {
		r.Skip(4) // format code, picture type
	} else {
		rest, err := r.Tail(r.Offset(), r.Len(), "MIME type")
		if err != nil {
			return nil, false
		}
		nul := bytes.IndexByte(rest, 0)
		if nul < 0 {
			return nil, false
		}
		r.Skip(int64(nul) + 2) // MIME type, NUL, picture type
	}

	// One extra byte so a signature can start at the last scanned position
	start := r.Offset()
	window, err := r.Tail(start, start+magicScanWindow+1, "picture data")
	if err != nil {
		return nil, false
	}

	for i := 0; i+1 < len(window); i++ {
		mime := sniffImage(window[i], window[i+1])
		if mime == "" {
			continue
		}

		return &types.Cover{
			MIMEType: mime,
			Data:     bytes.Clone(body[start+int64(i):]),
		}, true
	}

	return nil, false
}

// sniffImage maps a two-byte signature to a MIME type.
// Only JPEG and PNG are recognized.
func sniffImage(b0, b1 byte) string {
	switch {
	case b0 == 0xFF && b1 == 0xD8:
		return types.MIMEJPEG
	case b0 == 0x89 && b1 == 0x50:
		return types.MIMEPNG
	default:
		return ""
	}
}
