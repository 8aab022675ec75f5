package id3

import (
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Text encodings (first byte of every text frame body)
const (
	EncodingLatin1  byte = 0 // ISO-8859-1
	EncodingUTF16   byte = 1 // UTF-16 with BOM
	EncodingUTF16BE byte = 2 // UTF-16BE without BOM (v2.4)
	EncodingUTF8    byte = 3 // UTF-8 (v2.4)
)

// newTextDecoder returns a fresh decoder for an encoding byte, or nil if unknown.
// Decoders are stateful and must not be shared between calls.
func newTextDecoder(enc byte) *encoding.Decoder {
	switch enc {
	case EncodingLatin1:
		return charmap.ISO8859_1.NewDecoder()
	case EncodingUTF16:
		// The BOM decides; without one, little-endian is assumed
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
	case EncodingUTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()
	case EncodingUTF8:
		return unicode.UTF8BOM.NewDecoder()
	default:
		return nil
	}
}

// decodeTextFrame decodes a text frame body: [encoding][text...].
// ok is false when the body is empty or the encoding byte is unknown.
func decodeTextFrame(body []byte) (text string, ok bool) {
	if len(body) < 1 {
		return "", false
	}

	dec := newTextDecoder(body[0])
	if dec == nil {
		return "", false
	}

	out, err := dec.Bytes(body[1:])
	if err != nil {
		return "", false
	}

	return cleanText(string(out)), true
}

// cleanText strips trailing NULs, joins NUL-separated values with ", " and
// trims surrounding whitespace.
func cleanText(s string) string {
	s = strings.TrimRight(s, "\x00")
	s = strings.ReplaceAll(s, "\x00", ", ")
	return strings.TrimSpace(s)
}
