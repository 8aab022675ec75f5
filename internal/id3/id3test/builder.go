// Package id3test builds synthetic ID3v2 tags for tests.
package id3test

import (
	"bytes"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	binutil "github.com/simonhull/trackmeta/internal/binary"
)

// Tag is a tag under construction. Methods append frames in call order.
type Tag struct {
	version      byte
	frames       [][]byte
	padding      int
	declaredSize *uint32
}

// New starts a tag of the given major version (2, 3 or 4).
func New(version byte) *Tag {
	return &Tag{version: version}
}

// Text appends a text frame encoded with enc (0 Latin-1, 1 UTF-16 BOM,
// 2 UTF-16BE, 3 UTF-8).
func (t *Tag) Text(id string, enc byte, text string) *Tag {
	return t.Raw(id, append([]byte{enc}, EncodeText(enc, text)...))
}

// Picture appends an APIC frame (PIC for version 2) with a Latin-1 description.
func (t *Tag) Picture(mime string, pictureType byte, description string, data []byte) *Tag {
	body := []byte{0}
	if t.version == 2 {
		body = append(body, legacyFormat(mime)...)
	} else {
		body = append(body, mime...)
		body = append(body, 0)
	}
	body = append(body, pictureType)
	body = append(body, description...)
	body = append(body, 0)
	body = append(body, data...)

	id := "APIC"
	if t.version == 2 {
		id = "PIC"
	}
	return t.Raw(id, body)
}

// Raw appends a frame with an arbitrary body. The id is truncated or
// zero-padded to the version's id length.
func (t *Tag) Raw(id string, body []byte) *Tag {
	buf := &bytes.Buffer{}
	sw := binutil.NewSafeWriter(buf)

	idLen := 4
	if t.version == 2 {
		idLen = 3
	}
	fid := make([]byte, idLen)
	copy(fid, id)
	must(sw.WriteBytes(fid))

	size := uint32(len(body))
	switch t.version {
	case 2:
		must(sw.WriteUint24(size))
	case 4:
		must(sw.WriteSynchsafe(size))
		must(binutil.Write[uint16](sw, 0))
	default:
		must(binutil.Write[uint32](sw, size))
		must(binutil.Write[uint16](sw, 0))
	}
	must(sw.WriteBytes(body))

	t.frames = append(t.frames, buf.Bytes())
	return t
}

// Pad appends n zero bytes after the last frame.
func (t *Tag) Pad(n int) *Tag {
	t.padding = n
	return t
}

// DeclaredSize overrides the size written in the tag header.
func (t *Tag) DeclaredSize(size uint32) *Tag {
	t.declaredSize = &size
	return t
}

// Bytes serializes the header, frames and padding.
func (t *Tag) Bytes() []byte {
	frames := bytes.Join(t.frames, nil)

	size := uint32(len(frames) + t.padding)
	if t.declaredSize != nil {
		size = *t.declaredSize
	}

	buf := &bytes.Buffer{}
	sw := binutil.NewSafeWriter(buf)
	must(sw.WriteString("ID3"))
	must(binutil.Write[uint8](sw, t.version))
	must(binutil.Write[uint8](sw, 0)) // revision
	must(binutil.Write[uint8](sw, 0)) // flags
	must(sw.WriteSynchsafe(size))
	must(sw.WriteBytes(frames))
	must(sw.WriteBytes(make([]byte, t.padding)))

	return buf.Bytes()
}

// EncodeText encodes text the way a tagger would for the given encoding byte.
// Unknown encodings return the UTF-8 bytes unchanged.
func EncodeText(enc byte, text string) []byte {
	var (
		out string
		err error
	)
	switch enc {
	case 0:
		out, err = charmap.ISO8859_1.NewEncoder().String(text)
	case 1:
		out, err = unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().String(text)
	case 2:
		out, err = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewEncoder().String(text)
	default:
		out = text
	}
	if err != nil {
		panic("id3test: cannot encode " + text + ": " + err.Error())
	}
	return []byte(out)
}

// must panics on a failed fixture write so a broken tag never reaches a test.
func must(err error) {
	if err != nil {
		panic("id3test: " + err.Error())
	}
}

func legacyFormat(mime string) []byte {
	switch mime {
	case "image/png":
		return []byte("PNG")
	case "image/jpeg":
		return []byte("JPG")
	default:
		return []byte("---")
	}
}
