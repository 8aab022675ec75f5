package id3

import binutil "github.com/simonhull/trackmeta/internal/binary"

// frameLayout describes the frame header of one major version.
type frameLayout struct {
	headerSize int
	idLength   int
	sizeLength int
	size       func([]byte) uint32
}

// Frame header layouts, selected once per tag.
var (
	// v2.2: 3-byte id, 3-byte big-endian size, no flags
	layoutV22 = frameLayout{headerSize: 6, idLength: 3, sizeLength: 3, size: binutil.Uint24}

	// v2.3: 4-byte id, 4-byte big-endian size, 2 flag bytes
	layoutV23 = frameLayout{headerSize: 10, idLength: 4, sizeLength: 4, size: binutil.Uint32}

	// v2.4: 4-byte id, 4-byte synchsafe size, 2 flag bytes
	layoutV24 = frameLayout{headerSize: 10, idLength: 4, sizeLength: 4, size: binutil.Synchsafe}
)

// layoutFor returns the frame layout for a major version.
// ok is false for versions the reader does not walk.
func layoutFor(version byte) (frameLayout, bool) {
	switch version {
	case 2:
		return layoutV22, true
	case 3:
		return layoutV23, true
	case 4:
		return layoutV24, true
	default:
		return frameLayout{}, false
	}
}

// decode splits a frame header into its id, body size and flags.
func (l frameLayout) decode(hdr []byte) (id string, size uint32, flags uint16) {
	id = string(hdr[:l.idLength])
	size = l.size(hdr[l.idLength : l.idLength+l.sizeLength])
	if rest := hdr[l.idLength+l.sizeLength:]; len(rest) == 2 {
		flags = uint16(rest[0])<<8 | uint16(rest[1])
	}
	return id, size, flags
}
