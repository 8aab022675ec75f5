// Package id3 reads the subset of ID3v2 needed by the player: title, artist,
// album and the first embedded picture.
//
// Versions 2.2, 2.3 and 2.4 are walked. Unsynchronisation, compression,
// encryption, extended headers and footers are not interpreted.
package id3

import (
	"errors"
	"fmt"

	binutil "github.com/simonhull/trackmeta/internal/binary"
)

// HeaderSize is the fixed length of the tag header.
const HeaderSize = 10

var (
	// ErrNotTagged means the buffer does not start with "ID3".
	ErrNotTagged = errors.New("no ID3v2 tag")

	// ErrUnsupportedVersion means the major version is not 2, 3 or 4.
	ErrUnsupportedVersion = errors.New("unsupported ID3v2 version")
)

// Header represents an ID3v2 tag header
type Header struct {
	Version  byte // Major version (2, 3 or 4)
	Revision byte // Minor version
	Flags    byte
	Size     uint32 // Tag size (excluding header), synchsafe
}

// ParseHeader decodes the first 10 bytes of sr.
func ParseHeader(sr *binutil.SafeReader) (Header, error) {
	cr := binutil.NewChainReader(binutil.NewReader(sr, 0))

	magic := cr.String(3, "ID3v2 magic")
	version := binutil.ReadChained[uint8](cr, "ID3v2 version")
	revision := binutil.ReadChained[uint8](cr, "ID3v2 revision")
	flags := binutil.ReadChained[uint8](cr, "ID3v2 flags")
	size := cr.Bytes(4, "ID3v2 size")

	if err := cr.Error(); err != nil {
		return Header{}, fmt.Errorf("%w: %w", ErrNotTagged, err)
	}
	if magic != "ID3" {
		return Header{}, ErrNotTagged
	}

	header := Header{
		Version:  version,
		Revision: revision,
		Flags:    flags,
		Size:     binutil.Synchsafe(size),
	}

	if header.Version < 2 || header.Version > 4 {
		return header, fmt.Errorf("%w: 2.%d", ErrUnsupportedVersion, header.Version)
	}

	return header, nil
}

// End returns the offset one past the last byte of the tag, as declared.
func (h Header) End() int64 {
	return HeaderSize + int64(h.Size)
}

// String returns the version as written in the format's documents, e.g. "ID3v2.4.0".
func (h Header) String() string {
	return fmt.Sprintf("ID3v2.%d.%d", h.Version, h.Revision)
}
