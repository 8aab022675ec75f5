// Package types provides the core data structures produced by the track reader.
//
// This package defines TrackMetadata, Cover and RGB, shared by the tag
// reader, the color sampler and the public API.
package types

import (
	"encoding/base64"
	"fmt"
)

// UnknownArtist is the artist shown when a track has no artist frame.
const UnknownArtist = "Unknown Artist"

// MIME types of sniffed cover images.
const (
	MIMEJPEG = "image/jpeg"
	MIMEPNG  = "image/png"
)

// TrackMetadata is the record handed to the player UI.
//
// Title and Artist fall back to the file name and UnknownArtist when the tag
// has no such frame. Cover and Accent are nil when the track has no usable
// artwork. Every read returns a fresh value owned by the
// caller.
type TrackMetadata struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Album  string `json:"album,omitempty"`

	// Cover is the embedded artwork, nil if absent, not sniffable or undecodable
	Cover *Cover `json:"cover,omitempty"`

	// Accent is the sampled color of Cover, nil unless Cover decoded
	Accent *RGB `json:"accent,omitempty"`

	// BlurHash is a compact placeholder of Cover (only with WithBlurHash)
	BlurHash string `json:"blurhash,omitempty"`

	// Warnings encountered while reading (non-fatal issues)
	Warnings []Warning `json:"-"`
}

// HasCover reports whether embedded artwork was extracted.
func (m *TrackMetadata) HasCover() bool {
	return m.Cover != nil && len(m.Cover.Data) > 0
}

// Cover is raw embedded artwork.
type Cover struct {
	// MIME type of the image data ("image/jpeg" or "image/png")
	MIMEType string `json:"mimeType"`

	// Image binary data, from the format magic to the end of the frame
	Data []byte `json:"-"`
}

// Extension returns the conventional file extension for the cover, including the dot.
func (c Cover) Extension() string {
	switch c.MIMEType {
	case MIMEPNG:
		return ".png"
	case MIMEJPEG:
		return ".jpg"
	default:
		return ".bin"
	}
}

// DataURI returns the cover as a base64 data URI suitable for an <img> src.
func (c Cover) DataURI() string {
	return "data:" + c.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(c.Data)
}

// String returns a short description, e.g. "image/png (12KB)".
func (c Cover) String() string {
	return fmt.Sprintf("%s (%s)", c.MIMEType, formatSize(len(c.Data)))
}

// RGB is an 8-bit-per-channel color.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// White returns the neutral accent used when a cover cannot be sampled.
func White() RGB {
	return RGB{R: 255, G: 255, B: 255}
}

// Hex returns the color as "#RRGGBB".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// String returns the color as "rgb(r, g, b)".
func (c RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// formatSize formats byte size in human-readable form.
func formatSize(bytes int) string {
	const (
		KB = 1024
		MB = 1024 * KB
	)

	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.1fMB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%dKB", bytes/KB)
	default:
		return fmt.Sprintf("%dB", bytes)
	}
}
