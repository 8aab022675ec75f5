package id3

import (
	"errors"
	"fmt"

	binutil "github.com/simonhull/trackmeta/internal/binary"
	"github.com/simonhull/trackmeta/internal/types"
)

// field is a bit set of metadata fields found so far.
type field uint8

const (
	fieldTitle field = 1 << iota
	fieldArtist
	fieldCover
	fieldAlbum
)

// complete is the set that ends the walk early. Album is picked up only
// if it precedes the last of these.
const complete = fieldTitle | fieldArtist | fieldCover

// frameFields maps recognized frame ids (v2.3/v2.4 and legacy v2.2) to fields.
var frameFields = map[string]field{
	"TIT2": fieldTitle,
	"TT2":  fieldTitle,
	"TPE1": fieldArtist,
	"TP1":  fieldArtist,
	"TALB": fieldAlbum,
	"TAL":  fieldAlbum,
	"APIC": fieldCover,
	"PIC":  fieldCover,
}

// Result is what Parse recovered from a buffer.
type Result struct {
	Header Header
	Title  string
	Artist string
	Album  string
	Cover  *types.Cover

	// Frames counts the frames walked
	Frames int

	// Warnings encountered during parsing (non-fatal issues)
	Warnings []types.Warning

	tagged bool
	found  field
}

// Tagged reports whether the buffer carried a walkable ID3v2 tag.
func (r Result) Tagged() bool { return r.tagged }

// HasTitle reports whether a title frame was decoded.
func (r Result) HasTitle() bool { return r.found&fieldTitle != 0 }

// HasArtist reports whether an artist frame was decoded.
func (r Result) HasArtist() bool { return r.found&fieldArtist != 0 }

// HasAlbum reports whether an album frame was decoded.
func (r Result) HasAlbum() bool { return r.found&fieldAlbum != 0 }

// Parse reads the ID3v2 tag at the start of data.
//
// Parse never fails. Untagged input and unsupported versions return an empty
// Result; structural faults end the walk and keep what was found before
// them. name is only used in diagnostics.
func Parse(data []byte, name string) Result {
	sr := binutil.NewSafeReader(data, name)

	header, err := ParseHeader(sr)
	if err != nil {
		var res Result
		if errors.Is(err, ErrUnsupportedVersion) {
			res.Header = header
			res.Warnings = append(res.Warnings, types.Warning{
				Stage:   "tag",
				Message: err.Error(),
			})
		}
		return res
	}

	res := Result{Header: header, tagged: true}

	s := NewFrameScanner(sr, header)
	for s.Scan() {
		res = res.apply(s.Frame())
		if res.found&complete == complete {
			return res
		}
	}

	if err := s.Err(); err != nil {
		res.Warnings = append(res.Warnings, types.Warning{
			Stage:   "frame",
			Message: err.Error(),
			Offset:  s.Offset(),
		})
	}

	return res
}

// apply folds one frame into the result and returns the updated copy.
func (r Result) apply(f Frame) Result {
	r.Frames++

	kind, ok := frameFields[f.ID]
	if !ok {
		return r
	}

	switch kind {
	case fieldCover:
		if r.found&fieldCover != 0 {
			return r
		}
		cover, ok := extractPicture(f.Body, r.Header.Version)
		if !ok {
			r.Warnings = append(r.Warnings, types.Warning{
				Stage:   "cover",
				Message: fmt.Sprintf("frame %s: no JPEG or PNG signature within %d bytes", f.ID, magicScanWindow),
				Offset:  f.Offset,
			})
			return r
		}
		r.Cover = cover

	default:
		text, ok := decodeTextFrame(f.Body)
		if !ok {
			r.Warnings = append(r.Warnings, types.Warning{
				Stage:   "frame",
				Message: fmt.Sprintf("frame %s: undecodable text (encoding byte 0x%02x)", f.ID, f.Body[0]),
				Offset:  f.Offset,
			})
			return r
		}
		switch kind {
		case fieldTitle:
			r.Title = text
		case fieldArtist:
			r.Artist = text
		case fieldAlbum:
			r.Album = text
		}
	}

	r.found |= kind
	return r
}
