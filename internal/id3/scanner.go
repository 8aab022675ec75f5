package id3

import (
	"fmt"

	binutil "github.com/simonhull/trackmeta/internal/binary"
	"github.com/simonhull/trackmeta/internal/types"
)

// Frame represents a single ID3v2 frame
type Frame struct {
	ID     string // 3-character (v2.2) or 4-character frame ID
	Size   uint32 // Body size (excluding frame header)
	Flags  uint16 // Frame flags (always 0 for v2.2)
	Offset int64  // Offset of the frame header in the buffer

	// Body aliases the source buffer. Copy it before retaining.
	Body []byte
}

// FrameScanner walks the frame region of a tag one frame at a time.
//
// Scanning stops at the declared end of the tag (or the end of the buffer,
// whichever comes first), at the first zero-size frame, or at the first frame
// whose header or body does not fit in the buffer. Only the last case sets
// Err.
//
//	s := id3.NewFrameScanner(sr, header)
//	for s.Scan() {
//		f := s.Frame()
//		...
//	}
//	if err := s.Err(); err != nil {
//		...
//	}
type FrameScanner struct {
	sr     *binutil.SafeReader
	layout frameLayout
	offset int64
	limit  int64
	frame  Frame
	err    error
	done   bool
}

// NewFrameScanner returns a scanner positioned at the first frame after the header.
// A header with an unsupported version yields a scanner that produces no frames.
func NewFrameScanner(sr *binutil.SafeReader, header Header) *FrameScanner {
	layout, ok := layoutFor(header.Version)
	return &FrameScanner{
		sr:     sr,
		layout: layout,
		offset: HeaderSize,
		limit:  min(sr.Len(), header.End()),
		done:   !ok,
	}
}

// Scan advances to the next frame. It returns false when the walk is over.
func (s *FrameScanner) Scan() bool {
	if s.done {
		return false
	}
	if s.offset >= s.limit {
		s.done = true
		return false
	}

	hdr, err := s.sr.Slice(s.offset, s.layout.headerSize, "frame header")
	if err != nil {
		s.fail(err)
		return false
	}

	id, size, flags := s.layout.decode(hdr)

	// Zero size marks the start of padding
	if size == 0 {
		s.done = true
		return false
	}

	bodyStart := s.offset + int64(s.layout.headerSize)
	body, err := s.sr.Slice(bodyStart, int(size), "frame "+printableID(id)+" body")
	if err != nil {
		s.fail(&types.CorruptedFileError{
			Path:   s.sr.Name(),
			Reason: fmt.Sprintf("frame %s declares %d bytes, %d available", printableID(id), size, max(0, s.sr.Len()-bodyStart)),
			Offset: s.offset,
		})
		return false
	}

	s.frame = Frame{
		ID:     id,
		Size:   size,
		Flags:  flags,
		Offset: s.offset,
		Body:   body,
	}
	s.offset = bodyStart + int64(size)
	return true
}

// Frame returns the frame produced by the most recent call to Scan.
func (s *FrameScanner) Frame() Frame {
	return s.frame
}

// Offset returns the offset of the next frame header.
func (s *FrameScanner) Offset() int64 {
	return s.offset
}

// Err returns the structural fault that ended the walk, if any.
func (s *FrameScanner) Err() error {
	return s.err
}

func (s *FrameScanner) fail(err error) {
	s.err = err
	s.done = true
}

// printableID replaces non-printable bytes so garbage ids stay readable in messages.
func printableID(id string) string {
	b := []byte(id)
	for i, c := range b {
		if c < 0x20 || c > 0x7E {
			b[i] = '?'
		}
	}
	return string(b)
}
