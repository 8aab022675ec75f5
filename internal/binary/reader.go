// Package binary provides bounds-checked reading primitives over an in-memory tag segment.
package binary

import (
	"encoding/binary"

	"github.com/simonhull/trackmeta/internal/types"
)

// SafeReader wraps a byte slice with bounds checking and helpful error messages.
//
// Every read returns a sub-slice of the underlying buffer; nothing is copied.
type SafeReader struct {
	data []byte
	name string
}

// NewSafeReader creates a new SafeReader over data.
func NewSafeReader(data []byte, name string) *SafeReader {
	return &SafeReader{
		data: data,
		name: name,
	}
}

// Name returns the display name associated with this reader.
func (sr *SafeReader) Name() string {
	return sr.name
}

// Len returns the number of bytes available.
func (sr *SafeReader) Len() int64 {
	return int64(len(sr.data))
}

// Slice returns n bytes starting at off without copying.
func (sr *SafeReader) Slice(off int64, n int, what string) ([]byte, error) {
	size := int64(len(sr.data))
	if off < 0 || off >= size || n < 0 || off+int64(n) > size {
		return nil, &types.OutOfBoundsError{
			Path:   sr.name,
			What:   what,
			Offset: off,
			Length: n,
			Size:   size,
		}
	}
	return sr.data[off : off+int64(n)], nil
}

// Tail returns everything from off up to limit (exclusive), clamped to the buffer.
func (sr *SafeReader) Tail(off, limit int64, what string) ([]byte, error) {
	limit = min(limit, int64(len(sr.data)))
	if off < 0 || off > limit {
		return nil, &types.OutOfBoundsError{
			Path:   sr.name,
			What:   what,
			Offset: off,
			Size:   int64(len(sr.data)),
		}
	}
	return sr.data[off:limit], nil
}

// Read reads a big-endian value of type T from the given offset.
// T must be uint8, uint16, uint32, or uint64.
func Read[T uint8 | uint16 | uint32 | uint64](sr *SafeReader, off int64, what string) (T, error) {
	var zero T

	buf, err := sr.Slice(off, sizeOf[T](), what)
	if err != nil {
		return zero, err
	}

	// ID3v2 is big-endian throughout
	var val T
	switch any(zero).(type) {
	case uint8:
		val = T(buf[0])
	case uint16:
		val = T(binary.BigEndian.Uint16(buf))
	case uint32:
		val = T(binary.BigEndian.Uint32(buf))
	case uint64:
		val = T(binary.BigEndian.Uint64(buf))
	}

	return val, nil
}

// Uint24 reads a 3-byte big-endian integer (ID3v2.2 frame sizes).
func Uint24(b []byte) uint32 {
	if len(b) != 3 {
		return 0
	}
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
}

// Uint32 reads a plain 4-byte big-endian integer (ID3v2.3 frame sizes).
func Uint32(b []byte) uint32 {
	if len(b) != 4 {
		return 0
	}
	return binary.BigEndian.Uint32(b)
}

// Synchsafe decodes a 28-bit synchsafe integer (7 bits per byte).
// The high bit of every byte is ignored.
func Synchsafe(b []byte) uint32 {
	if len(b) != 4 {
		return 0
	}
	return uint32(b[0]&0x7F)<<21 |
		uint32(b[1]&0x7F)<<14 |
		uint32(b[2]&0x7F)<<7 |
		uint32(b[3]&0x7F)
}

func sizeOf[T uint8 | uint16 | uint32 | uint64]() int {
	var zero T
	switch any(zero).(type) {
	case uint8:
		return 1
	case uint16:
		return 2
	case uint32:
		return 4
	default:
		return 8
	}
}

// Reader provides sequential reading with automatic offset tracking.
type Reader struct {
	*SafeReader
	offset int64
}

// NewReader creates a new Reader starting at the given offset.
func NewReader(sr *SafeReader, offset int64) *Reader {
	return &Reader{
		SafeReader: sr,
		offset:     offset,
	}
}

// ReadValue reads a numeric value and advances the offset.
func ReadValue[T uint8 | uint16 | uint32 | uint64](r *Reader, what string) (T, error) {
	val, err := Read[T](r.SafeReader, r.offset, what)
	if err != nil {
		var zero T
		return zero, err
	}

	r.offset += int64(sizeOf[T]())
	return val, nil
}

// ReadBytes returns the next n bytes and advances the offset.
func (r *Reader) ReadBytes(n int, what string) ([]byte, error) {
	b, err := r.SafeReader.Slice(r.offset, n, what)
	if err != nil {
		return nil, err
	}

	r.offset += int64(n)
	return b, nil
}

// ReadString reads a string of the given length and advances the offset.
func (r *Reader) ReadString(length int, what string) (string, error) {
	b, err := r.ReadBytes(length, what)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Skip advances the offset by n bytes.
func (r *Reader) Skip(n int64) {
	r.offset += n
}

// Offset returns the current offset.
func (r *Reader) Offset() int64 {
	return r.offset
}

// ChainReader allows chaining multiple reads with deferred error checking.
// This avoids repetitive "if err != nil" checks.
type ChainReader struct {
	*Reader
	err error
}

// NewChainReader creates a new ChainReader.
func NewChainReader(r *Reader) *ChainReader {
	return &ChainReader{Reader: r}
}

// ReadChained reads a value with deferred error checking.
// If a previous read failed, returns zero value without attempting read.
func ReadChained[T uint8 | uint16 | uint32 | uint64](cr *ChainReader, what string) T {
	if cr.err != nil {
		var zero T
		return zero
	}

	val, err := ReadValue[T](cr.Reader, what)
	if err != nil {
		cr.err = err
		var zero T
		return zero
	}

	return val
}

// Bytes reads n raw bytes, accumulating any error.
func (cr *ChainReader) Bytes(n int, what string) []byte {
	if cr.err != nil {
		return nil
	}

	b, err := cr.Reader.ReadBytes(n, what)
	if err != nil {
		cr.err = err
		return nil
	}

	return b
}

// String reads a string, accumulating any error.
func (cr *ChainReader) String(length int, what string) string {
	if cr.err != nil {
		return ""
	}

	val, err := cr.Reader.ReadString(length, what)
	if err != nil {
		cr.err = err
		return ""
	}

	return val
}

// Error returns the accumulated error, if any.
func (cr *ChainReader) Error() error {
	return cr.err
}
