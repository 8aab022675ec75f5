package binary

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Largest values the packed integer encodings can carry.
const (
	MaxUint24    = 1<<24 - 1
	MaxSynchsafe = 1<<28 - 1
)

// ErrOverflow is returned when a value does not fit its encoding.
var ErrOverflow = errors.New("value does not fit encoding")

// SafeWriter wraps io.Writer with position tracking.
//
// It is used to assemble synthetic tags; the reader side never writes.
type SafeWriter struct {
	w      io.Writer
	offset int64
}

// NewSafeWriter creates a new SafeWriter.
func NewSafeWriter(w io.Writer) *SafeWriter {
	return &SafeWriter{
		w:      w,
		offset: 0,
	}
}

// Offset returns the current position (number of bytes written).
func (sw *SafeWriter) Offset() int64 {
	return sw.offset
}

// WriteBytes writes raw bytes to the underlying writer.
func (sw *SafeWriter) WriteBytes(b []byte) error {
	n, err := sw.w.Write(b)
	sw.offset += int64(n)
	return err
}

// WriteString writes a string as bytes to the underlying writer.
func (sw *SafeWriter) WriteString(s string) error {
	return sw.WriteBytes([]byte(s))
}

// Write writes a value of type T in big-endian byte order.
// T must be uint8, uint16, uint32, or uint64.
func Write[T uint8 | uint16 | uint32 | uint64](sw *SafeWriter, val T) error {
	var buf []byte

	var zero T
	switch any(zero).(type) {
	case uint8:
		buf = []byte{byte(val)}
	case uint16:
		buf = make([]byte, 2)
		binary.BigEndian.PutUint16(buf, uint16(val))
	case uint32:
		buf = make([]byte, 4)
		binary.BigEndian.PutUint32(buf, uint32(val))
	case uint64:
		buf = make([]byte, 8)
		binary.BigEndian.PutUint64(buf, uint64(val))
	}

	return sw.WriteBytes(buf)
}

// WriteUint24 writes v as a 3-byte big-endian integer.
func (sw *SafeWriter) WriteUint24(v uint32) error {
	if v > MaxUint24 {
		return fmt.Errorf("uint24 %d: %w", v, ErrOverflow)
	}
	return sw.WriteBytes([]byte{byte(v >> 16), byte(v >> 8), byte(v)})
}

// WriteSynchsafe writes v as a 28-bit synchsafe integer.
func (sw *SafeWriter) WriteSynchsafe(v uint32) error {
	if v > MaxSynchsafe {
		return fmt.Errorf("synchsafe %d: %w", v, ErrOverflow)
	}
	return sw.WriteBytes(EncodeSynchsafe(v))
}

// EncodeSynchsafe returns the 4-byte synchsafe form of v.
// Bits above 28 are dropped.
func EncodeSynchsafe(v uint32) []byte {
	return []byte{
		byte(v>>21) & 0x7F,
		byte(v>>14) & 0x7F,
		byte(v>>7) & 0x7F,
		byte(v) & 0x7F,
	}
}
