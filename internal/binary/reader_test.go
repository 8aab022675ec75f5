package binary

import (
	"encoding/binary"
	"errors"
	"strings"
	"testing"

	"github.com/simonhull/trackmeta/internal/types"
)

func TestSafeReader_Slice_Success(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04}
	sr := NewSafeReader(data, "test.mp3")

	buf, err := sr.Slice(0, 2, "test read")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if buf[0] != 0x01 || buf[1] != 0x02 {
		t.Errorf("expected [0x01, 0x02], got [0x%02x, 0x%02x]", buf[0], buf[1])
	}
}

func TestSafeReader_Slice_ZeroCopy(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04}
	sr := NewSafeReader(data, "test.mp3")

	buf, err := sr.Slice(1, 2, "view")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data[1] = 0xAA
	if buf[0] != 0xAA {
		t.Errorf("expected slice to alias the source buffer, got 0x%02x", buf[0])
	}
}

func TestSafeReader_Slice_OutOfBounds(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04}
	sr := NewSafeReader(data, "test.mp3")

	tests := []struct {
		name string
		off  int64
		n    int
	}{
		{"offset beyond end", 10, 2},
		{"read past end", 3, 2},
		{"negative offset", -1, 1},
		{"negative length", 0, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sr.Slice(tt.off, tt.n, "out of bounds read")
			if err == nil {
				t.Fatal("expected error, got nil")
			}

			var oob *types.OutOfBoundsError
			if !errors.As(err, &oob) {
				t.Fatalf("expected *OutOfBoundsError, got %T", err)
			}

			errMsg := err.Error()
			if !strings.Contains(errMsg, "test.mp3") {
				t.Errorf("error should contain filename: %v", errMsg)
			}
			if !strings.Contains(errMsg, "out of bounds read") {
				t.Errorf("error should contain context: %v", errMsg)
			}
		})
	}
}

func TestSafeReader_Tail(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04, 0x05}
	sr := NewSafeReader(data, "test.mp3")

	got, err := sr.Tail(2, 100, "tail")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 || got[0] != 0x03 {
		t.Errorf("expected clamped tail [03 04 05], got % x", got)
	}

	got, err = sr.Tail(1, 3, "tail")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 bytes, got %d", len(got))
	}

	if _, err := sr.Tail(6, 100, "tail"); err == nil {
		t.Error("expected error for offset beyond buffer")
	}
}

func TestRead_Uint8(t *testing.T) {
	sr := NewSafeReader([]byte{0x42}, "test.mp3")

	val, err := Read[uint8](sr, 0, "test uint8")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if val != 0x42 {
		t.Errorf("expected 0x42, got 0x%02x", val)
	}
}

func TestRead_Uint16(t *testing.T) {
	data := make([]byte, 2)
	binary.BigEndian.PutUint16(data, 0x1234)
	sr := NewSafeReader(data, "test.mp3")

	val, err := Read[uint16](sr, 0, "test uint16")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if val != 0x1234 {
		t.Errorf("expected 0x1234, got 0x%04x", val)
	}
}

func TestRead_Uint32(t *testing.T) {
	data := make([]byte, 4)
	binary.BigEndian.PutUint32(data, 0x12345678)
	sr := NewSafeReader(data, "test.mp3")

	val, err := Read[uint32](sr, 0, "test uint32")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if val != 0x12345678 {
		t.Errorf("expected 0x12345678, got 0x%08x", val)
	}
}

func TestRead_Uint64(t *testing.T) {
	data := make([]byte, 8)
	binary.BigEndian.PutUint64(data, 0x123456789ABCDEF0)
	sr := NewSafeReader(data, "test.mp3")

	val, err := Read[uint64](sr, 0, "test uint64")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if val != 0x123456789ABCDEF0 {
		t.Errorf("expected 0x123456789ABCDEF0, got 0x%016x", val)
	}
}

func TestSizeDecoders(t *testing.T) {
	tests := []struct {
		name   string
		decode func([]byte) uint32
		input  []byte
		want   uint32
	}{
		{"uint24", Uint24, []byte{0x01, 0x02, 0x03}, 0x010203},
		{"uint24 wrong length", Uint24, []byte{0x01, 0x02}, 0},
		{"uint32", Uint32, []byte{0x00, 0x00, 0x01, 0x00}, 256},
		{"uint32 wrong length", Uint32, []byte{0x01}, 0},
		{"synchsafe 257", Synchsafe, []byte{0x00, 0x00, 0x02, 0x01}, 257},
		{"synchsafe max", Synchsafe, []byte{0x7F, 0x7F, 0x7F, 0x7F}, 0x0FFFFFFF},
		{"synchsafe ignores high bit", Synchsafe, []byte{0x80, 0x80, 0x81, 0x80}, 128},
		{"synchsafe wrong length", Synchsafe, []byte{0x00, 0x00, 0x01}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.decode(tt.input); got != tt.want {
				t.Errorf("decode(% x) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestReader_Sequential(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}
	sr := NewSafeReader(data, "test.mp3")
	r := NewReader(sr, 0)

	val1, err := ReadValue[uint8](r, "first byte")
	if err != nil {
		t.Fatalf("read 1 failed: %v", err)
	}
	if val1 != 0x01 {
		t.Errorf("expected 0x01, got 0x%02x", val1)
	}

	val2, err := ReadValue[uint16](r, "second word")
	if err != nil {
		t.Fatalf("read 2 failed: %v", err)
	}
	expected := binary.BigEndian.Uint16([]byte{0x02, 0x03})
	if val2 != expected {
		t.Errorf("expected 0x%04x, got 0x%04x", expected, val2)
	}

	// Verify offset advanced correctly
	if r.Offset() != 3 {
		t.Errorf("expected offset 3, got %d", r.Offset())
	}
}

func TestReader_Skip(t *testing.T) {
	sr := NewSafeReader(make([]byte, 100), "test.mp3")
	r := NewReader(sr, 10)

	if r.Offset() != 10 {
		t.Errorf("expected initial offset 10, got %d", r.Offset())
	}

	r.Skip(20)
	if r.Offset() != 30 {
		t.Errorf("expected offset 30 after skip, got %d", r.Offset())
	}
}

func TestReader_ReadString(t *testing.T) {
	sr := NewSafeReader([]byte("TIT2TPE1"), "test.mp3")
	r := NewReader(sr, 0)

	str, err := r.ReadString(4, "frame id")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if str != "TIT2" {
		t.Errorf("expected 'TIT2', got '%s'", str)
	}

	if r.Offset() != 4 {
		t.Errorf("expected offset 4, got %d", r.Offset())
	}
}

func TestChainReader_Success(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04}
	sr := NewSafeReader(data, "test.mp3")
	cr := NewChainReader(NewReader(sr, 0))

	v1 := ReadChained[uint8](cr, "first")
	v2 := ReadChained[uint8](cr, "second")
	rest := cr.Bytes(2, "rest")

	if err := cr.Error(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if v1 != 0x01 || v2 != 0x02 || len(rest) != 2 || rest[1] != 0x04 {
		t.Errorf("unexpected values: %02x %02x % x", v1, v2, rest)
	}
}

func TestChainReader_ErrorAccumulation(t *testing.T) {
	sr := NewSafeReader([]byte{0x01, 0x02}, "test.mp3")
	cr := NewChainReader(NewReader(sr, 0))

	_ = ReadChained[uint8](cr, "first")  // OK
	_ = ReadChained[uint8](cr, "second") // OK
	_ = ReadChained[uint8](cr, "third")  // Error - out of bounds

	if cr.Error() == nil {
		t.Fatal("expected error, got nil")
	}

	first := cr.Error()
	_ = cr.String(1, "fourth")
	if cr.Error() != first {
		t.Fatal("first error should persist")
	}
}

func BenchmarkRead_Uint32(b *testing.B) {
	data := make([]byte, 1024*1024) // 1MB
	for i := 0; i < len(data); i += 4 {
		binary.BigEndian.PutUint32(data[i:], uint32(i))
	}
	sr := NewSafeReader(data, "bench.mp3")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		offset := int64((i % (len(data) / 4)) * 4)
		_, _ = Read[uint32](sr, offset, "benchmark")
	}
}
