package binary

import (
	"bytes"
	"errors"
	"testing"
)

func TestSafeWriter_WriteUint32BE(t *testing.T) {
	buf := &bytes.Buffer{}
	sw := NewSafeWriter(buf)

	err := Write[uint32](sw, 0x12345678)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []byte{0x12, 0x34, 0x56, 0x78}
	if !bytes.Equal(buf.Bytes(), expected) {
		t.Errorf("expected %v, got %v", expected, buf.Bytes())
	}
}

func TestSafeWriter_Offset(t *testing.T) {
	buf := &bytes.Buffer{}
	sw := NewSafeWriter(buf)

	if sw.Offset() != 0 {
		t.Errorf("expected initial offset 0, got %d", sw.Offset())
	}

	if err := Write[uint8](sw, 0x01); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sw.Offset() != 1 {
		t.Errorf("expected offset 1 after writing uint8, got %d", sw.Offset())
	}

	if err := Write[uint16](sw, 0x0203); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sw.Offset() != 3 {
		t.Errorf("expected offset 3 after writing uint16, got %d", sw.Offset())
	}

	if err := sw.WriteUint24(0x040506); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sw.Offset() != 6 {
		t.Errorf("expected offset 6 after writing uint24, got %d", sw.Offset())
	}

	if err := sw.WriteSynchsafe(1000); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sw.Offset() != 10 {
		t.Errorf("expected offset 10 after writing synchsafe, got %d", sw.Offset())
	}
}

func TestSafeWriter_WriteString(t *testing.T) {
	buf := &bytes.Buffer{}
	sw := NewSafeWriter(buf)

	if err := sw.WriteString("ID3"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !bytes.Equal(buf.Bytes(), []byte("ID3")) {
		t.Errorf("expected %v, got %v", []byte("ID3"), buf.Bytes())
	}
}

func TestSafeWriter_WriteUint24(t *testing.T) {
	buf := &bytes.Buffer{}
	sw := NewSafeWriter(buf)

	if err := sw.WriteUint24(0x00ABCDEF); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []byte{0xAB, 0xCD, 0xEF}
	if !bytes.Equal(buf.Bytes(), expected) {
		t.Errorf("expected %v, got %v", expected, buf.Bytes())
	}
	if got := Uint24(buf.Bytes()); got != 0xABCDEF {
		t.Errorf("round trip: got 0x%06x", got)
	}
}

func TestEncodeSynchsafe(t *testing.T) {
	tests := []struct {
		value    uint32
		expected []byte
	}{
		{0, []byte{0x00, 0x00, 0x00, 0x00}},
		{127, []byte{0x00, 0x00, 0x00, 0x7F}},
		{128, []byte{0x00, 0x00, 0x01, 0x00}},
		{257, []byte{0x00, 0x00, 0x02, 0x01}},
		{0x0FFFFFFF, []byte{0x7F, 0x7F, 0x7F, 0x7F}},
	}

	for _, tt := range tests {
		got := EncodeSynchsafe(tt.value)
		if !bytes.Equal(got, tt.expected) {
			t.Errorf("EncodeSynchsafe(%d) = % x, want % x", tt.value, got, tt.expected)
		}
		for i, b := range got {
			if b&0x80 != 0 {
				t.Errorf("EncodeSynchsafe(%d): byte %d has high bit set", tt.value, i)
			}
		}
		if back := Synchsafe(got); back != tt.value {
			t.Errorf("Synchsafe(EncodeSynchsafe(%d)) = %d", tt.value, back)
		}
	}
}

func TestSafeWriter_Overflow(t *testing.T) {
	tests := []struct {
		name  string
		write func(*SafeWriter) error
	}{
		{"uint24", func(sw *SafeWriter) error { return sw.WriteUint24(MaxUint24 + 1) }},
		{"synchsafe", func(sw *SafeWriter) error { return sw.WriteSynchsafe(MaxSynchsafe + 1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			sw := NewSafeWriter(buf)

			err := tt.write(sw)
			if !errors.Is(err, ErrOverflow) {
				t.Fatalf("error = %v, want ErrOverflow", err)
			}
			if buf.Len() != 0 || sw.Offset() != 0 {
				t.Errorf("wrote %d bytes on overflow", buf.Len())
			}
		})
	}

	sw := NewSafeWriter(&bytes.Buffer{})
	if err := sw.WriteUint24(MaxUint24); err != nil {
		t.Errorf("WriteUint24(MaxUint24) error = %v", err)
	}
	if err := sw.WriteSynchsafe(MaxSynchsafe); err != nil {
		t.Errorf("WriteSynchsafe(MaxSynchsafe) error = %v", err)
	}
}
