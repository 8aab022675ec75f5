package main

import (
	"fmt"
	"io"
	"os"

	binutil "github.com/simonhull/trackmeta/internal/binary"
	"github.com/simonhull/trackmeta/internal/id3"
)

// Prints the raw frame sequence of an ID3v2 tag, to see what the reader walks.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: frame-dump <file.mp3>")
		os.Exit(1)
	}

	f, err := os.Open(os.Args[1])
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	head := make([]byte, id3.HeaderSize)
	if _, err := f.ReadAt(head, 0); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	header, err := id3.ParseHeader(binutil.NewSafeReader(head, f.Name()))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	data := make([]byte, header.End())
	n, err := f.ReadAt(data, 0)
	if err != nil && err != io.EOF {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	dumpFrames(os.Stdout, data[:n], header, f.Name())
}

func dumpFrames(w io.Writer, data []byte, header id3.Header, name string) {
	fmt.Fprintf(w, "%s (size: %d, flags: 0x%02x)\n", header, header.Size, header.Flags)

	s := id3.NewFrameScanner(binutil.NewSafeReader(data, name), header)
	for s.Scan() {
		fr := s.Frame()
		fmt.Fprintf(w, "  %-4s (size: %d, offset: %d, flags: 0x%04x) %s\n",
			fr.ID, fr.Size, fr.Offset, fr.Flags, preview(fr))
	}

	if err := s.Err(); err != nil {
		fmt.Fprintf(w, "  ! %v\n", err)
		return
	}
	if rest := header.End() - s.Offset(); rest > 0 {
		fmt.Fprintf(w, "  padding (size: %d, offset: %d)\n", rest, s.Offset())
	}
}

// preview shows the first bytes of a body, printable ASCII as-is.
func preview(fr id3.Frame) string {
	const previewLen = 24

	b := fr.Body
	if len(b) > previewLen {
		b = b[:previewLen]
	}

	out := make([]byte, 0, len(b)+3)
	for _, c := range b {
		if c < 0x20 || c > 0x7E {
			c = '.'
		}
		out = append(out, c)
	}
	if len(fr.Body) > previewLen {
		out = append(out, "..."...)
	}
	return string(out)
}
