// Package trackmeta reads the display metadata of audio tracks: title,
// artist, album and embedded cover art from ID3v2 tags, plus an accent
// color sampled from the cover.
//
// # Quick Start
//
// Reading a file:
//
//	md, err := trackmeta.ReadFile(ctx, "song.mp3")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	fmt.Printf("%s - %s\n", md.Artist, md.Title)
//	if md.Accent != nil {
//		fmt.Println("accent:", md.Accent.Hex())
//	}
//
// Only the leading segment of a file is read (DefaultReadLimit, 512 KiB).
// ID3v2.2, 2.3 and 2.4 tags are walked; anything else yields the fallback
// record: the file name without extension as title and UnknownArtist.
//
// # Graceful Degradation
//
// A read never fails because of what is inside the file. Missing tags,
// unsupported versions, truncated frames and undecodable artwork produce
// fallback or partial metadata plus Warnings:
//
//	for _, w := range md.Warnings {
//		log.Printf("warning: %s", w)
//	}
//
// Errors are reserved for the file layer (a path that cannot be opened)
// and context cancellation.
//
// # Artwork
//
// The first APIC (PIC in v2.2) frame whose data starts with a JPEG or PNG
// signature becomes the Cover, provided the image decodes; artwork that
// fails to decode is dropped with a warning. Its accent color is the average of a sparse
// sample of the central half of the image:
//
//	if md.HasCover() {
//		os.WriteFile("cover"+md.Cover.Extension(), md.Cover.Data, 0o644)
//	}
//
// SampleColor computes the same average for any encoded image, returning
// White when the image cannot be decoded.
//
// # Libraries
//
// Scan walks directories for audio files and reads them concurrently:
//
//	tracks, err := trackmeta.Scan(ctx, []string{"/srv/music"})
//	for _, tr := range tracks {
//		fmt.Println(tr.ID, tr.Filename, tr.Metadata.Title)
//	}
//
// ReadMany does the same for an explicit list of files, preserving order.
package trackmeta
