package trackmeta

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/simonhull/trackmeta/internal/accent"
	"github.com/simonhull/trackmeta/internal/id3"
)

// Read reads the leading segment of r and returns the track's metadata.
//
// At most the configured read limit (DefaultReadLimit unless WithReadLimit
// is given) is read from offset 0. name is the fallback display name,
// typically a path or file name; its base name without extension becomes
// the title when the tag has none.
//
// Tag problems never fail a read: untagged input, unsupported versions,
// malformed frames and undecodable artwork degrade to fallback or partial
// metadata with Warnings. A short or failed ReadAt is treated the same way,
// using whatever bytes arrived. The only error is ctx's.
//
// Example:
//
//	f, _ := os.Open("song.mp3")
//	defer f.Close()
//	st, _ := f.Stat()
//	md, err := trackmeta.Read(ctx, f, st.Size(), f.Name())
func Read(ctx context.Context, r io.ReaderAt, size int64, name string, opts ...Option) (*TrackMetadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	o := applyOptions(opts)

	data, ioWarning := readHead(r, size, o.readLimit)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	md := o.build(data, name)
	if ioWarning != nil {
		md.Warnings = append([]Warning{*ioWarning}, md.Warnings...)
	}

	o.logWarnings(name, md.Warnings)
	return md, nil
}

// ReadBytes parses data, an in-memory leading segment of an audio file.
//
// The whole slice is parsed; the read limit does not apply. ReadBytes never
// fails. The result does not alias data.
func ReadBytes(data []byte, name string, opts ...Option) *TrackMetadata {
	o := applyOptions(opts)

	md := o.build(data, name)
	o.logWarnings(name, md.Warnings)
	return md
}

// ReadFile opens path and reads its leading segment.
//
// Errors come only from the file layer (open, stat, path is a directory)
// or from ctx. Everything inside the file degrades as described on Read.
//
// Example:
//
//	md, err := trackmeta.ReadFile(ctx, "song.mp3")
//	if err != nil {
//		return err
//	}
//	fmt.Printf("%s - %s\n", md.Artist, md.Title)
func ReadFile(ctx context.Context, path string, opts ...Option) (*TrackMetadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}
	if stat.IsDir() {
		return nil, &UnsupportedFormatError{
			Path:   path,
			Reason: "is a directory",
		}
	}

	return Read(ctx, f, stat.Size(), path, opts...)
}

// ReadMany reads multiple files concurrently.
//
// Files are read in parallel using up to runtime.NumCPU() goroutines.
// Results are returned in the same order as the input paths.
//
// A file that cannot be opened yields its fallback metadata with an "io"
// warning, so one bad path does not hide the rest. Only cancellation of ctx
// fails the batch.
//
// Example:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
//	defer cancel()
//
//	tracks, err := trackmeta.ReadMany(ctx, paths...)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for i, md := range tracks {
//		fmt.Printf("%s: %s - %s\n", paths[i], md.Artist, md.Title)
//	}
func ReadMany(ctx context.Context, paths ...string) ([]*TrackMetadata, error) {
	return readMany(ctx, paths, defaultOptions().concurrency)
}

func readMany(ctx context.Context, paths []string, limit int, opts ...Option) ([]*TrackMetadata, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	results := make([]*TrackMetadata, len(paths))

	for i, path := range paths {
		g.Go(func() error {
			md, err := ReadFile(ctx, path, opts...)
			switch {
			case err == nil:
				results[i] = md
			case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
				return err
			default:
				results[i] = fallback(path)
				results[i].Warnings = []Warning{{
					Stage:   "io",
					Message: err.Error(),
				}}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// SampleColor returns the average color of the central crop of an encoded
// image, or White if it cannot be decoded.
func SampleColor(data []byte) RGB {
	rgb, err := accent.Sample(data)
	if err != nil {
		return White()
	}
	return rgb
}

// FallbackTitle derives a display title from a path or file name: the last
// path element (split on '/' and '\') without its extension.
//
//	FallbackTitle("music/01 Intro.mp3") // "01 Intro"
//	FallbackTitle("archive.tar.gz")     // "archive.tar"
func FallbackTitle(name string) string {
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	if name == "" {
		return "Unknown"
	}

	// Only strip when something follows the dot
	if i := strings.LastIndexByte(name, '.'); i >= 0 && i < len(name)-1 {
		name = name[:i]
	}
	return name
}

// fallback returns the metadata shown for a track without a usable tag.
func fallback(name string) *TrackMetadata {
	return &TrackMetadata{
		Title:  FallbackTitle(name),
		Artist: UnknownArtist,
	}
}

// build parses data and assembles a fresh TrackMetadata.
func (o *readOptions) build(data []byte, name string) *TrackMetadata {
	res := id3.Parse(data, name)

	md := fallback(name)
	md.Album = res.Album
	md.Warnings = res.Warnings

	if res.HasTitle() {
		md.Title = res.Title
	}
	if res.HasArtist() {
		md.Artist = res.Artist
	}

	if res.Cover == nil {
		return md
	}

	// A cover that fails to decode is dropped along with its accent
	if o.accent {
		rgb, err := accent.Sample(res.Cover.Data)
		if err != nil {
			md.Warnings = append(md.Warnings, Warning{
				Stage:   "accent",
				Message: err.Error(),
			})
			return md
		}
		md.Accent = &rgb
	}

	if o.blurHash {
		hash, err := accent.BlurHash(res.Cover.Data)
		if err != nil {
			md.Warnings = append(md.Warnings, Warning{
				Stage:   "accent",
				Message: "blurhash: " + err.Error(),
			})
			md.Accent = nil
			return md
		}
		md.BlurHash = hash
	}

	md.Cover = res.Cover
	return md
}

// readHead reads up to limit leading bytes of r. A failed read keeps the
// bytes that arrived and reports an "io" warning.
func readHead(r io.ReaderAt, size, limit int64) ([]byte, *Warning) {
	n := max(0, min(size, limit))
	buf := make([]byte, n)

	read, err := r.ReadAt(buf, 0)
	if err != nil && !errors.Is(err, io.EOF) {
		return buf[:read], &Warning{
			Stage:   "io",
			Message: fmt.Sprintf("read leading %d bytes: %v", n, err),
		}
	}

	return buf[:read], nil
}

func (o *readOptions) logWarnings(name string, warnings []Warning) {
	for _, w := range warnings {
		o.logger.Debug("track read degraded",
			slog.String("name", name),
			slog.String("stage", w.Stage),
			slog.String("message", w.Message),
			slog.Int64("offset", w.Offset),
		)
	}
}
