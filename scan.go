package trackmeta

import (
	"cmp"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// AudioExtensions lists the file extensions Scan picks up, without the dot.
var AudioExtensions = []string{"mp3", "flac", "wav", "ogg", "m4a", "aac", "wma"}

// Track is one entry of a scanned library.
type Track struct {
	// ID is the position in the sorted result, starting at 0
	ID int `json:"id"`

	Path     string `json:"path"`
	Filename string `json:"filename"`

	Metadata *TrackMetadata `json:"metadata"`
}

// Scan collects audio files from paths and reads each of them.
//
// Directories are walked recursively; unreadable entries are skipped.
// Files (given directly or found by the walk) are kept when their extension
// is in AudioExtensions, compared case-insensitively. Paths that do not exist
// are ignored.
//
// Tracks are sorted by lower-cased file name and numbered in that order.
// Files without an ID3v2 tag (FLAC, WAV and the like) get fallback metadata.
// Cancellation of ctx is the only error.
func Scan(ctx context.Context, paths []string, opts ...Option) ([]Track, error) {
	o := applyOptions(opts)

	var files []string
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		found, err := collect(ctx, p)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}

	files = lo.Uniq(lo.Filter(files, func(p string, _ int) bool {
		return IsAudioFile(p)
	}))

	slices.SortStableFunc(files, func(a, b string) int {
		return cmp.Compare(strings.ToLower(filepath.Base(a)), strings.ToLower(filepath.Base(b)))
	})

	o.logger.Debug("scan collected files", "count", len(files))

	metadata, err := readMany(ctx, files, o.concurrency, opts...)
	if err != nil {
		return nil, err
	}

	return lo.Map(files, func(p string, i int) Track {
		return Track{
			ID:       i,
			Path:     p,
			Filename: filepath.Base(p),
			Metadata: metadata[i],
		}
	}), nil
}

// IsAudioFile reports whether path has one of AudioExtensions.
func IsAudioFile(path string) bool {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	return ext != "" && slices.Contains(AudioExtensions, strings.ToLower(ext))
}

// collect returns path itself if it is a regular file, or every regular file
// below it if it is a directory.
func collect(ctx context.Context, path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil
	}
	if !info.IsDir() {
		if info.Mode().IsRegular() {
			return []string{path}, nil
		}
		return nil, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entry; keep walking
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.Type().IsRegular() {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}
