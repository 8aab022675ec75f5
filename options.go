package trackmeta

import (
	"log/slog"
	"runtime"
)

// DefaultReadLimit is how many leading bytes of a file are handed to the
// tag reader. Tags larger than this are walked up to the limit.
const DefaultReadLimit = 512 * 1024

// Option configures a read.
//
// Options use the functional options pattern:
//
//	md, err := trackmeta.ReadFile(ctx, "song.mp3",
//	    trackmeta.WithReadLimit(2<<20),
//	    trackmeta.WithBlurHash(),
//	)
type Option func(*readOptions)

// readOptions holds configuration for a read.
type readOptions struct {
	readLimit   int64        // Leading bytes read from a file
	accent      bool         // Sample the cover for an accent color
	blurHash    bool         // Encode a BlurHash of the cover
	logger      *slog.Logger // Receives parse degradations at Debug
	concurrency int          // Files read in parallel by Scan
}

// defaultOptions returns the default configuration.
func defaultOptions() *readOptions {
	return &readOptions{
		readLimit:   DefaultReadLimit,
		accent:      true,
		blurHash:    false,
		logger:      slog.New(slog.DiscardHandler),
		concurrency: runtime.NumCPU(),
	}
}

func applyOptions(opts []Option) *readOptions {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithReadLimit sets how many leading bytes of a file are read.
//
// The default is DefaultReadLimit. Values below the 10-byte tag header
// are ignored.
func WithReadLimit(n int64) Option {
	return func(o *readOptions) {
		if n >= 10 {
			o.readLimit = n
		}
	}
}

// WithoutAccent skips accent sampling. The cover is then returned without
// being decoded, so an image that would fail to decode is kept.
func WithoutAccent() Option {
	return func(o *readOptions) {
		o.accent = false
	}
}

// WithBlurHash computes a BlurHash placeholder for the cover.
//
// Off by default: decoding and scaling the cover roughly doubles the cost
// of a read with artwork.
func WithBlurHash() Option {
	return func(o *readOptions) {
		o.blurHash = true
	}
}

// WithLogger routes diagnostics to l. Each read logs warnings at Debug.
//
// By default nothing is logged.
func WithLogger(l *slog.Logger) Option {
	return func(o *readOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithConcurrency bounds how many files Scan reads at once.
//
// The default is runtime.NumCPU(), which ReadMany always uses.
// Values below 1 are ignored.
func WithConcurrency(n int) Option {
	return func(o *readOptions) {
		if n >= 1 {
			o.concurrency = n
		}
	}
}
