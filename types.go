package trackmeta

import (
	"github.com/simonhull/trackmeta/internal/types"
)

// TrackMetadata is an alias to types.TrackMetadata.
// Re-exporting from internal/types to keep one definition across packages.
type TrackMetadata = types.TrackMetadata

// Cover is an alias to types.Cover.
type Cover = types.Cover

// RGB is an alias to types.RGB.
type RGB = types.RGB

// Warning is an alias to types.Warning.
type Warning = types.Warning

// OutOfBoundsError is an alias to types.OutOfBoundsError.
type OutOfBoundsError = types.OutOfBoundsError

// CorruptedFileError is an alias to types.CorruptedFileError.
type CorruptedFileError = types.CorruptedFileError

// UnsupportedFormatError is an alias to types.UnsupportedFormatError.
type UnsupportedFormatError = types.UnsupportedFormatError

// UnknownArtist is the artist reported when a track has no artist frame.
const UnknownArtist = types.UnknownArtist

// White returns the accent SampleColor falls back to.
func White() RGB {
	return types.White()
}
