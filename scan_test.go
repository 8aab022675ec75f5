package trackmeta_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/trackmeta"
	"github.com/simonhull/trackmeta/internal/id3/id3test"
)

func buildLibrary(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	files := map[string][]byte{
		"b-side.mp3":            id3test.New(3).Text("TIT2", 0, "B Side").Text("TPE1", 0, "Band").Bytes(),
		"Album/A-side.MP3":      id3test.New(4).Text("TIT2", 3, "A Side").Bytes(),
		"Album/Disc 2/c.flac":   []byte("fLaC\x00\x00\x00\x22"),
		"Album/cover.jpg":       id3test.SolidJPEG(4, 4, red),
		"notes.txt":             []byte("not audio"),
		"Album/Disc 2/DAWN.ogg": []byte("OggS"),
	}

	for name, data := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, data, 0o644))
	}

	return root
}

func TestScan_Directory(t *testing.T) {
	root := buildLibrary(t)

	tracks, err := trackmeta.Scan(context.Background(), []string{root}, trackmeta.WithConcurrency(2))
	require.NoError(t, err)

	names := lo.Map(tracks, func(tr trackmeta.Track, _ int) string { return tr.Filename })
	assert.Equal(t, []string{"A-side.MP3", "b-side.mp3", "c.flac", "DAWN.ogg"}, names)

	for i, tr := range tracks {
		assert.Equal(t, i, tr.ID)
		require.NotNil(t, tr.Metadata)
		assert.Equal(t, tr.Filename, filepath.Base(tr.Path))
	}

	assert.Equal(t, "A Side", tracks[0].Metadata.Title)
	assert.Equal(t, trackmeta.UnknownArtist, tracks[0].Metadata.Artist)
	assert.Equal(t, "Band", tracks[1].Metadata.Artist)
	assert.Equal(t, "c", tracks[2].Metadata.Title, "untagged files fall back to the file name")
}

func TestScan_MixedPaths(t *testing.T) {
	root := buildLibrary(t)

	paths := []string{
		filepath.Join(root, "b-side.mp3"),
		filepath.Join(root, "notes.txt"),
		filepath.Join(root, "does-not-exist.mp3"),
		filepath.Join(root, "Album", "Disc 2"),
		filepath.Join(root, "b-side.mp3"),
	}

	tracks, err := trackmeta.Scan(context.Background(), paths)
	require.NoError(t, err)

	names := lo.Map(tracks, func(tr trackmeta.Track, _ int) string { return tr.Filename })
	assert.Equal(t, []string{"b-side.mp3", "c.flac", "DAWN.ogg"}, names)
}

func TestScan_Empty(t *testing.T) {
	tracks, err := trackmeta.Scan(context.Background(), []string{t.TempDir()})
	require.NoError(t, err)
	assert.Empty(t, tracks)
}

func TestScan_Cancelled(t *testing.T) {
	root := buildLibrary(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := trackmeta.Scan(ctx, []string{root})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsAudioFile(t *testing.T) {
	tests := map[string]bool{
		"a.mp3":           true,
		"A.WMA":           true,
		"dir/x.m4a":       true,
		"song.aac":        true,
		"cover.jpg":       false,
		"mp3":             false,
		"trailing.":       false,
		"archive.mp3.zip": false,
	}

	for path, want := range tests {
		assert.Equal(t, want, trackmeta.IsAudioFile(path), path)
	}
}
