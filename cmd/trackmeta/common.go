package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/GiGurra/boa/pkg/boa"

	"github.com/simonhull/trackmeta"
	"github.com/simonhull/trackmeta/internal/config"
)

func defaultParamEnricher() boa.ParamEnricher {
	return boa.ParamEnricherCombine(
		boa.ParamEnricherBool,
		boa.ParamEnricherName,
		boa.ParamEnricherShort,
	)
}

// setup resolves configuration and builds the logger every command uses.
func setup(flags config.Flags) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(flags)
	if err != nil {
		return nil, nil, err
	}
	return cfg, cfg.Logger(os.Stderr), nil
}

// fail reports err for the named command and exits.
func fail(name string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
	os.Exit(1)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printTrack writes the human-readable block for one track.
func printTrack(w io.Writer, path string, md *trackmeta.TrackMetadata) {
	fmt.Fprintln(w, path)
	fmt.Fprintf(w, "  Title:    %s\n", md.Title)
	fmt.Fprintf(w, "  Artist:   %s\n", md.Artist)
	if md.Album != "" {
		fmt.Fprintf(w, "  Album:    %s\n", md.Album)
	}
	if md.HasCover() {
		fmt.Fprintf(w, "  Cover:    %s\n", md.Cover)
	}
	if md.Accent != nil {
		fmt.Fprintf(w, "  Accent:   %s\n", md.Accent.Hex())
	}
	if md.BlurHash != "" {
		fmt.Fprintf(w, "  BlurHash: %s\n", md.BlurHash)
	}
	for _, warn := range md.Warnings {
		fmt.Fprintf(w, "  Warning:  %s\n", warn)
	}
}

// trackLine is the one-line form used by scan and watch.
func trackLine(md *trackmeta.TrackMetadata) string {
	var b strings.Builder
	b.WriteString(md.Artist)
	b.WriteString(" - ")
	b.WriteString(md.Title)
	if md.Accent != nil {
		b.WriteString(" [")
		b.WriteString(md.Accent.Hex())
		b.WriteString("]")
	}
	return b.String()
}
