package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/simonhull/trackmeta"
	"github.com/simonhull/trackmeta/internal/config"
)

type ScanParams struct {
	Paths       []string `pos:"true" optional:"true" help:"Directories or files to scan (defaults to current directory)." default:"."`
	JSON        bool     `short:"j" help:"Print JSON instead of text." default:"false"`
	Concurrency string   `short:"c" optional:"true" help:"Files read in parallel (default: number of CPUs)."`
	LogLevel    string   `optional:"true" help:"Log level (debug, info, warn, error)."`
	LogFormat   string   `optional:"true" help:"Log format (pretty, json)."`
	ReadLimit   string   `optional:"true" help:"Leading bytes read per file, e.g. 512K."`
	EnvFile     string   `optional:"true" help:"Path to .env file." default:".env"`
}

func ScanCmd() *cobra.Command {
	return boa.CmdT[ScanParams]{
		Use:         "scan [flags] [paths...]",
		Short:       "List the audio files below directories",
		ParamEnrich: defaultParamEnricher(),
		RunFunc: func(params *ScanParams, cmd *cobra.Command, args []string) {
			if err := runScan(cmd.Context(), params, os.Stdout); err != nil {
				fail("scan", err)
			}
		},
	}.ToCobra()
}

func runScan(ctx context.Context, params *ScanParams, stdout io.Writer) error {
	cfg, log, err := setup(config.Flags{
		LogLevel:    params.LogLevel,
		LogFormat:   params.LogFormat,
		ReadLimit:   params.ReadLimit,
		Concurrency: params.Concurrency,
		EnvFile:     params.EnvFile,
	})
	if err != nil {
		return err
	}

	paths := params.Paths
	if len(paths) == 0 {
		paths = []string{"."}
	}

	tracks, err := trackmeta.Scan(ctx, paths, cfg.ReadOptions(log)...)
	if err != nil {
		return err
	}

	if params.JSON {
		return writeJSON(stdout, tracks)
	}

	for _, tr := range tracks {
		fmt.Fprintf(stdout, "%4d  %s  (%s)\n", tr.ID, trackLine(tr.Metadata), tr.Filename)
	}

	withCover := lo.CountBy(tracks, func(tr trackmeta.Track) bool {
		return tr.Metadata.HasCover()
	})
	log.Info("scan complete", "tracks", len(tracks), "with_cover", withCover)

	return nil
}
