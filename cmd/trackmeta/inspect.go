package main

import (
	"context"
	"io"
	"os"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/simonhull/trackmeta"
	"github.com/simonhull/trackmeta/internal/config"
)

type InspectParams struct {
	Files     []string `pos:"true" help:"Audio files to inspect."`
	JSON      bool     `short:"j" help:"Print JSON instead of text." default:"false"`
	BlurHash  bool     `short:"b" help:"Also compute a BlurHash of the cover." default:"false"`
	LogLevel  string   `optional:"true" help:"Log level (debug, info, warn, error)."`
	LogFormat string   `optional:"true" help:"Log format (pretty, json)."`
	ReadLimit string   `optional:"true" help:"Leading bytes read per file, e.g. 512K."`
	EnvFile   string   `optional:"true" help:"Path to .env file." default:".env"`
}

func InspectCmd() *cobra.Command {
	return boa.CmdT[InspectParams]{
		Use:         "inspect [flags] files...",
		Short:       "Print the metadata of audio files",
		ParamEnrich: defaultParamEnricher(),
		RunFunc: func(params *InspectParams, cmd *cobra.Command, args []string) {
			if err := runInspect(cmd.Context(), params, os.Stdout); err != nil {
				fail("inspect", err)
			}
		},
	}.ToCobra()
}

// inspectResult is the JSON form of one inspected file.
type inspectResult struct {
	Path string `json:"path"`
	*trackmeta.TrackMetadata
	Warnings []string `json:"warnings,omitempty"`
}

func runInspect(ctx context.Context, params *InspectParams, stdout io.Writer) error {
	cfg, log, err := setup(config.Flags{
		LogLevel:  params.LogLevel,
		LogFormat: params.LogFormat,
		ReadLimit: params.ReadLimit,
		EnvFile:   params.EnvFile,
	})
	if err != nil {
		return err
	}

	opts := cfg.ReadOptions(log)
	if params.BlurHash {
		opts = append(opts, trackmeta.WithBlurHash())
	}

	results := make([]inspectResult, 0, len(params.Files))
	for _, path := range params.Files {
		md, err := trackmeta.ReadFile(ctx, path, opts...)
		if err != nil {
			if ctx.Err() != nil {
				return err
			}
			log.Error("cannot read file", "path", path, "error", err)
			continue
		}

		if !params.JSON {
			printTrack(stdout, path, md)
			continue
		}
		results = append(results, inspectResult{
			Path:          path,
			TrackMetadata: md,
			Warnings:      lo.Map(md.Warnings, func(w trackmeta.Warning, _ int) string { return w.String() }),
		})
	}

	if params.JSON {
		return writeJSON(stdout, results)
	}
	return nil
}
