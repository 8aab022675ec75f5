package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/spf13/cobra"

	"github.com/simonhull/trackmeta"
	"github.com/simonhull/trackmeta/internal/config"
)

type CoverParams struct {
	File      string `pos:"true" help:"Audio file to extract the cover from."`
	Output    string `short:"o" optional:"true" help:"Where to write the image (default: <file name>.<jpg|png> next to the track)."`
	DataURI   bool   `short:"d" help:"Print the cover as a data URI instead of writing a file." default:"false"`
	LogLevel  string `optional:"true" help:"Log level (debug, info, warn, error)."`
	LogFormat string `optional:"true" help:"Log format (pretty, json)."`
	ReadLimit string `optional:"true" help:"Leading bytes read per file, e.g. 512K."`
	EnvFile   string `optional:"true" help:"Path to .env file." default:".env"`
}

// errNoCover is returned when the track has no usable artwork.
var errNoCover = errors.New("no embedded JPEG or PNG cover")

func CoverCmd() *cobra.Command {
	return boa.CmdT[CoverParams]{
		Use:         "cover [flags] file",
		Short:       "Extract the embedded cover and print its accent color",
		ParamEnrich: defaultParamEnricher(),
		RunFunc: func(params *CoverParams, cmd *cobra.Command, args []string) {
			if err := runCover(cmd.Context(), params, os.Stdout); err != nil {
				fail("cover", err)
			}
		},
	}.ToCobra()
}

func runCover(ctx context.Context, params *CoverParams, stdout io.Writer) error {
	cfg, log, err := setup(config.Flags{
		LogLevel:  params.LogLevel,
		LogFormat: params.LogFormat,
		ReadLimit: params.ReadLimit,
		EnvFile:   params.EnvFile,
	})
	if err != nil {
		return err
	}

	md, err := trackmeta.ReadFile(ctx, params.File, cfg.ReadOptions(log)...)
	if err != nil {
		return err
	}
	if !md.HasCover() {
		return fmt.Errorf("%s: %w", params.File, errNoCover)
	}

	if params.DataURI {
		_, err := fmt.Fprintln(stdout, md.Cover.DataURI())
		return err
	}

	out := params.Output
	if out == "" {
		out = strings.TrimSuffix(params.File, filepath.Ext(params.File)) + md.Cover.Extension()
	}
	if err := os.WriteFile(out, md.Cover.Data, 0o644); err != nil {
		return fmt.Errorf("write cover: %w", err)
	}

	accent := trackmeta.White()
	if md.Accent != nil {
		accent = *md.Accent
	}
	fmt.Fprintf(stdout, "%s  %s  accent %s\n", out, md.Cover, accent.Hex())
	return nil
}
