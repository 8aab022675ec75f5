package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/spf13/cobra"

	"github.com/simonhull/trackmeta"
	"github.com/simonhull/trackmeta/internal/config"
	"github.com/simonhull/trackmeta/internal/watch"
)

type WatchParams struct {
	Dirs      []string `pos:"true" optional:"true" help:"Directories to watch (defaults to current directory)." default:"."`
	LogLevel  string   `optional:"true" help:"Log level (debug, info, warn, error)."`
	LogFormat string   `optional:"true" help:"Log format (pretty, json)."`
	ReadLimit string   `optional:"true" help:"Leading bytes read per file, e.g. 512K."`
	EnvFile   string   `optional:"true" help:"Path to .env file." default:".env"`
}

func WatchCmd() *cobra.Command {
	return boa.CmdT[WatchParams]{
		Use:         "watch [flags] [dirs...]",
		Short:       "Print the metadata of audio files as they are added or changed",
		ParamEnrich: defaultParamEnricher(),
		RunFunc: func(params *WatchParams, cmd *cobra.Command, args []string) {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := runWatch(ctx, params, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
				fail("watch", err)
			}
		},
	}.ToCobra()
}

func runWatch(ctx context.Context, params *WatchParams, stdout io.Writer) error {
	cfg, log, err := setup(config.Flags{
		LogLevel:  params.LogLevel,
		LogFormat: params.LogFormat,
		ReadLimit: params.ReadLimit,
		EnvFile:   params.EnvFile,
	})
	if err != nil {
		return err
	}

	w, err := watch.New(trackmeta.IsAudioFile, watch.WithLogger(log))
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	dirs := params.Dirs
	if len(dirs) == 0 {
		dirs = []string{"."}
	}
	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			return err
		}
	}

	log.Info("watching", "dirs", w.Dirs())

	opts := cfg.ReadOptions(log)
	return w.Run(ctx, func(ev watch.Event) {
		if ev.Removed {
			fmt.Fprintf(stdout, "- %s\n", ev.Path)
			return
		}

		md, err := trackmeta.ReadFile(ctx, ev.Path, opts...)
		if err != nil {
			log.Warn("cannot read file", "path", ev.Path, "error", err)
			return
		}
		fmt.Fprintf(stdout, "+ %s  %s\n", ev.Path, trackLine(md))
	})
}
