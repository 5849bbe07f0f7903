package main

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"seratail/internal/config"
	"seratail/internal/export"
	"seratail/internal/history"
	"seratail/internal/logging"
	"seratail/internal/overlay"
	"seratail/internal/render"
	"seratail/internal/watch"
)

type displayFlags struct {
	count    int
	interval int
	style    string
	color    string
}

func (f *displayFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.count, "count", "n", 1, "Number of most recent tracks to show")
	cmd.Flags().IntVar(&f.interval, "interval", 2, "Seconds between re-reads of the session log")
	cmd.Flags().StringVar(&f.style, "style", "list", "Display style: list or table")
	cmd.Flags().StringVar(&f.color, "color", "auto", "Colour output: auto, always or never")
}

// apply copies explicitly set flags onto cfg and re-validates it.
func (f displayFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("count") {
		cfg.Display.Count = f.count
	}
	if flags.Changed("interval") {
		cfg.Display.PollInterval = f.interval
	}
	if flags.Changed("style") {
		cfg.Display.Style = strings.ToLower(strings.TrimSpace(f.style))
	}
	if flags.Changed("color") {
		cfg.Display.Color = strings.ToLower(strings.TrimSpace(f.color))
	}
	return cfg.Validate()
}

func runWatch(cmd *cobra.Command, ctx *commandContext, args []string, flags displayFlags) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	if len(args) == 1 {
		if err := setSeratoDir(cfg, args[0]); err != nil {
			return err
		}
	}
	if err := flags.apply(cmd, cfg); err != nil {
		return err
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}

	entry, err := latestSession(cfg)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Reading %s (started %s)\n", entry.Path, entry.Created.Local().Format(time.DateTime))

	sinks, cleanup, err := openSinks(cmd, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	out := cmd.OutOrStdout()
	renderer := render.NewTerminal(out, render.Options{
		Style:       cfg.Display.Style,
		Colorize:    render.ShouldColorize(out, cfg.Display.Color),
		ClearScreen: cfg.Display.ClearScreen,
	})

	watcher, err := watch.New(watch.Options{
		Path:     entry.Path,
		Count:    cfg.Display.Count,
		Interval: cfg.PollInterval(),
		Parser:   parserOptions(cfg),
	}, renderer, logger, sinks...)
	if err != nil {
		return err
	}
	return watcher.Run(cmd.Context())
}

// openSinks builds the optional outputs enabled in cfg. The returned cleanup
// releases whatever was opened.
func openSinks(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) ([]watch.Sink, func(), error) {
	var sinks []watch.Sink
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	if cfg.Export.Enabled {
		w, err := export.New(export.Options{Path: cfg.Export.Path, Format: cfg.Export.Format})
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		sinks = append(sinks, w)
		logger.Info("exporting now playing", logging.String("path", w.Path()))
	}

	if cfg.History.Enabled {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("open history: %w", err)
		}
		closers = append(closers, func() { _ = store.Close() })
		sinks = append(sinks, store)
		logger.Info("recording history", logging.String("path", store.Path()))
	}

	if cfg.Overlay.Enabled {
		srv, err := overlay.New(cfg.Overlay.Bind, cfg.Display.Count, logger)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		if err := srv.Start(cmd.Context()); err != nil {
			cleanup()
			return nil, nil, err
		}
		closers = append(closers, srv.Stop)
		sinks = append(sinks, srv)
		fmt.Fprintf(cmd.ErrOrStderr(), "Overlay at http://%s/now-playing\n", srv.Addr())
	}

	return sinks, cleanup, nil
}
