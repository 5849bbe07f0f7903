package main

import (
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"seratail/internal/render"
	"seratail/internal/sessions"
)

func newLatestCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "latest",
		Short: "Print the session log seratail would tail",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			entry, err := latestSession(cfg)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, entry.Path)
			fmt.Fprintf(out, "Created: %s (%s)\n", entry.Created.Local().Format(time.DateTime), humanize.Time(entry.Created))
			return nil
		},
	}
}

func newSessionsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "sessions",
		Short: "List session logs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			dir := cfg.SessionsDir()
			entries, err := sessions.List(dir, cfg.Paths.SessionExtension)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintf(out, "No session logs in %s\n", dir)
				return nil
			}

			sort.SliceStable(entries, func(i, j int) bool {
				return entries[i].Created.After(entries[j].Created)
			})
			latest, _ := sessions.PickLatest(entries)

			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				marker := ""
				if e.Path == latest {
					marker = "*"
				}
				created := "unknown"
				if e.Usable() {
					created = e.Created.Local().Format(time.DateTime)
				}
				rows = append(rows, []string{marker, filepath.Base(e.Path), created, humanize.Bytes(uint64(e.Size))})
			}
			fmt.Fprintln(out, render.Table(
				[]string{"", "Session", "Created", "Size"},
				rows,
				[]render.Alignment{render.AlignLeft, render.AlignLeft, render.AlignLeft, render.AlignRight},
			))
			return nil
		},
	}
}
