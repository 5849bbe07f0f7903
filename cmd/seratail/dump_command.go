package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"seratail/internal/render"
	"seratail/internal/sessionlog"
	"seratail/internal/sessions"
)

func newDumpCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "dump [session-file]",
		Short: "Parse a session log once and print every track",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			path := ""
			if len(args) == 1 {
				path = args[0]
			} else {
				entry, err := latestSession(cfg)
				if err != nil {
					return err
				}
				path = entry.Path
			}

			data, err := sessions.ReadAll(path)
			if err != nil {
				return err
			}
			tracks := sessionlog.Parse(data, parserOptions(cfg))

			if asJSON {
				if tracks == nil {
					tracks = []sessionlog.Track{}
				}
				return writeJSON(cmd, tracks)
			}

			out := cmd.OutOrStdout()
			if len(tracks) == 0 {
				fmt.Fprintf(out, "No tracks found in %s\n", path)
				return nil
			}
			rows := make([][]string, 0, len(tracks))
			for i, t := range tracks {
				rows = append(rows, []string{strconv.Itoa(i + 1), render.Clean(t.Title), render.Clean(t.Artist), render.Clean(t.Style)})
			}
			fmt.Fprintln(out, render.Table(
				[]string{"#", "Title", "Artist", "Style"},
				rows,
				[]render.Alignment{render.AlignRight},
			))
			fmt.Fprintf(out, "%d tracks in %s\n", len(tracks), path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output tracks as JSON")
	return cmd
}
