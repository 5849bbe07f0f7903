package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"seratail/internal/history"
	"seratail/internal/render"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List plays recorded in the history database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if _, err := os.Stat(cfg.History.Path); errors.Is(err, fs.ErrNotExist) {
				fmt.Fprintf(out, "No history recorded yet (%s). Enable [history] in the config to start.\n", cfg.History.Path)
				return nil
			}

			store, err := history.Open(cfg.History.Path)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			plays, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if asJSON {
				type playJSON struct {
					Session   string `json:"session"`
					Position  int    `json:"position"`
					Title     string `json:"title"`
					Artist    string `json:"artist"`
					Style     string `json:"style"`
					RunID     string `json:"run_id"`
					FirstSeen string `json:"first_seen"`
				}
				payload := make([]playJSON, 0, len(plays))
				for _, p := range plays {
					payload = append(payload, playJSON{
						Session:   p.Session,
						Position:  p.Position,
						Title:     p.Track.Title,
						Artist:    p.Track.Artist,
						Style:     p.Track.Style,
						RunID:     p.RunID,
						FirstSeen: p.FirstSeen.UTC().Format(time.RFC3339),
					})
				}
				return writeJSON(cmd, payload)
			}

			if len(plays) == 0 {
				fmt.Fprintln(out, "No plays recorded")
				return nil
			}
			rows := make([][]string, 0, len(plays))
			for _, p := range plays {
				rows = append(rows, []string{
					p.FirstSeen.Local().Format(time.DateTime),
					render.Clean(p.Track.Title),
					render.Clean(p.Track.Artist),
					render.Clean(p.Track.Style),
					filepath.Base(p.Session) + "#" + strconv.Itoa(p.Position+1),
				})
			}
			fmt.Fprintln(out, render.Table([]string{"Seen", "Title", "Artist", "Style", "Session"}, rows, nil))

			total, err := store.Count(cmd.Context(), "")
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Showing %d of %d plays\n", len(plays), total)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum plays to list (0 for all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output plays as JSON")
	return cmd
}
