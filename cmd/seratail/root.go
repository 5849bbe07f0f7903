package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var seratoDirFlag string
	var display displayFlags

	ctx := newCommandContext(&configFlag, &seratoDirFlag)

	rootCmd := &cobra.Command{
		Use:   "seratail [serato-dir]",
		Short: "Show the tracks Serato is playing, straight from its session log",
		Long: "seratail tails the newest Serato DJ session log and keeps the most recently\n" +
			"played tracks on screen. The Serato folder defaults to ~/Music/_Serato_.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, ctx, args, display)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&seratoDirFlag, "serato-dir", "", "Serato library folder (overrides config and SERATO_DIR)")
	display.register(rootCmd)

	rootCmd.AddCommand(newDumpCommand(ctx))
	rootCmd.AddCommand(newLatestCommand(ctx))
	rootCmd.AddCommand(newSessionsCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
