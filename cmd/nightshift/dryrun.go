package main

import (
	"context"

	"github.com/spf13/cobra"
)

// dryRunCmd is the spelled-out form of fix --dry-run.
var dryRunCmd = &cobra.Command{
	Use:   "dry-run",
	Short: "Show what fix would do without making changes",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		if seed, _ := cmd.Flags().GetInt64("seed"); seed != 0 {
			cfg.Seed = seed
		}

		s, cleanup, err := newSession(false)
		if err != nil {
			return err
		}
		defer cleanup()

		return s.DryRun(context.Background(), all)
	},
}

func init() {
	dryRunCmd.Flags().Bool("all", false, "Cover the entire history instead of the lookback window")
	dryRunCmd.Flags().Int64("seed", 0, "Random seed for reproducible plans (0 = time-based)")
}
