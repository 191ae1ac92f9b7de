package main

import (
	"context"

	"github.com/spf13/cobra"
)

// fixCmd plans, confirms, and rewrites history.
var fixCmd = &cobra.Command{
	Use:   "fix",
	Short: "Move work-hour commits into the night window",
	Long: `Computes new timestamps for commits made during work hours, shows the
plan and the exact git filter-branch command, and applies it after
confirmation. The default scope is the configured lookback (24 hours);
--all covers the entire history.

Author and committer dates are set to the same new value; names and emails
are never touched. Remotes are not pushed.`,
	RunE: runFix,
}

func init() {
	fixCmd.Flags().Bool("dry-run", false, "Print the plan and command without executing")
	fixCmd.Flags().Bool("all", false, "Cover the entire history instead of the lookback window")
	fixCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	fixCmd.Flags().Int64("seed", 0, "Random seed for reproducible plans (0 = time-based)")
}

func runFix(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	all, _ := cmd.Flags().GetBool("all")
	yes, _ := cmd.Flags().GetBool("yes")
	if seed, _ := cmd.Flags().GetInt64("seed"); seed != 0 {
		cfg.Seed = seed
	}

	s, cleanup, err := newSession(yes)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := context.Background()
	if dryRun {
		return s.DryRun(ctx, all)
	}
	return s.Fix(ctx, all)
}
