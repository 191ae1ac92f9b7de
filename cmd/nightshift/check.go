package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

// checkCmd reports work-hour commits without changing anything. The pre-push
// hook runs this; a non-zero exit blocks the push.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report work-hour commits in the lookback window",
	Long: `Scans recent history for commits timestamped inside the configured work
hours and prints the plan that fix would apply. Exits non-zero if any such
commit exists, so it can gate a pre-push hook.`,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	s, cleanup, err := newSession(false)
	if err != nil {
		return err
	}
	defer cleanup()

	dirty, err := s.Check(context.Background())
	if err != nil {
		return err
	}
	if dirty {
		os.Exit(1)
	}
	return nil
}
