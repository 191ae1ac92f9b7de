package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nightshift-cli/nightshift/internal/git"
)

// hooksCmd installs the pre-push guard.
var hooksCmd = &cobra.Command{
	Use:   "install-git-hooks",
	Short: "Install a pre-push hook that runs nightshift check",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := git.DetectRepo("."); err != nil {
			return err
		}
		root, err := git.Root(".")
		if err != nil {
			return err
		}

		path, err := git.InstallPrePushHook(root)
		if err != nil {
			return err
		}

		fmt.Printf("Installed pre-push hook at %s\n", path)
		return nil
	},
}
