package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nightshift-cli/nightshift/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage nightshift configuration",
}

// configInitCmd writes a starter config file with the default policy.
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file with the default policy",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("path")
		if path == "" {
			path = config.DefaultPath()
		}

		if err := config.Default().WriteFile(path); err != nil {
			return err
		}

		fmt.Printf("Wrote default configuration to %s\n", path)
		return nil
	},
}

func init() {
	configInitCmd.Flags().String("path", "", "Destination file (default: ~/.nightshift/config.yaml)")
	configCmd.AddCommand(configInitCmd)
}
