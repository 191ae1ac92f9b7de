package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nightshift-cli/nightshift/internal/config"
)

var (
	// Version information (set by build flags)
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"

	cfgFile string
	verbose bool
	logger  *logrus.Logger
	cfg     *config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "nightshift",
	Short: "Nightshift - relocate work-hour commits to the night before",
	Long: `Nightshift rewrites the timestamps of commits made during work hours so
they land in a configured night window, keeping commit order intact and
spacing commits at least a minimum gap apart.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize logger
		logger = logrus.New()
		logger.SetOutput(os.Stderr)
		if verbose {
			logger.SetLevel(logrus.DebugLevel)
		} else {
			logger.SetLevel(logrus.WarnLevel)
		}

		// Load configuration. Policy validation is eager: a malformed
		// night window or work-hour range fails here, before any commit
		// is read.
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: .nightshift/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Set custom version template
	rootCmd.SetVersionTemplate(`Nightshift {{.Version}}
Build time: ` + BuildTime + `
Git commit: ` + GitCommit + `
`)

	// Add subcommands
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(dryRunCmd)
	rootCmd.AddCommand(hooksCmd)
	rootCmd.AddCommand(configCmd)
}
