package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	l "github.com/tracim/tracim-seed-cli/pkg/logger"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tracim-seed",
	Short: "A helper CLI tool to populate Tracim workspaces for end-to-end tests",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Common flags for all subcommands
	var logLevel string
	rootCmd.PersistentFlags().StringVar(&logLevel, "loglevel", "info", "Set the logging level (debug, info, warn, error, fatal)")

	cobra.OnInitialize(func() {
		if !rootCmd.Flags().Changed("loglevel") {
			// Log level parameter was not set, try env var
			logLevelEnv := os.Getenv("TRACIM_SEED_LOG_LEVEL")
			if logLevelEnv != "" {
				logLevel = logLevelEnv
			}
		}
		if err := l.InitLogger(logLevel); err != nil {
			fmt.Printf("failed to init logger: %s", err.Error())
			os.Exit(2)
		}
	})

	// Add commands
	rootCmd.AddCommand(workspaceCmd)
	rootCmd.AddCommand(ListSetsCmd)
}
