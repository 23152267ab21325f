// Ssgctl is a control utility for USB-attached SSG synthesized signal
// generators.
//
// It provides device discovery, output programming (frequency, power,
// trigger mode), RF output switching, and live status monitoring over the
// generator's USB HID protocol. No driver installation is required beyond
// hidapi.
//
// Usage:
//
//	ssgctl [command] [flags]
//
// See 'ssgctl --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rfbench/ssgctl/internal/logging"
	"github.com/rfbench/ssgctl/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ssgctl",
	Short: "SSG Signal Generator Control Utility",
	Long: `A bench utility for USB-attached SSG synthesized signal generators.

Provides device discovery, output programming (frequency, power, trigger),
RF output switching, and live status monitoring.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logging.InitializeFromEnv()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("ssgctl %s (commit: %s)\n", version.Version, version.Commit)
	},
}
