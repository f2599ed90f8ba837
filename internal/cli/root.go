// Package cli implements the roomcal command line interface: thin commands
// that load the configured snapshot, apply one calendar operation through
// the booking service, and save the result.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "roomcal",
	Short: "room booking calendar",
	Long:  "roomcal books, edits, and lists events across a fixed set of rooms, persisting them to a configurable snapshot file.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "roomcal.yaml", "path to configuration file")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
