// Package commands implements the eightball CLI.
package commands

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "eightball",
	Short: "Magic 8-Ball fortune-telling appliance",
	Long: `eightball - an interactive fortune-telling appliance.

Ask a question by typing it or by recording a short voice clip; the
appliance derives an unpredictable selection from your input and
presents one of its pre-authored answers, optionally with audio.

The response catalog and its audio clips live in the data directory
(see 'eightball catalog'). On first run a default 30-answer catalog is
generated there.

Examples:
  # Run the appliance in the terminal
  eightball run

  # Regenerate the default catalog
  eightball catalog init --force

  # List the loaded answers
  eightball catalog show`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initLogging)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func initLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}
