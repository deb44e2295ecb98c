package main

import (
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "legalize",
	Short: "Legalize a standard-cell placement snapshot",
	Long: `legalize reads a design snapshot (core, rows, masters, cells,
groups) from JSON, runs the dpl placement legalizer over it, and writes the
updated snapshot and a result report back to JSON.`,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newReportCmd())
}

func logger() *charmlog.Logger {
	level := charmlog.InfoLevel
	if verbose {
		level = charmlog.DebugLevel
	}
	return charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}
