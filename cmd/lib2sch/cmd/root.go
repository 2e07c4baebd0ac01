package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool

	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "lib2sch",
	Short: "Convert KiCad symbol libraries to EasyEDA schematics",
	Long: `lib2sch reads KiCad legacy symbol libraries (.lib, EESchema-LIBRARY
Version 2.x) and writes an EasyEDA schematic document that holds one
component for every symbol and alias.

Examples:
  lib2sch convert opamp.lib -o opamp.json       # Convert a library
  lib2sch convert *.lib --layout --theme kicad  # Stack components, KiCad colours
  lib2sch info opamp.lib                        # List symbols
  lib2sch info opamp.lib OPA340                 # Show pins of one symbol`,
	Version:      "0.1.0",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func getLogger() *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
