// Package cli implements the FitQuest command-line interface using Cobra.
// Each subcommand maps to one progress engine operation (award, mission,
// streak, etc.) and prints the occurrences the operation produced.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fitquest",
	Short: "FitQuest — Track your health progress",
	Long: `FitQuest is a local-first progress and achievement engine.
Earn XP, level up, complete daily and weekly missions, unlock badges,
and keep your streak alive — all stored on your machine.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
