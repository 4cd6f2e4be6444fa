// Package app contains the Cobra command tree for gitsight.
package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gitsight/gitsight/internal/output"
)

var appVersion = "dev"

// SetVersion sets the application version (called from main with ldflags value).
func SetVersion(v string) {
	appVersion = v
	rootCmd.Version = v
}

var (
	flagConfig  string
	flagNoColor bool
	flagJSON    bool
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "gitsight",
	Short: "Automated hiring-readiness assessment of GitHub profiles",
	Long: `gitsight evaluates a public GitHub profile: it clones each non-fork
repository, runs static heuristics over the working tree (structure, README
quality, tests/CI, deployability, complexity, security baseline), aggregates
the scores into a hiring-readiness verdict with role-fit breakdowns, and
writes a JSON report plus a Markdown executive summary.

A local Ollama model can optionally deepen README scoring and produce an
executive summary; without one the scores are purely heuristic.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if flagNoColor {
			output.SetNoColor(true)
			return
		}
		output.AutoColor()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("gitsight", appVersion)
		fmt.Println()
		fmt.Println("Use a subcommand:")
		fmt.Println("  analyze   Score a GitHub profile and write reports")
		fmt.Println("  history   Show stored runs for a username")
		fmt.Println("  models    List models available on the Ollama host")
		return nil
	},
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/gitsight/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose output")
}
