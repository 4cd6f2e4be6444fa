package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gitsight/gitsight/internal/config"
	"github.com/gitsight/gitsight/internal/output"
	"github.com/gitsight/gitsight/internal/store"
)

var historyFlagLimit int

var historyCmd = &cobra.Command{
	Use:   "history <username>",
	Short: "Show stored runs for a username",
	Long: `History lists previous analyze runs recorded for a username, most
recent first, with the readiness-score change between consecutive runs.`,
	Args: cobra.ExactArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyFlagLimit, "limit", 10, "Maximum number of runs to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	username := ParseProfileArg(args[0])

	db, err := store.Open(config.DBPath())
	if err != nil {
		return fmt.Errorf("opening history database: %w", err)
	}
	defer db.Close()

	runs, err := db.ListRuns(username, historyFlagLimit)
	if err != nil {
		return fmt.Errorf("listing runs: %w", err)
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	fmt.Println(output.Section("Run History: @" + username))
	fmt.Println()
	if len(runs) == 0 {
		fmt.Println(output.StyleMuted.Render(" No stored runs."))
		return nil
	}

	tbl := output.NewTable("When", "Score", "Trend", "Tier", "Repos", "Version")
	for i, r := range runs {
		trend := output.StyleMuted.Render("─")
		if i+1 < len(runs) {
			trend = output.TrendArrow(r.ReadinessScore - runs[i+1].ReadinessScore)
		}
		tbl.AddRow(
			r.AnalyzedAt.Local().Format("2006-01-02 15:04"),
			output.ScoreStyle(r.ReadinessScore).Render(fmt.Sprintf("%5d", r.ReadinessScore)),
			trend,
			r.Tier,
			fmt.Sprintf("%d", r.RepoCount),
			r.Version,
		)
	}
	tbl.Print()
	fmt.Println()
	return nil
}
